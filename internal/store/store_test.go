package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varlift/varlift/internal/convert"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutAndGet(t *testing.T) {
	s := openInMemory(t)

	rec := &convert.VCFRecord{Chrom: 1, Pos: 216217352, Ref: "C", Alt: "T"}
	require.NoError(t, s.Put("NC_000001.11:g.216217352C>T", rec))

	got, found, err := s.Get("NC_000001.11:g.216217352C>T")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rec, got)

	got, found, err = s.Get("NC_000001.11:g.999C>T")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestPutIdempotent(t *testing.T) {
	s := openInMemory(t)

	rec := &convert.VCFRecord{Chrom: 11, Pos: 108222768, Ref: "C", Alt: "T"}
	require.NoError(t, s.Put("NC_000011.10:108222767:C:T", rec))
	require.NoError(t, s.Put("NC_000011.10:108222767:C:T", rec))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCountAndClear(t *testing.T) {
	s := openInMemory(t)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)

	records := map[string]*convert.VCFRecord{
		"NC_000001.11:g.216217352C>T":         {Chrom: 1, Pos: 216217352, Ref: "C", Alt: "T"},
		"NC_000001.11:g.23603625_23603626del": {Chrom: 1, Pos: 23603624, Ref: "TAG", Alt: "T"},
		"NC_000011.10:108227637:TTAATGAT:":    {Chrom: 11, Pos: 108227637, Ref: "ATTAATGAT", Alt: "A"},
	}
	for notation, rec := range records {
		require.NoError(t, s.Put(notation, rec))
	}

	n, err = s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.NoError(t, s.Clear())

	n, err = s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpenOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "conversions.duckdb")

	s, err := Open(path)
	require.NoError(t, err)

	rec := &convert.VCFRecord{Chrom: 1, Pos: 48644722, Ref: "GT", Alt: "G"}
	require.NoError(t, s.Put("NC_000001.11:g.48644723del", rec))
	require.NoError(t, s.Close())

	// Reopen and read back.
	s, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	got, found, err := s.Get("NC_000001.11:g.48644723del")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rec, got)
}
