package convert

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway serves scripted bases and ranges and counts lookups.
type fakeGateway struct {
	bases      map[string]string // "accession:pos" (1-based)
	ranges     map[string]string // "accession:start-end" (0-based half-open)
	err        error
	baseCalls  int
	rangeCalls int
}

func (g *fakeGateway) FetchBase(accession string, pos int64) (string, error) {
	g.baseCalls++
	if g.err != nil {
		return "", g.err
	}
	key := fmt.Sprintf("%s:%d", accession, pos)
	s, ok := g.bases[key]
	if !ok {
		return "", fmt.Errorf("no scripted base for %s", key)
	}
	return s, nil
}

func (g *fakeGateway) FetchRange(accession string, start, end int64) (string, error) {
	g.rangeCalls++
	if g.err != nil {
		return "", g.err
	}
	key := fmt.Sprintf("%s:%d-%d", accession, start, end)
	s, ok := g.ranges[key]
	if !ok {
		return "", fmt.Errorf("no scripted range for %s", key)
	}
	return s, nil
}

func TestHGVSGenomicToVCF_Substitution(t *testing.T) {
	gw := &fakeGateway{}
	c := New(gw)

	rec, err := c.HGVSGenomicToVCF("NC_000001.11:g.216217352C>T")
	require.NoError(t, err)

	assert.Equal(t, &VCFRecord{Chrom: 1, Pos: 216217352, Ref: "C", Alt: "T"}, rec)
	// Substitutions never touch the reference.
	assert.Zero(t, gw.baseCalls)
	assert.Zero(t, gw.rangeCalls)
}

func TestHGVSGenomicToVCF_Insertion(t *testing.T) {
	gw := &fakeGateway{
		bases: map[string]string{"NC_000016.10:23607966": "C"},
	}
	c := New(gw)

	rec, err := c.HGVSGenomicToVCF("NC_000016.10:g.23607966_23607967insA")
	require.NoError(t, err)

	assert.Equal(t, &VCFRecord{Chrom: 16, Pos: 23607966, Ref: "C", Alt: "CA"}, rec)
}

func TestHGVSGenomicToVCF_Deletion(t *testing.T) {
	gw := &fakeGateway{
		bases:  map[string]string{"NC_000001.11:23603624": "T"},
		ranges: map[string]string{"NC_000001.11:23603624-23603626": "AG"},
	}
	c := New(gw)

	rec, err := c.HGVSGenomicToVCF("NC_000001.11:g.23603625_23603626del")
	require.NoError(t, err)

	assert.Equal(t, &VCFRecord{Chrom: 1, Pos: 23603624, Ref: "TAG", Alt: "T"}, rec)
}

func TestHGVSGenomicToVCF_Duplication(t *testing.T) {
	gw := &fakeGateway{
		bases:  map[string]string{"NC_000015.10:48487139": "G"},
		ranges: map[string]string{"NC_000015.10:48487138-48487139": "G"},
	}
	c := New(gw)

	rec, err := c.HGVSGenomicToVCF("NC_000015.10:g.48487139dup")
	require.NoError(t, err)

	assert.Equal(t, &VCFRecord{Chrom: 15, Pos: 48487139, Ref: "G", Alt: "GG"}, rec)
}

func TestHGVSGenomicToVCF_DelIns(t *testing.T) {
	gw := &fakeGateway{
		bases:  map[string]string{"NC_000015.10:48644722": "G"},
		ranges: map[string]string{"NC_000015.10:48644722-48644723": "T"},
	}
	c := New(gw)

	rec, err := c.HGVSGenomicToVCF("NC_000015.10:g.48644723delinsA")
	require.NoError(t, err)

	assert.Equal(t, &VCFRecord{Chrom: 15, Pos: 48644722, Ref: "GT", Alt: "GA"}, rec)
}

func TestHGVSGenomicToVCF_Inversion(t *testing.T) {
	gw := &fakeGateway{
		bases:  map[string]string{"NC_000017.11:43094463": "C"},
		ranges: map[string]string{"NC_000017.11:43094463-43094465": "AG"},
	}
	c := New(gw)

	rec, err := c.HGVSGenomicToVCF("NC_000017.11:g.43094464_43094465inv")
	require.NoError(t, err)

	// Inversion = delete "AG", insert its reverse complement "CT".
	assert.Equal(t, &VCFRecord{Chrom: 17, Pos: 43094463, Ref: "CAG", Alt: "CCT"}, rec)
}

// Duplications anchor on the LAST duplicated base while insertions anchor on
// the base BEFORE the insertion point. The asymmetry is deliberate and easy
// to regress, so pin both anchors against the same reference layout.
func TestAnchorAsymmetry_DupVsIns(t *testing.T) {
	// Reference around position 100: ...A(99) C(100) G(101)...
	gw := &fakeGateway{
		bases: map[string]string{
			"NC_000001.11:99":  "A",
			"NC_000001.11:100": "C",
		},
		ranges: map[string]string{
			"NC_000001.11:99-100": "C",
		},
	}
	c := New(gw)

	dup, err := c.HGVSGenomicToVCF("NC_000001.11:g.100dup")
	require.NoError(t, err)
	// Right-anchored: pos is the duplicated base itself.
	assert.Equal(t, int64(100), dup.Pos)
	assert.Equal(t, "C", dup.Ref)
	assert.Equal(t, "CC", dup.Alt)

	ins, err := c.HGVSGenomicToVCF("NC_000001.11:g.99_100insC")
	require.NoError(t, err)
	// Left-anchored: pos is the base before the insertion point.
	assert.Equal(t, int64(99), ins.Pos)
	assert.Equal(t, "A", ins.Ref)
	assert.Equal(t, "AC", ins.Alt)
}

// Every non-substitution conversion shares its first base between ref and
// alt (the anchor), and ref is never empty.
func TestAnchorInvariant(t *testing.T) {
	gw := &fakeGateway{
		bases: map[string]string{
			"NC_000002.12:49": "T",
			"NC_000002.12:52": "A",
			"NC_000002.12:50": "G",
		},
		ranges: map[string]string{
			"NC_000002.12:49-52": "GCA",
		},
	}
	c := New(gw)

	inputs := []string{
		"NC_000002.12:g.50_52del",
		"NC_000002.12:g.50_52delinsTT",
		"NC_000002.12:g.50_52dup",
		"NC_000002.12:g.50_52inv",
		"NC_000002.12:g.50_51insAA",
	}
	for _, in := range inputs {
		rec, err := c.HGVSGenomicToVCF(in)
		require.NoError(t, err, in)
		require.NotEmpty(t, rec.Ref, in)
		require.NotEmpty(t, rec.Alt, in)
		assert.Equal(t, rec.Ref[0], rec.Alt[0], "anchor mismatch for %s", in)
	}
}

func TestHGVSGenomicToVCF_ParseFailure(t *testing.T) {
	c := New(&fakeGateway{})

	for _, in := range []string{"", "garbage", "NM_000051.4:c.35G>T", "NC_000001.11:g.10_5del"} {
		rec, err := c.HGVSGenomicToVCF(in)
		assert.Nil(t, rec, in)
		assert.ErrorIs(t, err, ErrParse, in)
		assert.False(t, Retryable(err), in)
	}
}

func TestHGVSGenomicToVCF_FetchFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection timed out")}
	c := New(gw)

	rec, err := c.HGVSGenomicToVCF("NC_000001.11:g.23603625_23603626del")
	assert.Nil(t, rec)
	require.ErrorIs(t, err, ErrRefFetch)
	assert.True(t, Retryable(err))
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: x", ErrParse), "parse"},
		{fmt.Errorf("%w: x", ErrUnsupportedEdit), "unsupported_edit"},
		{fmt.Errorf("%w: x", ErrRefFetch), "ref_fetch"},
		{fmt.Errorf("%w: x", ErrInvalidInterval), "invalid_interval"},
		{errors.New("x"), "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FailureReason(tt.err))
	}
}
