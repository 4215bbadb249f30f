package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooksLikeSPDI(t *testing.T) {
	assert.True(t, LooksLikeSPDI("NC_000011.10:108222767:C:T"))
	assert.True(t, LooksLikeSPDI("NC_000011.10:108227637:TTAATGAT:"))
	assert.False(t, LooksLikeSPDI("NC_000001.11:g.216217352C>T"))
	assert.False(t, LooksLikeSPDI("garbage"))
}

func TestConvertAutoDetect(t *testing.T) {
	c := New(&fakeGateway{})

	rec, err := c.Convert("NC_000011.10:108222767:C:T")
	require.NoError(t, err)
	assert.Equal(t, int64(108222768), rec.Pos)

	rec, err = c.Convert("NC_000001.11:g.216217352C>T")
	require.NoError(t, err)
	assert.Equal(t, int64(216217352), rec.Pos)
}

func TestConvertAll(t *testing.T) {
	gw := &fakeGateway{
		bases:  map[string]string{"NC_000001.11:23603624": "T"},
		ranges: map[string]string{"NC_000001.11:23603624-23603626": "AG"},
	}
	c := New(gw)

	inputs := []string{
		"NC_000001.11:g.216217352C>T",
		"not a variant",
		"NC_000011.10:108222767:C:T",
		"NC_000001.11:g.23603625_23603626del",
		"NC_000099.1:g.1_2del", // no scripted reference: fetch failure
	}

	var emitted []string
	summary, err := c.ConvertAll(inputs, 4, func(input string, rec *VCFRecord) error {
		emitted = append(emitted, input)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 3, summary.Converted)
	assert.Equal(t, 2, summary.FailedTotal())
	assert.Equal(t, 1, summary.Failed["parse"])
	assert.Equal(t, 1, summary.Failed["ref_fetch"])
	assert.Len(t, summary.Samples, 2)

	// Successes are emitted in input order despite parallel workers.
	assert.Equal(t, []string{
		"NC_000001.11:g.216217352C>T",
		"NC_000011.10:108222767:C:T",
		"NC_000001.11:g.23603625_23603626del",
	}, emitted)
}

func TestConvertAllAllFailures(t *testing.T) {
	c := New(&fakeGateway{})

	inputs := []string{"x", "y", "z", "w"}
	summary, err := c.ConvertAll(inputs, 2, func(string, *VCFRecord) error {
		t.Fatal("emit called for failed input")
		return nil
	})
	require.NoError(t, err)

	assert.Zero(t, summary.Converted)
	assert.Equal(t, 4, summary.FailedTotal())
	// Sample retention is bounded.
	assert.Len(t, summary.Samples, 3)
}
