// Package hgvs parses and formats HGVS genomic (g.) variant notation.
package hgvs

import (
	"fmt"
	"strconv"
	"strings"
)

// EditType identifies the kind of edit a genomic variant describes.
type EditType int

const (
	Substitution EditType = iota
	Insertion
	Deletion
	Duplication
	DelIns
	Inversion
)

// String returns the HGVS edit keyword for the type.
func (e EditType) String() string {
	switch e {
	case Substitution:
		return "sub"
	case Insertion:
		return "ins"
	case Deletion:
		return "del"
	case Duplication:
		return "dup"
	case DelIns:
		return "delins"
	case Inversion:
		return "inv"
	}
	return "unknown"
}

// Variant holds a parsed genomic HGVS variant.
// Start and End are 1-based inclusive. For single-position edits End == Start.
type Variant struct {
	Accession string // e.g. "NC_000015.10"
	Start     int64
	End       int64
	Edit      EditType
	Ref       string // substitution only
	Alt       string // substitution only
	Inserted  string // insertion and delins payload
}

// String formats the variant back into genomic HGVS notation.
func (v *Variant) String() string {
	var b strings.Builder
	b.WriteString(v.Accession)
	b.WriteString(":g.")
	switch v.Edit {
	case Substitution:
		fmt.Fprintf(&b, "%d%s>%s", v.Start, v.Ref, v.Alt)
	case Insertion:
		fmt.Fprintf(&b, "%d_%dins%s", v.Start, v.End, v.Inserted)
	case Deletion:
		writeRange(&b, v.Start, v.End)
		b.WriteString("del")
	case Duplication:
		writeRange(&b, v.Start, v.End)
		b.WriteString("dup")
	case DelIns:
		writeRange(&b, v.Start, v.End)
		b.WriteString("delins")
		b.WriteString(v.Inserted)
	case Inversion:
		fmt.Fprintf(&b, "%d_%dinv", v.Start, v.End)
	}
	return b.String()
}

func writeRange(b *strings.Builder, start, end int64) {
	b.WriteString(strconv.FormatInt(start, 10))
	if end != start {
		b.WriteByte('_')
		b.WriteString(strconv.FormatInt(end, 10))
	}
}

// ChromosomeFromAccession extracts the numeric chromosome from a RefSeq
// chromosome accession: "NC_000015.10" -> 15. The version suffix is dropped,
// the prefix before the last underscore is dropped, and leading zeros are
// stripped (an all-zero token yields 0).
func ChromosomeFromAccession(ac string) (int, error) {
	base := ac
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if i := strings.LastIndexByte(base, '_'); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimLeft(base, "0")
	if base == "" {
		base = "0"
	}
	chrom, err := strconv.Atoi(base)
	if err != nil {
		return 0, fmt.Errorf("accession %q has no numeric chromosome", ac)
	}
	return chrom, nil
}
