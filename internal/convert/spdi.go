package convert

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/varlift/varlift/internal/hgvs"
)

// SPDI holds a parsed SPDI (Sequence-Position-Deletion-Insertion) notation.
// Position is 0-based; Deletion and Insertion may be empty.
type SPDI struct {
	Sequence  string
	Position  int64
	Deletion  string
	Insertion string
}

// String formats the canonical accession:position:deletion:insertion form.
func (s *SPDI) String() string {
	return fmt.Sprintf("%s:%d:%s:%s", s.Sequence, s.Position, s.Deletion, s.Insertion)
}

// SPDI as emitted by NCBI variation services; all four fields are required,
// deletion and insertion may be empty.
var reSPDI = regexp.MustCompile(`^(NC_\d+\.\d+):(\d+):([ACGT]*):([ACGT]*)$`)

// ParseSPDI parses an SPDI string. Anything not matching the canonical form
// is a parse error.
func ParseSPDI(input string) (*SPDI, error) {
	m := reSPDI.FindStringSubmatch(input)
	if m == nil {
		return nil, fmt.Errorf("%w: %q is not SPDI notation", ErrParse, input)
	}
	pos, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: position in %q: %v", ErrParse, input, err)
	}
	return &SPDI{Sequence: m[1], Position: pos, Deletion: m[3], Insertion: m[4]}, nil
}

// SPDIToVCF converts an SPDI string to VCF coordinates. A 1:1 substitution
// needs no reference lookup; every other shape fetches one anchor base.
//
// SPDI already supplies the deleted sequence, so the 0-based Position is
// reused directly as the 1-based anchor position instead of re-deriving a
// start/end interval: the base at 1-based Position is exactly the base
// before the edited span.
func (c *Converter) SPDIToVCF(input string) (*VCFRecord, error) {
	s, err := ParseSPDI(input)
	if err != nil {
		return nil, err
	}

	chrom, err := hgvs.ChromosomeFromAccession(s.Sequence)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	del, ins := s.Deletion, s.Insertion

	// Simple SNP: alleles come straight from SPDI.
	if len(del) == 1 && len(ins) == 1 {
		return &VCFRecord{Chrom: chrom, Pos: s.Position + 1, Ref: del, Alt: ins}, nil
	}

	if del == "" && ins == "" {
		return nil, fmt.Errorf("%w: %q deletes and inserts nothing", ErrInvalidInterval, input)
	}

	anchor, err := c.gw.FetchBase(s.Sequence, s.Position)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRefFetch, err)
	}

	return &VCFRecord{
		Chrom: chrom,
		Pos:   s.Position,
		Ref:   anchor + del,
		Alt:   anchor + ins,
	}, nil
}

// SPDIToGenomicHGVS synthesizes the genomic HGVS string for an SPDI
// notation. Pure string work: SPDI carries both alleles, so no reference
// lookup is needed.
func SPDIToGenomicHGVS(input string) (string, error) {
	s, err := ParseSPDI(input)
	if err != nil {
		return "", err
	}

	pos1 := s.Position + 1
	del, ins := s.Deletion, s.Insertion

	switch {
	case len(del) == 1 && len(ins) == 1:
		return fmt.Sprintf("%s:g.%d%s>%s", s.Sequence, pos1, del, ins), nil

	case del != "" && ins != "":
		if len(del) == 1 {
			return fmt.Sprintf("%s:g.%ddelins%s", s.Sequence, pos1, ins), nil
		}
		end := pos1 + int64(len(del)) - 1
		return fmt.Sprintf("%s:g.%d_%ddelins%s", s.Sequence, pos1, end, ins), nil

	case del != "":
		if len(del) == 1 {
			return fmt.Sprintf("%s:g.%ddel", s.Sequence, pos1), nil
		}
		end := pos1 + int64(len(del)) - 1
		return fmt.Sprintf("%s:g.%d_%ddel", s.Sequence, pos1, end), nil

	case ins != "":
		// Inserted between pos1 and pos1+1 regardless of length.
		return fmt.Sprintf("%s:g.%d_%dins%s", s.Sequence, pos1, pos1+1, ins), nil

	default:
		return "", fmt.Errorf("%w: %q deletes and inserts nothing", ErrInvalidInterval, input)
	}
}
