package convert

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/varlift/varlift/internal/hgvs"
	"github.com/varlift/varlift/internal/refseq"
)

// VCFRecord is the VCF coordinate form of a variant: numeric chromosome,
// 1-based position, reference and alternate alleles. For every edit type
// except substitution the alleles share a leading anchor base.
type VCFRecord struct {
	Chrom int
	Pos   int64
	Ref   string
	Alt   string
}

func (r *VCFRecord) String() string {
	return fmt.Sprintf("%d:%d:%s:%s", r.Chrom, r.Pos, r.Ref, r.Alt)
}

// Converter maps parsed variants to VCF records, consulting a reference
// sequence gateway for anchor bases and spanned sequence. Conversions are
// independent and idempotent given a stable reference; the Converter holds
// no per-call state and is safe for concurrent use.
type Converter struct {
	gw     refseq.Gateway
	logger *zap.Logger
}

// New creates a Converter over the given gateway.
func New(gw refseq.Gateway) *Converter {
	return &Converter{gw: gw, logger: zap.NewNop()}
}

// SetLogger sets the logger for conversion warnings.
func (c *Converter) SetLogger(l *zap.Logger) {
	c.logger = l
}

// HGVSGenomicToVCF parses a genomic HGVS string and converts it to VCF
// coordinates. Malformed input, unsupported edits, and reference fetch
// failures come back as classified errors, never panics.
func (c *Converter) HGVSGenomicToVCF(input string) (*VCFRecord, error) {
	v, err := hgvs.ParseGenomic(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return c.ToVCF(v)
}

// ToVCF converts a parsed genomic variant to its VCF record.
func (c *Converter) ToVCF(v *hgvs.Variant) (*VCFRecord, error) {
	chrom, err := hgvs.ChromosomeFromAccession(v.Accession)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var pos int64
	var ref, alt string

	switch v.Edit {
	case hgvs.Substitution:
		// Ref and alt come straight from the edit; no anchor, no lookup.
		pos = v.Start
		ref = v.Ref
		alt = v.Alt

	case hgvs.Insertion:
		// Left-anchored: the anchor is the base before the insertion point.
		pos = v.Start
		base, err := c.gw.FetchBase(v.Accession, pos)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRefFetch, err)
		}
		ref = base
		alt = base + v.Inserted

	case hgvs.Deletion:
		pos, ref, alt, err = c.buildAnchored(v.Accession, v.Start, v.End, "")
		if err != nil {
			return nil, err
		}

	case hgvs.DelIns:
		pos, ref, alt, err = c.buildAnchored(v.Accession, v.Start, v.End, v.Inserted)
		if err != nil {
			return nil, err
		}

	case hgvs.Duplication:
		// Right-anchored at the last duplicated base, unlike insertion's
		// left anchor. The asymmetry matches how duplications are reported.
		dup, err := c.gw.FetchRange(v.Accession, v.Start-1, v.End)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRefFetch, err)
		}
		pos = v.End
		base, err := c.gw.FetchBase(v.Accession, pos)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRefFetch, err)
		}
		ref = base
		alt = base + dup

	case hgvs.Inversion:
		// Delete the span, insert its reverse complement.
		orig, err := c.gw.FetchRange(v.Accession, v.Start-1, v.End)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRefFetch, err)
		}
		pos, ref, alt, err = c.buildAnchored(v.Accession, v.Start, v.End, ReverseComplement(orig))
		if err != nil {
			return nil, err
		}

	default:
		c.logger.Warn("unsupported edit type",
			zap.String("accession", v.Accession),
			zap.Stringer("edit", v.Edit))
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEdit, v.Edit)
	}

	return &VCFRecord{Chrom: chrom, Pos: pos, Ref: ref, Alt: alt}, nil
}

// buildAnchored builds the VCF representation for edits that need an anchor
// base before the affected span: deletion, delins, and inversion. The anchor
// sits at start-1 and is prepended to both alleles; insertedSeq is empty for
// a pure deletion.
func (c *Converter) buildAnchored(accession string, start, end int64, insertedSeq string) (int64, string, string, error) {
	pos := start - 1
	anchor, err := c.gw.FetchBase(accession, pos)
	if err != nil {
		return 0, "", "", fmt.Errorf("%w: %v", ErrRefFetch, err)
	}
	orig, err := c.gw.FetchRange(accession, start-1, end)
	if err != nil {
		return 0, "", "", fmt.Errorf("%w: %v", ErrRefFetch, err)
	}
	return pos, anchor + orig, anchor + insertedSeq, nil
}
