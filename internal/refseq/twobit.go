package refseq

import (
	"fmt"
	"strconv"

	"github.com/mendelics/twobit"

	"github.com/varlift/varlift/internal/hgvs"
)

// Sex chromosomes and mitochondrion carry their own accessions; everything
// else maps to its chromosome number.
var specialChromNames = map[int]string{
	23:    "X",
	24:    "Y",
	12920: "MT", // NC_012920
}

// TwoBitGateway serves reference sequence from a local UCSC .2bit genome
// file. It needs no network access, which makes it the degradation path when
// the upstream sequence service is unreachable.
type TwoBitGateway struct {
	svc twobit.Service
}

// NewTwoBitGateway opens a .2bit reference genome (e.g. hg38.2bit).
func NewTwoBitGateway(path string) (*TwoBitGateway, error) {
	svc, err := twobit.NewDataService(path)
	if err != nil {
		return nil, fmt.Errorf("open 2bit %s: %w", path, err)
	}
	return &TwoBitGateway{svc: svc}, nil
}

// FetchBase returns the single reference base at a 1-based position.
func (g *TwoBitGateway) FetchBase(accession string, pos int64) (string, error) {
	return g.FetchRange(accession, pos-1, pos)
}

// FetchRange returns the reference sequence for a 0-based half-open interval.
func (g *TwoBitGateway) FetchRange(accession string, start, end int64) (string, error) {
	if end <= start {
		return "", fmt.Errorf("empty range [%d,%d) for %s", start, end, accession)
	}
	chrom, err := chromName(accession)
	if err != nil {
		return "", err
	}
	seq, err := g.svc.GenomicInterval(chrom, int(start), int(end))
	if err != nil {
		return "", fmt.Errorf("2bit %s:[%d,%d): %w", accession, start, end, err)
	}
	if int64(len(seq)) != end-start {
		return "", fmt.Errorf("2bit %s:[%d,%d): got %d bases, want %d",
			accession, start, end, len(seq), end-start)
	}
	return seq, nil
}

// chromName maps a RefSeq chromosome accession to the chromosome name used
// in .2bit files (the twobit service adds the "chr" prefix itself).
func chromName(accession string) (string, error) {
	n, err := hgvs.ChromosomeFromAccession(accession)
	if err != nil {
		return "", err
	}
	if name, ok := specialChromNames[n]; ok {
		return name, nil
	}
	return strconv.Itoa(n), nil
}
