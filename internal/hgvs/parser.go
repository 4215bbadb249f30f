package hgvs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Regexes for the posedit part of a genomic HGVS string, tried in order.
// delins must come before del so "123delinsA" is not cut short.
var (
	reAccession = regexp.MustCompile(`^([A-Z]+_\d+\.\d+):g\.(.+)$`)
	reSub       = regexp.MustCompile(`^(\d+)([ACGTNacgtn])>([ACGTNacgtn])$`)
	reDelIns    = regexp.MustCompile(`^(\d+)(?:_(\d+))?delins([ACGTNacgtn]+)$`)
	reDel       = regexp.MustCompile(`^(\d+)(?:_(\d+))?del$`)
	reDup       = regexp.MustCompile(`^(\d+)(?:_(\d+))?dup$`)
	reIns       = regexp.MustCompile(`^(\d+)_(\d+)ins([ACGTNacgtn]+)$`)
	reInv       = regexp.MustCompile(`^(\d+)_(\d+)inv$`)
)

// ParseGenomic parses a genomic HGVS string like "NC_000001.11:g.216217352C>T"
// into a Variant. Coding (c.) and protein (p.) notations are not genomic
// coordinates and are rejected.
func ParseGenomic(input string) (*Variant, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty variant notation")
	}

	m := reAccession.FindStringSubmatch(input)
	if m == nil {
		return nil, fmt.Errorf("cannot parse %q as genomic HGVS (expected accession:g.posedit)", input)
	}
	accession, posedit := m[1], m[2]

	if v, ok := parseSub(accession, posedit); ok {
		return v, nil
	}
	if v, ok := parseDelIns(accession, posedit); ok {
		return v, nil
	}
	if v, ok := parseRangeEdit(accession, posedit, reDel, Deletion); ok {
		return v, nil
	}
	if v, ok := parseRangeEdit(accession, posedit, reDup, Duplication); ok {
		return v, nil
	}
	if v, ok := parseIns(accession, posedit); ok {
		return v, nil
	}
	if v, ok := parseInv(accession, posedit); ok {
		return v, nil
	}

	return nil, fmt.Errorf("unrecognized edit in %q", input)
}

func parseSub(accession, posedit string) (*Variant, bool) {
	m := reSub.FindStringSubmatch(posedit)
	if m == nil {
		return nil, false
	}
	pos, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil, false
	}
	return &Variant{
		Accession: accession,
		Start:     pos,
		End:       pos,
		Edit:      Substitution,
		Ref:       strings.ToUpper(m[2]),
		Alt:       strings.ToUpper(m[3]),
	}, true
}

func parseDelIns(accession, posedit string) (*Variant, bool) {
	m := reDelIns.FindStringSubmatch(posedit)
	if m == nil {
		return nil, false
	}
	start, end, ok := parseSpan(m[1], m[2])
	if !ok {
		return nil, false
	}
	return &Variant{
		Accession: accession,
		Start:     start,
		End:       end,
		Edit:      DelIns,
		Inserted:  strings.ToUpper(m[3]),
	}, true
}

func parseRangeEdit(accession, posedit string, re *regexp.Regexp, edit EditType) (*Variant, bool) {
	m := re.FindStringSubmatch(posedit)
	if m == nil {
		return nil, false
	}
	start, end, ok := parseSpan(m[1], m[2])
	if !ok {
		return nil, false
	}
	return &Variant{Accession: accession, Start: start, End: end, Edit: edit}, true
}

func parseIns(accession, posedit string) (*Variant, bool) {
	m := reIns.FindStringSubmatch(posedit)
	if m == nil {
		return nil, false
	}
	start, end, ok := parseSpan(m[1], m[2])
	if !ok || end != start+1 {
		// HGVS insertions sit between two adjacent bases.
		return nil, false
	}
	return &Variant{
		Accession: accession,
		Start:     start,
		End:       end,
		Edit:      Insertion,
		Inserted:  strings.ToUpper(m[3]),
	}, true
}

func parseInv(accession, posedit string) (*Variant, bool) {
	m := reInv.FindStringSubmatch(posedit)
	if m == nil {
		return nil, false
	}
	start, end, ok := parseSpan(m[1], m[2])
	if !ok {
		return nil, false
	}
	return &Variant{Accession: accession, Start: start, End: end, Edit: Inversion}, true
}

// parseSpan parses a start and optional end position. A missing end means a
// single-position edit (end = start). Reversed spans are rejected.
func parseSpan(startStr, endStr string) (int64, int64, bool) {
	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	end := start
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil || end < start {
			return 0, 0, false
		}
	}
	return start, end, true
}
