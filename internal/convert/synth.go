package convert

import "fmt"

// VCFToGenomicHGVS synthesizes the genomic HGVS string for a VCF-style
// variant on the given chromosome accession. The reverse of ToVCF for the
// anchored encodings it produces: the shared leading anchor base is trimmed
// off and the remainder classified as substitution, deletion, insertion, or
// delins. Pure string work, no reference lookup.
func VCFToGenomicHGVS(accession string, pos int64, ref, alt string) (string, error) {
	if ref == "" || alt == "" {
		return "", fmt.Errorf("%w: empty allele at %s:%d", ErrInvalidInterval, accession, pos)
	}
	if ref == alt {
		return "", fmt.Errorf("%w: identical alleles at %s:%d", ErrInvalidInterval, accession, pos)
	}

	// Substitution: both alleles a single differing base.
	if len(ref) == 1 && len(alt) == 1 {
		return fmt.Sprintf("%s:g.%d%s>%s", accession, pos, ref, alt), nil
	}

	// Anchored indel: trim the shared first base.
	if ref[0] == alt[0] {
		del := ref[1:]
		ins := alt[1:]
		start := pos + 1

		switch {
		case del != "" && ins == "":
			if len(del) == 1 {
				return fmt.Sprintf("%s:g.%ddel", accession, start), nil
			}
			end := start + int64(len(del)) - 1
			return fmt.Sprintf("%s:g.%d_%ddel", accession, start, end), nil

		case del == "" && ins != "":
			return fmt.Sprintf("%s:g.%d_%dins%s", accession, pos, pos+1, ins), nil

		default:
			if len(del) == 1 {
				return fmt.Sprintf("%s:g.%ddelins%s", accession, start, ins), nil
			}
			end := start + int64(len(del)) - 1
			return fmt.Sprintf("%s:g.%d_%ddelins%s", accession, start, end, ins), nil
		}
	}

	// Unanchored multi-base replacement (MNV): delins over the ref span.
	end := pos + int64(len(ref)) - 1
	if len(ref) == 1 {
		return fmt.Sprintf("%s:g.%ddelins%s", accession, pos, alt), nil
	}
	return fmt.Sprintf("%s:g.%d_%ddelins%s", accession, pos, end, alt), nil
}
