package convert

// complement maps each base to its pair, preserving case. N pairs with
// itself. Bases outside the map pass through unchanged rather than erroring;
// reference slices can carry IUPAC ambiguity codes.
var complement = map[byte]byte{
	'A': 'T', 'T': 'A', 'G': 'C', 'C': 'G', 'N': 'N',
	'a': 't', 't': 'a', 'g': 'c', 'c': 'g', 'n': 'n',
}

// ReverseComplement returns the reverse complement of a DNA sequence.
func ReverseComplement(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := seq[n-1-i]
		if c, ok := complement[b]; ok {
			b = c
		}
		out[i] = b
	}
	return string(out)
}
