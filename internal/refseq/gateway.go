// Package refseq fetches reference genome sequence by chromosome accession.
package refseq

// Gateway supplies reference sequence for a chromosome accession. FetchBase
// uses 1-based positions, matching HGVS coordinates; FetchRange uses a
// 0-based half-open interval, matching the upstream sequence services.
//
// Implementations may memoize internally but expose no mutable state to
// callers. Fetch failures (timeouts, unknown accessions, network errors) are
// returned as errors; callers decide whether to retry.
type Gateway interface {
	FetchBase(accession string, pos int64) (string, error)
	FetchRange(accession string, start, end int64) (string, error)
}
