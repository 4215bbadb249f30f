// Package convert translates variants between HGVS genomic, SPDI, and VCF
// notations.
package convert

import "errors"

// Conversion failure classes. Each failed conversion wraps exactly one of
// these sentinels so batch callers can classify with errors.Is: a reference
// fetch failure is retryable, the others are not.
var (
	ErrParse           = errors.New("notation parse failed")
	ErrUnsupportedEdit = errors.New("unsupported edit type")
	ErrRefFetch        = errors.New("reference sequence fetch failed")
	ErrInvalidInterval = errors.New("degenerate variant interval")
)

// Retryable reports whether a conversion failure may succeed on a later
// attempt (a transient reference fetch failure, as opposed to bad input).
func Retryable(err error) bool {
	return errors.Is(err, ErrRefFetch)
}

// FailureReason returns a short stable label for a conversion error, used
// for failure counters and logs.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrUnsupportedEdit):
		return "unsupported_edit"
	case errors.Is(err, ErrRefFetch):
		return "ref_fetch"
	case errors.Is(err, ErrInvalidInterval):
		return "invalid_interval"
	default:
		return "other"
	}
}
