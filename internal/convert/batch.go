package convert

import (
	"runtime"

	"go.uber.org/zap"
)

// MaxSampleFailures bounds how many failed inputs a summary retains for
// reporting.
const MaxSampleFailures = 3

// FailedItem records one input that could not be converted.
type FailedItem struct {
	Input string
	Err   error
}

// Summary aggregates the outcome of a batch conversion run.
type Summary struct {
	Total     int
	Converted int
	// Failed counts failures by reason label (parse, ref_fetch, ...).
	Failed map[string]int
	// Samples holds up to MaxSampleFailures failed inputs for reporting.
	Samples []FailedItem
}

// FailedTotal returns the number of inputs that could not be converted.
func (s *Summary) FailedTotal() int {
	n := 0
	for _, c := range s.Failed {
		n += c
	}
	return n
}

// ConvertAll converts every input, calling emit for each success in input
// order. A failed item is counted and logged but never aborts the run; only
// an emit error stops processing early. Conversions run on a worker pool.
func (c *Converter) ConvertAll(inputs []string, workers int, emit func(input string, rec *VCFRecord) error) (*Summary, error) {
	items := make(chan WorkItem, 2*runtime.NumCPU())
	go func() {
		defer close(items)
		for i, in := range inputs {
			items <- WorkItem{Seq: i, Input: in}
		}
	}()

	results := c.ParallelConvert(items, workers)

	summary := &Summary{
		Total:  len(inputs),
		Failed: make(map[string]int),
	}

	err := OrderedCollect(results, func(r WorkResult) error {
		if r.Err != nil {
			reason := FailureReason(r.Err)
			summary.Failed[reason]++
			if len(summary.Samples) < MaxSampleFailures {
				summary.Samples = append(summary.Samples, FailedItem{Input: r.Input, Err: r.Err})
			}
			c.logger.Warn("variant conversion failed",
				zap.String("input", r.Input),
				zap.String("reason", reason),
				zap.Bool("retryable", Retryable(r.Err)),
				zap.Error(r.Err))
			return nil
		}
		summary.Converted++
		return emit(r.Input, r.Record)
	})
	if err != nil {
		return summary, err
	}
	return summary, nil
}
