package convert

import (
	"runtime"
	"strings"
	"sync"
)

// WorkItem holds one notation string queued for conversion.
type WorkItem struct {
	Seq   int
	Input string
}

// WorkResult holds the conversion output for a single notation.
type WorkResult struct {
	Seq    int
	Input  string
	Record *VCFRecord
	Err    error
}

// Convert converts a notation string to VCF, detecting whether it is SPDI or
// genomic HGVS. SPDI is tried first since its shape is unambiguous.
func (c *Converter) Convert(input string) (*VCFRecord, error) {
	if LooksLikeSPDI(input) {
		return c.SPDIToVCF(input)
	}
	return c.HGVSGenomicToVCF(input)
}

// LooksLikeSPDI reports whether the string has SPDI's four-field colon shape
// rather than HGVS's accession:g.posedit shape.
func LooksLikeSPDI(input string) bool {
	return strings.Count(input, ":") == 3 && !strings.Contains(input, ":g.")
}

// ParallelConvert converts work items using a pool of workers. Results
// arrive on the returned channel in completion order; use OrderedCollect to
// consume them in sequence-number order. If workers is 0, runtime.NumCPU()
// is used.
func (c *Converter) ParallelConvert(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for item := range items {
				rec, err := c.Convert(item.Input)
				results <- WorkResult{
					Seq:    item.Seq,
					Input:  item.Input,
					Record: rec,
					Err:    err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order,
// buffering out-of-order results until the next expected sequence number
// arrives. Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
