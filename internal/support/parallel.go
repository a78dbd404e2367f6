package support

import (
	"runtime"
	"sync"

	"github.com/fusionspan/fusionspan/internal/breakpoint"
)

// workResult holds the tally for a single breakpoint record.
type workResult struct {
	seq     int
	cluster string
	gene    string
	total   int
	err     error
}

// CountParallel computes the support table using a pool of workers, one
// breakpoint record per work item. Results are folded into the table in
// input order, so the last-write-wins contract per (cluster, gene) key is
// identical to Count. If workers is 0, runtime.NumCPU() is used. Requires a
// WindowQuery that is safe for concurrent use.
func (c *Counter) CountParallel(breaks []breakpoint.Breakpoint, workers int) (*Table, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(breaks) && len(breaks) > 0 {
		workers = len(breaks)
	}

	items := make(chan int, 2*workers)
	go func() {
		defer close(items)
		for i := range breaks {
			items <- i
		}
	}()

	results := make(chan workResult, 2*workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range items {
				gene, total, err := c.countOne(&breaks[i])
				results <- workResult{
					seq:     i,
					cluster: breaks[i].Cluster,
					gene:    gene,
					total:   total,
					err:     err,
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	table := NewTable()
	if err := orderedCollect(results, func(r workResult) error {
		if r.err != nil {
			return r.err
		}
		table.Set(r.cluster, r.gene, r.total)
		return nil
	}); err != nil {
		return nil, err
	}
	return table, nil
}

// orderedCollect calls fn for each result in sequence order, buffering
// out-of-order results until the next expected sequence number arrives.
// Blocks until the results channel is closed.
func orderedCollect(results <-chan workResult, fn func(workResult) error) error {
	pending := make(map[int]workResult)
	next := 0

	for r := range results {
		pending[r.seq] = r

		for {
			rr, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
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
