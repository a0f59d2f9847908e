package setsum

import (
	"sync"

	"github.com/kaspanet/setsum/infrastructure/logger"
)

// SumParallel returns the Setsum of elements, computed by the given number of
// goroutines. Every goroutine folds its share of the elements into a private
// Setsum and the partial Setsums are merged once all of them are done, so no
// locking is involved. workers <= 1 computes the Setsum on the calling
// goroutine.
func SumParallel(elements [][]byte, workers int) *Setsum {
	onEnd := logger.LogAndMeasureExecutionTime(log, "SumParallel")
	defer onEnd()

	if workers > len(elements) {
		workers = len(elements)
	}
	if workers <= 1 {
		result := New()
		result.InsertAll(elements...)
		return result
	}

	log.Debugf("Summing %d elements with %d workers", len(elements), workers)
	partials := make([]*Setsum, workers)
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for worker := 0; worker < workers; worker++ {
		worker := worker
		spawn("SumParallel-worker", func() {
			defer wg.Done()
			partial := New()
			for i := worker; i < len(elements); i += workers {
				partial.Insert(elements[i])
			}
			partials[worker] = partial
		})
	}
	wg.Wait()

	return Merge(partials...)
}
