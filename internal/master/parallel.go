package master

import (
	"runtime"
	"sync"
)

// EvalSeries evaluates each observable at every sampled state, producing
// one series per observable name. Samples are independent, so the work
// is fanned out across them.
func EvalSeries(states []State, times []float64, observables []Observable) map[string][]float64 {
	series := make(map[string][]float64, len(observables))
	for _, obs := range observables {
		series[obs.Name()] = make([]float64, len(states))
	}

	for _, obs := range observables {
		obs := obs
		out := series[obs.Name()]
		ParallelFor(len(states), 16, func(start, end int) {
			for i := start; i < end; i++ {
				out[i] = obs.Eval(states[i], times[i])
			}
		})
	}

	return series
}

// ParallelFor executes a function in parallel over a range [0, n)
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := runtime.NumCPU()
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
