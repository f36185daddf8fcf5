package fuzzybbox

import (
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

type options struct {
	logger  zerolog.Logger
	workers int
	seed    uint64
}

// Option configures overlap kernels and Disambiguator
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:  zerolog.Nop(),
		workers: runtime.GOMAXPROCS(0),
		seed:    0,
	}
}

func newOptions(opts ...Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets logger for diagnostics. Default is zerolog.Nop()
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithWorkers sets max number of goroutines processing rows in parallel.
// Values below 1 mean sequential processing. Default is GOMAXPROCS.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = maxInt(workers, 1)
	}
}

// WithSeed sets seed of random source used by Monte Carlo estimation. Default is 0
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// forEachRow calls fn for every row index in [0, rows) using at most workers goroutines.
// fn must only write data owned by its row.
func forEachRow(rows, workers int, fn func(row int)) {
	workers = minInt(maxInt(workers, 1), rows)
	if workers <= 1 {
		for i := 0; i < rows; i++ {
			fn(i)
		}
		return
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}
	for i := 0; i < rows; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}
