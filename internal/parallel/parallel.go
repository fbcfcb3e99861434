// Package parallel runs independent jobs on a bounded number of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution.
type Config struct {
	Workers int // Maximum concurrent jobs; values below 2 run sequentially.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	return Config{Workers: runtime.NumCPU()}
}

// For runs f(i) for i in [0, n) and returns the error of each job by index.
// Every job runs even when earlier ones fail.
func For(n int, f func(i int) error, cfg Config) []error {
	errs := make([]error, n)
	workers := min(cfg.Workers, n)
	if workers < 2 {
		for i := range n {
			errs[i] = f(i)
		}
		return errs
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				errs[i] = f(i)
			}
		}()
	}
	for i := range n {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return errs
}

// Failures returns the number of failed jobs and the first error.
func Failures(errs []error) (int, error) {
	var first error
	failed := 0
	for _, err := range errs {
		if err == nil {
			continue
		}
		if first == nil {
			first = err
		}
		failed++
	}
	return failed, first
}
