package algebra

import (
	"io"
	"runtime"
	"sync"
)

// Hadamard returns the elementwise product a∘b. Both vectors must have the
// same length.
func Hadamard[S any](f Field[S], a, b []S) []S {
	out := make([]S, len(a))
	Parallelize(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = f.Mul(a[i], b[i])
		}
	})
	return out
}

// ScaleAdd returns a + s·b elementwise.
func ScaleAdd[S any](f Field[S], a []S, s S, b []S) []S {
	out := make([]S, len(a))
	Parallelize(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = f.Add(a[i], f.Mul(s, b[i]))
		}
	})
	return out
}

// Add returns a + b elementwise.
func Add[S any](f Field[S], a, b []S) []S {
	out := make([]S, len(a))
	for i := range a {
		out[i] = f.Add(a[i], b[i])
	}
	return out
}

// Sub returns a - b elementwise.
func Sub[S any](f Field[S], a, b []S) []S {
	out := make([]S, len(a))
	for i := range a {
		out[i] = f.Sub(a[i], b[i])
	}
	return out
}

// Scale returns s·a elementwise.
func Scale[S any](f Field[S], s S, a []S) []S {
	out := make([]S, len(a))
	for i := range a {
		out[i] = f.Mul(s, a[i])
	}
	return out
}

// RandomVector samples n uniform elements, in order, from rng.
func RandomVector[S any](f Field[S], rng io.Reader, n int) ([]S, error) {
	out := make([]S, n)
	for i := range out {
		v, err := f.Random(rng)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Parallelize splits [0, nbIterations) in contiguous chunks and runs work on
// each chunk in its own goroutine. Chunks are disjoint, so work may write to
// out[start:end] without locking and results stay in index order.
func Parallelize(nbIterations int, work func(int, int), maxCpus ...int) {
	nbTasks := runtime.NumCPU()
	if len(maxCpus) == 1 && maxCpus[0] > 0 {
		nbTasks = maxCpus[0]
	}
	if nbTasks > nbIterations {
		nbTasks = nbIterations
	}
	if nbTasks <= 1 {
		work(0, nbIterations)
		return
	}
	nbIterationsPerCpus := nbIterations / nbTasks
	extraTasks := nbIterations - nbTasks*nbIterationsPerCpus

	var wg sync.WaitGroup
	wg.Add(nbTasks)
	start := 0
	for i := 0; i < nbTasks; i++ {
		end := start + nbIterationsPerCpus
		if i < extraTasks {
			end++
		}
		go func(start, end int) {
			defer wg.Done()
			work(start, end)
		}(start, end)
		start = end
	}
	wg.Wait()
}
