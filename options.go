package r1csnark

import (
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

type config struct {
	log         zerolog.Logger
	nbTasks     int
	accelerator string
}

func newConfig(opts ...Option) config {
	cfg := config{log: logger.Logger()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a NARK.
type Option func(*config)

// WithLogger replaces gnark's global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithNbTasks bounds the goroutines used by matrix-vector products and MSMs.
// 0 uses every CPU.
func WithNbTasks(n int) Option {
	return func(c *config) { c.nbTasks = n }
}

// WithAccelerator selects the MSM backend of NewBLS12381. "icicle" runs MSMs
// on the GPU when built with the icicle tag and falls back to the CPU otherwise.
func WithAccelerator(name string) Option {
	return func(c *config) { c.accelerator = name }
}
