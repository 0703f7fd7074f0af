package r1csnark

import (
	"github.com/rs/zerolog"

	"github.com/eon-protocol/r1csnark/algebra"
)

// PublicParameters of the NARK. The scheme is transparent: commitment
// generators are derived by hashing, so there is nothing to sample.
type PublicParameters struct{}

// NARK bundles the field, group and sponge factory the prover and verifier
// run over. It holds no per-proof state and is safe for concurrent use.
type NARK[P, S any] struct {
	field     algebra.Field[S]
	group     algebra.Group[P, S]
	newSponge func() algebra.Sponge[S]
	nbTasks   int
	log       zerolog.Logger
}

// New returns a NARK over the given capabilities. newSponge is called for
// every challenge derivation that is not handed an explicit sponge.
func New[P, S any](field algebra.Field[S], group algebra.Group[P, S], newSponge func() algebra.Sponge[S], opts ...Option) *NARK[P, S] {
	cfg := newConfig(opts...)
	return &NARK[P, S]{
		field:     field,
		group:     group,
		newSponge: newSponge,
		nbTasks:   cfg.nbTasks,
		log:       cfg.log,
	}
}

func (me *NARK[P, S]) Setup() PublicParameters { return PublicParameters{} }

func (me *NARK[P, S]) Field() algebra.Field[S] { return me.field }

func (me *NARK[P, S]) Group() algebra.Group[P, S] { return me.group }

func (me *NARK[P, S]) NewSponge() algebra.Sponge[S] { return me.newSponge() }

func (me *NARK[P, S]) Logger() zerolog.Logger { return me.log }

func (me *NARK[P, S]) NbTasks() int { return me.nbTasks }

// MatVecMul returns M·(input ∥ witness) using the NARK's task bound.
func (me *NARK[P, S]) MatVecMul(m Matrix[S], input, witness []S) []S {
	return MatVecMul(me.field, m, input, witness, me.nbTasks)
}
