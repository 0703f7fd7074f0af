package accumulation

import (
	"io"

	"github.com/eon-protocol/r1csnark"
)

type PublicParameters struct{}

// PredicateParams fixes the number of NARK proofs one Prove call may fold.
type PredicateParams struct {
	Depth int
}

type ProverKey[P, S any] struct {
	Depth int
	Index *r1csnark.IndexProverKey[P, S]
}

// VerifierKey needs the relation's identity only: verification replays the
// folding on commitments and never touches the matrices.
type VerifierKey struct {
	Depth     int
	IndexInfo r1csnark.IndexInfo
}

type DeciderKey[P, S any] struct {
	Index *r1csnark.IndexVerifierKey[P, S]
}

// InputInstance is the verifier's view of a NARK proof.
type InputInstance[P, S any] struct {
	Input    []S
	FirstMsg r1csnark.FirstRoundMessage[P]
}

type InputWitness[S any] struct {
	SecondMsg r1csnark.SecondRoundMessage[S]
}

// Input is a NARK proof with its public input, to be folded.
type Input[P, S any] struct {
	Instance InputInstance[P, S]
	Witness  InputWitness[S]
}

// NewInput pairs a proof made with a fresh sponge with its public input.
func NewInput[P, S any](input []S, proof *r1csnark.Proof[P, S]) Input[P, S] {
	return Input[P, S]{
		Instance: InputInstance[P, S]{Input: input, FirstMsg: proof.FirstMsg},
		Witness:  InputWitness[S]{SecondMsg: proof.SecondMsg},
	}
}

// AccumulatorInstance is a relaxed R1CS instance.
type AccumulatorInstance[P, S any] struct {
	Input                      []S
	Mu                         S
	CommA, CommB, CommC, CommE P
}

// AccumulatorWitness opens an AccumulatorInstance.
type AccumulatorWitness[S any] struct {
	Witness                        []S
	SigmaA, SigmaB, SigmaC, SigmaE S
}

type Accumulator[P, S any] struct {
	Instance AccumulatorInstance[P, S]
	Witness  AccumulatorWitness[S]
}

// Proof lets the verifier recompute the folded instance: one committed cross
// term per fold and, in zero-knowledge mode, the random instance folded first.
type Proof[P, S any] struct {
	CrossTerms []P
	Randomness *AccumulatorInstance[P, S]
}

// MakeZK selects zero-knowledge accumulation. Rng must be set when Enabled.
type MakeZK struct {
	Enabled bool
	Rng     io.Reader
}

func ZK(rng io.Reader) MakeZK { return MakeZK{Enabled: true, Rng: rng} }

var NoZK = MakeZK{}
