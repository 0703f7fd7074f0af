package accumulation

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/eon-protocol/r1csnark"
	"github.com/eon-protocol/r1csnark/algebra"
)

// Scheme is the accumulation scheme for the NARK it wraps.
type Scheme[P, S any] struct {
	nark  *r1csnark.NARK[P, S]
	field algebra.Field[S]
	group algebra.Group[P, S]
	log   zerolog.Logger
}

func New[P, S any](nark *r1csnark.NARK[P, S]) *Scheme[P, S] {
	return &Scheme[P, S]{
		nark:  nark,
		field: nark.Field(),
		group: nark.Group(),
		log:   nark.Logger().With().Str("protocol", PROTOCOL_NAME).Logger(),
	}
}

// Setup reads nothing from rng: commitment generators are derived by hashing.
func (me *Scheme[P, S]) Setup(_ io.Reader) (PublicParameters, error) {
	return PublicParameters{}, nil
}

// Index specializes the scheme to the relation of predicateIndex.
func (me *Scheme[P, S]) Index(_ PublicParameters, params PredicateParams, predicateIndex *r1csnark.IndexProverKey[P, S]) (*ProverKey[P, S], *VerifierKey, *DeciderKey[P, S], error) {
	if params.Depth < 1 {
		return nil, nil, nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, params.Depth)
	}
	if predicateIndex == nil {
		return nil, nil, nil, fmt.Errorf("%w: no predicate index", ErrRelationMismatch)
	}
	pk := &ProverKey[P, S]{Depth: params.Depth, Index: predicateIndex}
	vk := &VerifierKey{Depth: params.Depth, IndexInfo: predicateIndex.IndexInfo}
	dk := &DeciderKey[P, S]{Index: predicateIndex}
	return pk, vk, dk, nil
}

func checkBounds(depth, nbInputs, nbOld int) error {
	if nbInputs > depth {
		return &BoundExceededError{What: "inputs", Bound: depth, Got: nbInputs}
	}
	if nbOld > 1 {
		return &BoundExceededError{What: "accumulators", Bound: 1, Got: nbOld}
	}
	if nbInputs+nbOld == 0 {
		return ErrNothingToAccumulate
	}
	return nil
}

func checkInputInstance[P, S any](info r1csnark.IndexInfo, i int, in *InputInstance[P, S]) error {
	if len(in.Input) != info.NumInstanceVariables {
		return &RelationMismatchError{What: "input", Index: i,
			Reason: fmt.Sprintf("%d instance variables, want %d", len(in.Input), info.NumInstanceVariables)}
	}
	return nil
}

func checkInput[P, S any](info r1csnark.IndexInfo, i int, in *Input[P, S]) error {
	if err := checkInputInstance(info, i, &in.Instance); err != nil {
		return err
	}
	if n := len(in.Witness.SecondMsg.BlindedWitness); n != info.NumWitnessVariables() {
		return &RelationMismatchError{What: "input", Index: i,
			Reason: fmt.Sprintf("%d witness variables, want %d", n, info.NumWitnessVariables())}
	}
	if (in.Instance.FirstMsg.Randomness == nil) != (in.Witness.SecondMsg.Randomness == nil) {
		return &RelationMismatchError{What: "input", Index: i, Reason: "randomness presence differs between messages"}
	}
	return nil
}

func checkAccumulatorInstance[P, S any](info r1csnark.IndexInfo, i int, acc *AccumulatorInstance[P, S]) error {
	if len(acc.Input) != info.NumInstanceVariables {
		return &RelationMismatchError{What: "accumulator", Index: i,
			Reason: fmt.Sprintf("%d instance variables, want %d", len(acc.Input), info.NumInstanceVariables)}
	}
	return nil
}

func checkAccumulator[P, S any](info r1csnark.IndexInfo, i int, acc *Accumulator[P, S]) error {
	if err := checkAccumulatorInstance(info, i, &acc.Instance); err != nil {
		return err
	}
	if n := len(acc.Witness.Witness); n != info.NumWitnessVariables() {
		return &RelationMismatchError{What: "accumulator", Index: i,
			Reason: fmt.Sprintf("%d witness variables, want %d", n, info.NumWitnessVariables())}
	}
	return nil
}

// relaxInstance turns a NARK proof's first message into a relaxed instance
// with μ = 1: C_X = comm_x + γ·comm_r_x and
// C_E = comm_c + γ·comm_1 + γ²·comm_2 − C_C.
func (me *Scheme[P, S]) relaxInstance(hash [32]byte, in *InputInstance[P, S]) AccumulatorInstance[P, S] {
	f, g := me.field, me.group
	first := &in.FirstMsg
	inst := AccumulatorInstance[P, S]{
		Input: in.Input,
		Mu:    f.One(),
		CommA: first.CommA,
		CommB: first.CommB,
		CommC: first.CommC,
	}
	hadamard := first.CommC
	if rnd := first.Randomness; rnd != nil {
		gamma := me.nark.ComputeChallenge(hash, in.Input, first, nil)
		inst.CommA = g.Add(inst.CommA, g.ScalarMul(rnd.CommRA, gamma))
		inst.CommB = g.Add(inst.CommB, g.ScalarMul(rnd.CommRB, gamma))
		inst.CommC = g.Add(inst.CommC, g.ScalarMul(rnd.CommRC, gamma))
		hadamard = g.Add(hadamard, g.Add(
			g.ScalarMul(rnd.Comm1, gamma),
			g.ScalarMul(rnd.Comm2, f.Square(gamma)),
		))
	}
	inst.CommE = g.Add(hadamard, g.Neg(inst.CommC))
	return inst
}

// relaxWitness is the opening of relaxInstance: σ_E = σ_o − σ_c.
func (me *Scheme[P, S]) relaxWitness(w *InputWitness[S]) AccumulatorWitness[S] {
	f := me.field
	acc := AccumulatorWitness[S]{
		Witness: w.SecondMsg.BlindedWitness,
		SigmaA:  f.Zero(),
		SigmaB:  f.Zero(),
		SigmaC:  f.Zero(),
		SigmaE:  f.Zero(),
	}
	if rnd := w.SecondMsg.Randomness; rnd != nil {
		acc.SigmaA, acc.SigmaB, acc.SigmaC = rnd.SigmaA, rnd.SigmaB, rnd.SigmaC
		acc.SigmaE = f.Sub(rnd.SigmaO, rnd.SigmaC)
	}
	return acc
}

// foldInstances returns a + r·b, with C_E = E_a + r·C_T + r²·E_b.
func (me *Scheme[P, S]) foldInstances(a, b *AccumulatorInstance[P, S], crossTerm P, r S) AccumulatorInstance[P, S] {
	f, g := me.field, me.group
	r2 := f.Square(r)
	return AccumulatorInstance[P, S]{
		Input: algebra.ScaleAdd(f, a.Input, r, b.Input),
		Mu:    f.Add(a.Mu, f.Mul(r, b.Mu)),
		CommA: g.Add(a.CommA, g.ScalarMul(b.CommA, r)),
		CommB: g.Add(a.CommB, g.ScalarMul(b.CommB, r)),
		CommC: g.Add(a.CommC, g.ScalarMul(b.CommC, r)),
		CommE: g.Add(g.Add(a.CommE, g.ScalarMul(crossTerm, r)), g.ScalarMul(b.CommE, r2)),
	}
}

func (me *Scheme[P, S]) foldWitnesses(a, b *AccumulatorWitness[S], sigmaT, r S) AccumulatorWitness[S] {
	f := me.field
	r2 := f.Square(r)
	return AccumulatorWitness[S]{
		Witness: algebra.ScaleAdd(f, a.Witness, r, b.Witness),
		SigmaA:  f.Add(a.SigmaA, f.Mul(r, b.SigmaA)),
		SigmaB:  f.Add(a.SigmaB, f.Mul(r, b.SigmaB)),
		SigmaC:  f.Add(a.SigmaC, f.Mul(r, b.SigmaC)),
		SigmaE:  f.Add(f.Add(a.SigmaE, f.Mul(r, sigmaT)), f.Mul(r2, b.SigmaE)),
	}
}

func instancesEqual[P, S any](f algebra.Field[S], g algebra.Group[P, S], a, b *AccumulatorInstance[P, S]) bool {
	if len(a.Input) != len(b.Input) {
		return false
	}
	for i := range a.Input {
		if !f.Equal(a.Input[i], b.Input[i]) {
			return false
		}
	}
	return f.Equal(a.Mu, b.Mu) &&
		g.Equal(a.CommA, b.CommA) &&
		g.Equal(a.CommB, b.CommB) &&
		g.Equal(a.CommC, b.CommC) &&
		g.Equal(a.CommE, b.CommE)
}
