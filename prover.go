package r1csnark

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eon-protocol/r1csnark/algebra"
	"github.com/eon-protocol/r1csnark/pedersen"
)

// blinders are the eight scalars hiding the prover's commitments.
type blinders[S any] struct {
	a, b, c    S
	rA, rB, rC S
	one, two   S
}

// Prove synthesizes an assignment from cs and proves it satisfies the
// relation of pk. With zk set, rng supplies the randomizer and the blinders
// and must not be shared with a concurrent zero-knowledge Prove. Without zk
// rng is never read. A nil sponge uses a fresh one.
func (me *NARK[P, S]) Prove(pk *IndexProverKey[P, S], cs ConstraintSynthesizer[S], zk bool, rng io.Reader, sponge algebra.Sponge[S]) (*Proof[P, S], error) {
	if zk && rng == nil {
		return nil, ErrMissingRandomness
	}
	log := me.log.With().
		Str("protocol", PROTOCOL_NAME).
		Int("nbConstraints", pk.NumConstraints).
		Bool("zk", zk).
		Logger()
	start := time.Now()

	assignment, err := cs.GenerateAssignment()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstraintGeneration, err)
	}
	if err := checkAssignment(pk.IndexInfo, assignment); err != nil {
		return nil, err
	}
	f := me.field
	input, witness := assignment.Input, assignment.Witness

	// randomness is drawn sequentially before any parallel work
	var r []S
	var bl blinders[S]
	if zk {
		if r, err = algebra.RandomVector(f, rng, len(witness)); err != nil {
			return nil, err
		}
		scalars, err := algebra.RandomVector(f, rng, 8)
		if err != nil {
			return nil, err
		}
		bl = blinders[S]{
			a: scalars[0], b: scalars[1], c: scalars[2],
			rA: scalars[3], rB: scalars[4], rC: scalars[5],
			one: scalars[6], two: scalars[7],
		}
	}

	var zA, zB, zC, rA, rB, rC []S
	g := new(errgroup.Group)
	g.Go(func() error { zA = me.MatVecMul(pk.A, input, witness); return nil })
	g.Go(func() error { zB = me.MatVecMul(pk.B, input, witness); return nil })
	g.Go(func() error { zC = me.MatVecMul(pk.C, input, witness); return nil })
	if zk {
		zeros := make([]S, len(input))
		for i := range zeros {
			zeros[i] = f.Zero()
		}
		g.Go(func() error { rA = me.MatVecMul(pk.A, zeros, r); return nil })
		g.Go(func() error { rB = me.MatVecMul(pk.B, zeros, r); return nil })
		g.Go(func() error { rC = me.MatVecMul(pk.C, zeros, r); return nil })
	}
	_ = g.Wait()
	log.Debug().Dur("took", time.Since(start)).Msg("matrix-vector products done")

	ck := &pk.CommitterKey
	var first FirstRoundMessage[P]
	commit := func(dst *P, vec []S, blinder *S) func() error {
		return func() (err error) {
			*dst, err = pedersen.Commit(me.group, ck, vec, blinder)
			return err
		}
	}
	g = new(errgroup.Group)
	if !zk {
		g.Go(commit(&first.CommA, zA, nil))
		g.Go(commit(&first.CommB, zB, nil))
		g.Go(commit(&first.CommC, zC, nil))
	} else {
		first.Randomness = new(FirstRoundMessageRandomness[P])
		rnd := first.Randomness
		g.Go(commit(&first.CommA, zA, &bl.a))
		g.Go(commit(&first.CommB, zB, &bl.b))
		g.Go(commit(&first.CommC, zC, &bl.c))
		g.Go(commit(&rnd.CommRA, rA, &bl.rA))
		g.Go(commit(&rnd.CommRB, rB, &bl.rB))
		g.Go(commit(&rnd.CommRC, rC, &bl.rC))

		cross := algebra.Add(f, algebra.Hadamard(f, zA, rB), algebra.Hadamard(f, zB, rA))
		g.Go(commit(&rnd.Comm1, cross, &bl.one))
		g.Go(commit(&rnd.Comm2, algebra.Hadamard(f, rA, rB), &bl.two))
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	log.Debug().Dur("took", time.Since(start)).Msg("first round done")

	gamma := me.ComputeChallenge(pk.MatricesHash, input, &first, sponge)

	var second SecondRoundMessage[S]
	if zk {
		second.BlindedWitness = algebra.ScaleAdd(f, witness, gamma, r)
		gamma2 := f.Square(gamma)
		second.Randomness = &SecondRoundMessageRandomness[S]{
			SigmaA: f.Add(bl.a, f.Mul(gamma, bl.rA)),
			SigmaB: f.Add(bl.b, f.Mul(gamma, bl.rB)),
			SigmaC: f.Add(bl.c, f.Mul(gamma, bl.rC)),
			SigmaO: f.Add(f.Add(bl.c, f.Mul(gamma, bl.one)), f.Mul(gamma2, bl.two)),
		}
	} else {
		second.BlindedWitness = make([]S, len(witness))
		copy(second.BlindedWitness, witness)
	}

	log.Debug().Dur("took", time.Since(start)).Msg("prover done")
	return &Proof[P, S]{FirstMsg: first, SecondMsg: second}, nil
}
