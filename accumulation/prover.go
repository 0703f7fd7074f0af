package accumulation

import (
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eon-protocol/r1csnark"
	"github.com/eon-protocol/r1csnark/algebra"
	"github.com/eon-protocol/r1csnark/pedersen"
)

// relaxed is an accumulator together with its matrix-vector products, which
// fold linearly and so are computed once per input.
type relaxed[P, S any] struct {
	acc        Accumulator[P, S]
	zA, zB, zC []S
}

func (me *Scheme[P, S]) products(pk *r1csnark.IndexProverKey[P, S], acc Accumulator[P, S]) *relaxed[P, S] {
	x, w := acc.Instance.Input, acc.Witness.Witness
	r := &relaxed[P, S]{acc: acc}
	g := new(errgroup.Group)
	g.Go(func() error { r.zA = me.nark.MatVecMul(pk.A, x, w); return nil })
	g.Go(func() error { r.zB = me.nark.MatVecMul(pk.B, x, w); return nil })
	g.Go(func() error { r.zC = me.nark.MatVecMul(pk.C, x, w); return nil })
	_ = g.Wait()
	return r
}

// randomAccumulator samples a uniformly random valid relaxed instance.
func (me *Scheme[P, S]) randomAccumulator(pk *r1csnark.IndexProverKey[P, S], zk MakeZK) (*relaxed[P, S], error) {
	f := me.field
	x, err := algebra.RandomVector(f, zk.Rng, pk.NumInstanceVariables)
	if err != nil {
		return nil, err
	}
	w, err := algebra.RandomVector(f, zk.Rng, pk.NumWitnessVariables())
	if err != nil {
		return nil, err
	}
	s, err := algebra.RandomVector(f, zk.Rng, 5)
	if err != nil {
		return nil, err
	}
	acc := Accumulator[P, S]{
		Instance: AccumulatorInstance[P, S]{Input: x, Mu: s[0]},
		Witness:  AccumulatorWitness[S]{Witness: w, SigmaA: s[1], SigmaB: s[2], SigmaC: s[3], SigmaE: s[4]},
	}
	r := me.products(pk, acc)

	inst, wit := &r.acc.Instance, &r.acc.Witness
	e := algebra.Sub(f, algebra.Hadamard(f, r.zA, r.zB), algebra.Scale(f, inst.Mu, r.zC))
	ck := &pk.CommitterKey
	commit := func(dst *P, vec []S, blinder *S) func() error {
		return func() (err error) {
			*dst, err = pedersen.Commit(me.group, ck, vec, blinder)
			return err
		}
	}
	g := new(errgroup.Group)
	g.Go(commit(&inst.CommA, r.zA, &wit.SigmaA))
	g.Go(commit(&inst.CommB, r.zB, &wit.SigmaB))
	g.Go(commit(&inst.CommC, r.zC, &wit.SigmaC))
	g.Go(commit(&inst.CommE, e, &wit.SigmaE))
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

// crossTerm is A·z1∘B·z2 + A·z2∘B·z1 − μ1·C·z2 − μ2·C·z1.
func (me *Scheme[P, S]) crossTerm(a, b *relaxed[P, S]) []S {
	f := me.field
	mu1, mu2 := a.acc.Instance.Mu, b.acc.Instance.Mu
	t := make([]S, len(a.zA))
	algebra.Parallelize(len(t), func(start, end int) {
		for i := start; i < end; i++ {
			v := f.Add(f.Mul(a.zA[i], b.zB[i]), f.Mul(b.zA[i], a.zB[i]))
			v = f.Sub(v, f.Mul(mu1, b.zC[i]))
			t[i] = f.Sub(v, f.Mul(mu2, a.zC[i]))
		}
	}, me.nark.NbTasks())
	return t
}

// Prove folds inputs and old into a new accumulator. Bounds are checked
// before any commitment is computed. With zk enabled a random accumulator is
// folded first, so the result reveals nothing about the inputs' witnesses.
// A nil sponge uses a fresh one; Verify must be given an identically
// initialized sponge.
func (me *Scheme[P, S]) Prove(pk *ProverKey[P, S], inputs []Input[P, S], old []Accumulator[P, S], zk MakeZK, sponge algebra.Sponge[S]) (*Accumulator[P, S], *Proof[P, S], error) {
	if err := checkBounds(pk.Depth, len(inputs), len(old)); err != nil {
		return nil, nil, err
	}
	if zk.Enabled && zk.Rng == nil {
		return nil, nil, r1csnark.ErrMissingRandomness
	}
	index := pk.Index
	for i := range inputs {
		if err := checkInput(index.IndexInfo, i, &inputs[i]); err != nil {
			return nil, nil, err
		}
	}
	for i := range old {
		if err := checkAccumulator(index.IndexInfo, i, &old[i]); err != nil {
			return nil, nil, err
		}
	}

	log := me.log.With().
		Int("nbConstraints", index.NumConstraints).
		Int("nbInputs", len(inputs)).
		Int("nbAccumulators", len(old)).
		Bool("zk", zk.Enabled).
		Logger()
	start := time.Now()

	proof := new(Proof[P, S])
	var list []*relaxed[P, S]
	if zk.Enabled {
		r, err := me.randomAccumulator(index, zk)
		if err != nil {
			return nil, nil, fmt.Errorf("random accumulator: %w", err)
		}
		proof.Randomness = &r.acc.Instance
		list = append(list, r)
	}
	for i := range old {
		list = append(list, me.products(index, old[i]))
	}
	for i := range inputs {
		acc := Accumulator[P, S]{
			Instance: me.relaxInstance(index.MatricesHash, &inputs[i].Instance),
			Witness:  me.relaxWitness(&inputs[i].Witness),
		}
		list = append(list, me.products(index, acc))
	}

	f := me.field
	ts := me.newTranscript(index.MatricesHash, sponge)
	running := list[0]
	for _, next := range list[1:] {
		sigmaT := f.Zero()
		var blinder *S
		if zk.Enabled {
			s, err := f.Random(zk.Rng)
			if err != nil {
				return nil, nil, err
			}
			sigmaT, blinder = s, &s
		}
		commT, err := pedersen.Commit(me.group, &index.CommitterKey, me.crossTerm(running, next), blinder)
		if err != nil {
			return nil, nil, fmt.Errorf("commit cross term: %w", err)
		}
		proof.CrossTerms = append(proof.CrossTerms, commT)

		r := ts.challenge(&running.acc.Instance, &next.acc.Instance, commT, r1csnark.CHALLENGE_SIZE)
		running = &relaxed[P, S]{
			acc: Accumulator[P, S]{
				Instance: me.foldInstances(&running.acc.Instance, &next.acc.Instance, commT, r),
				Witness:  me.foldWitnesses(&running.acc.Witness, &next.acc.Witness, sigmaT, r),
			},
			zA: algebra.ScaleAdd(f, running.zA, r, next.zA),
			zB: algebra.ScaleAdd(f, running.zB, r, next.zB),
			zC: algebra.ScaleAdd(f, running.zC, r, next.zC),
		}
	}

	log.Debug().Int("nbFolds", len(proof.CrossTerms)).Dur("took", time.Since(start)).Msg("accumulation prover done")
	// detach from the caller's input and witness
	acc := running.acc
	acc.Instance.Input = slices.Clone(acc.Instance.Input)
	acc.Witness.Witness = slices.Clone(acc.Witness.Witness)
	return &acc, proof, nil
}
