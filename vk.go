package r1csnark

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eon-protocol/r1csnark/algebra"
	"github.com/eon-protocol/r1csnark/pedersen"
)

// Verify checks proof against the public input (starting with the constant
// one) under vk. It never fails with an error: any malformed or inconsistent
// proof is rejected.
func (me *NARK[P, S]) Verify(vk *IndexVerifierKey[P, S], input []S, proof *Proof[P, S], sponge algebra.Sponge[S]) bool {
	log := me.log.With().
		Str("protocol", PROTOCOL_NAME).
		Int("nbConstraints", vk.NumConstraints).
		Logger()
	start := time.Now()

	if proof == nil {
		return false
	}
	first, second := &proof.FirstMsg, &proof.SecondMsg
	if (first.Randomness == nil) != (second.Randomness == nil) {
		log.Debug().Msg("randomness presence mismatch")
		return false
	}
	if len(input) != vk.NumInstanceVariables || len(second.BlindedWitness) != vk.NumWitnessVariables() {
		log.Debug().
			Int("nbInput", len(input)).
			Int("nbWitness", len(second.BlindedWitness)).
			Msg("size mismatch")
		return false
	}
	zk := first.Randomness != nil
	f, grp := me.field, me.group

	gamma := me.ComputeChallenge(vk.MatricesHash, input, first, sponge)

	var zA, zB, zC []S
	g := new(errgroup.Group)
	g.Go(func() error { zA = me.MatVecMul(vk.A, input, second.BlindedWitness); return nil })
	g.Go(func() error { zB = me.MatVecMul(vk.B, input, second.BlindedWitness); return nil })
	g.Go(func() error { zC = me.MatVecMul(vk.C, input, second.BlindedWitness); return nil })
	_ = g.Wait()

	var sigmaA, sigmaB, sigmaC, sigmaO *S
	if zk {
		rnd := second.Randomness
		sigmaA, sigmaB, sigmaC, sigmaO = &rnd.SigmaA, &rnd.SigmaB, &rnd.SigmaC, &rnd.SigmaO
	}

	ck := &vk.CommitterKey
	var lhs [4]P
	commit := func(i int, vec []S, blinder *S) func() error {
		return func() (err error) {
			lhs[i], err = pedersen.Commit(grp, ck, vec, blinder)
			return err
		}
	}
	g = new(errgroup.Group)
	g.Go(commit(0, zA, sigmaA))
	g.Go(commit(1, zB, sigmaB))
	g.Go(commit(2, zC, sigmaC))
	g.Go(commit(3, algebra.Hadamard(f, zA, zB), sigmaO))
	if err := g.Wait(); err != nil {
		log.Debug().Err(err).Msg("commit failed")
		return false
	}

	rhs := [4]P{first.CommA, first.CommB, first.CommC, first.CommC}
	if zk {
		rnd := first.Randomness
		rhs[0] = grp.Add(rhs[0], grp.ScalarMul(rnd.CommRA, gamma))
		rhs[1] = grp.Add(rhs[1], grp.ScalarMul(rnd.CommRB, gamma))
		rhs[2] = grp.Add(rhs[2], grp.ScalarMul(rnd.CommRC, gamma))
		rhs[3] = grp.Add(rhs[3], grp.Add(
			grp.ScalarMul(rnd.Comm1, gamma),
			grp.ScalarMul(rnd.Comm2, f.Square(gamma)),
		))
	}

	var ok [4]bool
	for i := range ok {
		ok[i] = grp.Equal(lhs[i], rhs[i])
	}
	log.Debug().
		Bool("a", ok[0]).
		Bool("b", ok[1]).
		Bool("c", ok[2]).
		Bool("hadamard", ok[3]).
		Dur("took", time.Since(start)).
		Msg("verifier done")
	return ok[0] && ok[1] && ok[2] && ok[3]
}
