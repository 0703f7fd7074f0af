package accumulation

import (
	"time"

	"github.com/eon-protocol/r1csnark"
	"github.com/eon-protocol/r1csnark/algebra"
)

// Verify checks that acc is the folding of inputs and old described by
// proof. It only combines commitments: its cost does not depend on the
// number of constraints.
func (me *Scheme[P, S]) Verify(vk *VerifierKey, inputs []InputInstance[P, S], old []AccumulatorInstance[P, S], acc *AccumulatorInstance[P, S], proof *Proof[P, S], sponge algebra.Sponge[S]) bool {
	start := time.Now()
	if proof == nil || acc == nil {
		return false
	}
	if err := checkBounds(vk.Depth, len(inputs), len(old)); err != nil {
		me.log.Debug().Err(err).Msg("accumulation verifier rejected")
		return false
	}
	for i := range inputs {
		if err := checkInputInstance(vk.IndexInfo, i, &inputs[i]); err != nil {
			me.log.Debug().Err(err).Msg("accumulation verifier rejected")
			return false
		}
	}
	for i := range old {
		if err := checkAccumulatorInstance(vk.IndexInfo, i, &old[i]); err != nil {
			me.log.Debug().Err(err).Msg("accumulation verifier rejected")
			return false
		}
	}

	var list []*AccumulatorInstance[P, S]
	if proof.Randomness != nil {
		if err := checkAccumulatorInstance(vk.IndexInfo, -1, proof.Randomness); err != nil {
			return false
		}
		list = append(list, proof.Randomness)
	}
	for i := range old {
		list = append(list, &old[i])
	}
	for i := range inputs {
		inst := me.relaxInstance(vk.IndexInfo.MatricesHash, &inputs[i])
		list = append(list, &inst)
	}
	if len(proof.CrossTerms) != len(list)-1 {
		me.log.Debug().Int("nbCrossTerms", len(proof.CrossTerms)).Int("nbFolds", len(list)-1).Msg("accumulation verifier rejected")
		return false
	}

	ts := me.newTranscript(vk.IndexInfo.MatricesHash, sponge)
	running := *list[0]
	for i, next := range list[1:] {
		commT := proof.CrossTerms[i]
		r := ts.challenge(&running, next, commT, r1csnark.CHALLENGE_SIZE)
		running = me.foldInstances(&running, next, commT, r)
	}

	ok := instancesEqual(me.field, me.group, &running, acc)
	me.log.Debug().Bool("ok", ok).Dur("took", time.Since(start)).Msg("accumulation verifier done")
	return ok
}
