package accumulation

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eon-protocol/r1csnark/algebra"
	"github.com/eon-protocol/r1csnark/pedersen"
)

// Decide checks that acc's witness opens its instance under the relation of
// dk. An accepted accumulator vouches for every proof folded into it.
func (me *Scheme[P, S]) Decide(dk *DeciderKey[P, S], acc *Accumulator[P, S]) bool {
	start := time.Now()
	if acc == nil || checkAccumulator(dk.Index.IndexInfo, 0, acc) != nil {
		return false
	}
	f, grp := me.field, me.group
	inst, wit := &acc.Instance, &acc.Witness
	r := me.products(dk.Index, *acc)
	e := algebra.Sub(f, algebra.Hadamard(f, r.zA, r.zB), algebra.Scale(f, inst.Mu, r.zC))

	ck := &dk.Index.CommitterKey
	var comms [4]P
	commit := func(i int, vec []S, blinder *S) func() error {
		return func() (err error) {
			comms[i], err = pedersen.Commit(grp, ck, vec, blinder)
			return err
		}
	}
	g := new(errgroup.Group)
	g.Go(commit(0, r.zA, &wit.SigmaA))
	g.Go(commit(1, r.zB, &wit.SigmaB))
	g.Go(commit(2, r.zC, &wit.SigmaC))
	g.Go(commit(3, e, &wit.SigmaE))
	if err := g.Wait(); err != nil {
		return false
	}

	ok := grp.Equal(comms[0], inst.CommA) &&
		grp.Equal(comms[1], inst.CommB) &&
		grp.Equal(comms[2], inst.CommC) &&
		grp.Equal(comms[3], inst.CommE)
	me.log.Debug().Bool("ok", ok).Dur("took", time.Since(start)).Msg("decider done")
	return ok
}
