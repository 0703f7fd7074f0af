package accumulation

import (
	"github.com/eon-protocol/r1csnark/algebra"
)

// transcript derives the folding challenges. The prover and the verifier
// absorb the same instances in the same order.
type transcript[P, S any] struct {
	sponge algebra.Sponge[S]
	field  algebra.Field[S]
	group  algebra.Group[P, S]
}

func (me *Scheme[P, S]) newTranscript(matricesHash [32]byte, sponge algebra.Sponge[S]) *transcript[P, S] {
	if sponge == nil {
		sponge = me.nark.NewSponge()
	}
	sponge.Absorb([]byte(PROTOCOL_NAME))
	sponge.Absorb(matricesHash[:])
	return &transcript[P, S]{sponge: sponge, field: me.field, group: me.group}
}

func (me *transcript[P, S]) absorbInstance(inst *AccumulatorInstance[P, S]) {
	buf := make([]byte, 0, (len(inst.Input)+1)*me.field.ByteSize()+4*me.group.ByteSize())
	for _, x := range inst.Input {
		buf = append(buf, me.field.Bytes(x)...)
	}
	buf = append(buf, me.field.Bytes(inst.Mu)...)
	for _, p := range []P{inst.CommA, inst.CommB, inst.CommC, inst.CommE} {
		buf = append(buf, me.group.Bytes(p)...)
	}
	me.sponge.Absorb(buf)
}

// challenge binds the running instance, the next instance and their cross
// term, and squeezes a CHALLENGE_SIZE-bit folding coefficient.
func (me *transcript[P, S]) challenge(running, next *AccumulatorInstance[P, S], crossTerm P, bits int) S {
	me.absorbInstance(running)
	me.absorbInstance(next)
	me.sponge.Absorb(me.group.Bytes(crossTerm))
	return me.sponge.SqueezeFieldElements(bits)[0]
}
