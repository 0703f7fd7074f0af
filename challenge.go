package r1csnark

import (
	"github.com/eon-protocol/r1csnark/algebra"
)

// ComputeChallenge derives the Fiat-Shamir challenge from the matrices hash,
// the public input and the first-round message. A nil sponge uses a fresh
// one; a non-nil sponge is consumed and must not be reused by the caller.
func (me *NARK[P, S]) ComputeChallenge(matricesHash [32]byte, input []S, msg *FirstRoundMessage[P], sponge algebra.Sponge[S]) S {
	if sponge == nil {
		sponge = me.newSponge()
	}
	sponge.Absorb(matricesHash[:])

	buf := make([]byte, 0, len(input)*me.field.ByteSize())
	for _, x := range input {
		buf = append(buf, me.field.Bytes(x)...)
	}
	sponge.Absorb(buf)

	sponge.Absorb(appendFirstRoundMessage(nil, me.group, msg))
	return sponge.SqueezeFieldElements(CHALLENGE_SIZE)[0]
}
