package r1csnark

import (
	"github.com/eon-protocol/r1csnark/algebra"
)

// FirstRoundMessageRandomness carries the commitments to the randomizer's
// matrix products and to the two cross-term vectors.
type FirstRoundMessageRandomness[P any] struct {
	CommRA, CommRB, CommRC P
	Comm1, Comm2           P
}

// FirstRoundMessage commits to A·z, B·z and C·z. Randomness is nil iff the
// proof is not zero-knowledge.
type FirstRoundMessage[P any] struct {
	CommA, CommB, CommC P
	Randomness          *FirstRoundMessageRandomness[P]
}

// SecondRoundMessageRandomness carries the openings of the blinded commitments.
type SecondRoundMessageRandomness[S any] struct {
	SigmaA, SigmaB, SigmaC, SigmaO S
}

// SecondRoundMessage carries the blinded witness. Randomness is nil iff the
// proof is not zero-knowledge.
type SecondRoundMessage[S any] struct {
	BlindedWitness []S
	Randomness     *SecondRoundMessageRandomness[S]
}

type Proof[P, S any] struct {
	FirstMsg  FirstRoundMessage[P]
	SecondMsg SecondRoundMessage[S]
}

// ZK reports whether both messages carry their randomness block.
func (me *Proof[P, S]) ZK() bool {
	return me.FirstMsg.Randomness != nil && me.SecondMsg.Randomness != nil
}

// ZeroFirstRoundMessage returns an all-identity message, with a randomness
// block iff zk. It is a placeholder for sizing and tests.
func ZeroFirstRoundMessage[P, S any](group algebra.Group[P, S], zk bool) FirstRoundMessage[P] {
	id := group.Identity()
	msg := FirstRoundMessage[P]{CommA: id, CommB: id, CommC: id}
	if zk {
		msg.Randomness = &FirstRoundMessageRandomness[P]{CommRA: id, CommRB: id, CommRC: id, Comm1: id, Comm2: id}
	}
	return msg
}

// ZeroSecondRoundMessage returns an all-zero message with a witness of
// length n, with a randomness block iff zk.
func ZeroSecondRoundMessage[S any](field algebra.Field[S], n int, zk bool) SecondRoundMessage[S] {
	msg := SecondRoundMessage[S]{BlindedWitness: make([]S, n)}
	for i := range msg.BlindedWitness {
		msg.BlindedWitness[i] = field.Zero()
	}
	if zk {
		z := field.Zero()
		msg.Randomness = &SecondRoundMessageRandomness[S]{SigmaA: z, SigmaB: z, SigmaC: z, SigmaO: z}
	}
	return msg
}

// appendFirstRoundMessage appends the sponge encoding of msg: CommA, CommB,
// CommC, an option tag byte, then the randomness commitments when present.
func appendFirstRoundMessage[P, S any](buf []byte, group algebra.Group[P, S], msg *FirstRoundMessage[P]) []byte {
	buf = append(buf, group.Bytes(msg.CommA)...)
	buf = append(buf, group.Bytes(msg.CommB)...)
	buf = append(buf, group.Bytes(msg.CommC)...)
	if msg.Randomness == nil {
		return append(buf, 0)
	}
	buf = append(buf, 1)
	r := msg.Randomness
	for _, p := range []P{r.CommRA, r.CommRB, r.CommRC, r.Comm1, r.Comm2} {
		buf = append(buf, group.Bytes(p)...)
	}
	return buf
}
