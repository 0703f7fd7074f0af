// Package hasher provides the sponges used for Fiat-Shamir over the BLS12-381
// scalar field, and a Poseidon2 gadget for gnark circuits.
package hasher

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Poseidon2Sponge is a duplex sponge over the t=2 Poseidon2 permutation with
// rate 1: lane 0 absorbs and squeezes, lane 1 is the capacity.
type Poseidon2Sponge struct {
	state [WIDTH]fr.Element
}

// NewPoseidon2Sponge returns a sponge with an all-zero state.
func NewPoseidon2Sponge() *Poseidon2Sponge {
	return &Poseidon2Sponge{}
}

func (me *Poseidon2Sponge) Absorb(data []byte) {
	me.AbsorbElements(packBytes(data)...)
}

func (me *Poseidon2Sponge) AbsorbElements(elems ...fr.Element) {
	for i := range elems {
		me.state[0].Add(&me.state[0], &elems[i])
		permute(&me.state)
	}
}

func (me *Poseidon2Sponge) SqueezeFieldElements(sizes ...int) []fr.Element {
	out := make([]fr.Element, len(sizes))
	for i, bits := range sizes {
		permute(&me.state)
		out[i] = truncate(me.state[0], bits)
	}
	return out
}
