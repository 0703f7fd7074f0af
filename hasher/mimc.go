package hasher

import (
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/mimc"
)

// MiMCSponge adapts gnark-crypto's MiMC Miyaguchi-Preneel hash to the sponge
// interface. Every squeeze feeds its output back so later squeezes differ.
type MiMCSponge struct {
	h hash.Hash
}

func NewMiMCSponge() *MiMCSponge {
	return &MiMCSponge{h: mimc.NewMiMC()}
}

func (me *MiMCSponge) Absorb(data []byte) {
	me.AbsorbElements(packBytes(data)...)
}

func (me *MiMCSponge) AbsorbElements(elems ...fr.Element) {
	for i := range elems {
		b := elems[i].Bytes()
		// canonical blocks are always accepted
		if _, err := me.h.Write(b[:]); err != nil {
			panic(err)
		}
	}
}

func (me *MiMCSponge) SqueezeFieldElements(sizes ...int) []fr.Element {
	out := make([]fr.Element, len(sizes))
	for i, bits := range sizes {
		digest := me.h.Sum(nil)
		var e fr.Element
		e.SetBytes(digest)
		if _, err := me.h.Write(digest); err != nil {
			panic(err)
		}
		out[i] = truncate(e, bits)
	}
	return out
}
