package hasher

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/test"
)

type sponge interface {
	Absorb(data []byte)
	AbsorbElements(elems ...fr.Element)
	SqueezeFieldElements(sizes ...int) []fr.Element
}

var sponges = map[string]func() sponge{
	"poseidon2": func() sponge { return NewPoseidon2Sponge() },
	"mimc":      func() sponge { return NewMiMCSponge() },
}

func TestSpongeDeterministic(t *testing.T) {
	for name, newSponge := range sponges {
		t.Run(name, func(t *testing.T) {
			assert := test.NewAssert(t)

			run := func(data []byte) []fr.Element {
				s := newSponge()
				s.Absorb(data)
				s.AbsorbElements(fr.NewElement(7))
				return s.SqueezeFieldElements(0, 128)
			}
			a := run([]byte("transcript"))
			b := run([]byte("transcript"))
			c := run([]byte("transcripT"))
			assert.Equal(a, b)
			assert.NotEqual(a[0], c[0])
			assert.NotEqual(a[0], a[1], "consecutive squeezes must differ")
		})
	}
}

func TestSpongeTrailingZeros(t *testing.T) {
	for name, newSponge := range sponges {
		t.Run(name, func(t *testing.T) {
			assert := test.NewAssert(t)

			s1, s2 := newSponge(), newSponge()
			s1.Absorb([]byte{1, 2})
			s2.Absorb([]byte{1, 2, 0})
			assert.NotEqual(s1.SqueezeFieldElements(0), s2.SqueezeFieldElements(0))
		})
	}
}

func TestSqueezeTruncation(t *testing.T) {
	for name, newSponge := range sponges {
		t.Run(name, func(t *testing.T) {
			assert := test.NewAssert(t)

			s := newSponge()
			s.Absorb([]byte("truncation"))
			for _, e := range s.SqueezeFieldElements(128, 128, 128, 64) {
				var b big.Int
				e.BigInt(&b)
				assert.LessOrEqual(b.BitLen(), 128)
			}
		})
	}
}

func TestTruncateKeepsLowBits(t *testing.T) {
	assert := test.NewAssert(t)

	e := fr.NewElement(0x1_0000_0005)
	assert.Equal(fr.NewElement(5), truncate(e, 32))
	assert.Equal(e, truncate(e, 0))
	assert.Equal(e, truncate(e, fr.Bits))
}

func TestPackBytes(t *testing.T) {
	assert := test.NewAssert(t)

	data := make([]byte, 2*BYTES_PER_ELEMENT+1)
	data[len(data)-1] = 9
	packed := packBytes(data)
	assert.Len(packed, 4)
	assert.Equal(fr.NewElement(uint64(len(data))), packed[0])
	assert.Equal(fr.NewElement(9), packed[3])
	assert.Len(packBytes(nil), 1)
}
