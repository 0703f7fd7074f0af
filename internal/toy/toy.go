// Package toy is a tiny prime field, an additive group of the same order and a
// hash-based sponge. Discrete logs in the group are trivial, so it is only
// fit for tests that inspect distributions or count operations.
package toy

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
)

// MODULUS is the Fermat prime 2^16+1.
const MODULUS = 65537

const BYTE_SIZE = 4

var ErrNonCanonical = errors.New("toy: non-canonical encoding")

type Element uint64

type Field struct{}

func (Field) Zero() Element { return 0 }
func (Field) One() Element { return 1 }
func (Field) FromUint64(v uint64) Element { return Element(v % MODULUS) }
func (Field) Add(a, b Element) Element { return (a + b) % MODULUS }
func (Field) Sub(a, b Element) Element { return (a + MODULUS - b) % MODULUS }
func (Field) Neg(a Element) Element { return (MODULUS - a) % MODULUS }
func (Field) Mul(a, b Element) Element { return a * b % MODULUS }
func (Field) Square(a Element) Element { return a * a % MODULUS }
func (Field) Equal(a, b Element) bool { return a == b }
func (Field) IsZero(a Element) bool { return a == 0 }
func (Field) IsOne(a Element) bool { return a == 1 }
func (Field) ByteSize() int { return BYTE_SIZE }

func (Field) Random(rng io.Reader) (Element, error) {
	var buf [8]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return 0, err
	}
	return Element(binary.LittleEndian.Uint64(buf[:]) % MODULUS), nil
}

func (Field) Bytes(a Element) []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(a))
}

func (Field) SetBytes(buf []byte) (Element, error) {
	if len(buf) != BYTE_SIZE {
		return 0, fmt.Errorf("%w: length %d", ErrNonCanonical, len(buf))
	}
	v := binary.LittleEndian.Uint32(buf)
	if v >= MODULUS {
		return 0, fmt.Errorf("%w: %d", ErrNonCanonical, v)
	}
	return Element(v), nil
}

// Point is an element of the additive group Z_MODULUS.
type Point uint64

type Group struct{}

func (Group) Identity() Point { return 0 }
func (Group) Add(a, b Point) Point { return (a + b) % MODULUS }
func (Group) Neg(a Point) Point { return (MODULUS - a) % MODULUS }
func (Group) ScalarMul(a Point, s Element) Point { return Point(uint64(a) * uint64(s) % MODULUS) }
func (Group) Equal(a, b Point) bool { return a == b }
func (Group) ByteSize() int { return BYTE_SIZE }

func (g Group) MultiExp(bases []Point, scalars []Element) (Point, error) {
	if len(bases) != len(scalars) {
		return 0, fmt.Errorf("toy: msm with %d bases and %d scalars", len(bases), len(scalars))
	}
	var acc Point
	for i := range bases {
		acc = g.Add(acc, g.ScalarMul(bases[i], scalars[i]))
	}
	return acc, nil
}

// HashToGroup maps msg to a non-identity point.
func (Group) HashToGroup(msg, dst []byte) (Point, error) {
	h := sha256.New()
	h.Write(dst)
	h.Write(msg)
	v := binary.LittleEndian.Uint64(h.Sum(nil)) % (MODULUS - 1)
	return Point(v + 1), nil
}

func (Group) Bytes(a Point) []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(a))
}

func (Group) SetBytes(buf []byte) (Point, error) {
	v, err := Field{}.SetBytes(buf)
	return Point(v), err
}

// CountingGroup counts the multi-scalar multiplications it performs.
type CountingGroup struct {
	Group
	msms atomic.Int64
}

func (me *CountingGroup) MultiExp(bases []Point, scalars []Element) (Point, error) {
	me.msms.Add(1)
	return me.Group.MultiExp(bases, scalars)
}

func (me *CountingGroup) MSMs() int64 { return me.msms.Load() }

// Sponge hashes everything absorbed so far together with a squeeze counter.
type Sponge struct {
	h       []byte
	squeeze uint64
}

func NewSponge() *Sponge { return &Sponge{} }

func (me *Sponge) Absorb(data []byte) {
	h := sha256.New()
	h.Write(me.h)
	h.Write(binary.LittleEndian.AppendUint64(nil, uint64(len(data))))
	h.Write(data)
	me.h = h.Sum(nil)
}

func (me *Sponge) AbsorbElements(elems ...Element) {
	buf := make([]byte, 0, len(elems)*BYTE_SIZE)
	for _, e := range elems {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(e))
	}
	me.Absorb(buf)
}

func (me *Sponge) SqueezeFieldElements(sizes ...int) []Element {
	out := make([]Element, len(sizes))
	for i, bits := range sizes {
		h := sha256.New()
		h.Write(me.h)
		h.Write(binary.LittleEndian.AppendUint64(nil, me.squeeze))
		me.squeeze++
		v := binary.LittleEndian.Uint64(h.Sum(nil)) % MODULUS
		if bits > 0 && bits < 17 {
			v &= 1<<bits - 1
		}
		out[i] = Element(v)
	}
	return out
}
