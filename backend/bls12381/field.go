// Package bls12381 instantiates the algebra capabilities on the BLS12-381
// curve from gnark-crypto: scalars are fr.Element and group elements are
// G1Affine points.
package bls12381

import (
	"errors"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

var ErrInvalidScalarEncoding = errors.New("bls12381: invalid scalar encoding")

// RANDOM_BYTES is how many bytes are reduced modulo r for one uniform scalar;
// 512 bits against a 255-bit modulus keeps the bias below 2^-256.
const RANDOM_BYTES = 64

// Field is the BLS12-381 scalar field.
type Field struct{}

func (Field) Zero() fr.Element { return fr.Element{} }

func (Field) One() fr.Element { return fr.One() }

func (Field) FromUint64(v uint64) fr.Element { return fr.NewElement(v) }

func (Field) Add(a, b fr.Element) fr.Element {
	var r fr.Element
	r.Add(&a, &b)
	return r
}

func (Field) Sub(a, b fr.Element) fr.Element {
	var r fr.Element
	r.Sub(&a, &b)
	return r
}

func (Field) Neg(a fr.Element) fr.Element {
	var r fr.Element
	r.Neg(&a)
	return r
}

func (Field) Mul(a, b fr.Element) fr.Element {
	var r fr.Element
	r.Mul(&a, &b)
	return r
}

func (Field) Square(a fr.Element) fr.Element {
	var r fr.Element
	r.Square(&a)
	return r
}

func (Field) Equal(a, b fr.Element) bool { return a.Equal(&b) }

func (Field) IsZero(a fr.Element) bool { return a.IsZero() }

func (Field) IsOne(a fr.Element) bool { return a.IsOne() }

func (Field) Random(rng io.Reader) (fr.Element, error) {
	var buf [RANDOM_BYTES]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return fr.Element{}, fmt.Errorf("bls12381: read randomness: %w", err)
	}
	var r fr.Element
	r.SetBytes(buf[:])
	return r, nil
}

func (Field) ByteSize() int { return fr.Bytes }

func (Field) Bytes(a fr.Element) []byte {
	var buf [fr.Bytes]byte
	fr.LittleEndian.PutElement(&buf, a)
	return buf[:]
}

func (Field) SetBytes(buf []byte) (fr.Element, error) {
	if len(buf) != fr.Bytes {
		return fr.Element{}, fmt.Errorf("%w: length %d", ErrInvalidScalarEncoding, len(buf))
	}
	e, err := fr.LittleEndian.Element((*[fr.Bytes]byte)(buf))
	if err != nil {
		return fr.Element{}, fmt.Errorf("%w: %v", ErrInvalidScalarEncoding, err)
	}
	return e, nil
}
