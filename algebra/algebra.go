// Package algebra defines the capabilities the proof system needs from a
// scalar field, a prime-order group and a cryptographic sponge. Components are
// generic over implementations of these interfaces and never name a curve.
package algebra

import "io"

// Field is the scalar field of a prime-order group. Elements are values of
// type S; every method returns a fresh value and never mutates its arguments.
type Field[S any] interface {
	Zero() S
	One() S
	FromUint64(v uint64) S

	Add(a, b S) S
	Sub(a, b S) S
	Neg(a S) S
	Mul(a, b S) S
	Square(a S) S

	Equal(a, b S) bool
	IsZero(a S) bool
	IsOne(a S) bool

	// Random samples a uniform element using bytes read from rng.
	Random(rng io.Reader) (S, error)

	// ByteSize is the length of the canonical encoding.
	ByteSize() int
	// Bytes returns the canonical little-endian encoding of a.
	Bytes(a S) []byte
	// SetBytes decodes a canonical little-endian encoding. Encodings of
	// values outside [0, modulus) are rejected.
	SetBytes(buf []byte) (S, error)
}

// Group is a prime-order group written additively, with scalars in S.
type Group[P, S any] interface {
	Identity() P
	Add(a, b P) P
	Neg(a P) P
	ScalarMul(a P, s S) P
	Equal(a, b P) bool

	// MultiExp returns sum(scalars[i]*bases[i]). len(bases) must equal len(scalars).
	MultiExp(bases []P, scalars []S) (P, error)

	// HashToGroup maps msg to a group element with no known discrete log
	// relation to other outputs, under domain separation tag dst.
	HashToGroup(msg, dst []byte) (P, error)

	// ByteSize is the length of the canonical encoding.
	ByteSize() int
	// Bytes returns the canonical (compressed) encoding of a.
	Bytes(a P) []byte
	// SetBytes decodes a canonical encoding and rejects points that are not
	// in the prime-order subgroup.
	SetBytes(buf []byte) (P, error)
}

// Sponge is a stateful absorb/squeeze object. State lives for the lifetime of
// one instance only.
type Sponge[S any] interface {
	Absorb(data []byte)
	AbsorbElements(elems ...S)
	// SqueezeFieldElements returns one element per entry of sizes. A size is a
	// bit length the element is truncated to; 0 keeps the full width.
	SqueezeFieldElements(sizes ...int) []S
}
