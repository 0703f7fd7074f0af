package bls12381

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/rs/zerolog"
)

var ErrInvalidPointEncoding = errors.New("bls12381: invalid G1 encoding")

// Group is the prime-order subgroup of BLS12-381 G1.
type Group struct {
	// Accelerator selects the MSM backend; "icicle" routes to the GPU when the
	// binary was built with the icicle tag.
	Accelerator string
	// NbTasks bounds CPU MSM parallelism; 0 lets gnark-crypto decide.
	NbTasks int
	// Log receives GPU fallback warnings.
	Log zerolog.Logger
}

func (Group) Identity() curve.G1Affine { return curve.G1Affine{} }

func (Group) Add(a, b curve.G1Affine) curve.G1Affine {
	var ja, jb curve.G1Jac
	ja.FromAffine(&a)
	jb.FromAffine(&b)
	ja.AddAssign(&jb)
	var r curve.G1Affine
	r.FromJacobian(&ja)
	return r
}

func (Group) Neg(a curve.G1Affine) curve.G1Affine {
	var r curve.G1Affine
	r.Neg(&a)
	return r
}

func (Group) ScalarMul(a curve.G1Affine, s fr.Element) curve.G1Affine {
	var b big.Int
	s.BigInt(&b)
	var r curve.G1Affine
	r.ScalarMultiplication(&a, &b)
	return r
}

func (Group) Equal(a, b curve.G1Affine) bool { return a.Equal(&b) }

func (me Group) MultiExp(bases []curve.G1Affine, scalars []fr.Element) (curve.G1Affine, error) {
	if len(bases) != len(scalars) {
		return curve.G1Affine{}, fmt.Errorf("bls12381: msm with %d bases and %d scalars", len(bases), len(scalars))
	}
	if len(bases) == 0 {
		return curve.G1Affine{}, nil
	}
	return me.multiExp(bases, scalars, ecc.MultiExpConfig{NbTasks: me.NbTasks})
}

func (Group) HashToGroup(msg, dst []byte) (curve.G1Affine, error) {
	return curve.HashToG1(msg, dst)
}

func (Group) ByteSize() int { return curve.SizeOfG1AffineCompressed }

func (Group) Bytes(a curve.G1Affine) []byte {
	b := a.Bytes()
	return b[:]
}

func (Group) SetBytes(buf []byte) (curve.G1Affine, error) {
	if len(buf) != curve.SizeOfG1AffineCompressed {
		return curve.G1Affine{}, fmt.Errorf("%w: length %d", ErrInvalidPointEncoding, len(buf))
	}
	var p curve.G1Affine
	if _, err := p.SetBytes(buf); err != nil {
		return curve.G1Affine{}, fmt.Errorf("%w: %v", ErrInvalidPointEncoding, err)
	}
	return p, nil
}
