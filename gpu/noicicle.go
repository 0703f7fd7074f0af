//go:build !icicle

package gpu

import (
	"errors"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

const HasIcicle = false

func MultiExp(_ []curve.G1Affine, _ []fr.Element) (curve.G1Affine, error) {
	return curve.G1Affine{}, errors.New("icicle requested but program compiled without 'icicle' build tag")
}
