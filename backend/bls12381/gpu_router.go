package bls12381

import (
	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/eon-protocol/r1csnark/gpu"
)

func (me Group) multiExp(bases []curve.G1Affine, scalars []fr.Element, config ecc.MultiExpConfig) (curve.G1Affine, error) {
	if me.Accelerator == "icicle" && gpu.HasIcicle {
		r, err := gpu.MultiExp(bases, scalars)
		if err == nil {
			return r, nil
		}
		me.Log.Warn().Err(err).Int("size", len(bases)).Msg("GPU msm failed, falling back to CPU")
	}
	var r curve.G1Affine
	if _, err := r.MultiExp(bases, scalars, config); err != nil {
		return curve.G1Affine{}, err
	}
	return r, nil
}
