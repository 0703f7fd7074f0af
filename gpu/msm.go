//go:build icicle

// Package gpu runs BLS12-381 multi-scalar multiplications on a CUDA device
// through icicle. It is only compiled with the icicle build tag.
package gpu

import (
	"fmt"
	"sync"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	icicle_core "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/core"
	icicle_bls12_381 "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/curves/bls12381"
	icicle_msm "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/curves/bls12381/msm"
	icicle_runtime "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/runtime"
)

const HasIcicle = true

var device = sync.OnceValues(func() (icicle_runtime.Device, error) {
	if st := icicle_runtime.LoadBackendFromEnvOrDefault(); st != icicle_runtime.Success {
		return icicle_runtime.Device{}, fmt.Errorf("icicle: load backend: %s", st.AsString())
	}
	dev := icicle_runtime.CreateDevice("CUDA", 0)
	if st := icicle_runtime.SetDevice(&dev); st != icicle_runtime.Success {
		return icicle_runtime.Device{}, fmt.Errorf("icicle: set device: %s", st.AsString())
	}
	return dev, nil
})

func projectiveToAffine(p icicle_bls12_381.Projective) curve.G1Affine {
	bx := p.X.ToBytesLittleEndian()
	by := p.Y.ToBytesLittleEndian()
	bz := p.Z.ToBytesLittleEndian()

	var ax, ay, az fp.Element
	ax, _ = fp.LittleEndian.Element((*[fp.Bytes]byte)(bx))
	ay, _ = fp.LittleEndian.Element((*[fp.Bytes]byte)(by))
	az, _ = fp.LittleEndian.Element((*[fp.Bytes]byte)(bz))
	if az.IsZero() {
		return curve.G1Affine{}
	}

	var zInv fp.Element
	zInv.Inverse(&az)
	ax.Mul(&ax, &zInv)
	ay.Mul(&ay, &zInv)

	return curve.G1Affine{X: ax, Y: ay}
}

// MultiExp computes sum(scalars[i]*bases[i]) on the device. Scalars and bases
// are passed in gnark-crypto's Montgomery representation.
func MultiExp(bases []curve.G1Affine, scalars []fr.Element) (curve.G1Affine, error) {
	dev, err := device()
	if err != nil {
		return curve.G1Affine{}, err
	}

	var res curve.G1Affine
	var st icicle_runtime.EIcicleError
	done := make(chan struct{})
	icicle_runtime.RunOnDevice(&dev, func(args ...any) {
		defer close(done)

		hostScalars := icicle_core.HostSliceFromElements(scalars)
		hostBases := icicle_core.HostSliceFromElements(bases)

		var scalarsDev icicle_core.DeviceSlice
		hostScalars.CopyToDevice(&scalarsDev, true)
		defer scalarsDev.Free()

		cfg := icicle_msm.GetDefaultMSMConfig()
		cfg.AreScalarsMontgomeryForm = true
		cfg.AreBasesMontgomeryForm = true

		out := make(icicle_core.HostSlice[icicle_bls12_381.Projective], 1)
		st = icicle_msm.Msm(scalarsDev, hostBases, &cfg, out)
		if st == icicle_runtime.Success {
			res = projectiveToAffine(out[0])
		}
	})
	<-done

	if st != icicle_runtime.Success {
		return curve.G1Affine{}, fmt.Errorf("icicle: msm: %s", st.AsString())
	}
	return res, nil
}
