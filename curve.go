package r1csnark

import (
	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/eon-protocol/r1csnark/algebra"
	"github.com/eon-protocol/r1csnark/backend/bls12381"
	"github.com/eon-protocol/r1csnark/hasher"
)

// BLS12381 is the NARK over BLS12-381 G1 with Poseidon2 Fiat-Shamir.
type BLS12381 = NARK[curve.G1Affine, fr.Element]

func NewBLS12381(opts ...Option) *BLS12381 {
	cfg := newConfig(opts...)
	group := bls12381.Group{Accelerator: cfg.accelerator, NbTasks: cfg.nbTasks, Log: cfg.log}
	return New[curve.G1Affine, fr.Element](bls12381.Field{}, group, func() algebra.Sponge[fr.Element] {
		return hasher.NewPoseidon2Sponge()
	}, opts...)
}

// NewBLS12381MiMC is NewBLS12381 with the MiMC sponge.
func NewBLS12381MiMC(opts ...Option) *BLS12381 {
	cfg := newConfig(opts...)
	group := bls12381.Group{Accelerator: cfg.accelerator, NbTasks: cfg.nbTasks, Log: cfg.log}
	return New[curve.G1Affine, fr.Element](bls12381.Field{}, group, func() algebra.Sponge[fr.Element] {
		return hasher.NewMiMCSponge()
	}, opts...)
}
