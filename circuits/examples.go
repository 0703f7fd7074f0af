package circuits

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"

	"github.com/eon-protocol/r1csnark/hasher"
)

// Square proves knowledge of Y = X·X for a public X.
type Square struct {
	X frontend.Variable `gnark:",public"`
	Y frontend.Variable
}

func (c *Square) Define(api frontend.API) error {
	api.AssertIsEqual(api.Mul(c.X, c.X), c.Y)
	return nil
}

// Poseidon2Preimage proves knowledge of a preimage whose Poseidon2 Sum is Digest.
type Poseidon2Preimage struct {
	Digest   frontend.Variable `gnark:",public"`
	Preimage [2]frontend.Variable
}

func (c *Poseidon2Preimage) Define(api frontend.API) error {
	perm, err := hasher.NewPermutation(api)
	if err != nil {
		return err
	}
	api.AssertIsEqual(c.Digest, perm.Sum(c.Preimage[:]...))
	return nil
}

// MiMCPreimage proves knowledge of a preimage whose MiMC hash is Digest.
type MiMCPreimage struct {
	Digest   frontend.Variable `gnark:",public"`
	Preimage frontend.Variable
}

func (c *MiMCPreimage) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.Preimage)
	api.AssertIsEqual(c.Digest, h.Sum())
	return nil
}
