package circuits

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	nativemimc "github.com/consensys/gnark-crypto/ecc/bls12-381/fr/mimc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"

	"github.com/eon-protocol/r1csnark"
	"github.com/eon-protocol/r1csnark/hasher"
)

func proveAndVerify(assert *test.Assert, circuit, assignment frontend.Circuit) {
	nark := r1csnark.NewBLS12381()
	c, err := Compile(circuit)
	assert.NoError(err)
	pk, vk, err := nark.Index(nark.Setup(), c)
	assert.NoError(err)
	input, err := PublicInput(assignment)
	assert.NoError(err)

	for _, zk := range []bool{false, true} {
		proof, err := nark.Prove(pk, c.WithAssignment(assignment), zk, rand.Reader, nil)
		assert.NoError(err)
		assert.True(nark.Verify(vk, input, proof, nil))
	}
}

func TestSquare(t *testing.T) {
	assert := test.NewAssert(t)

	assert.NoError(test.IsSolved(&Square{}, &Square{X: 3, Y: 9}, ecc.BLS12_381.ScalarField()))
	proveAndVerify(assert, &Square{}, &Square{X: 3, Y: 9})
}

func TestSquareWrongInputRejected(t *testing.T) {
	assert := test.NewAssert(t)
	nark := r1csnark.NewBLS12381()

	c, err := Compile(&Square{})
	assert.NoError(err)
	pk, vk, err := nark.Index(nark.Setup(), c)
	assert.NoError(err)
	proof, err := nark.Prove(pk, c.WithAssignment(&Square{X: 3, Y: 9}), true, rand.Reader, nil)
	assert.NoError(err)

	input, err := PublicInput(&Square{X: 3, Y: 9})
	assert.NoError(err)
	assert.Equal([]fr.Element{fr.One(), fr.NewElement(3)}, input)
	assert.True(nark.Verify(vk, input, proof, nil))

	input, err = PublicInput(&Square{X: 4, Y: 16})
	assert.NoError(err)
	assert.False(nark.Verify(vk, input, proof, nil))
}

func TestUnsatisfiedAssignment(t *testing.T) {
	assert := test.NewAssert(t)
	nark := r1csnark.NewBLS12381()

	c, err := Compile(&Square{})
	assert.NoError(err)
	pk, _, err := nark.Index(nark.Setup(), c)
	assert.NoError(err)
	_, err = nark.Prove(pk, c.WithAssignment(&Square{X: 3, Y: 10}), false, nil, nil)
	assert.ErrorIs(err, r1csnark.ErrConstraintGeneration)

	_, err = nark.Prove(pk, c, false, nil, nil)
	assert.ErrorIs(err, ErrNoAssignment)
}

func TestMatricesMatchSolution(t *testing.T) {
	assert := test.NewAssert(t)
	f := r1csnark.NewBLS12381().Field()

	c, err := Compile(&Square{})
	assert.NoError(err)
	m, err := c.GenerateMatrices()
	assert.NoError(err)
	assert.Equal(2, m.NumInstanceVariables)
	assert.Equal(c.NbConstraints(), m.NumConstraints)

	a, err := c.WithAssignment(&Square{X: 5, Y: 25}).GenerateAssignment()
	assert.NoError(err)
	assert.Equal(fr.One(), a.Input[0])
	assert.Equal(fr.NewElement(5), a.Input[1])

	zA := r1csnark.MatVecMul(f, m.A, a.Input, a.Witness, 0)
	zB := r1csnark.MatVecMul(f, m.B, a.Input, a.Witness, 0)
	zC := r1csnark.MatVecMul(f, m.C, a.Input, a.Witness, 0)
	for i := range zA {
		var prod fr.Element
		prod.Mul(&zA[i], &zB[i])
		assert.Equal(zC[i], prod, "constraint %d", i)
	}
}

func TestPoseidon2Preimage(t *testing.T) {
	assert := test.NewAssert(t)

	preimage := [2]fr.Element{fr.NewElement(11), fr.NewElement(22)}
	digest := hasher.Sum(preimage[:]...)
	assignment := &Poseidon2Preimage{
		Digest:   digest.String(),
		Preimage: [2]frontend.Variable{preimage[0].String(), preimage[1].String()},
	}
	assert.NoError(test.IsSolved(&Poseidon2Preimage{}, assignment, ecc.BLS12_381.ScalarField()))
	proveAndVerify(assert, &Poseidon2Preimage{}, assignment)
}

func TestMiMCPreimage(t *testing.T) {
	assert := test.NewAssert(t)

	preimage := fr.NewElement(1234)
	h := nativemimc.NewMiMC()
	b := preimage.Bytes()
	_, err := h.Write(b[:])
	assert.NoError(err)
	var digest fr.Element
	digest.SetBytes(h.Sum(nil))

	assignment := &MiMCPreimage{Digest: digest.String(), Preimage: preimage.String()}
	assert.NoError(test.IsSolved(&MiMCPreimage{}, assignment, ecc.BLS12_381.ScalarField()))
	proveAndVerify(assert, &MiMCPreimage{}, assignment)
}

// TestKeyRoundTrip persists the index of a compiled circuit, the way the CLI
// does, and proves against the decoded key.
func TestKeyRoundTrip(t *testing.T) {
	assert := test.NewAssert(t)
	nark := r1csnark.NewBLS12381()

	c, err := Compile(&Square{})
	assert.NoError(err)
	pk, _, err := nark.Index(nark.Setup(), c)
	assert.NoError(err)

	var buf bytes.Buffer
	_, err = nark.WriteKey(&buf, pk)
	assert.NoError(err)
	decoded, _, err := nark.ReadKey(&buf)
	assert.NoError(err)
	assert.Equal(pk.IndexInfo, decoded.IndexInfo)

	assignment := &Square{X: 5, Y: 25}
	proof, err := nark.Prove(decoded, c.WithAssignment(assignment), true, rand.Reader, nil)
	assert.NoError(err)
	input, err := PublicInput(assignment)
	assert.NoError(err)
	assert.True(nark.Verify(pk, input, proof, nil))
}
