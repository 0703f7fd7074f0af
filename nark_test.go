package r1csnark

import (
	"errors"
	"fmt"
	"testing"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/test"
)

func TestCompleteness(t *testing.T) {
	for name, nark := range map[string]*BLS12381{
		"poseidon2": NewBLS12381(),
		"mimc":      NewBLS12381MiMC(WithNbTasks(2)),
	} {
		for _, zk := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s/zk=%t", name, zk), func(t *testing.T) {
				assert := test.NewAssert(t)

				cs := chainCircuit(16, 7)
				pk, vk, err := nark.Index(nark.Setup(), cs)
				assert.NoError(err)
				assert.Equal(19, pk.NumVariables)
				assert.Equal(17, pk.NumConstraints)
				assert.Equal(2, pk.NumInstanceVariables)

				proof, err := nark.Prove(pk, cs, zk, rng, nil)
				assert.NoError(err)
				assert.Equal(zk, proof.ZK())
				assert.True(nark.Verify(vk, cs.Assignment.Input, proof, nil))
			})
		}
	}
}

func TestSquareScenario(t *testing.T) {
	nark := NewBLS12381()
	for _, zk := range []bool{false, true} {
		assert := test.NewAssert(t)

		cs := squareCircuit(3, 9)
		pk, vk, err := nark.Index(nark.Setup(), cs)
		assert.NoError(err)
		proof, err := nark.Prove(pk, cs, zk, rng, nil)
		assert.NoError(err)

		assert.True(nark.Verify(vk, []fr.Element{one, fr.NewElement(3)}, proof, nil))
		assert.False(nark.Verify(vk, []fr.Element{one, fr.NewElement(4)}, proof, nil))
	}
}

func TestUnsatisfiedAssignmentRejected(t *testing.T) {
	assert := test.NewAssert(t)
	nark := NewBLS12381()

	cs := squareCircuit(3, 10)
	pk, vk, err := nark.Index(nark.Setup(), cs)
	assert.NoError(err)
	for _, zk := range []bool{false, true} {
		proof, err := nark.Prove(pk, cs, zk, rng, nil)
		assert.NoError(err)
		assert.False(nark.Verify(vk, cs.Assignment.Input, proof, nil))
	}
}

func TestSoundnessMutations(t *testing.T) {
	assert := test.NewAssert(t)
	nark := NewBLS12381()
	grp := nark.Group()
	_, _, g1, _ := curve.Generators()

	cs := chainCircuit(4, 3)
	pk, vk, err := nark.Index(nark.Setup(), cs)
	assert.NoError(err)
	input := cs.Assignment.Input

	for _, zk := range []bool{false, true} {
		proof, err := nark.Prove(pk, cs, zk, rng, nil)
		assert.NoError(err)
		assert.True(nark.Verify(vk, input, proof, nil))

		for i := range proof.SecondMsg.BlindedWitness {
			tampered := *proof
			tampered.SecondMsg.BlindedWitness = append([]fr.Element(nil), proof.SecondMsg.BlindedWitness...)
			tampered.SecondMsg.BlindedWitness[i].Add(&tampered.SecondMsg.BlindedWitness[i], &one)
			assert.False(nark.Verify(vk, input, &tampered, nil), "witness coordinate %d", i)
		}

		var points []*curve.G1Affine
		first := proof.FirstMsg
		if zk {
			rnd := *first.Randomness
			first.Randomness = &rnd
			points = append(points, &rnd.CommRA, &rnd.CommRB, &rnd.CommRC, &rnd.Comm1, &rnd.Comm2)
		}
		tampered := *proof
		tampered.FirstMsg = first
		points = append(points, &tampered.FirstMsg.CommA, &tampered.FirstMsg.CommB, &tampered.FirstMsg.CommC)
		for i, p := range points {
			saved := *p
			*p = grp.Add(*p, g1)
			assert.False(nark.Verify(vk, input, &tampered, nil), "commitment %d", i)
			*p = saved
		}
		assert.True(nark.Verify(vk, input, &tampered, nil))

		if zk {
			rnd := *proof.SecondMsg.Randomness
			tampered := *proof
			tampered.SecondMsg.Randomness = &rnd
			for i, s := range []*fr.Element{&rnd.SigmaA, &rnd.SigmaB, &rnd.SigmaC, &rnd.SigmaO} {
				saved := *s
				s.Add(s, &one)
				assert.False(nark.Verify(vk, input, &tampered, nil), "opening %d", i)
				*s = saved
			}
		}
	}
}

func TestFlagConsistency(t *testing.T) {
	assert := test.NewAssert(t)
	nark := NewBLS12381()

	cs := chainCircuit(3, 5)
	pk, vk, err := nark.Index(nark.Setup(), cs)
	assert.NoError(err)
	proof, err := nark.Prove(pk, cs, true, rng, nil)
	assert.NoError(err)

	noFirst := *proof
	noFirst.FirstMsg.Randomness = nil
	assert.False(nark.Verify(vk, cs.Assignment.Input, &noFirst, nil))

	noSecond := *proof
	noSecond.SecondMsg.Randomness = nil
	assert.False(nark.Verify(vk, cs.Assignment.Input, &noSecond, nil))

	plain, err := nark.Prove(pk, cs, false, nil, nil)
	assert.NoError(err)
	withFirst := *plain
	withFirst.FirstMsg.Randomness = proof.FirstMsg.Randomness
	assert.False(nark.Verify(vk, cs.Assignment.Input, &withFirst, nil))
	withSecond := *plain
	withSecond.SecondMsg.Randomness = proof.SecondMsg.Randomness
	assert.False(nark.Verify(vk, cs.Assignment.Input, &withSecond, nil))
}

func TestVerifyRejectsWrongSizes(t *testing.T) {
	assert := test.NewAssert(t)
	nark := NewBLS12381()

	cs := chainCircuit(3, 5)
	pk, vk, err := nark.Index(nark.Setup(), cs)
	assert.NoError(err)
	proof, err := nark.Prove(pk, cs, false, nil, nil)
	assert.NoError(err)

	assert.False(nark.Verify(vk, cs.Assignment.Input[:1], proof, nil))
	assert.False(nark.Verify(vk, append(cs.Assignment.Input, one), proof, nil))

	short := *proof
	short.SecondMsg.BlindedWitness = proof.SecondMsg.BlindedWitness[1:]
	assert.False(nark.Verify(vk, cs.Assignment.Input, &short, nil))
	assert.False(nark.Verify(vk, cs.Assignment.Input, nil, nil))
}

func TestExternalSponge(t *testing.T) {
	assert := test.NewAssert(t)
	nark := NewBLS12381()

	cs := squareCircuit(5, 25)
	pk, vk, err := nark.Index(nark.Setup(), cs)
	assert.NoError(err)

	prover := nark.NewSponge()
	prover.Absorb([]byte("outer protocol"))
	proof, err := nark.Prove(pk, cs, true, rng, prover)
	assert.NoError(err)

	verifier := nark.NewSponge()
	verifier.Absorb([]byte("outer protocol"))
	assert.True(nark.Verify(vk, cs.Assignment.Input, proof, verifier))

	other := nark.NewSponge()
	other.Absorb([]byte("another protocol"))
	assert.False(nark.Verify(vk, cs.Assignment.Input, proof, other))
	assert.False(nark.Verify(vk, cs.Assignment.Input, proof, nil))
}

func TestProveErrors(t *testing.T) {
	assert := test.NewAssert(t)
	nark := NewBLS12381()

	cs := chainCircuit(3, 5)
	pk, _, err := nark.Index(nark.Setup(), cs)
	assert.NoError(err)

	_, err = nark.Prove(pk, cs, true, nil, nil)
	assert.ErrorIs(err, ErrMissingRandomness)

	_, err = nark.Prove(pk, cs, true, failingReader{}, nil)
	assert.Error(err)

	_, err = nark.Prove(pk, cs, false, failingReader{}, nil)
	assert.NoError(err, "randomness must not be read without zero-knowledge")

	_, err = nark.Prove(pk, Static[fr.Element]{}, false, nil, nil)
	assert.ErrorIs(err, ErrConstraintGeneration)

	wrong := chainCircuit(4, 5)
	_, err = nark.Prove(pk, wrong, false, nil, nil)
	assert.ErrorIs(err, ErrDimensionMismatch)
	var dm *DimensionMismatchError
	assert.True(errors.As(err, &dm))
	assert.Equal(6, dm.ExpectedVariables)
	assert.Equal(7, dm.ActualVariables)
	assert.Equal(4, dm.ExpectedConstraints)
	assert.Equal(5, dm.ActualConstraints)
	assert.Contains(err.Error(), "expected 6 variables (2 instance) and 4 constraints, got 7 variables (2 instance) and 5 constraints")
}

func TestIndexErrors(t *testing.T) {
	assert := test.NewAssert(t)
	nark := NewBLS12381()

	_, _, err := nark.Index(nark.Setup(), Static[fr.Element]{})
	assert.ErrorIs(err, ErrConstraintGeneration)

	cs := squareCircuit(3, 9)
	cs.Matrices.C = Matrix[fr.Element]{{entry(1, 3)}}
	_, _, err = nark.Index(nark.Setup(), cs)
	assert.ErrorIs(err, ErrConstraintGeneration)

	cs = squareCircuit(3, 9)
	cs.Matrices.NumConstraints = 2
	_, _, err = nark.Index(nark.Setup(), cs)
	assert.ErrorIs(err, ErrConstraintGeneration)
}

func TestMatricesHash(t *testing.T) {
	assert := test.NewAssert(t)
	nark := NewBLS12381()

	cs := chainCircuit(3, 5)
	pk1, _, err := nark.Index(nark.Setup(), cs)
	assert.NoError(err)
	pk2, _, err := nark.Index(nark.Setup(), chainCircuit(3, 6))
	assert.NoError(err)
	assert.Equal(pk1.IndexInfo, pk2.IndexInfo, "the hash depends on the matrices only")

	f := nark.Field()
	m := cs.Matrices
	swapped := Matrix[fr.Element]{}
	for _, row := range m.A {
		r := append([]Entry[fr.Element](nil), row...)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		swapped = append(swapped, r)
	}
	assert.NotEqual(hashMatrices(f, m.A, m.B, m.C), hashMatrices(f, swapped, m.B, m.C))
	assert.NotEqual(hashMatrices(f, m.A, m.B, m.C), hashMatrices(f, m.B, m.A, m.C))
}

func TestMatVecMul(t *testing.T) {
	assert := test.NewAssert(t)
	f := NewBLS12381().Field()

	m := Matrix[fr.Element]{
		{entry(2, 0), entry(1, 2)},
		{},
		{entry(3, 1), entry(4, 3)},
	}
	input := []fr.Element{fr.NewElement(1), fr.NewElement(10)}
	witness := []fr.Element{fr.NewElement(100), fr.NewElement(1000)}
	for _, nbTasks := range []int{0, 1, 2, 8} {
		out := MatVecMul(f, m, input, witness, nbTasks)
		assert.Equal([]fr.Element{fr.NewElement(102), fr.NewElement(0), fr.NewElement(4030)}, out)
	}
}

func TestZeroMessages(t *testing.T) {
	assert := test.NewAssert(t)
	nark := NewBLS12381()

	assert.Nil(ZeroFirstRoundMessage(nark.Group(), false).Randomness)
	assert.NotNil(ZeroFirstRoundMessage(nark.Group(), true).Randomness)
	msg := ZeroSecondRoundMessage(nark.Field(), 3, true)
	assert.Len(msg.BlindedWitness, 3)
	assert.NotNil(msg.Randomness)

	zero := Proof[curve.G1Affine, fr.Element]{
		FirstMsg:  ZeroFirstRoundMessage(nark.Group(), true),
		SecondMsg: ZeroSecondRoundMessage(nark.Field(), 1, true),
	}
	assert.True(zero.ZK())
}
