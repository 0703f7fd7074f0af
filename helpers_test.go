package r1csnark

import (
	"crypto/rand"
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

var one = fr.One()

func entry(coeff uint64, col int) Entry[fr.Element] {
	return Entry[fr.Element]{Coeff: fr.NewElement(coeff), Col: col}
}

// squareCircuit encodes x·x = y over z = (1, x | y).
func squareCircuit(x, y uint64) Static[fr.Element] {
	return Static[fr.Element]{
		Matrices: &ConstraintMatrices[fr.Element]{
			NumInstanceVariables: 2,
			NumWitnessVariables:  1,
			NumConstraints:       1,
			A:                    Matrix[fr.Element]{{entry(1, 1)}},
			B:                    Matrix[fr.Element]{{entry(1, 1)}},
			C:                    Matrix[fr.Element]{{entry(1, 2)}},
		},
		Assignment: &Assignment[fr.Element]{
			Input:          []fr.Element{one, fr.NewElement(x)},
			Witness:        []fr.Element{fr.NewElement(y)},
			NumConstraints: 1,
		},
	}
}

// chainCircuit encodes w_1 = x·x, w_i = w_{i-1}·x for i ≤ n, then
// t = (3x + 5)·w_n, over z = (1, x | w_1..w_n, t).
func chainCircuit(n int, x uint64) Static[fr.Element] {
	m := &ConstraintMatrices[fr.Element]{
		NumInstanceVariables: 2,
		NumWitnessVariables:  n + 1,
		NumConstraints:       n + 1,
	}
	xv := fr.NewElement(x)
	witness := make([]fr.Element, 0, n+1)
	prev, prevCol := xv, 1
	for i := 0; i < n; i++ {
		var w fr.Element
		w.Mul(&prev, &xv)
		witness = append(witness, w)
		m.A = append(m.A, []Entry[fr.Element]{entry(1, prevCol)})
		m.B = append(m.B, []Entry[fr.Element]{entry(1, 1)})
		m.C = append(m.C, []Entry[fr.Element]{entry(1, 2+i)})
		prev, prevCol = w, 2+i
	}
	var lhs, t fr.Element
	lhs.Mul(&xv, new(fr.Element).SetUint64(3)).Add(&lhs, new(fr.Element).SetUint64(5))
	t.Mul(&lhs, &prev)
	witness = append(witness, t)
	m.A = append(m.A, []Entry[fr.Element]{entry(3, 1), entry(5, 0)})
	m.B = append(m.B, []Entry[fr.Element]{entry(1, prevCol)})
	m.C = append(m.C, []Entry[fr.Element]{entry(1, 2+n)})

	return Static[fr.Element]{
		Matrices: m,
		Assignment: &Assignment[fr.Element]{
			Input:          []fr.Element{one, xv},
			Witness:        witness,
			NumConstraints: n + 1,
		},
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("randomness exhausted") }

var rng = rand.Reader
