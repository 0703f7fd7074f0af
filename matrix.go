package r1csnark

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/eon-protocol/r1csnark/algebra"
)

// Entry is one non-zero coefficient of a constraint matrix.
type Entry[S any] struct {
	Coeff S
	Col   int
}

// Matrix is a sparse R1CS matrix: one row per constraint, each row an ordered
// list of entries over the (input ∥ witness) variable index space.
type Matrix[S any] [][]Entry[S]

// ConstraintMatrices are the A, B, C matrices of a constraint system with
// its dimensions. NumInstanceVariables counts the constant-one variable.
type ConstraintMatrices[S any] struct {
	NumInstanceVariables int
	NumWitnessVariables  int
	NumConstraints       int

	A, B, C Matrix[S]
}

// Assignment is a solved constraint system: the instance part (starting
// with the constant one) and the witness part of z.
type Assignment[S any] struct {
	Input          []S
	Witness        []S
	NumConstraints int
}

// ConstraintSynthesizer produces the matrices of a relation and a satisfying
// assignment for it.
type ConstraintSynthesizer[S any] interface {
	GenerateMatrices() (*ConstraintMatrices[S], error)
	GenerateAssignment() (*Assignment[S], error)
}

// Static is a ConstraintSynthesizer over fixed matrices and assignment.
// Either field may be nil when the caller only indexes or only proves.
type Static[S any] struct {
	Matrices   *ConstraintMatrices[S]
	Assignment *Assignment[S]
}

func (me Static[S]) GenerateMatrices() (*ConstraintMatrices[S], error) {
	if me.Matrices == nil {
		return nil, errors.New("no matrices")
	}
	return me.Matrices, nil
}

func (me Static[S]) GenerateAssignment() (*Assignment[S], error) {
	if me.Assignment == nil {
		return nil, errors.New("no assignment")
	}
	return me.Assignment, nil
}

// MatVecMul returns M·(input ∥ witness). Rows are computed in parallel and
// written back by index. Multiplication is skipped for coefficients equal to
// one. Column indices must lie in [0, len(input)+len(witness)).
func MatVecMul[S any](f algebra.Field[S], m Matrix[S], input, witness []S, nbTasks int) []S {
	out := make([]S, len(m))
	nbInput := len(input)
	algebra.Parallelize(len(m), func(start, end int) {
		for i := start; i < end; i++ {
			acc := f.Zero()
			for _, e := range m[i] {
				var v S
				if e.Col < nbInput {
					v = input[e.Col]
				} else {
					v = witness[e.Col-nbInput]
				}
				if f.IsOne(e.Coeff) {
					acc = f.Add(acc, v)
				} else {
					acc = f.Add(acc, f.Mul(e.Coeff, v))
				}
			}
			out[i] = acc
		}
	}, nbTasks)
	return out
}

func checkMatrix[S any](name string, m Matrix[S], nbRows, nbCols int) error {
	if len(m) != nbRows {
		return fmt.Errorf("matrix %s has %d rows, want %d", name, len(m), nbRows)
	}
	for i, row := range m {
		for _, e := range row {
			if e.Col < 0 || e.Col >= nbCols {
				return fmt.Errorf("matrix %s row %d: column %d out of range [0, %d)", name, i, e.Col, nbCols)
			}
		}
	}
	return nil
}

func checkMatrices[S any](m *ConstraintMatrices[S]) error {
	if m.NumInstanceVariables < 1 || m.NumWitnessVariables < 0 || m.NumConstraints < 0 {
		return fmt.Errorf("invalid dimensions: %d instance, %d witness variables, %d constraints",
			m.NumInstanceVariables, m.NumWitnessVariables, m.NumConstraints)
	}
	nbVars := m.NumInstanceVariables + m.NumWitnessVariables
	if err := checkMatrix("A", m.A, m.NumConstraints, nbVars); err != nil {
		return err
	}
	if err := checkMatrix("B", m.B, m.NumConstraints, nbVars); err != nil {
		return err
	}
	return checkMatrix("C", m.C, m.NumConstraints, nbVars)
}

// hashMatrices is Blake2b-256 over PROTOCOL_NAME followed by A, B and C, each
// serialized as u64le(#rows), then per row u64le(#entries) and per entry the
// coefficient's canonical bytes and u64le(column).
func hashMatrices[S any](f algebra.Field[S], a, b, c Matrix[S]) [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(PROTOCOL_NAME))
	var buf [8]byte
	u64 := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	for _, m := range []Matrix[S]{a, b, c} {
		u64(len(m))
		for _, row := range m {
			u64(len(row))
			for _, e := range row {
				h.Write(f.Bytes(e.Coeff))
				u64(e.Col)
			}
		}
	}
	var digest [32]byte
	h.Sum(digest[:0])
	return digest
}
