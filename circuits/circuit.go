// Package circuits turns gnark circuits into constraint systems the NARK can
// index and prove. Circuits are compiled with gnark's R1CS builder over the
// BLS12-381 scalar field.
package circuits

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/constraint"
	cs "github.com/consensys/gnark/constraint/bls12-381"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/eon-protocol/r1csnark"
)

var FIELD = ecc.BLS12_381.ScalarField()

var ErrNoAssignment = errors.New("circuits: no assignment")

// Circuit is a compiled gnark circuit, optionally bound to an assignment.
// Variables are ordered as gnark numbers its wires: the constant one, the
// public inputs, then secret inputs and internal wires.
type Circuit struct {
	ccs        *cs.R1CS
	assignment frontend.Circuit
}

// Compile compiles circuit with the R1CS builder.
func Compile(circuit frontend.Circuit) (*Circuit, error) {
	ccs, err := frontend.Compile(FIELD, r1cs.NewBuilder, circuit)
	if err != nil {
		return nil, err
	}
	return FromConstraintSystem(ccs)
}

func FromConstraintSystem(ccs constraint.ConstraintSystem) (*Circuit, error) {
	r, ok := ccs.(*cs.R1CS)
	if !ok {
		return nil, fmt.Errorf("circuits: expected a BLS12-381 R1CS, got %T", ccs)
	}
	return &Circuit{ccs: r}, nil
}

// WithAssignment returns a copy of me that proves the given assignment.
func (me *Circuit) WithAssignment(assignment frontend.Circuit) *Circuit {
	return &Circuit{ccs: me.ccs, assignment: assignment}
}

func (me *Circuit) NbInstanceVariables() int { return me.ccs.GetNbPublicVariables() }

func (me *Circuit) NbWitnessVariables() int {
	return me.ccs.GetNbSecretVariables() + me.ccs.GetNbInternalVariables()
}

func (me *Circuit) NbConstraints() int { return me.ccs.GetNbConstraints() }

func (me *Circuit) toRow(l constraint.LinearExpression) []r1csnark.Entry[fr.Element] {
	row := make([]r1csnark.Entry[fr.Element], 0, len(l))
	for _, t := range l {
		coeff := me.ccs.Coefficients[t.CID]
		if coeff.IsZero() {
			continue
		}
		row = append(row, r1csnark.Entry[fr.Element]{Coeff: coeff, Col: int(t.VID)})
	}
	return row
}

func (me *Circuit) GenerateMatrices() (*r1csnark.ConstraintMatrices[fr.Element], error) {
	rows := me.ccs.GetR1Cs()
	m := &r1csnark.ConstraintMatrices[fr.Element]{
		NumInstanceVariables: me.NbInstanceVariables(),
		NumWitnessVariables:  me.NbWitnessVariables(),
		NumConstraints:       len(rows),
		A:                    make(r1csnark.Matrix[fr.Element], len(rows)),
		B:                    make(r1csnark.Matrix[fr.Element], len(rows)),
		C:                    make(r1csnark.Matrix[fr.Element], len(rows)),
	}
	for i, c := range rows {
		m.A[i] = me.toRow(c.L)
		m.B[i] = me.toRow(c.R)
		m.C[i] = me.toRow(c.O)
	}
	return m, nil
}

// GenerateAssignment solves the circuit for the bound assignment.
func (me *Circuit) GenerateAssignment() (*r1csnark.Assignment[fr.Element], error) {
	if me.assignment == nil {
		return nil, ErrNoAssignment
	}
	w, err := frontend.NewWitness(me.assignment, FIELD)
	if err != nil {
		return nil, fmt.Errorf("new witness: %w", err)
	}
	solution, err := me.ccs.Solve(w)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	z := solution.(*cs.R1CSSolution).W
	nbPublic := me.NbInstanceVariables()
	return &r1csnark.Assignment[fr.Element]{
		Input:          z[:nbPublic],
		Witness:        z[nbPublic:],
		NumConstraints: me.NbConstraints(),
	}, nil
}

// PublicInput returns the verifier's view of assignment: the constant one
// followed by the public inputs.
func PublicInput(assignment frontend.Circuit) ([]fr.Element, error) {
	w, err := frontend.NewWitness(assignment, FIELD, frontend.PublicOnly())
	if err != nil {
		return nil, err
	}
	vec, ok := w.Vector().(fr.Vector)
	if !ok {
		return nil, fmt.Errorf("circuits: unexpected witness vector %T", w.Vector())
	}
	return append([]fr.Element{fr.One()}, vec...), nil
}
