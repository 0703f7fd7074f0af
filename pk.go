package r1csnark

import (
	"fmt"
	"time"

	"github.com/eon-protocol/r1csnark/pedersen"
)

// IndexInfo identifies a relation. Two relations are the same iff their
// IndexInfo values are equal.
type IndexInfo struct {
	NumVariables         int
	NumConstraints       int
	NumInstanceVariables int
	MatricesHash         [32]byte
}

// NumWitnessVariables is the length of the witness part of z.
func (me IndexInfo) NumWitnessVariables() int {
	return me.NumVariables - me.NumInstanceVariables
}

func checkAssignment[S any](info IndexInfo, a *Assignment[S]) error {
	actual := len(a.Input) + len(a.Witness)
	if actual == info.NumVariables && len(a.Input) == info.NumInstanceVariables && a.NumConstraints == info.NumConstraints {
		return nil
	}
	return &DimensionMismatchError{
		ExpectedVariables:         info.NumVariables,
		ActualVariables:           actual,
		ExpectedInstanceVariables: info.NumInstanceVariables,
		ActualInstanceVariables:   len(a.Input),
		ExpectedConstraints:       info.NumConstraints,
		ActualConstraints:         a.NumConstraints,
	}
}

// IndexProverKey is everything needed to prove statements about one relation.
type IndexProverKey[P, S any] struct {
	IndexInfo
	A, B, C      Matrix[S]
	CommitterKey pedersen.CommitterKey[P]
}

// IndexVerifierKey holds the same material as the prover key; nothing in it
// is secret.
type IndexVerifierKey[P, S any] = IndexProverKey[P, S]

// Index extracts the matrices of cs, hashes them and derives a commitment key
// sized to the number of constraints.
func (me *NARK[P, S]) Index(_ PublicParameters, cs ConstraintSynthesizer[S]) (*IndexProverKey[P, S], *IndexVerifierKey[P, S], error) {
	start := time.Now()
	matrices, err := cs.GenerateMatrices()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrConstraintGeneration, err)
	}
	if err := checkMatrices(matrices); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrConstraintGeneration, err)
	}
	log := me.log.With().
		Str("protocol", PROTOCOL_NAME).
		Int("nbConstraints", matrices.NumConstraints).
		Int("nbVariables", matrices.NumInstanceVariables+matrices.NumWitnessVariables).
		Logger()

	info := IndexInfo{
		NumVariables:         matrices.NumInstanceVariables + matrices.NumWitnessVariables,
		NumConstraints:       matrices.NumConstraints,
		NumInstanceVariables: matrices.NumInstanceVariables,
		MatricesHash:         hashMatrices(me.field, matrices.A, matrices.B, matrices.C),
	}

	pp, err := pedersen.Setup(me.group, info.NumConstraints)
	if err != nil {
		return nil, nil, err
	}
	ck, err := pedersen.Trim(pp, info.NumConstraints)
	if err != nil {
		return nil, nil, err
	}

	pk := &IndexProverKey[P, S]{
		IndexInfo:    info,
		A:            matrices.A,
		B:            matrices.B,
		C:            matrices.C,
		CommitterKey: *ck,
	}
	vk := *pk
	log.Debug().Dur("took", time.Since(start)).Msg("indexer done")
	return pk, &vk, nil
}
