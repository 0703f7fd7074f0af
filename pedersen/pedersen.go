// Package pedersen implements a Pedersen vector commitment over any group
// satisfying algebra.Group. Commitments are binding unconditionally and
// hiding when a blinding scalar is supplied.
package pedersen

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/eon-protocol/r1csnark/algebra"
)

// PEDERSEN_DST separates generator derivation from every other use of
// hash-to-group in the module.
const PEDERSEN_DST = "R1CS-NARK-PEDERSEN-GENERATORS-V1"

var ErrVectorTooLong = errors.New("pedersen: vector longer than committer key")

// CommitterKey holds the generators used to commit to vectors of length at
// most len(Generators), and the generator multiplied by the blinding scalar.
type CommitterKey[P any] struct {
	Generators      []P
	HidingGenerator P
}

// MaxLength returns the longest vector the key can commit to.
func (me *CommitterKey[P]) MaxLength() int {
	return len(me.Generators)
}

// Setup derives maxLength vector generators by hashing their index, plus a
// separate hiding generator. The result is deterministic, so prover and
// verifier derive identical keys independently.
func Setup[P, S any](group algebra.Group[P, S], maxLength int) (*CommitterKey[P], error) {
	if maxLength < 0 {
		return nil, fmt.Errorf("pedersen: negative length %d", maxLength)
	}
	ck := &CommitterKey[P]{Generators: make([]P, maxLength)}
	var msg [8]byte
	for i := 0; i < maxLength; i++ {
		binary.LittleEndian.PutUint64(msg[:], uint64(i))
		g, err := group.HashToGroup(msg[:], []byte(PEDERSEN_DST))
		if err != nil {
			return nil, fmt.Errorf("pedersen: generator %d: %w", i, err)
		}
		ck.Generators[i] = g
	}
	h, err := group.HashToGroup([]byte("hiding"), []byte(PEDERSEN_DST))
	if err != nil {
		return nil, fmt.Errorf("pedersen: hiding generator: %w", err)
	}
	ck.HidingGenerator = h
	return ck, nil
}

// Trim returns a key restricted to vectors of length at most length. The
// generator slice is shared with pp.
func Trim[P any](pp *CommitterKey[P], length int) (*CommitterKey[P], error) {
	if length > len(pp.Generators) {
		return nil, fmt.Errorf("pedersen: cannot trim key of size %d to %d", len(pp.Generators), length)
	}
	return &CommitterKey[P]{
		Generators:      pp.Generators[:length],
		HidingGenerator: pp.HidingGenerator,
	}, nil
}

// Commit returns sum(vec[i]*G[i]) + blinder*H. A nil blinder commits without
// hiding, which equals a commitment with a zero blinder.
func Commit[P, S any](group algebra.Group[P, S], ck *CommitterKey[P], vec []S, blinder *S) (P, error) {
	if len(vec) > len(ck.Generators) {
		var zero P
		return zero, fmt.Errorf("%w: %d > %d", ErrVectorTooLong, len(vec), len(ck.Generators))
	}
	comm, err := group.MultiExp(ck.Generators[:len(vec)], vec)
	if err != nil {
		var zero P
		return zero, err
	}
	if blinder != nil {
		comm = group.Add(comm, group.ScalarMul(ck.HidingGenerator, *blinder))
	}
	return comm, nil
}
