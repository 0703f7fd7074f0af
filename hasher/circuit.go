package hasher

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/poseidon2"
	"github.com/consensys/gnark/frontend"
)

var ErrInvalidSizebuffer = errors.New("the size of the input should match the size of the hash buffer")

// Permutation is the in-circuit Poseidon2 permutation for t=2, using the
// round constants of GetParameters.
type Permutation struct {
	api        frontend.API
	degreeSBox int
	roundKeys  [][]big.Int
}

// NewPermutation builds the gadget from the parameters in vars.go.
func NewPermutation(api frontend.API) (*Permutation, error) {
	params := GetParameters()
	degree := poseidon2.DegreeSBox()
	switch degree {
	case 3, 5, 7, 17:
	default:
		return nil, fmt.Errorf("poseidon2: unsupported s-box degree %d", degree)
	}
	keys := make([][]big.Int, len(params.RoundKeys))
	for i := range keys {
		keys[i] = make([]big.Int, len(params.RoundKeys[i]))
		for j := range keys[i] {
			params.RoundKeys[i][j].BigInt(&keys[i][j])
		}
	}
	return &Permutation{api: api, degreeSBox: degree, roundKeys: keys}, nil
}

// sBox raises x to degreeSBox with a short addition chain.
func (h *Permutation) sBox(x frontend.Variable) frontend.Variable {
	x2 := h.api.Mul(x, x)
	switch h.degreeSBox {
	case 3:
		return h.api.Mul(x2, x)
	case 5:
		return h.api.Mul(h.api.Mul(x2, x2), x)
	case 7:
		x3 := h.api.Mul(x2, x)
		return h.api.Mul(h.api.Mul(x3, x3), x)
	default:
		x4 := h.api.Mul(x2, x2)
		x8 := h.api.Mul(x4, x4)
		return h.api.Mul(h.api.Mul(x8, x8), x)
	}
}

// external matrix for t=2 is circ(2,1).
func (h *Permutation) matMulExternal(s []frontend.Variable) {
	sum := h.api.Add(s[0], s[1])
	s[0] = h.api.Add(sum, s[0])
	s[1] = h.api.Add(sum, s[1])
}

// internal matrix for t=2 is [[2,1],[1,3]].
func (h *Permutation) matMulInternal(s []frontend.Variable) {
	sum := h.api.Add(s[0], s[1])
	s[0] = h.api.Add(s[0], sum)
	s[1] = h.api.Add(h.api.Mul(s[1], 2), sum)
}

func (h *Permutation) addRoundKey(round int, s []frontend.Variable) {
	for i := range h.roundKeys[round] {
		s[i] = h.api.Add(s[i], h.roundKeys[round][i])
	}
}

// Permutation applies Poseidon2 to input in place.
func (h *Permutation) Permutation(input []frontend.Variable) error {
	if len(input) != WIDTH {
		return ErrInvalidSizebuffer
	}
	h.matMulExternal(input)

	rf := ROUND_FULL / 2
	for i := 0; i < rf; i++ {
		h.addRoundKey(i, input)
		for j := range input {
			input[j] = h.sBox(input[j])
		}
		h.matMulExternal(input)
	}
	for i := rf; i < rf+ROUND_PARTIAL; i++ {
		h.addRoundKey(i, input)
		input[0] = h.sBox(input[0])
		h.matMulInternal(input)
	}
	for i := rf + ROUND_PARTIAL; i < ROUND_FULL+ROUND_PARTIAL; i++ {
		h.addRoundKey(i, input)
		for j := range input {
			input[j] = h.sBox(input[j])
		}
		h.matMulExternal(input)
	}
	return nil
}

// Compress returns perm([left,right])[1] + right, matching the native Compress.
func (h *Permutation) Compress(left, right frontend.Variable) frontend.Variable {
	vars := [WIDTH]frontend.Variable{left, right}
	if err := h.Permutation(vars[:]); err != nil {
		panic(err)
	}
	return h.api.Add(vars[1], right)
}

// Sum folds values from zero with Compress, matching the native Sum.
func (h *Permutation) Sum(vals ...frontend.Variable) frontend.Variable {
	var acc frontend.Variable = 0
	for i := range vals {
		acc = h.Compress(acc, vals[i])
	}
	return acc
}
