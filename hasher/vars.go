// Centralizes Poseidon2 parameters for the native sponge and the circuit gadget.
package hasher

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/poseidon2"
)

const WIDTH = 2
const ROUND_FULL = 8
const ROUND_PARTIAL = 56
const SEED = "R1CS_NARK_POSEIDON2_SEED"

// BYTES_PER_ELEMENT is how many absorbed bytes are packed into one field
// element; 31 bytes always fit below the 255-bit modulus.
const BYTES_PER_ELEMENT = 31

// GetPermutation returns the native Poseidon2 permutation for the parameters above.
var GetPermutation = sync.OnceValue(func() *poseidon2.Permutation {
	return poseidon2.NewPermutationWithSeed(WIDTH, ROUND_FULL, ROUND_PARTIAL, SEED)
})

// GetParameters returns the round constants shared with the circuit gadget.
var GetParameters = sync.OnceValue(func() *poseidon2.Parameters {
	return poseidon2.NewParametersWithSeed(WIDTH, ROUND_FULL, ROUND_PARTIAL, SEED)
})
