// Package r1csnark implements a non-interactive argument of knowledge for
// R1CS satisfiability from Pedersen vector commitments and a Fiat-Shamir
// challenge. Every component is generic over a scalar field, a group and a
// sponge (see package algebra); NewBLS12381 wires the concrete ones.
package r1csnark

// PROTOCOL_NAME domain-separates the matrices hash.
const PROTOCOL_NAME = "R1CS-NARK-2020"

// CHALLENGE_SIZE is the bit length the Fiat-Shamir challenge is truncated to.
const CHALLENGE_SIZE = 128

// MAX_ENCODED_LENGTH bounds every length prefix accepted by the decoders.
const MAX_ENCODED_LENGTH = 1 << 26

// PREALLOC_LENGTH caps the capacity reserved from a length prefix before the
// elements are actually read.
const PREALLOC_LENGTH = 1 << 10
