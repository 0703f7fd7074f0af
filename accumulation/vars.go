// Package accumulation folds R1CS NARK proofs and at most one prior
// accumulator into a single accumulator whose decision costs one set of
// matrix-vector products and four commitments, however many proofs were
// folded.
//
// Accumulators are relaxed R1CS instances (x, μ, C_A, C_B, C_C, C_E) with
// witness (w, σ_A, σ_B, σ_C, σ_E), valid iff, for z = x ∥ w,
//
//	C_A = Com(A·z; σ_A), C_B = Com(B·z; σ_B), C_C = Com(C·z; σ_C),
//	C_E = Com((A·z)∘(B·z) − μ·(C·z); σ_E).
//
// A NARK proof is such an instance with μ = 1, and two instances fold into one
// with a random linear combination and a committed cross term.
package accumulation

// PROTOCOL_NAME domain-separates the folding transcript.
const PROTOCOL_NAME = "AS-FOR-R1CS-NARK-2020"
