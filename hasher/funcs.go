package hasher

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

func permute(state *[WIDTH]fr.Element) {
	if err := GetPermutation().Permutation(state[:]); err != nil {
		panic(err)
	}
}

// Compress returns perm([x,y])[1] + y, the t=2 compression function matching
// the circuit's Compress.
func Compress(x, y fr.Element) fr.Element {
	vars := [WIDTH]fr.Element{x, y}
	permute(&vars)
	var ret fr.Element
	ret.Add(&vars[1], &y)
	return ret
}

// Sum folds a sequence with Compress(acc, v) starting from zero.
func Sum(val ...fr.Element) fr.Element {
	var ret fr.Element
	for _, v := range val {
		ret = Compress(ret, v)
	}
	return ret
}

// packBytes maps data to field elements: its length first, then big-endian
// chunks of BYTES_PER_ELEMENT bytes. The length prefix keeps inputs that only
// differ by trailing zero bytes apart.
func packBytes(data []byte) []fr.Element {
	out := make([]fr.Element, 0, 1+(len(data)+BYTES_PER_ELEMENT-1)/BYTES_PER_ELEMENT)
	out = append(out, fr.NewElement(uint64(len(data))))
	for start := 0; start < len(data); start += BYTES_PER_ELEMENT {
		end := min(start+BYTES_PER_ELEMENT, len(data))
		var e fr.Element
		e.SetBytes(data[start:end])
		out = append(out, e)
	}
	return out
}

// truncate keeps the low bits of e. bits == 0 or bits >= fr.Bits returns e.
func truncate(e fr.Element, bits int) fr.Element {
	if bits <= 0 || bits >= fr.Bits {
		return e
	}
	var b, mask big.Int
	e.BigInt(&b)
	mask.Lsh(big.NewInt(1), uint(bits)).Sub(&mask, big.NewInt(1))
	b.And(&b, &mask)
	var r fr.Element
	r.SetBigInt(&b)
	return r
}
