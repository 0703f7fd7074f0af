package r1csnark

import (
	"encoding/binary"
	"fmt"
	"io"
)

type encoder struct {
	w   io.Writer
	n   int64
	err error
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	m, err := e.w.Write(b)
	e.n += int64(m)
	e.err = err
}

func (e *encoder) u32(v int) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	e.write(buf[:])
}

func (e *encoder) flag(v bool) {
	if v {
		e.write([]byte{1})
	} else {
		e.write([]byte{0})
	}
}

type decoder struct {
	r   io.Reader
	n   int64
	err error
}

func (d *decoder) read(size int) []byte {
	if d.err != nil {
		return nil
	}
	buf := make([]byte, size)
	m, err := io.ReadFull(d.r, buf)
	d.n += int64(m)
	d.err = err
	return buf
}

func (d *decoder) u32() int {
	b := d.read(4)
	if d.err != nil {
		return 0
	}
	return int(binary.BigEndian.Uint32(b))
}

// length reads a u32 length prefix and bounds it by MAX_ENCODED_LENGTH.
func (d *decoder) length() int {
	v := d.u32()
	if d.err == nil && v > MAX_ENCODED_LENGTH {
		d.err = fmt.Errorf("%w: length %d exceeds %d", ErrInvalidEncoding, v, MAX_ENCODED_LENGTH)
	}
	return v
}

func (d *decoder) capacity(n int) int {
	return min(n, PREALLOC_LENGTH)
}

func (d *decoder) flag() bool {
	b := d.read(1)
	if d.err != nil {
		return false
	}
	switch b[0] {
	case 0:
		return false
	case 1:
		return true
	}
	d.err = fmt.Errorf("%w: option tag %d", ErrInvalidEncoding, b[0])
	return false
}

func (me *NARK[P, S]) writePoint(e *encoder, p P) { e.write(me.group.Bytes(p)) }

func (me *NARK[P, S]) writeScalar(e *encoder, s S) { e.write(me.field.Bytes(s)) }

func (me *NARK[P, S]) readPoint(d *decoder) P {
	var p P
	b := d.read(me.group.ByteSize())
	if d.err != nil {
		return p
	}
	p, d.err = me.group.SetBytes(b)
	return p
}

func (me *NARK[P, S]) readScalar(d *decoder) S {
	var s S
	b := d.read(me.field.ByteSize())
	if d.err != nil {
		return s
	}
	s, d.err = me.field.SetBytes(b)
	return s
}

func (me *NARK[P, S]) writeMatrix(e *encoder, m Matrix[S]) {
	e.u32(len(m))
	for _, row := range m {
		e.u32(len(row))
		for _, entry := range row {
			me.writeScalar(e, entry.Coeff)
			e.u32(entry.Col)
		}
	}
}

func (me *NARK[P, S]) readMatrix(d *decoder) Matrix[S] {
	nbRows := d.length()
	if d.err != nil {
		return nil
	}
	m := make(Matrix[S], 0, d.capacity(nbRows))
	for i := 0; i < nbRows && d.err == nil; i++ {
		nbEntries := d.length()
		row := make([]Entry[S], 0, d.capacity(nbEntries))
		for j := 0; j < nbEntries && d.err == nil; j++ {
			coeff := me.readScalar(d)
			row = append(row, Entry[S]{Coeff: coeff, Col: d.u32()})
		}
		m = append(m, row)
	}
	return m
}

// WriteProof writes proof in canonical form and returns the bytes written.
func (me *NARK[P, S]) WriteProof(w io.Writer, proof *Proof[P, S]) (int64, error) {
	e := &encoder{w: w}
	first, second := &proof.FirstMsg, &proof.SecondMsg
	me.writePoint(e, first.CommA)
	me.writePoint(e, first.CommB)
	me.writePoint(e, first.CommC)
	e.flag(first.Randomness != nil)
	if r := first.Randomness; r != nil {
		for _, p := range []P{r.CommRA, r.CommRB, r.CommRC, r.Comm1, r.Comm2} {
			me.writePoint(e, p)
		}
	}
	e.u32(len(second.BlindedWitness))
	for _, s := range second.BlindedWitness {
		me.writeScalar(e, s)
	}
	e.flag(second.Randomness != nil)
	if r := second.Randomness; r != nil {
		for _, s := range []S{r.SigmaA, r.SigmaB, r.SigmaC, r.SigmaO} {
			me.writeScalar(e, s)
		}
	}
	return e.n, e.err
}

// ReadProof decodes a proof written by WriteProof. Non-canonical scalars and
// points outside the prime-order subgroup are rejected. Randomness presence
// is not cross-checked here; Verify rejects inconsistent proofs.
func (me *NARK[P, S]) ReadProof(r io.Reader) (*Proof[P, S], int64, error) {
	d := &decoder{r: r}
	proof := new(Proof[P, S])
	first, second := &proof.FirstMsg, &proof.SecondMsg
	first.CommA = me.readPoint(d)
	first.CommB = me.readPoint(d)
	first.CommC = me.readPoint(d)
	if d.flag() {
		first.Randomness = &FirstRoundMessageRandomness[P]{
			CommRA: me.readPoint(d),
			CommRB: me.readPoint(d),
			CommRC: me.readPoint(d),
			Comm1:  me.readPoint(d),
			Comm2:  me.readPoint(d),
		}
	}
	n := d.length()
	if d.err == nil {
		second.BlindedWitness = make([]S, 0, d.capacity(n))
		for i := 0; i < n && d.err == nil; i++ {
			second.BlindedWitness = append(second.BlindedWitness, me.readScalar(d))
		}
	}
	if d.flag() {
		second.Randomness = &SecondRoundMessageRandomness[S]{
			SigmaA: me.readScalar(d),
			SigmaB: me.readScalar(d),
			SigmaC: me.readScalar(d),
			SigmaO: me.readScalar(d),
		}
	}
	if d.err != nil {
		return nil, d.n, fmt.Errorf("read proof: %w", d.err)
	}
	return proof, d.n, nil
}

func writeIndexInfo(e *encoder, info IndexInfo) {
	e.u32(info.NumVariables)
	e.u32(info.NumConstraints)
	e.u32(info.NumInstanceVariables)
	e.write(info.MatricesHash[:])
}

func readIndexInfo(d *decoder) IndexInfo {
	var info IndexInfo
	info.NumVariables = d.length()
	info.NumConstraints = d.length()
	info.NumInstanceVariables = d.length()
	copy(info.MatricesHash[:], d.read(32))
	if d.err == nil && (info.NumInstanceVariables < 1 || info.NumInstanceVariables > info.NumVariables) {
		d.err = fmt.Errorf("%w: %d instance variables out of %d", ErrInvalidEncoding, info.NumInstanceVariables, info.NumVariables)
	}
	return info
}

func WriteIndexInfo(w io.Writer, info IndexInfo) (int64, error) {
	e := &encoder{w: w}
	writeIndexInfo(e, info)
	return e.n, e.err
}

func ReadIndexInfo(r io.Reader) (IndexInfo, int64, error) {
	d := &decoder{r: r}
	info := readIndexInfo(d)
	if d.err != nil {
		return IndexInfo{}, d.n, fmt.Errorf("read index info: %w", d.err)
	}
	return info, d.n, nil
}

// WriteKey writes a prover (equivalently verifier) key: its index info, the
// three matrices and the committer key.
func (me *NARK[P, S]) WriteKey(w io.Writer, pk *IndexProverKey[P, S]) (int64, error) {
	e := &encoder{w: w}
	writeIndexInfo(e, pk.IndexInfo)
	me.writeMatrix(e, pk.A)
	me.writeMatrix(e, pk.B)
	me.writeMatrix(e, pk.C)
	e.u32(len(pk.CommitterKey.Generators))
	for _, p := range pk.CommitterKey.Generators {
		me.writePoint(e, p)
	}
	me.writePoint(e, pk.CommitterKey.HidingGenerator)
	return e.n, e.err
}

// ReadKey decodes a key written by WriteKey. The matrices are checked against
// the dimensions and hash recorded in the index info, so a key that reads
// without error is safe to prove and verify with.
func (me *NARK[P, S]) ReadKey(r io.Reader) (*IndexProverKey[P, S], int64, error) {
	d := &decoder{r: r}
	pk := &IndexProverKey[P, S]{IndexInfo: readIndexInfo(d)}
	pk.A = me.readMatrix(d)
	pk.B = me.readMatrix(d)
	pk.C = me.readMatrix(d)
	n := d.length()
	if d.err == nil {
		pk.CommitterKey.Generators = make([]P, 0, d.capacity(n))
		for i := 0; i < n && d.err == nil; i++ {
			pk.CommitterKey.Generators = append(pk.CommitterKey.Generators, me.readPoint(d))
		}
	}
	pk.CommitterKey.HidingGenerator = me.readPoint(d)
	if d.err != nil {
		return nil, d.n, fmt.Errorf("read key: %w", d.err)
	}

	matrices := &ConstraintMatrices[S]{
		NumInstanceVariables: pk.NumInstanceVariables,
		NumWitnessVariables:  pk.NumWitnessVariables(),
		NumConstraints:       pk.NumConstraints,
		A:                    pk.A,
		B:                    pk.B,
		C:                    pk.C,
	}
	if err := checkMatrices(matrices); err != nil {
		return nil, d.n, fmt.Errorf("read key: %w: %w", ErrInvalidEncoding, err)
	}
	if hashMatrices(me.field, pk.A, pk.B, pk.C) != pk.MatricesHash {
		return nil, d.n, fmt.Errorf("read key: %w: matrices hash mismatch", ErrInvalidEncoding)
	}
	if pk.CommitterKey.MaxLength() < pk.NumConstraints {
		return nil, d.n, fmt.Errorf("read key: %w: %d generators for %d constraints", ErrInvalidEncoding, pk.CommitterKey.MaxLength(), pk.NumConstraints)
	}
	return pk, d.n, nil
}
