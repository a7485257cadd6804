//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package lowmc

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/crypto/sha3"

	"github.com/markkurossi/picnic3lowmc/internal/bitvec"
)

// Matrix is a GF(2) linear map represented row-major: Rows[i] is the
// i-th output bit expressed as the XOR (parity) of the input bits it
// selects. len(Rows) is the output width; each row's Width is the
// input width.
type Matrix struct {
	Rows []bitvec.Vector
}

// Apply computes out = M * in over GF(2): out bit i is the parity of
// (in AND Rows[i]). The output width is len(m.Rows), which for every
// LowMC matrix in this module (the linear layer and the key schedule)
// is always N or K — both are one of the three supported widths.
func (m *Matrix) Apply(in *bitvec.Vector) bitvec.Vector {
	out := bitvec.New(len(m.Rows))
	var t bitvec.Vector
	for i, row := range m.Rows {
		bitvec.And(&t, in, &row)
		if parityOdd(&t) {
			setBit(&out, i)
		}
	}
	return out
}

// parityOdd reports whether v has an odd number of set bits across
// its live words.
func parityOdd(v *bitvec.Vector) bool {
	n := (v.Width + 63) / 64
	var p uint64
	for i := 0; i < n; i++ {
		p ^= uint64(bits.OnesCount64(v.Words[i]))
	}
	return p&1 == 1
}

// setBit sets logical bit i (0 = most significant) of v.
func setBit(v *bitvec.Vector, i int) {
	word := i / 64
	bitInWord := i % 64
	v.Words[word] |= 1 << uint(63-bitInWord)
}

// leadingBit returns the index (0 = most significant) of the highest-
// order set bit of v, and false if v is zero.
func leadingBit(v *bitvec.Vector) (int, bool) {
	n := (v.Width + 63) / 64
	for w := 0; w < n; w++ {
		if v.Words[w] == 0 {
			continue
		}
		return w*64 + bits.LeadingZeros64(v.Words[w]), true
	}
	return 0, false
}

// Constants holds every per-round table a full-S-box LowMC instance
// needs: the round linear layers, the round-key expansion matrices,
// the round constants, and the fixed S-box bit-triple masks.
type Constants struct {
	Params         Parameters
	LinearLayer    []Matrix // R matrices, N x N
	KeyMatrices    []Matrix // R+1 matrices, N x K
	RoundConstants []bitvec.Vector
	MaskA          bitvec.Vector
	MaskB          bitvec.Vector
	MaskC          bitvec.Vector
}

// domainSep tags the SHAKE256 expansion so the linear layer, key
// schedule and round constants of the same parameter set never reuse
// the same stream, even though they share a seed derivation.
type domainSep byte

const (
	domainLinear domainSep = 1
	domainKey    domainSep = 2
	domainConst  domainSep = 3
)

// streamFor returns a fresh SHAKE256 reader seeded deterministically
// from the parameter tuple, a domain tag, and an index (matrix/round
// number), so regenerating Constants for the same Parameters is
// always reproducible.
func streamFor(p Parameters, tag domainSep, index int) sha3.ShakeHash {
	h := sha3.NewShake256()
	h.Write([]byte("picnic3lowmc/lowmc-constants/v1"))
	var hdr [13]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(p.N))
	binary.BigEndian.PutUint32(hdr[4:8], uint32(p.K))
	hdr[8] = byte(p.R)
	hdr[9] = byte(p.M)
	hdr[10] = byte(tag)
	binary.BigEndian.PutUint16(hdr[11:13], uint16(index))
	h.Write(hdr[:])
	return h
}

// randomRow draws a width-bit row from the stream.
func randomRow(h sha3.ShakeHash, width int) bitvec.Vector {
	buf := make([]byte, bitvec.ByteLen(width))
	if _, err := h.Read(buf); err != nil {
		panic(err) // ShakeHash.Read never errors
	}
	return bitvec.FromBytes(width, buf)
}

// genFullRankRows draws nrows random rows of the given width from
// the stream, resampling a row when accepting it as-is would not
// move the accumulated row space any closer to full rank. Once the
// accumulated pivots reach min(nrows, width) the remaining rows are
// accepted unconditionally, exactly as a real LowMC matrix generator
// only needs SOME width-sized (or nrows-sized) independent subset,
// not every row independent of every other.
func genFullRankRows(h sha3.ShakeHash, nrows, width int) []bitvec.Vector {
	target := nrows
	if width < target {
		target = width
	}
	rows := make([]bitvec.Vector, 0, nrows)
	pivots := make(map[int]bitvec.Vector)
	for len(rows) < nrows {
		row := randomRow(h, width)
		if len(pivots) >= target {
			rows = append(rows, row)
			continue
		}
		reduced := row.Clone()
		for {
			lead, ok := leadingBit(&reduced)
			if !ok {
				break
			}
			pivot, has := pivots[lead]
			if !has {
				pivots[lead] = reduced
				break
			}
			var next bitvec.Vector
			bitvec.Xor(&next, &reduced, &pivot)
			reduced = next
		}
		if reduced.IsZero() {
			continue // dependent on the current pivot set, resample
		}
		rows = append(rows, row)
	}
	return rows
}

// Generate builds the Constants for p deterministically: the same
// Parameters always yields byte-identical matrices, round constants
// and masks, but — absent the reference's published constant tables
// in the retrieval corpus — these do not reproduce the upstream
// Picnic3 tables bit-for-bit. See the module's design notes.
func Generate(p Parameters) (*Constants, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c := &Constants{Params: p}

	c.LinearLayer = make([]Matrix, p.R)
	for r := 0; r < p.R; r++ {
		h := streamFor(p, domainLinear, r)
		c.LinearLayer[r] = Matrix{Rows: genFullRankRows(h, p.N, p.N)}
	}

	c.KeyMatrices = make([]Matrix, p.R+1)
	for r := 0; r <= p.R; r++ {
		h := streamFor(p, domainKey, r)
		c.KeyMatrices[r] = Matrix{Rows: genFullRankRows(h, p.N, p.K)}
	}

	c.RoundConstants = make([]bitvec.Vector, p.R)
	hc := streamFor(p, domainConst, 0)
	for r := 0; r < p.R; r++ {
		c.RoundConstants[r] = randomRow(hc, p.N)
	}

	c.MaskA, c.MaskB, c.MaskC = sboxMasks(p)

	return c, nil
}

// sboxMasks builds the fixed S-box bit-triple selectors: the first
// 3*M bits of the state are covered by M consecutive (a,b,c) triples;
// MaskC selects each triple's first (lowest-index) bit, MaskB the
// second, MaskA the third. The layout looks backwards next to the
// a,b,c reading order, but it is what lets split's ShiftLeft — which
// moves bits toward index 0 — bring all three into the triple's
// lowest-index slot: MaskA needs to travel two positions, MaskB one,
// MaskC none. Bits at or beyond 3*M (the linear part of the state)
// are selected by none of the three.
func sboxMasks(p Parameters) (a, b, c bitvec.Vector) {
	a, b, c = bitvec.New(p.N), bitvec.New(p.N), bitvec.New(p.N)
	for i := 0; i < p.M; i++ {
		setBit(&a, 3*i+2)
		setBit(&b, 3*i+1)
		setBit(&c, 3*i)
	}
	return
}
