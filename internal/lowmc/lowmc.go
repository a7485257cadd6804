//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package lowmc

import "github.com/markkurossi/picnic3lowmc/internal/bitvec"

// getBit reports logical bit i (0 = most significant) of v.
func getBit(v *bitvec.Vector, i int) bool {
	word := i / 64
	bitInWord := i % 64
	return v.Words[word]&(1<<uint(63-bitInWord)) != 0
}

// setBitTo sets or clears logical bit i of v.
func setBitTo(v *bitvec.Vector, i int, val bool) {
	word := i / 64
	bitInWord := i % 64
	mask := uint64(1) << uint(63-bitInWord)
	if val {
		v.Words[word] |= mask
	} else {
		v.Words[word] &^= mask
	}
}

// sbox applies the full-S-box LowMC substitution layer in the clear:
// every consecutive (a,b,c) triple among the first 3*M state bits is
// replaced by
//
//	a' = a XOR (b AND c)
//	b' = a XOR b XOR (a AND c)
//	c' = a XOR b XOR c XOR (a AND b)
//
// the fixed 3-bit LowMC S-box; bits at or beyond 3*M pass through
// unchanged. This is the plaintext reference the MPC simulator in
// internal/mpcsbox reproduces share-by-share, so the (a,b,c) role
// assignment here has to agree bit-for-bit with internal/lowmc's
// MaskA/MaskB/MaskC: a is the triple's highest-index bit, b the
// middle, c the lowest.
func sbox(p Parameters, state bitvec.Vector) bitvec.Vector {
	out := state.Clone()
	for i := 0; i < p.M; i++ {
		ai, bi, ci := 3*i+2, 3*i+1, 3*i
		a := getBit(&state, ai)
		b := getBit(&state, bi)
		c := getBit(&state, ci)

		na := a != (b && c)
		nb := (a != b) != (a && c)
		nc := (a != b != c) != (a && b)

		setBitTo(&out, ai, na)
		setBitTo(&out, bi, nb)
		setBitTo(&out, ci, nc)
	}
	return out
}

// Encrypt runs the full-S-box LowMC forward permutation: an initial
// whitening round-key XOR followed by R rounds of (S-box, linear
// layer, round-key XOR, round-constant XOR), per the reference
// construction.
func Encrypt(c *Constants, ops bitvec.Ops, key, plaintext bitvec.Vector) bitvec.Vector {
	var state bitvec.Vector
	roundKey := c.KeyMatrices[0].Apply(&key)
	ops.Xor(&state, &plaintext, &roundKey)

	for r := 0; r < c.Params.R; r++ {
		state = sbox(c.Params, state)
		state = c.LinearLayer[r].Apply(&state)

		roundKey = c.KeyMatrices[r+1].Apply(&key)
		var withKey bitvec.Vector
		ops.Xor(&withKey, &state, &roundKey)
		ops.Xor(&state, &withKey, &c.RoundConstants[r])
	}
	return state
}
