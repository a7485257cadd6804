//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package mpcsbox implements the MPC-in-the-head simulation of the
// LowMC full S-box layer across the 16 virtual Picnic3 (KKW) parties:
// the per-round S-box simulator that consumes random tapes and
// produces/consumes broadcast messages, and the online round driver
// that chains it with the LowMC linear layer.
package mpcsbox

import (
	"github.com/markkurossi/picnic3lowmc/internal/bitvec"
	"github.com/markkurossi/picnic3lowmc/internal/lowmc"
	"github.com/markkurossi/picnic3lowmc/internal/tape"
)

// triple holds the three bit-sliced, common-position-aligned
// components a LowMC S-box triple is decomposed into.
type triple struct {
	a, b, c bitvec.Vector
}

// split extracts a, b and c from w by masking and aligning each into
// the same bit position (the position mask_c already occupies):
// mask_a's selection is shifted left 2, mask_b's left 1, mask_c's not
// shifted at all. Every site in this package that pulls (a,b,c) out
// of an n-bit word — a state share, a tape's input_mask, a tape's
// and_helper, or an unopened party's committed message — uses this
// same split, differing only in how the three results are then named
// or rotated by the caller.
func split(ops bitvec.Ops, c *lowmc.Constants, w *bitvec.Vector) triple {
	var t triple
	var maskedA, maskedB bitvec.Vector
	ops.And(&maskedA, w, &c.MaskA)
	ops.And(&maskedB, w, &c.MaskB)
	ops.And(&t.c, w, &c.MaskC)
	ops.ShiftLeft(&t.a, &maskedA, 2)
	ops.ShiftLeft(&t.b, &maskedB, 1)
	return t
}

// Sbox runs one round of the MPC S-box simulator (spec §4.3) over all
// 16 virtual parties at once: it reads two tape words per opened
// party, reads one message word for the hidden party (if
// msgs.Unopened is set), writes one message word per opened party,
// advances both shared cursors by exactly one round's worth of bits,
// and updates states in place with each opened party's post-S-box
// share. The hidden party's slot in states is left untouched — its
// share is never tracked during verification.
func Sbox(p lowmc.Parameters, c *lowmc.Constants, ops bitvec.Ops, states *[tape.NumParties]bitvec.Vector, tapes *tape.RandomTapeSet, msgs *tape.MessageSet) {
	n := p.N

	var parts [tape.NumParties]triple
	for i := 0; i < tape.NumParties; i++ {
		if i == msgs.Unopened {
			continue
		}
		parts[i] = split(ops, c, &states[i])
	}

	sAB, sBC, sCA := bitvec.New(n), bitvec.New(n), bitvec.New(n)

	for i := 0; i < tape.NumParties; i++ {
		if i == msgs.Unopened {
			tmp := msgs.ReadWord(i, n)
			t := split(ops, c, &tmp)
			// Rotation: the a-aligned part feeds s_ca, b-aligned feeds
			// s_bc, c-aligned feeds s_ab.
			ops.Xor(&sCA, &sCA, &t.a)
			ops.Xor(&sBC, &sBC, &t.b)
			ops.Xor(&sAB, &sAB, &t.c)
			continue
		}

		inputMask := tapes.ReadWord(i, n, 0)
		andHelper := tapes.ReadWord(i, n, n)
		m := split(ops, c, &inputMask)
		h := split(ops, c, &andHelper)
		// Same rotation as the unopened-message case: the and_helper's
		// c-aligned part is and_helper_ab, b-aligned is and_helper_bc,
		// a-aligned is and_helper_ca.
		hAB, hBC, hCA := h.c, h.b, h.a

		pi := parts[i]

		var abi, bci, cai, t1, t2 bitvec.Vector
		ops.And(&t1, &pi.a, &m.b)
		ops.And(&t2, &pi.b, &m.a)
		ops.Xor(&abi, &t1, &t2)
		ops.Xor(&abi, &abi, &hAB)

		ops.And(&t1, &pi.b, &m.c)
		ops.And(&t2, &pi.c, &m.b)
		ops.Xor(&bci, &t1, &t2)
		ops.Xor(&bci, &bci, &hBC)

		ops.And(&t1, &pi.c, &m.a)
		ops.And(&t2, &pi.a, &m.c)
		ops.Xor(&cai, &t1, &t2)
		ops.Xor(&cai, &cai, &hCA)

		ops.Xor(&sAB, &sAB, &abi)
		ops.Xor(&sBC, &sBC, &bci)
		ops.Xor(&sCA, &sCA, &cai)

		var shiftedBC, shiftedCA, msg bitvec.Vector
		ops.ShiftRight(&shiftedBC, &bci, 1)
		ops.ShiftRight(&shiftedCA, &cai, 2)
		ops.Xor(&msg, &abi, &shiftedBC)
		ops.Xor(&msg, &msg, &shiftedCA)
		msgs.WriteWord(i, msg)
	}

	tapes.Advance(2 * n)
	msgs.Advance(n)

	var sboxMask bitvec.Vector
	ops.Xor(&sboxMask, &c.MaskA, &c.MaskB)
	ops.Xor(&sboxMask, &sboxMask, &c.MaskC)

	for i := 0; i < tape.NumParties; i++ {
		if i == msgs.Unopened {
			continue
		}
		pi := parts[i]

		var bc, ca, ab, tBC, tCA, tAB bitvec.Vector
		ops.And(&bc, &pi.b, &pi.c)
		ops.Xor(&tBC, &bc, &sBC)
		ops.Xor(&tBC, &tBC, &pi.a)

		ops.And(&ca, &pi.c, &pi.a)
		ops.Xor(&tCA, &ca, &sCA)
		ops.Xor(&tCA, &tCA, &pi.a)
		ops.Xor(&tCA, &tCA, &pi.b)

		ops.And(&ab, &pi.a, &pi.b)
		ops.Xor(&tAB, &ab, &sAB)
		ops.Xor(&tAB, &tAB, &pi.a)
		ops.Xor(&tAB, &tAB, &pi.b)
		ops.Xor(&tAB, &tAB, &pi.c)

		var shiftedCA, shiftedBC, out bitvec.Vector
		ops.ShiftRight(&shiftedCA, &tCA, 1)
		ops.ShiftRight(&shiftedBC, &tBC, 2)
		ops.Xor(&out, &tAB, &shiftedCA)
		ops.Xor(&out, &out, &shiftedBC)

		// The S-box output replaces the triple bits; bits outside the
		// 3*M triples keep their old value.
		var triples, rest, newState bitvec.Vector
		ops.And(&triples, &states[i], &sboxMask)
		ops.Xor(&rest, &states[i], &triples)
		ops.Xor(&newState, &rest, &out)
		states[i] = newState
	}
}
