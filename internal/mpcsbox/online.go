//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package mpcsbox

import (
	"github.com/markkurossi/picnic3lowmc/internal/bitvec"
	"github.com/markkurossi/picnic3lowmc/internal/lowmc"
	"github.com/markkurossi/picnic3lowmc/internal/tape"
)

// SimulateOnline runs the full r-round MPC encryption (spec §4.4):
// party i's state share is seeded from KeyMatrix0 times its own key
// share, with plaintext (public, so folded into exactly one party's
// share by convention) XORed into plaintextParty, then each round
// runs Sbox followed by the linear layer, round key and round
// constant exactly as in the plain lowmc.Encrypt. Like the plaintext,
// the round constant is a public (non-secret-shared) value, so it too
// is only XORed into plaintextParty's share each round — every other
// party's share only ever receives the linear, per-share KeyMatrix
// product, which distributes correctly over an additive secret
// sharing. The hidden party (msgs.Unopened) never gets a tracked
// share; its slot in the returned array is left at its zero value.
//
// The caller is responsible for aggregating the returned per-party
// shares (XOR-summing the tracked ones, or XOR-summing the tracked
// ones with the hidden party's contribution derived from its
// committed messages) — this driver reports only that no structural
// tape/message underrun occurred, matching spec §4.4's failure-mode
// note that a share mismatch is not a local error here.
func SimulateOnline(p lowmc.Parameters, c *lowmc.Constants, ops bitvec.Ops, keyShares *[tape.NumParties]bitvec.Vector, plaintext bitvec.Vector, plaintextParty int, tapes *tape.RandomTapeSet, msgs *tape.MessageSet) [tape.NumParties]bitvec.Vector {
	var states [tape.NumParties]bitvec.Vector

	for i := 0; i < tape.NumParties; i++ {
		if i == msgs.Unopened {
			continue
		}
		rk := c.KeyMatrices[0].Apply(&keyShares[i])
		if i == plaintextParty {
			var withPlaintext bitvec.Vector
			ops.Xor(&withPlaintext, &rk, &plaintext)
			states[i] = withPlaintext
		} else {
			states[i] = rk
		}
	}

	for r := 0; r < p.R; r++ {
		Sbox(p, c, ops, &states, tapes, msgs)

		for i := 0; i < tape.NumParties; i++ {
			if i == msgs.Unopened {
				continue
			}
			states[i] = c.LinearLayer[r].Apply(&states[i])

			rk := c.KeyMatrices[r+1].Apply(&keyShares[i])
			var withKey bitvec.Vector
			ops.Xor(&withKey, &states[i], &rk)
			if i == plaintextParty {
				ops.Xor(&states[i], &withKey, &c.RoundConstants[r])
			} else {
				states[i] = withKey
			}
		}
	}

	return states
}
