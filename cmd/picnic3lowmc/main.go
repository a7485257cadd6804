//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Command picnic3lowmc is a manual-exercise driver for the LowMC/MPC
// core: it runs plain LowMC encryption and an end-to-end MPC
// sign/verify-shaped round-trip for each supported parameter set, so
// a human can watch the library work without pulling in the
// (out-of-scope) Fiat-Shamir transcript and signature encoding.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"

	"github.com/markkurossi/picnic3lowmc"
	"github.com/markkurossi/picnic3lowmc/internal/bitvec"
	"github.com/markkurossi/picnic3lowmc/internal/tape"
)

func main() {
	flag.Parse()

	for _, id := range []picnic3.ParameterSet{picnic3.Picnic3_L1, picnic3.Picnic3_L3, picnic3.Picnic3_L5} {
		d, err := picnic3.Get(id)
		if err != nil {
			log.Fatalf("picnic3.Get(%s): %v", id, err)
		}

		key := randVector(d.Params.K)
		plaintext := randVector(d.Params.N)

		ciphertext := d.LowmcPlain(key, plaintext)
		fmt.Printf("%s: lowmc backend=%s key=%x plaintext=%x ciphertext=%x\n",
			d.ID, d.Ops.Name, bitvec.ToBytes(&key), bitvec.ToBytes(&plaintext), bitvec.ToBytes(&ciphertext))

		if err := mpcRoundTrip(d, key, plaintext, ciphertext); err != nil {
			log.Fatalf("%s: MPC round-trip: %v", d.ID, err)
		}
		fmt.Printf("%s: MPC sign/verify round-trip ok (%d parties, %d rounds demoed)\n",
			d.ID, d.NumMPCParties, d.Params.R)
	}
}

// mpcRoundTrip drives one signing pass and one verification pass
// through the MPC simulator using the degenerate single-signer
// sharing this repository's tests are built on (party 0 carries the
// real key, every other party carries an all-zero share and an
// all-zero tape): it checks that the signing XOR-sum reproduces the
// plain ciphertext, then hides a party and checks the verification
// XOR-sum still agrees. See internal/mpcsbox's tests for why this
// fixture is sound without a full KKW Aux-phase implementation.
func mpcRoundTrip(d *picnic3.Descriptor, key, plaintext, ciphertext bitvec.Vector) error {
	var keyShares [tape.NumParties]bitvec.Vector
	keyShares[0] = key
	for i := 1; i < tape.NumParties; i++ {
		keyShares[i] = bitvec.New(d.Params.K)
	}

	signTapes := tape.NewRandomTapeSet(d.Params.N, 2*d.Params.R)
	signMsgs := tape.NewMessageSet(d.Params.N, d.Params.R)
	signStates := d.LowmcSimulateOnline(&keyShares, plaintext, 0, signTapes, signMsgs)

	signSum := bitvec.New(d.Params.N)
	for i := 0; i < tape.NumParties; i++ {
		var next bitvec.Vector
		d.Ops.Xor(&next, &signSum, &signStates[i])
		signSum = next
	}
	if !bitvec.Equal(&signSum, &ciphertext) {
		return fmt.Errorf("signing XOR-sum does not match plain ciphertext")
	}

	const hidden = 1
	verifyKeyShares := keyShares
	verifyTapes := tape.NewRandomTapeSet(d.Params.N, 2*d.Params.R)
	verifyMsgs := *signMsgs
	verifyMsgs.Pos = 0
	verifyMsgs.SetUnopened(hidden)
	verifyStates := d.LowmcSimulateOnline(&verifyKeyShares, plaintext, 0, verifyTapes, &verifyMsgs)

	verifySum := bitvec.New(d.Params.N)
	for i := 0; i < tape.NumParties; i++ {
		if i == hidden {
			continue
		}
		var next bitvec.Vector
		d.Ops.Xor(&next, &verifySum, &verifyStates[i])
		verifySum = next
	}
	if !bitvec.Equal(&verifySum, &signSum) {
		return fmt.Errorf("verification XOR-sum does not match signing XOR-sum")
	}
	return nil
}

func randVector(width int) bitvec.Vector {
	buf := make([]byte, bitvec.ByteLen(width))
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("rand.Read: %v", err)
	}
	return bitvec.FromBytes(width, buf)
}
