//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package tape

import (
	"crypto/rand"
	"testing"

	"github.com/markkurossi/picnic3lowmc/internal/bitvec"
)

func randWord(n int) bitvec.Vector {
	buf := make([]byte, bitvec.ByteLen(n))
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return bitvec.FromBytes(n, buf)
}

func TestWriteReadWordAtEveryBitOffset(t *testing.T) {
	const n = 129
	buf := make([]byte, bitvec.ByteLen(n*3)+8)
	for pos := 0; pos < 64; pos++ {
		for i := range buf {
			buf[i] = 0 // fresh surrounding bits each time
		}
		want := randWord(n)
		writeWordAt(buf, pos, want)
		got := readWordAt(buf, n, pos)
		if !bitvec.Equal(&want, &got) {
			t.Fatalf("pos %d: round trip mismatch", pos)
		}
	}
}

func TestWriteWordPreservesSurroundingBits(t *testing.T) {
	const n = 129
	buf := make([]byte, bitvec.ByteLen(n*3)+8)
	for i := range buf {
		buf[i] = 0xff
	}
	zero := bitvec.New(n)
	writeWordAt(buf, 3, zero)
	got := readWordAt(buf, n, 3)
	if !got.IsZero() {
		t.Fatalf("written zero word did not read back as zero")
	}
	if buf[0]&0xe0 != 0xe0 {
		t.Fatalf("bits before the written field were clobbered: %08b", buf[0])
	}
}

func TestRandomTapeSetAdvance(t *testing.T) {
	const n = 129
	ts := NewRandomTapeSet(n, 8) // room for 4 rounds of 2 words
	for party := 0; party < NumParties; party++ {
		if _, err := rand.Read(ts.Buf[party]); err != nil {
			t.Fatalf("rand.Read: %v", err)
		}
	}
	for round := 0; round < 4; round++ {
		for party := 0; party < NumParties; party++ {
			_ = ts.ReadWord(party, n, 0)
			_ = ts.ReadWord(party, n, n)
		}
		ts.Advance(2 * n)
	}
	if ts.Pos != 4*2*n {
		t.Fatalf("cursor advanced to %d, want %d", ts.Pos, 4*2*n)
	}
}

func TestMessageSetUnopenedDefaultsToNone(t *testing.T) {
	ms := NewMessageSet(129, 4)
	if ms.Unopened != NoneUnopened {
		t.Fatalf("fresh MessageSet should default to NoneUnopened")
	}
	ms.SetUnopened(7)
	if ms.Unopened != 7 {
		t.Fatalf("SetUnopened(7) did not take effect")
	}
}
