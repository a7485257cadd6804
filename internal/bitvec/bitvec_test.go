//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package bitvec

import (
	"crypto/rand"
	"testing"
)

var widths = []int{129, 192, 255}

func randVector(width int) Vector {
	buf := make([]byte, ByteLen(width))
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return FromBytes(width, buf)
}

func TestRoundTrip(t *testing.T) {
	for _, w := range widths {
		v := randVector(w)
		got := FromBytes(w, ToBytes(&v))
		if !Equal(&v, &got) {
			t.Fatalf("width %d: round trip mismatch: %+v != %+v", w, v, got)
		}
	}
}

func TestPaddingAlwaysZero(t *testing.T) {
	for _, w := range widths {
		buf := make([]byte, ByteLen(w))
		for i := range buf {
			buf[i] = 0xff
		}
		v := FromBytes(w, buf)
		n := v.limbs()
		rem := w % 64
		if rem == 0 {
			continue
		}
		mask := ^uint64(0) >> uint(rem)
		if v.Words[n-1]&mask != 0 {
			t.Fatalf("width %d: padding bits not zero: %064b", w, v.Words[n-1])
		}
	}
}

var backends = []Ops{Scalar64, Simd128, Simd256}

func TestBackendsAgreeOnXorAnd(t *testing.T) {
	for _, w := range widths {
		a := randVector(w)
		b := randVector(w)
		var want Vector
		Scalar64.Xor(&want, &a, &b)
		for _, ops := range backends {
			var got Vector
			ops.Xor(&got, &a, &b)
			if !Equal(&want, &got) {
				t.Fatalf("width %d: %s.Xor mismatch", w, ops.Name)
			}
		}
		Scalar64.And(&want, &a, &b)
		for _, ops := range backends {
			var got Vector
			ops.And(&got, &a, &b)
			if !Equal(&want, &got) {
				t.Fatalf("width %d: %s.And mismatch", w, ops.Name)
			}
		}
	}
}

func TestBackendsAgreeOnShifts(t *testing.T) {
	for _, w := range widths {
		a := randVector(w)
		for _, k := range []int{1, 2} {
			var wantL, wantR Vector
			Scalar64.ShiftLeft(&wantL, &a, k)
			Scalar64.ShiftRight(&wantR, &a, k)
			for _, ops := range backends {
				var gotL, gotR Vector
				ops.ShiftLeft(&gotL, &a, k)
				ops.ShiftRight(&gotR, &a, k)
				if !Equal(&wantL, &gotL) {
					t.Fatalf("width %d k %d: %s.ShiftLeft mismatch", w, k, ops.Name)
				}
				if !Equal(&wantR, &gotR) {
					t.Fatalf("width %d k %d: %s.ShiftRight mismatch", w, k, ops.Name)
				}
			}
		}
	}
}

func TestShiftLeftThenRightDiscardsLowBits(t *testing.T) {
	// Shifting left by k then right by k must clear exactly the k
	// lowest-index bits (the ones ShiftLeft pushes out past index 0)
	// and leave the remainder untouched.
	for _, w := range widths {
		a := randVector(w)
		for _, k := range []int{1, 2} {
			var l, back Vector
			Scalar64.ShiftLeft(&l, &a, k)
			Scalar64.ShiftRight(&back, &l, k)

			var mask Vector
			mask.Width = w
			n := mask.limbs()
			for i := 0; i < n; i++ {
				mask.Words[i] = ^uint64(0)
			}
			// Clear the k lowest-index bits of the logical vector (the
			// most significant bits of Words[0]) before comparing.
			mask.Words[0] &= ^uint64(0) >> uint(k)

			var expected Vector
			Scalar64.And(&expected, &a, &mask)
			if !Equal(&expected, &back) {
				t.Fatalf("width %d k %d: shift-left-then-right mismatch", w, k)
			}
		}
	}
}

func TestIsZero(t *testing.T) {
	var z Vector
	z.Width = 192
	if !z.IsZero() {
		t.Fatalf("zero-value Vector must be zero")
	}
	v := randVector(192)
	if v.IsZero() {
		t.Fatalf("random vector unexpectedly zero")
	}
}
