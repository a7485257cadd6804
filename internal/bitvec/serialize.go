//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package bitvec

import "encoding/binary"

// ByteLen returns the number of bytes needed to hold width bits,
// MSB-first per byte (the wire/tape serialization of a Vector).
func ByteLen(width int) int {
	return (width + 7) / 8
}

// FromBytes decodes a width-bit Vector from data, which must hold at
// least ByteLen(width) bytes, MSB-first within each byte. Bits beyond
// width (including any within the last meaningful byte, and the
// padding up to the word boundary) are set to zero regardless of what
// data contains there, preserving the always-zero-padding invariant.
func FromBytes(width int, data []byte) Vector {
	v := New(width)
	nbytes := ByteLen(width)
	if len(data) < nbytes {
		panic("bitvec: FromBytes: buffer underrun")
	}
	var buf [maxWords * 8]byte
	copy(buf[:], data[:nbytes])
	for i := 0; i < v.limbs(); i++ {
		v.Words[i] = binary.BigEndian.Uint64(buf[i*8 : i*8+8])
	}
	v.clearPad()
	return v
}

// ToBytes encodes v into ByteLen(v.Width) bytes, MSB-first within
// each byte, matching FromBytes.
func ToBytes(v *Vector) []byte {
	nbytes := ByteLen(v.Width)
	var buf [maxWords * 8]byte
	for i := 0; i < v.limbs(); i++ {
		binary.BigEndian.PutUint64(buf[i*8:i*8+8], v.Words[i])
	}
	out := make([]byte, nbytes)
	copy(out, buf[:nbytes])
	return out
}

// Xor, And, ShiftLeft and ShiftRight are Scalar64-backed convenience
// wrappers for call sites that build or compare vectors outside the
// dispatch-sensitive MPC hot loop (constant-table generation, tests).
func Xor(dst, a, b *Vector)            { Scalar64.Xor(dst, a, b) }
func And(dst, a, b *Vector)            { Scalar64.And(dst, a, b) }
func ShiftLeft(dst, a *Vector, k int)  { Scalar64.ShiftLeft(dst, a, k) }
func ShiftRight(dst, a *Vector, k int) { Scalar64.ShiftRight(dst, a, k) }
