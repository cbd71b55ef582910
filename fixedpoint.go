// fixedpoint.go - shared fixed-point primitives for the Voodoo pipeline

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine

License: GPLv3 or later
*/

/*
fixedpoint.go - shared fixed-point primitives used throughout the Voodoo
pixel pipeline: signed shifts that do not rely on implementation-defined
behaviour, saturating clamps, leading-zero count, and the combined
reciprocal+log2 table used for perspective division and mipmap LOD.
*/

package voodoo

import "math"

// Fixed-point format shifts, matching the Voodoo register layout.
const (
	shift12_4  = 4  // vertex coordinates
	shift12_12 = 12 // iterated colors
	shift14_18 = 18 // texture S/T
	shift20_12 = 12 // Z
	shift2_30  = 30 // W / reciprocal
)

// leadingZeros32 counts leading zero bits of a 32-bit value, returning 32
// for v == 0 (bits.LeadingZeros32 already does this; reimplemented here
// bit-by-bit to mirror the source's explicit shift-and-test loop so the
// reciprocal table index derivation below reads the same way the Voodoo
// documentation describes it).
func leadingZeros32(v uint32) int {
	if v == 0 {
		return 32
	}
	n := 0
	for v&0x80000000 == 0 {
		v <<= 1
		n++
	}
	return n
}

// leftShiftSigned shifts v left for n >= 0 and right (arithmetic) for n < 0.
// Using this instead of a raw `<<`/`>>` with a possibly-negative shift
// count keeps every signed shift in the pipeline explicit.
func leftShiftSigned(v int64, n int) int64 {
	if n >= 0 {
		return v << uint(n)
	}
	return v >> uint(-n)
}

// clampToI32 saturates a 64-bit value to the int32 range.
func clampToI32(v int64) int32 {
	if v > 0x7FFFFFFF {
		return 0x7FFFFFFF
	}
	if v < -0x80000000 {
		return -0x80000000
	}
	return int32(v)
}

// clampToU8 saturates a 32-bit value to [0, 255].
func clampToU8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// clampToU16 saturates a 32-bit value to [0, 65535].
func clampToU16(v int32) uint16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}

// reciplogTableSize is the number of entries in the shared reciprocal/log2 table.
const reciplogTableSize = 1024

// reciplogTable holds, per entry, the reciprocal of the represented
// fraction scaled by 2^29 (half the Q2.30 scale) and the negated log2 of
// that fraction in Q.8, indexed by the 10 bits following the implicit
// leading 1 of a normalized 32-bit mantissa (so the represented fraction
// ranges over [1.0, 2.0)). Built once at package init, mirroring the
// source's precomputed table.
var reciplogTable [reciplogTableSize]struct {
	recip int64
	log2  int32
}

func init() {
	for i := 0; i < reciplogTableSize; i++ {
		// mantissa/1024 ranges over [1.0, 2.0) as i ranges over the table.
		mantissa := reciplogTableSize + i
		frac := float64(mantissa) / float64(reciplogTableSize)
		recip := 1.0 / frac
		reciplogTable[i].recip = int64(recip * float64(int64(1)<<shift2_30) / 2)
		reciplogTable[i].log2 = int32(-math.Log2(frac) * 256.0)
	}
}

// fastReciplog computes 1/v in Q2.30 together with log2(|v|) in Q.8,
// matching the Voodoo TMU's combined reciprocal/log unit. If v == 0 it
// returns a saturated reciprocal and the sentinel log value 1000<<8.
// Error is bounded to within about 1 ULP of the output precision by
// linearly interpolating between the two table entries bracketing the
// mantissa, rather than snapping to the nearest one.
func fastReciplog(v int64) (recip int64, log2 int32) {
	if v == 0 {
		return 0x7FFFFFFF, 1000 << 8
	}

	neg := v < 0
	av := v
	if neg {
		av = -av
	}
	if av > 0xFFFFFFFF {
		av = 0xFFFFFFFF
	}
	u := uint32(av)
	if u == 0 {
		return 0x7FFFFFFF, 1000 << 8
	}

	lz := leadingZeros32(u)
	norm := u << uint(lz) // leading 1 now sits at bit 31

	// Top 10 bits following the implicit leading 1 select the table
	// entry; the next 8 bits are the fractional weight towards the next
	// entry, so adjacent mantissas interpolate instead of snapping.
	idx := int((norm >> 21) & 0x3FF)
	frac := int64((norm >> 13) & 0xFF)

	lo := reciplogTable[idx]
	hiIdx := idx + 1
	if hiIdx >= reciplogTableSize {
		hiIdx = reciplogTableSize - 1
	}
	hi := reciplogTable[hiIdx]

	recipLerp := lo.recip + (hi.recip-lo.recip)*frac/256
	log2Lerp := lo.log2 + int32((int64(hi.log2-lo.log2)*frac)/256)

	recip = leftShiftSigned(recipLerp, lz-30)
	log2 = int32(31-lz)<<8 - log2Lerp

	if neg {
		recip = -recip
	}
	return recip, log2
}
