// Package codec serializes filter coefficients as a flat, tagged float64
// sequence for exchange with other tools:
//
//	rational: [1, nb, b0 .. b(nb-1), na, a0 .. a(na-1)]
//	cascade:  [2, nsec, b0 b1 b2 a0 a1 a2, ...]
//
// The sequence can be written as little-endian float64 values with
// WriteBinary and read back with ReadBinary.
package codec
