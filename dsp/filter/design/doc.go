// Package design holds the data model shared by the FIR and IIR designers:
// the amplitude-response [Spec], the rational [TransferFunction], the
// digital [ZPK] factorization, the [Design] result and the error and
// warning taxonomy.
//
// The designers themselves live in design/linphase (windowed and
// equiripple FIR) and design/iir (Butterworth, Chebyshev I/II, elliptic).
package design
