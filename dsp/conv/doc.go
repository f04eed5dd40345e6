// Package conv provides direct and FFT-based convolution for long FIR
// kernels.
//
// [Direct] is the O(N*M) reference. [StreamingOverlapSave] keeps the
// overlap between calls so a long kernel can be applied block by block
// with the same result as one direct convolution of the concatenated
// input.
package conv
