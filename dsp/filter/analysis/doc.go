// Package analysis evaluates designed filters: frequency response curves
// (magnitude, phase and group delay) and pole-zero sets.
//
// Every function is pure. Inputs are never mutated and results never share
// memory with them, so curves and pole-zero sets can be handed to a
// renderer or kept for later comparison.
package analysis
