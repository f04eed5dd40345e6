// Package spectrum converts sampled complex frequency responses into the
// real-valued views used for plotting and measurement: magnitude, level in
// dB, wrapped and unwrapped phase. It also provides a Goertzel detector
// for measuring the level of a single tone in filtered signals.
package spectrum
