package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavPCMFormat is the WAVE_FORMAT_PCM tag.
const wavPCMFormat = 1

// pcmAudio holds deinterleaved samples scaled to [-1, 1).
type pcmAudio struct {
	sampleRate int
	bitDepth   int
	channels   [][]float64
}

func fullScale(bitDepth int) float64 {
	return math.Ldexp(1, bitDepth-1)
}

func readWAV(path string) (*pcmAudio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	bitDepth := int(decoder.BitDepth)
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	numChans := buf.Format.NumChannels
	if numChans < 1 {
		return nil, fmt.Errorf("invalid channel count %d", numChans)
	}

	frames := len(buf.Data) / numChans
	scale := 1 / fullScale(bitDepth)

	channels := make([][]float64, numChans)
	for ch := range channels {
		channels[ch] = make([]float64, frames)
		for i := range frames {
			channels[ch][i] = float64(buf.Data[i*numChans+ch]) * scale
		}
	}

	return &pcmAudio{sampleRate: buf.Format.SampleRate, bitDepth: bitDepth, channels: channels}, nil
}

func writeWAV(path string, a *pcmAudio) error {
	if len(a.channels) == 0 {
		return fmt.Errorf("no channels to write")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	numChans := len(a.channels)
	frames := len(a.channels[0])
	full := fullScale(a.bitDepth)
	hi, lo := full-1, -full

	data := make([]int, frames*numChans)
	for ch, samples := range a.channels {
		for i, v := range samples {
			data[i*numChans+ch] = int(math.Max(lo, math.Min(hi, math.Round(v*full))))
		}
	}

	encoder := wav.NewEncoder(f, a.sampleRate, a.bitDepth, numChans, wavPCMFormat)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChans, SampleRate: a.sampleRate},
		Data:           data,
		SourceBitDepth: a.bitDepth,
	}

	if err := encoder.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write WAV data: %w", err)
	}

	if err := encoder.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}

	return f.Close()
}
