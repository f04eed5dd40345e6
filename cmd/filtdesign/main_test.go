package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/iir"
	"github.com/cwbudde/algo-filterdesign/dsp/spectrum"
	"github.com/cwbudde/algo-filterdesign/internal/testutil"
)

func testEnv() (*cliEnv, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer

	env := &cliEnv{
		stdout:   &stdout,
		stderr:   &stderr,
		defaults: loadEnvDefaults(func(string) string { return "" }),
	}

	return env, &stdout, &stderr
}

var lowpassArgs = []string{"-pass", "5000", "-stop", "8000", "-ripple", "0.5", "-atten", "60", "-fs", "48000"}

func args(cmd string, extra ...string) []string {
	return append(append([]string{cmd}, lowpassArgs...), extra...)
}

func TestResolveLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		_, err := ResolveLogLevel(level)
		assert.NoError(t, err, level)
	}

	_, err := ResolveLogLevel("verbose")
	assert.Error(t, err)
}

func TestLoadEnvDefaults(t *testing.T) {
	env := map[string]string{
		envSampleRate: "44100",
		envPoints:     "64",
		envLogLevel:   "DEBUG",
	}

	d := loadEnvDefaults(func(k string) string { return env[k] })
	assert.InDelta(t, 44100, d.SampleRate, 0)
	assert.Equal(t, 64, d.Points)
	assert.Equal(t, "debug", d.LogLevel)

	env = map[string]string{envSampleRate: "-1", envPoints: "x", envLogLevel: "loud"}
	d = loadEnvDefaults(func(k string) string { return env[k] })
	assert.Equal(t, envDefaults{SampleRate: 48000, Points: 512, LogLevel: "warn"}, d)
}

func TestParseEdges(t *testing.T) {
	got, err := parseEdges(" 6000, 14000 ")
	require.NoError(t, err)
	assert.Equal(t, []float64{6000, 14000}, got)

	got, err = parseEdges("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseEdges("6k")
	assert.Error(t, err)
}

func TestRun_Usage(t *testing.T) {
	env, _, stderr := testEnv()

	require.ErrorIs(t, run(context.Background(), env, nil), errUsage)
	assert.Contains(t, stderr.String(), "Commands:")

	stderr.Reset()
	require.ErrorIs(t, run(context.Background(), env, []string{"frobnicate"}), errUsage)
	assert.Contains(t, stderr.String(), `unknown command "frobnicate"`)

	env, stdout, _ := testEnv()
	require.NoError(t, run(context.Background(), env, []string{"help"}))
	assert.Contains(t, stdout.String(), "apply")
}

func TestDesign_Table(t *testing.T) {
	env, stdout, _ := testEnv()

	require.NoError(t, run(context.Background(), env, args("design", "-method", "elliptic")))

	out := stdout.String()
	assert.Contains(t, out, "elliptic")
	assert.Contains(t, out, "Section")
	assert.Contains(t, out, "true")
}

func TestDesign_FlatFIR(t *testing.T) {
	env, stdout, _ := testEnv()

	require.NoError(t, run(context.Background(), env, args("design", "-method", "kaiser", "-format", "flat")))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	fields := strings.Fields(lines[len(lines)-1])
	require.NotEmpty(t, fields)
	assert.Equal(t, "1", fields[0])
}

func TestDesign_BinaryRoundTrip(t *testing.T) {
	env, _, _ := testEnv()
	path := filepath.Join(t.TempDir(), "coeffs.bin")

	require.NoError(t, run(context.Background(), env,
		args("design", "-method", "chebyshev1", "-format", "binary", "-out", path)))

	rep, err := loadCoefficients(path)
	require.NoError(t, err)

	spec, err := (&specFlags{band: "lowpass", pass: "5000", stop: "8000", ripple: 0.5, atten: 60, fs: 48000}).spec()
	require.NoError(t, err)

	d, err := iir.Design(spec, iir.Chebyshev1)
	require.NoError(t, err)

	c, ok := rep.(biquad.Cascade)
	require.True(t, ok)
	assert.Equal(t, d.Sections, c)

	env, stdout, _ := testEnv()
	require.NoError(t, run(context.Background(), env,
		[]string{"response", "-coeffs", path, "-fs", "48000", "-format", "csv", "-points", "8"}))

	rows, err := csv.NewReader(stdout).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 9)
}

func TestDesign_BinaryNeedsOut(t *testing.T) {
	env, _, _ := testEnv()
	assert.Error(t, run(context.Background(), env, args("design", "-format", "binary")))
}

func TestDesign_UnknownFormatLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coeffs.txt")

	env, stdout, _ := testEnv()
	err := run(context.Background(), env, args("design", "-format", "json", "-out", path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
	assert.Empty(t, stdout.String())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "stat: %v", statErr)
}

func TestDesign_TableToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coeffs.txt")

	env, _, _ := testEnv()
	require.NoError(t, run(context.Background(), env, args("design", "-method", "elliptic", "-out", path)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Section")
}

func TestDesign_InvalidMethod(t *testing.T) {
	env, _, _ := testEnv()

	err := run(context.Background(), env, args("design", "-method", "bessel"))
	require.ErrorIs(t, err, design.ErrInvalidSpec)

	err = run(context.Background(), env, []string{"design", "-pass", "9000", "-stop", "8000"})
	require.ErrorIs(t, err, design.ErrInvalidSpec)
}

func TestResponse_CSV(t *testing.T) {
	env, stdout, _ := testEnv()

	require.NoError(t, run(context.Background(), env,
		args("response", "-method", "butterworth", "-format", "csv", "-points", "16", "-mode", "magnitude-db")))

	rows, err := csv.NewReader(stdout).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 17)
	assert.Equal(t, "freq_hz", rows[0][0])
	assert.Equal(t, "24000", rows[16][0])
}

func TestResponse_PoleZero(t *testing.T) {
	env, stdout, _ := testEnv()

	require.NoError(t, run(context.Background(), env, args("response", "-method", "elliptic", "-pz")))

	out := stdout.String()
	assert.Contains(t, out, "pole")
	assert.Contains(t, out, "zero")
	assert.Contains(t, out, "gain")
}

func TestCompare_Table(t *testing.T) {
	env, stdout, _ := testEnv()

	require.NoError(t, run(context.Background(), env, args("compare", "-points", "8")))

	out := stdout.String()
	for _, f := range iir.Families {
		assert.Contains(t, out, f.String())
	}
}

func TestCompare_MixedCSV(t *testing.T) {
	env, stdout, _ := testEnv()

	require.NoError(t, run(context.Background(), env,
		args("compare", "-methods", "kaiser, equiripple,elliptic", "-format", "csv", "-points", "4")))

	rows, err := csv.NewReader(stdout).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Len(t, rows[0], 4)
}

func TestApply_FiltersStereoWAV(t *testing.T) {
	const fs = 48000

	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	low := testutil.Sine(1000, fs, 0.4, 9600)
	high := testutil.Sine(12000, fs, 0.4, 9600)

	mix := make([]float64, len(low))
	for i := range mix {
		mix[i] = low[i] + high[i]
	}

	require.NoError(t, writeWAV(in, &pcmAudio{sampleRate: fs, bitDepth: 16, channels: [][]float64{mix, low}}))

	env, stdout, stderr := testEnv()
	require.NoError(t, run(context.Background(), env,
		[]string{"apply", "-in", in, "-out", out, "-pass", "5000", "-stop", "8000", "-ripple", "0.5", "-atten", "60", "-block", "256",
			"-verify", "1000,12000"}))

	assert.Contains(t, stdout.String(), "tone 1000 Hz: measured")
	assert.Contains(t, stdout.String(), "tone 12000 Hz: measured")
	assert.NotContains(t, stderr.String(), "warning: tone")

	got, err := readWAV(out)
	require.NoError(t, err)
	assert.Equal(t, fs, got.sampleRate)
	assert.Equal(t, 16, got.bitDepth)
	require.Len(t, got.channels, 2)
	require.Len(t, got.channels[0], len(mix))

	tail := len(mix) / 2

	g, err := spectrum.ToneGainDB(high[tail:], got.channels[0][tail:], 12000, fs)
	require.NoError(t, err)
	assert.Less(t, g, -50.0)

	g, err = spectrum.ToneGainDB(low[tail:], got.channels[1][tail:], 1000, fs)
	require.NoError(t, err)
	assert.InDelta(t, 0, g, 0.6)
}

func TestApply_RequiresPaths(t *testing.T) {
	env, _, stderr := testEnv()

	require.ErrorIs(t, run(context.Background(), env, []string{"apply", "-in", "x.wav"}), errUsage)
	assert.Contains(t, stderr.String(), "-in and -out")
}

func TestApply_VerifyRejectsBadTone(t *testing.T) {
	env, _, _ := testEnv()

	err := run(context.Background(), env, []string{"apply", "-in", "a.wav", "-out", "b.wav", "-verify", "1k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-verify")
}

func TestReadWAV_Invalid(t *testing.T) {
	_, err := readWAV(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}
