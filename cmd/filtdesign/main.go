// Command filtdesign designs digital filters, evaluates their responses and
// applies them to WAV files.
//
// Usage:
//
//	filtdesign <command> [flags]
//
// Commands:
//
//	design    design a filter and print its coefficients
//	response  evaluate a design's frequency response or pole-zero set
//	compare   overlay the responses of several methods for one spec
//	apply     filter a WAV file
//
// Examples:
//
//	filtdesign design -band lowpass -pass 5000 -stop 8000 -atten 60 -method elliptic
//	filtdesign response -pass 5000 -stop 8000 -method kaiser -mode gd-samples -format csv
//	filtdesign compare -pass 5000 -stop 8000 -methods butterworth,elliptic,equiripple
//	filtdesign apply -in in.wav -out out.wav -pass 3000 -stop 4000 -method chebyshev2
//
// Defaults for -fs, -points and -log-level may be set with the
// FILTDESIGN_SAMPLE_RATE, FILTDESIGN_POINTS and FILTDESIGN_LOG_LEVEL
// environment variables or a .env file in the working directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

var errUsage = errors.New("usage")

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, env *cliEnv, args []string) error
}

var commands = []command{
	{"design", "design a filter and print its coefficients", runDesign},
	{"response", "evaluate a frequency response or pole-zero set", runResponse},
	{"compare", "overlay the responses of several methods", runCompare},
	{"apply", "filter a WAV file", runApply},
}

// cliEnv carries the process surroundings a command runs in.
type cliEnv struct {
	stdout   io.Writer
	stderr   io.Writer
	defaults envDefaults
}

func main() {
	_ = godotenv.Load()

	env := &cliEnv{stdout: os.Stdout, stderr: os.Stderr, defaults: loadEnvDefaults(os.Getenv)}

	if err := run(context.Background(), env, os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		}

		os.Exit(1)
	}
}

func run(ctx context.Context, env *cliEnv, args []string) error {
	if len(args) == 0 {
		printUsage(env.stderr)
		return errUsage
	}

	for _, c := range commands {
		if c.name == args[0] {
			return c.run(ctx, env, args[1:])
		}
	}

	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(env.stdout)
		return nil
	}

	_, _ = fmt.Fprintf(env.stderr, "unknown command %q\n\n", args[0])
	printUsage(env.stderr)

	return errUsage
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage: filtdesign <command> [flags]\n\n")
	_, _ = fmt.Fprintf(w, "Designs FIR and IIR filters, evaluates responses and filters WAV files.\n\n")
	_, _ = fmt.Fprintf(w, "Commands:\n")

	for _, c := range commands {
		_, _ = fmt.Fprintf(w, "  %-9s %s\n", c.name, c.usage)
	}

	_, _ = fmt.Fprintf(w, "\nRun 'filtdesign <command> -h' for the flags of a command.\n")
}
