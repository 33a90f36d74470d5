/*
Brickgen generates a brick assembly from a PCFG grammar file and writes it
out as LDraw text.

It reads in a grammar file, runs the leftmost-expansion generator until the
sentence is fully terminal (or the sentence length limit is exceeded), then
interprets the resulting placement-language lexemes and encodes the placed
elements as an LDraw model.

Usage:

	brickgen [flags] GRAMMAR_FILE

The flags are:

	-v, --version
		Give the current version of brickgen and then exit.

	-o, --output FILE
		Write the generated LDraw model to FILE instead of stdout.

	-s, --seed SEED
		Seed the random number generator with SEED for a reproducible run.
		Defaults to the current Unix time.

	-l, --max-length N
		The maximum sentence length the generator may reach before giving up.
		Defaults to 1000.

	-a, --all DIR
		Ignore GRAMMAR_FILE and instead run every ".grmr" file found in DIR,
		printing a one-line summary of each to stdout.
*/
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/dekarrin/brickgrammar/internal/generate"
	"github.com/dekarrin/brickgrammar/internal/grammar"
	"github.com/dekarrin/brickgrammar/internal/ldraw"
	"github.com/dekarrin/brickgrammar/internal/placement"
	"github.com/dekarrin/brickgrammar/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitGenError indicates an unsuccessful program execution due to a
	// problem during generation or interpretation.
	ExitGenError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue reading input or writing output.
	ExitInitError
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	outputFile  = pflag.StringP("output", "o", "", "Write the LDraw model to this file instead of stdout")
	seed        = pflag.Int64P("seed", "s", 0, "Seed the random number generator for a reproducible run (defaults to current time)")
	maxLength   = pflag.IntP("max-length", "l", 1000, "The maximum sentence length the generator may reach before giving up")
	allDir      = pflag.StringP("all", "a", "", "Run every .grmr file in this directory instead of a single GRAMMAR_FILE")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	if *allDir != "" {
		runAll(rng)
		return
	}

	if pflag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: a grammar file is required")
		returnCode = ExitInitError
		return
	}

	if err := runOne(pflag.Arg(0), rng); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGenError
		return
	}
}

func runAll(rng *rand.Rand) {
	stats, err := generate.BatchRun(*allDir, *maxLength, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	for _, stat := range stats {
		if stat.Err != nil {
			fmt.Printf("%s: ERROR: %s\n", stat.GrammarFile, stat.Err.Error())
			continue
		}
		fmt.Printf("%s: %d elements, %d voxels, %s\n", stat.GrammarFile, stat.ElementCount, stat.VoxelCount, stat.Duration)
	}
}

func runOne(path string, rng *rand.Rand) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading grammar file: %w", err)
	}

	g, err := grammar.Load(string(text))
	if err != nil {
		return fmt.Errorf("loading grammar: %w", err)
	}

	cache := placement.NewCache()
	sentence, err := generate.Generate(g, cache, *maxLength, rng)
	if err != nil {
		return fmt.Errorf("generating sentence: %w", err)
	}

	elements, _, _, err := cache.Parse(sentence.Lexemes())
	if err != nil {
		return fmt.Errorf("interpreting generated sentence: %w", err)
	}

	model := ldraw.Encode(elements)

	if *outputFile == "" {
		fmt.Print(model)
		return nil
	}

	if err := os.WriteFile(*outputFile, []byte(model), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
