/*
Brickrepl runs an interactive stepper over the placement language.

Each line of input is treated as whitespace-separated placement-language
lexemes and appended to a running program; brickrepl re-interprets the
whole program through a memoized cache after every line and reports the
element and stack state that results. This lets a grammar author step
through the operations a production would emit one line at a time before
committing it to a ".grmr" file.

Usage:

	brickrepl [flags]

The flags are:

	-v, --version
		Give the current version of brickrepl and then exit.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input even if launched in a tty
		with stdin and stdout.

Once a session has started, type placement-language lexemes separated by
spaces and press enter to execute them against the running program. Type
"DUMP" to print the LDraw encoding of the elements placed so far, or "QUIT"
to exit.
*/
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/brickgrammar/internal/ldraw"
	"github.com/dekarrin/brickgrammar/internal/placement"
	"github.com/dekarrin/brickgrammar/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitReplError indicates an unsuccessful program execution due to a
	// problem during the interactive session.
	ExitReplError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the reader.
	ExitInitError
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	forceDirect = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
)

// lineReader reads one line of lexeme text at a time, blocking until a
// non-blank line arrives and returning io.EOF once input is exhausted.
type lineReader interface {
	ReadLine() (string, error)
	Close() error
}

// directLineReader reads lexeme lines straight off an io.Reader with no
// line editing; used when stdin isn't a TTY (piped input, scripted runs).
type directLineReader struct {
	r *bufio.Reader
}

func newDirectLineReader(r io.Reader) *directLineReader {
	return &directLineReader{r: bufio.NewReader(r)}
}

func (dr *directLineReader) ReadLine() (string, error) {
	for {
		line, err := dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

func (dr *directLineReader) Close() error {
	return nil
}

// readlineLineReader reads lexeme lines from stdin via GNU-readline-alike
// editing and history, for interactive TTY sessions.
type readlineLineReader struct {
	rl *readline.Instance
}

func newReadlineLineReader() (*readlineLineReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: "brick> "})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &readlineLineReader{rl: rl}, nil
}

func (ir *readlineLineReader) ReadLine() (string, error) {
	for {
		line, err := ir.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

func (ir *readlineLineReader) Close() error {
	return ir.rl.Close()
}

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

	reader, err := newReader(*forceDirect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer reader.Close()

	if err := runLoop(reader); err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitReplError
		return
	}
}

func newReader(direct bool) (lineReader, error) {
	if direct || !isTTY(os.Stdin) {
		return newDirectLineReader(os.Stdin), nil
	}
	return newReadlineLineReader()
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func runLoop(reader lineReader) error {
	cache := placement.NewCache()
	var program []string

	for {
		line, err := reader.ReadLine()
		if err != nil {
			return err
		}

		switch strings.ToUpper(line) {
		case "QUIT", "EXIT":
			return nil
		case "DUMP":
			elements, _, _, err := cache.Parse(program)
			if err != nil {
				fmt.Printf("current program does not interpret cleanly: %s\n", err.Error())
				continue
			}
			fmt.Print(ldraw.Encode(elements))
			continue
		}

		lexemes := strings.Fields(line)
		candidate := append(append([]string{}, program...), lexemes...)

		elements, img, stack, err := cache.Parse(candidate)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			continue
		}

		program = candidate
		fmt.Printf("stack depth %d, top %+v\n", len(stack), stack.Top())
		fmt.Printf("%d element(s) placed, %d voxel(s) filled\n", len(elements), img.Len())
	}
}
