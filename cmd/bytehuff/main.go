// Command bytehuff compresses or decompresses a file with bytehuff.
//
// Usage:
//
//     bytehuff -e [-v] [-o output] input
//     bytehuff -d [-v] [-o output] input
//
// An input or output of "-" means standard input or standard output.  The
// output defaults to standard output.
//
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chronos-tachyon/bytehuff"
	"github.com/chronos-tachyon/bytehuff/internal/logger"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

type config struct {
	encode  bool
	decode  bool
	verbose bool
	input   string
	output  string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "bytehuff: %v\n", err)
		return exitUsage
	}

	log := logger.New(stderr, "bytehuff: ", cfg.verbose)

	if cfg.encode {
		err = runEncode(cfg, stdin, stdout, log)
	} else {
		err = runDecode(cfg, stdin, stdout, log)
	}
	if err != nil {
		log.Errorf("%v", err)
		return exitFail
	}
	return exitOK
}

// parseArgs accepts flags before, after, or between positional arguments,
// so that both "bytehuff -e in -o out" and "bytehuff -e -o out in" work.
func parseArgs(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("bytehuff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.encode, "e", false, "encode (compress) the input")
	fs.BoolVar(&cfg.decode, "d", false, "decode (decompress) the input")
	fs.BoolVar(&cfg.verbose, "v", false, "log frequency and code tables")
	fs.StringVar(&cfg.output, "o", "-", "output file, or - for standard output")
	fs.StringVar(&cfg.input, "i", "", "input file, or - for standard input")

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return cfg, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	switch {
	case cfg.input == "" && len(positional) == 1:
		cfg.input = positional[0]
	case len(positional) != 0:
		return cfg, fmt.Errorf("unexpected arguments: %s", strings.Join(positional, " "))
	}

	if cfg.encode == cfg.decode {
		return cfg, errors.New("exactly one of -e or -d is required")
	}
	if cfg.input == "" {
		return cfg, errors.New("no input given")
	}
	return cfg, nil
}

func runEncode(cfg config, stdin io.Reader, stdout io.Writer, log logger.Logger) error {
	data, err := readInput(cfg.input, stdin)
	if err != nil {
		return err
	}

	c, err := bytehuff.Encode(data)
	if err != nil {
		return err
	}
	log.Infof("encoded %d bytes: %d distinct symbols, %d payload bits", len(data), c.Frequencies.Len(), c.BitLength)

	if cfg.verbose {
		dumpTables(c.Frequencies, log)
	}

	return writeOutput(cfg.output, stdout, func(w io.Writer) (int64, error) {
		return c.WriteTo(w)
	}, log)
}

func runDecode(cfg config, stdin io.Reader, stdout io.Writer, log logger.Logger) error {
	var src io.Reader = stdin
	if cfg.input != "-" {
		f, err := os.Open(cfg.input)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	rr := bytehuff.NewReader(src)
	return writeOutput(cfg.output, stdout, func(w io.Writer) (int64, error) {
		return io.Copy(w, rr)
	}, log)
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

// writeOutput runs fn against a buffered writer for the named output.  A
// file output is removed again if fn fails, so that no partial output is
// left behind.
func writeOutput(name string, stdout io.Writer, fn func(io.Writer) (int64, error), log logger.Logger) error {
	var dst io.Writer = stdout
	var f *os.File
	if name != "-" {
		var err error
		f, err = os.Create(name)
		if err != nil {
			return err
		}
		dst = f
	}

	bw := bufio.NewWriter(dst)
	n, err := fn(bw)
	if err == nil {
		err = bw.Flush()
	}
	if f != nil {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(name)
		}
	}
	if err != nil {
		return err
	}
	log.Infof("wrote %d bytes", n)
	return nil
}

func dumpTables(ft bytehuff.FrequencyTable, log logger.Logger) {
	var sb strings.Builder
	_, _ = ft.Dump(&sb)
	if t, err := bytehuff.BuildTree(ft); err == nil {
		_, _ = bytehuff.NewCodeTable(t).Dump(&sb)
	}
	log.Debugf("tables:\n%s", sb.String())
}
