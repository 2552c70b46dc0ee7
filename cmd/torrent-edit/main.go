// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/blinklabs-io/gotorrent/cmd/common"
	"github.com/blinklabs-io/gotorrent/internal/config"
	"github.com/blinklabs-io/gotorrent/metainfo"
	"github.com/spf13/pflag"
)

const programName = "torrent-edit"

var errNotCanonical = errors.New("input is not canonically encoded")

type app struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, stderr io.Writer) error {
	f := common.NewGlobalFlags(programName)
	f.Flagset.SetOutput(stderr)
	f.Flagset.Usage = func() {
		printUsage(stderr, f.Flagset)
	}
	if err := f.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	cfg, err := f.Config()
	if err != nil {
		return err
	}
	logger, err := common.NewLogger(stderr, cfg)
	if err != nil {
		return err
	}
	a := &app{
		cfg:    cfg,
		logger: logger,
		stdout: stdout,
		stderr: stderr,
	}
	if f.Flagset.NArg() == 0 {
		printUsage(stderr, f.Flagset)
		return errors.New("you must specify a subcommand (show, dump, hash or set)")
	}
	cmdArgs := f.Flagset.Args()[1:]
	switch f.Flagset.Arg(0) {
	case "show":
		return a.show(cmdArgs)
	case "dump":
		return a.dump(cmdArgs)
	case "hash":
		return a.hash(cmdArgs)
	case "set":
		return a.set(cmdArgs)
	default:
		return fmt.Errorf("unknown subcommand: %s", f.Flagset.Arg(0))
	}
}

func printUsage(w io.Writer, flagset *pflag.FlagSet) {
	fmt.Fprintf(w, `Usage:
  %[1]s [global flags] show [--jobs N] FILE...
  %[1]s [global flags] dump [--format text|cbor] [--hex] FILE
  %[1]s [global flags] hash [--jobs N] FILE...
  %[1]s [global flags] set [flags] FILE

Global flags:
`, programName)
	fmt.Fprint(w, flagset.FlagUsages())
}

// newCommandFlags returns the flag set of a subcommand. The usage text shows
// argsUsage after the subcommand flags.
func (a *app) newCommandFlags(name string, argsUsage string) *pflag.FlagSet {
	flagset := pflag.NewFlagSet(programName+" "+name, pflag.ContinueOnError)
	flagset.SetOutput(a.stderr)
	flagset.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: %s [flags] %s\n\nFlags:\n", flagset.Name(), argsUsage)
		fmt.Fprint(a.stderr, flagset.FlagUsages())
	}
	return flagset
}

func addJobsFlag(flagset *pflag.FlagSet) *int {
	return flagset.IntP("jobs", "j", runtime.NumCPU(), "number of files to process in parallel")
}

// parseCommandFlags parses subcommand args and checks the number of
// positional args. A negative maxArgs means no upper limit.
func parseCommandFlags(flagset *pflag.FlagSet, args []string, minArgs int, maxArgs int) error {
	if err := flagset.Parse(args); err != nil {
		return fmt.Errorf("failed to parse command args: %w", err)
	}
	n := flagset.NArg()
	if n < minArgs || (maxArgs >= 0 && n > maxArgs) {
		flagset.Usage()
		return fmt.Errorf("%s: wrong number of arguments", flagset.Name())
	}
	return nil
}

// load reads and parses a metainfo file, enforcing canonical input when the
// config asks for it
func (a *app) load(path string) (*metainfo.Metainfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := metainfo.Parse(raw, metainfo.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if a.cfg.Strict {
		canonical, err := m.Bytes()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if !bytes.Equal(canonical, raw) {
			return nil, fmt.Errorf("%s: %w", path, errNotCanonical)
		}
	}
	return m, nil
}
