/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cli

import (
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"dirpx.dev/dxspan/dxcore/chart"
	"dirpx.dev/dxspan/internal/platform/config"
	"dirpx.dev/dxspan/internal/platform/logger"
)

// Exit codes returned by Main.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

var errUsage = stderrors.New("usage")

// Main runs the dxspan command line and returns the process exit code.
//
//	dxspan [-config FILE] sequence -op unions [-f FILE]
//	dxspan [-config FILE] sequence -op chart [-width N] [-labels roman] [-lower]
//	dxspan [-config FILE] period -op intersect A B
//	dxspan [-config FILE] duration -mode clock [-ref DATE] VALUE
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("dxspan", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "optional YAML configuration file")
	global.Usage = func() { usage(stderr, global) }

	if err := global.Parse(args); err != nil {
		return ExitUsage
	}
	if global.NArg() == 0 {
		global.Usage()
		return ExitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return ExitError
	}

	opts := cfg.LoggerOptions()
	opts.Writer = stderr
	log := logger.Named(logger.New(opts), global.Arg(0))

	runner, err := NewRunner(cfg, stdout, log)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return ExitError
	}

	command, rest := global.Arg(0), global.Args()[1:]
	switch command {
	case "sequence":
		err = runSequence(runner, rest, stdin, stderr)
	case "period":
		err = runPeriod(runner, rest, stderr)
	case "duration":
		err = runDuration(runner, rest, stderr)
	default:
		fmt.Fprintf(stderr, "dxspan: unknown command %q\n", command)
		global.Usage()
		return ExitUsage
	}

	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, errUsage), stderrors.Is(err, flag.ErrHelp):
		return ExitUsage
	default:
		log.Debug().Err(err).Msg("command failed")
		fmt.Fprintln(stderr, "error:", err)
		return ExitError
	}
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: dxspan [-config FILE] <sequence|period|duration> [flags] [args]")
	fmt.Fprintln(w, "negative durations may be passed directly (duration -mode clock -12:28) or after --")
	fs.PrintDefaults()
	fmt.Fprintln(w, "\nenvironment:")
	fmt.Fprint(w, config.Usage())
}

func subcommand(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("dxspan "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func checkChoice(stderr io.Writer, flagName, value string, choices []string) error {
	if slices.Contains(choices, value) {
		return nil
	}
	fmt.Fprintf(stderr, "dxspan: -%s must be one of %s, got %q\n", flagName, strings.Join(choices, ", "), value)
	return errUsage
}

func runSequence(r *Runner, args []string, stdin io.Reader, stderr io.Writer) error {
	fs := subcommand("sequence", stderr)
	op := fs.String("op", "unions", "operation: "+strings.Join(SequenceOps, ", "))
	file := fs.String("f", "-", "YAML or JSON document with a periods list, - for stdin")
	width := fs.Int("width", chart.DefaultWidth, "chart: width of the bar area")
	labels := fs.String("labels", "latin", "chart: row labels, one of "+strings.Join(ChartLabels, ", "))
	lower := fs.Bool("lower", false, "chart: lower-case letter and roman labels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkChoice(stderr, "op", *op, SequenceOps); err != nil {
		return err
	}
	if err := checkChoice(stderr, "labels", *labels, ChartLabels); err != nil {
		return err
	}
	r.WithChart(chart.Gantt{Width: *width, Labeler: labeler(*labels, *lower)})

	in := stdin
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	return r.Sequence(*op, in)
}

// ChartLabels lists the row label styles of the chart operation.
var ChartLabels = []string{"latin", "decimal", "roman"}

func labeler(kind string, lower bool) chart.Labeler {
	letterCase := chart.Upper
	if lower {
		letterCase = chart.Lower
	}
	switch kind {
	case "decimal":
		return chart.DecimalNumber{}
	case "roman":
		return chart.RomanNumber{Case: letterCase}
	default:
		return chart.LatinLetter{Case: letterCase}
	}
}

func runPeriod(r *Runner, args []string, stderr io.Writer) error {
	fs := subcommand("period", stderr)
	op := fs.String("op", "intersect", "operation: "+strings.Join(PeriodOps, ", "))
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkChoice(stderr, "op", *op, PeriodOps); err != nil {
		return err
	}

	want := 2
	if *op == "length" {
		want = 1
	}
	if fs.NArg() != want {
		fmt.Fprintf(stderr, "dxspan: period -op %s takes %d notation argument(s), got %d\n", *op, want, fs.NArg())
		return errUsage
	}

	b := ""
	if want == 2 {
		b = fs.Arg(1)
	}
	return r.Period(*op, fs.Arg(0), b)
}

func runDuration(r *Runner, args []string, stderr io.Writer) error {
	fs := subcommand("duration", stderr)
	mode := fs.String("mode", "spec", "input mode: "+strings.Join(DurationModes, ", "))
	ref := fs.String("ref", "", "reference datepoint for expressions and carry-over")
	flags, values := splitNegative(args)
	if err := fs.Parse(flags); err != nil {
		return err
	}
	if err := checkChoice(stderr, "mode", *mode, DurationModes); err != nil {
		return err
	}
	values = append(fs.Args(), values...)
	if len(values) != 1 {
		fmt.Fprintf(stderr, "dxspan: duration takes exactly one value, got %d\n", len(values))
		return errUsage
	}
	return r.Duration(*mode, values[0], *ref)
}

// splitNegative separates the arguments that read as negative values, such
// as "-12:28", "-1.5" or "-1 day", from the flags.
func splitNegative(args []string) (flags, values []string) {
	for _, a := range args {
		if len(a) > 1 && a[0] == '-' && (a[1] == '.' || (a[1] >= '0' && a[1] <= '9')) {
			values = append(values, a)
			continue
		}
		flags = append(flags, a)
	}
	return flags, values
}
