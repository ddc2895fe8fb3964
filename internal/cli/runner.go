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

// Package cli implements the dxspan subcommands on top of the dxcore
// model packages.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"dirpx.dev/dxspan/dxcore/chart"
	"dirpx.dev/dxspan/dxcore/model"
	"dirpx.dev/dxspan/dxcore/model/duration"
	"dirpx.dev/dxspan/dxcore/model/interval"
	"dirpx.dev/dxspan/internal/platform/config"
	"dirpx.dev/dxspan/internal/platform/logger"
)

// Runner executes subcommands and writes their results to an output
// stream in the configured format.
type Runner struct {
	codec  interval.NotationCodec
	gantt  chart.Gantt
	output string
	out    io.Writer
	log    logger.Logger
}

// NewRunner builds a Runner from a validated configuration.
func NewRunner(cfg config.Config, out io.Writer, log logger.Logger) (*Runner, error) {
	codec, err := cfg.Codec()
	if err != nil {
		return nil, err
	}
	return &Runner{codec: codec, output: cfg.Output, out: out, log: log}, nil
}

// WithNow fixes the reference datepoint of relative names.
func (r *Runner) WithNow(now func() time.Time) *Runner {
	r.codec.Now = now
	return r
}

// WithChart sets the Gantt renderer of the chart operation.
func (r *Runner) WithChart(g chart.Gantt) *Runner {
	r.gantt = g
	return r
}

func (r *Runner) now() time.Time {
	if r.codec.Now != nil {
		return r.codec.Now()
	}
	return time.Now()
}

// verdict is the result of a predicate operation.
type verdict bool

func (verdict) Validate() error  { return nil }
func (verdict) TypeName() string { return "verdict" }

// emit writes v as JSON or YAML, or text in text mode. Invalid values are
// rejected before anything is written.
func (r *Runner) emit(v model.Checkable, text string) error {
	var data []byte
	var err error

	switch r.output {
	case config.OutputJSON:
		data, err = model.ToJSON(v)
	case config.OutputYAML:
		data, err = model.ToYAML(v)
	default:
		data = []byte(text)
	}
	if err != nil {
		return fmt.Errorf("cannot encode result: %w", err)
	}

	_, err = r.out.Write(data)
	return err
}

func (r *Runner) emitPeriod(p interval.Period) error {
	return r.emit(p, r.codec.Format(p)+"\n")
}

func (r *Runner) emitSequence(s *interval.Sequence) error {
	var b strings.Builder
	for _, p := range s.All() {
		b.WriteString(r.codec.Format(p))
		b.WriteByte('\n')
	}
	return r.emit(s, b.String())
}

func (r *Runner) emitBool(v bool) error {
	return r.emit(verdict(v), fmt.Sprintln(v))
}

func (r *Runner) emitDuration(d duration.Duration) error {
	return r.emit(d, d.Signed()+"\n")
}
