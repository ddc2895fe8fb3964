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
	"fmt"
	"strconv"
	"time"

	"dirpx.dev/dxspan/dxcore/model/duration"
)

// DurationModes lists the input modes accepted by Runner.Duration.
var DurationModes = []string{"spec", "clock", "chrono", "expr", "seconds"}

// durationReport is the result of the duration command.
type durationReport struct {
	Duration duration.Duration `json:"duration" yaml:"duration"`
	Inverted bool              `json:"inverted" yaml:"inverted"`
	Adjusted duration.Duration `json:"adjusted" yaml:"adjusted"`
}

func (d durationReport) Validate() error {
	if err := d.Duration.Validate(); err != nil {
		return err
	}
	return d.Adjusted.Validate()
}

func (durationReport) TypeName() string { return "durationReport" }

// Duration builds a duration from value read in mode, then reports its
// canonical form, its sign and its carry-over form at ref. An empty ref
// means the current time for expressions and the Unix epoch for the
// carry-over.
func (r *Runner) Duration(mode, value, ref string) error {
	var at time.Time
	if ref != "" {
		t, err := r.codec.ParseDatepoint(ref)
		if err != nil {
			return fmt.Errorf("reference datepoint %q: %w", ref, err)
		}
		at = t
	}

	in, err := r.durationInput(mode, value, at)
	if err != nil {
		return err
	}

	d, err := duration.New(in)
	if err != nil {
		return err
	}

	r.log.Debug().Str("mode", mode).Str("duration", d.Signed()).Msg("duration parsed")

	report := durationReport{Duration: d, Inverted: d.Invert, Adjusted: d.AdjustedTo(at)}
	text := fmt.Sprintf("duration: %s\ninverted: %t\nadjusted: %s\n", report.Duration.Signed(), report.Inverted, report.Adjusted.Signed())
	return r.emit(report, text)
}

func (r *Runner) durationInput(mode, value string, ref time.Time) (duration.Input, error) {
	switch mode {
	case "spec":
		return duration.SpecInput(value), nil
	case "clock":
		return duration.ClockInput(value), nil
	case "chrono":
		return duration.ChronoInput(value), nil
	case "expr":
		if ref.IsZero() {
			ref = r.now()
		}
		return duration.ExpressionInput{Expr: value, Ref: ref}, nil
	case "seconds":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("seconds %q: %w", value, err)
		}
		return duration.SecondsInput(f), nil
	default:
		return nil, fmt.Errorf("unknown duration mode %q", mode)
	}
}
