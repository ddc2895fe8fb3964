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

package duration

import (
	"fmt"
	"time"

	"dirpx.dev/dxspan/dxcore/errors"
)

// Input is the closed set of shapes New accepts. Each shape is routed to
// its dedicated constructor; strings are never sniffed, so a colon string
// is a clock or a chrono only through the type that wraps it.
//
//	duration.New(duration.SpecInput("P1D"))
//	duration.New(duration.ChronoInput("12:28.5"))
//	duration.New(duration.SpanInput{Span: period})
type Input interface {
	durationInput()
}

// SpecInput is an ISO-8601 duration, handled by Parse.
type SpecInput string

// ClockInput is a "[-]H:M[:S[.f]]" string, handled by ParseClock.
type ClockInput string

// ChronoInput is a "[-][H:]M:S[.f]" string, handled by ParseChrono.
type ChronoInput string

// ExpressionInput is a relative expression evaluated at Ref, handled by
// ParseExpression. A zero Ref means Epoch.
type ExpressionInput struct {
	Expr string
	Ref  time.Time
}

// SecondsInput is a signed number of seconds, handled by FromSeconds.
type SecondsInput float64

// SpanInput measures the span of a period, handled by FromSpan.
type SpanInput struct {
	Span Span
}

// DurationInput is an existing Duration, returned unchanged.
type DurationInput Duration

func (SpecInput) durationInput()       {}
func (ClockInput) durationInput()      {}
func (ChronoInput) durationInput()     {}
func (ExpressionInput) durationInput() {}
func (SecondsInput) durationInput()    {}
func (SpanInput) durationInput()       {}
func (DurationInput) durationInput()   {}

// New builds a Duration from any accepted input shape.
//
// A nil input, a SpanInput without span or an invalid DurationInput match
// errors.ErrUnsupportedDurationInput; the other failures are those of the
// dedicated constructor.
func New(in Input) (Duration, error) {
	switch v := in.(type) {
	case SpecInput:
		return Parse(string(v))
	case ClockInput:
		return ParseClock(string(v))
	case ChronoInput:
		return ParseChrono(string(v))
	case ExpressionInput:
		return ParseExpression(v.Expr, v.Ref)
	case SecondsInput:
		return FromSeconds(float64(v))
	case SpanInput:
		if v.Span == nil {
			return Duration{}, unsupported(in, "missing span")
		}
		return FromSpan(v.Span), nil
	case DurationInput:
		d := Duration(v)
		if err := d.Validate(); err != nil {
			return Duration{}, unsupported(in, err.Error())
		}
		return d, nil
	default:
		return Duration{}, unsupported(in, "unknown input shape")
	}
}

func unsupported(in Input, reason string) error {
	return &errors.DurationError{
		Kind:   errors.ErrUnsupportedDurationInput,
		Input:  fmt.Sprintf("%T", in),
		Reason: reason,
	}
}
