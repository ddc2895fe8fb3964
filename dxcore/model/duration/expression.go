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
	"regexp"
	"strconv"
	"strings"
	"time"

	"dirpx.dev/dxspan/dxcore/errors"
	"github.com/tj/go-naturaldate"
)

var (
	offsetsRegex = regexp.MustCompile(`^(?:\s*[-+]?\s*\d+\s*[a-z]+\s*)+$`)
	offsetRegex  = regexp.MustCompile(`([-+]?)\s*(\d+)\s*([a-z]+)`)
)

// offset is one "[sign]N unit" term of a relative expression.
type offset struct {
	value int
	unit  string
}

// units maps the accepted unit words onto canonical names.
var units = map[string]string{
	"usec": "usec", "usecs": "usec", "microsecond": "usec", "microseconds": "usec",
	"msec": "msec", "msecs": "msec", "millisecond": "msec", "milliseconds": "msec",
	"sec": "sec", "secs": "sec", "second": "sec", "seconds": "sec",
	"min": "min", "mins": "min", "minute": "min", "minutes": "min",
	"hour": "hour", "hours": "hour",
	"day": "day", "days": "day",
	"week": "week", "weeks": "week",
	"fortnight": "fortnight", "fortnights": "fortnight",
	"month": "month", "months": "month",
	"year": "year", "years": "year",
}

// ParseExpression builds a Duration from a relative expression evaluated
// at ref.
//
// Sequences of signed offsets ("+1 day", "3 weeks 2 days", "-90 min") are
// read directly; each term carries its own sign. When every term has the
// same sign the components are kept as written, so "36 hours" is PT36H;
// mixed signs are resolved from ref and measured with Between. Any other
// phrase ("tomorrow", "next monday", "in 2 weeks") is resolved forward from
// ref by go-naturaldate and measured with Between.
//
// A zero ref means Epoch. Phrases that cannot be resolved match
// errors.ErrUnresolvableExpression.
func ParseExpression(expr string, ref time.Time) (Duration, error) {
	if ref.IsZero() {
		ref = Epoch
	}

	normalized := strings.ToLower(strings.TrimSpace(expr))
	if normalized == "" {
		return Duration{}, unresolvable(expr, "empty expression")
	}

	if offsets, ok := lexOffsets(normalized); ok {
		return fromOffsets(offsets, ref), nil
	}

	resolved, err := ResolvePhrase(normalized, ref)
	if err != nil {
		return Duration{}, unresolvable(expr, err.Error())
	}
	return Between(ref, resolved), nil
}

// presentPhrases resolve to ref itself.
var presentPhrases = map[string]bool{"now": true, "today": true}

// ResolvePhrase resolves a natural-language datepoint such as "tomorrow" or
// "next monday" forward from ref with go-naturaldate.
//
// The grammar skips words it does not know, so a phrase that leaves ref
// unchanged is rejected unless it names the present ("now", "today").
func ResolvePhrase(phrase string, ref time.Time) (time.Time, error) {
	normalized := strings.ToLower(strings.TrimSpace(phrase))
	resolved, err := naturaldate.Parse(normalized, ref, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return time.Time{}, err
	}
	if resolved.Equal(ref) && !presentPhrases[normalized] {
		return time.Time{}, fmt.Errorf("unrecognized phrase %q", phrase)
	}
	return resolved, nil
}

// FromDateString is ParseExpression evaluated at Epoch.
func FromDateString(expr string) (Duration, error) {
	return ParseExpression(expr, Epoch)
}

// lexOffsets splits expr into offsets. It reports false when expr is not a
// pure sequence of known "[sign]N unit" terms.
func lexOffsets(expr string) ([]offset, bool) {
	if !offsetsRegex.MatchString(expr) {
		return nil, false
	}

	var offsets []offset
	for _, m := range offsetRegex.FindAllStringSubmatch(expr, -1) {
		unit, known := units[m[3]]
		if !known {
			return nil, false
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, false
		}
		if m[1] == "-" {
			n = -n
		}
		offsets = append(offsets, offset{value: n, unit: unit})
	}
	return offsets, len(offsets) > 0
}

// fromOffsets turns offsets into a Duration. Same-signed offsets map onto
// components directly; mixed signs go through ref.
func fromOffsets(offsets []offset, ref time.Time) Duration {
	negative, positive := false, false
	for _, o := range offsets {
		if o.value < 0 {
			negative = true
		} else if o.value > 0 {
			positive = true
		}
	}

	if negative && positive {
		t := ref
		for _, o := range offsets {
			t = o.apply(t)
		}
		return Between(ref, t)
	}

	var d Duration
	for _, o := range offsets {
		n := o.value
		if n < 0 {
			n = -n
		}
		switch o.unit {
		case "usec":
			d.Microseconds += n
		case "msec":
			d.Microseconds += n * 1000
		case "sec":
			d.Seconds += n
		case "min":
			d.Minutes += n
		case "hour":
			d.Hours += n
		case "day":
			d.Days += n
		case "week":
			d.Days += 7 * n
		case "fortnight":
			d.Days += 14 * n
		case "month":
			d.Months += n
		case "year":
			d.Years += n
		}
	}
	d.Seconds += d.Microseconds / 1_000_000
	d.Microseconds %= 1_000_000

	if negative {
		d = d.Negate()
	}
	return d
}

// apply moves t by the offset.
func (o offset) apply(t time.Time) time.Time {
	switch o.unit {
	case "usec":
		return t.Add(time.Duration(o.value) * time.Microsecond)
	case "msec":
		return t.Add(time.Duration(o.value) * time.Millisecond)
	case "sec":
		return t.Add(time.Duration(o.value) * time.Second)
	case "min":
		return t.Add(time.Duration(o.value) * time.Minute)
	case "hour":
		return t.Add(time.Duration(o.value) * time.Hour)
	case "day":
		return t.AddDate(0, 0, o.value)
	case "week":
		return t.AddDate(0, 0, 7*o.value)
	case "fortnight":
		return t.AddDate(0, 0, 14*o.value)
	case "month":
		return t.AddDate(0, o.value, 0)
	default:
		return t.AddDate(o.value, 0, 0)
	}
}

func unresolvable(input, reason string) error {
	return &errors.DurationError{Kind: errors.ErrUnresolvableExpression, Input: input, Reason: reason}
}
