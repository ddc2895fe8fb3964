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
	"math"
	"regexp"
	"strconv"
	"strings"

	"dirpx.dev/dxspan/dxcore/errors"
	"github.com/govalues/decimal"
	"github.com/rickb777/period"
)

var (
	// alternativeRegex matches the ISO-8601 alternative format
	// PYYYY-MM-DDTHH:MM:SS[.ffffff].
	alternativeRegex = regexp.MustCompile(`^P(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(?:\.(\d{1,6}))?$`)

	// clockRegex matches [sign]H:M[:S[.f]].
	clockRegex = regexp.MustCompile(`^([-+])?(\d+):(\d+)(?::(\d+)(?:\.(\d{1,6}))?)?$`)

	// chronoRegex matches [sign][H:]M:S[.f].
	chronoRegex = regexp.MustCompile(`^([-+])?(?:(\d+):)?(\d+):(\d+)(?:\.(\d{1,6}))?$`)
)

// Parse builds a Duration from an ISO-8601 duration such as "P1Y2M3DT4H5M6S"
// or "PT0.5S", or from the alternative form "P0001-02-03T04:05:06.5".
//
// The grammar requires the P prefix, allows each designator once, puts
// H/M/S after T and accepts a fraction on seconds only. Weeks ("P2W") are
// converted into days. Signs are rejected: an ISO duration is a magnitude
// and the sign of a Duration is carried by Invert. Any violation yields an
// error matching errors.ErrMalformedSpec.
func Parse(spec string) (Duration, error) {
	if m := alternativeRegex.FindStringSubmatch(spec); m != nil {
		return fromAlternative(spec, m)
	}

	if strings.ContainsAny(spec, "+-") {
		return Duration{}, malformedSpec(spec, "signs are not allowed")
	}
	if strings.HasSuffix(spec, "T") {
		return Duration{}, malformedSpec(spec, "time designator without time components")
	}

	p, err := period.Parse(spec)
	if err != nil {
		return Duration{}, malformedSpec(spec, err.Error())
	}

	for _, field := range []decimal.Decimal{
		p.YearsDecimal(), p.MonthsDecimal(), p.WeeksDecimal(),
		p.DaysDecimal(), p.HoursDecimal(), p.MinutesDecimal(),
	} {
		if !field.IsInt() {
			return Duration{}, malformedSpec(spec, "only seconds may carry a fraction")
		}
	}

	seconds, micros, ok := splitSeconds(p.SecondsDecimal())
	if !ok {
		return Duration{}, malformedSpec(spec, "seconds out of range")
	}

	return Duration{
		Years:        p.Years(),
		Months:       p.Months(),
		Days:         p.Days() + 7*p.Weeks(),
		Hours:        p.Hours(),
		Minutes:      p.Minutes(),
		Seconds:      seconds,
		Microseconds: micros,
	}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// static tables.
func MustParse(spec string) Duration {
	d, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return d
}

func fromAlternative(spec string, m []string) (Duration, error) {
	var fields [6]int
	for i := range fields {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Duration{}, malformedSpec(spec, err.Error())
		}
		fields[i] = v
	}
	if fields[1] > 12 || fields[2] > 31 || fields[3] > 24 || fields[4] > 59 || fields[5] > 59 {
		return Duration{}, malformedSpec(spec, "component out of range")
	}

	return Duration{
		Years:        fields[0],
		Months:       fields[1],
		Days:         fields[2],
		Hours:        fields[3],
		Minutes:      fields[4],
		Seconds:      fields[5],
		Microseconds: microsOf(m[7]),
	}, nil
}

// splitSeconds splits a non-negative decimal number of seconds into whole
// seconds and microseconds.
func splitSeconds(sec decimal.Decimal) (int, int, bool) {
	whole, frac, ok := sec.Int64(6)
	if !ok || whole < 0 || frac < 0 || whole > math.MaxInt32 {
		return 0, 0, false
	}
	if frac >= 1_000_000 {
		whole++
		frac -= 1_000_000
	}
	return int(whole), int(frac), true
}

// microsOf converts up to six fraction digits into microseconds: "5" is
// 500000 and "0004" is 400.
func microsOf(digits string) int {
	if digits == "" {
		return 0
	}
	v, _ := strconv.Atoi((digits + "000000")[:6])
	return v
}

// ParseClock builds a Duration from a time-of-day style string
// "[-]H:M[:S[.ffffff]]": with two fields the first is hours. A leading "-"
// sets Invert. Components are not carried: "1:75" is PT1H75M.
//
//	ParseClock("1:2")                     // PT1H2M
//	ParseClock("-12:28")                  // PT12H28M, inverted
//	ParseClock("00001:00002:000003.0004") // PT1H2M3.0004S
//
// Failures match errors.ErrMalformedClock.
func ParseClock(s string) (Duration, error) {
	m := clockRegex.FindStringSubmatch(s)
	if m == nil {
		return Duration{}, malformedClock(s, "expected [-]H:M[:S[.f]]")
	}
	return fromColonFields(s, m[1], m[2], m[3], m[4], m[5])
}

// ParseChrono builds a Duration from a stopwatch style string
// "[-][H:]M:S[.ffffff]": with two fields the first is minutes, with three
// it is hours.
//
//	ParseChrono("1:2")      // PT1M2S
//	ParseChrono("-12:28.5") // PT12M28.5S, inverted
//
// Failures match errors.ErrMalformedClock.
func ParseChrono(s string) (Duration, error) {
	m := chronoRegex.FindStringSubmatch(s)
	if m == nil {
		return Duration{}, malformedClock(s, "expected [-][H:]M:S[.f]")
	}
	return fromColonFields(s, m[1], m[2], m[3], m[4], m[5])
}

// fromColonFields assembles a Duration from the regexp groups shared by
// the clock and chrono forms. Empty groups count as zero.
func fromColonFields(input, sign, hours, minutes, seconds, fraction string) (Duration, error) {
	var d Duration
	var err error

	if d.Hours, err = atoiOrZero(hours); err != nil {
		return Duration{}, malformedClock(input, err.Error())
	}
	if d.Minutes, err = atoiOrZero(minutes); err != nil {
		return Duration{}, malformedClock(input, err.Error())
	}

	if seconds == "" {
		seconds = "0"
	}
	if fraction != "" {
		seconds += "." + fraction
	}
	sec, err := decimal.Parse(seconds)
	if err != nil {
		return Duration{}, malformedClock(input, err.Error())
	}
	var ok bool
	if d.Seconds, d.Microseconds, ok = splitSeconds(sec); !ok {
		return Duration{}, malformedClock(input, "seconds out of range")
	}

	if sign == "-" {
		d = d.Negate()
	}
	return d, nil
}

func atoiOrZero(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// FromSeconds builds a Duration from a signed number of seconds. The whole
// part is stored in Seconds without carry and the fractional part, rounded
// to the microsecond, in Microseconds. A negative value sets Invert.
//
// NaN, infinite values and values beyond the int range match
// errors.ErrUnsupportedDurationInput.
func FromSeconds(seconds float64) (Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || math.Abs(seconds) >= float64(math.MaxInt) {
		return Duration{}, &errors.DurationError{
			Kind:   errors.ErrUnsupportedDurationInput,
			Input:  strconv.FormatFloat(seconds, 'g', -1, 64),
			Reason: "not a finite number of seconds within the int range",
		}
	}

	whole, frac := math.Modf(math.Abs(seconds))
	d := Duration{
		Seconds:      int(whole),
		Microseconds: int(math.Round(frac * 1e6)),
	}
	if d.Microseconds >= 1_000_000 {
		d.Seconds++
		d.Microseconds -= 1_000_000
	}
	if seconds < 0 {
		d = d.Negate()
	}
	return d, nil
}

func malformedSpec(input, reason string) error {
	return &errors.DurationError{Kind: errors.ErrMalformedSpec, Input: input, Reason: reason}
}

func malformedClock(input, reason string) error {
	return &errors.DurationError{Kind: errors.ErrMalformedClock, Input: input, Reason: reason}
}
