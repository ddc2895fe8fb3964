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

// Package duration provides a calendar-aware elapsed-time value.
//
// A Duration keeps each calendar and clock component separately (years,
// months, days, hours, minutes, seconds and microseconds) with a single
// Invert flag for the sign, so "P1M" stays one month rather than being
// collapsed into a fixed number of seconds. Durations are built through
// distinct entry points, one per textual shape:
//
//	duration.Parse("P1Y2M3DT4H")             // ISO-8601 designators
//	duration.ParseClock("-12:28")             // hours:minutes[:seconds]
//	duration.ParseChrono("12:28.5")           // [hours:]minutes:seconds
//	duration.ParseExpression("+1 day", ref)   // relative expression
//	duration.FromSeconds(90.5)
//	duration.Between(start, end)
//
// AdjustedTo redistributes fine-grained components into coarser ones using
// the true length of days and months around a reference datepoint.
package duration

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dirpx.dev/dxspan/dxcore/errors"
	"dirpx.dev/dxspan/dxcore/model"
	"github.com/govalues/decimal"
	"gopkg.in/yaml.v3"
)

// Duration is an immutable signed elapsed time expressed in calendar and
// clock components.
//
// Every component is a non-negative magnitude; the sign lives solely in
// Invert. Microseconds is below one second. Components are not carried into
// one another implicitly: "PT36H" keeps 36 hours until AdjustedTo or
// Normalized is called.
type Duration struct {
	Years        int
	Months       int
	Days         int
	Hours        int
	Minutes      int
	Seconds      int
	Microseconds int

	// Invert marks a negative duration.
	Invert bool
}

// Compile-time check that Duration implements model.Model interface.
var _ model.Model = (*Duration)(nil)

// Span is anything with two endpoints, such as interval.Period.
type Span interface {
	Start() time.Time
	End() time.Time
}

// FromSpan returns the duration between the endpoints of s.
func FromSpan(s Span) Duration {
	return Between(s.Start(), s.End())
}

// FromTimeDuration converts a time.Duration into clock components. No
// component is carried into days.
func FromTimeDuration(td time.Duration) Duration {
	var d Duration
	if td < 0 {
		d.Invert = true
		td = -td
	}
	d.Hours = int(td / time.Hour)
	td %= time.Hour
	d.Minutes = int(td / time.Minute)
	td %= time.Minute
	d.Seconds = int(td / time.Second)
	td %= time.Second
	d.Microseconds = int(td / time.Microsecond)
	return d
}

// Between returns the calendar difference from start to end.
//
// Whole years are taken first, then whole months, whole days, and the
// remainder as clock time, each measured with calendar arithmetic in the
// location of start. When end is before start the magnitudes are measured
// from end to start and Invert is set.
//
//	Between(2014-05-01, 2014-05-08)  // P7D
//	Between(2018-02-01, 2018-03-01)  // P1M
func Between(start, end time.Time) Duration {
	var d Duration
	if end.Before(start) {
		start, end = end, start
		d.Invert = true
	}
	end = end.In(start.Location())

	d.Years = end.Year() - start.Year()
	for d.Years > 0 && start.AddDate(d.Years, 0, 0).After(end) {
		d.Years--
	}

	cur := start.AddDate(d.Years, 0, 0)
	d.Months = (end.Year()-cur.Year())*12 + int(end.Month()-cur.Month())
	for d.Months > 0 && start.AddDate(d.Years, d.Months, 0).After(end) {
		d.Months--
	}
	if d.Months < 0 {
		d.Months = 0
	}

	cur = start.AddDate(d.Years, d.Months, 0)
	d.Days = int(end.Sub(cur)/(24*time.Hour)) + 1
	for d.Days > 0 && start.AddDate(d.Years, d.Months, d.Days).After(end) {
		d.Days--
	}

	rest := end.Sub(start.AddDate(d.Years, d.Months, d.Days))
	clock := FromTimeDuration(rest)
	d.Hours, d.Minutes, d.Seconds, d.Microseconds = clock.Hours, clock.Minutes, clock.Seconds, clock.Microseconds

	return d
}

// Fraction returns the sub-second part as a fraction of a second.
func (d Duration) Fraction() float64 {
	return float64(d.Microseconds) / 1e6
}

// sign returns -1 for inverted durations and +1 otherwise.
func (d Duration) sign() int {
	if d.Invert {
		return -1
	}
	return 1
}

// clock returns the hour, minute, second and microsecond components as a
// time.Duration magnitude.
func (d Duration) clock() time.Duration {
	return time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second +
		time.Duration(d.Microseconds)*time.Microsecond
}

// AddTo returns t moved by d: calendar components first with
// time.Time.AddDate, then clock components. An inverted duration moves t
// back.
func (d Duration) AddTo(t time.Time) time.Time {
	s := d.sign()
	return t.AddDate(s*d.Years, s*d.Months, s*d.Days).Add(time.Duration(s) * d.clock())
}

// SubFrom returns t moved back by d.
func (d Duration) SubFrom(t time.Time) time.Time {
	return d.Negate().AddTo(t)
}

// Negate returns d with Invert flipped. The negation of a zero duration is
// the zero duration.
func (d Duration) Negate() Duration {
	if d.magnitudeIsZero() {
		d.Invert = false
		return d
	}
	d.Invert = !d.Invert
	return d
}

// Abs returns d with Invert cleared.
func (d Duration) Abs() Duration {
	d.Invert = false
	return d
}

func (d Duration) magnitudeIsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Days == 0 &&
		d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0 && d.Microseconds == 0
}

// IsZero reports whether every component is zero.
func (d Duration) IsZero() bool {
	return d.magnitudeIsZero()
}

// Equal reports whether other is a Duration (or *Duration) with identical
// components. Equal does not normalize: "PT24H" and "P1D" differ.
func (d Duration) Equal(other any) bool {
	switch v := other.(type) {
	case Duration:
		return d.key() == v.key()
	case *Duration:
		if v == nil {
			return false
		}
		return d.key() == v.key()
	default:
		return false
	}
}

// key returns d with the sign of a zero magnitude cleared.
func (d Duration) key() Duration {
	if d.magnitudeIsZero() {
		d.Invert = false
	}
	return d
}

// String returns the canonical ISO-8601 form without sign, for example
// "P1Y2M3DT4H5M6.5S". Zero components are omitted and the zero duration is
// "PT0S". Use Signed, or Invert, to recover the sign.
func (d Duration) String() string {
	var b strings.Builder
	b.WriteByte('P')

	writeField(&b, d.Years, 'Y')
	writeField(&b, d.Months, 'M')
	writeField(&b, d.Days, 'D')

	if d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 || d.Microseconds != 0 {
		b.WriteByte('T')
		writeField(&b, d.Hours, 'H')
		writeField(&b, d.Minutes, 'M')
		if d.Seconds != 0 || d.Microseconds != 0 {
			b.WriteString(formatSeconds(d.Seconds, d.Microseconds))
			b.WriteByte('S')
		}
	}

	if b.Len() == 1 {
		return "PT0S"
	}
	return b.String()
}

func writeField(b *strings.Builder, value int, designator byte) {
	if value == 0 {
		return
	}
	b.WriteString(strconv.Itoa(value))
	b.WriteByte(designator)
}

// formatSeconds renders seconds and microseconds as an exact decimal with
// trailing zeros removed: 3 and 100000 give "3.1".
func formatSeconds(seconds, micros int) string {
	if micros == 0 {
		return strconv.Itoa(seconds)
	}
	dec, err := decimal.New(int64(seconds)*1_000_000+int64(micros), 6)
	if err != nil {
		return strings.TrimRight(fmt.Sprintf("%d.%06d", seconds, micros), "0")
	}
	return dec.Trim(0).String()
}

// Signed returns String prefixed with "-" when d is inverted and not zero.
// Parse of the unsigned part followed by Negate restores d.
func (d Duration) Signed() string {
	if d.Invert && !d.magnitudeIsZero() {
		return "-" + d.String()
	}
	return d.String()
}

// Redacted returns the same representation as Signed.
func (d Duration) Redacted() string {
	return d.Signed()
}

// TypeName returns "Duration".
func (d Duration) TypeName() string {
	return "Duration"
}

// Validate checks that every component is non-negative and that
// Microseconds is below one second.
func (d Duration) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"Years", d.Years},
		{"Months", d.Months},
		{"Days", d.Days},
		{"Hours", d.Hours},
		{"Minutes", d.Minutes},
		{"Seconds", d.Seconds},
		{"Microseconds", d.Microseconds},
	}
	for _, f := range fields {
		if f.value < 0 {
			return &errors.ValidationError{Type: "Duration", Field: f.name, Reason: "must not be negative", Value: f.value}
		}
	}
	if d.Microseconds >= 1_000_000 {
		return &errors.ValidationError{Type: "Duration", Field: "Microseconds", Reason: "must be below one second", Value: d.Microseconds}
	}
	return nil
}

// parseSigned parses the output of Signed.
func parseSigned(s string) (Duration, error) {
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		d, err := Parse(rest)
		if err != nil {
			return Duration{}, err
		}
		return d.Negate(), nil
	}
	return Parse(s)
}

// MarshalJSON encodes d as a JSON string holding the signed ISO form.
func (d Duration) MarshalJSON() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid Duration: %w", err)
	}
	return json.Marshal(d.Signed())
}

// UnmarshalJSON decodes a JSON string produced by MarshalJSON.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Duration", Data: data, Reason: err.Error()}
	}
	parsed, err := parseSigned(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler, which also lets Duration
// be used as a flag or environment value.
func (d Duration) MarshalText() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid Duration: %w", err)
	}
	return []byte(d.Signed()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := parseSigned(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes d as a YAML string holding the signed ISO form.
func (d Duration) MarshalYAML() (any, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid Duration: %w", err)
	}
	return d.Signed(), nil
}

// UnmarshalYAML decodes a YAML scalar produced by MarshalYAML.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Duration", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := parseSigned(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
