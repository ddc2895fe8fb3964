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

package interval

import (
	"strings"
	"time"

	"dirpx.dev/dxspan/dxcore/errors"
	"dirpx.dev/dxspan/dxcore/model/duration"
	"github.com/rickb777/date/v2"
)

// NotationCodec converts periods to and from the bracketed interval
// notation, for example "[2021-01-01, 2021-02-01)".
//
// The opening bracket gives the start inclusivity and the closing bracket
// the end inclusivity; the four pairs map onto the four Bounds values. The
// endpoints are separated by a single comma and may be surrounded by
// spaces.
//
// The zero NotationCodec is ready to use: it parses endpoints in auto mode
// and formats them in RFC 3339.
type NotationCodec struct {
	// Layout is the time layout of the endpoints. When empty, Parse accepts
	// RFC 3339 timestamps, ISO dates ("2021-01-03") and relative names such
	// as "now" or "tomorrow", and Format writes RFC 3339 with nanoseconds.
	// A layout MUST NOT contain a comma or a bracket.
	Layout string

	// Location is used for endpoints without an offset and, when set, for
	// formatted output. Nil means UTC for parsing and the endpoints' own
	// locations for formatting.
	Location *time.Location

	// Now returns the reference datepoint for relative names. Nil means
	// time.Now.
	Now func() time.Time
}

// ParseNotation parses s with the zero NotationCodec.
func ParseNotation(s string) (Period, error) {
	return NotationCodec{}.Parse(s)
}

// Format returns the notation of p with endpoints written in layout.
//
//	p.Format("2006-01-02") // "[2021-01-03, 2021-01-04)"
func (p Period) Format(layout string) string {
	return NotationCodec{Layout: layout}.Format(p)
}

// Parse reads a Period from its notation.
//
// Malformed notation (empty string, missing or extra brackets, missing or
// extra separator, empty endpoint, unparsable endpoint) yields an error
// matching errors.ErrMalformedNotation. A start after the end yields an
// error matching errors.ErrInvalidRange.
func (c NotationCodec) Parse(s string) (Period, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Period{}, &errors.NotationError{Notation: s, Reason: "empty notation"}
	}

	open, closing := trimmed[0], trimmed[len(trimmed)-1]
	if (open != '[' && open != '(') || (closing != ']' && closing != ')') || len(trimmed) < 2 {
		return Period{}, &errors.NotationError{Notation: s, Reason: "missing boundaries"}
	}

	inner := trimmed[1 : len(trimmed)-1]
	if strings.ContainsAny(inner, "[]()") {
		return Period{}, &errors.NotationError{Notation: s, Reason: "too many boundaries"}
	}

	parts := strings.Split(inner, ",")
	switch {
	case len(parts) < 2:
		return Period{}, &errors.NotationError{Notation: s, Reason: "missing separator"}
	case len(parts) > 2:
		return Period{}, &errors.NotationError{Notation: s, Reason: "too many separators"}
	}

	startText, endText := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if startText == "" || endText == "" {
		return Period{}, &errors.NotationError{Notation: s, Reason: "missing datepoint"}
	}

	start, err := c.ParseDatepoint(startText)
	if err != nil {
		return Period{}, &errors.NotationError{Notation: s, Reason: "start: " + err.Error()}
	}
	end, err := c.ParseDatepoint(endText)
	if err != nil {
		return Period{}, &errors.NotationError{Notation: s, Reason: "end: " + err.Error()}
	}

	bounds, err := ParseBounds(string([]byte{open, closing}))
	if err != nil {
		return Period{}, &errors.NotationError{Notation: s, Reason: err.Error()}
	}

	return New(start, end, bounds)
}

// Format writes the notation of p, for example
// "[2021-01-01T00:00:00Z, 2021-02-01T00:00:00Z)".
func (c NotationCodec) Format(p Period) string {
	layout := c.Layout
	if layout == "" {
		layout = time.RFC3339Nano
	}
	start, end := p.start, p.end
	if c.Location != nil {
		start, end = start.In(c.Location), end.In(c.Location)
	}

	var b strings.Builder
	b.WriteByte(p.bounds.StartBracket())
	b.WriteString(start.Format(layout))
	b.WriteString(", ")
	b.WriteString(end.Format(layout))
	b.WriteByte(p.bounds.EndBracket())
	return b.String()
}

func (c NotationCodec) location() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.UTC
}

func (c NotationCodec) now() time.Time {
	if c.Now != nil {
		return c.Now().In(c.location())
	}
	return time.Now().In(c.location())
}

// ParseDatepoint reads a single endpoint with the layout, or in auto mode
// as RFC 3339, then ISO date, then relative name.
func (c NotationCodec) ParseDatepoint(s string) (time.Time, error) {
	if c.Layout != "" {
		return time.ParseInLocation(c.Layout, s, c.location())
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	if d, err := date.ParseISO(s); err == nil {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, c.location()), nil
	}

	return duration.ResolvePhrase(s, c.now())
}
