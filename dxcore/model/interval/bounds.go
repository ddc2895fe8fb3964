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
	"encoding/json"

	"dirpx.dev/dxspan/dxcore/errors"
	"dirpx.dev/dxspan/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Bounds tells which endpoints of a Period belong to the Period.
//
// The four values correspond to the four bracket pairs of the interval
// notation:
//
//	IncludeStartExcludeEnd  [start, end)   closed-open
//	IncludeAll              [start, end]   closed-closed
//	ExcludeStartIncludeEnd  (start, end]   open-closed
//	ExcludeAll              (start, end)   open-open
//
// The zero value is IncludeStartExcludeEnd, the usual half-open convention
// for calendar periods: consecutive days, months or years built with it
// abut without overlapping.
//
// The numeric order of the constants is part of the Period total order
// (see Period.Compare) and MUST NOT change.
type Bounds int

const (
	// IncludeStartExcludeEnd includes the start datepoint and excludes the
	// end datepoint: [start, end).
	IncludeStartExcludeEnd Bounds = iota

	// IncludeAll includes both datepoints: [start, end].
	IncludeAll

	// ExcludeStartIncludeEnd excludes the start datepoint and includes the
	// end datepoint: (start, end].
	ExcludeStartIncludeEnd

	// ExcludeAll excludes both datepoints: (start, end).
	ExcludeAll
)

// Compile-time check that Bounds implements model.Model interface.
var _ model.Model = (*Bounds)(nil)

// String constants for Bounds values. The bracket pairs are the canonical
// external form used by String, JSON, YAML and the interval notation.
const (
	IncludeStartExcludeEndStr = "[)"
	IncludeAllStr             = "[]"
	ExcludeStartIncludeEndStr = "(]"
	ExcludeAllStr             = "()"
)

// boundsOf returns the Bounds value with the given endpoint inclusivity.
func boundsOf(includeStart, includeEnd bool) Bounds {
	switch {
	case includeStart && includeEnd:
		return IncludeAll
	case includeStart:
		return IncludeStartExcludeEnd
	case includeEnd:
		return ExcludeStartIncludeEnd
	default:
		return ExcludeAll
	}
}

// IncludesStart reports whether the start datepoint belongs to the range.
func (b Bounds) IncludesStart() bool {
	return b == IncludeStartExcludeEnd || b == IncludeAll
}

// IncludesEnd reports whether the end datepoint belongs to the range.
func (b Bounds) IncludesEnd() bool {
	return b == IncludeAll || b == ExcludeStartIncludeEnd
}

// StartBracket returns '[' when the start is included and '(' otherwise.
func (b Bounds) StartBracket() byte {
	if b.IncludesStart() {
		return '['
	}
	return '('
}

// EndBracket returns ']' when the end is included and ')' otherwise.
func (b Bounds) EndBracket() byte {
	if b.IncludesEnd() {
		return ']'
	}
	return ')'
}

// String returns the bracket pair of the Bounds value, for example "[)".
// Invalid values render as "unknown".
func (b Bounds) String() string {
	switch b {
	case IncludeStartExcludeEnd:
		return IncludeStartExcludeEndStr
	case IncludeAll:
		return IncludeAllStr
	case ExcludeStartIncludeEnd:
		return ExcludeStartIncludeEndStr
	case ExcludeAll:
		return ExcludeAllStr
	default:
		return "unknown"
	}
}

// ParseBounds converts a textual representation into a Bounds value.
//
// Besides the canonical bracket pairs the function accepts the common naming
// variants of each combination, which keeps configuration files forgiving:
//
//	"[)", "closed-open", "ClosedOpen", "closed_open", "CLOSED_OPEN"  -> IncludeStartExcludeEnd
//	"[]", "closed-closed", "ClosedClosed", "closed_closed", ...      -> IncludeAll
//	"(]", "open-closed", "OpenClosed", "open_closed", ...            -> ExcludeStartIncludeEnd
//	"()", "open-open", "OpenOpen", "open_open", ...                  -> ExcludeAll
//
// Unknown input yields a *errors.ParseError and the returned Bounds MUST
// NOT be used.
func ParseBounds(str string) (Bounds, error) {
	switch str {
	case IncludeStartExcludeEndStr, "closed-open", "ClosedOpen", "closed_open", "CLOSED_OPEN":
		return IncludeStartExcludeEnd, nil
	case IncludeAllStr, "closed-closed", "ClosedClosed", "closed_closed", "CLOSED_CLOSED":
		return IncludeAll, nil
	case ExcludeStartIncludeEndStr, "open-closed", "OpenClosed", "open_closed", "OPEN_CLOSED":
		return ExcludeStartIncludeEnd, nil
	case ExcludeAllStr, "open-open", "OpenOpen", "open_open", "OPEN_OPEN":
		return ExcludeAll, nil
	default:
		return IncludeStartExcludeEnd, &errors.ParseError{Type: "Bounds", Value: str}
	}
}

// Valid reports whether the Bounds value is one of the defined constants.
func (b Bounds) Valid() bool {
	return b >= IncludeStartExcludeEnd && b <= ExcludeAll
}

// MarshalJSON implements json.Marshaler for Bounds.
//
// A valid Bounds is encoded as its bracket pair (for example "[)"); invalid
// values yield a *MarshalError.
func (b Bounds) MarshalJSON() ([]byte, error) {
	if !b.Valid() {
		return nil, &errors.MarshalError{Type: "Bounds", Value: int(b)}
	}
	return json.Marshal(b.String())
}

// UnmarshalJSON implements json.Unmarshaler for Bounds.
//
// String input is resolved via ParseBounds. Numeric input (0 to 3, in
// declaration order) is accepted for compatibility with stores that keep
// enum-like values as integers.
func (b *Bounds) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Bounds", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &errors.UnmarshalError{Type: "Bounds", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseBounds(str)
		if err != nil {
			return err
		}
		*b = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "Bounds", Data: data, Reason: err.Error()}
	}
	if !Bounds(i).Valid() {
		return &errors.UnmarshalError{Type: "Bounds", Data: data, Reason: "invalid numeric value"}
	}
	*b = Bounds(i)
	return nil
}

// MarshalText implements encoding.TextMarshaler for Bounds.
func (b Bounds) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, &errors.MarshalError{Type: "Bounds", Value: int(b)}
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for Bounds using the
// vocabulary of ParseBounds.
func (b *Bounds) UnmarshalText(text []byte) error {
	parsed, err := ParseBounds(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for Bounds.
func (b Bounds) MarshalYAML() (any, error) {
	if !b.Valid() {
		return nil, &errors.MarshalError{Type: "Bounds", Value: int(b)}
	}
	return b.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Bounds.
func (b *Bounds) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Bounds", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseBounds(str)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// TypeName returns "Bounds".
func (b Bounds) TypeName() string {
	return "Bounds"
}

// Redacted returns the same representation as String; bounds carry no
// sensitive data.
func (b Bounds) Redacted() string {
	return b.String()
}

// IsZero reports whether b is IncludeStartExcludeEnd, the zero value.
// The zero value is valid.
func (b Bounds) IsZero() bool {
	return b == IncludeStartExcludeEnd
}

// Equal reports whether other is a Bounds (or *Bounds) with the same value.
func (b Bounds) Equal(other any) bool {
	switch v := other.(type) {
	case Bounds:
		return b == v
	case *Bounds:
		if v == nil {
			return false
		}
		return b == *v
	default:
		return false
	}
}

// Validate returns a *MarshalError when b is not one of the defined
// constants, typically after an unchecked numeric cast.
func (b Bounds) Validate() error {
	if !b.Valid() {
		return &errors.MarshalError{Type: "Bounds", Value: int(b)}
	}
	return nil
}
