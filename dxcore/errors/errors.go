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

// Package errors provides the error taxonomy shared by every dxspan package.
//
// The package plays two roles. First, it keeps the small value carriers used
// by enum-like types (such as interval.Bounds) when parsing, marshaling and
// unmarshaling: ParseError, MarshalError, UnmarshalError and
// ValidationError. Second, it defines the interval algebra taxonomy as a set
// of sentinel errors together with structured carriers that match them via
// errors.Is:
//
//   - ErrInvalidRange            start after end, or an empty degenerate range
//     (carried by *RangeError)
//   - ErrIndex                   out-of-range Sequence access (*IndexError)
//   - ErrNoOverlap               Intersect on disjoint periods
//   - ErrNoGap                   Gap on overlapping or abutting periods
//   - ErrMalformedSpec           invalid ISO-8601 duration (*DurationError)
//   - ErrMalformedClock          invalid clock or chrono string (*DurationError)
//   - ErrUnresolvableExpression  relative expression the engine cannot resolve
//   - ErrUnsupportedDurationInput input outside the accepted Duration shapes
//   - ErrMalformedNotation       invalid "[start, end)" notation (*NotationError)
//
// All failures are local and synchronous. Callers SHOULD test for a category
// with errors.Is against the sentinel and MAY use errors.As to reach the
// structured carrier when they need the offending input.
//
//	p, err := interval.New(start, end, interval.IncludeAll)
//	if errors.Is(err, dxerrors.ErrInvalidRange) {
//	    var re *dxerrors.RangeError
//	    if errors.As(err, &re) {
//	        log.Printf("rejected %s", re.Notation)
//	    }
//	}
package errors

import (
	stderrors "errors"
	"strconv"
)

// Sentinel errors of the interval algebra. Messages are stable.
var (
	ErrInvalidRange             = stderrors.New("dxspan: invalid range")
	ErrIndex                    = stderrors.New("dxspan: index out of range")
	ErrNoOverlap                = stderrors.New("dxspan: periods do not overlap")
	ErrNoGap                    = stderrors.New("dxspan: periods have no gap")
	ErrMalformedSpec            = stderrors.New("dxspan: malformed duration spec")
	ErrMalformedClock           = stderrors.New("dxspan: malformed clock string")
	ErrUnresolvableExpression   = stderrors.New("dxspan: unresolvable relative expression")
	ErrUnsupportedDurationInput = stderrors.New("dxspan: unsupported duration input")
	ErrMalformedNotation        = stderrors.New("dxspan: malformed interval notation")
)

// ParseError is returned when parsing a string into a strongly typed enum-like
// value fails.
//
// Type identifies the logical type being parsed (for example, "Bounds") and
// Value contains the exact string that could not be interpreted.
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Bounds").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The message format is "dxspan: invalid {Type} value: {Value}".
func (e *ParseError) Error() string {
	return "dxspan: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails because it is
// outside the set of valid constants.
//
// A MarshalError almost always indicates a programming error, such as a
// numeric cast that was never validated.
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying numeric representation that does not
	// correspond to a known constant.
	Value int
}

// Error implements the error interface for MarshalError.
func (e *MarshalError) Error() string {
	return "dxspan: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when decoding serialized data into a typed value
// fails.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	Data []byte

	// Reason is a short explanation such as "empty data".
	Reason string
}

// Error implements the error interface for UnmarshalError.
func (e *UnmarshalError) Error() string {
	return "dxspan: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned by Validate methods when a value violates one
// of its invariants.
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the offending field; empty when the error concerns the value
	// as a whole.
	Field string

	// Reason is a short explanation of the violated constraint.
	Reason string

	// Value optionally carries the invalid value.
	Value any
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dxspan: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "dxspan: invalid " + e.Type + ": " + e.Reason
}

// RangeError reports a rejected period construction.
//
// Notation holds the textual form of the rejected endpoints (for example
// "(2021-01-02T00:00:00Z, 2021-01-01T00:00:00Z)") so diagnostics show exactly
// what was attempted. RangeError matches ErrInvalidRange.
type RangeError struct {
	// Notation is the bracketed form of the rejected range.
	Notation string

	// Reason explains which invariant was violated.
	Reason string
}

// Error implements the error interface for RangeError.
func (e *RangeError) Error() string {
	return ErrInvalidRange.Error() + " " + e.Notation + ": " + e.Reason
}

// Is reports whether target is ErrInvalidRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// IndexError reports an access outside the bounds of a Sequence.
// IndexError matches ErrIndex.
type IndexError struct {
	// Index is the offset requested by the caller, before any negative
	// index resolution.
	Index int

	// Len is the length of the sequence at the time of the call.
	Len int
}

// Error implements the error interface for IndexError.
func (e *IndexError) Error() string {
	return ErrIndex.Error() + ": " + strconv.Itoa(e.Index) + " (len " + strconv.Itoa(e.Len) + ")"
}

// Is reports whether target is ErrIndex.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}

// DurationError reports a failed Duration construction.
//
// Kind is one of ErrMalformedSpec, ErrMalformedClock,
// ErrUnresolvableExpression or ErrUnsupportedDurationInput, and is what the
// error unwraps to.
type DurationError struct {
	// Kind is the sentinel describing the failure category.
	Kind error

	// Input is the textual input that was rejected.
	Input string

	// Reason is an optional detail, typically the message of a lower-level
	// parser.
	Reason string
}

// Error implements the error interface for DurationError.
func (e *DurationError) Error() string {
	kind := ErrUnsupportedDurationInput
	if e.Kind != nil {
		kind = e.Kind
	}
	msg := kind.Error() + ": " + strconv.Quote(e.Input)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap returns the failure category.
func (e *DurationError) Unwrap() error {
	if e.Kind == nil {
		return ErrUnsupportedDurationInput
	}
	return e.Kind
}

// NotationError reports a string that is not a valid interval notation.
// NotationError matches ErrMalformedNotation.
type NotationError struct {
	// Notation is the rejected input.
	Notation string

	// Reason explains what is wrong with it ("missing separator", ...).
	Reason string
}

// Error implements the error interface for NotationError.
func (e *NotationError) Error() string {
	return ErrMalformedNotation.Error() + " " + strconv.Quote(e.Notation) + ": " + e.Reason
}

// Is reports whether target is ErrMalformedNotation.
func (e *NotationError) Is(target error) bool {
	return target == ErrMalformedNotation
}
