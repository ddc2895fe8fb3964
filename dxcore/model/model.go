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

// Package model defines the contracts shared by every dxspan value type.
//
// Bounds, Period, Sequence and Duration all implement Model: they can be
// validated, serialized to and from JSON and YAML with a round-trip
// guarantee, rendered for logs, identified by name and checked for their zero
// value. The generic helpers of this package (ValidateAll, FilterZero, ToJSON,
// ToYAML) only ask for the parts of that contract they use, so they accept
// value types whose decoders have pointer receivers.
//
// Model values in dxspan are immutable once constructed, with the single
// exception of interval.Sequence whose explicit mutation methods are
// documented on the type. Immutable values are safe for concurrent reads
// without synchronization.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining the contracts every dxspan value type
// implements.
//
// Implementations MUST keep Validate, the serializers and String consistent:
// a value that passes Validate MUST marshal successfully, and unmarshaling
// the produced bytes MUST yield a value that is Equal to the original.
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable is implemented by types that can check their own invariants.
type Validatable interface {
	// Validate returns nil when the value satisfies every invariant of its
	// type and a descriptive error otherwise. Validate MUST NOT mutate the
	// receiver.
	Validate() error
}

// Serializable is implemented by types with JSON and YAML representations.
//
// Marshalers MUST reject invalid values rather than emit them; unmarshalers
// MUST validate the decoded value before returning.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable is implemented by types that can be rendered in logs.
type Loggable interface {
	// Redacted returns a representation safe for production logs.
	Redacted() string

	// String returns the full representation.
	String() string
}

// Identifiable is implemented by types that know their logical name.
type Identifiable interface {
	// TypeName returns an unqualified type name such as "Period".
	TypeName() string
}

// ZeroCheckable is implemented by types that can report their zero value.
type ZeroCheckable interface {
	// IsZero reports whether the value is the zero value of its type.
	IsZero() bool
}

// Checkable is the subset of Model needed to validate a value and name it in
// error messages. Period and Duration values satisfy it even though only
// their pointers satisfy Model.
type Checkable interface {
	Validatable
	Identifiable
}

// Ordered is implemented by types with a total order, as used by sorting.
//
// Compare returns a negative number when the receiver sorts before other,
// zero when both sort equally and a positive number otherwise.
type Ordered[T any] interface {
	Compare(other T) int
}
