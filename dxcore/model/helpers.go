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

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates every element of a slice and returns all failures
// combined into a single error, or nil when every element is valid.
//
// Each failure is wrapped with the zero-based position of the offending
// element and its TypeName, for example "model[2] (Period): ...", so callers
// can point at the exact element. A failure on an early element never hides
// later ones; the combined error is built with rxmerr.Collector.
//
// Empty and nil slices are valid.
//
//	if err := model.ValidateAll(seq.Periods()); err != nil {
//	    return fmt.Errorf("invalid Sequence: %w", err)
//	}
func ValidateAll[T Checkable](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return c.Err()
}

// FilterZero drops the zero values of a slice, keeping the order of the
// others. The result never aliases the input and is non-nil.
func FilterZero[T ZeroCheckable](models []T) []T {
	result := make([]T, 0, len(models))
	for _, m := range models {
		if !m.IsZero() {
			result = append(result, m)
		}
	}
	return result
}

// ToJSON validates m and encodes it as JSON indented by two spaces and
// terminated by a newline.
func ToJSON[T Checkable](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("cannot marshal %s: %w", m.TypeName(), err)
	}
	return append(data, '\n'), nil
}

// ToYAML validates m and encodes it as a YAML document.
func ToYAML[T Checkable](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal %s: %w", m.TypeName(), err)
	}
	return data, nil
}
