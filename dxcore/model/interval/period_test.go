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
	stderrors "errors"
	"slices"
	"strings"
	"testing"
	"time"

	"dirpx.dev/dxspan/dxcore/errors"
	"gopkg.in/yaml.v3"
)

// day returns midnight UTC of the given day of January 2021.
func day(d int) time.Time {
	return time.Date(2021, time.January, d, 0, 0, 0, 0, time.UTC)
}

// mustParse builds a Period from its notation, failing the test on error.
func mustParse(t *testing.T, notation string) Period {
	t.Helper()
	p, err := ParseNotation(notation)
	if err != nil {
		t.Fatalf("ParseNotation(%q) error = %v", notation, err)
	}
	return p
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		bounds     Bounds
		wantErr    bool
	}{
		{"closed-open", day(1), day(10), IncludeStartExcludeEnd, false},
		{"open-open", day(1), day(10), ExcludeAll, false},
		{"closed instant", day(5), day(5), IncludeAll, false},
		{"half-open instant", day(5), day(5), IncludeStartExcludeEnd, false},
		{"open-closed instant", day(5), day(5), ExcludeStartIncludeEnd, false},
		{"open instant", day(5), day(5), ExcludeAll, true},
		{"start after end", day(10), day(1), IncludeAll, true},
		{"unknown bounds", day(1), day(10), Bounds(7), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.start, tt.end, tt.bounds)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !stderrors.Is(err, errors.ErrInvalidRange) {
					t.Errorf("New() error = %v, want ErrInvalidRange", err)
				}
				var re *errors.RangeError
				if !stderrors.As(err, &re) || re.Notation == "" {
					t.Errorf("New() error = %#v, want *RangeError with notation", err)
				}
				return
			}
			if !p.Start().Equal(tt.start) || !p.End().Equal(tt.end) || p.Bounds() != tt.bounds {
				t.Errorf("New() = %v", p)
			}
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew() did not panic")
		}
	}()
	MustNew(day(2), day(1), IncludeAll)
}

func TestPeriod_ContainsEndpointsMatchBounds(t *testing.T) {
	for _, b := range []Bounds{IncludeStartExcludeEnd, IncludeAll, ExcludeStartIncludeEnd, ExcludeAll} {
		t.Run(b.String(), func(t *testing.T) {
			p := MustNew(day(1), day(10), b)
			if got := p.Contains(day(1)); got != b.IncludesStart() {
				t.Errorf("Contains(start) = %v, want %v", got, b.IncludesStart())
			}
			if got := p.Contains(day(10)); got != b.IncludesEnd() {
				t.Errorf("Contains(end) = %v, want %v", got, b.IncludesEnd())
			}
			if !p.Contains(day(5)) {
				t.Error("Contains(middle) = false")
			}
			if p.Contains(day(11)) || p.Contains(time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)) {
				t.Error("Contains(outside) = true")
			}
		})
	}
}

func TestPeriod_ContainsPeriod(t *testing.T) {
	tests := []struct {
		outer, inner string
		want         bool
	}{
		{"[2021-01-01, 2021-01-10)", "(2021-01-01, 2021-01-10)", true},
		{"[2021-01-01, 2021-01-10)", "[2021-01-01, 2021-01-10)", true},
		{"[2021-01-01, 2021-01-10)", "[2021-01-01, 2021-01-10]", false},
		{"[2021-01-01, 2021-01-10)", "[2021-01-03, 2021-01-04]", true},
		{"(2021-01-01, 2021-01-10)", "[2021-01-01, 2021-01-05)", false},
		{"[2021-01-01, 2021-01-10]", "[2021-01-01, 2021-01-10]", true},
		{"[2021-01-01, 2021-01-10)", "[2021-01-05, 2021-01-12)", false},
		{"[2021-01-01, 2021-01-10)", "[2021-01-10, 2021-01-10]", false},
	}

	for _, tt := range tests {
		t.Run(tt.outer+" ⊇ "+tt.inner, func(t *testing.T) {
			outer, inner := mustParse(t, tt.outer), mustParse(t, tt.inner)
			if got := outer.ContainsPeriod(inner); got != tt.want {
				t.Errorf("ContainsPeriod() = %v, want %v", got, tt.want)
			}
			if got := inner.IsDuring(outer); got != tt.want {
				t.Errorf("IsDuring() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPeriod_Compare(t *testing.T) {
	periods := []Period{
		mustParse(t, "[2021-01-05, 2021-01-10)"),
		mustParse(t, "[2021-01-01, 2021-01-10)"),
		mustParse(t, "[2021-01-01, 2021-01-05]"),
		mustParse(t, "[2021-01-01, 2021-01-05)"),
	}
	slices.SortStableFunc(periods, Period.Compare)

	want := []string{
		"[2021-01-01, 2021-01-05)",
		"[2021-01-01, 2021-01-05]",
		"[2021-01-01, 2021-01-10)",
		"[2021-01-05, 2021-01-10)",
	}
	for i, p := range periods {
		if got := p.Format("2006-01-02"); got != want[i] {
			t.Errorf("sorted[%d] = %s, want %s", i, got, want[i])
		}
	}
}

func TestPeriod_Equal(t *testing.T) {
	a := mustParse(t, "[2021-01-01, 2021-01-10)")
	paris := time.FixedZone("CET", 3600)
	b := MustNew(day(1).In(paris), day(10).In(paris), IncludeStartExcludeEnd)

	if !a.Equal(b) || !a.Equal(&b) {
		t.Error("Equal() should ignore locations")
	}
	if a.Equal(MustNew(day(1), day(10), IncludeAll)) {
		t.Error("Equal() should compare bounds")
	}
	if a.Equal((*Period)(nil)) || a.Equal("x") {
		t.Error("Equal() should reject other types")
	}
}

func TestPeriod_Length(t *testing.T) {
	p := MustNew(
		time.Date(2014, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2014, 5, 8, 0, 0, 0, 0, time.UTC),
		IncludeStartExcludeEnd,
	)
	if got := p.Length().String(); got != "P7D" {
		t.Errorf("Length() = %q, want P7D", got)
	}
	if p.Length().Invert {
		t.Error("Length() is inverted")
	}
	if got := p.TimeDuration(); got != 7*24*time.Hour {
		t.Errorf("TimeDuration() = %v", got)
	}

	instant := MustNew(day(1), day(1), IncludeAll)
	if got := instant.Length().String(); got != "PT0S" {
		t.Errorf("instant Length() = %q, want PT0S", got)
	}
}

func TestPeriod_String(t *testing.T) {
	p := MustNew(day(1), day(10), ExcludeStartIncludeEnd)
	want := "(2021-01-01T00:00:00Z, 2021-01-10T00:00:00Z]"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if p.Redacted() != want {
		t.Errorf("Redacted() = %q", p.Redacted())
	}
	if p.TypeName() != "Period" {
		t.Errorf("TypeName() = %q", p.TypeName())
	}
}

func TestPeriod_ZeroValue(t *testing.T) {
	var p Period
	if !p.IsZero() {
		t.Error("zero Period.IsZero() = false")
	}
	if err := p.Validate(); err == nil {
		t.Error("zero Period.Validate() = nil")
	}
	if _, err := json.Marshal(p); err == nil {
		t.Error("json.Marshal(zero Period) should fail")
	}
	if MustNew(day(1), day(2), IncludeAll).IsZero() {
		t.Error("non-zero Period.IsZero() = true")
	}
}

func TestPeriod_JSON(t *testing.T) {
	original := MustNew(
		time.Date(2021, 1, 1, 10, 30, 0, 123456789, time.UTC),
		day(10),
		ExcludeAll,
	)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"startDate":"2021-01-01T10:30:00.123456789Z","endDate":"2021-01-10T00:00:00Z","bounds":"()"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var decoded Period
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("round trip = %v, want %v", decoded, original)
	}
}

func TestPeriod_UnmarshalJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"start after end", `{"startDate":"2021-01-10T00:00:00Z","endDate":"2021-01-01T00:00:00Z","bounds":"[)"}`, errors.ErrInvalidRange},
		{"open instant", `{"startDate":"2021-01-10T00:00:00Z","endDate":"2021-01-10T00:00:00Z","bounds":"()"}`, errors.ErrInvalidRange},
		{"bad start", `{"startDate":"yesterday","endDate":"2021-01-10T00:00:00Z","bounds":"[)"}`, nil},
		{"bad bounds", `{"startDate":"2021-01-01T00:00:00Z","endDate":"2021-01-10T00:00:00Z","bounds":"<>"}`, nil},
		{"not an object", `[]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Period
			err := json.Unmarshal([]byte(tt.data), &p)
			if err == nil {
				t.Fatal("Unmarshal() should fail")
			}
			if tt.want != nil && !stderrors.Is(err, tt.want) {
				t.Errorf("Unmarshal() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPeriod_YAML(t *testing.T) {
	original := MustNew(day(1), day(10), IncludeAll)

	data, err := yaml.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), "startDate:") || !strings.Contains(string(data), "bounds:") {
		t.Errorf("Marshal() = %s", data)
	}

	var decoded Period
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("round trip = %v, want %v", decoded, original)
	}

	var scalar Period
	if err := yaml.Unmarshal([]byte(`"[2021-01-01, 2021-01-10]"`), &scalar); err != nil {
		t.Fatalf("Unmarshal(notation) error = %v", err)
	}
	if !scalar.Equal(original) {
		t.Errorf("Unmarshal(notation) = %v, want %v", scalar, original)
	}

	if err := yaml.Unmarshal([]byte(`"2021-01-01, 2021-01-10"`), &scalar); !stderrors.Is(err, errors.ErrMalformedNotation) {
		t.Errorf("Unmarshal(bad notation) error = %v, want ErrMalformedNotation", err)
	}
}
