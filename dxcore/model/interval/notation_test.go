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
	stderrors "errors"
	"testing"
	"time"

	"dirpx.dev/dxspan/dxcore/errors"
)

func TestParseNotation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"[2021-01-03,2021-01-04)", "[2021-01-03, 2021-01-04)"},
		{"(   2021-01-03  ,  2021-01-04  ]", "(2021-01-03, 2021-01-04]"},
		{"  [2021-01-03, 2021-01-03]  ", "[2021-01-03, 2021-01-03]"},
		{"(2021-01-03T10:00:00+02:00, 2021-01-04T00:00:00Z)", "(2021-01-03, 2021-01-04)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParseNotation(tt.input)
			if err != nil {
				t.Fatalf("ParseNotation() error = %v", err)
			}
			if got := p.Format("2006-01-02"); got != tt.want {
				t.Errorf("ParseNotation() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseNotation_Malformed(t *testing.T) {
	tests := []struct {
		input  string
		reason string
	}{
		{"", "empty notation"},
		{"   ", "empty notation"},
		{"[2021-01-02 2021-01-03]", "missing separator"},
		{"2021-01-02,2021-01-03", "missing boundaries"},
		{"[2021-01-02,2021-)01-03]", "too many boundaries"},
		{"[2021-01-02,2021-,01-03]", "too many separators"},
		{"[2021-01-02,  ]", "missing datepoint"},
		{"[", "missing boundaries"},
		{"[2021-01-01, foo bar)", ""},
		{"[yolo, tomorrow)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseNotation(tt.input)
			if !stderrors.Is(err, errors.ErrMalformedNotation) {
				t.Fatalf("ParseNotation(%q) error = %v, want ErrMalformedNotation", tt.input, err)
			}
			var ne *errors.NotationError
			if !stderrors.As(err, &ne) {
				t.Fatalf("ParseNotation(%q) error = %#v, want *NotationError", tt.input, err)
			}
			if tt.reason != "" && ne.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", ne.Reason, tt.reason)
			}
		})
	}
}

func TestParseNotation_InvalidRange(t *testing.T) {
	for _, input := range []string{"[2021-01-04, 2021-01-03]", "(2021-01-03, 2021-01-03)"} {
		_, err := ParseNotation(input)
		if !stderrors.Is(err, errors.ErrInvalidRange) {
			t.Errorf("ParseNotation(%q) error = %v, want ErrInvalidRange", input, err)
		}
	}
}

func TestNotationCodec_Layout(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	codec := NotationCodec{Layout: "2006-01-02 15:04", Location: paris}

	p, err := codec.Parse("[2021-01-03 10:00, 2021-01-03 12:30)")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if want := time.Date(2021, 1, 3, 9, 0, 0, 0, time.UTC); !p.Start().Equal(want) {
		t.Errorf("Start() = %v, want %v", p.Start(), want)
	}
	if got := codec.Format(p); got != "[2021-01-03 10:00, 2021-01-03 12:30)" {
		t.Errorf("Format() = %q", got)
	}
	if got := (NotationCodec{Layout: "15:04"}).Format(p); got != "[10:00, 12:30)" {
		t.Errorf("Format() in the endpoints' location = %q", got)
	}

	if _, err := codec.Parse("[2021-01-03, 2021-01-04)"); !stderrors.Is(err, errors.ErrMalformedNotation) {
		t.Errorf("Parse() with layout mismatch error = %v, want ErrMalformedNotation", err)
	}
}

func TestNotationCodec_RoundTrip(t *testing.T) {
	p := MustNew(time.Date(2021, 1, 3, 10, 30, 0, 5, time.UTC), day(4), ExcludeStartIncludeEnd)
	back, err := ParseNotation(p.String())
	if err != nil {
		t.Fatalf("ParseNotation(String()) error = %v", err)
	}
	if !back.Equal(p) {
		t.Errorf("round trip = %v, want %v", back, p)
	}
}

func TestNotationCodec_RelativeNames(t *testing.T) {
	fixed := time.Date(2021, 6, 15, 12, 0, 0, 0, time.UTC)
	codec := NotationCodec{Now: func() time.Time { return fixed }}

	p, err := codec.Parse("[now, tomorrow]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Start().Sub(fixed).Abs() > 24*time.Hour {
		t.Errorf("Start() = %v, want close to %v", p.Start(), fixed)
	}
	if !p.End().After(fixed) || p.End().Sub(fixed) > 48*time.Hour {
		t.Errorf("End() = %v, want the day after %v", p.End(), fixed)
	}
	if p.Bounds() != IncludeAll {
		t.Errorf("Bounds() = %v", p.Bounds())
	}
}
