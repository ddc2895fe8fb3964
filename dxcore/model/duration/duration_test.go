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
	"encoding/json"
	stderrors "errors"
	"math"
	"testing"
	"time"

	"dirpx.dev/dxspan/dxcore/errors"
	"gopkg.in/yaml.v3"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDuration_String(t *testing.T) {
	tests := []struct {
		name string
		d    Duration
		want string
	}{
		{"zero", Duration{}, "PT0S"},
		{"inverted zero", Duration{Invert: true}, "PT0S"},
		{"date only", Duration{Months: 1}, "P1M"},
		{"time only", Duration{Hours: 1}, "PT1H"},
		{"all components", Duration{Years: 1, Months: 2, Days: 3, Hours: 4, Minutes: 5, Seconds: 6}, "P1Y2M3DT4H5M6S"},
		{"fraction", Duration{Seconds: 3, Microseconds: 100000}, "PT3.1S"},
		{"tiny fraction", Duration{Microseconds: 10}, "PT0.00001S"},
		{"minutes and fraction", Duration{Minutes: 5, Microseconds: 23658}, "PT5M0.023658S"},
		{"inverted keeps no sign", Duration{Hours: 12, Minutes: 28, Invert: true}, "PT12H28M"},
		{"no carry", Duration{Hours: 36}, "PT36H"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDuration_Signed(t *testing.T) {
	if got := (Duration{Hours: 1, Invert: true}).Signed(); got != "-PT1H" {
		t.Errorf("Signed() = %q, want %q", got, "-PT1H")
	}
	if got := (Duration{Hours: 1}).Signed(); got != "PT1H" {
		t.Errorf("Signed() = %q, want %q", got, "PT1H")
	}
	if got := (Duration{Invert: true}).Signed(); got != "PT0S" {
		t.Errorf("Signed() of inverted zero = %q, want %q", got, "PT0S")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"P1Y2M3D", "P1Y2M3D"},
		{"P1M", "P1M"},
		{"PT1H", "PT1H"},
		{"PT36H", "PT36H"},
		{"P2W", "P14D"},
		{"P1W3D", "P10D"},
		{"PT3.1S", "PT3.1S"},
		{"PT0.0001S", "PT0.0001S"},
		{"PT0S", "PT0S"},
		{"P1Y2M3DT4H5M6S", "P1Y2M3DT4H5M6S"},
		{"P0000-00-00T00:05:00.023658", "PT5M0.023658S"},
		{"P0001-02-03T04:05:06", "P1Y2M3DT4H5M6S"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			d, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if got := d.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.spec, got, tt.want)
			}
			if d.Invert {
				t.Errorf("Parse(%q) is inverted", tt.spec)
			}
		})
	}
}

func TestParse_Fraction(t *testing.T) {
	d := MustParse("P0000-00-00T00:05:00.023658")
	if d.Fraction() != 0.023658 {
		t.Errorf("Fraction() = %v, want 0.023658", d.Fraction())
	}
	if d.Microseconds != 23658 {
		t.Errorf("Microseconds = %d, want 23658", d.Microseconds)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []string{
		"",
		"PT",
		"P",
		"PT1",
		"P3",
		"PT3X",
		"PT3s",
		"blablabbla",
		"-P1D",
		"+P1D",
		"P-1D",
		"P1.5D",
		"PT1.5H",
		"P1YT",
		"P1D1D",
		"P0001-13-03T04:05:06",
	}

	for _, spec := range tests {
		t.Run(spec, func(t *testing.T) {
			_, err := Parse(spec)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", spec)
			}
			if !stderrors.Is(err, errors.ErrMalformedSpec) {
				t.Errorf("Parse(%q) error = %v, want ErrMalformedSpec", spec, err)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		invert bool
	}{
		{"1:2", "PT1H2M", false},
		{"1:2:3", "PT1H2M3S", false},
		{"00001:00002:000003.0004", "PT1H2M3.0004S", false},
		{"-12:28", "PT12H28M", true},
		{"-00:00:28.5", "PT28.5S", true},
		{"+1:75", "PT1H75M", false},
		{"0:0", "PT0S", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseClock(tt.input)
			if err != nil {
				t.Fatalf("ParseClock(%q) error = %v", tt.input, err)
			}
			if got := d.String(); got != tt.want {
				t.Errorf("ParseClock(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if d.Invert != tt.invert {
				t.Errorf("ParseClock(%q).Invert = %v, want %v", tt.input, d.Invert, tt.invert)
			}
		})
	}
}

func TestParseChrono(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		invert bool
	}{
		{"1:2", "PT1M2S", false},
		{"1:2:3", "PT1H2M3S", false},
		{"00001:00002:000003.0004", "PT1H2M3.0004S", false},
		{"-12:28.5", "PT12M28.5S", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseChrono(tt.input)
			if err != nil {
				t.Fatalf("ParseChrono(%q) error = %v", tt.input, err)
			}
			if got := d.String(); got != tt.want {
				t.Errorf("ParseChrono(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if d.Invert != tt.invert {
				t.Errorf("ParseChrono(%q).Invert = %v, want %v", tt.input, d.Invert, tt.invert)
			}
		})
	}
}

func TestParseClockAndChrono_Malformed(t *testing.T) {
	parsers := map[string]func(string) (Duration, error){
		"clock":  ParseClock,
		"chrono": ParseChrono,
	}
	inputs := []string{"", "123", "foobar", "-28.5", "1:2:3:4", "1:a", "1:2.1234567", "1::2"}

	for name, parse := range parsers {
		for _, input := range inputs {
			t.Run(name+"/"+input, func(t *testing.T) {
				_, err := parse(input)
				if !stderrors.Is(err, errors.ErrMalformedClock) {
					t.Errorf("%s(%q) error = %v, want ErrMalformedClock", name, input, err)
				}
			})
		}
	}
}

func TestFromSeconds(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
		invert  bool
	}{
		{0, "PT0S", false},
		{90, "PT90S", false},
		{90.5, "PT90.5S", false},
		{-3.25, "PT3.25S", true},
		{0.000001, "PT0.000001S", false},
		{4e9, "PT4000000000S", false},
		{-4e9, "PT4000000000S", true},
	}

	for _, tt := range tests {
		d, err := FromSeconds(tt.seconds)
		if err != nil {
			t.Fatalf("FromSeconds(%v) error = %v", tt.seconds, err)
		}
		if got := d.String(); got != tt.want || d.Invert != tt.invert {
			t.Errorf("FromSeconds(%v) = %q invert=%v, want %q invert=%v", tt.seconds, got, d.Invert, tt.want, tt.invert)
		}
	}
}

func TestFromSeconds_OutOfRange(t *testing.T) {
	for _, seconds := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e19, -1e19} {
		if _, err := FromSeconds(seconds); !stderrors.Is(err, errors.ErrUnsupportedDurationInput) {
			t.Errorf("FromSeconds(%v) error = %v, want ErrUnsupportedDurationInput", seconds, err)
		}
	}
}

func TestFromTimeDuration(t *testing.T) {
	d := FromTimeDuration(-(26*time.Hour + 3*time.Minute + 4*time.Second + 5*time.Microsecond))
	if got := d.String(); got != "PT26H3M4.000005S" {
		t.Errorf("FromTimeDuration() = %q", got)
	}
	if !d.Invert {
		t.Error("FromTimeDuration() of a negative value should be inverted")
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       string
		invert     bool
	}{
		{"one week", date(2014, 5, 1), date(2014, 5, 8), "P7D", false},
		{"february", date(2018, 2, 1), date(2018, 3, 1), "P1M", false},
		{"leap february", date(2020, 2, 1), date(2020, 3, 1), "P1M", false},
		{"one year", date(2014, 1, 1), date(2015, 1, 1), "P1Y", false},
		{"end of month", date(2021, 1, 31), date(2021, 3, 1), "P29D", false},
		{
			"every component",
			date(2020, 1, 1),
			time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC),
			"P1Y2M3DT5H6M7S",
			false,
		},
		{
			"microseconds",
			time.Date(2012, 2, 6, 8, 25, 32, 120000, time.UTC),
			time.Date(2012, 2, 6, 8, 25, 32, 130000, time.UTC),
			"PT0.00001S",
			false,
		},
		{"reversed", date(2014, 5, 8), date(2014, 5, 1), "P7D", true},
		{"equal", date(2014, 5, 8), date(2014, 5, 8), "PT0S", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Between(tt.start, tt.end)
			if got := d.String(); got != tt.want {
				t.Errorf("Between() = %q, want %q", got, tt.want)
			}
			if d.Invert != tt.invert {
				t.Errorf("Between().Invert = %v, want %v", d.Invert, tt.invert)
			}
			if got := d.AddTo(tt.start); !got.Equal(tt.end) {
				t.Errorf("Between().AddTo(start) = %v, want %v", got, tt.end)
			}
		})
	}
}

type span struct{ start, end time.Time }

func (s span) Start() time.Time { return s.start }
func (s span) End() time.Time   { return s.end }

func TestFromSpan(t *testing.T) {
	d := FromSpan(span{date(2014, 5, 1), date(2014, 5, 8)})
	if !d.Equal(Duration{Days: 7}) {
		t.Errorf("FromSpan() = %v, want P7D", d)
	}
}

func TestDuration_AddToSubFrom(t *testing.T) {
	start := date(2021, 1, 1)

	if got := MustParse("P1DT1H").AddTo(start); !got.Equal(time.Date(2021, 1, 2, 1, 0, 0, 0, time.UTC)) {
		t.Errorf("AddTo() = %v", got)
	}
	if got := MustParse("P1D").Negate().AddTo(start); !got.Equal(date(2020, 12, 31)) {
		t.Errorf("inverted AddTo() = %v", got)
	}
	if got := MustParse("P1M").SubFrom(start); !got.Equal(date(2020, 12, 1)) {
		t.Errorf("SubFrom() = %v", got)
	}
}

func TestDuration_NegateAbs(t *testing.T) {
	d := MustParse("PT1H")
	if !d.Negate().Invert {
		t.Error("Negate() should set Invert")
	}
	if d.Negate().Negate().Invert {
		t.Error("double Negate() should clear Invert")
	}
	if d.Negate().Abs().Invert {
		t.Error("Abs() should clear Invert")
	}
	if (Duration{}).Negate().Invert {
		t.Error("Negate() of zero should stay non-inverted")
	}
}

func TestDuration_Validate(t *testing.T) {
	tests := []struct {
		name    string
		d       Duration
		wantErr bool
	}{
		{"zero", Duration{}, false},
		{"valid", Duration{Days: 1, Microseconds: 999999}, false},
		{"negative", Duration{Days: -1}, true},
		{"microseconds overflow", Duration{Microseconds: 1_000_000}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.d.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDuration_JSON(t *testing.T) {
	original := Duration{Hours: 12, Minutes: 28, Microseconds: 500000, Invert: true}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"-PT12H28M0.5S"` {
		t.Errorf("Marshal() = %s", data)
	}

	var decoded Duration
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("round trip = %+v, want %+v", decoded, original)
	}

	if err := json.Unmarshal([]byte(`"PT"`), &decoded); !stderrors.Is(err, errors.ErrMalformedSpec) {
		t.Errorf("Unmarshal(PT) error = %v, want ErrMalformedSpec", err)
	}
	if _, err := json.Marshal(Duration{Days: -1}); err == nil {
		t.Error("Marshal() should reject an invalid Duration")
	}
}

func TestDuration_YAML(t *testing.T) {
	type doc struct {
		Step Duration `yaml:"step"`
	}
	original := doc{Step: MustParse("P1Y2M")}

	data, err := yaml.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded doc
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !decoded.Step.Equal(original.Step) {
		t.Errorf("round trip = %v, want %v", decoded.Step, original.Step)
	}
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("-P3D")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(text) != "-P3D" {
		t.Errorf("MarshalText() = %q, want %q", text, "-P3D")
	}
}

func TestDuration_ModelContract(t *testing.T) {
	d := MustParse("P1D")
	if d.TypeName() != "Duration" {
		t.Errorf("TypeName() = %q", d.TypeName())
	}
	if d.Negate().Redacted() != "-P1D" {
		t.Errorf("Redacted() = %q", d.Negate().Redacted())
	}
	if d.IsZero() || !(Duration{}).IsZero() {
		t.Error("IsZero() mismatch")
	}
	if d.Equal("P1D") || d.Equal((*Duration)(nil)) || !d.Equal(&d) {
		t.Error("Equal() mismatch")
	}
}
