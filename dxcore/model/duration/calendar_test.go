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
	"testing"
	"time"
)

func TestDuration_AdjustedTo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ref   time.Time
		want  string
	}{
		{"nothing to carry over", "PT3H", Epoch, "PT3H"},
		{"hours into days", "PT24H", Epoch, "P1D"},
		{"hours and minutes into days", "PT25H61M", Epoch, "P1DT2H1M"},
		{"days into months", "P31D", Epoch, "P1M"},
		{"months into years", "P12M", Epoch, "P1Y"},
		{"leap year", "P29D", date(2020, 2, 1), "P1M"},
		{"non leap year", "P29D", date(2019, 2, 1), "P1M1D"},
		{"thirty day month", "P31D", date(2019, 4, 1), "P1M1D"},
		{"thirty one day month", "P31D", date(2019, 1, 1), "P1M"},
		{"over a year of days", "P400D", Epoch, "P1Y1M4D"},
		{"zero reference is epoch", "PT24H", time.Time{}, "P1D"},
		{"already normalized", "P1Y1M4D", Epoch, "P1Y1M4D"},
		{"fraction untouched", "PT86400.5S", Epoch, "P1DT0.5S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParse(tt.input).AdjustedTo(tt.ref)
			if got.String() != tt.want {
				t.Errorf("AdjustedTo() = %q, want %q", got, tt.want)
			}
			again := got.AdjustedTo(tt.ref)
			if !again.Equal(got) {
				t.Errorf("AdjustedTo() is not idempotent: %q then %q", got, again)
			}
		})
	}
}

func TestDuration_AdjustedTo_KeepsInvert(t *testing.T) {
	got := MustParse("PT24H").Negate().AdjustedTo(Epoch)
	if got.String() != "P1D" || !got.Invert {
		t.Errorf("AdjustedTo() = %q invert=%v, want P1D inverted", got, got.Invert)
	}
}

func TestDuration_AdjustedTo_DaylightSaving(t *testing.T) {
	brussels, err := time.LoadLocation("Europe/Brussels")
	if err != nil {
		t.Skipf("time zone database unavailable: %v", err)
	}

	spring := time.Date(2019, 3, 31, 0, 0, 0, 0, brussels)
	autumn := time.Date(2019, 10, 27, 0, 0, 0, 0, brussels)
	regular := time.Date(2019, 4, 1, 0, 0, 0, 0, brussels)

	tests := []struct {
		name  string
		input string
		ref   time.Time
		want  string
	}{
		{"short day fills with 23 hours", "PT23H", spring, "P1D"},
		{"short day keeps 4 hours", "PT4H", spring, "PT4H"},
		{"regular day keeps 4 hours", "PT4H", regular, "PT4H"},
		{"regular day keeps 23 hours", "PT23H", regular, "PT23H"},
		{"long day keeps 24 hours", "PT24H", autumn, "PT24H"},
		{"long day fills with 25 hours", "PT25H", autumn, "P1D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MustParse(tt.input).AdjustedTo(tt.ref); got.String() != tt.want {
				t.Errorf("AdjustedTo() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDuration_Normalized(t *testing.T) {
	if got := MustParse("PT48H").Normalized(); got.String() != "P2D" {
		t.Errorf("Normalized() = %q, want P2D", got)
	}
}
