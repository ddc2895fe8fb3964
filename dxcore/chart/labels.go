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

package chart

import (
	"strconv"
	"strings"
)

// LetterCase selects the case of alphabetic labels.
type LetterCase int

const (
	// Upper writes "A", "B" or "IV". It is the zero value.
	Upper LetterCase = iota

	// Lower writes "a", "b" or "iv".
	Lower
)

// IsUpper reports whether c is Upper.
func (c LetterCase) IsUpper() bool {
	return c == Upper
}

func (c LetterCase) apply(s string) string {
	if c == Lower {
		return strings.ToLower(s)
	}
	return s
}

// Labeler names the rows of a chart.
type Labeler interface {
	// Labels returns n labels, one per row.
	Labels(n int) []string
}

// LatinLetter labels rows "A", "B", ..., "Z", "AA", "AB", ... from Start.
type LatinLetter struct {
	// Start is the first label. Empty or non-alphabetic means "A".
	Start string
	Case  LetterCase
}

// Labels implements Labeler.
func (l LatinLetter) Labels(n int) []string {
	cur := strings.ToUpper(l.Start)
	if !isLatin(cur) {
		cur = "A"
	}

	labels := make([]string, 0, max(n, 0))
	for range n {
		labels = append(labels, l.Case.apply(cur))
		cur = nextLatin(cur)
	}
	return labels
}

func isLatin(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// nextLatin increments s like a spreadsheet column: "Z" becomes "AA".
func nextLatin(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 'Z' {
			b[i]++
			return string(b)
		}
		b[i] = 'A'
	}
	return "A" + string(b)
}

// DecimalNumber labels rows "1", "2", ... from Start.
type DecimalNumber struct {
	// Start is the first number. Values below 1 mean 1.
	Start int
}

// Labels implements Labeler.
func (d DecimalNumber) Labels(n int) []string {
	start := max(d.Start, 1)
	labels := make([]string, 0, max(n, 0))
	for i := range n {
		labels = append(labels, strconv.Itoa(start+i))
	}
	return labels
}

// RomanNumber labels rows "I", "II", ... from Start.
type RomanNumber struct {
	// Start is the first number. Values below 1 mean 1.
	Start int
	Case  LetterCase
}

// Labels implements Labeler.
func (r RomanNumber) Labels(n int) []string {
	start := max(r.Start, 1)
	labels := make([]string, 0, max(n, 0))
	for i := range n {
		labels = append(labels, r.Case.apply(roman(start+i)))
	}
	return labels
}

var numerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	var b strings.Builder
	for _, num := range numerals {
		for n >= num.value {
			b.WriteString(num.symbol)
			n -= num.value
		}
	}
	return b.String()
}
