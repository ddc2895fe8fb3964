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

// Package chart draws interval sequences as text Gantt charts.
//
// Every period of a sequence becomes one labelled row. The rows share a
// time axis scaled to the sequence's boundaries, and each bar is drawn with
// the period's own brackets so inclusivity stays visible:
//
//	A [---)
//	B   [-------]
//	C      |
package chart

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"dirpx.dev/dxspan/dxcore/model/interval"
)

// DefaultWidth is the bar area used when Gantt.Width is too small to draw.
const DefaultWidth = 60

// Gantt renders sequences as Gantt charts.
//
// The zero Gantt is ready to use: DefaultWidth columns and LatinLetter
// labels starting at "A".
type Gantt struct {
	// Width is the number of columns of the bar area. Values below 2 mean
	// DefaultWidth.
	Width int

	// Labeler names the rows. Nil means LatinLetter{}.
	Labeler Labeler
}

// Render writes one row per period of seq, in sequence order. An empty
// sequence writes nothing.
//
// A bar runs from the column of its start to the column of its end, both
// rounded onto the axis. A period whose endpoints land on the same column
// is drawn as "|".
func (g Gantt) Render(w io.Writer, seq *interval.Sequence) error {
	envelope, ok := seq.Boundaries()
	if !ok {
		return nil
	}

	width := g.Width
	if width < 2 {
		width = DefaultWidth
	}
	labeler := g.Labeler
	if labeler == nil {
		labeler = LatinLetter{}
	}

	labels := labeler.Labels(seq.Len())
	pad := 0
	for _, l := range labels {
		pad = max(pad, utf8.RuneCountInString(l))
	}

	origin, span := envelope.Start(), envelope.End().Sub(envelope.Start())
	for i, p := range seq.All() {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		if _, err := fmt.Fprintf(w, "%-*s %s\n", pad, label, bar(p, origin, span, width)); err != nil {
			return err
		}
	}
	return nil
}

// column maps t onto [0, width-1].
func column(t, origin time.Time, span time.Duration, width int) int {
	if span <= 0 {
		return 0
	}
	return int(math.Round(float64(t.Sub(origin)) / float64(span) * float64(width-1)))
}

func bar(p interval.Period, origin time.Time, span time.Duration, width int) string {
	from := column(p.Start(), origin, span, width)
	to := column(p.End(), origin, span, width)

	row := []byte(strings.Repeat(" ", to+1))
	if from == to {
		row[from] = '|'
		return string(row)
	}

	row[from] = p.Bounds().StartBracket()
	for i := from + 1; i < to; i++ {
		row[i] = '-'
	}
	row[to] = p.Bounds().EndBracket()
	return string(row)
}
