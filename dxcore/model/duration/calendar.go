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

import "time"

// Epoch is the reference datepoint used when none is given: the Unix epoch
// in UTC.
var Epoch = time.Unix(0, 0).UTC()

// AdjustedTo returns d with its components carried over into the largest
// units the calendar around ref supports. Microseconds and Invert are left
// unchanged. A zero ref means Epoch.
//
// Carry-over runs once per unit, finest first, and measures every unit
// where it actually falls:
//
//  1. Hours, minutes and seconds are pooled. While the pool holds at least
//     the length of the current day (23, 24 or 25 hours around a daylight
//     saving shift), one day is moved into Days and the working datepoint
//     advances by one day. The rest is split back into clock components.
//  2. While Days holds at least the number of days of the current month,
//     that many days become one month and the working month advances.
//  3. Every 12 months become one year.
//
// The working datepoint starts at ref shifted by the coarser components
// already present, so an adjusted duration is a fixed point:
// d.AdjustedTo(r).AdjustedTo(r) equals d.AdjustedTo(r).
//
//	P31D  at 2019-01-01  ->  P1M
//	P31D  at 2019-04-01  ->  P1M1D
//	PT23H at 2019-03-31 Europe/Brussels  ->  P1D
func (d Duration) AdjustedTo(ref time.Time) Duration {
	if ref.IsZero() {
		ref = Epoch
	}
	out := d

	pool := int64(d.Hours)*3600 + int64(d.Minutes)*60 + int64(d.Seconds)
	day := ref.AddDate(d.Years, d.Months, d.Days)
	for {
		next := day.AddDate(0, 0, 1)
		length := int64(next.Sub(day) / time.Second)
		if pool < length {
			break
		}
		pool -= length
		out.Days++
		day = next
	}
	out.Hours = int(pool / 3600)
	out.Minutes = int(pool % 3600 / 60)
	out.Seconds = int(pool % 60)

	anchor := ref.AddDate(out.Years, out.Months, 0)
	month := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	for {
		n := daysIn(month)
		if out.Days < n {
			break
		}
		out.Days -= n
		out.Months++
		month = month.AddDate(0, 1, 0)
	}

	out.Years += out.Months / 12
	out.Months %= 12

	return out
}

// Normalized returns d adjusted to Epoch.
func (d Duration) Normalized() Duration {
	return d.AdjustedTo(Epoch)
}

// daysIn returns the number of days of the calendar month of t.
func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
