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

package cli

import "fmt"

// PeriodOps lists the operations accepted by Runner.Period. Every operation
// but "length" takes two periods.
var PeriodOps = []string{"intersect", "gap", "merge", "subtract", "diff", "overlaps", "abuts", "contains", "length"}

// Period applies op to the periods written in notation a and, for binary
// operations, b.
func (r *Runner) Period(op string, a, b string) error {
	p, err := r.codec.Parse(a)
	if err != nil {
		return fmt.Errorf("first period: %w", err)
	}

	if op == "length" {
		return r.emitDuration(p.Length())
	}

	o, err := r.codec.Parse(b)
	if err != nil {
		return fmt.Errorf("second period: %w", err)
	}

	r.log.Debug().Str("op", op).Stringer("a", p).Stringer("b", o).Msg("period operation")

	switch op {
	case "intersect":
		shared, err := p.Intersect(o)
		if err != nil {
			return err
		}
		return r.emitPeriod(shared)
	case "gap":
		gap, err := p.Gap(o)
		if err != nil {
			return err
		}
		return r.emitPeriod(gap)
	case "merge":
		return r.emitPeriod(p.Merge(o))
	case "subtract":
		return r.emitSequence(p.Subtract(o))
	case "diff":
		return r.emitSequence(p.Diff(o))
	case "overlaps":
		return r.emitBool(p.Overlaps(o))
	case "abuts":
		return r.emitBool(p.Abuts(o))
	case "contains":
		return r.emitBool(p.ContainsPeriod(o))
	default:
		return fmt.Errorf("unknown period operation %q", op)
	}
}
