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

import (
	"fmt"
	"io"

	"dirpx.dev/dxspan/dxcore/model"
	"dirpx.dev/dxspan/dxcore/model/duration"
	"dirpx.dev/dxspan/dxcore/model/interval"
	"gopkg.in/yaml.v3"
)

// SequenceOps lists the operations accepted by Runner.Sequence.
var SequenceOps = []string{"unions", "gaps", "intersections", "sort", "boundaries", "total", "chart"}

// sequenceDocument is the input of the sequence command. JSON input is read
// through the YAML decoder.
//
//	periods:
//	  - "[2021-01-01, 2021-01-05)"
//	  - startDate: 2021-01-07T00:00:00Z
//	    endDate: 2021-01-09T00:00:00Z
//	    bounds: "[]"
type sequenceDocument struct {
	Periods []yaml.Node `yaml:"periods"`
}

// ReadSequence decodes a sequence document. Notation items are parsed with
// the runner's codec, mapping items use the Period wire form and null items
// are skipped.
func (r *Runner) ReadSequence(in io.Reader) (*interval.Sequence, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("cannot read sequence: %w", err)
	}

	var doc sequenceDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot decode sequence: %w", err)
	}

	periods := make([]interval.Period, 0, len(doc.Periods))
	for i := range doc.Periods {
		node := &doc.Periods[i]

		var p interval.Period
		switch {
		case node.ShortTag() == "!!null":
			// blank entry, left zero and dropped below
		case node.Kind == yaml.ScalarNode:
			p, err = r.codec.Parse(node.Value)
		default:
			err = node.Decode(&p)
		}
		if err != nil {
			return nil, fmt.Errorf("periods[%d] (line %d): %w", i, node.Line, err)
		}
		periods = append(periods, p)
	}
	seq := interval.NewSequence(model.FilterZero(periods)...)

	r.log.Debug().Int("periods", seq.Len()).Msg("sequence loaded")
	return seq, nil
}

// Sequence applies op to the sequence read from in. The chart operation
// always writes text, whatever the output format.
func (r *Runner) Sequence(op string, in io.Reader) error {
	seq, err := r.ReadSequence(in)
	if err != nil {
		return err
	}

	r.log.Debug().Str("op", op).Msg("sequence operation")

	switch op {
	case "unions":
		return r.emitSequence(seq.Unions())
	case "gaps":
		return r.emitSequence(seq.Gaps())
	case "intersections":
		return r.emitSequence(seq.Intersections())
	case "sort":
		return r.emitSequence(seq.Sorted(nil))
	case "boundaries":
		p, ok := seq.Boundaries()
		if !ok {
			return fmt.Errorf("boundaries: the sequence is empty")
		}
		return r.emitPeriod(p)
	case "total":
		return r.emitDuration(duration.FromTimeDuration(seq.TotalTimeDuration()))
	case "chart":
		return r.gantt.Render(r.out, seq)
	default:
		return fmt.Errorf("unknown sequence operation %q", op)
	}
}
