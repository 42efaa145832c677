// Copyright 2025 drawingdeck
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package run

import (
	"time"

	"github.com/drawingdeck/asbuilt/pkg/match"
	"github.com/drawingdeck/asbuilt/pkg/materialize"
)

// 📊 Stats are the run counters. They are derived during the run and never
// mutated afterwards.
type Stats struct {
	Processed  int // Flat references processed
	Matched    int // Match records found
	NotFound   int // References with zero matches
	CopyErrors int // Missing sources plus failed copies
}

// 📈 SuccessRate is Matched over Processed as a percentage
func (s Stats) SuccessRate() float64 {
	if s.Processed == 0 {
		return 0
	}
	return float64(s.Matched) / float64(s.Processed) * 100
}

// 📦 Results is the explicit accumulator for one run: every stage writes
// into it, the reporter only reads from it. There is no other run state.
type Results struct {
	Refs          []string              // All extracted flat references, in order
	Matches       []match.Record        // All match records
	UnmatchedKeys []string              // References with no matching title
	Sections      []match.SectionEntry  // Section-flagged register entries with used state
	Outcomes      []materialize.Outcome // One outcome per match, in match order
	Stats         Stats

	// Run metadata for the report artifact
	GeneratedAt  time.Time
	ScheduleFile string
	CatalogFile  string
	DrawingType  string
	DryRun       bool
}

// ✅ Succeeded returns the outcomes of completed copies
func (r *Results) Succeeded() []materialize.Outcome {
	return r.outcomesWith(materialize.StatusCopied)
}

// 🔍 Missing returns the outcomes whose source file was absent
func (r *Results) Missing() []materialize.Outcome {
	return r.outcomesWith(materialize.StatusSourceMissing)
}

// ❌ CopyFailures returns the outcomes of failed copies
func (r *Results) CopyFailures() []materialize.Outcome {
	return r.outcomesWith(materialize.StatusCopyError)
}

func (r *Results) outcomesWith(status materialize.Status) []materialize.Outcome {
	var out []materialize.Outcome
	for _, o := range r.Outcomes {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// 📂 CopiedFor returns the successful outcomes for one flat reference
func (r *Results) CopiedFor(key string) []materialize.Outcome {
	var out []materialize.Outcome
	for _, o := range r.Outcomes {
		if o.Key == key && o.Status == materialize.StatusCopied {
			out = append(out, o)
		}
	}
	return out
}

// 🔍 UnusedSections returns the section entries never claimed by any key
func (r *Results) UnusedSections() []match.SectionEntry {
	var out []match.SectionEntry
	for _, s := range r.Sections {
		if !s.Used {
			out = append(out, s)
		}
	}
	return out
}
