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

// Package run sequences the extraction pipeline: load tables, extract
// references, match, materialize. One run, one thread, one Results value.
package run

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/drawingdeck/asbuilt/pkg/catalog"
	"github.com/drawingdeck/asbuilt/pkg/config"
	"github.com/drawingdeck/asbuilt/pkg/log"
	"github.com/drawingdeck/asbuilt/pkg/match"
	"github.com/drawingdeck/asbuilt/pkg/materialize"
	"github.com/drawingdeck/asbuilt/pkg/schedule"
	"github.com/drawingdeck/asbuilt/pkg/table"
)

// 🛑 ErrNoReferences aborts a run whose schedule yields zero usable keys
var ErrNoReferences = errors.New("no flat references found in schedule")

// 🔧 Options contains configuration for the processor
type Options struct {
	// Config is the asbuilt configuration
	Config *config.Config
	// Console is the user-facing logger
	Console *log.Logger
	// DryRun matches without touching the filesystem
	DryRun bool
}

// 🎮 Processor owns one run of the pipeline
type Processor struct {
	cfg     *config.Config
	console *log.Logger
	dryRun  bool
}

// 🏭 New creates a processor with the given options
func New(opts Options) (*Processor, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Console == nil {
		return nil, errors.Errorf("console logger is required")
	}
	return &Processor{
		cfg:     opts.Config,
		console: opts.Console,
		dryRun:  opts.DryRun,
	}, nil
}

// 🏃 Run executes the pipeline and returns the accumulated results.
//
// Fatal conditions (unreadable tables, zero references) come back as errors.
// Per-match failures never do; they land in Results as outcome values and
// the run continues.
func (p *Processor) Run(ctx context.Context) (*Results, error) {
	logger := zerolog.Ctx(ctx)

	results := &Results{
		GeneratedAt:  time.Now(),
		ScheduleFile: p.cfg.ScheduleFile,
		CatalogFile:  p.cfg.CatalogFile,
		DrawingType:  p.cfg.DrawingType,
		DryRun:       p.dryRun,
	}

	// Stage 1: extract references.
	scheduleRows, err := table.Load(ctx, p.cfg.ScheduleFile)
	if err != nil {
		return nil, errors.Errorf("loading schedule table: %w", err)
	}
	results.Refs = schedule.ExtractReferences(ctx, scheduleRows)
	if len(results.Refs) == 0 {
		return nil, ErrNoReferences
	}

	// Stage 2: match against the register.
	catalogRows, err := table.Load(ctx, p.cfg.CatalogFile)
	if err != nil {
		return nil, errors.Errorf("loading catalog table: %w", err)
	}
	entries := catalog.Load(ctx, catalogRows, p.cfg.ExcludeTitles)

	matcher := match.New(p.cfg.TitlePrefix, p.cfg.SectionMarker)
	matched := matcher.Match(ctx, results.Refs, entries)
	results.Matches = matched.Matches
	results.UnmatchedKeys = matched.UnmatchedKeys
	results.Sections = matched.AllSections

	results.Stats.Processed = len(results.Refs)
	results.Stats.Matched = len(results.Matches)
	results.Stats.NotFound = len(results.UnmatchedKeys)

	p.logPartialMatches(ctx, matched.UnmatchedKeys, entries)

	if len(results.Matches) == 0 {
		p.console.Warning("no matches found")
		return results, nil
	}

	// Stage 3: materialize each match, strictly in order.
	if p.dryRun {
		p.console.Info("dry run: no files will be copied")
		return results, nil
	}

	mat := materialize.New(p.cfg.CatalogDir, p.cfg.OutputDir, p.cfg.DrawingType, p.cfg.Extensions)
	for _, m := range results.Matches {
		outcome := mat.Materialize(ctx, m)
		results.Outcomes = append(results.Outcomes, outcome)
		if outcome.Status != materialize.StatusCopied {
			results.Stats.CopyErrors++
		}
		p.console.LogCopyOperation(ctx, log.CopyOperation{
			Key:         outcome.Key,
			Filename:    outcome.Filename,
			NewFilename: outcome.NewFilename,
			Status:      outcome.Status.String(),
			IsMissing:   outcome.Status == materialize.StatusSourceMissing,
			IsFailed:    outcome.Status == materialize.StatusCopyError,
		})
	}

	logger.Info().
		Int("processed", results.Stats.Processed).
		Int("matched", results.Stats.Matched).
		Int("not_found", results.Stats.NotFound).
		Int("copy_errors", results.Stats.CopyErrors).
		Msg("run complete")

	return results, nil
}

// 🔍 logPartialMatches emits debug hints for unmatched keys whose bare text
// does appear somewhere in the register, which usually means a title-format
// drift rather than a missing drawing.
func (p *Processor) logPartialMatches(ctx context.Context, unmatched []string, entries []catalog.Entry) {
	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	for _, key := range unmatched {
		lowered := strings.ToLower(key)
		count := 0
		for _, e := range entries {
			if strings.Contains(strings.ToLower(e.Title), lowered) {
				logger.Debug().Str("key", key).Str("title", e.Title).Msg("partial match")
				count++
				if count == 3 {
					break
				}
			}
		}
	}
}
