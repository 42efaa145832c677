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

package run_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drawingdeck/asbuilt/pkg/config"
	"github.com/drawingdeck/asbuilt/pkg/log"
	"github.com/drawingdeck/asbuilt/pkg/materialize"
	"github.com/drawingdeck/asbuilt/pkg/run"
)

func testCtx(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func testConsole() *log.Logger {
	return log.New(io.Discard, zerolog.Nop())
}

// setupRun lays out a complete working directory: schedule CSV, register CSV
// and a catalog directory with drawings F1.pdf and F3.pdf. F2 appears in the
// register but has no file on disk.
func setupRun(t *testing.T) *config.Config {
	t.Helper()
	tmpDir := t.TempDir()

	scheduleFile := filepath.Join(tmpDir, "schedule.csv")
	scheduleData := "Block,Level,Plot,Flat / House Ref\n" +
		"A,00,1,HT A 1B2P\n" +
		"A,00,2,HT B 2B3P\n" +
		"A,01,3,HT C 9Z9Z\n"
	require.NoError(t, os.WriteFile(scheduleFile, []byte(scheduleData), 0644), "writing schedule fixture")

	catalogFile := filepath.Join(tmpDir, "register.csv")
	catalogData := "Filename,Drawing Title\n" +
		"F1,Sections - HT A 1B2P - Block 3\n" +
		"F2,Sections - HT B 2B3P\n" +
		"F3,Sections - HT Z 0B0P\n" +
		"F9,Elevations - HT B 2B3P\n"
	require.NoError(t, os.WriteFile(catalogFile, []byte(catalogData), 0644), "writing register fixture")

	catalogDir := filepath.Join(tmpDir, "architect")
	require.NoError(t, os.MkdirAll(catalogDir, 0755), "creating catalog dir")
	require.NoError(t, os.WriteFile(filepath.Join(catalogDir, "F1.pdf"), []byte("f1"), 0644), "writing F1")
	require.NoError(t, os.WriteFile(filepath.Join(catalogDir, "F3.pdf"), []byte("f3"), 0644), "writing F3")

	return &config.Config{
		ScheduleFile:  scheduleFile,
		CatalogFile:   catalogFile,
		CatalogDir:    catalogDir,
		OutputDir:     filepath.Join(tmpDir, "processed"),
		DrawingType:   "sections",
		TitlePrefix:   "Sections - ",
		SectionMarker: "Sections",
		Extensions:    []string{".pdf"},
	}
}

func TestNewValidation(t *testing.T) {
	_, err := run.New(run.Options{Console: testConsole()})
	require.Error(t, err, "missing config should fail")

	_, err = run.New(run.Options{Config: &config.Config{}})
	require.Error(t, err, "missing console should fail")
}

func TestRunEndToEnd(t *testing.T) {
	cfg := setupRun(t)
	p, err := run.New(run.Options{Config: cfg, Console: testConsole()})
	require.NoError(t, err, "creating processor")

	results, err := p.Run(testCtx(t))
	require.NoError(t, err, "run should complete")

	assert.Equal(t, []string{"HT A 1B2P", "HT B 2B3P", "HT C 9Z9Z"}, results.Refs, "all schedule keys extracted in order")
	assert.Equal(t, 3, results.Stats.Processed, "processed counter")
	assert.Equal(t, 2, results.Stats.Matched, "matched counter")
	assert.Equal(t, 1, results.Stats.NotFound, "not-found counter")
	assert.Equal(t, 1, results.Stats.CopyErrors, "missing source counts as a copy error")
	assert.Equal(t, []string{"HT C 9Z9Z"}, results.UnmatchedKeys, "unmatched key recorded")

	require.Len(t, results.Outcomes, 2, "one outcome per match")
	assert.Equal(t, materialize.StatusCopied, results.Outcomes[0].Status, "F1 copy succeeds")
	assert.Equal(t, materialize.StatusSourceMissing, results.Outcomes[1].Status, "F2 source is absent")

	content, err := os.ReadFile(filepath.Join(cfg.OutputDir, "HT A 1B2P", "sections_HTA1B2P_F1.pdf"))
	require.NoError(t, err, "copied file should exist under the key folder")
	assert.Equal(t, "f1", string(content), "content preserved")

	unused := results.UnusedSections()
	require.Len(t, unused, 1, "one section entry is never claimed")
	assert.Equal(t, "F3", unused[0].Filename, "unused section filename")
}

func TestRunStatsSuccessRate(t *testing.T) {
	cfg := setupRun(t)
	p, err := run.New(run.Options{Config: cfg, Console: testConsole()})
	require.NoError(t, err, "creating processor")

	results, err := p.Run(testCtx(t))
	require.NoError(t, err, "run should complete")

	assert.InDelta(t, 66.67, results.Stats.SuccessRate(), 0.01, "2 of 3 keys matched")
	assert.Zero(t, run.Stats{}.SuccessRate(), "empty stats rate is zero, not NaN")
}

func TestRunDryRun(t *testing.T) {
	cfg := setupRun(t)
	p, err := run.New(run.Options{Config: cfg, Console: testConsole(), DryRun: true})
	require.NoError(t, err, "creating processor")

	results, err := p.Run(testCtx(t))
	require.NoError(t, err, "dry run should complete")

	assert.Equal(t, 2, results.Stats.Matched, "matching still happens")
	assert.Empty(t, results.Outcomes, "nothing is materialized")
	assert.True(t, results.DryRun, "dry-run flag carried into results")

	_, err = os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(err), "output tree must not be created")
}

func TestRunNoReferences(t *testing.T) {
	cfg := setupRun(t)
	require.NoError(t, os.WriteFile(cfg.ScheduleFile, []byte("Block,Level,Plot,Flat / House Ref\n"), 0644), "emptying schedule")

	p, err := run.New(run.Options{Config: cfg, Console: testConsole()})
	require.NoError(t, err, "creating processor")

	_, err = p.Run(testCtx(t))
	require.ErrorIs(t, err, run.ErrNoReferences, "empty schedule aborts the run")
}

func TestRunNoMatches(t *testing.T) {
	cfg := setupRun(t)
	require.NoError(t, os.WriteFile(cfg.CatalogFile, []byte("Filename,Drawing Title\nF9,Elevations - HT B 2B3P\n"), 0644), "register without section titles")

	p, err := run.New(run.Options{Config: cfg, Console: testConsole()})
	require.NoError(t, err, "creating processor")

	results, err := p.Run(testCtx(t))
	require.NoError(t, err, "zero matches is not a fatal error")

	assert.Equal(t, 3, results.Stats.NotFound, "all keys unmatched")
	assert.Empty(t, results.Matches, "no match records")
	assert.Empty(t, results.Outcomes, "nothing materialized")
}

func TestRunMissingSchedule(t *testing.T) {
	cfg := setupRun(t)
	cfg.ScheduleFile = filepath.Join(t.TempDir(), "nope.csv")

	p, err := run.New(run.Options{Config: cfg, Console: testConsole()})
	require.NoError(t, err, "creating processor")

	_, err = p.Run(testCtx(t))
	require.Error(t, err, "unreadable schedule aborts the run")
	assert.Contains(t, err.Error(), "loading schedule table", "error should name the stage")
}

func TestResultsAccessors(t *testing.T) {
	cfg := setupRun(t)
	p, err := run.New(run.Options{Config: cfg, Console: testConsole()})
	require.NoError(t, err, "creating processor")

	results, err := p.Run(testCtx(t))
	require.NoError(t, err, "run should complete")

	assert.Len(t, results.Succeeded(), 1, "one successful copy")
	assert.Len(t, results.Missing(), 1, "one missing source")
	assert.Empty(t, results.CopyFailures(), "no hard copy failures")

	copied := results.CopiedFor("HT A 1B2P")
	require.Len(t, copied, 1, "one file copied for the key")
	assert.Equal(t, "sections_HTA1B2P_F1.pdf", copied[0].NewFilename, "derived name")
	assert.Empty(t, results.CopiedFor("HT C 9Z9Z"), "unmatched key has no copies")
}
