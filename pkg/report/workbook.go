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

// Package report renders run results: a multi-sheet workbook artifact and a
// console summary. It is a pure reader of Results; it never matches, copies,
// or mutates statistics.
package report

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"

	"github.com/drawingdeck/asbuilt/pkg/run"
)

// Sheet names, one per report section
const (
	sheetSummary      = "Summary"
	sheetProcessed    = "Successfully Processed"
	sheetNoMatches    = "No Matches Found"
	sheetNotFound     = "Files Not Found"
	sheetCopyErrors   = "Copy Errors"
	sheetUnused       = "Unused Section Files"
	sheetAllRefs      = "All Flat References"
	sheetAllSections  = "All Section Files"
	sheetSummaryByRef = "Summary by Flat Ref"
	sheetInfo         = "Report Info"
)

// 📝 Filename returns the timestamped workbook name for a run started at t
func Filename(t time.Time) string {
	return fmt.Sprintf("processing_report_%s.xlsx", t.Format("20060102_150405"))
}

// 🎯 Write writes the full report workbook to path. A failure here is a
// run-level error; completed copies are never undone because of it.
func Write(ctx context.Context, path, version string, data *run.Results) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("writing report workbook")

	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the summary so the workbook opens on it.
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return errors.Errorf("renaming summary sheet: %w", err)
	}

	type section struct {
		name    string
		headers []string
		rows    [][]any
	}
	sections := []section{
		{sheetSummary, []string{"Metric", "Value"}, summaryRows(data)},
		{sheetProcessed,
			[]string{"Flat Reference", "Original Filename", "New Filename", "Title", "Source Path", "Destination Path", "Destination Folder"},
			processedRows(data)},
		{sheetNoMatches, []string{"Flat Reference", "Reason"}, noMatchRows(data)},
		{sheetNotFound,
			[]string{"Flat Reference", "Title", "Filename", "Expected Path", "Reason"},
			notFoundRows(data)},
		{sheetCopyErrors,
			[]string{"Flat Reference", "Title", "Filename", "Source Path", "Error"},
			copyErrorRows(data)},
		{sheetUnused, []string{"Filename", "Title", "Status"}, unusedRows(data)},
		{sheetAllRefs, []string{"No.", "Flat Reference", "Status", "Files Copied"}, allRefRows(data)},
		{sheetAllSections, []string{"No.", "Filename", "Title", "Status"}, allSectionRows(data)},
		{sheetSummaryByRef,
			[]string{"Flat Reference", "Files Copied", "Status", "Output Folder"},
			summaryByRefRows(data)},
		{sheetInfo, []string{"Report Information", "Value"}, infoRows(version, data)},
	}

	for _, s := range sections {
		if err := writeSheet(f, s.name, s.headers, s.rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Errorf("saving report workbook: %w", err)
	}

	logger.Info().Str("path", path).Msg("report workbook written")
	return nil
}

// 📝 writeSheet writes one header row plus data rows to a sheet, creating it
// if needed. Sections with no rows still get their header row.
func writeSheet(f *excelize.File, name string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return errors.Errorf("creating sheet %s: %w", name, err)
	}

	hdr := make([]any, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &hdr); err != nil {
		return errors.Errorf("writing header of %s: %w", name, err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Errorf("computing cell for %s: %w", name, err)
		}
		if err := f.SetSheetRow(name, cell, &rows[i]); err != nil {
			return errors.Errorf("writing row of %s: %w", name, err)
		}
	}
	return nil
}

func summaryRows(data *run.Results) [][]any {
	succeeded := len(data.Succeeded())
	rate := 0.0
	if len(data.Refs) > 0 {
		rate = math.Round(float64(succeeded)/float64(len(data.Refs))*1000) / 10
	}
	return [][]any{
		{"Total Flat References in Schedule", len(data.Refs)},
		{"Total Section Files in Register", len(data.Sections)},
		{"Successful Matches and Copies", succeeded},
		{"Flat References with No Matches", len(data.UnmatchedKeys)},
		{"Matches Found but Files Missing", len(data.Missing())},
		{"Copy Errors", len(data.CopyFailures())},
		{"Unused Section Files", len(data.UnusedSections())},
		{"Overall Success Rate (%)", rate},
	}
}

func processedRows(data *run.Results) [][]any {
	var rows [][]any
	for _, o := range data.Succeeded() {
		rows = append(rows, []any{o.Key, o.Filename, o.NewFilename, o.Title, o.SourcePath, o.DestPath, o.DestDir})
	}
	return rows
}

func noMatchRows(data *run.Results) [][]any {
	var rows [][]any
	for _, key := range data.UnmatchedKeys {
		rows = append(rows, []any{key, "No matching section title in drawing register"})
	}
	return rows
}

func notFoundRows(data *run.Results) [][]any {
	var rows [][]any
	for _, o := range data.Missing() {
		rows = append(rows, []any{o.Key, o.Title, o.Filename, o.SourcePath, o.Reason})
	}
	return rows
}

func copyErrorRows(data *run.Results) [][]any {
	var rows [][]any
	for _, o := range data.CopyFailures() {
		rows = append(rows, []any{o.Key, o.Title, o.Filename, o.SourcePath, o.Reason})
	}
	return rows
}

func unusedRows(data *run.Results) [][]any {
	var rows [][]any
	for _, s := range data.UnusedSections() {
		rows = append(rows, []any{s.Filename, s.Title, "UNUSED"})
	}
	return rows
}

func allRefRows(data *run.Results) [][]any {
	var rows [][]any
	for i, ref := range data.Refs {
		copied := len(data.CopiedFor(ref))
		status := "NOT PROCESSED"
		if copied > 0 {
			status = "PROCESSED"
		}
		rows = append(rows, []any{i + 1, ref, status, copied})
	}
	return rows
}

func allSectionRows(data *run.Results) [][]any {
	var rows [][]any
	for i, s := range data.Sections {
		status := "UNUSED"
		if s.Used {
			status = "USED"
		}
		rows = append(rows, []any{i + 1, s.Filename, s.Title, status})
	}
	return rows
}

func summaryByRefRows(data *run.Results) [][]any {
	var rows [][]any
	for _, ref := range data.Refs {
		files := data.CopiedFor(ref)
		status := "NO MATCH"
		folder := "N/A"
		if len(files) > 0 {
			status = "SUCCESS"
			folder = files[0].DestDir
		}
		rows = append(rows, []any{ref, len(files), status, folder})
	}
	return rows
}

func infoRows(version string, data *run.Results) [][]any {
	return [][]any{
		{"Generated Date/Time", data.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Tool Version", version},
		{"Document Type Processed", data.DrawingType},
		{"Source Tables", fmt.Sprintf("%s, %s", filepath.Base(data.ScheduleFile), filepath.Base(data.CatalogFile))},
	}
}
