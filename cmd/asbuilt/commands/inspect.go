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

package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/drawingdeck/asbuilt/cmd/asbuilt/opts"
	"github.com/drawingdeck/asbuilt/pkg/catalog"
	"github.com/drawingdeck/asbuilt/pkg/config"
	"github.com/drawingdeck/asbuilt/pkg/match"
	"github.com/drawingdeck/asbuilt/pkg/schedule"
	"github.com/drawingdeck/asbuilt/pkg/table"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		sampleKeys int
		checkFiles int
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Examine the input tables and preview matching without copying",
		Long: `Inspect is a preflight for a run. It shows the shape of both input
tables, samples the reference column and the section titles, previews the
matching for the first few references, and probes the catalog directory for
the files the register points at. Nothing is copied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "inspect").Logger().WithContext(ctx)

			cfg, err := ro.LoadConfig(ctx)
			if err != nil {
				return err
			}

			refs, err := inspectSchedule(cmd, cfg)
			if err != nil {
				return err
			}
			entries, err := inspectCatalog(cmd, cfg)
			if err != nil {
				return err
			}
			previewMatching(cmd, cfg, refs, entries, sampleKeys)
			checkAvailability(cfg, entries, checkFiles)
			return nil
		},
	}

	cmd.Flags().IntVar(&sampleKeys, "sample-keys", 5, "number of references to preview matching for")
	cmd.Flags().IntVar(&checkFiles, "check-files", 20, "number of register filenames to probe in the catalog directory")

	return cmd
}

func inspectSchedule(cmd *cobra.Command, cfg *config.Config) ([]string, error) {
	ctx := cmd.Context()
	pterm.DefaultSection.Println("Accommodation schedule")

	rows, err := table.Load(ctx, cfg.ScheduleFile)
	if err != nil {
		return nil, err
	}
	pterm.Info.Printfln("%s: %d rows", filepath.Base(cfg.ScheduleFile), len(rows))

	refs := schedule.ExtractReferences(ctx, rows)
	pterm.Info.Printfln("%d unique flat references in column D", len(refs))

	data := pterm.TableData{{"No.", "Flat Reference"}}
	for i, ref := range refs {
		if i == 10 {
			break
		}
		data = append(data, []string{pterm.Sprintf("%d", i+1), ref})
	}
	if len(refs) > 0 {
		_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	} else {
		pterm.Warning.Println("no usable references found; a run would abort here")
	}

	return refs, nil
}

func inspectCatalog(cmd *cobra.Command, cfg *config.Config) ([]catalog.Entry, error) {
	ctx := cmd.Context()
	pterm.DefaultSection.Println("Drawing register")

	rows, err := table.Load(ctx, cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	entries := catalog.Load(ctx, rows, cfg.ExcludeTitles)
	pterm.Info.Printfln("%s: %d rows, %d entries", filepath.Base(cfg.CatalogFile), len(rows), len(entries))

	marker := strings.ToLower(cfg.SectionMarker)
	data := pterm.TableData{{"Filename", "Title"}}
	sections := 0
	for _, e := range entries {
		if !strings.Contains(strings.ToLower(e.Title), marker) {
			continue
		}
		sections++
		if sections <= 10 {
			data = append(data, []string{e.Filename, e.Title})
		}
	}
	pterm.Info.Printfln("%d titles contain %q", sections, cfg.SectionMarker)
	if sections > 0 {
		_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}

	return entries, nil
}

func previewMatching(cmd *cobra.Command, cfg *config.Config, refs []string, entries []catalog.Entry, limit int) {
	ctx := cmd.Context()
	pterm.DefaultSection.Println("Matching preview")

	if limit < len(refs) {
		refs = refs[:limit]
	}
	matcher := match.New(cfg.TitlePrefix, cfg.SectionMarker)

	for _, key := range refs {
		res := matcher.Match(ctx, []string{key}, entries)
		if len(res.Matches) > 0 {
			pterm.Success.Printfln("%q: %d match(es)", key, len(res.Matches))
			for _, m := range res.Matches {
				pterm.Printfln("    %s -> %s", m.Filename, m.Title)
			}
			continue
		}

		pterm.Warning.Printfln("%q: no matches for pattern %q", key, cfg.TitlePrefix+key)
		// Partial hits point at title-format drift rather than missing drawings.
		shown := 0
		for _, e := range entries {
			if strings.Contains(strings.ToLower(e.Title), strings.ToLower(key)) {
				pterm.Printfln("    partial: %s", e.Title)
				shown++
				if shown == 3 {
					break
				}
			}
		}
	}
}

func checkAvailability(cfg *config.Config, entries []catalog.Entry, limit int) {
	pterm.DefaultSection.Println("Catalog directory")

	patterns := make([]string, 0, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		patterns = append(patterns, "**/*"+ext)
	}
	if files, err := catalog.ScanDir(cfg.CatalogDir, patterns); err == nil {
		pterm.Info.Printfln("%s holds %d file(s) with extension(s) %v", cfg.CatalogDir, len(files), cfg.Extensions)
	} else {
		pterm.Error.Printfln("cannot scan %s: %v", cfg.CatalogDir, err)
	}

	seen := make(map[string]bool)
	found, missing := 0, 0
	for _, e := range entries {
		if e.Filename == "" || seen[e.Filename] {
			continue
		}
		seen[e.Filename] = true
		if len(seen) > limit {
			break
		}

		if available(cfg, e.Filename) {
			found++
			pterm.Success.Printfln("found:   %s", e.Filename)
		} else {
			missing++
			pterm.Error.Printfln("missing: %s", e.Filename)
		}
	}

	pterm.Info.Printfln("first %d filename(s): %d found, %d missing", found+missing, found, missing)
	if missing > 0 {
		pterm.Warning.Println("some files may use a different naming convention than the register")
	}
}

func available(cfg *config.Config, filename string) bool {
	for _, ext := range cfg.Extensions {
		candidate := filename
		if !strings.HasSuffix(strings.ToLower(candidate), strings.ToLower(ext)) {
			candidate += ext
		}
		if _, err := os.Stat(filepath.Join(cfg.CatalogDir, candidate)); err == nil {
			return true
		}
	}
	return false
}
