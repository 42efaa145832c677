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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/drawingdeck/asbuilt/cmd/asbuilt/opts"
	"github.com/drawingdeck/asbuilt/pkg/log"
	"github.com/drawingdeck/asbuilt/pkg/report"
	"github.com/drawingdeck/asbuilt/pkg/run"
)

// NewRunCmd creates the run command
func NewRunCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		outputDir string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Match references against the register and copy the drawings",
		Long: `Run executes the full pipeline:
1. Extract flat references from the accommodation schedule
2. Match them against drawing titles in the register
3. Copy each matched drawing into the output tree, renamed
4. Write a multi-sheet report and a console summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "run").Logger().WithContext(ctx)

			cfg, err := ro.LoadConfig(ctx)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = filepath.Clean(outputDir)
			}

			console := log.New(cmd.OutOrStdout(), *zerolog.Ctx(ctx))
			console.Header("matching schedule references against the drawing register")

			proc, err := run.New(run.Options{Config: cfg, Console: console, DryRun: dryRun})
			if err != nil {
				return err
			}

			results, err := proc.Run(ctx)
			if err != nil {
				if errors.Is(err, run.ErrNoReferences) {
					console.Error("no flat references found in schedule; nothing to do")
				}
				return errors.Errorf("running extraction: %w", err)
			}

			if dryRun {
				for _, m := range results.Matches {
					console.Infof("would copy %s into %s/", m.Filename, m.Key)
				}
			}

			report.Summary(cmd.OutOrStdout(), results)

			if !dryRun {
				if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
					return errors.Errorf("creating report directory: %w", err)
				}
				path := filepath.Join(cfg.ReportDir, report.Filename(results.GeneratedAt))
				if err := report.Write(ctx, path, ro.Version, results); err != nil {
					// Copies already made stand regardless of the report.
					console.Errorf("report not written: %v", err)
					return errors.Errorf("writing report: %w", err)
				}
				console.Successf("report written: %s", path)
			}

			console.Success("processing completed")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "override the output directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "match and report without copying any files")

	return cmd
}
