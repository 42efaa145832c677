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

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// 📦 versionInfo describes the running binary, resolved once from the
// embedded build info so the version command and the report metadata agree
type versionInfo struct {
	Version   string
	Revision  string
	Built     string
	Modified  bool
	GoVersion string
	Platform  string
}

// 🏭 resolveVersion reads the module version and VCS stamps from build info
func resolveVersion() versionInfo {
	v := versionInfo{
		Version:   "dev",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	if bi.Main.Version != "" {
		v.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			v.Revision = s.Value
		case "vcs.time":
			v.Built = s.Value
		case "vcs.modified":
			v.Modified = s.Value == "true"
		}
	}
	return v
}

// 📝 Short returns the compact form stamped into report workbooks:
// version plus an abbreviated revision, with a dirty marker when the
// build tree had local changes.
func (v versionInfo) Short() string {
	s := v.Version
	if rev := v.Revision; rev != "" {
		if len(rev) > 12 {
			rev = rev[:12]
		}
		s += "+" + rev
	}
	if v.Modified {
		s += "-dirty"
	}
	return s
}

// 📝 String renders the full multi-line form for the version command
func (v versionInfo) String() string {
	built := v.Built
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("asbuilt %s\n  built:    %s\n  go:       %s\n  platform: %s\n",
		v.Short(), built, v.GoVersion, v.Platform)
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), resolveVersion().String())
		},
	}
}
