// ABOUTME: Version command to display build information
// ABOUTME: Shows version, commit hash, build date, and Go runtime
package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	Go:      runtime.Version(),
}

// VersionInfo contains build information
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// SetVersion records the values injected by the linker
func SetVersion(version, commit, date string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.Date = date
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), versionInfo)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Tubewise %s (%s, %s/%s)\n", versionInfo.Version, versionInfo.Go, runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(w, "Commit: %s\n", versionInfo.Commit)
			fmt.Fprintf(w, "Built:  %s\n", versionInfo.Date)
			return nil
		},
	}
}
