package cli

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// buildInfo is stamped by main from its ldflags.
type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

var build = buildInfo{Version: "dev", Commit: "none", Date: "unknown"}

// readModuleVersion reports the module version recorded by `go install`.
var readModuleVersion = func() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		return bi.Main.Version
	}
	return ""
}

// SetVersionInfo records the ldflags values. A dev build installed with
// `go install` picks up its module version instead.
func SetVersionInfo(version, commit, date string) {
	if version == "dev" || version == "" {
		if mv := readModuleVersion(); mv != "" && mv != "(devel)" {
			version = mv
		}
	}
	build = buildInfo{Version: version, Commit: commit, Date: date}
}

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the version, commit, build date and toolchain of this mosdef binary.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), build.Version)
				return
			}
			writeVersion(cmd.OutOrStdout(), build)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}

func writeVersion(w io.Writer, b buildInfo) {
	rows := [][2]string{
		{"commit", b.Commit},
		{"built", b.Date},
		{"go", runtime.Version()},
		{"os/arch", runtime.GOOS + "/" + runtime.GOARCH},
	}
	fmt.Fprintf(w, "mosdef %s\n", formatVersion(b.Version))
	for _, r := range rows {
		fmt.Fprintf(w, "%s: %s\n", r[0], r[1])
	}
}

// formatVersion adds the v prefix to release versions.
func formatVersion(v string) string {
	if v == "" || v == "dev" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
