package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "stocknews %s\n", versionInfo.Version)
		fmt.Fprintf(out, "  commit:     %s\n", versionInfo.Commit)
		fmt.Fprintf(out, "  built:      %s\n", versionInfo.BuildDate)
		fmt.Fprintf(out, "  go version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
