// Package cli implements the cacheserver command-line entrypoint.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set via ldflags at build time.
	Version = "dev"
	// GitCommit is set via ldflags at build time.
	GitCommit = "unknown"
	// BuildDate is set via ldflags at build time.
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "cacheserver",
	Short:   "tempuscache - an in-memory cache server with TTL and LRU eviction",
	Long:    `cacheserver runs tempuscache, an in-memory key/value cache with bounded capacity, TTL expiry, and an HTTP API.`,
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the root command, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(
		fmt.Sprintf("cacheserver version %s\nGit commit: %s\nBuild date: %s\n", Version, GitCommit, BuildDate),
	)
	rootCmd.AddCommand(serveCmd)
}
