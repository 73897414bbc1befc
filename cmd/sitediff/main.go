package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-site-diff/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logger.Errorf("Error executing command: %v", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sitediff",
		Short: "Compare a before and after version of a website",
		Long: `sitediff loads before/after site configurations, merging any included
files, and crawls sites to discover the paths worth comparing.`,
		PersistentPreRun: setupLogging,
		SilenceUsage:     true,
		SilenceErrors:    true,
	}

	// Logging flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose debugging output")
	rootCmd.PersistentFlags().Bool("color", false, "force colored output even when not writing to a terminal")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("log-file", "", "log to file instead of stdout")

	rootCmd.AddCommand(newCheckCommand(), newCrawlCommand(), newInitCommand())
	return rootCmd
}

// setupLogging configures the logger based on command line flags
func setupLogging(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logger.LevelDebug)
		logger.Infof("Debug logging enabled")
	} else {
		logger.SetLevel(logger.LevelInfo)
	}

	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logger.Errorf("Failed to open log file: %v", err)
		} else {
			logger.SetOutput(file)
			logger.Infof("Logging to file: %s", logFile)
		}
	}

	// Applied after SetOutput, which turns colors off for non-terminals.
	color, _ := cmd.Flags().GetBool("color")
	noColor, _ := cmd.Flags().GetBool("no-color")
	switch {
	case noColor:
		logger.DisableColors()
	case color:
		logger.EnableColors()
	}
}
