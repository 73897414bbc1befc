package main

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-site-diff/internal/config"
	"github.com/deploymenttheory/go-site-diff/internal/logger"
)

func newInitCommand() *cobra.Command {
	var (
		flags  crawlFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "init <before_url> <after_url>",
		Short: "Crawl the before site and write a starter configuration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, found, err := flags.run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			doc := config.Document{
				config.TargetBefore + "_url": args[0],
				config.TargetAfter + "_url":  args[1],
				config.KeyPaths:              sortedPaths(found),
			}
			if err := config.WriteFile(output, doc); err != nil {
				return err
			}

			logger.Infof("Wrote %d paths to %s", len(found), output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "sitediff.yaml", "configuration file to write (TOML when ending in .toml)")
	return cmd
}
