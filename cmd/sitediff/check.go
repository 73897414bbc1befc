package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-site-diff/internal/config"
	"github.com/deploymenttheory/go-site-diff/internal/logger"
)

func newCheckCommand() *cobra.Command {
	var (
		flags     crawlFlags
		pathsFile string
		crawl     bool
	)

	cmd := &cobra.Command{
		Use:   "check <config>...",
		Short: "Load, merge and validate configuration files",
		Long: `Loads the configuration files in order, resolving their includes, validates
the merged result and prints it as YAML.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := config.New(args)
			if err != nil {
				return err
			}

			if pathsFile != "" {
				paths, err := readPathsFile(pathsFile)
				if err != nil {
					return err
				}
				engine.SetPaths(paths)
			}

			if crawl && len(engine.Paths()) == 0 && engine.Before().URL() != "" {
				logger.Infof("No paths configured, crawling %s", engine.Before().URL())
				_, found, err := flags.run(cmd.Context(), engine.Before().URL())
				if err != nil {
					return err
				}
				engine.SetPaths(sortedPaths(found))
			}

			if err := engine.Validate(); err != nil {
				return err
			}

			out, err := yaml.Marshal(engine.Config().Map())
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&pathsFile, "paths-file", "P", "", "file with one path per line, replacing configured paths")
	cmd.Flags().BoolVar(&crawl, "crawl", false, "crawl the before URL when no paths are configured")
	return cmd
}

func readPathsFile(name string) ([]string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read paths file: %w", err)
	}

	var paths []string
	for _, line := range strings.SplitAfter(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		paths = append(paths, line)
	}
	return paths, nil
}
