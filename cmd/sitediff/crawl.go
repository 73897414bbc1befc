package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-site-diff/internal/crawler"
	"github.com/deploymenttheory/go-site-diff/internal/logger"
	"github.com/deploymenttheory/go-site-diff/internal/storage"
)

type crawlFlags struct {
	depth     int
	workers   int
	delay     int
	userAgent string
}

func (f *crawlFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.depth, "depth", "d", crawler.DefaultDepth, "maximum crawl depth")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", crawler.DefaultWorkers, "maximum concurrent requests")
	cmd.Flags().IntVarP(&f.delay, "delay", "D", 0, "delay between requests in milliseconds")
	cmd.Flags().StringVarP(&f.userAgent, "user-agent", "A", "", "User-Agent header sent with each request")
}

func (f *crawlFlags) run(ctx context.Context, baseURL string) (*crawler.Crawler, map[string][]byte, error) {
	c, err := crawler.New(baseURL,
		crawler.WithWorkers(f.workers),
		crawler.WithDelay(time.Duration(f.delay)*time.Millisecond),
		crawler.WithUserAgent(f.userAgent),
	)
	if err != nil {
		return nil, nil, err
	}

	found, err := c.Crawl(ctx, f.depth)
	if err != nil {
		return nil, nil, fmt.Errorf("crawl %s: %w", baseURL, err)
	}
	return c, found, nil
}

func newCrawlCommand() *cobra.Command {
	var (
		flags  crawlFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "crawl <url>",
		Short: "Discover the paths reachable from a base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, found, err := flags.run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			paths := sortedPaths(found)
			rows := make([][]string, 0, len(paths))
			for _, p := range paths {
				status, size := "absent", "-"
				if body := found[p]; body != nil {
					status, size = "fetched", strconv.Itoa(len(body))
				}
				rows = append(rows, []string{p, status, size})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Path", "Status", "Bytes"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))

			stats := c.Stats()
			logger.Infof("Crawl completed in %v", stats.Duration)
			logger.Infof("Paths found: %d", stats.PathsFound)
			logger.Infof("Pages fetched: %d", stats.PagesFetched)
			logger.Infof("Fetch errors: %d", stats.FetchErrors)
			logger.Infof("Links skipped: %d", stats.LinksSkipped)

			if output == "" {
				return nil
			}
			var store storage.Storage = storage.New(output, args[0])
			for _, p := range paths {
				if err := store.Store(storage.NewPage(p, c.PageURL(p).String(), found[p])); err != nil {
					return fmt.Errorf("store %s: %w", p, err)
				}
			}
			if err := store.Close(); err != nil {
				return err
			}
			logger.Infof("Snapshot saved to: %s", output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write a JSON snapshot (gzip when ending in .gz)")
	return cmd
}

func sortedPaths(found map[string][]byte) []string {
	paths := make([]string, 0, len(found))
	for p := range found {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
