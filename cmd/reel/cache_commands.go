package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reel/internal/api"
	"reel/internal/app"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear the lookup caches",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheKeysCommand(ctx))
	cacheCmd.AddCommand(newCacheInvalidateCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List caches with their entry counts and locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			resp := api.CacheListResponse{}
			for _, cache := range application.Caches() {
				resp.Caches = append(resp.Caches, api.FromStats(cache.Stats()))
			}
			return emit(cmd, ctx, resp, func(out io.Writer) error {
				rows := make([][]string, 0, len(resp.Caches))
				for _, status := range resp.Caches {
					rows = append(rows, []string{status.Name, strconv.Itoa(status.Entries), status.Path})
				}
				fmt.Fprintln(out, renderTable(out, []string{"Cache", "Entries", "Path"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
				return nil
			})
		},
	}
}

func newCacheKeysCommand(ctx *commandContext) *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "keys <movies|geo>",
		Short: "List the keys stored in a cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			keys, err := application.MatchKeys(args[0], match)
			if err != nil {
				return err
			}
			resp := api.CacheKeysResponse{Name: strings.ToLower(strings.TrimSpace(args[0])), Keys: keys}
			return emit(cmd, ctx, resp, func(out io.Writer) error {
				for _, key := range keys {
					fmt.Fprintln(out, key)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&match, "match", "m", "", "Glob pattern keys must match (for example \"The *\")")
	return cmd
}

func newCacheInvalidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate <movies|geo|all>",
		Short: "Delete a cache file so later lookups fetch again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			targets, err := invalidationTargets(application, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, cache := range targets {
				if err := cache.Invalidate(); err != nil {
					return fmt.Errorf("invalidate %s cache: %w", cache.Name(), err)
				}
				if ctx.output() == outputTable {
					fmt.Fprintf(out, "Cleared %s cache\n", cache.Name())
				}
			}
			if ctx.output() == outputTable {
				return nil
			}
			resp := api.CacheListResponse{}
			for _, cache := range targets {
				resp.Caches = append(resp.Caches, api.FromStats(cache.Stats()))
			}
			return emit(cmd, ctx, resp, nil)
		},
	}
}

func invalidationTargets(application *app.App, name string) ([]app.CacheAdmin, error) {
	if strings.EqualFold(strings.TrimSpace(name), "all") {
		return application.Caches(), nil
	}
	cache, err := application.Cache(name)
	if err != nil {
		return nil, err
	}
	return []app.CacheAdmin{cache}, nil
}
