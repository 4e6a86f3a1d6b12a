// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/linkresolver/internal/fetch"
	"github.com/pdiddy/linkresolver/internal/links"
	"github.com/pdiddy/linkresolver/internal/page"
	"github.com/pdiddy/linkresolver/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render [query]",
	Short: "Render one results page to stdout or a file",
	Long: `Render performs a single page view without a server: it forwards the
OpenURL query string (for example "rft.genre=article&rft.issn=0028-0836") to
the backend, waits up to the render timeout, and writes the HTML page.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, err := loadCitation(cfg)
	if err != nil {
		return err
	}

	var query url.Values
	if len(args) == 1 {
		query, err = url.ParseQuery(strings.TrimPrefix(args[0], "?"))
		if err != nil {
			return fmt.Errorf("parsing query %q: %w", args[0], err)
		}
	}

	client := links.NewClient(cfg, logger)
	hook := fetch.NewHook(fetch.FetcherFunc(func(ctx context.Context) ([]types.LinkRecord, error) {
		return client.Fetch(ctx, query)
	}))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	hook.Trigger(ctx)

	waitCtx, waitCancel := context.WithTimeout(ctx, cfg.RenderTimeout)
	defer waitCancel()
	st := hook.Wait(waitCtx)
	if st.Loading() {
		logger.Warn("render timeout reached before links arrived", zap.Duration("render_timeout", cfg.RenderTimeout))
	} else if st.Phase == fetch.PhaseError {
		logger.Warn("link fetch failed", zap.String("error", st.Error))
	}

	out, _ := cmd.Flags().GetString("out")
	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}
	if err := page.Render(w, page.Compose(rec, st)); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	if out != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
	}
	return nil
}

func init() {
	renderCmd.Flags().String("out", "", "write the page to this file instead of stdout")

	rootCmd.AddCommand(renderCmd)
}
