/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/chainguard-dev/terraform-infra-common/pkg/httpmetrics"
	"github.com/spf13/cobra"

	"github.com/exergylab/discovery/server"
)

func newServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the discovery API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if port == 0 {
				port = cfg.Port
			}

			orch, err := newOrchestrator(ctx, cfg)
			if err != nil {
				return err
			}
			srv, err := server.New(ctx, orch,
				server.WithMaxConcurrentRuns(cfg.MaxConcurrentRuns),
				server.WithMetricsPath(cfg.MetricsPath),
				server.WithAllowedOrigins(cfg.CORSAllowedOrigins...),
			)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			go httpmetrics.ScrapeDiskUsage(ctx)

			hs := &http.Server{
				Addr:              fmt.Sprintf(":%d", port),
				Handler:           httpmetrics.Handler("discovery", srv.Handler()),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				<-ctx.Done()
				clog.InfoContextf(ctx, "Shutting down server")
				sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
				defer cancel()
				if err := hs.Shutdown(sctx); err != nil {
					clog.WarnContextf(ctx, "shutdown: %v", err)
				}
			}()

			clog.InfoContextf(ctx, "Starting discovery server on port %d with model %s", port, cfg.DiscoveryModel)
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			srv.Wait()
			return nil
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default $PORT)")
	return cmd
}
