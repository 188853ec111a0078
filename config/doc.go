/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package config reads the discovery service configuration from the
// environment with go-envconfig.
//
//	cfg, err := config.Load(ctx)
//	if err != nil {
//		clog.FatalContextf(ctx, "loading config: %v", err)
//	}
//	if err := cfg.ResolveProject(ctx); err != nil {
//		clog.FatalContextf(ctx, "resolving project: %v", err)
//	}
//	creds := cfg.Credentials(cfg.Limiter())
package config
