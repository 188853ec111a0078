/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/exergylab/discovery/agents/agenttrace"
)

// AttributeEnricher adds contextual attributes to the base attributes
// (model, provider) an executor records with every request.
type AttributeEnricher func(ctx context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue

var _ AttributeEnricher = PhaseEnricher

// PhaseEnricher labels metrics with the discovery phase and refinement
// iteration carried by ctx.
func PhaseEnricher(ctx context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue {
	return agenttrace.GetExecutionContext(ctx).EnrichAttributes(baseAttrs)
}
