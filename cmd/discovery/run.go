/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/exergylab/discovery/agents/agenttrace"
	"github.com/exergylab/discovery/agents/evals"
	"github.com/exergylab/discovery/discovery"
	"github.com/exergylab/discovery/discovery/model"
	"github.com/exergylab/discovery/report"
	"github.com/exergylab/discovery/rubric"
)

func newRunCmd() *cobra.Command {
	var (
		constraints map[string]string
		domains     []string
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "run QUERY",
		Short: "Run one discovery and print its report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req := discovery.Request{
				Query:       strings.Join(args, " "),
				Constraints: constraints,
				Domains:     domains,
			}
			if err := req.Validate(); err != nil {
				return err
			}

			grades := evals.NewNamespacedObserver(func(string) *evals.ResultCollector {
				return evals.NewResultCollector(evals.NewLogObserver(ctx))
			})
			orch, err := newOrchestrator(ctx, cfg, discovery.WithPhaseObservers(func(p model.Phase) evals.Observer {
				return grades.Child(string(p))
			}))
			if err != nil {
				return err
			}

			id := uuid.NewString()
			ctx = agenttrace.WithExecutionContext(ctx, agenttrace.ExecutionContext{DiscoveryID: id})

			events := make(chan discovery.Event, 16)
			drained := make(chan struct{})
			go func() {
				defer close(drained)
				for ev := range events {
					logEvent(cmd, ev)
				}
			}()
			rep, err := orch.Run(ctx, req, events)
			close(events)
			<-drained
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			if err := report.Write(out, rep); err != nil {
				return err
			}
			if table, below := report.Grades(grades, rubric.DefaultSuccessThreshold/rubric.TotalPoints); table != "" {
				fmt.Fprintf(out, "\n## Judged iterations\n\n%s", table)
				if below {
					clog.WarnContextf(ctx, "some phases never reached a passing grade")
				}
			}
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&constraints, "constraint", nil, "constraint as name=value (repeatable)")
	cmd.Flags().StringSliceVar(&domains, "domain", nil, "research domain (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func logEvent(cmd *cobra.Command, ev discovery.Event) {
	log := clog.FromContext(cmd.Context())
	switch ev.Kind {
	case discovery.EventPhaseStarted:
		log.Infof("[%3d%%] %s started", ev.Progress, ev.Phase)
	case discovery.EventIterationJudged:
		log.Infof("[%3d%%] %s iteration %d scored %.2f", ev.Progress, ev.Phase, ev.Iteration, ev.Score)
	case discovery.EventPhaseCompleted:
		log.Infof("[%3d%%] %s completed with %.2f", ev.Progress, ev.Phase, ev.Score)
	case discovery.EventRunFailed:
		log.Warnf("discovery failed: %s", ev.Message)
	}
}
