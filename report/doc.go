/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package report renders discovery reports as Markdown tables for the
// terminal.
package report
