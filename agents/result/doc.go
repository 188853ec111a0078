/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package result extracts JSON payloads from model responses.

Models asked for JSON frequently wrap it in a markdown fence or surround it
with commentary. ExtractJSON finds the payload and Extract unmarshals it:

	research, err := result.Extract[model.Research](responseText)

Phase generators that accept several response shapes extract into
json.RawMessage and normalize afterwards.
*/
package result
