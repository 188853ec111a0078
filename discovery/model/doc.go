/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package model defines the structured output of every discovery phase.
//
// Models answer in loosely shaped JSON: a list where an object was asked for,
// a number written as "12.5%", a field under a synonym. The UnmarshalJSON
// methods in this package accept those variants and produce one canonical
// shape, so rubric scorers only ever see strongly typed values. Normalize
// methods then trim, deduplicate and fill identifiers after decoding.
package model
