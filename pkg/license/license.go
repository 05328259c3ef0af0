// Package license classifies free-form license text into a closed set of
// license types using fixed signature phrases. This is a best-effort
// heuristic over common boilerplate, not an SPDX-grade matcher.
package license

import "strings"

// Type is a closed enumeration of the license kinds licenseer recognizes.
type Type int

// Declaration order is the match precedence: Classify returns the first type
// whose signature is found, so a BSD variant carrying overlapping boilerplate
// still classifies as BSD. Do not reorder.
const (
	BSD Type = iota
	MIT
	ISC
	Zlib
	Apache
)

// Types returns all known types in match-precedence order.
func Types() []Type {
	return []Type{BSD, MIT, ISC, Zlib, Apache}
}

// String returns the canonical display name of the type.
func (t Type) String() string {
	switch t {
	case BSD:
		return "BSD"
	case MIT:
		return "MIT"
	case ISC:
		return "ISC"
	case Zlib:
		return "Zlib"
	case Apache:
		return "Apache"
	default:
		return "Unknown"
	}
}

// Parse maps a case-insensitive type name to its Type.
func Parse(s string) (Type, bool) {
	for _, t := range Types() {
		if strings.EqualFold(s, t.String()) {
			return t, true
		}
	}
	return 0, false
}

// signatures returns the literal phrases, in normalized form, that identify
// the type. A single hit on any phrase is conclusive.
func (t Type) signatures() []string {
	switch t {
	case BSD:
		return []string{
			"redistribution and use in source and binary forms",
			"redistributions of source code must retain the above copyright",
		}
	case MIT:
		return []string{
			"permission is hereby granted, free of charge, to any person",
			"the mit license",
		}
	case ISC:
		return []string{
			"permission to use, copy, modify, and/or distribute this software for any purpose",
			"the isc license",
		}
	case Zlib:
		return []string{
			"the origin of this software must not be misrepresented",
			"altered source versions must be plainly marked as such",
		}
	case Apache:
		return []string{
			"licensed under the apache license",
			"www.apache.org/licenses/license-2.0",
			"apache license version 2.0",
		}
	default:
		return nil
	}
}

// Normalize lowercases text and collapses every whitespace run, including
// newlines, to a single space. Report verification uses the same form, so a
// reflowed report still matches.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Classify returns the first type whose any signature phrase occurs in the
// normalized text, or nil when nothing matches. It is total: any input,
// including the empty string, yields a result without error.
func Classify(text string) *Type {
	normalized := Normalize(text)
	for _, t := range Types() {
		for _, sig := range t.signatures() {
			if strings.Contains(normalized, sig) {
				matched := t
				return &matched
			}
		}
	}
	return nil
}
