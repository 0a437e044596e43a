// Package classify implements rule-based clause classification. Each clause
// type carries a set of case-insensitive trigger phrases; the type with the
// most distinct trigger matches wins, with ties broken by a fixed priority
// order. Classification is a pure function over an immutable rules table, so
// identical text always produces identical results.
package classify

import (
	"encoding/json"
	"slices"
)

// Type is a fixed clause category label.
type Type string

// Clause types, in tie-break priority order (highest first).
const (
	Termination          Type = "Termination"
	Confidentiality      Type = "Confidentiality"
	Liability            Type = "Liability"
	IntellectualProperty Type = "IP"
	GoverningLaw         Type = "GoverningLaw"
	Notice               Type = "Notice"
	Assignment           Type = "Assignment"
	Payment              Type = "Payment"
	Other                Type = "Other"
)

// priority is the total order over clause types used to resolve tied match
// counts. Earlier entries win.
var priority = []Type{
	Termination,
	Confidentiality,
	Liability,
	IntellectualProperty,
	GoverningLaw,
	Notice,
	Assignment,
	Payment,
	Other,
}

// Types returns all clause types in priority order.
func Types() []Type {
	return slices.Clone(priority)
}

// Valid reports whether t is a known clause type.
func (t Type) Valid() bool {
	return slices.Contains(priority, t)
}

// Title returns the display heading for a clause of this type.
func (t Type) Title() string {
	switch t {
	case Termination:
		return "Termination Clause"
	case Confidentiality:
		return "Confidentiality Clause"
	case Liability:
		return "Liability Clause"
	case IntellectualProperty:
		return "Intellectual Property Clause"
	case GoverningLaw:
		return "Governing Law Clause"
	case Notice:
		return "Notice Clause"
	case Assignment:
		return "Assignment Clause"
	case Payment:
		return "Payment Clause"
	default:
		return "Other"
	}
}

// UnmarshalJSON validates that the decoded string is a known clause type.
func (t *Type) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Type(raw)
	if !v.Valid() {
		return ErrUnknownType
	}
	*t = v
	return nil
}
