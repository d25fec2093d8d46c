package forms

import (
	"strings"
	"unicode/utf8"
)

// FailureKind names a violated validation rule.
type FailureKind string

const (
	FailRequired      FailureKind = "required"
	FailMinLength     FailureKind = "minlength"
	FailMaxLength     FailureKind = "maxlength"
	FailEmailDomain   FailureKind = "emailDomain"
	FailEmailMismatch FailureKind = "emailMismatch"
)

// Validator inspects a node and returns the failure kind it detects, or ""
// when the node is valid. Validators must not mutate the tree.
type Validator func(n *Node) FailureKind

// Required fails on an empty leaf.
func Required(n *Node) FailureKind {
	if n.Value() == "" {
		return FailRequired
	}
	return ""
}

// MinLength fails when a non-empty value has fewer than min characters.
func MinLength(min int) Validator {
	return func(n *Node) FailureKind {
		v := n.Value()
		if v != "" && utf8.RuneCountInString(v) < min {
			return FailMinLength
		}
		return ""
	}
}

// MaxLength fails when the value has more than max characters.
func MaxLength(max int) Validator {
	return func(n *Node) FailureKind {
		if utf8.RuneCountInString(n.Value()) > max {
			return FailMaxLength
		}
		return ""
	}
}

// EmailDomain fails when the text after the last '@' is not domain,
// compared case-insensitively. Empty values pass.
func EmailDomain(domain string) Validator {
	return func(n *Node) FailureKind {
		email := n.Value()
		if email == "" {
			return ""
		}
		got := email[strings.LastIndex(email, "@")+1:]
		if strings.EqualFold(got, domain) {
			return ""
		}
		return FailEmailDomain
	}
}

// EmailsMatch is a group validator comparing the email and confirm children.
// A confirmation the user has not started (pristine and empty) passes.
func EmailsMatch(email, confirm string) Validator {
	return func(g *Node) FailureKind {
		e, c := g.Child(email), g.Child(confirm)
		if e == nil || c == nil {
			return ""
		}
		if e.Value() == c.Value() || (c.Pristine() && c.Value() == "") {
			return ""
		}
		return FailEmailMismatch
	}
}

// RequiredWhen behaves like Required while cond holds for the node and
// passes otherwise. The condition is evaluated on every Validate.
func RequiredWhen(cond func(n *Node) bool) Validator {
	return func(n *Node) FailureKind {
		if !cond(n) {
			return ""
		}
		return Required(n)
	}
}
