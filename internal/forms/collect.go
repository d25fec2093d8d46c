package forms

import "strings"

// Messages maps a field name to the text shown for each failure kind.
type Messages map[string]map[FailureKind]string

// Lookup returns the message for field and kind, falling back to the kind
// itself so no failure is shown blank.
func (m Messages) Lookup(field string, kind FailureKind) string {
	if msg, ok := m[field][kind]; ok {
		return msg
	}
	return string(kind)
}

// Collect walks every descendant of root and returns the messages for the
// failing ones, keyed by dotted path. A leaf the user has neither touched nor
// changed and whose value is still "" is skipped, so blank forms do not open
// with "required" errors. The result is built from scratch on every call and
// holds only non-empty messages.
func Collect(root *Node, messages Messages) map[string]string {
	out := make(map[string]string)
	walk(root, "", "", func(path, name string, n *Node) {
		if n == root || n.Valid() || pristineBlank(n) {
			return
		}
		var parts []string
		for _, kind := range n.failures {
			parts = append(parts, messages.Lookup(name, kind))
		}
		if len(parts) > 0 {
			out[path] = strings.Join(parts, " ")
		}
	})
	return out
}

func pristineBlank(n *Node) bool {
	return n.kind == KindLeaf && !n.Touched() && !n.Dirty() && n.value == ""
}
