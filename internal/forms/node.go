// Package forms models editable form state as a tree of nodes. A node is
// one of three kinds: a leaf holding a single string value, a group holding
// named children in insertion order, or a list holding structurally
// identical groups. Validators attach to any node; Validate recomputes the
// active failures for a whole tree and Collect turns them into messages.
package forms

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind tags the variant a Node holds.
type Kind uint8

const (
	KindLeaf Kind = iota
	KindGroup
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindGroup:
		return "group"
	case KindList:
		return "list"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is a tagged union over leaf, group and list form state. Only the
// fields that belong to the node's kind are used.
type Node struct {
	kind   Kind
	parent *Node

	touched    bool
	dirty      bool
	validators []Validator
	failures   []FailureKind

	// leaf
	value string

	// group
	names    []string
	children map[string]*Node

	// list
	items []*Node
}

// NewLeaf returns a leaf holding initial.
func NewLeaf(initial string, validators ...Validator) *Node {
	return &Node{kind: KindLeaf, value: initial, validators: validators}
}

// NewGroup returns an empty group. Children are attached with Add.
func NewGroup(validators ...Validator) *Node {
	return &Node{kind: KindGroup, children: make(map[string]*Node), validators: validators}
}

// NewList returns a list holding items, which must be groups.
func NewList(items ...*Node) *Node {
	l := &Node{kind: KindList}
	for _, it := range items {
		l.Append(it)
	}
	return l
}

func (n *Node) Kind() Kind { return n.kind }

// Parent returns the enclosing group or list, nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Root walks up to the top of the tree.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Add attaches child under name and returns the group so builders can chain.
// Names are unique within a group; adding a duplicate panics.
func (n *Node) Add(name string, child *Node) *Node {
	n.mustBe(KindGroup)
	if _, exists := n.children[name]; exists {
		panic(fmt.Sprintf("forms: duplicate field %q", name))
	}
	child.parent = n
	n.names = append(n.names, name)
	n.children[name] = child
	return n
}

// SetControl replaces the child registered under name, keeping its position.
// An unknown name is appended.
func (n *Node) SetControl(name string, child *Node) {
	n.mustBe(KindGroup)
	old, exists := n.children[name]
	if !exists {
		n.Add(name, child)
		return
	}
	old.parent = nil
	child.parent = n
	n.children[name] = child
}

// Names returns the group's field names in insertion order.
func (n *Node) Names() []string {
	return append([]string(nil), n.names...)
}

// Child returns the named child of a group, or nil.
func (n *Node) Child(name string) *Node {
	if n.kind != KindGroup {
		return nil
	}
	return n.children[name]
}

// Len returns the number of list items.
func (n *Node) Len() int { return len(n.items) }

// At returns list item i, or nil when out of range.
func (n *Node) At(i int) *Node {
	if n.kind != KindList || i < 0 || i >= len(n.items) {
		return nil
	}
	return n.items[i]
}

// Append adds item to the end of a list.
func (n *Node) Append(item *Node) {
	n.mustBe(KindList)
	item.parent = n
	n.items = append(n.items, item)
}

// RemoveAt drops list item i; later items shift down by one. Removing does
// not change the touched or dirty flags.
func (n *Node) RemoveAt(i int) error {
	n.mustBe(KindList)
	if i < 0 || i >= len(n.items) {
		return fmt.Errorf("forms: index %d out of range [0,%d)", i, len(n.items))
	}
	n.items[i].parent = nil
	n.items = slices.Delete(n.items, i, i+1)
	return nil
}

// Get resolves a dotted path such as "emailGroup.email" or
// "skills.0.skillName". It returns nil when any segment does not resolve.
func (n *Node) Get(path string) *Node {
	if path == "" {
		return n
	}
	cur := n
	for _, seg := range strings.Split(path, ".") {
		switch cur.kind {
		case KindGroup:
			cur = cur.children[seg]
		case KindList:
			i, err := strconv.Atoi(seg)
			if err != nil {
				return nil
			}
			cur = cur.At(i)
		default:
			return nil
		}
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Value returns a leaf's current value; groups and lists return "".
func (n *Node) Value() string {
	if n.kind != KindLeaf {
		return ""
	}
	return n.value
}

// SetValue replaces a leaf's value programmatically. Flags are unchanged.
func (n *Node) SetValue(v string) {
	n.mustBe(KindLeaf)
	n.value = v
}

// Input records a value typed by the user: the leaf becomes dirty.
func (n *Node) Input(v string) {
	n.SetValue(v)
	n.dirty = true
}

func (n *Node) MarkTouched() { n.touched = true }
func (n *Node) MarkDirty()   { n.dirty = true }

// MarkAllTouched marks n and every descendant touched.
func (n *Node) MarkAllTouched() {
	walk(n, "", "", func(_ string, _ string, c *Node) { c.touched = true })
}

// Touched reports whether the node or any descendant was touched.
func (n *Node) Touched() bool {
	return n.any(func(c *Node) bool { return c.touched })
}

// Dirty reports whether the node or any descendant was changed by the user.
func (n *Node) Dirty() bool {
	return n.any(func(c *Node) bool { return c.dirty })
}

func (n *Node) Pristine() bool { return !n.Dirty() }

// Failures returns the failure kinds recorded by the last Validate, in
// validator order.
func (n *Node) Failures() []FailureKind {
	return append([]FailureKind(nil), n.failures...)
}

// HasFailure reports whether kind is among the node's own failures.
func (n *Node) HasFailure(kind FailureKind) bool {
	for _, f := range n.failures {
		if f == kind {
			return true
		}
	}
	return false
}

// Valid reports whether neither the node nor any descendant has failures.
func (n *Node) Valid() bool {
	return !n.any(func(c *Node) bool { return len(c.failures) > 0 })
}

// Validate recomputes failures for the whole subtree, children before their
// parents, so group validators observe up to date children.
func (n *Node) Validate() {
	switch n.kind {
	case KindGroup:
		for _, name := range n.names {
			n.children[name].Validate()
		}
	case KindList:
		for _, it := range n.items {
			it.Validate()
		}
	}
	n.failures = n.failures[:0]
	for _, v := range n.validators {
		if kind := v(n); kind != "" {
			n.failures = append(n.failures, kind)
		}
	}
}

func (n *Node) any(pred func(*Node) bool) bool {
	if pred(n) {
		return true
	}
	switch n.kind {
	case KindGroup:
		for _, name := range n.names {
			if n.children[name].any(pred) {
				return true
			}
		}
	case KindList:
		for _, it := range n.items {
			if it.any(pred) {
				return true
			}
		}
	}
	return false
}

func (n *Node) mustBe(k Kind) {
	if n.kind != k {
		panic(fmt.Sprintf("forms: %s operation on %s node", k, n.kind))
	}
}

// VisitFunc is called once per node by walk with the node's dotted path and
// the field name used for message lookup.
type VisitFunc func(path, name string, n *Node)

// walk visits n and then its descendants depth first, groups in insertion
// order and lists by index. List items are visited under their list's name.
func walk(n *Node, path, name string, fn VisitFunc) {
	fn(path, name, n)
	switch n.kind {
	case KindGroup:
		for _, child := range n.names {
			walk(n.children[child], join(path, child), child, fn)
		}
	case KindList:
		for i, it := range n.items {
			walk(it, join(path, strconv.Itoa(i)), name, fn)
		}
	}
}

func join(path, seg string) string {
	if path == "" {
		return seg
	}
	return path + "." + seg
}
