package forms

import "testing"

func TestRemoveAtReleasesTail(t *testing.T) {
	l := NewList(NewGroup(), NewGroup(), NewGroup())
	backing := l.items[:3]
	removed := l.At(1)

	if err := l.RemoveAt(1); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	if backing[2] != nil {
		t.Error("spare slot still references a removed group")
	}
	if removed.Parent() != nil {
		t.Error("removed group still points at the list")
	}
}
