package forms_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/csg33k/employee-registry/internal/forms"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func emailGroup() *forms.Node {
	return forms.NewGroup(forms.EmailsMatch("email", "confirmEmail")).
		Add("email", forms.NewLeaf("", forms.Required, forms.EmailDomain("domain.com"))).
		Add("confirmEmail", forms.NewLeaf("", forms.Required))
}

func failures(v forms.Validator, value string) forms.FailureKind {
	n := forms.NewLeaf(value)
	return v(n)
}

var testMessages = forms.Messages{
	"fullName": {
		forms.FailRequired:  "Full Name is required.",
		forms.FailMinLength: "Full Name must be greater than 2 characters.",
	},
	"email":      {forms.FailRequired: "Email is required."},
	"emailGroup": {forms.FailEmailMismatch: "Email and Confirm Email do not match."},
	"skillName":  {forms.FailRequired: "Skill Name is required."},
}

// ---------------------------------------------------------------------------
// Validators
// ---------------------------------------------------------------------------

func TestEmailDomain(t *testing.T) {
	v := forms.EmailDomain("domain.com")
	cases := []struct {
		in   string
		want forms.FailureKind
	}{
		{"", ""},
		{"user@Domain.com", ""},
		{"user@DOMAIN.COM", ""},
		{"user@other.com", forms.FailEmailDomain},
		{"no-at-sign", forms.FailEmailDomain},
		{"a@b@domain.com", ""},
	}
	for _, tc := range cases {
		if got := failures(v, tc.in); got != tc.want {
			t.Errorf("EmailDomain(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLengthBounds(t *testing.T) {
	min, max := forms.MinLength(2), forms.MaxLength(15)
	fifteen := strings.Repeat("a", 15)
	cases := []struct {
		in      string
		wantMin forms.FailureKind
		wantMax forms.FailureKind
	}{
		{"A", forms.FailMinLength, ""},
		{"Al", "", ""},
		{fifteen, "", ""},
		{fifteen + "b", "", forms.FailMaxLength},
		{"", "", ""},
		{"Zoë", "", ""},
	}
	for _, tc := range cases {
		if got := failures(min, tc.in); got != tc.wantMin {
			t.Errorf("MinLength(2)(%q) = %q, want %q", tc.in, got, tc.wantMin)
		}
		if got := failures(max, tc.in); got != tc.wantMax {
			t.Errorf("MaxLength(15)(%q) = %q, want %q", tc.in, got, tc.wantMax)
		}
	}
}

func TestRequired(t *testing.T) {
	if got := failures(forms.Required, ""); got != forms.FailRequired {
		t.Errorf("empty: got %q", got)
	}
	if got := failures(forms.Required, " "); got != "" {
		t.Errorf("space: got %q", got)
	}
}

func TestEmailsMatch(t *testing.T) {
	t.Run("equal values", func(t *testing.T) {
		g := emailGroup()
		g.Get("email").Input("a@domain.com")
		g.Get("confirmEmail").Input("a@domain.com")
		g.Validate()
		if g.HasFailure(forms.FailEmailMismatch) {
			t.Fatal("equal emails reported as mismatch")
		}
	})
	t.Run("unequal values", func(t *testing.T) {
		g := emailGroup()
		g.Get("email").Input("a@domain.com")
		g.Get("confirmEmail").Input("b@domain.com")
		g.Validate()
		if !g.HasFailure(forms.FailEmailMismatch) {
			t.Fatal("expected emailMismatch")
		}
	})
	t.Run("confirm not started", func(t *testing.T) {
		g := emailGroup()
		g.Get("email").Input("a@domain.com")
		g.Validate()
		if g.HasFailure(forms.FailEmailMismatch) {
			t.Fatal("pristine empty confirmation should pass")
		}
	})
	t.Run("confirm cleared by user", func(t *testing.T) {
		g := emailGroup()
		g.Get("email").Input("a@domain.com")
		g.Get("confirmEmail").Input("")
		g.Validate()
		if !g.HasFailure(forms.FailEmailMismatch) {
			t.Fatal("dirty empty confirmation should mismatch")
		}
	})
}

func TestRequiredWhen(t *testing.T) {
	on := false
	leaf := forms.NewLeaf("", forms.RequiredWhen(func(*forms.Node) bool { return on }))
	leaf.Validate()
	if !leaf.Valid() {
		t.Fatal("condition off: want valid")
	}
	on = true
	leaf.Validate()
	if !leaf.HasFailure(forms.FailRequired) {
		t.Fatal("condition on: want required")
	}
	on = false
	leaf.Validate()
	if len(leaf.Failures()) != 0 {
		t.Fatalf("condition off again: stale failures %v", leaf.Failures())
	}
}

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

func TestGroupPreservesOrderAndRejectsDuplicates(t *testing.T) {
	g := forms.NewGroup().
		Add("b", forms.NewLeaf("")).
		Add("a", forms.NewLeaf("")).
		Add("c", forms.NewLeaf(""))
	if diff := cmp.Diff([]string{"b", "a", "c"}, g.Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate Add did not panic")
		}
	}()
	g.Add("a", forms.NewLeaf(""))
}

func TestSetControlKeepsPosition(t *testing.T) {
	g := forms.NewGroup().
		Add("name", forms.NewLeaf("")).
		Add("items", forms.NewList(forms.NewGroup())).
		Add("tail", forms.NewLeaf(""))
	replacement := forms.NewList(forms.NewGroup(), forms.NewGroup(), forms.NewGroup())
	g.SetControl("items", replacement)

	if g.Get("items") != replacement || g.Get("items").Len() != 3 {
		t.Fatal("list not replaced")
	}
	if replacement.Parent() != g {
		t.Fatal("replacement parent not set")
	}
	if diff := cmp.Diff([]string{"name", "items", "tail"}, g.Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
}

func TestListRemoveAtShifts(t *testing.T) {
	mk := func(v string) *forms.Node { return forms.NewGroup().Add("v", forms.NewLeaf(v)) }
	l := forms.NewList(mk("a"), mk("b"), mk("c"))
	if err := l.RemoveAt(1); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 2 || l.Get("1.v").Value() != "c" {
		t.Fatalf("after remove: len=%d second=%q", l.Len(), l.Get("1.v").Value())
	}
	if l.Dirty() || l.Touched() {
		t.Fatal("RemoveAt must not flip flags by itself")
	}
	if err := l.RemoveAt(5); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestGetPaths(t *testing.T) {
	root := forms.NewGroup().
		Add("emailGroup", emailGroup()).
		Add("skills", forms.NewList(forms.NewGroup().Add("skillName", forms.NewLeaf("go"))))
	if root.Get("emailGroup.email") == nil {
		t.Error("emailGroup.email unresolved")
	}
	if got := root.Get("skills.0.skillName").Value(); got != "go" {
		t.Errorf("skills.0.skillName = %q", got)
	}
	for _, p := range []string{"missing", "skills.x", "skills.1.skillName", "emailGroup.email.deeper"} {
		if root.Get(p) != nil {
			t.Errorf("Get(%q) resolved, want nil", p)
		}
	}
	if root.Get("skills.0.skillName").Root() != root {
		t.Error("Root did not reach top")
	}
}

func TestFlagsPropagateUpward(t *testing.T) {
	root := forms.NewGroup().Add("emailGroup", emailGroup())
	if root.Dirty() || root.Touched() {
		t.Fatal("fresh tree not pristine")
	}
	root.Get("emailGroup.email").Input("x")
	if !root.Dirty() || !root.Get("emailGroup").Dirty() {
		t.Fatal("dirty did not propagate")
	}
	if root.Get("emailGroup.confirmEmail").Dirty() {
		t.Fatal("sibling became dirty")
	}
	root.Get("emailGroup.email").SetValue("y")
	if root.Get("emailGroup.confirmEmail").Touched() {
		t.Fatal("SetValue touched a sibling")
	}
}

// ---------------------------------------------------------------------------
// Collector
// ---------------------------------------------------------------------------

func TestCollectSkipsPristineBlankFields(t *testing.T) {
	root := forms.NewGroup().
		Add("fullName", forms.NewLeaf("", forms.Required)).
		Add("emailGroup", emailGroup())
	root.Validate()
	if got := forms.Collect(root, testMessages); len(got) != 0 {
		t.Fatalf("blank form produced messages: %v", got)
	}

	root.Get("fullName").MarkTouched()
	root.Validate()
	want := map[string]string{"fullName": "Full Name is required."}
	if diff := cmp.Diff(want, forms.Collect(root, testMessages)); diff != "" {
		t.Fatalf("messages (-want +got):\n%s", diff)
	}
}

func TestCollectJoinsMessagesAndRecursesIntoGroups(t *testing.T) {
	root := forms.NewGroup().
		Add("fullName", forms.NewLeaf("", forms.MinLength(2), forms.EmailDomain("x.com"))).
		Add("emailGroup", emailGroup())
	root.Get("fullName").Input("A")
	root.Get("emailGroup.email").Input("a@domain.com")
	root.Get("emailGroup.confirmEmail").Input("b@domain.com")
	root.Validate()

	want := map[string]string{
		"fullName":   "Full Name must be greater than 2 characters. emailDomain",
		"emailGroup": "Email and Confirm Email do not match.",
	}
	if diff := cmp.Diff(want, forms.Collect(root, testMessages)); diff != "" {
		t.Fatalf("messages (-want +got):\n%s", diff)
	}
}

func TestCollectIsIdempotent(t *testing.T) {
	root := forms.NewGroup().
		Add("fullName", forms.NewLeaf("", forms.Required))
	root.Get("fullName").MarkTouched()
	root.Validate()
	first := forms.Collect(root, testMessages)
	second := forms.Collect(root, testMessages)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second call differs (-first +second):\n%s", diff)
	}
	if first["fullName"] != "Full Name is required." {
		t.Fatalf("message accumulated: %q", first["fullName"])
	}
}

func TestCollectDescendsIntoLists(t *testing.T) {
	skill := func() *forms.Node {
		return forms.NewGroup().Add("skillName", forms.NewLeaf("", forms.Required))
	}
	root := forms.NewGroup().Add("skills", forms.NewList(skill(), skill()))
	root.Get("skills.1.skillName").MarkTouched()
	root.Validate()

	want := map[string]string{"skills.1.skillName": "Skill Name is required."}
	if diff := cmp.Diff(want, forms.Collect(root, testMessages)); diff != "" {
		t.Fatalf("messages (-want +got):\n%s", diff)
	}
}

func TestCollectDoesNotSuppressNonEmptyPristineValues(t *testing.T) {
	root := forms.NewGroup().Add("fullName", forms.NewLeaf("A", forms.MinLength(2)))
	root.Validate()
	got := forms.Collect(root, testMessages)
	if got["fullName"] == "" {
		t.Fatal("prefilled invalid value was suppressed")
	}
}
