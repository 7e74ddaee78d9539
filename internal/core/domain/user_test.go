package domain

import "testing"

func TestUser_HasPinned(t *testing.T) {
	u := &User{Pinned: []string{"p1", "p2"}}

	if !u.HasPinned("p1") {
		t.Fatalf("expected p1 to be pinned")
	}
	if u.HasPinned("p3") {
		t.Fatalf("p3 reported as pinned")
	}

	empty := &User{}
	if empty.HasPinned("p1") {
		t.Fatalf("empty set reported a pin")
	}
}
