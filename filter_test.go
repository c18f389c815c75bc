package scribe

import "testing"

func TestOnly(t *testing.T) {
	f := Only("id", "name")

	if !f.Include("id") || !f.Include("name") {
		t.Error("Only() should include the named properties")
	}
	if f.Include("email") {
		t.Error("Only() should exclude everything else")
	}
}

func TestExcept(t *testing.T) {
	f := Except("password")

	if f.Include("password") {
		t.Error("Except() should exclude the named properties")
	}
	if !f.Include("id") {
		t.Error("Except() should include everything else")
	}
}

func TestOnly_Empty(t *testing.T) {
	if Only().Include("anything") {
		t.Error("Only() with no names should exclude everything")
	}
	if !Except().Include("anything") {
		t.Error("Except() with no names should include everything")
	}
}
