package command

import "testing"

func TestDispatchInvokesRegisteredHandler(t *testing.T) {
	r := New()
	var called bool
	r.Register(Command{ID: "save", Label: "Save File", Category: "File", Handler: func() { called = true }})

	if !r.Dispatch("save") {
		t.Fatal("expected Dispatch to report handling a registered id")
	}
	if !called {
		t.Fatal("expected the handler to run")
	}
}

func TestDispatchUnknownIDReturnsFalse(t *testing.T) {
	r := New()
	if r.Dispatch("nope") {
		t.Fatal("expected Dispatch to report false for an unregistered id")
	}
}

func TestUnregisterRemovesCommand(t *testing.T) {
	r := New()
	r.Register(Command{ID: "x", Handler: func() {}})
	r.Unregister("x")
	if r.Dispatch("x") {
		t.Fatal("expected Dispatch to fail after Unregister")
	}
}

func TestListSortsByCategoryThenLabel(t *testing.T) {
	r := New()
	r.Register(Command{ID: "b", Label: "Zebra", Category: "File", Handler: func() {}})
	r.Register(Command{ID: "a", Label: "Apple", Category: "File", Handler: func() {}})
	r.Register(Command{ID: "c", Label: "Anything", Category: "Edit", Handler: func() {}})

	list := r.List()
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	if list[0].Category != "Edit" || list[1].Label != "Apple" || list[2].Label != "Zebra" {
		t.Fatalf("list = %+v, want Edit/Anything, File/Apple, File/Zebra", list)
	}
}
