package cli

import "testing"

func TestNewRootCmdAcceptsAtMostOnePathArg(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"one.go", "two.go"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for more than one positional argument")
	}
}

func TestVersionFlagPrintsAndDoesNotRunApp(t *testing.T) {
	called := false
	old := RunApp
	RunApp = func(string) error { called = true; return nil }
	defer func() { RunApp = old }()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if called {
		t.Fatal("expected --version to short-circuit RunApp")
	}
}

func TestUpdateFlagInvokesHook(t *testing.T) {
	called := false
	old := UpdateHook
	UpdateHook = func() error { called = true; return nil }
	defer func() { UpdateHook = old }()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--update"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !called {
		t.Fatal("expected --update to invoke UpdateHook")
	}
}

func TestNoArgsRunsAppWithEmptyPath(t *testing.T) {
	var gotPath string
	called := false
	old := RunApp
	RunApp = func(p string) error { called = true; gotPath = p; return nil }
	defer func() { RunApp = old }()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !called || gotPath != "" {
		t.Fatalf("called=%v path=%q, want called=true path=\"\"", called, gotPath)
	}
}

func TestPathArgPassedToRunApp(t *testing.T) {
	var gotPath string
	old := RunApp
	RunApp = func(p string) error { gotPath = p; return nil }
	defer func() { RunApp = old }()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"main.go"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if gotPath != "main.go" {
		t.Fatalf("path = %q, want %q", gotPath, "main.go")
	}
}
