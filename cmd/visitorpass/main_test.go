package main

import (
	"bytes"
	"testing"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "sweep", "seed-admin", "version"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Fatalf("subcommand %q not registered: %v", name, err)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := out.String(); got != "dev\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestSeedAdmin_RequiresPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"seed-admin", "--email", "ops@example.com"})

	if err := root.Execute(); err == nil {
		t.Fatalf("expected an error without a password")
	}
}
