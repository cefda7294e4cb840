package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestCommandTree(t *testing.T) {
	root := New()
	want := []string{
		"write", "add", "list", "show", "edit", "delete", "calendar", "analyze",
		"summary", "export", "import", "sync", "watch", "serve", "mcp", "info",
		"version", "completion",
	}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Fatalf("missing command %q: %v", name, err)
		}
	}
}

func TestRootHelp(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "palette") || !strings.Contains(out.String(), "analyze") {
		t.Fatalf("unexpected help:\n%s", out.String())
	}
}

func TestAddRequiresColorAndEmotion(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"add", "--emotion", "calm"})
	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "color") {
		t.Fatalf("expected required color error, got %v", err)
	}
}
