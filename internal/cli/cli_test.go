package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reflow/pkg/geom"
	pkgio "github.com/matzehuels/reflow/pkg/io"
)

const testdata = "../../pkg/pipeline/testdata"

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"run", "watch", "step", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.Use != appName {
		t.Errorf("Use = %q, want %q", root.Use, appName)
	}
}

func TestRunCommandWritesSnapshot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "layout.json")

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{
		"run", filepath.Join(testdata, "window.toml"),
		"--script", filepath.Join(testdata, "widen.reflow"),
		"--no-cache", "--quiet",
		"-o", out,
	})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	snap, err := pkgio.ImportJSON(out)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if len(snap.Changed) != 2 {
		t.Errorf("generations = %d, want 2", len(snap.Changed))
	}
	w, ok := snap.Rect("window")
	if !ok || w.Size != (geom.Size2{44, 28}) {
		t.Errorf("window = %+v, want size 44x28", w)
	}
	if s, ok := snap.Rect("status"); !ok || s.Parent != "window" {
		t.Errorf("status = %+v, want child of window", s)
	}
}

func TestRunCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing scene", []string{"run", filepath.Join(testdata, "missing.toml"), "--no-cache"}},
		{"bad extension", []string{"run", filepath.Join(testdata, "widen.reflow"), "--no-cache"}},
		{"no args", []string{"run"}},
		{"bad cache url", []string{"run", filepath.Join(testdata, "window.toml"), "--cache-url", "http://localhost"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := New(io.Discard, LogInfo).RootCommand()
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)
			root.SetArgs(tt.args)
			if err := root.ExecuteContext(context.Background()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunOptionsOutputs(t *testing.T) {
	opts := runOptions{json: "a.json", svg: "a.svg"}
	got := opts.outputs()
	if len(got) != 2 || got["json"] != "a.json" || got["svg"] != "a.svg" {
		t.Errorf("outputs() = %v", got)
	}
	if len((&runOptions{}).outputs()) != 0 {
		t.Error("no flags should request no outputs")
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			root := New(io.Discard, LogInfo).RootCommand()
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("completion %s output does not mention %s", shell, appName)
			}
		})
	}
}

func TestSceneArgs(t *testing.T) {
	exts, directive := sceneArgs(nil, nil, "")
	if directive != cobra.ShellCompDirectiveFilterFileExt || !slices.Contains(exts, "toml") {
		t.Errorf("sceneArgs() = %v, %v", exts, directive)
	}
	if _, directive := sceneArgs(nil, []string{"window.toml"}, ""); directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("second argument directive = %v, want NoFileComp", directive)
	}
}
