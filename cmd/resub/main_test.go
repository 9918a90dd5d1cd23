package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunFromStdin(t *testing.T) {
	out, err := execute(t, "a 1 b 22", "run", `\d+`, "#")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := "a # b #"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRunFirst(t *testing.T) {
	out, err := execute(t, "ababab", "run", "--first", "ab", "x")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := "xabab"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRunFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("alice@wonder"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "run", `(\w+)@(\w+)`, "$2@$1", path)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := "wonder@alice"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRunRejectsBadTemplate(t *testing.T) {
	_, err := execute(t, "input", "run", "a", `\q`)
	if err == nil {
		t.Fatal("run with malformed template succeeded, want error")
	}
}

func TestRunRejectsBadPattern(t *testing.T) {
	_, err := execute(t, "input", "run", "(", "x")
	if err == nil {
		t.Fatal("run with malformed pattern succeeded, want error")
	}
	if !strings.Contains(err.Error(), "compile pattern") {
		t.Errorf("error = %v, want compile pattern context", err)
	}
}

func TestApply(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), "rules.yaml")
	doc := `
- name: redact digits
  pattern: \d+
  template: "#"
- name: tighten spaces
  pattern: "[ ]+"
  template: " "
`
	if err := os.WriteFile(rulesPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "call  555  0199", "apply", "--rules", rulesPath)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if want := "call # #"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestGen(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "email_gen.go")
	_, err := execute(t, "",
		"gen",
		"--pattern", `(\w+)@(\w+)`,
		"--name", "Email",
		"--package", "mailscrub",
		"--out", outPath,
		"--template", "$1@REDACTED",
	)
	if err != nil {
		t.Fatalf("gen failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading generated file: %v", err)
	}
	if !strings.Contains(string(data), "func EmailReplaceAll0(input string) string") {
		t.Errorf("generated file missing replacer function:\n%s", data)
	}
}
