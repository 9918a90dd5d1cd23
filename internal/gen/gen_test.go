package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "email.go")
	g := New(Config{
		Pattern:    `(\w+)@(\w+)`,
		Name:       "Email",
		Package:    "mailscrub",
		Templates:  []string{"$1@REDACTED", "[EMAIL REMOVED]", `\$$2`},
		OutputFile: out,
	})

	if err := g.Generate(); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading generated file: %v", err)
	}
	src := string(data)

	for _, want := range []string{
		"Code generated by resub gen. DO NOT EDIT.",
		"package mailscrub",
		`emailPattern = regexp.MustCompile`,
		"func emailGroup(input string, base int, m []int, grp int) string",
		"func EmailReplaceAll0(input string) string",
		"func EmailReplaceAll1(input string) string",
		"func EmailReplaceAll2(input string) string",
		`b.WriteString("@REDACTED")`,
		`b.WriteString("[EMAIL REMOVED]")`,
		`b.WriteString("$")`,
		"emailGroup(input, searchPos, m, 1)",
		"emailGroup(input, searchPos, m, 2)",
		"FindStringSubmatchIndex",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source missing %q", want)
		}
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		errContains string
	}{
		{
			name: "unexported name",
			config: Config{
				Pattern: `a`, Name: "email", Package: "p",
				Templates: []string{"x"}, OutputFile: "out.go",
			},
			errContains: "not a valid exported identifier",
		},
		{
			name: "empty package",
			config: Config{
				Pattern: `a`, Name: "Email",
				Templates: []string{"x"}, OutputFile: "out.go",
			},
			errContains: "package cannot be empty",
		},
		{
			name: "empty output",
			config: Config{
				Pattern: `a`, Name: "Email", Package: "p",
				Templates: []string{"x"},
			},
			errContains: "output file cannot be empty",
		},
		{
			name: "no templates",
			config: Config{
				Pattern: `a`, Name: "Email", Package: "p",
				OutputFile: "out.go",
			},
			errContains: "at least one template",
		},
		{
			name: "bad pattern",
			config: Config{
				Pattern: `(`, Name: "Email", Package: "p",
				Templates: []string{"x"}, OutputFile: "out.go",
			},
			errContains: "failed to compile pattern",
		},
		{
			name: "bad template",
			config: Config{
				Pattern: `a`, Name: "Email", Package: "p",
				Templates: []string{`\q`}, OutputFile: "out.go",
			},
			errContains: "template 0",
		},
		{
			name: "backref beyond group count",
			config: Config{
				Pattern: `(a)`, Name: "Email", Package: "p",
				Templates: []string{"$1", "$2"}, OutputFile: "out.go",
			},
			errContains: "template 1 references group $2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.config).Generate()
			if err == nil {
				t.Fatal("Generate() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestVerboseLogging(t *testing.T) {
	var buf bytes.Buffer
	g := New(Config{
		Pattern:    `(\d+)`,
		Name:       "Num",
		Package:    "p",
		Templates:  []string{"<$1>"},
		OutputFile: filepath.Join(t.TempDir(), "num.go"),
		Verbose:    true,
	})
	g.logger.SetOutput(&buf)

	if err := g.Generate(); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "[resub]") {
		t.Errorf("verbose output missing [resub] prefix: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "NumReplaceAll0") {
		t.Errorf("verbose output missing function name: %q", buf.String())
	}
}

func TestLowerFirst(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Email", "email"},
		{"URL", "uRL"},
		{"x", "x"},
	}
	for _, tt := range tests {
		if got := LowerFirst(tt.in); got != tt.want {
			t.Errorf("LowerFirst(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
