//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/mdslice"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":  Build,
	"t":  Test.Default,
	"l":  Lint.Default,
	"c":  Check,
	"fz": Test.Fuzz,
	"bc": Bench.Convert,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles mdslice with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/mdslice")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with version info.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/mdslice")
}

// Default runs all tests through gotestsum with the race detector.
func (Test) Default() error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// Fuzz fuzzes the document parser. STAVE_FUZZTIME overrides the 30s default.
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("STAVE_FUZZTIME"), "30s")
	return sh.RunV("go", "test", "-run", "^$", "-fuzz", "^FuzzParse$", "-fuzztime", fuzzTime, "./pkg/parser")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when any file needs gofmt.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Gate runs the checks CI requires before merge.
func (CI) Gate() {
	st.SerialDeps(
		Lint.FmtCheck,
		Build,
		Test.Default,
		CI.ModTidy,
	)
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if !bytes.Equal(before, after) {
		return errors.New("go.mod or go.sum is not tidy")
	}
	return nil
}

// Default runs the Go benchmarks.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem", "./...")
}

// Convert times the built binary converting a markdown tree.
// The tree defaults to the repository; set STAVE_BENCH_DIR to use another.
func (Bench) Convert() error {
	st.Deps(Build)
	dir := cmp.Or(os.Getenv("STAVE_BENCH_DIR"), ".")
	start := time.Now()
	if err := sh.RunV(binary, "convert", "--format", "summary", "--color", "never", dir); err != nil {
		return fmt.Errorf("convert %s: %w", dir, err)
	}
	fmt.Printf("converted %s in %s\n", dir, time.Since(start).Round(time.Millisecond))
	return nil
}

func readModFiles() ([]byte, error) {
	var buf bytes.Buffer
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
