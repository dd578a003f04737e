package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func collect(t *testing.T, src SourceFiles, stdin string) []Line {
	t.Helper()

	var lines []Line

	for line, err := range src.Lines(strings.NewReader(stdin)) {
		if err != nil {
			t.Fatalf("Lines: %v", err)
		}

		lines = append(lines, line)
	}

	return lines
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.Text
	}

	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestLines(t *testing.T) {
	input := "f 1\n\n  // comment\ng 2\n   \nh 3"

	var got []Line

	for line, err := range Lines("in", strings.NewReader(input)) {
		if err != nil {
			t.Fatalf("Lines: %v", err)
		}

		got = append(got, line)
	}

	want := []Line{
		{Source: "in", Number: 1, Text: "f 1"},
		{Source: "in", Number: 4, Text: "g 2"},
		{Source: "in", Number: 6, Text: "h 3"},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(got), len(want), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLines_Stop(t *testing.T) {
	n := 0

	for range Lines("in", strings.NewReader("a\nb\nc\n")) {
		n++

		break
	}

	if n != 1 {
		t.Errorf("iterations = %d, want 1", n)
	}
}

func TestWithSourceFilesEmpty(t *testing.T) {
	for _, sources := range [][]string{nil, {}} {
		ctx := WithSourceFiles(context.Background(), sources)
		if src := sourceFilesFrom(ctx); src != nil {
			t.Errorf("WithSourceFiles(%v) = %v, want nil", sources, src)
		}
	}
}

func TestWithSourceFilesMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.impral", "f 1\ng 2\n")
	b := writeFile(t, dir, "b.impral", "// header\nh 3\n")

	src := sourceFilesFrom(WithSourceFiles(context.Background(), []string{a, b}))
	if src == nil {
		t.Fatal("expected source files")
	}

	lines := collect(t, src, "")
	if got, want := texts(lines), []string{"f 1", "g 2", "h 3"}; !equal(got, want) {
		t.Fatalf("texts = %q, want %q", got, want)
	}

	if lines[2].Source != b || lines[2].Number != 2 {
		t.Errorf("last line = %+v, want %s:2", lines[2], b)
	}
}

func TestWithSourceFilesDuplicates(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.impral", "f 1\n")

	link := filepath.Join(dir, "link.impral")
	if err := os.Symlink(a, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	rel, err := filepath.Rel(mustGetwd(t), a)
	if err != nil {
		rel = a
	}

	src := sourceFilesFrom(WithSourceFiles(context.Background(), []string{a, a, link, rel}))
	if src == nil {
		t.Fatal("expected source files")
	}

	if got := texts(collect(t, src, "")); !equal(got, []string{"f 1"}) {
		t.Errorf("texts = %q, want one line", got)
	}
}

func mustGetwd(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	return wd
}

func TestWithSourceFilesStdinLast(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.impral", "f 1\n")
	b := writeFile(t, dir, "b.impral", "g 2\n")

	src := sourceFilesFrom(WithSourceFiles(context.Background(), []string{"-", a, "-", b}))
	if src == nil {
		t.Fatal("expected source files")
	}

	lines := collect(t, src, "h 3\n")
	if got, want := texts(lines), []string{"f 1", "g 2", "h 3"}; !equal(got, want) {
		t.Fatalf("texts = %q, want %q", got, want)
	}

	if lines[2].Source != stdinSource {
		t.Errorf("stdin line source = %q, want %q", lines[2].Source, stdinSource)
	}
}

func TestWithSourceFilesNonexistent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.impral", "f 1\n")

	src := sourceFilesFrom(WithSourceFiles(context.Background(),
		[]string{filepath.Join(dir, "missing"), a, dir}))
	if src == nil {
		t.Fatal("expected source files")
	}

	if got := texts(collect(t, src, "")); !equal(got, []string{"f 1"}) {
		t.Errorf("texts = %q", got)
	}

	src = sourceFilesFrom(WithSourceFiles(context.Background(),
		[]string{filepath.Join(dir, "missing"), dir}))
	if src != nil {
		t.Errorf("all sources unusable: got %v, want nil", src)
	}
}

func TestWithSourceFilesReadAhead(t *testing.T) {
	const n = 50000

	var sb strings.Builder
	for i := range n {
		sb.WriteString("f " + strconv.Itoa(i) + "\n")
	}

	dir := t.TempDir()
	a := writeFile(t, dir, "a.impral", sb.String())

	src := sourceFilesFrom(WithSourceFiles(context.Background(), []string{a}))
	if src == nil {
		t.Fatal("expected source files")
	}

	file, ok := src.(*sourceFiles).read[0].Reader.(*os.File)
	if !ok {
		t.Fatalf("source reader = %T, want *os.File", src.(*sourceFiles).read[0].Reader)
	}

	lines := collect(t, src, "")
	if len(lines) != n {
		t.Fatalf("read %d lines, want %d", len(lines), n)
	}

	for i, line := range lines {
		if want := "f " + strconv.Itoa(i); line.Text != want || line.Number != i+1 {
			t.Fatalf("line %d = %+v, want %q", i, line, want)
		}
	}

	if _, err := file.Read(make([]byte, 1)); !errors.Is(err, os.ErrClosed) {
		t.Errorf("source file still open after iteration: %v", err)
	}
}

func TestWithSourceFilesStopCloses(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.impral", "f 1\ng 2\n")

	src := sourceFilesFrom(WithSourceFiles(context.Background(), []string{a}))
	if src == nil {
		t.Fatal("expected source files")
	}

	file := src.(*sourceFiles).read[0].Reader.(*os.File)

	for line, err := range src.Lines(strings.NewReader("")) {
		if err != nil || line.Text != "f 1" {
			t.Fatalf("first line = %+v, %v", line, err)
		}

		break
	}

	if _, err := file.Read(make([]byte, 1)); !errors.Is(err, os.ErrClosed) {
		t.Errorf("source file still open after early stop: %v", err)
	}
}

func TestInputLines(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.impral", "file 1\n")

	tests := []struct {
		name    string
		in      Input
		sources []string
		stdin   string
		want    []string
	}{
		{"args", Input{Command: []string{"f 1", "", "g 2"}}, []string{a}, "s 1", []string{"f 1", "g 2"}},
		{"files", Input{}, []string{a}, "s 1", []string{"file 1"}},
		{"stdin", Input{}, nil, "s 1\n\ns 2", []string{"s 1", "s 2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := WithStdin(context.Background(), strings.NewReader(tt.stdin))
			ctx = WithSourceFiles(ctx, tt.sources)

			var got []string

			for line, err := range tt.in.lines(ctx) {
				if err != nil {
					t.Fatalf("lines: %v", err)
				}

				got = append(got, line.Text)
			}

			if !equal(got, tt.want) {
				t.Errorf("lines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError(t *testing.T) {
	cause := errors.New("boom")
	err := ErrWrite.Wrap(cause)

	if !errors.Is(err, ErrWrite) {
		t.Error("errors.Is(ErrWrite) = false")
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(cause) = false")
	}

	if errors.Is(err, ErrReadSource) {
		t.Error("errors.Is(ErrReadSource) = true")
	}

	if got, want := err.Error(), "write output: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
