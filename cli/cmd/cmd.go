package cmd

import (
	"bufio"
	"context"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/klauspost/readahead"
)

type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type stdinKey struct{}

// WithStdin returns a new context.Context whose commands read standard input
// from r instead of os.Stdin.
func WithStdin(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, stdinKey{}, r)
}

func stdinFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// stdio returns the output streams of the running kong application, or the
// process streams when there is none.
func stdio(ctx context.Context) (stdout, stderr io.Writer) {
	stdout, stderr = os.Stdout, os.Stderr

	if ktx := kongContextFrom(ctx); ktx != nil {
		if ktx.Stdout != nil {
			stdout = ktx.Stdout
		}

		if ktx.Stderr != nil {
			stderr = ktx.Stderr
		}
	}

	return stdout, stderr
}

// Line is one command read from a source.
type Line struct {
	Source string // file name, "-" for stdin, or "arg"
	Number int    // 1-based
	Text   string
}

// skip reports whether text holds no command.
func skip(text string) bool {
	text = strings.TrimSpace(text)

	return text == "" || strings.HasPrefix(text, "//")
}

// Lines returns an iterator over the commands in r. Blank lines and lines
// whose first non-space characters are // are skipped. Iteration stops after
// the first read error.
func Lines(name string, r io.Reader) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

		for n := 1; scanner.Scan(); n++ {
			if text := scanner.Text(); !skip(text) {
				if !yield(Line{Source: name, Number: n, Text: text}, nil) {
					return
				}
			}
		}

		if err := scanner.Err(); err != nil {
			yield(Line{Source: name}, err)
		}
	}
}

type sourceFilesKey struct{}

// SourceFiles is a deduplicated set of input files.
type SourceFiles interface {
	IsZero() bool
	Lines(stdin io.Reader) iter.Seq2[Line, error]
	io.Reader
}

type namedReader struct {
	name string
	io.Reader
}

type sourceFiles struct {
	read     []namedReader
	hasStdin bool
	multi    io.Reader
}

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.read) == 0 && !s.hasStdin }

func (s *sourceFiles) readers(stdin io.Reader) []namedReader {
	readers := s.read
	if s.hasStdin {
		readers = append(readers[:len(readers):len(readers)], namedReader{stdinSource, stdin})
	}

	return readers
}

// Read implements io.Reader by reading every file in order, then os.Stdin if
// it was included.
func (s *sourceFiles) Read(p []byte) (n int, err error) {
	if s.multi == nil {
		var rs []io.Reader
		for _, r := range s.readers(os.Stdin) {
			rs = append(rs, r.Reader)
		}

		s.multi = io.MultiReader(rs...)
	}

	return s.multi.Read(p)
}

// Lines returns the commands of every file in order, followed by those read
// from stdin if it was included. Line numbers restart with each file.
func (s *sourceFiles) Lines(stdin io.Reader) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		for _, r := range s.readers(stdin) {
			if !r.lines(yield) {
				return
			}
		}
	}
}

// Read-ahead for source files, sized for command scripts rather than bulk
// data.
const (
	readaheadBuffers = 4
	readaheadSize    = 64 << 10
)

// lines yields the commands of r, reading files ahead asynchronously and
// closing them when done. It reports whether iteration should continue.
func (r namedReader) lines(yield func(Line, error) bool) bool {
	src := r.Reader

	if c, ok := src.(io.ReadCloser); ok && r.name != stdinSource {
		var closer io.Closer = c

		ra, err := readahead.NewReadCloserSize(c, readaheadBuffers, readaheadSize)
		if err == nil {
			src, closer = ra, ra
		}

		defer closer.Close()
	}

	for line, err := range Lines(r.name, src) {
		if !yield(line, err) || err != nil {
			return false
		}
	}

	return true
}

// fileKey identifies a file by device and inode, so that symlinks and
// relative paths to the same file compare equal.
type fileKey struct {
	dev uint64
	ino uint64
}

const stdinSource = "-"

// WithSourceFiles returns a new context.Context holding the deduplicated
// source files named by sources.
//
// Files that cannot be opened are skipped. Every "-" refers to the same
// stdin reader, which is always read last.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, buildSourceFiles(sources))
}

func buildSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	srcs.read = make([]namedReader, 0, len(sources))
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, stdinOK := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			srcs.hasStdin = true

			if stdinOK {
				seen[stdinKey] = struct{}{}
			}

			continue
		}

		reader, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		srcs.read = append(srcs.read, namedReader{src, reader})
	}

	if srcs.IsZero() {
		return nil
	}

	return &srcs
}

// openUniqueFile opens path unless a file with the same device and inode was
// already seen.
func openUniqueFile(path string, seen map[fileKey]struct{}) (io.Reader, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(resolved)
	if err != nil || info.IsDir() {
		return nil, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false
	}

	if _, exists := seen[key]; exists {
		return nil, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return file, true
}

func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}
