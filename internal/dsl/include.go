package dsl

import "path/filepath"

// maxIncludeDepth bounds !include recursion, mirroring kryc's
// MaxIncludeDepth constant used by its @include preprocessor.
const maxIncludeDepth = 64

// includeTracker threads include state through recursive parses: the
// current nesting depth, and the set of absolute paths currently being
// parsed (to detect a file including itself, directly or transitively).
// The Java original recurses via parse(context.getLines(), context.getFile())
// with no cycle guard at all; SPEC_FULL.md §4 resolves that open question by
// adding one here, since an unguarded cycle would recurse until the Go
// runtime stack overflows rather than failing with a diagnosable error.
type includeTracker struct {
	depth     int
	visiting  map[string]struct{}
	sourceDir string
}

func newIncludeTracker(sourceDir string) *includeTracker {
	return &includeTracker{visiting: make(map[string]struct{}), sourceDir: sourceDir}
}

// resolve turns the raw (possibly relative) path from an "!include" line
// into an absolute path rooted at the directory of the file that contains
// the directive — same rule as kryc's readAndProcessIncludes basePath join.
func (t *includeTracker) resolve(raw string) string {
	path := raw
	if !filepath.IsAbs(path) {
		path = filepath.Join(t.sourceDir, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// enter records that path is now being parsed, returning an error if doing
// so would exceed the depth limit or close a cycle. The returned leave
// function must be deferred by the caller to pop the path back off once
// that include finishes.
func (t *includeTracker) enter(path string, line TokenLine) (leave func(), err error) {
	if t.depth >= maxIncludeDepth {
		return nil, newParseError(line, ErrIncludeDepth, "maximum include depth (%d) exceeded including %q", maxIncludeDepth, path)
	}
	if _, already := t.visiting[path]; already {
		return nil, newParseError(line, ErrIncludeCycle, "include cycle detected: %q is already being parsed", path)
	}
	t.visiting[path] = struct{}{}
	t.depth++
	prevDir := t.sourceDir
	t.sourceDir = filepath.Dir(path)
	return func() {
		delete(t.visiting, path)
		t.depth--
		t.sourceDir = prevDir
	}, nil
}
