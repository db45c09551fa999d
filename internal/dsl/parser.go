package dsl

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dsleng/structurizr-dsl/internal/workspace"
)

// Parser is the DSL engine's entry point: one instance per parse, not
// shared across goroutines (SPEC_FULL.md §5 — single-threaded, cooperative,
// synchronous). Construct with New, optionally call SetRestricted, then
// ParseFile or ParseString exactly once.
type Parser struct {
	ws         *workspace.Workspace
	symbols    *symbolTable
	ctx        *contextStack
	subst      *substitutor
	restricted bool
	includes   *includeTracker
	rules      []dispatchRule

	// source accumulates the preserved, post-substitution source-line
	// buffer (spec.md §3): every line actually dispatched, in the order
	// it was dispatched, across the top-level file and every recursively
	// included one, but never the "!include" directive line itself —
	// its included content appears in its place instead.
	source []string
}

// New returns a Parser ready to parse either a file or an in-memory string.
func New() *Parser {
	p := &Parser{
		ws:      workspace.New(),
		symbols: newSymbolTable(),
		ctx:     newContextStack(),
	}
	p.subst = newSubstitutor(p.symbols, p.restricted)
	p.rules = buildRules()
	return p
}

// SetRestricted toggles restricted mode. Must be called before Parse*;
// changing it mid-parse has no defined effect. In restricted mode,
// !include/!docs/!adrs, logo/icon references and environment-variable
// substitution become silent no-ops rather than errors (SPEC_FULL.md §6).
func (p *Parser) SetRestricted(restricted bool) {
	p.restricted = restricted
	p.subst.restricted = restricted
}

// Workspace returns the workspace model built so far. Safe to call after a
// failed parse to inspect partial state, though callers should generally
// treat a non-nil error as "do not trust this workspace".
func (p *Parser) Workspace() *workspace.Workspace {
	return p.ws
}

// ParseFile parses the DSL source at path. If path is a regular file, it is
// parsed on its own, resolving any "!include" directive relative to its
// directory. If path is a directory, every regular file beneath it is
// parsed in turn (stable lexical order), sharing one context stack and one
// set of symbol tables, as spec.md §6 requires of the "parse(path)" entry
// point — the same way !include splices a second file's lines into the
// same ongoing parse.
func (p *Parser) ParseFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return p.parseDir(path)
	}

	source, err := readFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	p.includes = newIncludeTracker(filepath.Dir(path))
	absPath, _ := filepath.Abs(path)
	p.includes.visiting[absPath] = struct{}{}
	return p.run(readLines(source))
}

// parseDir walks dir for every regular file, sorted for a deterministic,
// stable order, and feeds them through the same dispatch loop one after
// another so they build a single workspace. The context stack is only
// required to be empty once, after the last file — a directory of DSL
// fragments is treated as one logical source, the same way included lines
// are spliced into the file that includes them.
func (p *Parser) parseDir(dir string) error {
	var files []string
	err := filepath.Walk(dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(files)

	p.includes = newIncludeTracker(dir)
	for _, f := range files {
		absPath, _ := filepath.Abs(f)
		p.includes.visiting[absPath] = struct{}{}
		p.includes.sourceDir = filepath.Dir(f)

		source, err := readFile(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", f, err)
		}
		if err := p.parseLines(readLines(source)); err != nil {
			return err
		}
		delete(p.includes.visiting, absPath)
	}
	if err := p.ctx.requireUnclosed(); err != nil {
		return err
	}
	p.finish()
	return nil
}

// ParseString parses DSL source held in memory. "!include" is resolved
// relative to the current working directory unless dir is supplied via
// ParseStringIn.
func (p *Parser) ParseString(source string) error {
	return p.ParseStringIn(source, ".")
}

// ParseStringIn parses DSL source held in memory, resolving "!include"
// relative to dir.
func (p *Parser) ParseStringIn(source, dir string) error {
	p.includes = newIncludeTracker(dir)
	return p.run(readLines(source))
}

// run drives the main parse loop over lines and enforces the
// end-of-input invariant that every opened context was closed
// (SPEC_FULL.md §4 resolves the open question in favor of strictness).
func (p *Parser) run(lines []string) error {
	if err := p.parseLines(lines); err != nil {
		return err
	}
	if err := p.ctx.requireUnclosed(); err != nil {
		return err
	}
	p.finish()
	return nil
}

// finish hands the accumulated source-line buffer off to the workspace,
// joined with "\n" — spec.md §6's "post-parse handoff of source text to
// the workspace" — and, if "!impliedRelationships true" was ever declared,
// runs the implied-relationships pass once over the whole finished model
// rather than at the moment the directive line was dispatched.
func (p *Parser) finish() {
	p.ws.SetSource(strings.Join(p.source, "\n"))
	p.ws.FinalizeImpliedRelationships()
}

// parseLines is the line-by-line driving loop, reentered recursively by
// !include. It tracks multiline "/* ... */" comment spans specially since
// they are not brace-delimited and so never reach the context stack's
// normal push/pop bookkeeping path for any other construct.
func (p *Parser) parseLines(lines []string) error {
	inComment := false
	for i, raw := range lines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(raw)

		if inComment {
			if strings.HasSuffix(trimmed, "*/") {
				inComment = false
			}
			continue
		}
		if strings.HasPrefix(trimmed, "/*") {
			// A "/* ... */" comment closed on the same line is skipped on
			// its own; otherwise every line up to one ending in "*/" is.
			inComment = len(trimmed) < 4 || !strings.HasSuffix(trimmed, "*/")
			continue
		}
		if trimmed == "" || isCommentLine(raw) {
			continue
		}

		tl, err := tokenize(lineNum, raw)
		if err != nil {
			return err
		}
		if tl.IsEmpty {
			continue
		}
		tl = p.subst.substituteLine(tl)

		if !isIncludeLine(tl) {
			p.source = append(p.source, tl.Render())
		}

		if err := p.dispatch(tl); err != nil {
			return err
		}
	}
	return nil
}

// isIncludeLine reports whether tl is an "!include ..." directive, which
// the source-line buffer omits in favor of the included content itself
// (spec.md §3, §4.6).
func isIncludeLine(tl TokenLine) bool {
	keywordIdx := 0
	if tl.isIdentifierBinding() {
		keywordIdx = 2
	}
	return keywordIdx < len(tl.Tokens) && strings.EqualFold(tl.Tokens[keywordIdx].Text, "!include")
}

// thisID resolves the virtual "this" identifier to the element ID of the
// innermost ModelItem context. "this" is never stored in the symbol table —
// it is resolved fresh at every reference.
func (p *Parser) thisID(line TokenLine) (string, error) {
	for i := len(p.ctx.entries) - 1; i >= 0; i-- {
		if mi, ok := p.ctx.entries[i].(ModelItem); ok {
			return mi.ElementID(), nil
		}
	}
	return "", newParseError(line, ErrUnexpectedTokens, `"this" used outside of a model element context`)
}

// resolveRef resolves a relationship endpoint token: "this" against the
// enclosing element, anything else is treated as an already-bound
// identifier (existence is checked by the caller via p.symbols.lookup).
func (p *Parser) resolveRef(token string, line TokenLine) (string, error) {
	if strings.EqualFold(token, "this") {
		return p.thisID(line)
	}
	return token, nil
}

// currentGroupPath returns the group path (possibly empty) the innermost
// Groupable context is scoped to, used when creating a new element so it
// inherits its enclosing group.
func (p *Parser) currentGroupPath() string {
	if g, ok := p.ctx.current().(Groupable); ok {
		return g.CurrentGroup()
	}
	return ""
}
