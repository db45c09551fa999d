package dsl

import (
	"fmt"
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^\w+$`)

// Constant is a named, substitutable value introduced by "!constant NAME
// value". Redefinition is allowed —
// last write wins — matching StructurizrDslParser's constants.put(...) (no
// rejection path exists there) and kryc's collectRawVariables, which logs
// and overwrites rather than erroring. See SPEC_FULL.md §4 "Constant
// redefinition".
type Constant struct {
	Name        string
	Value       string
	DefinedLine int
}

// symbolTable tracks every identifier bound via "id = keyword ..." and
// every named constant declared with !constant, enforcing the
// identifier-uniqueness invariant across the whole parse (including
// included files, which share the parser's table).
type symbolTable struct {
	elements  map[string]struct{}
	constants map[string]*Constant
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		elements:  make(map[string]struct{}),
		constants: make(map[string]*Constant),
	}
}

// bind validates and registers a newly declared identifier. Mirrors
// StructurizrDslParser.validateIdentifier: lowercase, \w+ only, and not
// already bound to another element or relationship.
func (t *symbolTable) bind(name string, line TokenLine) error {
	lower := strings.ToLower(name)
	if !identifierPattern.MatchString(lower) {
		return newParseError(line, ErrInvalidIdentifier, "identifier %q is not valid (expected letters, digits, underscore)", name)
	}
	if _, exists := t.elements[lower]; exists {
		return newParseError(line, ErrDuplicateIdentifier, "identifier %q is already in use", name)
	}
	t.elements[lower] = struct{}{}
	return nil
}

// lookup reports whether an identifier is bound; the DSL never needs to
// resolve the identifier to a concrete element here — that is the
// workspace façade's job once the engine hands it the bound name.
func (t *symbolTable) lookup(name string) bool {
	_, ok := t.elements[strings.ToLower(name)]
	return ok
}

// setConstant records or overwrites a named constant.
func (t *symbolTable) setConstant(name, value string, line TokenLine) {
	t.constants[name] = &Constant{Name: name, Value: value, DefinedLine: line.Number}
}

// constant looks up a previously defined constant by name.
func (t *symbolTable) constant(name string) (*Constant, bool) {
	c, ok := t.constants[name]
	return c, ok
}

func (t *symbolTable) describe() string {
	return fmt.Sprintf("%d identifiers, %d constants", len(t.elements), len(t.constants))
}
