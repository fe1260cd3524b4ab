// Package symtab tracks the names declared while a translation unit is
// being parsed so the parser can tell type names from other identifiers.
//
// Scopes form a tree rooted at the anonymous global scope. They live in an
// arena owned by the SymbolTable and refer to each other by ScopeID, a
// scope's parent is never used for anything but lookup.
package symtab

import (
	"fmt"
	"strings"
)

// Separator joins the names of nested scopes.
const Separator = "::"

type ScopeID int

const (
	NoScope ScopeID = -1
	Root    ScopeID = 0
)

// Kind records what declared a scope.
type Kind int

const (
	Unknown Kind = iota
	Namespace
	Class
	Enum
	Typedef
	TemplateParam
	Function
	Variable
)

func (k Kind) String() string {
	switch k {
	case Namespace:
		return "namespace"
	case Class:
		return "class"
	case Enum:
		return "enum"
	case Typedef:
		return "typedef"
	case TemplateParam:
		return "template parameter"
	case Function:
		return "function"
	case Variable:
		return "variable"
	default:
		return "unknown"
	}
}

// IsType reports whether names of kind k may start a declaration.
func (k Kind) IsType() bool {
	switch k {
	case Class, Enum, Typedef, TemplateParam:
		return true
	}
	return false
}

// Scope is a named region of name visibility.
type Scope struct {
	table    *SymbolTable
	id       ScopeID
	name     string
	kind     Kind
	parent   ScopeID
	children map[string]ScopeID
	// Keys of children in insertion order.
	order []string
}

func (s *Scope) ID() ScopeID    { return s.id }
func (s *Scope) Name() string   { return s.name }
func (s *Scope) Kind() Kind     { return s.kind }
func (s *Scope) IsRoot() bool   { return s.parent == NoScope }
func (s *Scope) String() string { return s.QualifiedName() }

// Parent returns the enclosing scope, nil for the root.
func (s *Scope) Parent() *Scope {
	if s.parent == NoScope {
		return nil
	}
	return s.table.scopes[s.parent]
}

// Child returns the scope visible as name directly inside s, nil if none.
func (s *Scope) Child(name string) *Scope {
	id, ok := s.children[name]
	if !ok {
		return nil
	}
	return s.table.scopes[id]
}

// Names lists the names visible directly inside s in declaration order,
// names merged in by Extend included.
func (s *Scope) Names() []string {
	return append([]string(nil), s.order...)
}

// QualifiedName joins the names of s and all its ancestors, the root's
// qualified name is empty.
func (s *Scope) QualifiedName() string {
	if s.IsRoot() {
		return ""
	}
	return s.Parent().Qualifier() + s.name
}

// Qualifier is the prefix naming something declared directly in s.
func (s *Scope) Qualifier() string {
	if s.IsRoot() {
		return ""
	}
	return s.QualifiedName() + Separator
}

// GetScope finds the scope for a possibly qualified name as seen from s.
// The first component is searched in s then outward through the
// enclosing scopes, the remaining components are looked up inside it.
// A leading separator starts the search at the root.
func (s *Scope) GetScope(name string) *Scope {
	if strings.HasPrefix(name, Separator) {
		return s.table.Root().lookupDown(name[len(Separator):])
	}
	for scope := s; scope != nil; scope = scope.Parent() {
		if found := scope.lookupDown(name); found != nil {
			return found
		}
	}
	return nil
}

func (s *Scope) lookupDown(name string) *Scope {
	head, rest, qualified := strings.Cut(name, Separator)
	child := s.Child(head)
	if child == nil || !qualified {
		return child
	}
	return child.lookupDown(rest)
}

// Resolve returns the fully qualified form of name as seen from s.
// When the qualifier of name can't be found the name is qualified
// textually with s.
func (s *Scope) Resolve(name string) string {
	if strings.HasPrefix(name, Separator) {
		return s.table.Root().Resolve(name[len(Separator):])
	}
	i := strings.LastIndex(name, Separator)
	if i < 0 {
		return s.Qualifier() + name
	}
	if scope := s.GetScope(name[:i]); scope != nil {
		return scope.Qualifier() + name[i+len(Separator):]
	}
	return s.Qualifier() + name
}

func (s *Scope) addChild(name string, id ScopeID) {
	s.children[name] = id
	s.order = append(s.order, name)
}

func checkName(name string) {
	if name == "" || strings.Contains(name, Separator) {
		panic(fmt.Sprintf("symtab: invalid scope name %q", name))
	}
}
