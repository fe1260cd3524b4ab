package symtab

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SymbolTable owns every scope and a cursor on the scope the parser is in.
//
// A SymbolTable is meant to outlive a single file: names declared by an
// earlier translation unit stay visible to the later ones unless
// CloseScopes is followed by a fresh table.
type SymbolTable struct {
	scopes  []*Scope
	current ScopeID
}

func New() *SymbolTable {
	st := &SymbolTable{}
	st.scopes = []*Scope{st.newScope("", Namespace, NoScope)}
	st.current = Root
	return st
}

func (st *SymbolTable) newScope(name string, kind Kind, parent ScopeID) *Scope {
	return &Scope{
		table:    st,
		id:       ScopeID(len(st.scopes)),
		name:     name,
		kind:     kind,
		parent:   parent,
		children: make(map[string]ScopeID),
	}
}

func (st *SymbolTable) Root() *Scope {
	return st.scopes[Root]
}

// Scope returns the scope with the given id, nil for NoScope.
func (st *SymbolTable) Scope(id ScopeID) *Scope {
	if id == NoScope {
		return nil
	}
	return st.scopes[id]
}

func (st *SymbolTable) CurrentScope() *Scope {
	return st.scopes[st.current]
}

// Len is the number of scopes ever created.
func (st *SymbolTable) Len() int {
	return len(st.scopes)
}

// Declare makes name visible in the current scope without entering it.
// An existing entry is returned as is, unless its kind was unknown or a
// type is declared over a variable or function of the same name.
// Declare panics if name is empty or qualified.
func (st *SymbolTable) Declare(name string, kind Kind) *Scope {
	checkName(name)
	cur := st.CurrentScope()
	if child := cur.Child(name); child != nil {
		switch {
		case child.kind == Unknown:
			child.kind = kind
		case kind.IsType() && (child.kind == Variable || child.kind == Function):
			child.kind = kind
		}
		return child
	}
	s := st.newScope(name, kind, cur.id)
	st.scopes = append(st.scopes, s)
	cur.addChild(name, s.id)
	return s
}

// OpenScope enters the child scope called name, creating it on first use.
// OpenScope panics if name is empty or qualified.
func (st *SymbolTable) OpenScope(name string) *Scope {
	s := st.Declare(name, Unknown)
	st.current = s.id
	return s
}

// OpenScopes enters each component of a qualified name in turn and
// reports how many scopes were opened.
func (st *SymbolTable) OpenScopes(qualified string) int {
	n := 0
	for _, name := range strings.Split(qualified, Separator) {
		if name == "" {
			continue
		}
		st.OpenScope(name)
		n++
	}
	return n
}

// CloseScope returns to the enclosing scope, it does nothing at the root.
func (st *SymbolTable) CloseScope() {
	if parent := st.CurrentScope().parent; parent != NoScope {
		st.current = parent
	}
}

// Enter moves the cursor to s and returns the scope it leaves, so a
// caller can come back with a second Enter.
func (st *SymbolTable) Enter(s *Scope) *Scope {
	if s.table != st {
		panic("symtab: scope belongs to another table")
	}
	prev := st.CurrentScope()
	st.current = s.id
	return prev
}

// CloseScopes returns to the root.
func (st *SymbolTable) CloseScopes() {
	st.current = Root
}

// Extend makes the names declared in the scope called name visible in the
// current scope, as "using namespace" does. Names already visible in the
// current scope win. Unknown names are ignored.
func (st *SymbolTable) Extend(name string) {
	cur := st.CurrentScope()
	target := cur.GetScope(name)
	if target == nil || target == cur {
		return
	}
	for _, n := range target.order {
		if _, ok := cur.children[n]; !ok {
			cur.addChild(n, target.children[n])
		}
	}
}

// Using makes a single qualified name visible in the current scope, as a
// using declaration does. Unknown names are ignored.
func (st *SymbolTable) Using(qualified string) {
	cur := st.CurrentScope()
	target := cur.GetScope(qualified)
	if target == nil || target.IsRoot() {
		return
	}
	if _, ok := cur.children[target.name]; !ok {
		cur.addChild(target.name, target.id)
	}
}

// Alias makes name in the current scope refer to the scope called
// target, as a namespace alias does. With an unknown target name is
// declared as a plain namespace.
func (st *SymbolTable) Alias(name, target string) *Scope {
	checkName(name)
	cur := st.CurrentScope()
	s := cur.GetScope(target)
	if s == nil || s.IsRoot() {
		return st.Declare(name, Namespace)
	}
	if _, ok := cur.children[name]; !ok {
		cur.addChild(name, s.id)
	}
	return s
}

// IsType reports whether name resolves to a declared type name from the
// current scope.
func (st *SymbolTable) IsType(name string) bool {
	s := st.CurrentScope().GetScope(name)
	return s != nil && s.kind.IsType()
}

// IsConstructor reports whether a function called name declared with
// the given qualifier ("" if none) is a constructor: the name repeats the
// last component of the qualifier or, unqualified, the class whose body is
// open.
func (st *SymbolTable) IsConstructor(qualifier, name string) bool {
	qualifier = strings.TrimSuffix(qualifier, Separator)
	if qualifier == "" {
		cur := st.CurrentScope()
		return cur.kind == Class && cur.name == name
	}
	last := qualifier
	if i := strings.LastIndex(qualifier, Separator); i >= 0 {
		last = qualifier[i+len(Separator):]
	}
	return last == name
}

// Suggest returns up to limit visible names close to name, best first.
func (st *SymbolTable) Suggest(name string, limit int) []string {
	if i := strings.LastIndex(name, Separator); i >= 0 {
		name = name[i+len(Separator):]
	}
	seen := map[string]bool{}
	var candidates []string
	for s := st.CurrentScope(); s != nil; s = s.Parent() {
		for _, n := range s.order {
			if !seen[n] && n != name {
				seen[n] = true
				candidates = append(candidates, n)
			}
		}
	}
	ranks := fuzzy.RankFindFold(name, candidates)
	sort.Sort(ranks)
	var ret []string
	for _, r := range ranks {
		if len(ret) == limit {
			break
		}
		ret = append(ret, r.Target)
	}
	return ret
}

// String dumps the scope tree, children sorted by name.
func (st *SymbolTable) String() string {
	var sb strings.Builder
	var dump func(s *Scope, depth int)
	dump = func(s *Scope, depth int) {
		names := make([]string, 0, len(s.children))
		for name, id := range s.children {
			// Names merged in by Extend or Using belong to another scope.
			if st.scopes[id].parent == s.id {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			child := s.Child(name)
			fmt.Fprintf(&sb, "%s%s (%s)\n", strings.Repeat("  ", depth), name, child.kind)
			dump(child, depth+1)
		}
	}
	dump(st.Root(), 0)
	return sb.String()
}
