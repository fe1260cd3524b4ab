// Package parse builds syntax trees from C++ token streams.
//
// The parser is a recursive descent parser for the part of C++ the
// analyses need. It keeps a symbol table up to date while it reads, since
// whether a name is a type decides how a statement parses:
//
//	T * x;
//
// declares a pointer if T was declared as a type, and is a multiplication
// otherwise.
//
// Glossary:
//
// # Declarator
//
// A declarator is the part of a declaration that specifies
// the name that is to be introduced into the program.
//
// e.g.
//
//	unsigned int a, *b, **c, *const*d, &e;
//	             ^  ^^  ^^^  ^^^^^^^^  ^^
//
// # Function Declarator
//
// The name of a function together with its parameter list and trailing
// qualifiers.
//
// e.g.
//
//	virtual int A::get(int i = 0) const override;
//	            ^^^^^^^^^^^^^^^^^^^^^^^
//
// # Abstract Declarator
//
// A declarator missing an identifier, as in unnamed parameters.
//
// e.g.
//
//	void f(int *, char (*)[4]);
//	           ^       ^^^^^^
package parse
