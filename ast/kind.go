package ast

// Kind identifies the grammar production a Node was built from.
// The set is closed: every Visitor has one method per Kind.
type Kind int

const (
	TranslationUnit Kind = iota
	NamespaceDefinition
	UsingDirective
	UsingDeclaration
	LinkageSpecification
	TemplateDeclaration
	ClassSpecifier
	EnumSpecifier
	AccessSpecifier
	Declaration
	FunctionDefinition
	ConstructorDefinition
	DestructorDefinition
	Declarator
	FunctionDeclarator
	DeclaratorID
	ParameterDeclaration
	CtorInitializer
	CompoundStatement
	ExpressionStatement
	EmptyStatement
	IfStatement
	WhileStatement
	DoStatement
	ForStatement
	SwitchStatement
	CaseLabel
	DefaultLabel
	LabeledStatement
	ReturnStatement
	BreakStatement
	ContinueStatement
	GotoStatement
	TryBlock
	Handler
	Expression
	ConditionalExpression
	LogicalOrExpression
	LogicalAndExpression
	ThrowExpression

	numKinds
)

var kindToStr = [...]string{
	TranslationUnit:       "TranslationUnit",
	NamespaceDefinition:   "NamespaceDefinition",
	UsingDirective:        "UsingDirective",
	UsingDeclaration:      "UsingDeclaration",
	LinkageSpecification:  "LinkageSpecification",
	TemplateDeclaration:   "TemplateDeclaration",
	ClassSpecifier:        "ClassSpecifier",
	EnumSpecifier:         "EnumSpecifier",
	AccessSpecifier:       "AccessSpecifier",
	Declaration:           "Declaration",
	FunctionDefinition:    "FunctionDefinition",
	ConstructorDefinition: "ConstructorDefinition",
	DestructorDefinition:  "DestructorDefinition",
	Declarator:            "Declarator",
	FunctionDeclarator:    "FunctionDeclarator",
	DeclaratorID:          "DeclaratorID",
	ParameterDeclaration:  "ParameterDeclaration",
	CtorInitializer:       "CtorInitializer",
	CompoundStatement:     "CompoundStatement",
	ExpressionStatement:   "ExpressionStatement",
	EmptyStatement:        "EmptyStatement",
	IfStatement:           "IfStatement",
	WhileStatement:        "WhileStatement",
	DoStatement:           "DoStatement",
	ForStatement:          "ForStatement",
	SwitchStatement:       "SwitchStatement",
	CaseLabel:             "CaseLabel",
	DefaultLabel:          "DefaultLabel",
	LabeledStatement:      "LabeledStatement",
	ReturnStatement:       "ReturnStatement",
	BreakStatement:        "BreakStatement",
	ContinueStatement:     "ContinueStatement",
	GotoStatement:         "GotoStatement",
	TryBlock:              "TryBlock",
	Handler:               "Handler",
	Expression:            "Expression",
	ConditionalExpression: "ConditionalExpression",
	LogicalOrExpression:   "LogicalOrExpression",
	LogicalAndExpression:  "LogicalAndExpression",
	ThrowExpression:       "ThrowExpression",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Unknown"
	}
	return kindToStr[k]
}

// Kinds returns every node kind in declaration order.
func Kinds() []Kind {
	ret := make([]Kind, numKinds)
	for i := range ret {
		ret[i] = Kind(i)
	}
	return ret
}
