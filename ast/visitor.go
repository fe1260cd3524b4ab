package ast

// Visitor has one method per node kind. Each receives the node and the
// traversal state and returns the state to continue with.
//
// Adding a Kind means adding a method here, so every visitor that does
// not embed BaseVisitor stops compiling until it says what to do with it.
type Visitor interface {
	VisitTranslationUnit(n *Node, data any) any
	VisitNamespaceDefinition(n *Node, data any) any
	VisitUsingDirective(n *Node, data any) any
	VisitUsingDeclaration(n *Node, data any) any
	VisitLinkageSpecification(n *Node, data any) any
	VisitTemplateDeclaration(n *Node, data any) any
	VisitClassSpecifier(n *Node, data any) any
	VisitEnumSpecifier(n *Node, data any) any
	VisitAccessSpecifier(n *Node, data any) any
	VisitDeclaration(n *Node, data any) any
	VisitFunctionDefinition(n *Node, data any) any
	VisitConstructorDefinition(n *Node, data any) any
	VisitDestructorDefinition(n *Node, data any) any
	VisitDeclarator(n *Node, data any) any
	VisitFunctionDeclarator(n *Node, data any) any
	VisitDeclaratorID(n *Node, data any) any
	VisitParameterDeclaration(n *Node, data any) any
	VisitCtorInitializer(n *Node, data any) any
	VisitCompoundStatement(n *Node, data any) any
	VisitExpressionStatement(n *Node, data any) any
	VisitEmptyStatement(n *Node, data any) any
	VisitIfStatement(n *Node, data any) any
	VisitWhileStatement(n *Node, data any) any
	VisitDoStatement(n *Node, data any) any
	VisitForStatement(n *Node, data any) any
	VisitSwitchStatement(n *Node, data any) any
	VisitCaseLabel(n *Node, data any) any
	VisitDefaultLabel(n *Node, data any) any
	VisitLabeledStatement(n *Node, data any) any
	VisitReturnStatement(n *Node, data any) any
	VisitBreakStatement(n *Node, data any) any
	VisitContinueStatement(n *Node, data any) any
	VisitGotoStatement(n *Node, data any) any
	VisitTryBlock(n *Node, data any) any
	VisitHandler(n *Node, data any) any
	VisitExpression(n *Node, data any) any
	VisitConditionalExpression(n *Node, data any) any
	VisitLogicalOrExpression(n *Node, data any) any
	VisitLogicalAndExpression(n *Node, data any) any
	VisitThrowExpression(n *Node, data any) any
}

// Accept calls the method of v matching the kind of n.
func (n *Node) Accept(v Visitor, data any) any {
	switch n.Kind {
	case TranslationUnit:
		return v.VisitTranslationUnit(n, data)
	case NamespaceDefinition:
		return v.VisitNamespaceDefinition(n, data)
	case UsingDirective:
		return v.VisitUsingDirective(n, data)
	case UsingDeclaration:
		return v.VisitUsingDeclaration(n, data)
	case LinkageSpecification:
		return v.VisitLinkageSpecification(n, data)
	case TemplateDeclaration:
		return v.VisitTemplateDeclaration(n, data)
	case ClassSpecifier:
		return v.VisitClassSpecifier(n, data)
	case EnumSpecifier:
		return v.VisitEnumSpecifier(n, data)
	case AccessSpecifier:
		return v.VisitAccessSpecifier(n, data)
	case Declaration:
		return v.VisitDeclaration(n, data)
	case FunctionDefinition:
		return v.VisitFunctionDefinition(n, data)
	case ConstructorDefinition:
		return v.VisitConstructorDefinition(n, data)
	case DestructorDefinition:
		return v.VisitDestructorDefinition(n, data)
	case Declarator:
		return v.VisitDeclarator(n, data)
	case FunctionDeclarator:
		return v.VisitFunctionDeclarator(n, data)
	case DeclaratorID:
		return v.VisitDeclaratorID(n, data)
	case ParameterDeclaration:
		return v.VisitParameterDeclaration(n, data)
	case CtorInitializer:
		return v.VisitCtorInitializer(n, data)
	case CompoundStatement:
		return v.VisitCompoundStatement(n, data)
	case ExpressionStatement:
		return v.VisitExpressionStatement(n, data)
	case EmptyStatement:
		return v.VisitEmptyStatement(n, data)
	case IfStatement:
		return v.VisitIfStatement(n, data)
	case WhileStatement:
		return v.VisitWhileStatement(n, data)
	case DoStatement:
		return v.VisitDoStatement(n, data)
	case ForStatement:
		return v.VisitForStatement(n, data)
	case SwitchStatement:
		return v.VisitSwitchStatement(n, data)
	case CaseLabel:
		return v.VisitCaseLabel(n, data)
	case DefaultLabel:
		return v.VisitDefaultLabel(n, data)
	case LabeledStatement:
		return v.VisitLabeledStatement(n, data)
	case ReturnStatement:
		return v.VisitReturnStatement(n, data)
	case BreakStatement:
		return v.VisitBreakStatement(n, data)
	case ContinueStatement:
		return v.VisitContinueStatement(n, data)
	case GotoStatement:
		return v.VisitGotoStatement(n, data)
	case TryBlock:
		return v.VisitTryBlock(n, data)
	case Handler:
		return v.VisitHandler(n, data)
	case Expression:
		return v.VisitExpression(n, data)
	case ConditionalExpression:
		return v.VisitConditionalExpression(n, data)
	case LogicalOrExpression:
		return v.VisitLogicalOrExpression(n, data)
	case LogicalAndExpression:
		return v.VisitLogicalAndExpression(n, data)
	case ThrowExpression:
		return v.VisitThrowExpression(n, data)
	}
	panic("ast: unknown node kind " + n.Kind.String())
}

// ChildrenAccept makes every child of n accept v in order, threading data.
func (n *Node) ChildrenAccept(v Visitor, data any) any {
	for _, c := range n.children {
		data = n.tree.nodes[c].Accept(v, data)
	}
	return data
}

// BaseVisitor does nothing for every kind. Embed it and override the
// kinds of interest.
type BaseVisitor struct{}

func (BaseVisitor) VisitTranslationUnit(n *Node, data any) any       { return data }
func (BaseVisitor) VisitNamespaceDefinition(n *Node, data any) any   { return data }
func (BaseVisitor) VisitUsingDirective(n *Node, data any) any        { return data }
func (BaseVisitor) VisitUsingDeclaration(n *Node, data any) any      { return data }
func (BaseVisitor) VisitLinkageSpecification(n *Node, data any) any  { return data }
func (BaseVisitor) VisitTemplateDeclaration(n *Node, data any) any   { return data }
func (BaseVisitor) VisitClassSpecifier(n *Node, data any) any        { return data }
func (BaseVisitor) VisitEnumSpecifier(n *Node, data any) any         { return data }
func (BaseVisitor) VisitAccessSpecifier(n *Node, data any) any       { return data }
func (BaseVisitor) VisitDeclaration(n *Node, data any) any           { return data }
func (BaseVisitor) VisitFunctionDefinition(n *Node, data any) any    { return data }
func (BaseVisitor) VisitConstructorDefinition(n *Node, data any) any { return data }
func (BaseVisitor) VisitDestructorDefinition(n *Node, data any) any  { return data }
func (BaseVisitor) VisitDeclarator(n *Node, data any) any            { return data }
func (BaseVisitor) VisitFunctionDeclarator(n *Node, data any) any    { return data }
func (BaseVisitor) VisitDeclaratorID(n *Node, data any) any          { return data }
func (BaseVisitor) VisitParameterDeclaration(n *Node, data any) any  { return data }
func (BaseVisitor) VisitCtorInitializer(n *Node, data any) any       { return data }
func (BaseVisitor) VisitCompoundStatement(n *Node, data any) any     { return data }
func (BaseVisitor) VisitExpressionStatement(n *Node, data any) any   { return data }
func (BaseVisitor) VisitEmptyStatement(n *Node, data any) any        { return data }
func (BaseVisitor) VisitIfStatement(n *Node, data any) any           { return data }
func (BaseVisitor) VisitWhileStatement(n *Node, data any) any        { return data }
func (BaseVisitor) VisitDoStatement(n *Node, data any) any           { return data }
func (BaseVisitor) VisitForStatement(n *Node, data any) any          { return data }
func (BaseVisitor) VisitSwitchStatement(n *Node, data any) any       { return data }
func (BaseVisitor) VisitCaseLabel(n *Node, data any) any             { return data }
func (BaseVisitor) VisitDefaultLabel(n *Node, data any) any          { return data }
func (BaseVisitor) VisitLabeledStatement(n *Node, data any) any      { return data }
func (BaseVisitor) VisitReturnStatement(n *Node, data any) any       { return data }
func (BaseVisitor) VisitBreakStatement(n *Node, data any) any        { return data }
func (BaseVisitor) VisitContinueStatement(n *Node, data any) any     { return data }
func (BaseVisitor) VisitGotoStatement(n *Node, data any) any         { return data }
func (BaseVisitor) VisitTryBlock(n *Node, data any) any              { return data }
func (BaseVisitor) VisitHandler(n *Node, data any) any               { return data }
func (BaseVisitor) VisitExpression(n *Node, data any) any            { return data }
func (BaseVisitor) VisitConditionalExpression(n *Node, data any) any { return data }
func (BaseVisitor) VisitLogicalOrExpression(n *Node, data any) any   { return data }
func (BaseVisitor) VisitLogicalAndExpression(n *Node, data any) any  { return data }
func (BaseVisitor) VisitThrowExpression(n *Node, data any) any       { return data }
