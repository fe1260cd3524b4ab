package ast

// Leaver is implemented by visitors that want to know when the subtree of
// a node has been walked.
type Leaver interface {
	Leave(n *Node, data any) any
}

// Walker turns a visitor into a tree walk: for each node it calls the
// wrapped visitor, then walks the children in order, then calls Leave if
// the wrapped visitor is a Leaver.
type Walker struct {
	V Visitor
}

func NewWalker(v Visitor) *Walker {
	return &Walker{V: v}
}

// Walk visits the subtree rooted at n in pre-order.
func Walk(v Visitor, n *Node, data any) any {
	return n.Accept(NewWalker(v), data)
}

func (w *Walker) walk(n *Node, data any) any {
	data = n.ChildrenAccept(w, data)
	if l, ok := w.V.(Leaver); ok {
		data = l.Leave(n, data)
	}
	return data
}

func (w *Walker) VisitTranslationUnit(n *Node, data any) any {
	return w.walk(n, w.V.VisitTranslationUnit(n, data))
}

func (w *Walker) VisitNamespaceDefinition(n *Node, data any) any {
	return w.walk(n, w.V.VisitNamespaceDefinition(n, data))
}

func (w *Walker) VisitUsingDirective(n *Node, data any) any {
	return w.walk(n, w.V.VisitUsingDirective(n, data))
}

func (w *Walker) VisitUsingDeclaration(n *Node, data any) any {
	return w.walk(n, w.V.VisitUsingDeclaration(n, data))
}

func (w *Walker) VisitLinkageSpecification(n *Node, data any) any {
	return w.walk(n, w.V.VisitLinkageSpecification(n, data))
}

func (w *Walker) VisitTemplateDeclaration(n *Node, data any) any {
	return w.walk(n, w.V.VisitTemplateDeclaration(n, data))
}

func (w *Walker) VisitClassSpecifier(n *Node, data any) any {
	return w.walk(n, w.V.VisitClassSpecifier(n, data))
}

func (w *Walker) VisitEnumSpecifier(n *Node, data any) any {
	return w.walk(n, w.V.VisitEnumSpecifier(n, data))
}

func (w *Walker) VisitAccessSpecifier(n *Node, data any) any {
	return w.walk(n, w.V.VisitAccessSpecifier(n, data))
}

func (w *Walker) VisitDeclaration(n *Node, data any) any {
	return w.walk(n, w.V.VisitDeclaration(n, data))
}

func (w *Walker) VisitFunctionDefinition(n *Node, data any) any {
	return w.walk(n, w.V.VisitFunctionDefinition(n, data))
}

func (w *Walker) VisitConstructorDefinition(n *Node, data any) any {
	return w.walk(n, w.V.VisitConstructorDefinition(n, data))
}

func (w *Walker) VisitDestructorDefinition(n *Node, data any) any {
	return w.walk(n, w.V.VisitDestructorDefinition(n, data))
}

func (w *Walker) VisitDeclarator(n *Node, data any) any {
	return w.walk(n, w.V.VisitDeclarator(n, data))
}

func (w *Walker) VisitFunctionDeclarator(n *Node, data any) any {
	return w.walk(n, w.V.VisitFunctionDeclarator(n, data))
}

func (w *Walker) VisitDeclaratorID(n *Node, data any) any {
	return w.walk(n, w.V.VisitDeclaratorID(n, data))
}

func (w *Walker) VisitParameterDeclaration(n *Node, data any) any {
	return w.walk(n, w.V.VisitParameterDeclaration(n, data))
}

func (w *Walker) VisitCtorInitializer(n *Node, data any) any {
	return w.walk(n, w.V.VisitCtorInitializer(n, data))
}

func (w *Walker) VisitCompoundStatement(n *Node, data any) any {
	return w.walk(n, w.V.VisitCompoundStatement(n, data))
}

func (w *Walker) VisitExpressionStatement(n *Node, data any) any {
	return w.walk(n, w.V.VisitExpressionStatement(n, data))
}

func (w *Walker) VisitEmptyStatement(n *Node, data any) any {
	return w.walk(n, w.V.VisitEmptyStatement(n, data))
}

func (w *Walker) VisitIfStatement(n *Node, data any) any {
	return w.walk(n, w.V.VisitIfStatement(n, data))
}

func (w *Walker) VisitWhileStatement(n *Node, data any) any {
	return w.walk(n, w.V.VisitWhileStatement(n, data))
}

func (w *Walker) VisitDoStatement(n *Node, data any) any {
	return w.walk(n, w.V.VisitDoStatement(n, data))
}

func (w *Walker) VisitForStatement(n *Node, data any) any {
	return w.walk(n, w.V.VisitForStatement(n, data))
}

func (w *Walker) VisitSwitchStatement(n *Node, data any) any {
	return w.walk(n, w.V.VisitSwitchStatement(n, data))
}

func (w *Walker) VisitCaseLabel(n *Node, data any) any {
	return w.walk(n, w.V.VisitCaseLabel(n, data))
}

func (w *Walker) VisitDefaultLabel(n *Node, data any) any {
	return w.walk(n, w.V.VisitDefaultLabel(n, data))
}

func (w *Walker) VisitLabeledStatement(n *Node, data any) any {
	return w.walk(n, w.V.VisitLabeledStatement(n, data))
}

func (w *Walker) VisitReturnStatement(n *Node, data any) any {
	return w.walk(n, w.V.VisitReturnStatement(n, data))
}

func (w *Walker) VisitBreakStatement(n *Node, data any) any {
	return w.walk(n, w.V.VisitBreakStatement(n, data))
}

func (w *Walker) VisitContinueStatement(n *Node, data any) any {
	return w.walk(n, w.V.VisitContinueStatement(n, data))
}

func (w *Walker) VisitGotoStatement(n *Node, data any) any {
	return w.walk(n, w.V.VisitGotoStatement(n, data))
}

func (w *Walker) VisitTryBlock(n *Node, data any) any {
	return w.walk(n, w.V.VisitTryBlock(n, data))
}

func (w *Walker) VisitHandler(n *Node, data any) any {
	return w.walk(n, w.V.VisitHandler(n, data))
}

func (w *Walker) VisitExpression(n *Node, data any) any {
	return w.walk(n, w.V.VisitExpression(n, data))
}

func (w *Walker) VisitConditionalExpression(n *Node, data any) any {
	return w.walk(n, w.V.VisitConditionalExpression(n, data))
}

func (w *Walker) VisitLogicalOrExpression(n *Node, data any) any {
	return w.walk(n, w.V.VisitLogicalOrExpression(n, data))
}

func (w *Walker) VisitLogicalAndExpression(n *Node, data any) any {
	return w.walk(n, w.V.VisitLogicalAndExpression(n, data))
}

func (w *Walker) VisitThrowExpression(n *Node, data any) any {
	return w.walk(n, w.V.VisitThrowExpression(n, data))
}

// Multi runs several visitors over the same node, in registration order,
// so a single walk feeds many analyses. Every member sees the state the
// Multi received and that state is returned unchanged.
type Multi struct {
	visitors []Visitor
}

func NewMulti(visitors ...Visitor) *Multi {
	return &Multi{visitors: visitors}
}

func (m *Multi) Register(v Visitor) {
	m.visitors = append(m.visitors, v)
}

func (m *Multi) Len() int {
	return len(m.visitors)
}

// Leave forwards to the members that are Leavers.
func (m *Multi) Leave(n *Node, data any) any {
	for _, v := range m.visitors {
		if l, ok := v.(Leaver); ok {
			l.Leave(n, data)
		}
	}
	return data
}

func (m *Multi) VisitTranslationUnit(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitTranslationUnit(n, data)
	}
	return data
}

func (m *Multi) VisitNamespaceDefinition(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitNamespaceDefinition(n, data)
	}
	return data
}

func (m *Multi) VisitUsingDirective(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitUsingDirective(n, data)
	}
	return data
}

func (m *Multi) VisitUsingDeclaration(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitUsingDeclaration(n, data)
	}
	return data
}

func (m *Multi) VisitLinkageSpecification(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitLinkageSpecification(n, data)
	}
	return data
}

func (m *Multi) VisitTemplateDeclaration(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitTemplateDeclaration(n, data)
	}
	return data
}

func (m *Multi) VisitClassSpecifier(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitClassSpecifier(n, data)
	}
	return data
}

func (m *Multi) VisitEnumSpecifier(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitEnumSpecifier(n, data)
	}
	return data
}

func (m *Multi) VisitAccessSpecifier(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitAccessSpecifier(n, data)
	}
	return data
}

func (m *Multi) VisitDeclaration(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitDeclaration(n, data)
	}
	return data
}

func (m *Multi) VisitFunctionDefinition(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitFunctionDefinition(n, data)
	}
	return data
}

func (m *Multi) VisitConstructorDefinition(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitConstructorDefinition(n, data)
	}
	return data
}

func (m *Multi) VisitDestructorDefinition(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitDestructorDefinition(n, data)
	}
	return data
}

func (m *Multi) VisitDeclarator(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitDeclarator(n, data)
	}
	return data
}

func (m *Multi) VisitFunctionDeclarator(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitFunctionDeclarator(n, data)
	}
	return data
}

func (m *Multi) VisitDeclaratorID(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitDeclaratorID(n, data)
	}
	return data
}

func (m *Multi) VisitParameterDeclaration(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitParameterDeclaration(n, data)
	}
	return data
}

func (m *Multi) VisitCtorInitializer(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitCtorInitializer(n, data)
	}
	return data
}

func (m *Multi) VisitCompoundStatement(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitCompoundStatement(n, data)
	}
	return data
}

func (m *Multi) VisitExpressionStatement(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitExpressionStatement(n, data)
	}
	return data
}

func (m *Multi) VisitEmptyStatement(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitEmptyStatement(n, data)
	}
	return data
}

func (m *Multi) VisitIfStatement(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitIfStatement(n, data)
	}
	return data
}

func (m *Multi) VisitWhileStatement(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitWhileStatement(n, data)
	}
	return data
}

func (m *Multi) VisitDoStatement(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitDoStatement(n, data)
	}
	return data
}

func (m *Multi) VisitForStatement(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitForStatement(n, data)
	}
	return data
}

func (m *Multi) VisitSwitchStatement(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitSwitchStatement(n, data)
	}
	return data
}

func (m *Multi) VisitCaseLabel(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitCaseLabel(n, data)
	}
	return data
}

func (m *Multi) VisitDefaultLabel(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitDefaultLabel(n, data)
	}
	return data
}

func (m *Multi) VisitLabeledStatement(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitLabeledStatement(n, data)
	}
	return data
}

func (m *Multi) VisitReturnStatement(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitReturnStatement(n, data)
	}
	return data
}

func (m *Multi) VisitBreakStatement(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitBreakStatement(n, data)
	}
	return data
}

func (m *Multi) VisitContinueStatement(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitContinueStatement(n, data)
	}
	return data
}

func (m *Multi) VisitGotoStatement(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitGotoStatement(n, data)
	}
	return data
}

func (m *Multi) VisitTryBlock(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitTryBlock(n, data)
	}
	return data
}

func (m *Multi) VisitHandler(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitHandler(n, data)
	}
	return data
}

func (m *Multi) VisitExpression(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitExpression(n, data)
	}
	return data
}

func (m *Multi) VisitConditionalExpression(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitConditionalExpression(n, data)
	}
	return data
}

func (m *Multi) VisitLogicalOrExpression(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitLogicalOrExpression(n, data)
	}
	return data
}

func (m *Multi) VisitLogicalAndExpression(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitLogicalAndExpression(n, data)
	}
	return data
}

func (m *Multi) VisitThrowExpression(n *Node, data any) any {
	for _, v := range m.visitors {
		v.VisitThrowExpression(n, data)
	}
	return data
}
