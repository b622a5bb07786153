package analyzer

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// pythonAnalyzer extracts definitions from Python source using tree-sitter.
type pythonAnalyzer struct{}

// NewPythonAnalyzer creates the AST-driven Python analyzer.
func NewPythonAnalyzer() Analyzer {
	return &pythonAnalyzer{}
}

// Analyze parses the source into a syntax tree and emits every module-level
// function and class. Source with syntax errors fails with *SyntaxError; no
// partial result is returned.
func (a *pythonAnalyzer) Analyze(source string) (*Result, error) {
	src := []byte(source)

	// A sitter.Parser is not safe for concurrent use, so each call gets its
	// own instance.
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, &InternalError{Op: "parse", Msg: err.Error()}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxErrorFrom(root)
	}

	result := NewResult()
	cursor := sitter.NewTreeCursor(root)
	defer cursor.Close()

	walkTree(cursor, func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition":
			if isModuleLevel(n) {
				result.Functions = append(result.Functions, a.parseFunction(n, src))
			}
		case "class_definition":
			if isModuleLevel(n) {
				result.Classes = append(result.Classes, a.parseClass(n, src))
			}
		}
	})

	return result, nil
}

// isModuleLevel reports whether a definition has no enclosing function or
// class. Wrappers such as decorated_definition and plain statement blocks
// (if, try, with) do not count as enclosures.
func isModuleLevel(node *sitter.Node) bool {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Type() {
		case "function_definition", "class_definition":
			return false
		}
	}
	return true
}

func (a *pythonAnalyzer) parseFunction(node *sitter.Node, source []byte) Function {
	fn := Function{
		StartLine:  int(node.StartPoint().Row) + 1,
		EndLine:    int(node.EndPoint().Row) + 1,
		Parameters: make([]Parameter, 0),
		ReturnType: TypeUnknown,
	}

	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		fn.Name = nameNode.Content(source)
	}
	if paramsNode := node.ChildByFieldName("parameters"); paramsNode != nil {
		fn.Parameters = a.parseParameters(paramsNode, source)
	}
	if retNode := node.ChildByFieldName("return_type"); retNode != nil {
		fn.ReturnType = retNode.Content(source)
	}

	return fn
}

func (a *pythonAnalyzer) parseParameters(node *sitter.Node, source []byte) []Parameter {
	params := make([]Parameter, 0)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			params = append(params, Parameter{Name: child.Content(source), Type: TypeUnknown})
		case "typed_parameter":
			param := Parameter{Name: patternName(child, source), Type: TypeUnknown}
			if typeNode := child.ChildByFieldName("type"); typeNode != nil {
				param.Type = typeNode.Content(source)
			}
			if param.Name != "" {
				params = append(params, param)
			}
		case "default_parameter":
			param := Parameter{Type: TypeUnknown}
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				param.Name = nameNode.Content(source)
			}
			if param.Name != "" {
				params = append(params, param)
			}
		case "typed_default_parameter":
			param := Parameter{Type: TypeUnknown}
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				param.Name = nameNode.Content(source)
			}
			if typeNode := child.ChildByFieldName("type"); typeNode != nil {
				param.Type = typeNode.Content(source)
			}
			if param.Name != "" {
				params = append(params, param)
			}
		case "list_splat_pattern", "dictionary_splat_pattern":
			// *args / **kwargs carry the bare identifier name.
			if name := patternName(child, source); name != "" {
				params = append(params, Parameter{Name: name, Type: TypeUnknown})
			}
		}
	}

	return params
}

// patternName returns the identifier bound by a parameter pattern,
// unwrapping splat prefixes.
func patternName(node *sitter.Node, source []byte) string {
	if node.Type() == "identifier" {
		return node.Content(source)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "identifier":
			return child.Content(source)
		case "list_splat_pattern", "dictionary_splat_pattern":
			return patternName(child, source)
		}
	}
	return ""
}

func (a *pythonAnalyzer) parseClass(node *sitter.Node, source []byte) Class {
	cls := Class{
		Methods:    make([]Method, 0),
		Attributes: make([]string, 0),
		Bases:      make([]string, 0),
	}

	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		cls.Name = nameNode.Content(source)
	}
	if supersNode := node.ChildByFieldName("superclasses"); supersNode != nil {
		cls.Bases = a.parseBases(supersNode, source)
	}

	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return cls
	}

	seen := make(map[string]bool)
	for i := 0; i < int(bodyNode.ChildCount()); i++ {
		child := bodyNode.Child(i)
		if child.Type() == "decorated_definition" {
			if def := child.ChildByFieldName("definition"); def != nil {
				child = def
			}
		}
		if child.Type() != "function_definition" {
			continue
		}

		fn := a.parseFunction(child, source)
		method := Method{Name: fn.Name, Args: make([]string, 0, len(fn.Parameters))}
		for _, p := range fn.Parameters {
			method.Args = append(method.Args, p.Name)
		}
		cls.Methods = append(cls.Methods, method)

		receiver := ""
		if len(method.Args) > 0 {
			receiver = method.Args[0]
		}
		for _, attr := range a.collectAttributes(child, receiver, source) {
			if !seen[attr] {
				seen[attr] = true
				cls.Attributes = append(cls.Attributes, attr)
			}
		}
	}

	return cls
}

// parseBases stringifies the non-keyword expressions of the superclass list.
// Keyword arguments such as metaclass=X are not base classes.
func (a *pythonAnalyzer) parseBases(node *sitter.Node, source []byte) []string {
	bases := make([]string, 0)

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "keyword_argument" || child.Type() == "comment" {
			continue
		}
		bases = append(bases, child.Content(source))
	}

	return bases
}

// collectAttributes scans a method body for assignments targeting an
// attribute of the method's first parameter (the "self.field = ..." shape)
// and returns the field names in source order.
func (a *pythonAnalyzer) collectAttributes(fnNode *sitter.Node, receiver string, source []byte) []string {
	attrs := make([]string, 0)
	if receiver == "" {
		return attrs
	}

	bodyNode := fnNode.ChildByFieldName("body")
	if bodyNode == nil {
		return attrs
	}

	cursor := sitter.NewTreeCursor(bodyNode)
	defer cursor.Close()

	walkTree(cursor, func(n *sitter.Node) {
		if n.Type() != "assignment" {
			return
		}
		left := n.ChildByFieldName("left")
		if left == nil || left.Type() != "attribute" {
			return
		}
		objNode := left.ChildByFieldName("object")
		attrNode := left.ChildByFieldName("attribute")
		if objNode == nil || attrNode == nil {
			return
		}
		if objNode.Type() == "identifier" && objNode.Content(source) == receiver {
			attrs = append(attrs, attrNode.Content(source))
		}
	})

	return attrs
}

// syntaxErrorFrom locates the first ERROR or missing node and builds the
// adapter's syntax error from its position.
func syntaxErrorFrom(root *sitter.Node) *SyntaxError {
	node := firstErrorNode(root)
	if node == nil {
		return &SyntaxError{Msg: "invalid syntax"}
	}

	msg := "invalid syntax"
	if node.IsMissing() {
		msg = "missing " + node.Type()
	}
	return &SyntaxError{
		Line:   int(node.StartPoint().Row) + 1,
		Column: int(node.StartPoint().Column) + 1,
		Msg:    msg,
	}
}

func firstErrorNode(node *sitter.Node) *sitter.Node {
	if !node.HasError() && !node.IsMissing() {
		return nil
	}
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstErrorNode(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

// walkTree visits every node under the cursor's root in document order.
func walkTree(cursor *sitter.TreeCursor, fn func(*sitter.Node)) {
	for {
		fn(cursor.CurrentNode())

		if cursor.GoToFirstChild() {
			continue
		}

		for {
			if cursor.GoToNextSibling() {
				break
			}
			if !cursor.GoToParent() {
				return
			}
		}
	}
}
