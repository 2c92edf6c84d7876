package screenbind

// Static analysis traversals over a finished AST. The surrounding schema
// validation layer uses these to check a stored expression against its
// allow-lists before the expression is ever evaluated.

// CollectPaths returns every path referenced by the AST in dot notation,
// in first-appearance order, without duplicates.
func CollectPaths(node ExpressionNode) []string {
	var paths []string
	seen := make(map[string]bool)
	walkExpression(node, func(n ExpressionNode) {
		if path, ok := n.(*PathNode); ok {
			dotted := path.Dotted()
			if !seen[dotted] {
				seen[dotted] = true
				paths = append(paths, dotted)
			}
		}
	})
	return paths
}

// CollectFunctions returns every function name called by the AST, in
// first-appearance order, without duplicates.
func CollectFunctions(node ExpressionNode) []string {
	var names []string
	seen := make(map[string]bool)
	walkExpression(node, func(n ExpressionNode) {
		if call, ok := n.(*CallNode); ok {
			if !seen[call.Name] {
				seen[call.Name] = true
				names = append(names, call.Name)
			}
		}
	})
	return names
}

// walkExpression visits node and every descendant in evaluation order.
func walkExpression(node ExpressionNode, visit func(ExpressionNode)) {
	if node == nil {
		return
	}
	visit(node)

	switch n := node.(type) {
	case *CallNode:
		for _, arg := range n.Args {
			walkExpression(arg, visit)
		}
	case *BinaryNode:
		walkExpression(n.Left, visit)
		walkExpression(n.Right, visit)
	case *UnaryNode:
		walkExpression(n.Operand, visit)
	case *TernaryNode:
		walkExpression(n.Condition, visit)
		walkExpression(n.Consequent, visit)
		walkExpression(n.Alternate, visit)
	case *ArrayNode:
		for _, element := range n.Elements {
			walkExpression(element, visit)
		}
	}
}
