package model

// FlowNode is one step in a traced call chain. A node whose target could
// not be resolved is a terminal with empty Calls; a node that closes a
// cycle on its own root-to-node path carries IsCycle and is not expanded.
type FlowNode struct {
	ClassName  string      `json:"className"`
	Method     string      `json:"method"`
	ClassType  Kind        `json:"classType"`
	ReturnType string      `json:"returnType,omitempty"`
	Calls      []*FlowNode `json:"calls"`
	IsCycle    bool        `json:"isCycle,omitempty"`

	// Level and Path are filled by a post-trace flatten pass.
	// Level is the depth from the handler (root = 0), Path the chain of
	// "Class.method" steps leading to and including this node.
	Level int      `json:"level"`
	Path  []string `json:"path,omitempty"`
}

// EndpointFlow is the traced call tree for one endpoint.
type EndpointFlow struct {
	Controller string      `json:"controller"`
	Handler    string      `json:"handler"`
	HTTPMethod string      `json:"httpMethod"`
	Path       string      `json:"endpointPath"`
	Flow       []*FlowNode `json:"flow"`
}

// Walk visits every node of the flow in depth-first order.
func (f *EndpointFlow) Walk(visit func(*FlowNode)) {
	var rec func(n *FlowNode)
	rec = func(n *FlowNode) {
		visit(n)
		for _, c := range n.Calls {
			rec(c)
		}
	}
	for _, root := range f.Flow {
		rec(root)
	}
}
