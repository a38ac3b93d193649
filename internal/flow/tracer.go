package flow

import (
	"strings"

	"springlens/internal/logger"
	"springlens/internal/model"
)

// Tracer walks the resolved calls of an architecture graph and builds a
// call tree per endpoint. Tracing never fails: an unresolvable class or
// method becomes a terminal node, a repeated class.method on the current
// path becomes a cycle marker.
type Tracer struct {
	graph *model.ArchitectureGraph
}

// NewTracer creates a Tracer over the given graph.
func NewTracer(graph *model.ArchitectureGraph) *Tracer {
	return &Tracer{graph: graph}
}

// methodAliases maps common handler names to the implementation names
// codebases actually use. Consulted when no exact or annotation-based
// handler match exists.
var methodAliases = map[string][]string{
	"makeTransfer":        {"transfer", "transferMoney", "processTransfer", "performTransfer"},
	"withdraw":            {"withdrawMoney", "processWithdraw", "performWithdraw", "withdrawAmount"},
	"deposit":             {"depositMoney", "processDeposit", "performDeposit", "depositAmount"},
	"checkAccountBalance": {"getBalance", "retrieveBalance", "accountBalance", "getAccountBalance"},
	"createAccount":       {"addAccount", "registerAccount", "openAccount", "newAccount"},
}

// Trace builds the call tree for one endpoint. The result always carries
// the endpoint identity; when the controller or handler cannot be
// resolved the Flow list is empty.
func (t *Tracer) Trace(ep model.Endpoint) *model.EndpointFlow {
	out := &model.EndpointFlow{
		Controller: ep.Controller,
		Handler:    ep.Handler,
		HTTPMethod: ep.HTTPMethod,
		Path:       ep.Path,
		Flow:       []*model.FlowNode{},
	}

	cls := t.lookupClass(ep.Controller)
	if cls == nil {
		logger.Debug("flow: controller %s not found in graph", ep.Controller)
		return out
	}

	handler := t.lookupHandler(cls, ep)
	if handler == nil {
		logger.Debug("flow: handler %s.%s not found", ep.Controller, ep.Handler)
		return out
	}

	root := t.traceMethod(cls, handler, map[string]bool{})
	flatten(root, 0, nil)
	out.Flow = append(out.Flow, root)
	return out
}

// TraceAll traces every endpoint of the graph.
func (t *Tracer) TraceAll() []*model.EndpointFlow {
	flows := make([]*model.EndpointFlow, 0, len(t.graph.Endpoints))
	for _, ep := range t.graph.Endpoints {
		flows = append(flows, t.Trace(ep))
	}
	return flows
}

// traceMethod expands one class.method node. The visited set is scoped to
// the path from the root: each call branch gets its own copy, so a method
// reached through two sibling branches is expanded in both, while a true
// cycle on a single path terminates.
func (t *Tracer) traceMethod(cls *model.ClassRecord, m *model.ClassMethod, visited map[string]bool) *model.FlowNode {
	key := cls.Name + "." + m.Name
	node := &model.FlowNode{
		ClassName:  cls.Name,
		Method:     m.Name,
		ClassType:  cls.Kind,
		ReturnType: m.ReturnType,
		Calls:      []*model.FlowNode{},
	}

	if visited[key] {
		node.IsCycle = true
		return node
	}
	visited[key] = true

	for _, call := range m.Calls {
		// A direct self-call (recursion) adds nothing to the picture.
		if call.Class == cls.Name && call.Method == m.Name {
			continue
		}
		node.Calls = append(node.Calls, t.traceCall(call, copyVisited(visited)))
	}

	return node
}

// traceCall resolves one outgoing call. Unknown classes and unknown
// methods yield terminal nodes with a role guessed from the name.
func (t *Tracer) traceCall(call model.Call, visited map[string]bool) *model.FlowNode {
	target := t.lookupClass(call.Class)
	if target == nil {
		return &model.FlowNode{
			ClassName:  call.Class,
			Method:     call.Method,
			ClassType:  model.KindFromName(call.Class),
			ReturnType: "void",
			Calls:      []*model.FlowNode{},
		}
	}

	m := findMethod(target, call.Method)
	if m == nil {
		return &model.FlowNode{
			ClassName:  target.Name,
			Method:     call.Method,
			ClassType:  target.Kind,
			ReturnType: "void",
			Calls:      []*model.FlowNode{},
		}
	}

	return t.traceMethod(target, m, visited)
}

// lookupClass finds a class record by name: exact, then case-insensitive,
// then substring in either direction.
func (t *Tracer) lookupClass(name string) *model.ClassRecord {
	if rec, ok := t.graph.Classes[name]; ok {
		return rec
	}

	lower := strings.ToLower(name)
	for key, rec := range t.graph.Classes {
		if strings.ToLower(key) == lower {
			return rec
		}
	}
	for key, rec := range t.graph.Classes {
		keyLower := strings.ToLower(key)
		if strings.Contains(keyLower, lower) || strings.Contains(lower, keyLower) {
			return rec
		}
	}
	return nil
}

// findMethod resolves a method on an already-resolved class. After an
// exact miss the same recovery ladder applies as for root handlers: the
// alias table, name containment, and finally any method carrying a
// mapping annotation.
func findMethod(cls *model.ClassRecord, name string) *model.ClassMethod {
	if m := cls.Method(name); m != nil {
		return m
	}

	for _, alias := range methodAliases[name] {
		if m := cls.Method(alias); m != nil {
			return m
		}
	}

	lower := strings.ToLower(name)
	for i := range cls.Methods {
		if cls.Methods[i].Constructor {
			continue
		}
		if strings.Contains(strings.ToLower(cls.Methods[i].Name), lower) {
			return &cls.Methods[i]
		}
	}

	for i := range cls.Methods {
		for _, ann := range cls.Methods[i].Annotations {
			if strings.HasSuffix(ann, "Mapping") {
				return &cls.Methods[i]
			}
		}
	}
	return nil
}

// lookupHandler resolves the endpoint's handler method on the controller.
// The recovery ladder after an exact miss: a mapping annotation matching
// the endpoint's verb, the alias table, name containment, and finally any
// method carrying a mapping annotation at all.
func (t *Tracer) lookupHandler(cls *model.ClassRecord, ep model.Endpoint) *model.ClassMethod {
	if m := cls.Method(ep.Handler); m != nil {
		return m
	}

	verbAnnotation := verbMappingName(ep.HTTPMethod)
	for i := range cls.Methods {
		for _, ann := range cls.Methods[i].Annotations {
			if ann == verbAnnotation || ann == "RequestMapping" {
				return &cls.Methods[i]
			}
		}
	}

	for _, alias := range methodAliases[ep.Handler] {
		if m := cls.Method(alias); m != nil {
			return m
		}
	}

	handlerLower := strings.ToLower(ep.Handler)
	for i := range cls.Methods {
		if cls.Methods[i].Constructor {
			continue
		}
		nameLower := strings.ToLower(cls.Methods[i].Name)
		if len(nameLower) > 3 &&
			(strings.Contains(nameLower, handlerLower) || strings.Contains(handlerLower, nameLower)) {
			return &cls.Methods[i]
		}
	}

	for i := range cls.Methods {
		for _, ann := range cls.Methods[i].Annotations {
			if strings.HasSuffix(ann, "Mapping") {
				return &cls.Methods[i]
			}
		}
	}
	return nil
}

// verbMappingName maps an HTTP verb to its shortcut annotation name.
func verbMappingName(verb string) string {
	switch strings.ToUpper(verb) {
	case "GET":
		return "GetMapping"
	case "POST":
		return "PostMapping"
	case "PUT":
		return "PutMapping"
	case "DELETE":
		return "DeleteMapping"
	case "PATCH":
		return "PatchMapping"
	}
	return "RequestMapping"
}

func copyVisited(visited map[string]bool) map[string]bool {
	out := make(map[string]bool, len(visited))
	for k, v := range visited {
		out[k] = v
	}
	return out
}

// flatten assigns Level and Path to every node of a traced tree. The path
// slice is copied per node so siblings do not share backing arrays.
func flatten(node *model.FlowNode, level int, path []string) {
	node.Level = level

	nodePath := make([]string, len(path), len(path)+1)
	copy(nodePath, path)
	nodePath = append(nodePath, node.ClassName+"."+node.Method)
	node.Path = nodePath

	for _, child := range node.Calls {
		flatten(child, level+1, nodePath)
	}
}
