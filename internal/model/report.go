package model

// Report bundles everything the exporters consume: the graph, the traced
// flows and the build-system verdict of the analyzed project.
type Report struct {
	AnalysisDate string
	ProjectRoot  string
	BuildSystem  string
	SpringBoot   bool

	Graph *ArchitectureGraph
	Flows []*EndpointFlow
}

// EndpointCount returns the number of reconstructed endpoints.
func (r *Report) EndpointCount() int {
	if r.Graph == nil {
		return 0
	}
	return len(r.Graph.Endpoints)
}

// ControllerCount returns the number of distinct controllers that
// contributed at least one endpoint.
func (r *Report) ControllerCount() int {
	if r.Graph == nil {
		return 0
	}
	seen := make(map[string]bool)
	for _, ep := range r.Graph.Endpoints {
		seen[ep.Controller] = true
	}
	return len(seen)
}
