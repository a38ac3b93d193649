package analyzer

import (
	"fmt"
	"os"
	"sort"

	"springlens/internal/config"
	"springlens/internal/javaparser"
	"springlens/internal/linker"
	"springlens/internal/logger"
	"springlens/internal/model"
)

// Analyzer reconstructs the architecture of a Java/Spring source tree.
// Each Scan call works on fresh state; an Analyzer can be reused across
// repositories.
type Analyzer struct {
	cfg *config.Config
}

// New creates an Analyzer with the given configuration.
func New(cfg *config.Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// parsedUnit is one source file that survived reading and parsing.
type parsedUnit struct {
	path    string
	content string
	kind    model.Kind
	class   *javaparser.JavaClass
}

// Scan analyzes the repository at root and returns the architecture
// graph. The only hard failure is a missing or non-directory root; every
// per-file problem is logged and skipped.
func (a *Analyzer) Scan(root string) (*model.ArchitectureGraph, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("repository path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("repository path is not a directory: %s", root)
	}

	files := FindJavaFiles(root, a.cfg)
	logger.Info("Found %d Java files", len(files))

	units := a.parseFiles(files)
	graph := model.NewArchitectureGraph()

	// Class records first: endpoint extraction and dependency edges read
	// the bindings and resolved calls off these records.
	for _, u := range units {
		graph.Classes[u.class.Name] = buildClassRecord(u.class, u.kind, u.path)
	}

	for _, u := range units {
		switch u.kind {
		case model.KindController:
			graph.Endpoints = append(graph.Endpoints, buildEndpoints(u.class, u.path)...)
		case model.KindService:
			svc := buildServiceRecord(u.class, u.path)
			graph.Services[svc.Name] = svc
		case model.KindRepository:
			repo := buildRepositoryRecord(u.class, u.content, u.path)
			graph.Repositories[repo.Name] = repo
		case model.KindEntity:
			ent := buildEntityRecord(u.class, u.path)
			graph.Entities[ent.Name] = ent
		}
	}

	linkDependencies(graph)
	enrichEndpoints(graph)

	sort.Slice(graph.Endpoints, func(i, j int) bool {
		a, b := graph.Endpoints[i], graph.Endpoints[j]
		if a.Controller != b.Controller {
			return a.Controller < b.Controller
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.HTTPMethod < b.HTTPMethod
	})

	logger.Info("Reconstructed %d endpoints, %d services, %d repositories, %d entities",
		len(graph.Endpoints), len(graph.Services), len(graph.Repositories), len(graph.Entities))

	return graph, nil
}

// ParseEntities runs an entity-only pass over the repository. Unlike
// Scan, it always walks the whole tree: entity classes regularly live
// outside the conventional source root in mixed repositories.
func (a *Analyzer) ParseEntities(root string) (*model.EntityCatalog, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("repository path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("repository path is not a directory: %s", root)
	}

	catalog := &model.EntityCatalog{Entities: make(map[string]*model.EntityRecord)}

	for _, u := range a.parseFiles(collectJavaFiles(root, a.cfg)) {
		if u.kind != model.KindEntity {
			continue
		}
		ent := buildEntityRecord(u.class, u.path)
		catalog.Entities[ent.Name] = ent
	}

	logger.Info("Entity pass found %d entities", len(catalog.Entities))
	return catalog, nil
}

func (a *Analyzer) parseFiles(files []string) []parsedUnit {
	var units []parsedUnit
	for _, path := range files {
		content, err := ReadFile(path, a.cfg.Project.Encoding)
		if err != nil {
			logger.LogParseError(path, err, "read")
			continue
		}
		content = StripComments(content)

		jc, err := javaparser.ParseJavaFile(content)
		if err != nil || jc.Name == "" {
			logger.Debug("no type declaration found in %s", path)
			continue
		}
		units = append(units, parsedUnit{
			path:    path,
			content: content,
			kind:    Classify(content),
			class:   jc,
		})
	}
	return units
}

// linkDependencies derives the injected dependency edges from the binding
// tables: controller -> services and service -> repositories.
func linkDependencies(graph *model.ArchitectureGraph) {
	for name, rec := range graph.Classes {
		bindings := linker.BuildBindings(rec)
		switch rec.Kind {
		case model.KindController:
			services := typedBindingsWithSuffix(bindings, "Service")
			sort.Strings(services)
			graph.ControllerServices[name] = services
		case model.KindService:
			repos := append(typedBindingsWithSuffix(bindings, "Repository"),
				typedBindingsWithSuffix(bindings, "Dao")...)
			sort.Strings(repos)
			graph.ServiceRepositories[name] = repos
		}
	}
}

// enrichEndpoints fills each endpoint's service and repository lists with
// the union of the controller's injected services, the services named in
// the handler body, and every repository those services depend on. This
// is a coarse per-controller view; the flow tracer produces the precise
// per-handler chains.
func enrichEndpoints(graph *model.ArchitectureGraph) {
	for i := range graph.Endpoints {
		ep := &graph.Endpoints[i]

		serviceSet := make(map[string]bool)
		for _, svc := range graph.ControllerServices[ep.Controller] {
			serviceSet[svc] = true
		}
		for _, call := range ep.ServiceCalls {
			serviceSet[call.Class] = true
		}

		repoSet := make(map[string]bool)
		for svc := range serviceSet {
			for _, repo := range graph.ServiceRepositories[svc] {
				repoSet[repo] = true
			}
		}

		ep.Services = sortedKeys(serviceSet)
		ep.Repositories = sortedKeys(repoSet)
	}
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
