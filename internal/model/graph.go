package model

import "strings"

// Kind is the architectural role assigned to a class.
type Kind string

const (
	KindController Kind = "controller"
	KindService    Kind = "service"
	KindRepository Kind = "repository"
	KindEntity     Kind = "entity"
	KindUnknown    Kind = "unknown"
)

// KindFromName guesses the architectural role from a class name alone.
// Used when a call target was never scanned and only its name is known.
func KindFromName(name string) Kind {
	switch {
	case strings.HasSuffix(name, "Controller"):
		return KindController
	case strings.HasSuffix(name, "Service"), strings.HasSuffix(name, "Manager"):
		return KindService
	case strings.HasSuffix(name, "Repository"), strings.HasSuffix(name, "Dao"),
		strings.HasSuffix(name, "Repo"):
		return KindRepository
	}
	return KindUnknown
}

// Call is a single resolved call expression found in a method body.
// Class is the simple name of the callee class, Method the callee method.
type Call struct {
	Class  string `json:"class"`
	Method string `json:"method"`
}

// ClassField is a declared field of a class (for injection binding detection).
type ClassField struct {
	Name        string
	Type        string
	Annotations []string
}

// ClassMethod is a declared method of a class with its extracted body
// and the call expressions resolved from it.
type ClassMethod struct {
	Name        string
	Constructor bool
	Params      string
	ParamsList  []string
	ReturnType  string
	Annotations []string
	Body        string
	Calls       []Call
}

// ClassRecord is the full structural record of one analyzed class.
// Classes are keyed by simple name; a duplicate simple name overwrites
// the earlier record (last write wins).
type ClassRecord struct {
	Name        string
	Package     string
	Kind        Kind
	Annotations []string
	Extends     string
	Implements  []string
	Fields      []ClassField
	Methods     []ClassMethod
	FilePath    string
}

// Method returns the method with the given name, or nil.
func (c *ClassRecord) Method(name string) *ClassMethod {
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			return &c.Methods[i]
		}
	}
	return nil
}

// Endpoint is one HTTP route exposed by a controller.
type Endpoint struct {
	Controller   string   `json:"controller"`
	HTTPMethod   string   `json:"method"`
	Path         string   `json:"path"`
	Handler      string   `json:"handler"`
	Params       string   `json:"params,omitempty"`
	ReturnType   string   `json:"returnType,omitempty"`
	ServiceCalls []Call   `json:"serviceCalls,omitempty"`
	Services     []string `json:"services,omitempty"`
	Repositories []string `json:"repositories,omitempty"`
	FilePath     string   `json:"-"`
}

// ServiceMethod is one method of a service class together with the
// repository calls found in its body.
type ServiceMethod struct {
	Name            string `json:"name"`
	Params          string `json:"params,omitempty"`
	ReturnType      string `json:"returnType,omitempty"`
	RepositoryCalls []Call `json:"repositoryCalls,omitempty"`
}

// ServiceRecord is the extracted view of a service class.
type ServiceRecord struct {
	Name     string          `json:"name"`
	Package  string          `json:"package,omitempty"`
	Methods  []ServiceMethod `json:"methods"`
	FilePath string          `json:"-"`
}

// RepositoryRecord is the extracted view of a repository interface.
// EntityType is taken from the Spring Data generic parameter when present.
type RepositoryRecord struct {
	Name       string   `json:"name"`
	EntityType string   `json:"entityType,omitempty"`
	Methods    []string `json:"methods"`
	FilePath   string   `json:"-"`
}

// EntityField is a persisted field of an entity class.
type EntityField struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Annotations []string `json:"annotations,omitempty"`
}

// EntityRelationship is a JPA association declared on an entity field.
// Target is the related entity's simple name with collection wrappers removed.
type EntityRelationship struct {
	Type       string `json:"type"`
	Field      string `json:"field"`
	Target     string `json:"targetEntity"`
	JoinColumn string `json:"joinColumn,omitempty"`
}

// EntityRecord is the extracted view of a persistence entity.
type EntityRecord struct {
	Name           string               `json:"name"`
	Package        string               `json:"package,omitempty"`
	TableName      string               `json:"tableName,omitempty"`
	Annotations    []string             `json:"annotations,omitempty"`
	Fields         []EntityField        `json:"fields"`
	Relationships  []EntityRelationship `json:"relationships,omitempty"`
	ColumnMappings map[string]string    `json:"columnMappings,omitempty"`
	Extends        string               `json:"extends,omitempty"`
	Implements     []string             `json:"implements,omitempty"`
	FilePath       string               `json:"-"`
}

// EntityCatalog is the result of an entity-only pass over a source tree.
type EntityCatalog struct {
	Entities map[string]*EntityRecord `json:"entities"`
}

// ArchitectureGraph is the complete reconstructed model of a source tree.
// All maps are keyed by simple class name.
type ArchitectureGraph struct {
	Endpoints    []Endpoint
	Services     map[string]*ServiceRecord
	Repositories map[string]*RepositoryRecord
	Entities     map[string]*EntityRecord

	// ControllerServices and ServiceRepositories hold the injected
	// dependency edges derived from field bindings.
	ControllerServices  map[string][]string
	ServiceRepositories map[string][]string

	// Classes holds every classified class record, including the
	// method bodies and resolved calls the flow tracer walks.
	Classes map[string]*ClassRecord
}

// NewArchitectureGraph returns an empty graph with all maps initialized.
func NewArchitectureGraph() *ArchitectureGraph {
	return &ArchitectureGraph{
		Endpoints:           []Endpoint{},
		Services:            make(map[string]*ServiceRecord),
		Repositories:        make(map[string]*RepositoryRecord),
		Entities:            make(map[string]*EntityRecord),
		ControllerServices:  make(map[string][]string),
		ServiceRepositories: make(map[string][]string),
		Classes:             make(map[string]*ClassRecord),
	}
}

// Controllers returns the class records classified as controllers.
func (g *ArchitectureGraph) Controllers() []*ClassRecord {
	var out []*ClassRecord
	for _, rec := range g.Classes {
		if rec.Kind == KindController {
			out = append(out, rec)
		}
	}
	return out
}
