package openapi

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"springlens/internal/config"
	"springlens/internal/model"
)

// OpenAPI root object (3.0).
type OpenAPI struct {
	OpenAPI string              `json:"openapi"`
	Info    Info                `json:"info"`
	Paths   map[string]PathItem `json:"paths"`
}

type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// PathItem maps a lowercase HTTP verb to its operation.
type PathItem map[string]Operation

type Operation struct {
	Summary     string              `json:"summary,omitempty"`
	OperationID string              `json:"operationId,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

type Parameter struct {
	Name     string `json:"name"`
	In       string `json:"in"`
	Required bool   `json:"required,omitempty"`
	Schema   Schema `json:"schema"`
}

type RequestBody struct {
	Content  map[string]MediaType `json:"content"`
	Required bool                 `json:"required,omitempty"`
}

type MediaType struct {
	Schema interface{} `json:"schema"`
}

type Schema struct {
	Type string `json:"type"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// pathVarRegex matches {id} style template variables.
var pathVarRegex = regexp.MustCompile(`\{(\w+)\}`)

// OpenAPIExporter derives an OpenAPI 3.0 document from the endpoint list.
type OpenAPIExporter struct {
	// Stateless
}

func NewOpenAPIExporter() *OpenAPIExporter {
	return &OpenAPIExporter{}
}

func (b *OpenAPIExporter) Export(report *model.Report, cfg *config.Config) error {
	spec := b.Build(report.Graph)

	outputFile := filepath.Join(filepath.Dir(cfg.GetOutputPath()), "openapi.json")
	file, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(spec)
}

// Build assembles the document without writing it, for embedding in other
// reports and for tests.
func (b *OpenAPIExporter) Build(graph *model.ArchitectureGraph) *OpenAPI {
	spec := &OpenAPI{
		OpenAPI: "3.0.0",
		Info: Info{
			Title:   "Reconstructed API",
			Version: "1.0.0",
		},
		Paths: make(map[string]PathItem),
	}
	for _, ep := range graph.Endpoints {
		b.processEndpoint(spec, ep)
	}
	return spec
}

func (b *OpenAPIExporter) processEndpoint(spec *OpenAPI, ep model.Endpoint) {
	fullPath := ep.Path
	if fullPath == "" {
		return
	}
	if !strings.HasPrefix(fullPath, "/") {
		fullPath = "/" + fullPath
	}

	verb := strings.ToLower(ep.HTTPMethod)
	if verb == "" {
		verb = "get"
	}

	if _, ok := spec.Paths[fullPath]; !ok {
		spec.Paths[fullPath] = make(PathItem)
	}

	op := Operation{
		Summary:     ep.Handler,
		OperationID: ep.Controller + "_" + ep.Handler,
		Tags:        []string{ep.Controller},
		Responses:   make(map[string]Response),
	}

	// Path parameters come straight from the route template.
	for _, m := range pathVarRegex.FindAllStringSubmatch(fullPath, -1) {
		op.Parameters = append(op.Parameters, Parameter{
			Name:     m[1],
			In:       "path",
			Required: true,
			Schema:   Schema{Type: b.paramType(m[1], ep.Params)},
		})
	}

	// Body-carrying verbs get a generic object request body.
	switch verb {
	case "post", "put", "patch":
		op.RequestBody = &RequestBody{
			Content: map[string]MediaType{
				"application/json": {
					Schema: map[string]interface{}{"type": "object"},
				},
			},
		}
	}

	resp := Response{Description: "Successful response"}
	if ep.ReturnType != "" && ep.ReturnType != "void" {
		resp.Content = map[string]MediaType{
			"application/json": {
				Schema: map[string]interface{}{"type": b.mapType(ep.ReturnType)},
			},
		}
	}
	op.Responses["200"] = resp

	spec.Paths[fullPath][verb] = op
}

// paramType looks the path variable up in the handler's parameter list to
// type it; an unmatched variable defaults to string.
func (b *OpenAPIExporter) paramType(name, params string) string {
	for _, param := range strings.Split(params, ",") {
		fields := strings.Fields(strings.TrimSpace(param))
		if len(fields) >= 2 && fields[len(fields)-1] == name {
			return b.mapType(fields[len(fields)-2])
		}
	}
	return "string"
}

// mapType maps Java types to JSON schema types.
func (b *OpenAPIExporter) mapType(javaType string) string {
	lower := strings.ToLower(javaType)

	switch {
	case strings.Contains(lower, "int") || strings.Contains(lower, "long") ||
		strings.Contains(lower, "short") || strings.Contains(lower, "byte"):
		return "integer"
	case strings.Contains(lower, "double") || strings.Contains(lower, "float") ||
		strings.Contains(lower, "decimal"):
		return "number"
	case strings.Contains(lower, "boolean"):
		return "boolean"
	case strings.Contains(lower, "list") || strings.Contains(lower, "set") ||
		strings.Contains(lower, "[]"):
		return "array"
	case strings.Contains(lower, "map") || strings.Contains(lower, "dto") ||
		strings.Contains(lower, "entity") || strings.Contains(lower, "object") ||
		strings.Contains(lower, "responseentity"):
		return "object"
	}
	return "string"
}
