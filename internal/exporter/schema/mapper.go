package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"springlens/internal/config"
	"springlens/internal/model"
)

// Overview is the database view derived from the entity catalog.
type Overview struct {
	Tables map[string]Table `json:"tables"`
}

// Table describes one mapped table.
type Table struct {
	Entity    string     `json:"entity"`
	Columns   []Column   `json:"columns"`
	Relations []Relation `json:"relations,omitempty"`
	UsedBy    []string   `json:"usedBy,omitempty"`
}

// Column is one mapped column with its Java field origin.
type Column struct {
	Name  string `json:"name"`
	Field string `json:"field"`
	Type  string `json:"type"`
}

// Relation is one association edge, expressed in table terms.
type Relation struct {
	Type        string `json:"type"`
	TargetTable string `json:"targetTable"`
	JoinColumn  string `json:"joinColumn,omitempty"`
}

// SchemaExporter writes the schema overview JSON.
type SchemaExporter struct{}

func NewSchemaExporter() *SchemaExporter {
	return &SchemaExporter{}
}

func (e *SchemaExporter) Export(report *model.Report, cfg *config.Config) error {
	overview := BuildOverview(report.Graph)

	outputFile := filepath.Join(cfg.Output.Dir, "schema.json")
	file, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(overview)
}

// BuildOverview maps every entity to its table. The @Table name wins;
// otherwise the table name is the snake_case of the entity name.
func BuildOverview(graph *model.ArchitectureGraph) *Overview {
	overview := &Overview{Tables: make(map[string]Table)}

	for name, ent := range graph.Entities {
		table := Table{
			Entity:  name,
			Columns: []Column{},
		}

		relFields := make(map[string]bool, len(ent.Relationships))
		for _, rel := range ent.Relationships {
			relFields[rel.Field] = true
			table.Relations = append(table.Relations, Relation{
				Type:        rel.Type,
				TargetTable: tableNameFor(graph, rel.Target),
				JoinColumn:  rel.JoinColumn,
			})
		}

		for _, field := range ent.Fields {
			// Association fields are edges, not columns.
			if relFields[field.Name] {
				continue
			}
			column := field.Name
			if mapped, ok := ent.ColumnMappings[field.Name]; ok {
				column = mapped
			} else {
				column = ToSnakeCase(field.Name)
			}
			table.Columns = append(table.Columns, Column{
				Name:  column,
				Field: field.Name,
				Type:  field.Type,
			})
		}

		table.UsedBy = endpointUsage(graph, name)
		overview.Tables[tableNameFor(graph, name)] = table
	}

	return overview
}

// tableNameFor resolves the table name of an entity, falling back to the
// snake_case convention for entities never scanned.
func tableNameFor(graph *model.ArchitectureGraph, entity string) string {
	if ent, ok := graph.Entities[entity]; ok && ent.TableName != "" {
		return ent.TableName
	}
	return ToSnakeCase(entity)
}

// endpointUsage finds the endpoints whose path mentions the entity name.
// A heuristic: "Account" matches /accounts/{id}.
func endpointUsage(graph *model.ArchitectureGraph, entity string) []string {
	needle := strings.ToLower(entity)
	var usedBy []string
	for _, ep := range graph.Endpoints {
		if strings.Contains(strings.ToLower(ep.Path), needle) {
			usedBy = append(usedBy, ep.HTTPMethod+" "+ep.Path)
		}
	}
	return usedBy
}

var (
	firstCapRegex = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	allCapRegex   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// ToSnakeCase converts CamelCase to snake_case, keeping acronym runs
// together: "LineItem" -> "line_item", "HTTPStatus" -> "http_status".
func ToSnakeCase(name string) string {
	s := firstCapRegex.ReplaceAllString(name, "${1}_${2}")
	s = allCapRegex.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}
