package analyzer

import (
	"regexp"
	"strings"

	"springlens/internal/javaparser"
	"springlens/internal/linker"
	"springlens/internal/model"
)

var (
	// Convention-based component calls inside handler and service bodies.
	serviceCallRegex    = regexp.MustCompile(`(\w+)Service\.(\w+)\s*\(`)
	repositoryCallRegex = regexp.MustCompile(`(\w+)Repository\.(\w+)\s*\(`)

	// Spring Data signature, e.g. "extends JpaRepository<Account, Long>".
	repositoryEntityRegex = regexp.MustCompile(`extends\s+\w*Repository\s*<\s*(\w+)`)
)

var relationshipAnnotations = []string{"OneToMany", "ManyToOne", "OneToOne", "ManyToMany"}

// buildClassRecord converts a parsed class into the graph's class record,
// resolving the call expressions of every method body against the class's
// injection bindings.
func buildClassRecord(jc *javaparser.JavaClass, kind model.Kind, path string) *model.ClassRecord {
	rec := &model.ClassRecord{
		Name:        jc.Name,
		Package:     jc.Package,
		Kind:        kind,
		Annotations: jc.AnnotationNames(),
		Extends:     jc.Extends,
		Implements:  jc.Implements,
		FilePath:    path,
	}

	for _, f := range jc.Fields {
		names := make([]string, 0, len(f.Annotations))
		for _, ann := range f.Annotations {
			names = append(names, ann.Name)
		}
		rec.Fields = append(rec.Fields, model.ClassField{
			Name:        f.Name,
			Type:        f.Type,
			Annotations: names,
		})
	}

	for _, m := range jc.Methods {
		rec.Methods = append(rec.Methods, model.ClassMethod{
			Name:        m.Name,
			Constructor: m.Constructor,
			Params:      m.Params,
			ParamsList:  m.ParamsList,
			ReturnType:  m.ReturnType,
			Annotations: m.AnnotationNames(),
			Body:        m.Body,
		})
	}

	bindings := linker.BuildBindings(rec)
	for i := range rec.Methods {
		if rec.Methods[i].Body != "" {
			rec.Methods[i].Calls = linker.ExtractCalls(rec.Methods[i].Body, bindings)
		}
	}

	return rec
}

// buildEndpoints derives the endpoint list of a controller. Methods
// without a mapping annotation contribute nothing.
func buildEndpoints(jc *javaparser.JavaClass, path string) []model.Endpoint {
	base := jc.BasePath()
	endpoints := []model.Endpoint{}

	for i := range jc.Methods {
		m := &jc.Methods[i]
		if !m.IsEndpoint() {
			continue
		}

		verb := m.HTTPMethod()
		if verb == "" {
			verb = "GET"
		}

		endpoints = append(endpoints, model.Endpoint{
			Controller:   jc.Name,
			HTTPMethod:   verb,
			Path:         javaparser.CombinePaths(base, m.MappingPath()),
			Handler:      m.Name,
			Params:       m.Params,
			ReturnType:   m.ReturnType,
			ServiceCalls: conventionCalls(m.Body, serviceCallRegex, "Service"),
			FilePath:     path,
		})
	}

	return endpoints
}

// conventionCalls matches "xxxService.method(" style calls and rebuilds
// the component class name from the receiver.
func conventionCalls(body string, re *regexp.Regexp, suffix string) []model.Call {
	calls := []model.Call{}
	seen := make(map[string]bool)
	for _, m := range re.FindAllStringSubmatch(body, -1) {
		class := capitalize(m[1]) + suffix
		key := class + "." + m[2]
		if seen[key] {
			continue
		}
		seen[key] = true
		calls = append(calls, model.Call{Class: class, Method: m[2]})
	}
	return calls
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func buildServiceRecord(jc *javaparser.JavaClass, path string) *model.ServiceRecord {
	svc := &model.ServiceRecord{
		Name:     jc.Name,
		Package:  jc.Package,
		Methods:  []model.ServiceMethod{},
		FilePath: path,
	}
	for i := range jc.Methods {
		m := &jc.Methods[i]
		if m.Constructor {
			continue
		}
		svc.Methods = append(svc.Methods, model.ServiceMethod{
			Name:            m.Name,
			Params:          m.Params,
			ReturnType:      m.ReturnType,
			RepositoryCalls: conventionCalls(m.Body, repositoryCallRegex, "Repository"),
		})
	}
	return svc
}

func buildRepositoryRecord(jc *javaparser.JavaClass, content, path string) *model.RepositoryRecord {
	repo := &model.RepositoryRecord{
		Name:     jc.Name,
		Methods:  []string{},
		FilePath: path,
	}

	if jc.Extends != "" {
		repo.EntityType = javaparser.FirstGenericArg(jc.Extends)
	}
	if repo.EntityType == "" {
		if m := repositoryEntityRegex.FindStringSubmatch(content); len(m) > 1 {
			repo.EntityType = m[1]
		}
	}

	for i := range jc.Methods {
		if jc.Methods[i].Constructor {
			continue
		}
		repo.Methods = append(repo.Methods, jc.Methods[i].Name)
	}
	return repo
}

func buildEntityRecord(jc *javaparser.JavaClass, path string) *model.EntityRecord {
	ent := &model.EntityRecord{
		Name:           jc.Name,
		Package:        jc.Package,
		Annotations:    jc.AnnotationNames(),
		Fields:         []model.EntityField{},
		ColumnMappings: make(map[string]string),
		Extends:        jc.Extends,
		Implements:     jc.Implements,
		FilePath:       path,
	}

	for _, ann := range jc.Annotations {
		if ann.Name == "Table" {
			if name, ok := ann.Attributes["name"]; ok {
				ent.TableName = name
			} else if v, ok := ann.Attributes["value"]; ok {
				ent.TableName = v
			}
		}
	}

	for i := range jc.Fields {
		f := &jc.Fields[i]
		names := make([]string, 0, len(f.Annotations))
		for _, ann := range f.Annotations {
			names = append(names, ann.Name)
		}
		ent.Fields = append(ent.Fields, model.EntityField{
			Name:        f.Name,
			Type:        f.Type,
			Annotations: names,
		})

		if rel := relationshipOf(f); rel != "" {
			join := ""
			if jcAnn := f.FieldAnnotation("JoinColumn"); jcAnn != nil {
				join = jcAnn.Attributes["name"]
			}
			ent.Relationships = append(ent.Relationships, model.EntityRelationship{
				Type:       rel,
				Field:      f.Name,
				Target:     javaparser.UnwrapCollection(f.Type),
				JoinColumn: join,
			})
		}

		if colAnn := f.FieldAnnotation("Column"); colAnn != nil {
			if name, ok := colAnn.Attributes["name"]; ok && name != "" {
				ent.ColumnMappings[f.Name] = name
			}
		}
	}

	return ent
}

func relationshipOf(f *javaparser.Field) string {
	for _, rel := range relationshipAnnotations {
		for _, ann := range f.Annotations {
			if ann.Name == rel {
				return rel
			}
		}
	}
	return ""
}

// typedBindingsWithSuffix picks the injected types with a given component
// suffix out of a binding table, deduplicated, for dependency edges.
func typedBindingsWithSuffix(bindings linker.Bindings, suffix string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, class := range bindings {
		if strings.HasSuffix(class, suffix) && !seen[class] {
			seen[class] = true
			out = append(out, class)
		}
	}
	return out
}
