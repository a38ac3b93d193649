package linker

import (
	"strings"

	"springlens/internal/model"
)

// Bindings maps an instance variable name to the class type injected into
// it, e.g. "accountService" -> "AccountService". It is the primary lookup
// for resolving receivers of call expressions.
type Bindings map[string]string

// injectionAnnotations mark a field as container-injected.
var injectionAnnotations = map[string]bool{
	"Autowired": true,
	"Inject":    true,
	"Resource":  true,
}

// componentSuffixes identify types that take part in the call graph even
// when the field carries no injection annotation (constructor injection,
// Lombok-generated wiring).
var componentSuffixes = []string{"Service", "Repository", "Dao", "Manager", "Client"}

// BuildBindings collects the injection bindings of a class from its
// annotated fields, its component-typed fields and its constructor-style
// parameters.
func BuildBindings(rec *model.ClassRecord) Bindings {
	b := make(Bindings)

	for _, field := range rec.Fields {
		if bindableField(field) {
			b[field.Name] = baseType(field.Type)
		}
	}

	// Constructor injection leaves no field annotation behind; pick the
	// component-typed parameters up from every method's parameter list.
	for _, m := range rec.Methods {
		for _, param := range m.ParamsList {
			typeName, varName, ok := splitParam(param)
			if !ok {
				continue
			}
			if _, exists := b[varName]; exists {
				continue
			}
			if hasComponentSuffix(typeName) {
				b[varName] = baseType(typeName)
			}
		}
	}

	return b
}

func bindableField(field model.ClassField) bool {
	for _, ann := range field.Annotations {
		if injectionAnnotations[ann] {
			return true
		}
	}
	return hasComponentSuffix(field.Type)
}

func hasComponentSuffix(typeName string) bool {
	typeName = baseType(typeName)
	for _, suffix := range componentSuffixes {
		if strings.HasSuffix(typeName, suffix) {
			return true
		}
	}
	return false
}

// baseType strips generic arguments from a type expression.
func baseType(typeName string) string {
	if lt := strings.Index(typeName, "<"); lt >= 0 {
		typeName = typeName[:lt]
	}
	return strings.TrimSpace(typeName)
}

// splitParam breaks "AccountService accountService" into type and name.
func splitParam(param string) (typeName, varName string, ok bool) {
	parts := strings.Fields(strings.TrimSpace(param))
	if len(parts) < 2 {
		return "", "", false
	}
	// Annotated params like "@PathVariable Long id" carry extra tokens.
	return parts[len(parts)-2], parts[len(parts)-1], true
}
