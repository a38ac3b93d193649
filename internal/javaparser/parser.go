package javaparser

import (
	"regexp"
	"strings"

	"springlens/internal/logger"
)

// Annotation is a Java annotation with its parsed attributes.
type Annotation struct {
	Name       string            // e.g. "GetMapping", "Autowired"
	Attributes map[string]string // e.g. {"value": "/accounts", "method": "GET"}
	Raw        string            // original annotation text
}

// Field is a declared class field.
type Field struct {
	Name        string // e.g. "accountService"
	Type        string // e.g. "AccountService", "List<LineItem>"
	Annotations []Annotation
}

// Method is a declared method with its extracted body.
type Method struct {
	Name        string
	Constructor bool     // name equals the class name; ReturnType is empty
	Params      string   // raw parameter list, e.g. "Long id, String owner"
	ParamsList  []string // split on top-level commas
	ReturnType  string
	Annotations []Annotation
	Body        string // between the braces, empty for abstract/interface methods
}

// JavaClass is the structural extraction of one Java source file.
// Only the first type declaration in the file is considered.
type JavaClass struct {
	Package     string
	Name        string
	IsInterface bool
	Imports     []string
	Annotations []Annotation
	Extends     string
	Implements  []string
	Fields      []Field
	Methods     []Method
}

// controlKeywords are tokens the method regex can mistake for method names
// inside bodies (e.g. "else if (...) {").
var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "new": true, "throw": true, "else": true,
	"synchronized": true, "do": true, "try": true,
}

var (
	packageRegex   = regexp.MustCompile(`package\s+([\w.]+)\s*;`)
	importRegex    = regexp.MustCompile(`import\s+(?:static\s+)?([\w.*]+)\s*;`)
	classDeclRegex = regexp.MustCompile(`(?:public\s+)?(?:abstract\s+)?(?:final\s+)?(class|interface|enum)\s+(\w+)(?:\s+extends\s+([\w<>,\s.]+?))?(?:\s+implements\s+([\w<>,\s.]+?))?\s*\{`)
	annotRegex     = regexp.MustCompile(`@(\w+)(?:\s*\(([^)]*)\))?`)
	fieldRegex     = regexp.MustCompile(`(?s)((?:@\w+(?:\([^)]*\))?\s+)*)(?:private|public|protected)(?:\s+(?:static|final|transient|volatile))*\s+([\w<>,\s?\[\]]+?)\s+(\w+)\s*(?:=[^;]*)?;`)
	methodRegex    = regexp.MustCompile(`(?s)((?:@\w+(?:\([^)]*\))?\s+)*)(public|private|protected)?\s*(?:(?:static|final|abstract|default|synchronized)\s+)*([\w<>,\[\]\s?]+?)\s+(\w+)\s*\(([^)]*)\)\s*(?:throws\s+[\w,\s.]+)?\s*(\{|;)`)
	attrPairRegex  = regexp.MustCompile(`(\w+)\s*=\s*("[^"]*"|\{[^}]*\}|[^,]+)`)
	genericRegex   = regexp.MustCompile(`<\s*([^<>,]+?)\s*[,>]`)
)

// ParseJavaFile extracts the structural record of a Java source file.
// It never fails on malformed input; whatever the patterns do not match
// is simply absent from the result.
func ParseJavaFile(content string) (*JavaClass, error) {
	jc := &JavaClass{
		Imports:     []string{},
		Annotations: []Annotation{},
		Implements:  []string{},
		Fields:      []Field{},
		Methods:     []Method{},
	}

	jc.Package = matchFirst(packageRegex, content)
	jc.Imports = matchAll(importRegex, content)

	decl := classDeclRegex.FindStringSubmatch(content)
	declIdx := classDeclRegex.FindStringIndex(content)
	if decl != nil {
		jc.IsInterface = decl[1] == "interface"
		jc.Name = decl[2]
		jc.Extends = strings.TrimSpace(decl[3])
		if decl[4] != "" {
			for _, name := range strings.Split(decl[4], ",") {
				if t := strings.TrimSpace(name); t != "" {
					jc.Implements = append(jc.Implements, t)
				}
			}
		}
	}

	if declIdx != nil {
		jc.Annotations = parseAnnotations(content[:declIdx[0]])
	}

	jc.Fields = extractFields(content)
	jc.Methods = extractMethods(content, jc.Name)

	return jc, nil
}

func matchFirst(re *regexp.Regexp, content string) string {
	if m := re.FindStringSubmatch(content); len(m) > 1 {
		return m[1]
	}
	return ""
}

func matchAll(re *regexp.Regexp, content string) []string {
	out := []string{}
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		out = append(out, m[1])
	}
	return out
}

// parseAnnotations extracts every annotation in the given text segment.
func parseAnnotations(text string) []Annotation {
	annotations := []Annotation{}
	for _, m := range annotRegex.FindAllStringSubmatch(text, -1) {
		ann := Annotation{
			Name:       m[1],
			Attributes: make(map[string]string),
			Raw:        m[0],
		}
		if m[2] != "" {
			parseAttributes(&ann, m[2])
		}
		annotations = append(annotations, ann)
	}
	return annotations
}

// parseAttributes fills the attribute map from the text between the
// annotation parentheses. A bare quoted literal becomes the "value" key.
func parseAttributes(ann *Annotation, text string) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, `"`) || strings.HasPrefix(text, "'") {
		ann.Attributes["value"] = trimQuotes(text)
		return
	}
	for _, m := range attrPairRegex.FindAllStringSubmatch(text, -1) {
		ann.Attributes[m[1]] = trimQuotes(strings.TrimSpace(m[2]))
	}
}

func extractFields(content string) []Field {
	fields := []Field{}
	for _, m := range fieldRegex.FindAllStringSubmatch(content, -1) {
		fieldType := strings.TrimSpace(m[2])
		if fieldType == "" || controlKeywords[fieldType] {
			continue
		}
		fields = append(fields, Field{
			Name:        m[3],
			Type:        fieldType,
			Annotations: parseAnnotations(m[1]),
		})
	}
	return fields
}

// extractMethods finds method signatures and pairs each with its body via
// brace matching. Constructors (name equals the class name) are kept and
// tagged; their captured "return type" is the visibility modifier and is
// dropped.
func extractMethods(content, className string) []Method {
	methods := []Method{}

	for _, idx := range methodRegex.FindAllStringSubmatchIndex(content, -1) {
		annotationsText := content[idx[2]:idx[3]]
		returnType := strings.TrimSpace(content[idx[6]:idx[7]])
		name := content[idx[8]:idx[9]]
		params := strings.TrimSpace(content[idx[10]:idx[11]])
		terminator := content[idx[12]:idx[13]]

		if controlKeywords[name] {
			continue
		}
		// "throw new Foo(...)" parses as return type "throw new"; reject
		// any return type opening with a control keyword. This also drops
		// "new Foo(...)" expressions before the constructor check below.
		if tokens := strings.Fields(returnType); len(tokens) == 0 || controlKeywords[tokens[0]] {
			continue
		}

		body := ""
		if terminator == "{" {
			bodyStart := idx[13]
			bodyEnd := scanBody(content, bodyStart)
			if bodyEnd > bodyStart {
				body = content[bodyStart:bodyEnd]
			}
			logger.Debug("captured body of %s: %d chars", name, len(body))
		}

		m := Method{
			Name:        name,
			Constructor: name == className,
			Params:      params,
			ReturnType:  returnType,
			Body:        body,
			Annotations: []Annotation{},
		}
		if m.Constructor {
			m.ReturnType = ""
		}
		if params != "" {
			m.ParamsList = SplitParams(params)
		}
		if annotationsText != "" {
			m.Annotations = parseAnnotations(annotationsText)
		}
		methods = append(methods, m)
	}

	return methods
}

// scanBody returns the index of the brace closing the block opened just
// before start. String literals, char literals and both comment forms are
// skipped so braces inside them do not affect the depth.
func scanBody(content string, start int) int {
	depth := 1
	i := start
	for i < len(content) {
		c := content[i]
		switch c {
		case '/':
			if i+1 < len(content) && content[i+1] == '/' {
				for i < len(content) && content[i] != '\n' {
					i++
				}
				continue
			}
			if i+1 < len(content) && content[i+1] == '*' {
				end := strings.Index(content[i+2:], "*/")
				if end < 0 {
					return len(content)
				}
				i += 2 + end + 2
				continue
			}
		case '"', '\'':
			i = skipLiteral(content, i, c)
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return len(content)
}

// skipLiteral advances past a string or char literal starting at i.
func skipLiteral(content string, i int, quote byte) int {
	i++
	for i < len(content) {
		if content[i] == '\\' {
			i += 2
			continue
		}
		if content[i] == quote {
			return i + 1
		}
		i++
	}
	return i
}

func trimQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// SplitParams splits a parameter list on top-level commas, leaving
// generic arguments intact.
func SplitParams(params string) []string {
	params = strings.TrimSpace(params)
	if params == "" {
		return []string{}
	}

	result := []string{}
	current := strings.Builder{}
	depth := 0
	for _, ch := range params {
		switch {
		case ch == '<':
			depth++
		case ch == '>':
			depth--
		case ch == ',' && depth == 0:
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		current.WriteRune(ch)
	}
	if current.Len() > 0 {
		result = append(result, strings.TrimSpace(current.String()))
	}
	return result
}

// CombinePaths joins a class-level base path and a method-level sub path
// with exactly one slash between them.
func CombinePaths(base, sub string) string {
	base = strings.TrimSpace(base)
	sub = strings.TrimSpace(sub)
	if base == "" {
		return sub
	}
	if sub == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(sub, "/")
}

// UnwrapCollection strips a List/Set/Collection wrapper from a type,
// returning the element type. Non-collection types come back unchanged.
func UnwrapCollection(typeName string) string {
	typeName = strings.TrimSpace(typeName)
	for _, wrapper := range []string{"List", "Set", "Collection"} {
		prefix := wrapper + "<"
		if strings.HasPrefix(typeName, prefix) && strings.HasSuffix(typeName, ">") {
			return strings.TrimSpace(typeName[len(prefix) : len(typeName)-1])
		}
	}
	return typeName
}

// FirstGenericArg returns the first generic argument of a type expression,
// e.g. "JpaRepository<Account, Long>" yields "Account".
func FirstGenericArg(typeName string) string {
	if m := genericRegex.FindStringSubmatch(typeName); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// pathFromAnnotation digs the URL fragment out of a mapping annotation,
// trying value=, path= and the raw text in turn.
func pathFromAnnotation(ann Annotation) string {
	if v, ok := ann.Attributes["value"]; ok {
		return trimQuotes(strings.Trim(v, "{}"))
	}
	if v, ok := ann.Attributes["path"]; ok {
		return trimQuotes(strings.Trim(v, "{}"))
	}
	if m := regexp.MustCompile(`"([^"]*)"`).FindStringSubmatch(ann.Raw); len(m) > 1 {
		return m[1]
	}
	return ""
}

// BasePath returns the class-level @RequestMapping path, if any.
func (jc *JavaClass) BasePath() string {
	for _, ann := range jc.Annotations {
		if ann.Name == "RequestMapping" {
			return pathFromAnnotation(ann)
		}
	}
	return ""
}

// AnnotationNames returns the names of the class-level annotations.
func (jc *JavaClass) AnnotationNames() []string {
	names := make([]string, 0, len(jc.Annotations))
	for _, ann := range jc.Annotations {
		names = append(names, ann.Name)
	}
	return names
}

// HasAnnotation reports whether the class carries the named annotation.
func (jc *JavaClass) HasAnnotation(name string) bool {
	for _, ann := range jc.Annotations {
		if ann.Name == name {
			return true
		}
	}
	return false
}

// MappingPath returns the URL fragment of the method's mapping annotation.
func (m *Method) MappingPath() string {
	for _, ann := range m.Annotations {
		if strings.HasSuffix(ann.Name, "Mapping") {
			if p := pathFromAnnotation(ann); p != "" {
				return p
			}
		}
	}
	return ""
}

// IsEndpoint reports whether the method carries any mapping annotation.
func (m *Method) IsEndpoint() bool {
	for _, ann := range m.Annotations {
		if strings.HasSuffix(ann.Name, "Mapping") {
			return true
		}
	}
	return false
}

// HTTPMethod derives the HTTP verb from the mapping annotation. A bare
// @RequestMapping without a method attribute defaults to GET.
func (m *Method) HTTPMethod() string {
	for _, ann := range m.Annotations {
		switch ann.Name {
		case "GetMapping":
			return "GET"
		case "PostMapping":
			return "POST"
		case "PutMapping":
			return "PUT"
		case "DeleteMapping":
			return "DELETE"
		case "PatchMapping":
			return "PATCH"
		case "RequestMapping":
			if verb, ok := ann.Attributes["method"]; ok {
				// Handle RequestMethod.POST style references.
				if dot := strings.LastIndex(verb, "."); dot >= 0 {
					verb = verb[dot+1:]
				}
				return strings.ToUpper(strings.TrimSpace(verb))
			}
			return "GET"
		}
	}
	return ""
}

// AnnotationNames returns the names of the method-level annotations.
func (m *Method) AnnotationNames() []string {
	names := make([]string, 0, len(m.Annotations))
	for _, ann := range m.Annotations {
		names = append(names, ann.Name)
	}
	return names
}

// FieldAnnotation returns the named annotation on the field, if present.
func (f *Field) FieldAnnotation(name string) *Annotation {
	for i := range f.Annotations {
		if f.Annotations[i].Name == name {
			return &f.Annotations[i]
		}
	}
	return nil
}
