package word

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"springlens/internal/config"
	"springlens/internal/model"

	"github.com/nguyenthenguyen/docx"
)

//go:embed template.docx
var templateFS embed.FS

// WordExporter renders the endpoint documentation into a .docx built from
// the embedded template.
type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Export(report *model.Report, cfg *config.Config) error {
	templateBytes, err := templateFS.ReadFile("template.docx")
	if err != nil {
		return fmt.Errorf("failed to read embedded template: %w", err)
	}

	// The docx library reads from a path, so stage the template in a
	// temp file first.
	tmpFile, err := os.CreateTemp("", "springlens-template-*.docx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(templateBytes); err != nil {
		return fmt.Errorf("failed to write template to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	r, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return fmt.Errorf("failed to read docx template: %w", err)
	}
	defer r.Close()

	doc := r.Editable()

	endpoints := make([]model.Endpoint, len(report.Graph.Endpoints))
	copy(endpoints, report.Graph.Endpoints)
	sort.Slice(endpoints, func(i, j int) bool {
		return endpoints[i].Path < endpoints[j].Path
	})

	doc.Replace("{{Date}}", report.AnalysisDate, -1)
	doc.Replace("{{TotalEndpoints}}", fmt.Sprintf("%d", len(endpoints)), -1)
	doc.Replace("{{TotalControllers}}", fmt.Sprintf("%d", report.ControllerCount()), -1)

	var content strings.Builder
	content.WriteString("API SPECIFICATION\n\n")
	content.WriteString(fmt.Sprintf("Build system: %s", report.BuildSystem))
	if report.SpringBoot {
		content.WriteString(" (Spring Boot)")
	}
	content.WriteString("\n\n")
	content.WriteString(strings.Repeat("=", 80) + "\n\n")

	flowByEndpoint := indexFlows(report.Flows)
	for i, ep := range endpoints {
		buildEndpointText(&content, &ep, flowByEndpoint[ep.Controller+"."+ep.Handler])
		if i < len(endpoints)-1 {
			content.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
		}
	}

	doc.Replace("{{Content}}", content.String(), -1)

	outFile := strings.TrimSuffix(cfg.GetOutputPath(), ".xlsx") + ".docx"
	if err := doc.WriteToFile(outFile); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}
	return nil
}

func indexFlows(flows []*model.EndpointFlow) map[string]*model.EndpointFlow {
	out := make(map[string]*model.EndpointFlow, len(flows))
	for _, f := range flows {
		out[f.Controller+"."+f.Handler] = f
	}
	return out
}

// buildEndpointText renders one endpoint's documentation as plain text;
// the docx library handles the XML encoding.
func buildEndpointText(sb *strings.Builder, ep *model.Endpoint, flow *model.EndpointFlow) {
	sb.WriteString(fmt.Sprintf("[%s] %s\n", ep.HTTPMethod, ep.Path))
	sb.WriteString(fmt.Sprintf("Handler: %s.%s\n", ep.Controller, ep.Handler))
	if ep.ReturnType != "" {
		sb.WriteString(fmt.Sprintf("Returns: %s\n", ep.ReturnType))
	}
	if ep.Params != "" {
		sb.WriteString(fmt.Sprintf("Parameters: %s\n", ep.Params))
	}
	sb.WriteString("\n")

	if len(ep.Services) > 0 {
		sb.WriteString(fmt.Sprintf("Services: %s\n", strings.Join(ep.Services, ", ")))
	}
	if len(ep.Repositories) > 0 {
		sb.WriteString(fmt.Sprintf("Repositories: %s\n", strings.Join(ep.Repositories, ", ")))
	}

	if flow != nil && len(flow.Flow) > 0 {
		sb.WriteString("\nCall Flow:\n")
		flow.Walk(func(n *model.FlowNode) {
			marker := ""
			if n.IsCycle {
				marker = " (cycle)"
			}
			sb.WriteString(fmt.Sprintf("%s%s.%s [%s]%s\n",
				strings.Repeat("  ", n.Level+1), n.ClassName, n.Method, n.ClassType, marker))
		})
	}

	sb.WriteString("\n")
}
