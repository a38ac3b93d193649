package feature

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"springlens/internal/config"
	"springlens/internal/logger"
	"springlens/internal/model"
	"springlens/internal/utils"
)

// FeatureExporter derives Gherkin feature files from the endpoint list:
// one Feature per controller, one Scenario per endpoint.
type FeatureExporter struct{}

func NewFeatureExporter() *FeatureExporter {
	return &FeatureExporter{}
}

func (e *FeatureExporter) Export(report *model.Report, cfg *config.Config) error {
	featureDir := filepath.Join(cfg.Output.Dir, "features")
	if err := os.MkdirAll(featureDir, 0755); err != nil {
		return fmt.Errorf("failed to create features directory: %w", err)
	}

	byController := groupByController(report.Graph.Endpoints)

	controllers := make([]string, 0, len(byController))
	for name := range byController {
		controllers = append(controllers, name)
	}
	sort.Strings(controllers)

	for _, controller := range controllers {
		text := BuildFeature(controller, byController[controller])
		fileName := toSnakeCase(strings.TrimSuffix(controller, "Controller")) + ".feature"
		path := filepath.Join(featureDir, fileName)
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write feature file: %w", err)
		}
		logger.Debug("wrote feature file %s", path)
	}

	return nil
}

func groupByController(endpoints []model.Endpoint) map[string][]model.Endpoint {
	out := make(map[string][]model.Endpoint)
	for _, ep := range endpoints {
		out[ep.Controller] = append(out[ep.Controller], ep)
	}
	return out
}

// BuildFeature renders the Gherkin text for one controller.
func BuildFeature(controller string, endpoints []model.Endpoint) string {
	subject := humanize(strings.TrimSuffix(controller, "Controller"))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Feature: %s management\n", subject))
	sb.WriteString(fmt.Sprintf("  Operations exposed by %s\n", controller))

	for _, ep := range endpoints {
		if utils.IsNoise(ep.Handler) {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  Scenario: %s\n", humanize(ep.Handler)))
		sb.WriteString("    Given the service is running\n")
		sb.WriteString(fmt.Sprintf("    When the client sends %s %s\n", ep.HTTPMethod, ep.Path))
		sb.WriteString(fmt.Sprintf("    Then the response is handled by %s.%s\n", ep.Controller, ep.Handler))
		for _, svc := range ep.Services {
			sb.WriteString(fmt.Sprintf("    And %s takes part in the operation\n", svc))
		}
	}

	return sb.String()
}

// humanize splits a camelCase identifier into lowercase words, keeping
// the first one capitalized: "getAccountById" -> "Get account by id".
func humanize(name string) string {
	if name == "" {
		return name
	}

	var words []string
	current := strings.Builder{}
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			words = append(words, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	out := strings.Join(words, " ")
	return strings.ToUpper(out[:1]) + out[1:]
}

// toSnakeCase converts a camelCase or PascalCase name to snake_case.
func toSnakeCase(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
