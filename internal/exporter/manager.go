package exporter

import (
	"strings"

	"springlens/internal/exporter/feature"
	"springlens/internal/exporter/openapi"
	"springlens/internal/exporter/schema"
	"springlens/internal/exporter/word"
)

// GetExporters returns the exporters for the requested formats. Unknown
// format names are ignored, duplicates collapsed.
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))
		if seen[fmtStr] {
			continue
		}
		seen[fmtStr] = true

		switch fmtStr {
		case "excel", "xlsx":
			exporters = append(exporters, NewExcelExporter())
		case "openapi", "swagger", "json":
			exporters = append(exporters, openapi.NewOpenAPIExporter())
		case "word", "docx":
			exporters = append(exporters, word.NewWordExporter())
		case "feature", "gherkin":
			exporters = append(exporters, feature.NewFeatureExporter())
		case "schema":
			exporters = append(exporters, schema.NewSchemaExporter())
		}
	}

	return exporters
}
