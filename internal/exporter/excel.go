package exporter

import (
	"fmt"
	"sort"
	"strings"

	"springlens/internal/config"
	"springlens/internal/model"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter writes the architecture report workbook: an overview,
// the endpoint table, the entity catalog and the traced call flows.
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export generates the Excel report.
func (e *ExcelExporter) Export(report *model.Report, cfg *config.Config) error {
	f := excelize.NewFile()
	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	if err := e.writeOverview(f, styler, report); err != nil {
		return err
	}
	if err := e.writeEndpoints(f, styler, report.Graph); err != nil {
		return err
	}
	if err := e.writeEntities(f, styler, report.Graph); err != nil {
		return err
	}
	if err := e.writeFlows(f, styler, report.Flows); err != nil {
		return err
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}

	return f.SaveAs(cfg.GetOutputPath())
}

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, report *model.Report) error {
	sheet := "Overview"
	f.NewSheet(sheet)

	row := 1
	e.writeRow(f, sheet, row, []string{"Metric", "Value"}, s.HeaderStyle)
	row++

	graph := report.Graph
	metrics := []struct {
		Key string
		Val interface{}
	}{
		{"Analysis Date", report.AnalysisDate},
		{"Project Root", report.ProjectRoot},
		{"Build System", report.BuildSystem},
		{"Spring Boot", report.SpringBoot},
		{"Endpoints", len(graph.Endpoints)},
		{"Controllers", report.ControllerCount()},
		{"Services", len(graph.Services)},
		{"Repositories", len(graph.Repositories)},
		{"Entities", len(graph.Entities)},
		{"Traced Flows", len(report.Flows)},
	}
	for _, m := range metrics {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Val)
		row++
	}

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "B", 50)
	return nil
}

func (e *ExcelExporter) writeEndpoints(f *excelize.File, s *Styler, graph *model.ArchitectureGraph) error {
	sheet := "Endpoints"
	f.NewSheet(sheet)

	headers := []string{"Verb", "Path", "Controller", "Handler", "Return", "Services", "Repositories"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	row := 2
	for _, ep := range graph.Endpoints {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), ep.HTTPMethod)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), ep.Path)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), ep.Controller)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), ep.Handler)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), ep.ReturnType)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), strings.Join(ep.Services, ", "))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), strings.Join(ep.Repositories, ", "))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), s.ControllerStyle)
		row++
	}

	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "C", "D", 28)
	f.SetColWidth(sheet, "E", "G", 32)
	return nil
}

func (e *ExcelExporter) writeEntities(f *excelize.File, s *Styler, graph *model.ArchitectureGraph) error {
	sheet := "Entities"
	f.NewSheet(sheet)

	headers := []string{"Entity", "Package", "Table", "Field", "Type", "Relationship"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)

	names := make([]string, 0, len(graph.Entities))
	for name := range graph.Entities {
		names = append(names, name)
	}
	sort.Strings(names)

	row := 2
	for _, name := range names {
		ent := graph.Entities[name]
		rels := make(map[string]string, len(ent.Relationships))
		for _, rel := range ent.Relationships {
			rels[rel.Field] = fmt.Sprintf("%s -> %s", rel.Type, rel.Target)
		}

		for _, field := range ent.Fields {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), ent.Name)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), ent.Package)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), ent.TableName)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), field.Name)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), field.Type)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), rels[field.Name])
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), s.EntityStyle)
			row++
		}
	}

	f.SetColWidth(sheet, "A", "C", 24)
	f.SetColWidth(sheet, "D", "F", 30)
	return nil
}

func (e *ExcelExporter) writeFlows(f *excelize.File, s *Styler, flows []*model.EndpointFlow) error {
	sheet := "Call Flows"
	f.NewSheet(sheet)

	headers := []string{"Endpoint", "Step", "Type", "Return", "Note"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)

	row := 2
	for _, flow := range flows {
		endpoint := fmt.Sprintf("[%s] %s", flow.HTTPMethod, flow.Path)
		first := true
		flow.Walk(func(n *model.FlowNode) {
			label := ""
			if first {
				label = endpoint
				first = false
			}

			step := strings.Repeat("  ", n.Level) + n.ClassName + "." + n.Method
			note := ""
			style := e.styleFor(s, n.ClassType)
			if n.IsCycle {
				note = "cycle"
				style = s.CycleStyle
			}

			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), step)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(n.ClassType))
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), n.ReturnType)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), note)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), style)
			row++
		})
	}

	f.SetColWidth(sheet, "A", "A", 36)
	f.SetColWidth(sheet, "B", "B", 50)
	f.SetColWidth(sheet, "C", "E", 18)
	return nil
}

func (e *ExcelExporter) styleFor(s *Styler, kind model.Kind) int {
	switch kind {
	case model.KindController:
		return s.ControllerStyle
	case model.KindService:
		return s.ServiceStyle
	case model.KindRepository:
		return s.RepositoryStyle
	case model.KindEntity:
		return s.EntityStyle
	}
	return s.DefaultStyle
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}
