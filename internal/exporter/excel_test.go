package exporter

import (
	"testing"

	"springlens/internal/config"
	"springlens/internal/model"

	"github.com/xuri/excelize/v2"
)

func testReport() *model.Report {
	g := model.NewArchitectureGraph()
	g.Endpoints = []model.Endpoint{
		{
			Controller:   "AccountController",
			Handler:      "getAccount",
			HTTPMethod:   "GET",
			Path:         "/accounts/{id}",
			ReturnType:   "ResponseEntity<Account>",
			Services:     []string{"AccountService"},
			Repositories: []string{"AccountRepository"},
		},
	}
	g.Entities["Account"] = &model.EntityRecord{
		Name:      "Account",
		Package:   "com.example.bank.entity",
		TableName: "accounts",
		Fields: []model.EntityField{
			{Name: "id", Type: "Long"},
		},
	}

	return &model.Report{
		AnalysisDate: "2026-08-24",
		ProjectRoot:  "/tmp/demo",
		BuildSystem:  "maven",
		SpringBoot:   true,
		Graph:        g,
		Flows: []*model.EndpointFlow{
			{
				Controller: "AccountController",
				Handler:    "getAccount",
				HTTPMethod: "GET",
				Path:       "/accounts/{id}",
				Flow: []*model.FlowNode{
					{
						ClassName: "AccountController",
						Method:    "getAccount",
						ClassType: model.KindController,
						Calls: []*model.FlowNode{
							{
								ClassName: "AccountService",
								Method:    "findById",
								ClassType: model.KindService,
								Level:     1,
							},
						},
					},
				},
			},
		},
	}
}

func TestExcelExport(t *testing.T) {
	cfg := &config.Config{}
	cfg.Output.Dir = t.TempDir()
	cfg.Output.FileName = "report"

	if err := NewExcelExporter().Export(testReport(), cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	f, err := excelize.OpenFile(cfg.GetOutputPath())
	if err != nil {
		t.Fatalf("report not readable: %v", err)
	}
	defer f.Close()

	sheets := map[string]bool{}
	for _, name := range f.GetSheetList() {
		sheets[name] = true
	}
	for _, want := range []string{"Overview", "Endpoints", "Entities", "Call Flows"} {
		if !sheets[want] {
			t.Errorf("sheet %q missing, have %v", want, f.GetSheetList())
		}
	}
	if sheets["Sheet1"] {
		t.Error("default Sheet1 must be removed")
	}

	verb, err := f.GetCellValue("Endpoints", "A2")
	if err != nil || verb != "GET" {
		t.Errorf("endpoint row not written: %q %v", verb, err)
	}
	path, _ := f.GetCellValue("Endpoints", "B2")
	if path != "/accounts/{id}" {
		t.Errorf("endpoint path = %q", path)
	}

	step, _ := f.GetCellValue("Call Flows", "B3")
	if step != "  AccountService.findById" {
		t.Errorf("flow step not indented by level: %q", step)
	}
}
