package feature

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"springlens/internal/config"
	"springlens/internal/model"
)

func TestBuildFeature(t *testing.T) {
	endpoints := []model.Endpoint{
		{
			Controller: "AccountController",
			Handler:    "getAccount",
			HTTPMethod: "GET",
			Path:       "/accounts/{id}",
			Services:   []string{"AccountService"},
		},
		{
			Controller: "AccountController",
			Handler:    "createAccount",
			HTTPMethod: "POST",
			Path:       "/accounts",
		},
	}

	text := BuildFeature("AccountController", endpoints)

	for _, want := range []string{
		"Feature: Account management",
		"Scenario: Get account",
		"When the client sends GET /accounts/{id}",
		"Then the response is handled by AccountController.getAccount",
		"And AccountService takes part in the operation",
		"Scenario: Create account",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("feature text missing %q:\n%s", want, text)
		}
	}
}

func TestExportWritesFeatureFiles(t *testing.T) {
	cfg := &config.Config{}
	cfg.Output.Dir = t.TempDir()

	report := &model.Report{
		Graph: &model.ArchitectureGraph{
			Endpoints: []model.Endpoint{
				{Controller: "AccountController", Handler: "getAccount", HTTPMethod: "GET", Path: "/accounts/{id}"},
				{Controller: "TransactionController", Handler: "makeTransfer", HTTPMethod: "POST", Path: "/transactions/transfer"},
			},
		},
	}

	if err := NewFeatureExporter().Export(report, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	for _, name := range []string{"account.feature", "transaction.feature"} {
		path := filepath.Join(cfg.Output.Dir, "features", name)
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("feature file %s not written: %v", name, err)
		}
		if !strings.HasPrefix(string(raw), "Feature:") {
			t.Errorf("%s does not open with a Feature line", name)
		}
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"getAccountById": "Get account by id",
		"makeTransfer":   "Make transfer",
		"list":           "List",
	}
	for in, want := range cases {
		if got := humanize(in); got != want {
			t.Errorf("humanize(%q) = %q, want %q", in, got, want)
		}
	}
}
