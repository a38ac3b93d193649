package analyzer

import (
	"reflect"
	"testing"

	"springlens/internal/config"
	"springlens/internal/javaparser"
	"springlens/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		Project: config.ProjectConfig{
			Encoding: []string{"utf-8", "latin-1"},
		},
	}
}

func scanDemo(t *testing.T) *model.ArchitectureGraph {
	t.Helper()
	graph, err := New(testConfig()).Scan(demoRoot)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	return graph
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := New(testConfig()).Scan("/no/such/repo"); err == nil {
		t.Error("missing root must be a hard error")
	}
}

func TestScanEndpoints(t *testing.T) {
	graph := scanDemo(t)

	if len(graph.Endpoints) != 6 {
		t.Fatalf("expected 6 endpoints, got %d: %+v", len(graph.Endpoints), graph.Endpoints)
	}

	type key struct{ verb, path string }
	byKey := map[key]model.Endpoint{}
	for _, ep := range graph.Endpoints {
		byKey[key{ep.HTTPMethod, ep.Path}] = ep
	}

	get, ok := byKey[key{"GET", "/accounts/{id}"}]
	if !ok {
		t.Fatal("GET /accounts/{id} not reconstructed")
	}
	if get.Controller != "AccountController" || get.Handler != "getAccount" {
		t.Errorf("unexpected endpoint %+v", get)
	}

	found := false
	for _, call := range get.ServiceCalls {
		if call.Class == "AccountService" && call.Method == "findById" {
			found = true
		}
	}
	if !found {
		t.Errorf("handler body call not linked: %+v", get.ServiceCalls)
	}

	// The class-level mapping ends with a slash; the combined path must
	// carry exactly one.
	if _, ok := byKey[key{"POST", "/transactions/transfer"}]; !ok {
		t.Errorf("trailing slash in the base path not normalized: %+v", graph.Endpoints)
	}

	// @RequestMapping with a method attribute.
	receipt, ok := byKey[key{"GET", "/transactions/{id}/receipt"}]
	if !ok {
		t.Fatal("RequestMapping(method = RequestMethod.GET) endpoint missing")
	}
	if receipt.Handler != "getReceipt" {
		t.Errorf("unexpected handler %q", receipt.Handler)
	}
}

func TestScanEndpointOrdering(t *testing.T) {
	graph := scanDemo(t)
	for i := 1; i < len(graph.Endpoints); i++ {
		prev, cur := graph.Endpoints[i-1], graph.Endpoints[i]
		if prev.Controller > cur.Controller {
			t.Fatalf("endpoints not sorted by controller: %s after %s", cur.Controller, prev.Controller)
		}
		if prev.Controller == cur.Controller && prev.Path > cur.Path {
			t.Fatalf("endpoints not sorted by path: %s after %s", cur.Path, prev.Path)
		}
	}
}

func TestScanDependencyEdges(t *testing.T) {
	graph := scanDemo(t)

	wantServices := []string{"AccountService"}
	if got := graph.ControllerServices["AccountController"]; !reflect.DeepEqual(got, wantServices) {
		t.Errorf("AccountController services = %v, want %v", got, wantServices)
	}

	wantRepos := []string{"TransactionRepository"}
	if got := graph.ServiceRepositories["TransactionService"]; !reflect.DeepEqual(got, wantRepos) {
		t.Errorf("TransactionService repositories = %v, want %v", got, wantRepos)
	}
}

func TestScanEndpointEnrichment(t *testing.T) {
	graph := scanDemo(t)

	for _, ep := range graph.Endpoints {
		if ep.Controller != "TransactionController" || ep.Handler != "makeTransfer" {
			continue
		}
		if !reflect.DeepEqual(ep.Services, []string{"TransactionService"}) {
			t.Errorf("services = %v", ep.Services)
		}
		if !reflect.DeepEqual(ep.Repositories, []string{"TransactionRepository"}) {
			t.Errorf("repositories = %v", ep.Repositories)
		}
		return
	}
	t.Fatal("makeTransfer endpoint not found")
}

func TestScanRepositories(t *testing.T) {
	graph := scanDemo(t)

	repo, ok := graph.Repositories["AccountRepository"]
	if !ok {
		t.Fatal("AccountRepository not reconstructed")
	}
	if repo.EntityType != "Account" {
		t.Errorf("entity type = %q, want Account", repo.EntityType)
	}
	if len(repo.Methods) != 1 || repo.Methods[0] != "findByOwner" {
		t.Errorf("unexpected methods %v", repo.Methods)
	}
}

func TestScanResolvedCalls(t *testing.T) {
	graph := scanDemo(t)

	svc, ok := graph.Classes["TransactionService"]
	if !ok {
		t.Fatal("TransactionService not in the class table")
	}
	m := svc.Method("makeTransfer")
	if m == nil {
		t.Fatal("makeTransfer not extracted")
	}

	want := map[string]bool{
		"AccountService.findById":    true,
		"TransactionRepository.save": true,
		"AuditService.record":        true,
	}
	if len(m.Calls) != len(want) {
		t.Fatalf("calls = %+v, want %d resolved calls", m.Calls, len(want))
	}
	for _, c := range m.Calls {
		if !want[c.Class+"."+c.Method] {
			t.Errorf("unexpected call %+v", c)
		}
	}
}

func TestConstructorInjectionBinding(t *testing.T) {
	// The field is package-private, so the field patterns never see it;
	// the constructor parameter is the only source for the binding.
	src := `
package com.example.billing;

import org.springframework.stereotype.Service;

@Service
public class BillingService {

    final InvoiceRepository invoices;

    public BillingService(InvoiceRepository invoices) {
        this.invoices = invoices;
    }

    public Invoice bill(Long id) {
        return invoices.findById(id);
    }
}
`
	jc, err := javaparser.ParseJavaFile(src)
	if err != nil {
		t.Fatalf("ParseJavaFile failed: %v", err)
	}

	rec := buildClassRecord(jc, model.KindService, "BillingService.java")

	bill := rec.Method("bill")
	if bill == nil {
		t.Fatal("bill not extracted")
	}
	if len(bill.Calls) != 1 {
		t.Fatalf("calls = %+v, want the repository call", bill.Calls)
	}
	if bill.Calls[0].Class != "InvoiceRepository" || bill.Calls[0].Method != "findById" {
		t.Errorf("constructor parameter did not resolve the receiver: %+v", bill.Calls[0])
	}
}

func TestScanIdempotence(t *testing.T) {
	a := New(testConfig())

	first, err := a.Scan(demoRoot)
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Scan(demoRoot)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("two scans of the same tree must produce identical graphs")
	}
}

func TestParseEntities(t *testing.T) {
	catalog, err := New(testConfig()).ParseEntities(demoRoot)
	if err != nil {
		t.Fatalf("ParseEntities failed: %v", err)
	}

	if len(catalog.Entities) != 4 {
		t.Fatalf("expected 4 entities, got %d", len(catalog.Entities))
	}

	account, ok := catalog.Entities["Account"]
	if !ok {
		t.Fatal("Account entity missing")
	}
	if account.TableName != "accounts" {
		t.Errorf("table name = %q", account.TableName)
	}
	if account.ColumnMappings["id"] != "account_id" {
		t.Errorf("column mappings = %v", account.ColumnMappings)
	}
	if account.ColumnMappings["createdAt"] != "created_at" {
		t.Errorf("column mappings = %v", account.ColumnMappings)
	}

	order, ok := catalog.Entities["Order"]
	if !ok {
		t.Fatal("Order entity missing")
	}
	if len(order.Relationships) != 1 {
		t.Fatalf("relationships = %+v", order.Relationships)
	}
	rel := order.Relationships[0]
	if rel.Type != "OneToMany" || rel.Field != "items" || rel.Target != "LineItem" {
		t.Errorf("unexpected relationship %+v", rel)
	}

	item := catalog.Entities["LineItem"]
	if item == nil || len(item.Relationships) != 1 {
		t.Fatal("LineItem relationship missing")
	}
	if item.Relationships[0].JoinColumn != "order_id" {
		t.Errorf("join column = %q", item.Relationships[0].JoinColumn)
	}
}

func TestParseEntitiesMissingRoot(t *testing.T) {
	if _, err := New(testConfig()).ParseEntities("/no/such/repo"); err == nil {
		t.Error("missing root must be a hard error")
	}
}
