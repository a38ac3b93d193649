package javaparser

import (
	"strings"
	"testing"
)

const controllerSource = `
package com.example.shop.controller;

import com.example.shop.service.OrderService;
import org.springframework.web.bind.annotation.*;

@RestController
@RequestMapping("/orders")
public class OrderController {

    @Autowired
    private OrderService orderService;

    public OrderController(OrderService orderService) {
        this.orderService = orderService;
    }

    @GetMapping("/{id}")
    public ResponseEntity<Order> getOrder(@PathVariable Long id) {
        if (id == null) {
            return ResponseEntity.badRequest().build();
        }
        return ResponseEntity.ok(orderService.findById(id));
    }

    @RequestMapping(value = "/{id}/cancel", method = RequestMethod.POST)
    public ResponseEntity<Void> cancelOrder(@PathVariable Long id) {
        String note = "do not { panic }";
        orderService.cancel(id);
        return ResponseEntity.noContent().build();
    }
}
`

func TestParseControllerClass(t *testing.T) {
	jc, err := ParseJavaFile(controllerSource)
	if err != nil {
		t.Fatalf("ParseJavaFile failed: %v", err)
	}

	if jc.Name != "OrderController" {
		t.Errorf("expected class name OrderController, got %q", jc.Name)
	}
	if jc.Package != "com.example.shop.controller" {
		t.Errorf("unexpected package %q", jc.Package)
	}
	if !jc.HasAnnotation("RestController") {
		t.Error("expected @RestController on the class")
	}
	if jc.BasePath() != "/orders" {
		t.Errorf("expected base path /orders, got %q", jc.BasePath())
	}

	// The constructor is kept and tagged; its parameter list feeds the
	// injection bindings.
	var ctor *Method
	for i := range jc.Methods {
		if jc.Methods[i].Name == "OrderController" {
			ctor = &jc.Methods[i]
		}
	}
	if ctor == nil {
		t.Fatal("constructor missing from the method list")
	}
	if !ctor.Constructor {
		t.Error("constructor not tagged")
	}
	if ctor.ReturnType != "" {
		t.Errorf("constructor must carry no return type, got %q", ctor.ReturnType)
	}
	if len(ctor.ParamsList) != 1 || ctor.ParamsList[0] != "OrderService orderService" {
		t.Errorf("constructor parameters not captured: %v", ctor.ParamsList)
	}

	if len(jc.Methods) != 3 {
		t.Fatalf("expected 3 methods, got %d", len(jc.Methods))
	}
	for _, m := range jc.Methods {
		if m.Name != "OrderController" && m.Constructor {
			t.Errorf("%s wrongly tagged as a constructor", m.Name)
		}
	}
}

func TestMethodBodyExtraction(t *testing.T) {
	jc, _ := ParseJavaFile(controllerSource)

	var getOrder *Method
	for i := range jc.Methods {
		if jc.Methods[i].Name == "getOrder" {
			getOrder = &jc.Methods[i]
		}
	}
	if getOrder == nil {
		t.Fatal("getOrder not found")
	}

	// The nested if-block must stay inside the body.
	if !strings.Contains(getOrder.Body, "orderService.findById(id)") {
		t.Errorf("body missing call expression: %q", getOrder.Body)
	}
	if !strings.Contains(getOrder.Body, "badRequest") {
		t.Error("nested block missing from body")
	}

	// A brace inside a string literal must not cut the next body short.
	var cancel *Method
	for i := range jc.Methods {
		if jc.Methods[i].Name == "cancelOrder" {
			cancel = &jc.Methods[i]
		}
	}
	if cancel == nil {
		t.Fatal("cancelOrder not found")
	}
	if !strings.Contains(cancel.Body, "orderService.cancel(id)") {
		t.Errorf("string literal brace broke body extraction: %q", cancel.Body)
	}
}

func TestHTTPMethodDetection(t *testing.T) {
	jc, _ := ParseJavaFile(controllerSource)

	verbs := map[string]string{}
	for _, m := range jc.Methods {
		verbs[m.Name] = m.HTTPMethod()
	}

	if verbs["getOrder"] != "GET" {
		t.Errorf("expected GET for getOrder, got %q", verbs["getOrder"])
	}
	// RequestMapping with a method attribute resolves through the
	// RequestMethod constant.
	if verbs["cancelOrder"] != "POST" {
		t.Errorf("expected POST for cancelOrder, got %q", verbs["cancelOrder"])
	}
}

func TestMappingPath(t *testing.T) {
	jc, _ := ParseJavaFile(controllerSource)
	for _, m := range jc.Methods {
		switch m.Name {
		case "getOrder":
			if m.MappingPath() != "/{id}" {
				t.Errorf("expected /{id}, got %q", m.MappingPath())
			}
		case "cancelOrder":
			if m.MappingPath() != "/{id}/cancel" {
				t.Errorf("expected /{id}/cancel, got %q", m.MappingPath())
			}
		}
	}
}

func TestCombinePaths(t *testing.T) {
	cases := []struct {
		base, sub, want string
	}{
		{"/accounts", "/{id}", "/accounts/{id}"},
		{"/accounts/", "/{id}", "/accounts/{id}"},
		{"/accounts/", "{id}", "/accounts/{id}"},
		{"/accounts", "{id}", "/accounts/{id}"},
		{"", "/{id}", "/{id}"},
		{"/accounts", "", "/accounts"},
		{"", "", ""},
	}
	for _, c := range cases {
		if got := CombinePaths(c.base, c.sub); got != c.want {
			t.Errorf("CombinePaths(%q, %q) = %q, want %q", c.base, c.sub, got, c.want)
		}
	}
}

func TestInterfaceParsing(t *testing.T) {
	src := `
package com.example.shop.repository;

public interface OrderRepository extends JpaRepository<Order, Long> {

    Optional<Order> findByReference(String reference);
}
`
	jc, _ := ParseJavaFile(src)

	if !jc.IsInterface {
		t.Error("expected interface")
	}
	if jc.Extends != "JpaRepository<Order, Long>" {
		t.Errorf("unexpected extends clause %q", jc.Extends)
	}
	if got := FirstGenericArg(jc.Extends); got != "Order" {
		t.Errorf("expected entity Order, got %q", got)
	}
	if len(jc.Methods) != 1 || jc.Methods[0].Name != "findByReference" {
		t.Errorf("unexpected methods: %+v", jc.Methods)
	}
	if jc.Methods[0].Body != "" {
		t.Error("abstract method must have no body")
	}
}

func TestFieldAnnotations(t *testing.T) {
	src := `
package com.example.shop.entity;

@Entity
@Table(name = "orders")
public class Order {

    @Id
    @Column(name = "order_id")
    private Long id;

    @OneToMany(mappedBy = "order")
    private List<LineItem> items;

    private String reference;
}
`
	jc, _ := ParseJavaFile(src)

	if len(jc.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(jc.Fields))
	}

	byName := map[string]*Field{}
	for i := range jc.Fields {
		byName[jc.Fields[i].Name] = &jc.Fields[i]
	}

	id := byName["id"]
	if id == nil || id.FieldAnnotation("Column") == nil {
		t.Fatal("id field or its @Column missing")
	}
	if id.FieldAnnotation("Column").Attributes["name"] != "order_id" {
		t.Error("column name attribute not parsed")
	}

	items := byName["items"]
	if items == nil || items.FieldAnnotation("OneToMany") == nil {
		t.Fatal("items field or its @OneToMany missing")
	}
	if got := UnwrapCollection(items.Type); got != "LineItem" {
		t.Errorf("expected LineItem, got %q", got)
	}

	// Plain fields come back unchanged.
	if got := UnwrapCollection("String"); got != "String" {
		t.Errorf("expected String, got %q", got)
	}
}

func TestSplitParams(t *testing.T) {
	got := SplitParams("Map<String, Object> payload, Long id")
	if len(got) != 2 {
		t.Fatalf("expected 2 params, got %v", got)
	}
	if got[0] != "Map<String, Object> payload" || got[1] != "Long id" {
		t.Errorf("generic-aware split failed: %v", got)
	}
	if len(SplitParams("")) != 0 {
		t.Error("empty params must yield empty slice")
	}
}

func TestMissingDeclaration(t *testing.T) {
	jc, err := ParseJavaFile("// just a comment, nothing else")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jc.Name != "" {
		t.Errorf("expected empty class name, got %q", jc.Name)
	}
}
