package linker

import (
	"regexp"
	"strings"

	"springlens/internal/model"
	"springlens/internal/utils"
)

// callRegex matches receiver.method( call expressions.
var callRegex = regexp.MustCompile(`(\w+)\.(\w+)\s*\(`)

// transactionCallRegex catches component calls written through chained or
// otherwise unbound receivers in transaction-heavy code; the receiver
// suffix alone identifies the component.
var transactionCallRegex = regexp.MustCompile(`(\w+(?:Service|Repository|Dao))\.(\w+(?:Transfer|Transaction|Payment|Deposit|Withdraw|Account|Balance))\s*\(`)

// skippedCallees are methods that never advance an architectural flow.
var skippedCallees = map[string]bool{
	"toString": true, "equals": true, "hashCode": true,
	"println": true, "print": true, "printf": true,
	"debug": true, "info": true, "error": true, "warn": true, "trace": true,
}

// skippedReceivers are receivers that never name an injected component.
var skippedReceivers = map[string]bool{
	"this": true, "super": true, "System": true, "Math": true,
	"String": true, "Objects": true, "Collections": true, "Arrays": true,
	"log": true, "logger": true, "LOG": true, "LOGGER": true,
}

// ExtractCalls finds the component calls in a method body. Receivers are
// resolved through an ordered chain: the binding table first, then the
// component naming convention, then the transaction call pattern. A
// receiver no strategy can resolve contributes nothing.
func ExtractCalls(body string, bindings Bindings) []model.Call {
	calls := []model.Call{}
	seen := make(map[string]bool)

	add := func(class, method string) {
		key := class + "." + method
		if class == "" || seen[key] {
			return
		}
		seen[key] = true
		calls = append(calls, model.Call{Class: class, Method: method})
	}

	for _, m := range callRegex.FindAllStringSubmatch(body, -1) {
		receiver, callee := m[1], m[2]
		if skippedCallees[callee] || skippedReceivers[receiver] || utils.IsNoise(callee) {
			continue
		}
		if !isIdentifier(receiver) || !isIdentifier(callee) {
			continue
		}
		add(resolveReceiver(receiver, bindings), callee)
	}

	for _, m := range transactionCallRegex.FindAllStringSubmatch(body, -1) {
		add(capitalize(m[1]), m[2])
	}

	return calls
}

// resolveReceiver maps a receiver variable to a class name, or "" when no
// strategy has an opinion.
func resolveReceiver(receiver string, bindings Bindings) string {
	if class, ok := bindings[receiver]; ok {
		return class
	}
	// Naming convention: accountService -> AccountService.
	if hasComponentSuffix(receiver) {
		return capitalize(receiver)
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// isIdentifier reports whether the token is a plausible Java identifier
// (the call regex can pick tokens out of numeric or malformed text).
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	first := rune(s[0])
	if !(first == '_' || first == '$' ||
		(first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')) {
		return false
	}
	return true
}
