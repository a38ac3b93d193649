package analyzer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const demoRoot = "../../testdata/springdemo"

func TestReadFileUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A.java")
	if err := os.WriteFile(path, []byte("public class A {}"), 0644); err != nil {
		t.Fatal(err)
	}

	content, err := ReadFile(path, []string{"utf-8"})
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if content != "public class A {}" {
		t.Errorf("unexpected content %q", content)
	}
}

func TestReadFileLatin1Fallback(t *testing.T) {
	// NoteService.java carries a latin-1 encoded e-acute, invalid as UTF-8.
	path := filepath.Join(demoRoot, "src/main/java/com/example/bank/service/NoteService.java")

	content, err := ReadFile(path, []string{"utf-8", "latin-1"})
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(content, "café") {
		t.Error("latin-1 fallback did not decode the e-acute")
	}
	if !strings.Contains(content, "class NoteService") {
		t.Error("decoded content lost the class declaration")
	}
}

func TestReadFileLastResortNeverFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "B.java")
	if err := os.WriteFile(path, []byte{0xFF, 0xFE, 0x00, 0x41}, 0644); err != nil {
		t.Fatal(err)
	}

	// No configured encoding applies; the ISO-8859-1 last resort still
	// produces a string.
	if _, err := ReadFile(path, []string{"utf-8"}); err != nil {
		t.Errorf("unreadable encoding must degrade, not fail: %v", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile("/nonexistent/A.java", []string{"utf-8"}); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestStripComments(t *testing.T) {
	src := `
// @RestController in a line comment
/* @Service
   in a block comment */
@Entity
public class A {
    private Long id; // trailing note
}
`
	out := StripComments(src)
	if strings.Contains(out, "@RestController") || strings.Contains(out, "@Service") {
		t.Error("commented-out annotations must be removed")
	}
	if !strings.Contains(out, "@Entity") {
		t.Error("live annotation removed")
	}
	if !strings.Contains(out, "private Long id;") {
		t.Error("code before a trailing comment removed")
	}
}
