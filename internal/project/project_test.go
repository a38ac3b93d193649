package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAnalyzeMavenBootProject(t *testing.T) {
	info, err := Analyze("../../testdata/springdemo")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if info.BuildSystem != "maven" {
		t.Errorf("build system = %q, want maven", info.BuildSystem)
	}
	if !info.SpringBoot {
		t.Error("Boot starter parent not detected")
	}
	if info.SpringBootVersion != "3.2.5" {
		t.Errorf("boot version = %q, want 3.2.5", info.SpringBootVersion)
	}
	if filepath.Base(info.BuildFile) != "pom.xml" {
		t.Errorf("build file = %q", info.BuildFile)
	}
}

func TestAnalyzeMissingRoot(t *testing.T) {
	if _, err := Analyze("/no/such/repo"); err == nil {
		t.Error("missing root must be a hard error")
	}
}

func TestAnalyzeGradleProject(t *testing.T) {
	dir := t.TempDir()
	gradle := `plugins { id "org.springframework.boot" version "3.1.0" }`
	if err := os.WriteFile(filepath.Join(dir, "build.gradle"), []byte(gradle), 0644); err != nil {
		t.Fatal(err)
	}

	info, err := Analyze(dir)
	if err != nil {
		t.Fatal(err)
	}
	if info.BuildSystem != "gradle" {
		t.Errorf("build system = %q, want gradle", info.BuildSystem)
	}
	if !info.SpringBoot {
		t.Error("Boot plugin not detected in build.gradle")
	}
}

func TestAnalyzeNoBuildFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "main", "java")
	if err := os.MkdirAll(src, 0755); err != nil {
		t.Fatal(err)
	}
	app := `@SpringBootApplication public class App {}`
	if err := os.WriteFile(filepath.Join(src, "App.java"), []byte(app), 0644); err != nil {
		t.Fatal(err)
	}

	info, err := Analyze(dir)
	if err != nil {
		t.Fatal(err)
	}
	if info.BuildSystem != "unknown" {
		t.Errorf("build system = %q, want unknown", info.BuildSystem)
	}
	// The source-level marker still carries the verdict.
	if !info.SpringBoot {
		t.Error("@SpringBootApplication fallback failed")
	}
}

func TestAnalyzeBrokenPomDegrades(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pom.xml"), []byte("<project><unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	info, err := Analyze(dir)
	if err != nil {
		t.Fatalf("a broken pom must degrade, not fail: %v", err)
	}
	if info.BuildSystem != "maven" {
		t.Errorf("build system = %q, want maven", info.BuildSystem)
	}
	if info.SpringBoot {
		t.Error("no Boot evidence, verdict must stay false")
	}
}

func TestParsePOM(t *testing.T) {
	pom, err := ParsePOM("../../testdata/springdemo/pom.xml")
	if err != nil {
		t.Fatalf("ParsePOM failed: %v", err)
	}

	if pom.ArtifactID != "bank-demo" {
		t.Errorf("artifactId = %q", pom.ArtifactID)
	}
	if pom.Properties.JavaVersion != "17" {
		t.Errorf("java.version = %q", pom.Properties.JavaVersion)
	}
	if len(pom.Dependencies) != 2 {
		t.Errorf("dependencies = %+v", pom.Dependencies)
	}
	if !pom.UsesSpringBoot() {
		t.Error("UsesSpringBoot() = false")
	}
	if pom.SpringBootVersion() != "3.2.5" {
		t.Errorf("SpringBootVersion() = %q", pom.SpringBootVersion())
	}
}
