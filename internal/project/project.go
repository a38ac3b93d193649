package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"springlens/internal/logger"
)

// Info is the build-system verdict for a repository.
type Info struct {
	BuildSystem       string `json:"buildSystem"` // "maven", "gradle" or "unknown"
	SpringBoot        bool   `json:"springBoot"`
	SpringBootVersion string `json:"springBootVersion,omitempty"`
	BuildFile         string `json:"buildFile,omitempty"`
}

// Analyze inspects a repository for its build system and Spring Boot
// usage. Only a missing root is an error; unparseable build files degrade
// to an "unknown" verdict.
func Analyze(root string) (*Info, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("repository path does not exist: %s", root)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("repository path is not a directory: %s", root)
	}

	info := &Info{BuildSystem: "unknown"}

	if pomPath := findBuildFile(root, "pom.xml"); pomPath != "" {
		info.BuildSystem = "maven"
		info.BuildFile = pomPath
		pom, err := ParsePOM(pomPath)
		if err != nil {
			logger.Warn("failed to parse %s: %v", pomPath, err)
		} else {
			info.SpringBoot = pom.UsesSpringBoot()
			info.SpringBootVersion = pom.SpringBootVersion()
		}
	} else if gradlePath := firstExisting(root, "build.gradle", "build.gradle.kts"); gradlePath != "" {
		info.BuildSystem = "gradle"
		info.BuildFile = gradlePath
		if raw, err := os.ReadFile(gradlePath); err == nil {
			info.SpringBoot = strings.Contains(string(raw), "org.springframework.boot")
		}
	}

	// Build file said nothing: fall back to the source-level marker.
	if !info.SpringBoot {
		info.SpringBoot = hasBootApplicationClass(root)
	}

	return info, nil
}

// findBuildFile returns the shallowest occurrence of name under root,
// skipping build output and VCS directories.
func findBuildFile(root, name string) string {
	if p := filepath.Join(root, name); exists(p) {
		return p
	}

	best := ""
	bestDepth := 0
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", ".svn", "target", "build", "node_modules":
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != name {
			return nil
		}
		depth := strings.Count(filepath.ToSlash(path), "/")
		if best == "" || depth < bestDepth {
			best = path
			bestDepth = depth
		}
		return nil
	})
	return best
}

func firstExisting(root string, names ...string) string {
	for _, name := range names {
		if p := findBuildFile(root, name); p != "" {
			return p
		}
	}
	return ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// hasBootApplicationClass scans the conventional source root for an
// @SpringBootApplication marker. A bounded check, not a full parse.
func hasBootApplicationClass(root string) bool {
	srcRoot := filepath.Join(root, "src", "main", "java")
	if !exists(srcRoot) {
		srcRoot = root
	}

	found := false
	filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil || found {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == "target" || d.Name() == "build" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".java") {
			return nil
		}
		if raw, rerr := os.ReadFile(path); rerr == nil &&
			strings.Contains(string(raw), "@SpringBootApplication") {
			found = true
		}
		return nil
	})
	return found
}
