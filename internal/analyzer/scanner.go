package analyzer

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"springlens/internal/config"
	"springlens/internal/logger"
)

// FindJavaFiles locates the Java sources of a repository. The
// conventional Maven/Gradle root src/main/java is preferred; when it does
// not exist or holds no sources, the whole tree is walked instead.
// Scanning problems degrade to an empty (or partial) result, never to a
// failure.
func FindJavaFiles(root string, cfg *config.Config) []string {
	conventional := filepath.Join(root, "src", "main", "java")
	if info, err := os.Stat(conventional); err == nil && info.IsDir() {
		if files := collectJavaFiles(conventional, cfg); len(files) > 0 {
			return files
		}
		logger.Debug("src/main/java present but empty, falling back to full walk")
	}
	return collectJavaFiles(root, cfg)
}

func collectJavaFiles(dir string, cfg *config.Config) []string {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug("skipping unreadable path %s: %v", path, err)
			return nil
		}

		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == ".svn" {
				return filepath.SkipDir
			}
			rel, _ := filepath.Rel(dir, path)
			if rel != "." && cfg != nil && cfg.ShouldExclude(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(path, ".java") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		logger.Warn("source scan of %s incomplete: %v", dir, err)
	}

	return files
}
