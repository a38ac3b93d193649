package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Project  ProjectConfig  `mapstructure:"project"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Output   OutputConfig   `mapstructure:"output"`
}

// ProjectConfig holds settings about the analyzed source tree.
type ProjectConfig struct {
	RootDir  string   `mapstructure:"root_dir"` // repository root to analyze
	Encoding []string `mapstructure:"encoding"` // decode order, e.g. ["utf-8", "latin-1"]
}

// AnalysisConfig holds analysis behavior settings.
type AnalysisConfig struct {
	ExcludeDirs []string `mapstructure:"exclude_dirs"` // glob patterns, ** supported
	TraceFlows  bool     `mapstructure:"trace_flows"`  // trace call flows per endpoint
}

// OutputConfig holds report output settings.
type OutputConfig struct {
	Dir      string   `mapstructure:"dir"`       // output directory
	FileName string   `mapstructure:"file_name"` // report file name without extension
	Formats  []string `mapstructure:"formats"`   // exporters to run
}

// Load reads the configuration from a file or falls back to defaults.
// A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "cannot find") {
			fmt.Println("Config file not found, using defaults (root: ./src, output: ./output)")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Printf("Loaded config from: %s\n", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("project.root_dir", "./src")
	v.SetDefault("project.encoding", []string{"utf-8", "latin-1"})

	v.SetDefault("analysis.exclude_dirs", []string{
		"**/test/**",
		"**/tests/**",
		"**/target/**",
		"**/build/**",
		"**/out/**",
		"**/.git/**",
		"**/.svn/**",
		"**/node_modules/**",
	})
	v.SetDefault("analysis.trace_flows", true)

	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.file_name", "springlens-report")
	v.SetDefault("output.formats", []string{"excel", "openapi", "schema"})
}

func (c *Config) normalizePaths() error {
	absRoot, err := filepath.Abs(c.Project.RootDir)
	if err != nil {
		return fmt.Errorf("failed to resolve root_dir: %w", err)
	}
	c.Project.RootDir = absRoot

	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput
	return nil
}

// EnsureOutputDir creates the output directory if needed.
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// ShouldExclude reports whether a file path matches any exclude pattern.
func (c *Config) ShouldExclude(filePath string) bool {
	normalized := filepath.ToSlash(filePath)
	for _, pattern := range c.Analysis.ExcludeDirs {
		if matchPathPattern(normalized, pattern) {
			return true
		}
	}
	return false
}

// GetOutputPath returns the full path for the Excel report file.
func (c *Config) GetOutputPath() string {
	return filepath.Join(c.Output.Dir, c.Output.FileName+".xlsx")
}

// Validate checks the configuration before an analysis run.
func (c *Config) Validate() error {
	if _, err := os.Stat(c.Project.RootDir); os.IsNotExist(err) {
		return fmt.Errorf("root_dir does not exist: %s", c.Project.RootDir)
	}
	if len(c.Project.Encoding) == 0 {
		return fmt.Errorf("project.encoding must contain at least one encoding")
	}
	if c.Output.FileName == "" {
		return fmt.Errorf("output.file_name cannot be empty")
	}
	return nil
}

// matchPathPattern matches a path against a glob pattern with ** support.
// The fragments between ** markers must appear in order as whole path
// segments.
func matchPathPattern(path, pattern string) bool {
	pattern = filepath.ToSlash(pattern)
	normalized := "/" + strings.Trim(filepath.ToSlash(path), "/") + "/"

	anchored := !strings.HasPrefix(pattern, "**")
	offset := 0
	for _, part := range strings.Split(pattern, "**") {
		part = strings.Trim(part, "/")
		if part == "" {
			anchored = false
			continue
		}
		seg := "/" + part + "/"
		pos := strings.Index(normalized[offset:], seg)
		if pos < 0 || (anchored && offset+pos != 0) {
			return false
		}
		offset += pos + len(seg) - 1
		anchored = false
	}
	return true
}

// Print displays the effective configuration.
func (c *Config) Print() {
	fmt.Println("=== SpringLens Configuration ===")
	fmt.Printf("Project Root:     %s\n", c.Project.RootDir)
	fmt.Printf("Encoding Hints:   %v\n", c.Project.Encoding)
	fmt.Printf("Exclude Dirs:     %v\n", c.Analysis.ExcludeDirs)
	fmt.Printf("Trace Flows:      %v\n", c.Analysis.TraceFlows)
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Output Formats:   %v\n", c.Output.Formats)
	fmt.Println("================================")
}
