package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"springlens/internal/analyzer"
	"springlens/internal/config"
	"springlens/internal/exporter"
	"springlens/internal/flow"
	"springlens/internal/logger"
	"springlens/internal/model"
	"springlens/internal/project"
	"springlens/internal/ui"
)

const (
	appName    = "SpringLens"
	appVersion = "1.0.0"
	appDesc    = "Static architecture reconstruction for Java/Spring codebases"
)

var (
	configPath  string
	verbose     bool
	showVersion bool
	rootDir     string
	outputDir   string
	formats     string
)

func init() {
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "config.yaml", "Path to configuration file (shorthand)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging (DEBUG level)")
	flag.BoolVar(&verbose, "v", false, "Enable verbose logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.StringVar(&rootDir, "root", "", "Override project root from config")
	flag.StringVar(&outputDir, "output", "", "Override output directory from config")
	flag.StringVar(&formats, "format", "", "Comma-separated output formats (excel,openapi,word,feature,schema)")
}

func main() {
	// Keep the console window open on double-click launches, even on panic.
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("\n❌ PANIC: %v\n", r)
		}
		waitForEnter()
	}()

	exitCode := run()
	os.Exit(exitCode)
}

func run() int {
	flag.Parse()

	if showVersion {
		fmt.Printf("%s v%s\n%s\n", appName, appVersion, appDesc)
		return 0
	}

	printBanner()

	logger.Info("Loading configuration...")
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		return 1
	}

	if rootDir != "" {
		abs, _ := filepath.Abs(rootDir)
		cfg.Project.RootDir = abs
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
		cfg.EnsureOutputDir()
	}
	if formats != "" {
		cfg.Output.Formats = strings.Split(formats, ",")
	}

	logPath := filepath.Join(cfg.Output.Dir, "springlens.log")
	if err := logger.Init(os.Stdout, logPath, verbose); err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	if err := runAnalysis(cfg); err != nil {
		logger.Error("Analysis failed: %v", err)
		return 1
	}

	logger.Info("✅ Analysis Complete. Check [%s] directory.", cfg.Output.Dir)
	return 0
}

// waitForEnter pauses so the console window does not close immediately
// when the binary was started by double-click.
func waitForEnter() {
	fmt.Println("\n==========================================")
	fmt.Println("Execution Finished. Press 'Enter' to exit.")
	fmt.Println("==========================================")
	bufio.NewReader(os.Stdin).ReadBytes('\n')
}

func runAnalysis(cfg *config.Config) error {
	root := cfg.Project.RootDir

	info, err := project.Analyze(root)
	if err != nil {
		return err
	}
	if info.SpringBoot {
		logger.Info("Project: %s, Spring Boot %s", info.BuildSystem, info.SpringBootVersion)
	} else {
		logger.Info("Project: %s", info.BuildSystem)
	}

	pipeline := ui.NewPipeline([]ui.Phase{
		ui.PhaseScanning,
		ui.PhaseTracing,
		ui.PhaseGenerating,
	})

	// Phase 1: scan and link.
	logger.Info("Phase 1: Scanning & Linking...")
	scanBar := pipeline.NextPhase(1)

	graph, err := analyzer.New(cfg).Scan(root)
	if err != nil {
		return err
	}
	scanBar.Increment()
	scanBar.Finish()

	// Phase 2: trace call flows.
	var flows []*model.EndpointFlow
	traceBar := pipeline.NextPhase(len(graph.Endpoints))
	if cfg.Analysis.TraceFlows {
		logger.Info("Phase 2: Tracing call flows...")
		tracer := flow.NewTracer(graph)
		for _, ep := range graph.Endpoints {
			flows = append(flows, tracer.Trace(ep))
			traceBar.Increment()
		}
	}
	traceBar.Finish()

	report := &model.Report{
		AnalysisDate: time.Now().Format("2006-01-02"),
		ProjectRoot:  root,
		BuildSystem:  info.BuildSystem,
		SpringBoot:   info.SpringBoot,
		Graph:        graph,
		Flows:        flows,
	}

	// Phase 3: reports.
	logger.Info("Phase 3: Generating Reports...")
	exporters := exporter.GetExporters(cfg.Output.Formats)
	genBar := pipeline.NextPhase(len(exporters))

	var exportErrors []error
	for _, exp := range exporters {
		if err := exp.Export(report, cfg); err != nil {
			logger.Error("Export failed: %v", err)
			exportErrors = append(exportErrors, err)
		}
		genBar.Increment()
	}
	genBar.Finish()
	pipeline.Finish()

	if cfg.Analysis.TraceFlows {
		if err := writeFlows(cfg, flows); err != nil {
			logger.Warn("failed to write flow dump: %v", err)
		}
	}

	if len(exportErrors) > 0 {
		return fmt.Errorf("one or more exports failed: %d errors", len(exportErrors))
	}
	return nil
}

// writeFlows dumps the traced flows as JSON next to the other reports.
func writeFlows(cfg *config.Config, flows []*model.EndpointFlow) error {
	path := filepath.Join(cfg.Output.Dir, "flows.json")
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(flows)
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                     SPRINGLENS v1.0.0                     ║
║     Architecture Reconstruction for Spring Projects       ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}
