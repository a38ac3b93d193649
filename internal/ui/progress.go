package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar wraps the progressbar library with our styling.
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	phase string
}

// Phase is a stage of the analysis pipeline.
type Phase string

const (
	PhaseScanning   Phase = "Scanning"
	PhaseLinking    Phase = "Linking"
	PhaseTracing    Phase = "Tracing"
	PhaseGenerating Phase = "Generating"
)

// NewProgressBar creates a progress bar for one phase.
func NewProgressBar(phase Phase, total int) *ProgressBar {
	return newProgressBar(phase, total, os.Stdout)
}

func newProgressBar(phase Phase, total int, output io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", phase)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(true),
	)

	return &ProgressBar{bar: bar, phase: string(phase)}
}

// Increment advances the bar by one.
func (pb *ProgressBar) Increment() error {
	return pb.bar.Add(1)
}

// SetTotal updates the total count once it is known.
func (pb *ProgressBar) SetTotal(total int) {
	pb.bar.ChangeMax(total)
}

// Finish completes the bar.
func (pb *ProgressBar) Finish() error {
	return pb.bar.Finish()
}

// Pipeline tracks progress across the ordered analysis phases.
type Pipeline struct {
	phases   []Phase
	current  int
	bars     []*ProgressBar
	disabled bool
	output   io.Writer
}

// NewPipeline creates a pipeline over the given phases.
func NewPipeline(phases []Phase) *Pipeline {
	return &Pipeline{
		phases:  phases,
		current: -1,
		bars:    make([]*ProgressBar, 0, len(phases)),
		output:  os.Stdout,
	}
}

// Disable suppresses all bar output (for tests and quiet runs).
func (p *Pipeline) Disable() {
	p.disabled = true
}

// NextPhase finishes the current phase and starts the next one.
func (p *Pipeline) NextPhase(total int) *ProgressBar {
	if p.current >= 0 && p.current < len(p.bars) {
		p.bars[p.current].Finish()
	}

	p.current++
	if p.current >= len(p.phases) {
		return nil
	}

	if p.disabled {
		return &ProgressBar{
			bar:   progressbar.NewOptions(-1, progressbar.OptionSetWriter(io.Discard)),
			phase: string(p.phases[p.current]),
		}
	}

	bar := newProgressBar(p.phases[p.current], total, p.output)
	p.bars = append(p.bars, bar)
	return bar
}

// Finish completes the last active phase.
func (p *Pipeline) Finish() {
	if p.current >= 0 && p.current < len(p.bars) {
		p.bars[p.current].Finish()
	}
}
