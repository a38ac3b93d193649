package exporter

import (
	"github.com/xuri/excelize/v2"
)

// Styler registers the Excel styles used across the report sheets.
type Styler struct {
	File *excelize.File

	HeaderStyle     int
	ControllerStyle int
	ServiceStyle    int
	RepositoryStyle int
	EntityStyle     int
	CycleStyle      int
	DefaultStyle    int
}

// NewStyler creates a Styler and registers all styles up front.
func NewStyler(f *excelize.File) (*Styler, error) {
	s := &Styler{File: f}
	var err error

	// Header: bold on gray, centered.
	s.HeaderStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#000000"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Controller rows: blue, the entry points.
	s.ControllerStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#0000FF"},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	s.ServiceStyle, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Repository rows: red, the persistence boundary.
	s.RepositoryStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "#D32F2F"},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Entity rows: green.
	s.EntityStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "#2E7D32"},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Cycle markers: gray italic.
	s.CycleStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "#757575", Italic: true},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	s.DefaultStyle, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

func createBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "D4D4D4", Style: 1},
		{Type: "top", Color: "D4D4D4", Style: 1},
		{Type: "bottom", Color: "D4D4D4", Style: 1},
		{Type: "right", Color: "D4D4D4", Style: 1},
	}
}
