// Package project persists solve sessions as JSON project files and the
// application configuration as TOML.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/piwi3910/slicecut/internal/model"
)

// FormatVersion is written to every project file.
const FormatVersion = "1.0.0"

// FileExtension is the conventional suffix for project files.
const FileExtension = ".slicecut"

// ErrProject is returned when a project file is unreadable or inconsistent.
var ErrProject = errors.New("invalid project file")

// GridData is the serialised form of a grid, one string per row.
type GridData struct {
	Rows           int      `json:"rows"`
	Cols           int      `json:"cols"`
	MinIngredients int      `json:"min_ingredients"`
	MaxCells       int      `json:"max_cells"`
	Body           []string `json:"body"`
}

// Project is the top-level structure of a project file.
type Project struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Input     string              `json:"input,omitempty"` // Source file the grid was loaded from
	Grid      GridData            `json:"grid"`
	Settings  model.SolveSettings `json:"settings"`
	Result    *model.SolveResult  `json:"result,omitempty"`
}

// New builds a project for g. result may be nil for an unsolved session.
func New(input string, g *model.Grid, settings model.SolveSettings, result *model.SolveResult) Project {
	return Project{
		Version:   FormatVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Input:     input,
		Grid:      encodeGrid(g),
		Settings:  settings,
		Result:    result,
	}
}

// LoadGrid rebuilds the grid stored in the project.
func (p Project) LoadGrid() (*model.Grid, error) {
	n, err := model.CellCount(p.Grid.Rows, p.Grid.Cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProject, err)
	}
	cells := make([]model.Ingredient, 0, n)
	for i, row := range p.Grid.Body {
		for _, r := range row {
			ing, ok := model.ParseIngredient(r)
			if !ok {
				return nil, fmt.Errorf("%w: grid row %d has cell %q", ErrProject, i+1, r)
			}
			cells = append(cells, ing)
		}
	}
	g, err := model.NewGrid(p.Grid.Rows, p.Grid.Cols, p.Grid.MinIngredients, p.Grid.MaxCells, cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProject, err)
	}
	return g, nil
}

func encodeGrid(g *model.Grid) GridData {
	body := make([]string, g.Rows)
	var sb strings.Builder
	for row := 0; row < g.Rows; row++ {
		sb.Reset()
		for col := 0; col < g.Cols; col++ {
			sb.WriteByte(byte(g.At(row, col)))
		}
		body[row] = sb.String()
	}
	return GridData{
		Rows:           g.Rows,
		Cols:           g.Cols,
		MinIngredients: g.MinIngredients,
		MaxCells:       g.MaxCells,
		Body:           body,
	}
}

// SaveProject writes a project to path as indented JSON, creating parent
// directories as needed.
func SaveProject(path string, p Project) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// LoadProject reads a project file and checks that its stored result, if
// any, was computed for the stored grid.
func LoadProject(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("%w: %v", ErrProject, err)
	}
	if p.Version == "" {
		return Project{}, fmt.Errorf("%w: missing version field", ErrProject)
	}
	if p.Result != nil && (p.Result.Rows != p.Grid.Rows || p.Result.Cols != p.Grid.Cols) {
		return Project{}, fmt.Errorf("%w: result is for a %dx%d grid, project grid is %dx%d",
			ErrProject, p.Result.Rows, p.Result.Cols, p.Grid.Rows, p.Grid.Cols)
	}
	return p, nil
}
