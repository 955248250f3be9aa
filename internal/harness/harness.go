package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/latticeforge/tessera/internal/ruleset"
	"github.com/latticeforge/tessera/internal/solver"
	"github.com/latticeforge/tessera/internal/wfcerr"
)

// Result is the outcome of running a Scenario against the real solver.
type Result struct {
	Grid   solver.Grid
	RunErr error
}

// Run loads a scenario's ruleset (resolving RuleSetPath against
// baseDir), constructs a Model with the scenario's width, height, and
// seed, and executes it. Run never fails on a Contradiction or other
// solver error; those are reported in Result.RunErr for the caller's
// assertions to inspect - fixtures assert on an *expected* Contradiction
// just as often as on a successful grid.
func Run(s *Scenario, baseDir string) (*Result, error) {
	rs, err := loadScenarioRuleSet(s, baseDir)
	if err != nil {
		return nil, err
	}

	model, err := solver.NewModel(s.Width, s.Height, rs, s.Seed)
	if err != nil {
		return &Result{RunErr: err}, nil
	}

	grid, runErr := model.Run()
	return &Result{Grid: grid, RunErr: runErr}, nil
}

func loadScenarioRuleSet(s *Scenario, baseDir string) (*ruleset.RuleSet, error) {
	if s.RuleSet != nil {
		return buildInlineRuleSet(s.RuleSet)
	}

	path := s.RuleSetPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset file %s: %w", path, err)
	}
	return ruleset.Parse(data)
}

func buildInlineRuleSet(inline *InlineRuleSet) (*ruleset.RuleSet, error) {
	b := ruleset.NewBuilder()
	for _, t := range inline.Tiles {
		weight := t.Weight
		if weight <= 0 {
			weight = 1
		}
		b.AddTile(ruleset.TileID(t.ID), ruleset.Weight(weight))
	}
	for _, r := range inline.Rules {
		dir, ok := ruleset.ParseDirection(r.Direction)
		if !ok {
			return nil, fmt.Errorf("unknown direction %q in inline ruleset", r.Direction)
		}
		b.AddAdjacency(ruleset.TileID(r.From), ruleset.TileID(r.To), dir)
	}
	return b.Build()
}

// CheckExpectation compares a Result against a Scenario's non-golden
// expectation (ExpectGrid or ExpectContradiction) and returns a
// descriptive error on mismatch, or nil on match. Golden-file
// expectations are checked separately by RunWithGolden.
func CheckExpectation(s *Scenario, r *Result) error {
	if s.ExpectAnyContradiction {
		if _, ok := wfcerr.AsContradiction(r.RunErr); !ok {
			return fmt.Errorf("scenario %s: expected a Contradiction, got %v", s.Name, r.RunErr)
		}
		return nil
	}

	if s.ExpectContradiction != nil {
		cell, ok := wfcerr.AsContradiction(r.RunErr)
		if !ok {
			return fmt.Errorf("scenario %s: expected Contradiction at cell %d, got %v", s.Name, *s.ExpectContradiction, r.RunErr)
		}
		if cell != *s.ExpectContradiction {
			return fmt.Errorf("scenario %s: expected Contradiction at cell %d, got cell %d", s.Name, *s.ExpectContradiction, cell)
		}
		return nil
	}

	if r.RunErr != nil {
		return fmt.Errorf("scenario %s: expected success, got error %v", s.Name, r.RunErr)
	}

	got := gridRows(r.Grid)
	if len(got) != len(s.ExpectGrid) {
		return fmt.Errorf("scenario %s: expected %d rows, got %d", s.Name, len(s.ExpectGrid), len(got))
	}
	for i := range got {
		if got[i] != s.ExpectGrid[i] {
			return fmt.Errorf("scenario %s: row %d: expected %q, got %q", s.Name, i, s.ExpectGrid[i], got[i])
		}
	}
	return nil
}

func gridRows(g solver.Grid) []string {
	rows := make([]string, g.Height)
	for y := 0; y < g.Height; y++ {
		row := ""
		for x := 0; x < g.Width; x++ {
			if x > 0 {
				row += " "
			}
			row += string(g.At(x, y))
		}
		rows[y] = row
	}
	return rows
}
