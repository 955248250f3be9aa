package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes s (resolving its ruleset against baseDir) and
// compares the resulting grid (or, when the run fails, the run error's
// message) against testdata/golden/{s.Name}.golden.
//
// To regenerate golden files: go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario, baseDir string) {
	t.Helper()

	result, err := Run(s, baseDir)
	if err != nil {
		t.Fatalf("scenario %s: %v", s.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, []byte(goldenBody(s, result)))
}

func goldenBody(s *Scenario, r *Result) string {
	if r.RunErr != nil {
		return r.RunErr.Error() + "\n"
	}
	return r.Grid.String()
}

// AssertRuleSetGolden compares a RuleSet's canonical serialization
// against testdata/golden/{name}.golden - used to pin derived RuleSets
// (e.g. from internal/socket) against a checked-in fixture.
func AssertRuleSetGolden(t *testing.T, name string, serialized []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, serialized)
}
