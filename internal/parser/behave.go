package parser

import (
	"regexp"
	"strconv"
	"strings"

	"bpr/internal/domain"
)

// BehaveParser extracts scenario-level information from behave output
type BehaveParser struct{}

// NewBehaveParser creates a new BehaveParser
func NewBehaveParser() *BehaveParser {
	return &BehaveParser{}
}

var (
	// "3 scenarios passed, 1 failed, 2 skipped"
	scenarioSummaryRe = regexp.MustCompile(`(\d+) scenarios? passed, (\d+) failed,(?: \d+ error(?:ed)?,)? (\d+) skipped`)
	// "  features/login.feature:12  Login with bad password"
	failingScenarioRe = regexp.MustCompile(`^\s+(\S+\.feature:\d+)\s*(.*)$`)
)

// ParseScenarioCounts extracts passed/failed/skipped scenario counts from
// behave's summary trailer. If the trailer is missing (crashed run, hung
// unit killed by timeout) it falls back to counting the whole unit as one
// scenario, passed or failed by unit status.
func (p *BehaveParser) ParseScenarioCounts(outcome domain.Outcome) (passed, failed, skipped int) {
	m := scenarioSummaryRe.FindStringSubmatch(outcome.Output)
	if len(m) == 4 {
		passed, _ = strconv.Atoi(m[1])
		failed, _ = strconv.Atoi(m[2])
		skipped, _ = strconv.Atoi(m[3])
		return passed, failed, skipped
	}

	// Fallback: one "scenario" per unit
	if outcome.Passed() {
		return 1, 0, 0
	}
	return 0, 1, 0
}

// ParseFailures extracts the entries of behave's "Failing scenarios:" block.
// For non-passing outcomes without such a block (spawn failure, timeout,
// engine crash) it synthesizes a single unit-level failure so the viewer
// always has something to show.
func (p *BehaveParser) ParseFailures(outcome domain.Outcome) []domain.ScenarioFailure {
	if outcome.Passed() {
		return nil
	}

	var failures []domain.ScenarioFailure
	lines := strings.Split(outcome.Output, "\n")

	inBlock := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "Failing scenarios:") {
			inBlock = true
			continue
		}
		if !inBlock {
			continue
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		m := failingScenarioRe.FindStringSubmatch(line)
		if m == nil {
			break
		}
		failures = append(failures, domain.ScenarioFailure{
			UnitPath: outcome.Unit.Path,
			Location: m[1],
			Name:     strings.TrimSpace(m[2]),
			Output:   outcome.Output,
		})
	}

	if len(failures) == 0 {
		failures = append(failures, domain.ScenarioFailure{
			UnitPath: outcome.Unit.Path,
			Location: outcome.Unit.Path,
			Name:     outcome.Unit.Name,
			Output:   outcome.Output,
		})
	}
	return failures
}
