package domain

// ScenarioFailure represents one failing scenario extracted from behave output
type ScenarioFailure struct {
	UnitPath string `json:"unit_path"`          // Feature file the scenario belongs to
	Location string `json:"location"`           // file:line as reported by behave
	Name     string `json:"name"`               // Scenario name, if it could be extracted
	Output   string `json:"output,omitempty"`   // Captured behave output for the unit
	Resolved bool   `json:"resolved,omitempty"` // Marked as reviewed in the failures viewer
}
