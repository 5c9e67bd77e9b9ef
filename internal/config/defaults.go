package config

const (
	// DefaultWorkers is the default size of the worker pool, used when
	// BEHAVE_MAX_WORKERS and the --workers flag are both unset.
	DefaultWorkers = 3
	// DefaultBehaveBin is the behave executable looked up on PATH.
	DefaultBehaveBin = "behave"
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultOutputDir is the directory (under the project) holding run artifacts.
	DefaultOutputDir = ".bpr"
	// DefaultOutputFile is the last-run report file name.
	DefaultOutputFile = "last-run.json"
	// ConfigFileName is the optional per-project YAML config file.
	ConfigFileName = ".bpr.yaml"

	// EnvWorkers overrides the worker count, same as the original runner.
	EnvWorkers = "BEHAVE_MAX_WORKERS"
	// EnvBehaveBin overrides the behave executable path.
	EnvBehaveBin = "BEHAVE_BIN"
	// EnvUnitTimeout sets the per-unit wall-clock timeout (Go duration syntax).
	EnvUnitTimeout = "BEHAVE_UNIT_TIMEOUT"
)

// DefaultIgnoreDirs are directories skipped when expanding feature directories.
var DefaultIgnoreDirs = []string{
	"node_modules",
	"venv",
	".venv",
	"__pycache__",
	"reports",
}
