package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestsDir is the default tests directory, relative to the project
	DefaultTestsDir = "tests"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "sweep-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".gosweep"
	// DefaultCoverageDir is where the HTML coverage report is written
	DefaultCoverageDir = "htmlcov"
	// DefaultLeakThresholdKB flags a test whose process peak RSS exceeds
	// the sweep median by this many KiB
	DefaultLeakThresholdKB = 65536
	// DefaultConfigFile is the optional YAML config file name
	DefaultConfigFile = "gosweep.yaml"
	// EnvDBDSN selects the MySQL history store when set
	EnvDBDSN = "GOSWEEP_DB_DSN"
)

// DefaultSkipDirs are the directories never descended into when scanning for tests
var DefaultSkipDirs = []string{
	"vendor",
	"testdata",
	"node_modules",
}
