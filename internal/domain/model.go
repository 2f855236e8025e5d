package domain

// StackKind identifies the primary technology ecosystem of a project.
type StackKind string

const (
	StackNodeJS  StackKind = "nodejs"
	StackPython  StackKind = "python"
	StackPHP     StackKind = "php"
	StackGo      StackKind = "go"
	StackRuby    StackKind = "ruby"
	StackStatic  StackKind = "static"
	StackUnknown StackKind = "unknown"
)

// Stack describes the detected technology stack of a project.
// Primary is resolved by a fixed decision order; ecosystems matched
// after the first keep contributing to Technologies only.
type Stack struct {
	Primary      StackKind `json:"primary"`
	Technologies []string  `json:"technologies"`
	Frameworks   []string  `json:"frameworks"`
}

// Structure is the file/directory inventory produced by one tree walk.
type Structure struct {
	FileCount      int            `json:"total_files"`
	DirCount       int            `json:"total_directories"`
	FileTypes      map[string]int `json:"file_types"`
	ImportantFiles []string       `json:"important_files"`
	Directories    []string       `json:"directories"`
}

// HasImportantFile reports whether a file with the given base name was
// flagged during the scan, at any depth.
func (s Structure) HasImportantFile(name string) bool {
	for _, f := range s.ImportantFiles {
		if f == name || baseName(f) == name {
			return true
		}
	}
	return false
}

func baseName(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}
	return p
}

// NodeManifest is the normalized view of a package.json.
type NodeManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

// Dependencies holds the per-stack declared dependency view plus any
// non-fatal parse failures encountered while building it.
type Dependencies struct {
	Node               *NodeManifest `json:"nodejs,omitempty"`
	PythonRequirements []string      `json:"python_requirements,omitempty"`
	SystemPackages     []string      `json:"system_packages,omitempty"`
	Issues             []string      `json:"issues"`
}

// DatabaseKind is a database backend guessed from file content.
type DatabaseKind string

const (
	DatabaseMongoDB    DatabaseKind = "mongodb"
	DatabasePostgreSQL DatabaseKind = "postgresql"
	DatabaseMySQL      DatabaseKind = "mysql"
	DatabaseSQLite     DatabaseKind = "sqlite"
	DatabaseRedis      DatabaseKind = "redis"
)

// Configuration describes the configuration surface of a project.
// DatabaseHints and PortHints are best-effort signals: deduplicated,
// nil when nothing was detected.
type Configuration struct {
	ConfigFiles    []string       `json:"config_files"`
	EnvFiles       []string       `json:"environment_files"`
	ContainerFiles []string       `json:"docker_files"`
	DatabaseHints  []DatabaseKind `json:"detected_databases,omitempty"`
	PortHints      []int          `json:"detected_ports,omitempty"`
}

// IssueKind is the closed set of deployment-risk categories.
type IssueKind string

const (
	IssueMissingManifest IssueKind = "missing_manifest"
	IssueHardcodedConfig IssueKind = "hardcoded_config"
	IssueMissingEnv      IssueKind = "missing_env"
	IssueLargeFiles      IssueKind = "large_files"
)

// Severity ranks a detected issue.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Issue is a single deployment risk found during analysis.
type Issue struct {
	Kind        IssueKind `json:"type"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
}

// AnalysisReport is the read-only artifact of one analysis pass.
// It is constructed fresh per invocation; the fix engine treats it as
// immutable input and the caller decides whether to serialize it.
type AnalysisReport struct {
	Root            string        `json:"project_path"`
	Stack           Stack         `json:"project_type"`
	Structure       Structure     `json:"structure"`
	Dependencies    Dependencies  `json:"dependencies"`
	Configuration   Configuration `json:"configuration"`
	Issues          []Issue       `json:"potential_issues"`
	Recommendations []string      `json:"recommendations"`
}

// FixLedger is the ordered record of fixes applied during one
// remediation run. Append-only; scoped to a single engine invocation.
// Cross-run idempotence comes from sentinel markers in the mutated
// files, not from persisting the ledger.
type FixLedger struct {
	Entries []string `json:"fixes_applied"`
}

// Append records one applied fix.
func (l *FixLedger) Append(description string) {
	l.Entries = append(l.Entries, description)
}

// Empty reports whether no fixes were applied. An empty ledger means
// "no fixes needed", not failure.
func (l *FixLedger) Empty() bool { return len(l.Entries) == 0 }
