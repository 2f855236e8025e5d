package domain

import "context"

// ProjectScanner walks a project tree and returns its structure.
type ProjectScanner interface {
	Scan(root string) Structure
}

// StackClassifier determines the technology stack of a project.
type StackClassifier interface {
	Classify(root string) Stack
}

// DependencyInspector extracts declared dependencies from stack manifests.
type DependencyInspector interface {
	Inspect(root string, stack Stack) Dependencies
}

// ConfigProber locates configuration files and guesses databases and ports.
type ConfigProber interface {
	Probe(root string) Configuration
}

// RepoFetcher acquires a repository working tree.
type RepoFetcher interface {
	Fetch(ctx context.Context, url, dir string) error
	CommitHash(dir string) (string, error)
}

// ConfigStore persists deployment configuration into a project tree
// using the read-merge-write contract: existing documents are read,
// new keys are shallow-merged over old ones, and the result is written
// back in the same format.
type ConfigStore interface {
	Setup(root string, values map[string]string) error
	Load(root string) (map[string]string, error)
}
