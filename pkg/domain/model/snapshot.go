package model

// Snapshot represents a repository snapshot extracted to a local directory.
// In serve mode the agent has no checkout, so watched files are read from
// a downloaded zipball instead.
type Snapshot struct {
	Root  string   // Temporary directory holding the extraction, removed after the run
	Dir   string   // Repository root inside Root (zipballs wrap contents in one directory)
	Files []string // List of extracted files
	Size  int64    // Total uncompressed size in bytes
}
