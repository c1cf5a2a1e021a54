package model

// Path represents a file system path.
type Path string

// StepInfo describes one scripted step of a suite without running it.
type StepInfo struct {
	Title    string
	Requests []string
}
