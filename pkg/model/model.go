package model

// Parameters holds the two strings read from a process's parameter block.
// Either may be empty when it could not be read.
type Parameters struct {
	CommandLine   string `json:"command_line"`
	ImagePathName string `json:"image_path"`

	// Program is the leading token of CommandLine when it differs from
	// ImagePathName, as when argv[0] names the program through PATH.
	// Empty means the command line starts with ImagePathName.
	Program string `json:"program,omitempty"`
}

// PathToken returns the text the command line is expected to start with.
func (p Parameters) PathToken() string {
	if p.Program != "" {
		return p.Program
	}
	return p.ImagePathName
}

// Empty reports whether nothing was recovered for the process.
func (p Parameters) Empty() bool {
	return p.CommandLine == "" && p.ImagePathName == ""
}

// Result is the per-PID record rendered by the CLI.
type Result struct {
	PID         int      `json:"pid"`
	CommandLine string   `json:"command_line"`
	ImagePath   string   `json:"image_path"`
	Arguments   string   `json:"arguments"`
	Argv        []string `json:"argv,omitempty"`
	Matched     *bool    `json:"matched,omitempty"`
}

// Known reports whether the extraction produced any text. An empty
// command line means "unknown", not "no arguments".
func (r Result) Known() bool {
	return r.CommandLine != ""
}
