package model

// Analysis is the per-file entry in a run report. Files that fail to
// parse get Error set and nothing else beyond Filename.
type Analysis struct {
	Filename      string   `json:"filename"`
	Key           string   `json:"key,omitempty"`
	TimeSignature string   `json:"time_signature,omitempty"`
	Measures      int      `json:"measures,omitempty"`
	Valid         bool     `json:"valid"`
	Violations    []string `json:"violations,omitempty"`
	Title         string   `json:"title,omitempty"`
	Catalog       string   `json:"catalog,omitempty"`
	Error         string   `json:"error,omitempty"`
}

type RunResults struct {
	RunID               string     `json:"run_id"`
	Timestamp           string     `json:"timestamp"`
	TotalFiles          int        `json:"total_files"`
	ValidFiles          int        `json:"valid_files"`
	FilesWithViolations int        `json:"files_with_violations"`
	Analyses            []Analysis `json:"analyses"`
}

// PieceMetadata is catalog information for a known score file.
type PieceMetadata struct {
	Title   string
	Catalog string
	Year    uint
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
