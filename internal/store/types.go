package store

// Run is one recorded execution.
type Run struct {
	Seq         int64  `json:"seq"` // assigned by the store on insert
	ID          string `json:"id"`
	OutputPath  string `json:"output_path"`
	Digest      string `json:"digest"`
	RecordCount int    `json:"record_count"`

	// Records is only used by WriteRun; ListRuns leaves it empty.
	Records []Record `json:"records,omitempty"`
}

// Record is one emitted element of a run.
type Record struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Line  string  `json:"line"`
}
