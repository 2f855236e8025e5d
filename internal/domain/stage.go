package domain

// StageStatus is the outcome of one pipeline stage.
type StageStatus string

const (
	StageNotRun    StageStatus = "not_run"
	StageSucceeded StageStatus = "succeeded"
	StageFailed    StageStatus = "failed"
	StageSkipped   StageStatus = "skipped"
)

// StageResult records how a single pipeline stage ended. Reason is set
// only for failed or skipped stages.
type StageResult struct {
	Status StageStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
}

func Succeeded() StageResult            { return StageResult{Status: StageSucceeded} }
func Failed(reason string) StageResult  { return StageResult{Status: StageFailed, Reason: reason} }
func Skipped(reason string) StageResult { return StageResult{Status: StageSkipped, Reason: reason} }

// Ok reports whether the stage did not fail. Skipped stages count as ok:
// the pipeline treats fix-stage failure as non-fatal by skipping, not
// by aborting.
func (r StageResult) Ok() bool { return r.Status != StageFailed }

// PipelineReport is the per-stage outcome of one deploy run.
type PipelineReport struct {
	Acquire StageResult `json:"acquire"`
	Analyze StageResult `json:"analyze"`
	Fix     StageResult `json:"fix"`
	Install StageResult `json:"install"`
}
