package constants

// JobStatus is the canonical status for rows in generate_job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued  JobStatus = "QUEUED"  // accepted, not started
	JobStatusRunning JobStatus = "RUNNING" // in progress
	JobStatusDone    JobStatus = "DONE"    // bundle written
	JobStatusFailed  JobStatus = "FAILED"  // terminal failure
)

// JobStage names the pipeline stage a running job is in.
type JobStage string

const (
	StageExtract   JobStage = "EXTRACT"
	StageFormat    JobStage = "FORMAT"
	StageTranslate JobStage = "TRANSLATE"
	StageRender    JobStage = "RENDER"
	StageBundle    JobStage = "BUNDLE"
)
