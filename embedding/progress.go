package embedding

// Stage identifies a phase of a pipeline run.
type Stage string

const (
	StagePreparing  Stage = "preparing"
	StageBatching   Stage = "batching"
	StageSubmitting Stage = "submitting"
	StageRetrying   Stage = "retrying"
	StageFinalizing Stage = "finalizing"
	StageComplete   Stage = "complete"
	StageFailed     Stage = "failed"
)

// Monitor receives progress reports at every stage transition of a
// pipeline run. Percent is monotonically increasing over a run (a failed
// run stops reporting where it failed), and the message is human-readable.
type Monitor interface {
	Progress(stage Stage, percent float64, message string)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Progress(_ Stage, _ float64, _ string) {}

// MonitorFunc adapts a function to the Monitor interface.
type MonitorFunc func(stage Stage, percent float64, message string)

func (f MonitorFunc) Progress(stage Stage, percent float64, message string) {
	f(stage, percent, message)
}

// Progress percentages of the fixed stages. The submitting phase spans the
// range between batchingPercent and finalizingPercent proportionally to
// completed batches.
const (
	preparingPercent  = 0.0
	batchingPercent   = 5.0
	finalizingPercent = 95.0
	completePercent   = 100.0
)

// submitPercent interpolates the submitting-phase percentage after done of
// total batches completed.
func submitPercent(done, total int) float64 {
	if total == 0 {
		return finalizingPercent
	}
	span := finalizingPercent - batchingPercent
	return batchingPercent + span*float64(done)/float64(total)
}
