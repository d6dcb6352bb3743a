package recorder

import "StockPulse/internal/model"

// Recorder persists the history of analysis runs.
type Recorder interface {
	RecordAnalysis(a *model.Analysis) error
	Close() error
}
