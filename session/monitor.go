package session

import (
	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
)

// Stage is a step of the per-turn state machine.
type Stage int

const (
	StageIdle Stage = iota
	StageReceived
	StageClassified
	StageDispatched
	StageReranked
	StageAppended
	StageTurnFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageReceived:
		return "received"
	case StageClassified:
		return "classified"
	case StageDispatched:
		return "dispatched"
	case StageReranked:
		return "reranked"
	case StageAppended:
		return "appended"
	case StageTurnFailed:
		return "turn_failed"
	default:
		return "unknown"
	}
}

// TurnMonitor provides hooks to observe a turn as it moves through the stages.
type TurnMonitor interface {
	Enter(stage Stage)
	AfterClassification(classification *ai.Classification)
	AfterDispatch(kind core.SearchKind, results core.ResultSet)
	AfterRerank(results core.ResultSet, ranked bool)
	Finish(result *TurnResult)
}

// noopMonitor is a no-op implementation of TurnMonitor
type noopMonitor struct{}

var _ TurnMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Enter(_ Stage)                                     {}
func (n *noopMonitor) AfterClassification(_ *ai.Classification)          {}
func (n *noopMonitor) AfterDispatch(_ core.SearchKind, _ core.ResultSet) {}
func (n *noopMonitor) AfterRerank(_ core.ResultSet, _ bool)              {}
func (n *noopMonitor) Finish(_ *TurnResult)                              {}
