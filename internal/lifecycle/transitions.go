package lifecycle

import "go-teachain-ws/internal/model"

// The two transition tables are the authority for what the client will even
// attempt. The contract enforces the same rules on chain; checking here first
// avoids burning a transaction on a move that can never succeed.

// stageNext maps a product stage to the stages reachable from it. Sold and
// Lost have no entry: they are terminal. Lost is reachable from every
// non-terminal stage.
var stageNext = map[model.Stage][]model.Stage{
	model.StageManufactured: {model.StageDistributor, model.StageLost},
	model.StageDistributor:  {model.StageRetailer, model.StageLost},
	model.StageRetailer:     {model.StageSold, model.StageLost},
}

// statusNext maps a user status to the statuses an admin may move it to.
// Blocked is reachable from every non-terminal status and is irreversible,
// as is Rejected.
var statusNext = map[model.UserStatus][]model.UserStatus{
	model.StatusPending:     {model.StatusActive, model.StatusRejected, model.StatusBlocked},
	model.StatusActive:      {model.StatusDeactivated, model.StatusBlocked},
	model.StatusDeactivated: {model.StatusActive, model.StatusBlocked},
}

// AllowedStages returns the stages a product at the given stage may move to.
// Empty for terminal stages.
func AllowedStages(from model.Stage) []model.Stage {
	return stageNext[from]
}

// CanTransitStage reports whether a product at from may move to to.
func CanTransitStage(from, to model.Stage) bool {
	for _, next := range stageNext[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedStatuses returns the statuses a user at the given status may be
// moved to. Empty for Blocked and Rejected.
func AllowedStatuses(from model.UserStatus) []model.UserStatus {
	return statusNext[from]
}

// CanTransitStatus reports whether a user at from may be moved to to.
func CanTransitStatus(from, to model.UserStatus) bool {
	for _, next := range statusNext[from] {
		if next == to {
			return true
		}
	}
	return false
}
