package api

import "time"

type (
	// EventType identifies a runtime notification
	EventType string

	// Event is a notification published while a project runs
	Event struct {
		Data      map[string]any `json:"data,omitempty"`
		Type      EventType      `json:"type"`
		Sprite    string         `json:"sprite,omitempty"`
		Chain     BlockID        `json:"chain,omitempty"`
		RunID     RunID          `json:"run_id,omitempty"`
		Timestamp time.Time      `json:"timestamp"`
		Frame     uint64         `json:"frame"`
	}

	// RunID identifies one run of a chain, from its start to its end
	RunID string
)

const (
	EventTypeTick            EventType = "tick"
	EventTypeGreenFlag       EventType = "green_flag"
	EventTypeBroadcast       EventType = "broadcast"
	EventTypeChainStarted    EventType = "chain_started"
	EventTypeChainFinished   EventType = "chain_finished"
	EventTypeChainHalted     EventType = "chain_halted"
	EventTypeCloneCreated    EventType = "clone_created"
	EventTypeCloneDeleted    EventType = "clone_deleted"
	EventTypeSay             EventType = "say"
	EventTypeAsk             EventType = "ask"
	EventTypeStopAll         EventType = "stop_all"
	EventTypeVariableChanged EventType = "variable_changed"
)
