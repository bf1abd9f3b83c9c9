package miner

import (
	"time"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
)

// EventKind discriminates engine events.
type EventKind string

const (
	EventProgress EventKind = "progress"
	EventSuccess  EventKind = "success"
	EventStatus   EventKind = "status"
	EventError    EventKind = "error"
)

// State is the lifecycle state of a search.
type State string

const (
	StateIdle      State = "idle"
	StateMining    State = "mining"
	StateFound     State = "found"
	StateCancelled State = "cancelled"
	StateFailed    State = "failed"
)

// Terminal reports whether no further transition can happen from s.
func (s State) Terminal() bool {
	return s == StateFound || s == StateCancelled || s == StateFailed
}

// Event is emitted by a search. Which fields are set depends on Kind:
// progress carries counters and the current nonce, success additionally
// carries the mined block and its hash, status carries Text and error Err.
type Event struct {
	Kind           EventKind
	State          State
	Nonce          uint64
	Hash           string
	HashesComputed uint64
	HashRate       float64
	Elapsed        time.Duration
	Block          *model.Block
	Text           string
	Err            error
}

// Terminal reports whether e ends its search.
func (e Event) Terminal() bool {
	return e.Kind != EventProgress
}

// Stats is a snapshot of the most recent search.
type Stats struct {
	State          State   `json:"state"`
	Mining         bool    `json:"mining"`
	HashesComputed uint64  `json:"hashesComputed"`
	HashRate       float64 `json:"hashRate"`
	Nonce          uint64  `json:"nonce"`
}
