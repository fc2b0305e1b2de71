package open_game_manager

import (
	"errors"
	"sync"

	"github.com/weedbox/syncsaga"
)

var (
	ErrParticipantNotFound = errors.New("open_game_manager: participant not found")
)

// OpenGameManager waits between hands until every participant is ready or the timeout expires.
type OpenGameManager interface {
	Ready(participantID string) error
	Setup(gameCount int, participants map[string]int)
	Stop()
	GetState() OpenGameState
}

type openGameManager struct {
	mu              sync.Mutex
	onOpenGameReady func(state OpenGameState)
	rg              *syncsaga.ReadyGroup
	state           *OpenGameState
}

type OpenGameOption struct {
	Timeout         int // seconds, 0 waits for every participant
	OnOpenGameReady func(state OpenGameState)
}

type OpenGameState struct {
	Timeout      int                             `json:"timeout"`
	GameCount    int                             `json:"game_count"`
	IsOpened     bool                            `json:"is_opened"`
	Participants map[string]*OpenGameParticipant `json:"participants"` // key: participant_id, value: participant
}

type OpenGameParticipant struct {
	ID      string `json:"id"`
	Seat    int    `json:"seat"`
	IsReady bool   `json:"is_ready"`
}
