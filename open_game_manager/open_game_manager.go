package open_game_manager

import (
	"github.com/weedbox/syncsaga"
)

func NewOpenGameManager(options OpenGameOption) OpenGameManager {
	m := &openGameManager{
		onOpenGameReady: options.OnOpenGameReady,
		state: &OpenGameState{
			Timeout:      options.Timeout,
			GameCount:    0,
			Participants: make(map[string]*OpenGameParticipant),
		},
	}

	if m.onOpenGameReady == nil {
		m.onOpenGameReady = func(OpenGameState) {}
	}

	if options.Timeout > 0 {
		m.rg = syncsaga.NewReadyGroup(syncsaga.WithTimeout(options.Timeout, func(rg *syncsaga.ReadyGroup) {
			// Auto Ready By Default
			for idx, isReady := range rg.GetParticipantStates() {
				if !isReady {
					rg.Ready(idx)
				}
			}
		}))
	} else {
		m.rg = syncsaga.NewReadyGroup()
	}

	return m
}

func (m *openGameManager) Ready(participantID string) error {
	return m.readyGroupReady(participantID)
}

/*
Setup 開始等待下一手
  - gameCount: 剛結束的手數
  - participants: key 為玩家 ID，value 為座位編號
*/
func (m *openGameManager) Setup(gameCount int, participants map[string]int) {
	m.rg.Stop()

	m.mu.Lock()
	m.state.GameCount = gameCount
	m.state.IsOpened = false
	m.mu.Unlock()

	m.rg.OnCompleted(func(rg *syncsaga.ReadyGroup) {
		m.readyGroupOnCompleted(gameCount)
	})
	m.readyGroupResetParticipants()
	for id, seat := range participants {
		participant := OpenGameParticipant{
			ID:      id,
			Seat:    seat,
			IsReady: false,
		}
		m.readyGroupAddParticipant(participant, false)
	}

	m.rg.Start()
}

func (m *openGameManager) Stop() {
	m.rg.Stop()
}

func (m *openGameManager) GetState() OpenGameState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.copyState()
}
