package open_game_manager

func (m *openGameManager) readyGroupResetParticipants() {
	m.rg.ResetParticipants()

	m.mu.Lock()
	m.state.Participants = map[string]*OpenGameParticipant{}
	m.mu.Unlock()
}

func (m *openGameManager) readyGroupAddParticipant(participant OpenGameParticipant, isReady bool) {
	m.mu.Lock()
	m.state.Participants[participant.ID] = &OpenGameParticipant{
		ID:      participant.ID,
		Seat:    participant.Seat,
		IsReady: isReady,
	}
	m.mu.Unlock()

	m.rg.Add(int64(participant.Seat), isReady)
}

func (m *openGameManager) readyGroupOnCompleted(gameCount int) {
	m.mu.Lock()
	if m.state.GameCount != gameCount || m.state.IsOpened {
		m.mu.Unlock()
		return
	}

	m.state.IsOpened = true
	for participantID := range m.state.Participants {
		m.state.Participants[participantID].IsReady = true
	}
	state := m.copyState()
	m.mu.Unlock()

	m.onOpenGameReady(state)
}

func (m *openGameManager) readyGroupReady(participantID string) error {
	m.mu.Lock()
	participant, exist := m.state.Participants[participantID]
	if !exist {
		m.mu.Unlock()
		return ErrParticipantNotFound
	}
	participant.IsReady = true
	seat := participant.Seat
	m.mu.Unlock()

	// the ready group may complete synchronously
	m.rg.Ready(int64(seat))
	return nil
}

func (m *openGameManager) copyState() OpenGameState {
	participants := make(map[string]*OpenGameParticipant, len(m.state.Participants))
	for id, p := range m.state.Participants {
		copied := *p
		participants[id] = &copied
	}

	return OpenGameState{
		Timeout:      m.state.Timeout,
		GameCount:    m.state.GameCount,
		IsOpened:     m.state.IsOpened,
		Participants: participants,
	}
}
