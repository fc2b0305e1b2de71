package actor

import (
	"github.com/weedbox/holdemtable"
)

// Adapter carries table updates to a runner and submits its moves.
type Adapter interface {
	SetActor(a Actor)
	UpdateTableState(table *holdemtable.Table) error
	GetTableInfo() *holdemtable.Table
	GetPlayerID() string

	Fold() error
	Check() error
	Call() error
	Raise(chips int64) error
	Allin() error
	SettlementFinish() error
}

type tableEngineAdapter struct {
	actor    Actor
	engine   holdemtable.TableEngine
	playerID string
	table    *holdemtable.Table
}

func NewTableEngineAdapter(engine holdemtable.TableEngine, playerID string) Adapter {
	return &tableEngineAdapter{
		engine:   engine,
		playerID: playerID,
	}
}

func (tea *tableEngineAdapter) SetActor(a Actor) {
	tea.actor = a
}

func (tea *tableEngineAdapter) UpdateTableState(table *holdemtable.Table) error {
	tea.table = table

	if tea.actor == nil || tea.actor.GetRunner() == nil {
		return nil
	}
	return tea.actor.GetRunner().UpdateTableState(table)
}

func (tea *tableEngineAdapter) GetTableInfo() *holdemtable.Table {
	return tea.table
}

func (tea *tableEngineAdapter) GetPlayerID() string {
	return tea.playerID
}

func (tea *tableEngineAdapter) Fold() error {
	_, err := tea.engine.PlayerFold(tea.playerID)
	return err
}

func (tea *tableEngineAdapter) Check() error {
	_, err := tea.engine.PlayerCheck(tea.playerID)
	return err
}

func (tea *tableEngineAdapter) Call() error {
	_, err := tea.engine.PlayerCall(tea.playerID)
	return err
}

func (tea *tableEngineAdapter) Raise(chips int64) error {
	_, err := tea.engine.PlayerRaise(tea.playerID, chips)
	return err
}

func (tea *tableEngineAdapter) Allin() error {
	_, err := tea.engine.PlayerAllin(tea.playerID)
	return err
}

func (tea *tableEngineAdapter) SettlementFinish() error {
	return tea.engine.PlayerSettlementFinish(tea.playerID)
}
