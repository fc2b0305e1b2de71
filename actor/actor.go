package actor

import (
	"github.com/weedbox/holdemtable"
)

// Actor pairs a table adapter with the runner that decides moves.
type Actor interface {
	SetAdapter(a Adapter)
	SetRunner(r Runner)
	GetTable() Adapter
	GetRunner() Runner
}

type actor struct {
	adapter Adapter
	runner  Runner
}

func NewActor() Actor {
	return &actor{}
}

func (a *actor) SetAdapter(adapter Adapter) {
	a.adapter = adapter
	adapter.SetActor(a)
}

func (a *actor) SetRunner(runner Runner) {
	a.runner = runner
	runner.SetActor(a)
}

func (a *actor) GetTable() Adapter {
	return a.adapter
}

func (a *actor) GetRunner() Runner {
	return a.runner
}

// Runner reacts to table updates on behalf of one player.
type Runner interface {
	SetActor(a Actor)
	UpdateTableState(table *holdemtable.Table) error
}
