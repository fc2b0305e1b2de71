package testcases

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/weedbox/holdemtable"
)

const (
	waitTimeout  = 3 * time.Second
	waitInterval = 10 * time.Millisecond
)

func logJSON(t *testing.T, msg string, jsonPrinter func() (*string, error)) {
	encoded, err := jsonPrinter()
	if err != nil {
		t.Logf("[%s] %v", msg, err)
		return
	}
	t.Logf("\n===== [%s] =====\n%s\n", msg, *encoded)
}

func NewTableEngine(t *testing.T, meta holdemtable.TableMeta, opts ...holdemtable.TableEngineOpt) holdemtable.TableEngine {
	options := holdemtable.NewTableEngineOptions()
	options.NextHandDelay = 0
	options.LedgerTimeout = time.Second

	te := holdemtable.NewTableEngine(options, opts...)
	_, err := te.CreateTable(fmt.Sprintf("%s-table", t.Name()), meta)
	require.NoError(t, err, "create table error")
	return te
}

func JoinPlayers(t *testing.T, te holdemtable.TableEngine, players ...holdemtable.JoinPlayer) {
	for _, jp := range players {
		_, err := te.PlayerJoin(context.Background(), jp)
		require.NoError(t, err, fmt.Sprintf("%s join error", jp.PlayerID))
	}
}

func FindCurrentPlayerID(table *holdemtable.Table) string {
	return table.State.CurrentPlayerID
}

// CheckDown calls or checks for whoever holds the turn until the hand leaves the playing status.
func CheckDown(t *testing.T, te holdemtable.TableEngine) {
	for i := 0; i < 50; i++ {
		table := te.GetTable()
		if table.State.Status != holdemtable.TableStateStatus_TableGamePlaying {
			return
		}

		p := table.FindPlayer(FindCurrentPlayerID(table))
		require.NotNil(t, p, "turn holder not found")

		var err error
		if p.CurrentBet < table.State.MinBet {
			_, err = te.PlayerCall(p.PlayerID)
		} else {
			_, err = te.PlayerCheck(p.PlayerID)
		}
		require.NoError(t, err, fmt.Sprintf("%s check down error", p.PlayerID))
	}
	t.Fatal("hand did not finish")
}

// FinishSettlement acknowledges the settled hand for every seated player and waits for the next hand.
func FinishSettlement(t *testing.T, te holdemtable.TableEngine) *holdemtable.Table {
	table := te.GetTable()
	require.Equal(t, holdemtable.TableStateStatus_TableGameSettled, table.State.Status)

	gameCount := table.State.GameCount
	for _, p := range table.State.PlayerStates {
		require.NoError(t, te.PlayerSettlementFinish(p.PlayerID), fmt.Sprintf("%s settlement finish error", p.PlayerID))
	}

	require.Eventually(t, func() bool {
		state := te.GetTable().State
		return state.GameCount > gameCount || state.Status == holdemtable.TableStateStatus_TableGameStandby
	}, waitTimeout, waitInterval)

	return te.GetTable()
}

// StartRingGame seats every player and folds the opening heads-up hand so that all of them are dealt into hand two.
func StartRingGame(t *testing.T, te holdemtable.TableEngine, players ...holdemtable.JoinPlayer) *holdemtable.Table {
	require.GreaterOrEqual(t, len(players), 3)
	JoinPlayers(t, te, players...)

	table := te.GetTable()
	require.Equal(t, 1, table.State.GameCount)
	_, err := te.PlayerFold(FindCurrentPlayerID(table))
	require.NoError(t, err, "opening fold error")

	table = FinishSettlement(t, te)
	require.Equal(t, 2, table.State.GameCount)
	require.Len(t, table.ParticipatedPlayers(), len(players))
	return table
}

// DeckQueue hands out stacked decks one hand at a time, falling back to a fresh standard deck.
type DeckQueue struct {
	mu    sync.Mutex
	decks [][]holdemtable.Card
}

func NewDeckQueue() *DeckQueue {
	return &DeckQueue{
		decks: make([][]holdemtable.Card, 0),
	}
}

// Push stacks a deck dealing holes[i] to the i-th player left of the button, then the board.
func (dq *DeckQueue) Push(holes [][2]string, board [5]string) {
	dq.mu.Lock()
	defer dq.mu.Unlock()
	dq.decks = append(dq.decks, StackedCards(holes, board))
}

// PushStandard queues an unshuffled standard deck, e.g. for a warm-up hand.
func (dq *DeckQueue) PushStandard() {
	dq.mu.Lock()
	defer dq.mu.Unlock()
	dq.decks = append(dq.decks, nil)
}

func (dq *DeckQueue) Next() *holdemtable.Deck {
	dq.mu.Lock()
	defer dq.mu.Unlock()

	if len(dq.decks) == 0 {
		return holdemtable.NewStandardDeck()
	}

	cards := dq.decks[0]
	dq.decks = dq.decks[1:]
	if cards == nil {
		return holdemtable.NewStandardDeck()
	}
	return holdemtable.NewDeckFromCards(cards)
}

func StackedCards(holes [][2]string, board [5]string) []holdemtable.Card {
	used := make(map[holdemtable.Card]bool)
	cards := make([]holdemtable.Card, 0, 52)
	for round := 0; round < 2; round++ {
		for _, h := range holes {
			c := holdemtable.MustParseCards(h[round])[0]
			used[c] = true
			cards = append(cards, c)
		}
	}

	boardCards := holdemtable.MustParseCards(board[:]...)
	for _, c := range boardCards {
		used[c] = true
	}

	rest := make([]holdemtable.Card, 0, 52)
	for _, c := range holdemtable.NewStandardDeck().Cards() {
		if !used[c] {
			rest = append(rest, c)
		}
	}

	// burn, flop, burn, turn, burn, river
	cards = append(cards, rest[0], boardCards[0], boardCards[1], boardCards[2])
	cards = append(cards, rest[1], boardCards[3])
	cards = append(cards, rest[2], boardCards[4])
	return append(cards, rest[3:]...)
}

// TotalChips is every stack plus whatever is still in the pot.
func TotalChips(table *holdemtable.Table) int64 {
	return table.TotalChips()
}
