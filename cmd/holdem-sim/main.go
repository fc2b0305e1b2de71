package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	log "github.com/sirupsen/logrus"
	"github.com/weedbox/holdemtable"
	"github.com/weedbox/holdemtable/actor"
)

func main() {
	roomFlag := flag.String("room", holdemtable.RoomType_Degen, "room type (degen, green, morpheus)")
	playersFlag := flag.Int("players", 4, "number of bots to seat")
	handsFlag := flag.Int("hands", 10, "stop after this many hands")
	seedFlag := flag.Int64("seed", time.Now().UnixNano(), "random seed for the deck and the bots")
	humanizedFlag := flag.Bool("humanized", false, "let bots think for a random while before acting")
	levelFlag := flag.String("log-level", "warn", "logrus level")
	flag.Parse()

	level, err := log.ParseLevel(*levelFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", *levelFlag, err)
		os.Exit(1)
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	logger := log.WithField("app", "holdem-sim")

	rc, err := holdemtable.GetRoomConfig(*roomFlag)
	if err != nil {
		logger.WithError(err).Fatal("unknown room")
	}

	if *playersFlag < 2 || *playersFlag > rc.MaxSeats {
		logger.Fatalf("players must be between 2 and %d", rc.MaxSeats)
	}

	playerIDs := make([]string, 0, *playersFlag)
	balances := make(map[string]int64)
	for i := 0; i < *playersFlag; i++ {
		playerID := fmt.Sprintf("bot-%d", i+1)
		playerIDs = append(playerIDs, playerID)
		balances[playerID] = rc.MaxBuyIn
	}
	ledger := holdemtable.NewMemoryLedger(balances)

	options := holdemtable.NewTableEngineOptions()
	options.NextHandDelay = 1
	m := holdemtable.NewManager(
		holdemtable.WithEngineOptions(options),
		holdemtable.WithEngineOpts(
			holdemtable.WithLedger(ledger),
			holdemtable.WithRandomSource(holdemtable.NewRandomSource(*seedFlag)),
		),
		holdemtable.WithManagerLogger(logger),
	)
	defer m.Stop()

	if err := m.StartSweeper(time.Minute); err != nil {
		logger.WithError(err).Fatal("start sweeper")
	}

	tableEngine, err := m.FindOrCreateTable(*roomFlag)
	if err != nil {
		logger.WithError(err).Fatal("create table")
	}

	actors := make([]actor.Actor, 0, len(playerIDs))
	for idx, playerID := range playerIDs {
		a := actor.NewActor()
		a.SetAdapter(actor.NewTableEngineAdapter(tableEngine, playerID))

		bot := actor.NewBotRunner(playerID)
		bot.SetSeed(*seedFlag + int64(idx))
		bot.Humanized(*humanizedFlag)
		a.SetRunner(bot)

		actors = append(actors, a)
	}

	done := make(chan struct{}, 1)
	finish := func() {
		select {
		case done <- struct{}{}:
		default:
		}
	}

	tableEngine.OnTableUpdated(func(table *holdemtable.Table) {
		for _, a := range actors {
			_ = a.GetTable().UpdateTableState(table)
		}

		if table.State.Status == holdemtable.TableStateStatus_TableGameStandby && table.State.GameCount > 0 {
			finish()
		}
	})
	tableEngine.OnTableErrorUpdated(func(table *holdemtable.Table, err error) {
		logger.WithField("table_id", table.ID).WithError(err).Warn("table error")
	})
	tableEngine.OnTableSettled(func(table *holdemtable.Table) {
		printHand(table)
		if table.State.GameCount >= *handsFlag {
			finish()
		}
	})

	pterm.DefaultHeader.Println(fmt.Sprintf("Hold'em simulation: %s room, %d bots, seed %d", rc.RoomType, len(playerIDs), *seedFlag))

	ctx := context.Background()
	buyIn := rc.MinBuyIn * 20
	if buyIn > rc.MaxBuyIn {
		buyIn = rc.MaxBuyIn
	}
	for _, playerID := range playerIDs {
		if _, err := m.PlayerJoin(ctx, *roomFlag, holdemtable.JoinPlayer{
			PlayerID: playerID,
			Nickname: strings.ToUpper(playerID),
			Chips:    buyIn,
		}); err != nil {
			logger.WithError(err).WithField("player_id", playerID).Fatal("join")
		}
	}

	// every hand is bounded by the action clock, so this only trips on a stuck table
	limit := time.Duration(*handsFlag*(*playersFlag)*4*(rc.ActionTime+1)) * time.Second
	select {
	case <-done:
	case <-time.After(limit):
		logger.Warn("simulation timed out")
	}

	cashOuts := pterm.TableData{{"Player", "Bought In", "Cashed Out", "Net"}}
	var total int64
	for _, playerID := range playerIDs {
		chips, err := m.PlayerCashOut(ctx, playerID)
		if err != nil {
			logger.WithError(err).WithField("player_id", playerID).Error("cash out")
		}
		total += chips
		cashOuts = append(cashOuts, []string{
			playerID,
			fmt.Sprintf("%d", buyIn),
			fmt.Sprintf("%d", chips),
			fmt.Sprintf("%+d", chips-buyIn),
		})
	}

	if err := m.RetryPendingPayouts(ctx); err != nil {
		logger.WithError(err).Error("pending payouts")
	}

	pterm.DefaultSection.Println("Cash out")
	if err := pterm.DefaultTable.WithHasHeader().WithData(cashOuts).Render(); err != nil {
		logger.WithError(err).Error("render")
	}
	pterm.Info.Printfln("chips in play: %d, cashed out: %d", buyIn*int64(len(playerIDs)), total)

	swept := m.Sweep()
	logger.WithField("tables", swept).Info("swept empty tables")
}

func printHand(table *holdemtable.Table) {
	result := table.State.Result
	if result == nil {
		return
	}

	board := make([]string, 0, len(table.State.CommunityCards))
	for _, c := range table.State.CommunityCards {
		board = append(board, c.String())
	}

	data := pterm.TableData{{"Player", "Bet", "Won", "Stack", "Hand"}}
	hands := make(map[string]string)
	for _, h := range result.Hands {
		hands[h.PlayerID] = h.Description
	}
	for _, p := range result.Players {
		data = append(data, []string{
			p.PlayerID,
			fmt.Sprintf("%d", p.Bet),
			fmt.Sprintf("%d", p.Won),
			fmt.Sprintf("%d", p.Final),
			hands[p.PlayerID],
		})
	}

	title := fmt.Sprintf("Hand #%d  [%s]", result.GameCount, strings.Join(board, " "))
	if result.IsFoldOut {
		title += "  (fold out)"
	}
	pterm.DefaultSection.Println(title)
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
