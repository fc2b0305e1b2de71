package holdemtable

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/thoas/go-funk"
)

// publish stores a deep copy of the live table as the readable snapshot.
func (te *tableEngine) publish() *Table {
	cloned, err := te.table.Clone()
	if err != nil {
		te.logger.WithError(err).Error("publish table snapshot failed")
		return te.snapshot.Load()
	}

	te.snapshot.Store(cloned)
	return cloned
}

func (te *tableEngine) flushEvents(eventName string, playerID string) {
	te.emitEvent(eventName, playerID)
	if te.isSettled {
		te.isSettled = false
		te.emitSettledEvent()
	}
}

func validateJoin(table *Table, joinPlayer JoinPlayer) error {
	if table.State.Status == TableStateStatus_TableClosed {
		return ErrTableClosed
	}

	if joinPlayer.PlayerID == "" {
		return ErrInvalidAction
	}

	if table.FindPlayerIdx(joinPlayer.PlayerID) != UnsetValue {
		return ErrPlayerAlreadySeated
	}

	if joinPlayer.Chips < table.Meta.MinBuyIn || joinPlayer.Chips > table.Meta.MaxBuyIn || joinPlayer.Chips <= 0 {
		return ErrInvalidBuyIn
	}

	if table.IsFull() {
		return ErrTableFull
	}

	return nil
}

func (te *tableEngine) validateGameMove(playerID string) error {
	if te.table == nil {
		return ErrTableNotCreated
	}

	if te.table.State.Status == TableStateStatus_TableClosed {
		return ErrTableClosed
	}

	if te.table.FindPlayerIdx(playerID) == UnsetValue {
		return ErrPlayerNotFound
	}

	if te.table.State.Status != TableStateStatus_TableGamePlaying || te.table.State.CurrentPlayerID != playerID {
		return ErrNotYourTurn
	}

	return nil
}

/*
startNewHand 開新的一手
  - 有籌碼的玩家才會參與本手
  - Dealer 依座位順序往下一位移動
  - 下盲注 (籌碼不足時全下)
  - 從 Dealer 左手邊開始每人發兩張手牌
*/
func (te *tableEngine) startNewHand() error {
	state := te.table.State

	for _, p := range state.PlayerStates {
		te.resetPlayer(p)
		p.IsParticipated = p.Chips > 0
		p.IsActive = p.IsParticipated
		if err := te.sm.UpdatePlayerHasChips(p.PlayerID, p.IsParticipated); err != nil {
			return err
		}
	}

	dealerPosition := 0
	if state.GameCount > 0 {
		dealerPosition = state.DealerPosition + 1
	}

	positions, err := te.sm.InitPositions(dealerPosition)
	if err != nil {
		return err
	}

	state.GameCount++
	state.Status = TableStateStatus_TableGamePlaying
	state.IsGameActive = true
	state.BettingRound = BettingRound_PreFlop
	state.CommunityCards = make([]Card, 0)
	state.Pot = 0
	state.DeadChips = 0
	state.Result = nil
	state.LastPlayerGameAction = nil
	state.DealerPosition = positions.DealerPosition
	state.DealerSeat = positions.DealerSeatID
	state.SBSeat = positions.SBSeatID
	state.BBSeat = positions.BBSeatID

	labels := newPositions(len(positions.FromDealer))
	for idx, sp := range positions.FromDealer {
		if p := te.table.FindPlayer(sp.ID); p != nil {
			p.Positions = labels[idx]
		}
	}

	dealer := te.table.PlayerBySeat(state.DealerSeat)
	sb := te.table.PlayerBySeat(state.SBSeat)
	bb := te.table.PlayerBySeat(state.BBSeat)
	dealer.IsDealer = true
	sb.IsSmallBlind = true
	bb.IsBigBlind = true

	// blinds
	te.commitChips(sb, te.table.Meta.SmallBlind)
	te.commitChips(bb, te.table.Meta.BigBlind)
	state.MinBet = te.table.Meta.BigBlind

	// hole cards
	te.deck = te.newDeck()
	dealOrder := make([]string, 0, len(positions.FromDealer))
	for idx := range positions.FromDealer {
		dealOrder = append(dealOrder, positions.FromDealer[(idx+1)%len(positions.FromDealer)].ID)
	}
	for i := 0; i < HoleCardsCount; i++ {
		for _, playerID := range dealOrder {
			card, err := te.deck.Draw()
			if err != nil {
				return err
			}
			p := te.table.FindPlayer(playerID)
			p.HoleCards = append(p.HoleCards, card)
		}
	}

	te.logger.WithFields(log.Fields{
		"game_count":  state.GameCount,
		"dealer_seat": state.DealerSeat,
		"sb_seat":     state.SBSeat,
		"bb_seat":     state.BBSeat,
		"players":     len(te.sm.ListActivePlayers()),
		"seated":      len(te.sm.ListSeatedPlayers()),
	}).Info("new hand started")

	te.proceed(state.BBSeat)
	return nil
}

func (te *tableEngine) resetPlayer(p *TablePlayerState) {
	p.Positions = []string{Position_Unknown}
	p.HoleCards = make([]Card, 0)
	p.CurrentBet = 0
	p.TotalBet = 0
	p.IsParticipated = false
	p.IsActive = false
	p.IsFolded = false
	p.IsAllIn = false
	p.IsDealer = false
	p.IsSmallBlind = false
	p.IsBigBlind = false
	p.HasActed = false
	p.LastAction = ""
	p.GameStatistics = TablePlayerGameStatistics{}
}

// commitChips moves chips from the stack into the pot, capped at the stack.
func (te *tableEngine) commitChips(p *TablePlayerState, amount int64) int64 {
	if amount >= p.Chips {
		amount = p.Chips
	}
	if amount < 0 {
		amount = 0
	}

	p.Chips -= amount
	p.CurrentBet += amount
	te.table.State.Pot += amount
	if p.Chips == 0 {
		p.IsAllIn = true
	}
	return amount
}

/*
applyAction 執行玩家動作
  - 不合法的動作不會改變任何狀態
  - raise: chips 為本輪下注總額, 必須大於當前跟注額
  - call: 不需補籌碼時視為 check
*/
func (te *tableEngine) applyAction(p *TablePlayerState, action string, chips int64) error {
	state := te.table.State

	var committed int64
	switch action {
	case WagerAction_Fold:
		te.foldPlayer(p)
	case WagerAction_Check:
		if p.CurrentBet != state.MinBet {
			return ErrIllegalCheck
		}
		p.LastAction = WagerAction_Check
		p.GameStatistics.CheckTimes++
	case WagerAction_Call:
		owed := state.MinBet - p.CurrentBet
		if owed <= 0 {
			p.LastAction = WagerAction_Check
			p.GameStatistics.CheckTimes++
			break
		}
		committed = te.commitChips(p, owed)
		p.LastAction = WagerAction_Call
		p.GameStatistics.CallTimes++
	case WagerAction_Raise:
		if chips <= state.MinBet {
			return ErrIllegalRaise
		}
		committed = te.commitChips(p, chips-p.CurrentBet)
		if p.CurrentBet > state.MinBet {
			state.MinBet = p.CurrentBet
		}
		p.LastAction = WagerAction_Raise
		p.GameStatistics.RaiseTimes++
	case WagerAction_AllIn:
		committed = te.commitChips(p, p.Chips)
		if p.CurrentBet > state.MinBet {
			state.MinBet = p.CurrentBet
			p.GameStatistics.RaiseTimes++
		}
		p.LastAction = WagerAction_AllIn
	default:
		return ErrInvalidAction
	}

	if p.IsAllIn && action != WagerAction_Fold {
		p.LastAction = WagerAction_AllIn
	}

	p.HasActed = true
	p.GameStatistics.ActionTimes++

	te.recordAction(p, p.LastAction, committed)
	te.proceed(p.Seat)
	return nil
}

func (te *tableEngine) foldPlayer(p *TablePlayerState) {
	p.IsActive = false
	p.IsFolded = true
	p.HasActed = true
	p.LastAction = WagerAction_Fold
	p.GameStatistics.IsFold = true
	p.GameStatistics.FoldRound = te.table.State.BettingRound
}

func (te *tableEngine) recordAction(p *TablePlayerState, action string, chips int64) {
	gameAction := TablePlayerGameAction{
		TableID:    te.table.ID,
		GameCount:  te.table.State.GameCount,
		PlayerID:   p.PlayerID,
		Seat:       p.Seat,
		Positions:  p.Positions,
		Round:      te.table.State.BettingRound,
		Action:     action,
		Chips:      chips,
		CurrentBet: p.CurrentBet,
		Pot:        te.table.State.Pot,
		UpdateAt:   time.Now().Unix(),
	}
	te.table.State.LastPlayerGameAction = &gameAction
	te.emitGamePlayerActionEvent(gameAction)
}

// timeout folds the turn holder.
func (te *tableEngine) timeout(p *TablePlayerState) {
	te.logger.WithFields(log.Fields{
		"game_count": te.table.State.GameCount,
		"player_id":  p.PlayerID,
		"round":      te.table.State.BettingRound,
	}).Info("player action timeout")

	if err := te.applyAction(p, WagerAction_Fold, 0); err != nil {
		te.emitErrorEvent("PlayerTimeout", p.PlayerID, err)
		return
	}
	te.flushEvents("PlayerTimeout", p.PlayerID)
}

// proceed closes the betting round or hands the turn to the next player after fromSeat.
func (te *tableEngine) proceed(fromSeat int) {
	if te.isRoundComplete() {
		te.completeRound()
		return
	}

	next := te.findNextActor(fromSeat)
	if next == nil {
		te.completeRound()
		return
	}
	te.setTurn(next)
}

func (te *tableEngine) highestBet() int64 {
	highest := int64(0)
	for _, p := range te.table.ContestingPlayers() {
		if p.CurrentBet > highest {
			highest = p.CurrentBet
		}
	}
	return highest
}

func (te *tableEngine) actionablePlayers() []*TablePlayerState {
	return funk.Filter(te.table.State.PlayerStates, func(p *TablePlayerState) bool {
		return te.table.CanAct(p)
	}).([]*TablePlayerState)
}

/*
isRoundComplete 判斷本輪下注是否結束
  - 剩一位 (或以下) 玩家爭奪底池
  - 所有人皆已全下
  - 只剩一位可動作玩家且已跟上最高注
  - 所有可動作玩家皆已動作且下注額相同
*/
func (te *tableEngine) isRoundComplete() bool {
	if len(te.table.ContestingPlayers()) <= 1 {
		return true
	}

	highest := te.highestBet()
	actionable := te.actionablePlayers()
	if len(actionable) == 0 {
		return true
	}

	if len(actionable) == 1 && actionable[0].CurrentBet >= highest {
		return true
	}

	for _, p := range actionable {
		if !p.HasActed || p.CurrentBet != highest {
			return false
		}
	}
	return true
}

func (te *tableEngine) findNextActor(fromSeat int) *TablePlayerState {
	highest := te.highestBet()
	for _, p := range te.table.PlayersFromSeat(fromSeat) {
		if !te.table.CanAct(p) {
			continue
		}
		if !p.HasActed || p.CurrentBet < highest {
			return p
		}
	}
	return nil
}

/*
completeRound 結束本輪下注
  - 本輪下注併入 TotalBet
  - 只剩一位玩家時直接結算
  - 無人可再下注時直接發完公牌比牌
*/
func (te *tableEngine) completeRound() {
	state := te.table.State

	te.clearTurn()
	for _, p := range state.PlayerStates {
		p.TotalBet += p.CurrentBet
		p.CurrentBet = 0
		p.HasActed = false
		p.LastAction = ""
	}
	state.MinBet = 0

	contesting := te.table.ContestingPlayers()
	if len(contesting) == 1 {
		te.settleFoldOut(contesting[0])
		return
	}

	if len(te.actionablePlayers()) < 2 {
		for state.BettingRound != BettingRound_River {
			if err := te.dealNextStreet(); err != nil {
				te.emitErrorEvent("RunOutBoard", "", err)
				return
			}
		}
		te.settleShowdown()
		return
	}

	if state.BettingRound == BettingRound_River {
		te.settleShowdown()
		return
	}

	if err := te.dealNextStreet(); err != nil {
		te.emitErrorEvent("DealNextStreet", "", err)
		return
	}

	te.logger.WithFields(log.Fields{
		"game_count":      state.GameCount,
		"round":           state.BettingRound,
		"community_cards": state.CommunityCards,
	}).Debug("betting round opened")

	if next := te.findNextActor(state.DealerSeat); next != nil {
		te.setTurn(next)
	}
}

func (te *tableEngine) dealNextStreet() error {
	switch te.table.State.BettingRound {
	case BettingRound_PreFlop:
		return te.dealStreet(3, BettingRound_Flop)
	case BettingRound_Flop:
		return te.dealStreet(1, BettingRound_Turn)
	case BettingRound_Turn:
		return te.dealStreet(1, BettingRound_River)
	}
	return nil
}

func (te *tableEngine) dealStreet(count int, round string) error {
	if err := te.deck.Burn(); err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		card, err := te.deck.Draw()
		if err != nil {
			return err
		}
		te.table.State.CommunityCards = append(te.table.State.CommunityCards, card)
	}

	te.table.State.BettingRound = round
	return nil
}

func (te *tableEngine) settleFoldOut(winner *TablePlayerState) {
	state := te.table.State
	amount := state.Pot
	winner.Chips += amount

	result := &TableGameResult{
		GameCount: state.GameCount,
		IsFoldOut: true,
		Pots: []*TableGamePotResult{
			{
				Amount:            amount,
				EligiblePlayerIDs: []string{winner.PlayerID},
				Winners:           []*TableGameWinner{{PlayerID: winner.PlayerID, Chips: amount}},
			},
		},
		Hands: make([]*TableGamePlayerHand, 0),
	}

	te.finishHand(result, map[string]int64{winner.PlayerID: amount})
}

/*
settleShowdown 比牌結算
  - 依投入級距拆分主池與邊池
  - 每個池由有資格的玩家中牌力最大者獲得
  - 平手時平分, 零頭從 Dealer 左手邊開始分配
*/
func (te *tableEngine) settleShowdown() {
	state := te.table.State
	state.BettingRound = BettingRound_Showdown

	contributions := make([]PotContribution, 0)
	for _, p := range te.table.ParticipatedPlayers() {
		contributions = append(contributions, PotContribution{
			PlayerID:     p.PlayerID,
			Seat:         p.Seat,
			Amount:       p.TotalBet,
			IsContesting: p.IsActive,
		})
	}
	pots := BuildPots(contributions, state.DeadChips)

	result := &TableGameResult{
		GameCount: state.GameCount,
		Pots:      make([]*TableGamePotResult, 0, len(pots)),
		Hands:     make([]*TableGamePlayerHand, 0),
	}

	hands := make(map[string]HandResult)
	for _, p := range te.table.ContestingPlayers() {
		cards := append(append([]Card{}, p.HoleCards...), state.CommunityCards...)
		hand, err := EvaluateHand(cards)
		if err != nil {
			te.emitErrorEvent("EvaluateHand", p.PlayerID, err)
			continue
		}
		hands[p.PlayerID] = hand
		result.Hands = append(result.Hands, &TableGamePlayerHand{
			PlayerID:    p.PlayerID,
			HoleCards:   p.HoleCards,
			Category:    hand.Category.String(),
			Description: hand.Description,
		})
	}

	// seat order starting left of the button
	order := make(map[string]int)
	for idx, p := range te.table.PlayersFromSeat(state.DealerSeat) {
		order[p.PlayerID] = idx
	}

	won := make(map[string]int64)
	for _, pot := range pots {
		winners := make([]string, 0)
		var best *HandResult
		for _, playerID := range pot.EligiblePlayerIDs {
			hand, ok := hands[playerID]
			if !ok {
				continue
			}
			switch {
			case best == nil || CompareHands(hand, *best) > 0:
				h := hand
				best = &h
				winners = []string{playerID}
			case CompareHands(hand, *best) == 0:
				winners = append(winners, playerID)
			}
		}

		// nobody eligible could be evaluated, return the pot to its contenders
		if len(winners) == 0 {
			winners = append(winners, pot.EligiblePlayerIDs...)
		}

		winners = sortBySeatOrder(winners, order)
		potResult := &TableGamePotResult{
			Amount:            pot.Amount,
			EligiblePlayerIDs: pot.EligiblePlayerIDs,
			Winners:           make([]*TableGameWinner, 0, len(winners)),
		}
		shares := SplitPot(pot.Amount, winners)
		for _, playerID := range winners {
			te.table.FindPlayer(playerID).Chips += shares[playerID]
			won[playerID] += shares[playerID]
			potResult.Winners = append(potResult.Winners, &TableGameWinner{
				PlayerID: playerID,
				Chips:    shares[playerID],
			})
		}
		result.Pots = append(result.Pots, potResult)
	}

	te.finishHand(result, won)
}

func sortBySeatOrder(playerIDs []string, order map[string]int) []string {
	sorted := append([]string{}, playerIDs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return order[sorted[i]] < order[sorted[j]]
	})
	return sorted
}

func (te *tableEngine) finishHand(result *TableGameResult, won map[string]int64) {
	state := te.table.State

	result.Players = make([]*TableGamePlayerResult, 0)
	for _, p := range te.table.ParticipatedPlayers() {
		result.Players = append(result.Players, &TableGamePlayerResult{
			PlayerID: p.PlayerID,
			Bet:      p.TotalBet + p.CurrentBet,
			Won:      won[p.PlayerID],
			Final:    p.Chips,
		})
	}

	for _, p := range state.PlayerStates {
		p.TotalBet = 0
		p.CurrentBet = 0
		_ = te.sm.UpdatePlayerHasChips(p.PlayerID, p.Chips > 0)
	}

	te.clearTurn()
	state.Pot = 0
	state.DeadChips = 0
	state.MinBet = 0
	state.BettingRound = BettingRound_Showdown
	state.Status = TableStateStatus_TableGameSettled
	state.Result = result
	te.isSettled = true

	te.logger.WithFields(log.Fields{
		"game_count": state.GameCount,
		"fold_out":   result.IsFoldOut,
		"pots":       len(result.Pots),
	}).Info("hand settled")

	te.scheduleNextHand()
}

/*
scheduleNextHand 準備開下一手
  - 有籌碼玩家不足兩位時回到 standby
  - 否則等待所有玩家確認結算或等待逾時
*/
func (te *tableEngine) scheduleNextHand() {
	if len(te.table.AlivePlayers()) < 2 {
		te.toStandby()
		return
	}

	participants := make(map[string]int)
	for _, p := range te.table.State.PlayerStates {
		participants[p.PlayerID] = p.Seat
	}
	te.ogm.Setup(te.table.State.GameCount, participants)
}

func (te *tableEngine) toStandby() {
	te.table.State.Status = TableStateStatus_TableGameStandby
	te.table.State.IsGameActive = false
	te.clearTurn()
}

func (te *tableEngine) openNextHand(gameCount int) {
	te.lock.Lock()
	defer te.lock.Unlock()

	state := te.table.State
	if state.Status != TableStateStatus_TableGameSettled || state.GameCount != gameCount {
		return
	}

	if len(te.table.AlivePlayers()) < 2 {
		te.toStandby()
		te.emitEvent("GameStandby", "")
		return
	}

	if err := te.startNewHand(); err != nil {
		te.emitErrorEvent("StartNewHand", "", err)
		te.toStandby()
		te.emitEvent("GameStandby", "")
		return
	}

	te.flushEvents("GameStarted", "")
}

/*
leave 玩家離桌
  - 本手仍在爭奪底池時視為棄牌
  - 已投入的籌碼轉為 DeadChips 留在底池
*/
func (te *tableEngine) leave(playerID string) (int64, error) {
	if te.table == nil {
		return 0, ErrTableNotCreated
	}

	player := te.table.FindPlayer(playerID)
	if player == nil {
		return 0, ErrPlayerNotFound
	}

	state := te.table.State
	inPlay := state.Status == TableStateStatus_TableGamePlaying
	wasTurn := inPlay && state.CurrentPlayerID == playerID

	if inPlay && player.IsParticipated && player.IsActive {
		te.foldPlayer(player)
		te.recordAction(player, WagerAction_Fold, 0)
	}

	if inPlay {
		state.DeadChips += player.CurrentBet + player.TotalBet
	}

	chips := player.Chips
	state.PlayerStates = funk.Filter(state.PlayerStates, func(p *TablePlayerState) bool {
		return p.PlayerID != playerID
	}).([]*TablePlayerState)
	te.table.RebuildSeatMap()
	if err := te.sm.RemoveSeat(playerID); err != nil {
		te.logger.WithField("player_id", playerID).WithError(err).Warn("remove seat failed")
	}

	if state.Status == TableStateStatus_TableGameSettled {
		// nothing to acknowledge anymore
		_ = te.ogm.Ready(playerID)
	}

	if inPlay {
		switch {
		case te.isRoundComplete():
			te.completeRound()
		case wasTurn:
			if next := te.findNextActor(player.Seat); next != nil {
				te.setTurn(next)
			} else {
				te.completeRound()
			}
		}
	}

	te.logger.WithFields(log.Fields{
		"player_id": playerID,
		"chips":     chips,
	}).Info("player left")

	te.flushEvents("PlayerLeave", playerID)
	return chips, nil
}

// refundHand returns committed chips to the players still seated.
func (te *tableEngine) refundHand() {
	state := te.table.State
	for _, p := range state.PlayerStates {
		refund := p.CurrentBet + p.TotalBet
		p.Chips += refund
		state.Pot -= refund
		p.CurrentBet = 0
		p.TotalBet = 0
	}

	if state.Pot > 0 {
		te.logger.WithField("dead_chips", state.Pot).Warn("dead chips forfeited on close")
	}
	state.Pot = 0
	state.DeadChips = 0
}
