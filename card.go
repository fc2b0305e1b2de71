package holdemtable

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrDeckEmpty   = errors.New("deck: no cards left")
	ErrInvalidCard = errors.New("deck: invalid card")
)

type Suit string

const (
	Suit_Hearts   Suit = "hearts"
	Suit_Diamonds Suit = "diamonds"
	Suit_Clubs    Suit = "clubs"
	Suit_Spades   Suit = "spades"
)

var Suits = []Suit{Suit_Hearts, Suit_Diamonds, Suit_Clubs, Suit_Spades}

// Rank is the card face value, 2 to 14 (ace high).
type Rank int

const (
	Rank_Two   Rank = 2
	Rank_Ten   Rank = 10
	Rank_Jack  Rank = 11
	Rank_Queen Rank = 12
	Rank_King  Rank = 13
	Rank_Ace   Rank = 14
)

func (r Rank) String() string {
	switch r {
	case Rank_Jack:
		return "J"
	case Rank_Queen:
		return "Q"
	case Rank_King:
		return "K"
	case Rank_Ace:
		return "A"
	default:
		return strconv.Itoa(int(r))
	}
}

func (r Rank) Valid() bool {
	return r >= Rank_Two && r <= Rank_Ace
}

type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.Valid() {
		return Card{}, fmt.Errorf("%w: rank %d", ErrInvalidCard, rank)
	}

	switch suit {
	case Suit_Hearts, Suit_Diamonds, Suit_Clubs, Suit_Spades:
	default:
		return Card{}, fmt.Errorf("%w: suit %q", ErrInvalidCard, suit)
	}

	return Card{Suit: suit, Rank: rank}, nil
}

/*
ParseCard 解析兩段式牌面字串
  - rank: 2-9, T or 10, J, Q, K, A
  - suit: h, d, c, s

Example:
  - "As" → A♠, "Td" → 10♦, "10h" → 10♥
*/
func ParseCard(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	rankPart, suitPart := s[:len(s)-1], s[len(s)-1:]

	var rank Rank
	switch rankPart {
	case "T", "10":
		rank = Rank_Ten
	case "J", "j":
		rank = Rank_Jack
	case "Q", "q":
		rank = Rank_Queen
	case "K", "k":
		rank = Rank_King
	case "A", "a":
		rank = Rank_Ace
	default:
		v, err := strconv.Atoi(rankPart)
		if err != nil {
			return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
		}
		rank = Rank(v)
	}

	var suit Suit
	switch suitPart {
	case "h", "H":
		suit = Suit_Hearts
	case "d", "D":
		suit = Suit_Diamonds
	case "c", "C":
		suit = Suit_Clubs
	case "s", "S":
		suit = Suit_Spades
	}

	return NewCard(rank, suit)
}

func MustParseCards(symbols ...string) []Card {
	cards := make([]Card, 0, len(symbols))
	for _, s := range symbols {
		c, err := ParseCard(s)
		if err != nil {
			panic(err)
		}
		cards = append(cards, c)
	}
	return cards
}

func (c Card) String() string {
	var symbol string
	switch c.Suit {
	case Suit_Hearts:
		symbol = "♥"
	case Suit_Diamonds:
		symbol = "♦"
	case Suit_Clubs:
		symbol = "♣"
	case Suit_Spades:
		symbol = "♠"
	default:
		symbol = "?"
	}
	return c.Rank.String() + symbol
}

// RandomSource supplies the randomness used to shuffle a deck. *rand.Rand satisfies it.
type RandomSource interface {
	Shuffle(n int, swap func(i, j int))
}

// Deck is owned by a single hand and consumed from the top.
type Deck struct {
	cards []Card
}

func NewStandardDeck() *Deck {
	cards := make([]Card, 0, len(Suits)*13)
	for _, suit := range Suits {
		for rank := Rank_Two; rank <= Rank_Ace; rank++ {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}
	return &Deck{cards: cards}
}

func NewShuffledDeck(r RandomSource) *Deck {
	d := NewStandardDeck()
	d.Shuffle(r)
	return d
}

// NewDeckFromCards builds a deck whose top card is cards[0].
func NewDeckFromCards(cards []Card) *Deck {
	return &Deck{cards: append([]Card{}, cards...)}
}

func (d *Deck) Shuffle(r RandomSource) {
	r.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckEmpty
	}

	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

func (d *Deck) Burn() error {
	_, err := d.Draw()
	return err
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

func (d *Deck) Cards() []Card {
	return append([]Card{}, d.cards...)
}
