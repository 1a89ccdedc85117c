package game

import (
	"fmt"

	"github.com/lox/battleline/cards"
	"github.com/lox/battleline/internal/deck"
)

// State is the full game position. It owns the deck; players only ever see
// a View of it.
type State struct {
	grids  [NumSeats]Grid
	hands  [NumSeats]Hand
	deck   *deck.Deck
	toMove Seat
	turn   int

	// first player to complete each slot index, decides exact ties
	finished   [NumSlots]bool
	finishedBy [NumSlots]Seat
}

// NewState deals HandSize cards to each player, alternating, starting with
// PlayerOne. The remaining cards stay in d.
func NewState(d *deck.Deck) (*State, error) {
	if d.Size() < NumSeats*HandSize {
		return nil, fmt.Errorf("%w: %d cards", ErrShortDeck, d.Size())
	}
	s := &State{deck: d}
	for range HandSize {
		for seat := range Seat(NumSeats) {
			c, _ := d.Draw()
			s.hands[seat].Add(c)
		}
	}
	return s, nil
}

// Position describes an arbitrary mid-game state. Deck lists the draw pile
// top first.
type Position struct {
	Grids         [NumSeats]Grid
	Hands         [NumSeats]Hand
	Deck          []cards.Card
	ToMove        Seat
	FirstToFinish map[int]Seat
}

// FromPosition builds a State from p and checks that every card is
// accounted for exactly once.
func FromPosition(p Position) (*State, error) {
	if !p.ToMove.Valid() {
		return nil, fmt.Errorf("invalid seat %d", p.ToMove)
	}
	s := &State{
		grids:  p.Grids,
		hands:  p.Hands,
		deck:   deck.FromCards(p.Deck),
		toMove: p.ToMove,
		turn:   p.Grids[0].Placed() + p.Grids[1].Placed(),
	}
	for slot, seat := range p.FirstToFinish {
		if err := validSlot(slot); err != nil {
			return nil, err
		}
		if !seat.Valid() {
			return nil, fmt.Errorf("invalid seat %d for slot %d", seat, slot+1)
		}
		if !s.grids[seat][slot].Full() {
			return nil, fmt.Errorf("%s did not complete slot %d", seat, slot+1)
		}
		s.finished[slot] = true
		s.finishedBy[slot] = seat
	}
	for slot := range NumSlots {
		if s.finished[slot] {
			continue
		}
		full := [NumSeats]bool{s.grids[0][slot].Full(), s.grids[1][slot].Full()}
		switch {
		case full[0] && full[1]:
			return nil, fmt.Errorf("slot %d is complete on both sides but no first finisher is given", slot+1)
		case full[0]:
			s.finished[slot], s.finishedBy[slot] = true, PlayerOne
		case full[1]:
			s.finished[slot], s.finishedBy[slot] = true, PlayerTwo
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// View returns what seat may see.
func (s *State) View(seat Seat) View {
	return View{
		Seat:             seat,
		Mine:             s.grids[seat],
		Theirs:           s.grids[seat.Other()],
		Hand:             s.hands[seat],
		OpponentHandSize: s.hands[seat.Other()].Len(),
		DeckSize:         s.deck.Size(),
	}
}

// ToMove returns the seat whose turn it is.
func (s *State) ToMove() Seat {
	return s.toMove
}

// Turn returns the number of cards placed so far.
func (s *State) Turn() int {
	return s.turn
}

func (s *State) Grid(seat Seat) Grid {
	return s.grids[seat]
}

func (s *State) Hand(seat Seat) Hand {
	return s.hands[seat]
}

func (s *State) DeckSize() int {
	return s.deck.Size()
}

// FirstToFinish reports who completed slot first.
func (s *State) FirstToFinish(slot int) (Seat, bool) {
	return s.finishedBy[slot], s.finished[slot]
}

// Over reports whether all eighteen slots are full.
func (s *State) Over() bool {
	return s.grids[0].Full() && s.grids[1].Full()
}

// LegalMoves lists the moves open to the player on move.
func (s *State) LegalMoves() []Move {
	v := s.View(s.toMove)
	return v.LegalMoves()
}

// Apply plays m for the player on move, then draws a replacement card while
// the deck lasts and passes the turn. The state is unchanged on error.
func (s *State) Apply(m Move) error {
	if s.Over() {
		return ErrGameOver
	}
	if err := validSlot(m.Slot); err != nil {
		return err
	}
	seat := s.toMove
	hand := &s.hands[seat]
	if !hand.Contains(m.Card) {
		return fmt.Errorf("%s: %w: %s", seat, ErrCardNotInHand, m.Card)
	}
	slot := &s.grids[seat][m.Slot]
	if err := slot.Add(m.Card); err != nil {
		return fmt.Errorf("%s slot %d: %w", seat, m.Slot+1, err)
	}
	hand.set.Remove(m.Card)

	if slot.Full() && !s.finished[m.Slot] {
		s.finished[m.Slot] = true
		s.finishedBy[m.Slot] = seat
	}
	if c, ok := s.deck.Draw(); ok {
		hand.Add(c)
	}
	s.turn++
	s.toMove = s.nextToMove(seat)
	return nil
}

// nextToMove alternates unless the opponent cannot place a card.
func (s *State) nextToMove(seat Seat) Seat {
	other := seat.Other()
	if s.hands[other].Empty() || s.grids[other].Full() {
		return seat
	}
	return other
}

// SlotWinner returns the winner of slot once both sides are complete.
func (s *State) SlotWinner(slot int) (Seat, bool) {
	a, okA := s.grids[PlayerOne][slot].Combination()
	b, okB := s.grids[PlayerTwo][slot].Combination()
	if !okA || !okB {
		return 0, false
	}
	switch a.Compare(b) {
	case 1:
		return PlayerOne, true
	case -1:
		return PlayerTwo, true
	default:
		return s.finishedBy[slot], true
	}
}

// Outcome summarises a finished game.
type Outcome struct {
	SlotWinners [NumSlots]Seat
	SlotsWon    [NumSeats]int
	Winner      Seat
}

// Outcome decides every slot and the game. Nine slots cannot split evenly,
// so there is always a winner.
func (s *State) Outcome() (Outcome, error) {
	if !s.Over() {
		return Outcome{}, ErrGameNotOver
	}
	var out Outcome
	for slot := range NumSlots {
		w, _ := s.SlotWinner(slot)
		out.SlotWinners[slot] = w
		out.SlotsWon[w]++
	}
	out.Winner = PlayerOne
	if out.SlotsWon[PlayerTwo] > out.SlotsWon[PlayerOne] {
		out.Winner = PlayerTwo
	}
	return out, nil
}

// Validate checks that each of the 54 cards is in exactly one hand, slot or
// the deck.
func (s *State) Validate() error {
	var seen cards.CardSet
	place := func(where string, cs []cards.Card) error {
		for _, c := range cs {
			if seen.Contains(c) {
				return fmt.Errorf("%w: %s seen again in %s", ErrConservation, c, where)
			}
			seen.Add(c)
		}
		return nil
	}
	for seat := range Seat(NumSeats) {
		if err := place(seat.String()+" hand", s.hands[seat].Cards()); err != nil {
			return err
		}
		for i := range NumSlots {
			if err := place(fmt.Sprintf("%s slot %d", seat, i+1), s.grids[seat][i].Cards()); err != nil {
				return err
			}
		}
	}
	if err := place("deck", s.deck.Cards()); err != nil {
		return err
	}
	for _, c := range cards.All() {
		if !seen.Contains(c) {
			return fmt.Errorf("%w: %s is missing", ErrConservation, c)
		}
	}
	return nil
}
