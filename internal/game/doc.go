// Package game implements the rules of the two-player slot game.
//
// Each player owns a Grid of nine Slots. On their turn a player places one
// card from their Hand into one of their own slots and then draws from the
// Deck while it lasts. A slot holds at most three cards; once both players
// have filled slot i, the stronger combination wins it, with the player who
// completed the slot first winning exact ties. The game ends when all
// eighteen slots are full and the player holding more slots wins.
//
// # Basic Usage
//
//	st, err := game.NewState(deck.New(randutil.New(42)))
//	if err != nil {
//	    return err
//	}
//	rec, err := game.NewEngine(game.WithLogger(logger)).Play(ctx, st, agents)
//
// # Imperfect Information
//
// Agents never receive the State. They receive a View produced by
// State.View: both grids, their own hand, the opponent's hand size and the
// deck size. A View is a value, so nothing an agent does to it reaches the
// State.
package game
