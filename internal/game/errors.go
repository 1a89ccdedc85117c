package game

import "errors"

var (
	ErrSlotFull      = errors.New("slot is full")
	ErrDuplicateCard = errors.New("card already in slot")
	ErrCardNotInHand = errors.New("card not in hand")
	ErrInvalidSlot   = errors.New("invalid slot index")
	ErrGameOver      = errors.New("game is over")
	ErrShortDeck     = errors.New("deck too small to deal")
	ErrConservation  = errors.New("card conservation violated")
)

var ErrGameNotOver = errors.New("game is not over")
