package main

import (
	"github.com/lox/battleline/internal/game"
	"github.com/lox/battleline/internal/simulator"
)

type savedMove struct {
	Seat     string `json:"seat"`
	Slot     int    `json:"slot"`
	Card     string `json:"card"`
	Fallback bool   `json:"fallback,omitempty"`
}

// gameDocument is the JSON written by play --save.
type gameDocument struct {
	ID         string                `json:"id"`
	Seed       int64                 `json:"seed"`
	Players    [game.NumSeats]string `json:"players"`
	Moves      []savedMove           `json:"moves"`
	SlotWinner [game.NumSlots]string `json:"slot_winners"`
	SlotsWon   [game.NumSeats]int    `json:"slots_won"`
	Winner     string                `json:"winner"`
	DurationMS int64                 `json:"duration_ms"`
}

func newGameDocument(rec *game.Record, seed int64, names [game.NumSeats]string) gameDocument {
	doc := gameDocument{
		ID:         rec.ID,
		Seed:       seed,
		Players:    names,
		Moves:      make([]savedMove, 0, len(rec.Turns)),
		SlotsWon:   rec.Outcome.SlotsWon,
		Winner:     names[rec.Outcome.Winner],
		DurationMS: rec.Duration.Milliseconds(),
	}
	for _, turn := range rec.Turns {
		doc.Moves = append(doc.Moves, savedMove{
			Seat:     names[turn.Seat],
			Slot:     turn.Move.Slot + 1,
			Card:     turn.Move.Card.String(),
			Fallback: turn.Fallback,
		})
	}
	for i, seat := range rec.Outcome.SlotWinners {
		doc.SlotWinner[i] = names[seat]
	}
	return doc
}

type seatSummary struct {
	Games      int     `json:"games"`
	WinRate    float64 `json:"win_rate"`
	MeanMargin float64 `json:"mean_margin"`
}

// reportDocument is the JSON written by simulate --output.
type reportDocument struct {
	Opponent     string                     `json:"opponent"`
	Seed         int64                      `json:"seed"`
	Deals        int                        `json:"deals"`
	Games        int                        `json:"games"`
	Wins         int                        `json:"wins"`
	WinRate      float64                    `json:"win_rate"`
	WinRateCI    [2]float64                 `json:"win_rate_ci95"`
	MeanMargin   float64                    `json:"mean_margin"`
	MarginCI     [2]float64                 `json:"mean_margin_ci95"`
	StdDev       float64                    `json:"std_dev"`
	Median       float64                    `json:"median"`
	Sweeps       int                        `json:"sweeps"`
	SweptAgainst int                        `json:"swept_against"`
	Fallbacks    int                        `json:"fallbacks"`
	Seats        [game.NumSeats]seatSummary `json:"seats"`
	ElapsedMS    int64                      `json:"elapsed_ms"`
}

func newReportDocument(r *simulator.Report) reportDocument {
	s := r.Stats
	doc := reportDocument{
		Opponent:     r.Opponent,
		Seed:         r.Seed,
		Deals:        r.Deals,
		Games:        s.Games,
		Wins:         s.Wins,
		WinRate:      s.WinRate(),
		MeanMargin:   s.Mean(),
		StdDev:       s.StdDev(),
		Median:       s.Median(),
		Sweeps:       s.Sweeps,
		SweptAgainst: s.SweptAgainst,
		Fallbacks:    s.Fallbacks,
		ElapsedMS:    r.Elapsed.Milliseconds(),
	}
	doc.WinRateCI[0], doc.WinRateCI[1] = s.WinRateInterval95()
	doc.MarginCI[0], doc.MarginCI[1] = s.ConfidenceInterval95()
	for seat := range game.Seat(game.NumSeats) {
		doc.Seats[seat] = seatSummary{
			Games:      s.Seats[seat].Games,
			WinRate:    s.SeatWinRate(seat),
			MeanMargin: s.SeatMean(seat),
		}
	}
	return doc
}
