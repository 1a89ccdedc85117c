// Package statistics aggregates simulated game results for one agent.
package statistics

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/lox/battleline/internal/game"
)

// GameResult is one finished game seen from the measured agent's seat.
type GameResult struct {
	Deal      int       // index of the shuffled deck
	Seat      game.Seat // seat the agent played from
	SlotsWon  int       // slots the agent won
	Margin    int       // SlotsWon minus the opponent's slots
	Won       bool
	Fallbacks int // turns where the agent's move was replaced
	Turns     int
	Duration  time.Duration
}

// SeatStats tracks results for one seat.
type SeatStats struct {
	Games      int
	Wins       int
	SumMargin  float64
	SumMargin2 float64
}

// Statistics accumulates game results. Margins are slot differences, so a
// clean sweep counts as +9 and a sweep against counts as -9.
type Statistics struct {
	Games      int
	Wins       int
	SumMargin  float64
	SumMargin2 float64   // sum of squares for variance
	Values     []float64 // margins, for median and percentiles

	Seats [game.NumSeats]SeatStats

	Sweeps       int // all nine slots won
	SweptAgainst int // all nine slots lost
	Fallbacks    int
	Turns        int

	TotalDuration time.Duration
	MaxDuration   time.Duration
}

// Add incorporates one game.
func (s *Statistics) Add(r GameResult) {
	m := float64(r.Margin)
	s.Games++
	s.SumMargin += m
	s.SumMargin2 += m * m
	s.Values = append(s.Values, m)
	if r.Won {
		s.Wins++
	}

	if r.Seat.Valid() {
		ss := &s.Seats[r.Seat]
		ss.Games++
		ss.SumMargin += m
		ss.SumMargin2 += m * m
		if r.Won {
			ss.Wins++
		}
	}

	switch r.SlotsWon {
	case game.NumSlots:
		s.Sweeps++
	case 0:
		s.SweptAgainst++
	}
	s.Fallbacks += r.Fallbacks
	s.Turns += r.Turns

	s.TotalDuration += r.Duration
	s.MaxDuration = max(s.MaxDuration, r.Duration)
}

// Mean returns the average slot margin per game.
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Games)
}

// Variance returns the sample variance of the margins.
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumMargin2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean margin.
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval of the mean margin.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of games won.
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// WinRateInterval95 is the normal approximation interval of WinRate,
// clamped to [0, 1].
func (s *Statistics) WinRateInterval95() (float64, float64) {
	if s.Games == 0 {
		return 0, 0
	}
	p := s.WinRate()
	margin := 1.96 * math.Sqrt(p*(1-p)/float64(s.Games))
	return max(0, p-margin), min(1, p+margin)
}

func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the interpolated margin at p in [0, 1].
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatMean returns the mean margin for games played from seat.
func (s *Statistics) SeatMean(seat game.Seat) float64 {
	if !seat.Valid() || s.Seats[seat].Games == 0 {
		return 0
	}
	return s.Seats[seat].SumMargin / float64(s.Seats[seat].Games)
}

// SeatWinRate returns the win fraction for games played from seat.
func (s *Statistics) SeatWinRate(seat game.Seat) float64 {
	if !seat.Valid() || s.Seats[seat].Games == 0 {
		return 0
	}
	return float64(s.Seats[seat].Wins) / float64(s.Seats[seat].Games)
}

// MeanDuration returns the average wall time per game.
func (s *Statistics) MeanDuration() time.Duration {
	if s.Games == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Games)
}

// Validate cross-checks the counters.
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values length (%d) does not match games count (%d)", len(s.Values), s.Games)
	}
	if s.Wins > s.Games {
		return fmt.Errorf("wins (%d) exceed games (%d)", s.Wins, s.Games)
	}

	seatGames, seatWins := 0, 0
	for _, ss := range s.Seats {
		seatGames += ss.Games
		seatWins += ss.Wins
	}
	if seatGames != s.Games {
		return fmt.Errorf("seat games total (%d) does not match games count (%d)", seatGames, s.Games)
	}
	if seatWins != s.Wins {
		return fmt.Errorf("seat wins total (%d) does not match wins (%d)", seatWins, s.Wins)
	}
	if s.Sweeps+s.SweptAgainst > s.Games {
		return fmt.Errorf("sweeps (%d + %d) exceed games (%d)", s.Sweeps, s.SweptAgainst, s.Games)
	}
	return nil
}
