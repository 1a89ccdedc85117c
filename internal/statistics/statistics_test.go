package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/battleline/internal/game"
)

func result(seat game.Seat, slots int) GameResult {
	return GameResult{
		Seat:     seat,
		SlotsWon: slots,
		Margin:   2*slots - game.NumSlots,
		Won:      slots > game.NumSlots/2,
		Turns:    27,
	}
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	s := &Statistics{}
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Zero(t, s.StdDev())
	assert.Zero(t, s.StdError())
	assert.Zero(t, s.Median())
	assert.Zero(t, s.Percentile(0.9))
	assert.Zero(t, s.WinRate())
	assert.Zero(t, s.MeanDuration())
	lo, hi := s.WinRateInterval95()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
	assert.Error(t, s.Validate())
}

func TestSingleGame(t *testing.T) {
	t.Parallel()

	s := &Statistics{}
	r := result(game.PlayerTwo, 6)
	r.Duration = 3 * time.Millisecond
	r.Fallbacks = 1
	s.Add(r)

	require.NoError(t, s.Validate())
	assert.Equal(t, 1, s.Games)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 3.0, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Equal(t, 3.0, s.Median())
	assert.Equal(t, 1, s.Seats[game.PlayerTwo].Games)
	assert.Zero(t, s.Seats[game.PlayerOne].Games)
	assert.Equal(t, 1, s.Fallbacks)
	assert.Equal(t, 27, s.Turns)
	assert.Equal(t, 3*time.Millisecond, s.MaxDuration)
}

func TestMultipleGames(t *testing.T) {
	t.Parallel()

	s := &Statistics{}
	for _, r := range []GameResult{
		result(game.PlayerOne, 5), // +1
		result(game.PlayerTwo, 3), // -3
		result(game.PlayerOne, 9), // +9
		result(game.PlayerTwo, 0), // -9
		result(game.PlayerOne, 4), // -1
	} {
		s.Add(r)
	}

	require.NoError(t, s.Validate())
	assert.InDelta(t, -3.0/5, s.Mean(), 1e-9)
	// sorted: -9 -3 -1 1 9
	assert.Equal(t, -1.0, s.Median())
	assert.Equal(t, 2, s.Wins)
	assert.InDelta(t, 0.4, s.WinRate(), 1e-9)
	assert.Equal(t, 1, s.Sweeps)
	assert.Equal(t, 1, s.SweptAgainst)

	assert.Equal(t, 3, s.Seats[game.PlayerOne].Games)
	assert.Equal(t, 2, s.Seats[game.PlayerOne].Wins)
	assert.InDelta(t, 3.0, s.SeatMean(game.PlayerOne), 1e-9)
	assert.InDelta(t, -6.0, s.SeatMean(game.PlayerTwo), 1e-9)
	assert.InDelta(t, 2.0/3, s.SeatWinRate(game.PlayerOne), 1e-9)
	assert.Zero(t, s.SeatWinRate(game.PlayerTwo))
	assert.Zero(t, s.SeatMean(game.Seat(5)))
}

func TestPercentiles(t *testing.T) {
	t.Parallel()

	s := &Statistics{}
	for slots := 5; slots <= 9; slots++ {
		s.Add(result(game.PlayerOne, slots))
	}
	// margins 1 3 5 7 9
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.25, 3},
		{0.5, 5},
		{0.625, 6},
		{1, 9},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, s.Percentile(tt.p), 1e-9, "p=%v", tt.p)
	}
}

func TestConfidenceIntervals(t *testing.T) {
	t.Parallel()

	s := &Statistics{}
	for _, slots := range []int{5, 6, 3, 7, 4, 5} {
		s.Add(result(game.PlayerOne, slots))
	}

	lo, hi := s.ConfidenceInterval95()
	assert.InDelta(t, s.Mean(), (lo+hi)/2, 1e-9)
	assert.Greater(t, hi-lo, 0.0)

	wlo, whi := s.WinRateInterval95()
	assert.GreaterOrEqual(t, wlo, 0.0)
	assert.LessOrEqual(t, whi, 1.0)
	assert.Less(t, wlo, s.WinRate())
	assert.Greater(t, whi, s.WinRate())
}

func TestVariance(t *testing.T) {
	t.Parallel()

	s := &Statistics{}
	// margins -1 and 1
	s.Add(result(game.PlayerOne, 4))
	s.Add(result(game.PlayerTwo, 5))
	assert.InDelta(t, 2.0, s.Variance(), 1e-9)
	assert.InDelta(t, 1.0, s.StdError(), 1e-9)
}

func TestMeanDuration(t *testing.T) {
	t.Parallel()

	s := &Statistics{}
	for _, d := range []time.Duration{time.Second, 3 * time.Second} {
		r := result(game.PlayerOne, 5)
		r.Duration = d
		s.Add(r)
	}
	assert.Equal(t, 2*time.Second, s.MeanDuration())
	assert.Equal(t, 3*time.Second, s.MaxDuration)
}

func TestValidateDetectsInconsistency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Statistics)
	}{
		{"values", func(s *Statistics) { s.Values = s.Values[:1] }},
		{"wins", func(s *Statistics) { s.Wins = 10 }},
		{"seat games", func(s *Statistics) { s.Seats[game.PlayerOne].Games++ }},
		{"seat wins", func(s *Statistics) { s.Seats[game.PlayerTwo].Wins++ }},
		{"sweeps", func(s *Statistics) { s.Sweeps = 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Statistics{}
			s.Add(result(game.PlayerOne, 5))
			s.Add(result(game.PlayerTwo, 2))
			require.NoError(t, s.Validate())
			tt.mutate(s)
			assert.Error(t, s.Validate())
		})
	}
}
