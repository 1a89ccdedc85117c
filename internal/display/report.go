package display

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	"github.com/lox/battleline/cards"
	"github.com/lox/battleline/internal/combos"
	"github.com/lox/battleline/internal/game"
	"github.com/lox/battleline/internal/scoring"
	"github.com/lox/battleline/internal/simulator"
)

// Summary writes the aggregate results of a simulation.
func Summary(w io.Writer, r *simulator.Report) error {
	s := r.Stats
	fmt.Fprintf(w, "%s\n\n", TitleStyle.Render(fmt.Sprintf("=== engine vs %s (seed %d) ===", r.Opponent, r.Seed)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	lo, hi := s.WinRateInterval95()
	mlo, mhi := s.ConfidenceInterval95()
	fmt.Fprintf(tw, "deals\t%d\t(%d games, both seats)\n", r.Deals, s.Games)
	fmt.Fprintf(tw, "win rate\t%.3f\t95%% CI [%.3f, %.3f]\n", s.WinRate(), lo, hi)
	fmt.Fprintf(tw, "slot margin\t%+.3f\t95%% CI [%+.3f, %+.3f]\n", s.Mean(), mlo, mhi)
	fmt.Fprintf(tw, "std dev\t%.3f\t\n", s.StdDev())
	fmt.Fprintf(tw, "percentiles\tP5=%+.1f P25=%+.1f P50=%+.1f P75=%+.1f P95=%+.1f\t\n",
		s.Percentile(0.05), s.Percentile(0.25), s.Median(), s.Percentile(0.75), s.Percentile(0.95))
	fmt.Fprintf(tw, "sweeps\t%d won, %d lost\t\n", s.Sweeps, s.SweptAgainst)
	fmt.Fprintf(tw, "fallbacks\t%d\tof %d turns\n", s.Fallbacks, s.Turns)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", TitleStyle.Render("=== by seat ==="))
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "seat\tgames\twin rate\tmargin\n")
	for seat := range game.Seat(game.NumSeats) {
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%+.3f\n",
			seat, s.Seats[seat].Games, s.SeatWinRate(seat), s.SeatMean(seat))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", InfoStyle.Render(fmt.Sprintf("%d games in %v (%v per game, slowest %v)",
		s.Games,
		r.Elapsed.Truncate(time.Millisecond),
		s.MeanDuration().Truncate(time.Microsecond),
		s.MaxDuration.Truncate(time.Microsecond))))
	return nil
}

// Combos writes the size and score range of every category in the
// generator's universe under scheme.
func Combos(w io.Writer, gen *combos.Generator, scheme *scoring.Scheme) error {
	type row struct {
		count    int
		min, max float64
	}
	var rows [cards.NumCategories]row
	for i := range rows {
		rows[i] = row{min: math.Inf(1), max: math.Inf(-1)}
	}
	for _, comb := range gen.All() {
		r := &rows[comb.Category()]
		score := scheme.Score(comb)
		r.count++
		r.min = math.Min(r.min, score)
		r.max = math.Max(r.max, score)
	}

	weights := scheme.Weights()
	fmt.Fprintf(w, "%s\n\n", TitleStyle.Render(fmt.Sprintf("=== %d combinations ===", gen.Len())))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "category\tcount\tbase\tweight\tscore\n")
	for c := cards.NumCategories - 1; c >= 0; c-- {
		cat := cards.Category(c)
		lo, hi := scoring.Band(cat)
		r := rows[c]
		fmt.Fprintf(tw, "%s\t%d\t%d-%d\t%g\t%g-%g\n", cat, r.count, lo, hi, weights[cat], r.min, r.max)
	}
	return tw.Flush()
}
