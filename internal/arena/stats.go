package arena

import (
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/Mgrdich/TermTacToe/internal/game"
)

// Stats aggregates a finished series. P1 fields describe the runner
// playing P1 regardless of which side started any particular round.
type Stats struct {
	// Rounds is the number of completed rounds.
	Rounds int
	// P1Name and P2Name are the runners' display names.
	P1Name, P2Name string
	// P1Wins, P2Wins and Draws tally round outcomes.
	P1Wins, P2Wins, Draws int
	// IllegalRounds counts rounds decided by an illegal engine move.
	IllegalRounds int
	// P1WinPct and P2WinPct are win percentages over all rounds.
	P1WinPct, P2WinPct float64
	// P1Effort and P2Effort total the engines' work counters across all
	// rounds: nodes for the alpha-beta engines, playouts for MCTS.
	P1Effort, P2Effort uint64
	// P1Duration and P2Duration total the runners' search wall-clock time.
	P1Duration, P2Duration time.Duration
	// TotalMoves counts plies across all rounds.
	TotalMoves int
	// MeanRound and StdDevRound describe the round-duration distribution.
	MeanRound, StdDevRound time.Duration
	// Results lists every round in order.
	Results []RoundResult

	roundSeconds []float64
}

func newStats(p1Name, p2Name string, rounds int) *Stats {
	return &Stats{
		P1Name:       p1Name,
		P2Name:       p2Name,
		Results:      make([]RoundResult, 0, rounds),
		roundSeconds: make([]float64, 0, rounds),
	}
}

func (s *Stats) add(res RoundResult) {
	s.Rounds++
	s.TotalMoves += res.Moves
	switch res.Winner {
	case game.P1:
		s.P1Wins++
	case game.P2:
		s.P2Wins++
	default:
		s.Draws++
	}
	if res.Illegal {
		s.IllegalRounds++
	}
	s.Results = append(s.Results, res)
	s.roundSeconds = append(s.roundSeconds, res.Duration.Seconds())
}

// addRunnerTotals folds one round's engine effort and search time in. The
// runners are reset at every round start, so their counters are per-round
// when sampled at round end.
func (s *Stats) addRunnerTotals(p1Effort, p2Effort uint64, p1Dur, p2Dur time.Duration) {
	s.P1Effort += p1Effort
	s.P2Effort += p2Effort
	s.P1Duration += p1Dur
	s.P2Duration += p2Dur
}

func (s *Stats) finish() {
	if s.Rounds > 0 {
		s.P1WinPct = float64(s.P1Wins) / float64(s.Rounds) * 100
		s.P2WinPct = float64(s.P2Wins) / float64(s.Rounds) * 100
	}
	if len(s.roundSeconds) > 0 {
		s.MeanRound = time.Duration(stat.Mean(s.roundSeconds, nil) * float64(time.Second))
		if len(s.roundSeconds) > 1 {
			s.StdDevRound = time.Duration(stat.StdDev(s.roundSeconds, nil) * float64(time.Second))
		}
	}
}

// Summary renders a plain-text report of the series.
func (s *Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (X) vs %s (O), %d rounds\n", s.P1Name, s.P2Name, s.Rounds)
	fmt.Fprintf(&b, "%s wins:  %d (%.1f%%)\n", s.P1Name, s.P1Wins, s.P1WinPct)
	fmt.Fprintf(&b, "%s wins:  %d (%.1f%%)\n", s.P2Name, s.P2Wins, s.P2WinPct)
	fmt.Fprintf(&b, "draws:   %d\n", s.Draws)
	if s.IllegalRounds > 0 {
		fmt.Fprintf(&b, "illegal: %d\n", s.IllegalRounds)
	}
	fmt.Fprintf(&b, "moves:   %d\n", s.TotalMoves)
	fmt.Fprintf(&b, "round time: mean %v, stddev %v\n", s.MeanRound, s.StdDevRound)
	fmt.Fprintf(&b, "%s effort: %d in %v\n", s.P1Name, s.P1Effort, s.P1Duration)
	fmt.Fprintf(&b, "%s effort: %d in %v\n", s.P2Name, s.P2Effort, s.P2Duration)
	return b.String()
}
