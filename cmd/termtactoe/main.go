// Package main is the entry point for the TermTacToe arena.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mgrdich/TermTacToe/internal/arena"
	"github.com/Mgrdich/TermTacToe/internal/config"
	"github.com/Mgrdich/TermTacToe/internal/game"
	"github.com/Mgrdich/TermTacToe/internal/mcts"
	"github.com/Mgrdich/TermTacToe/internal/metattt"
	"github.com/Mgrdich/TermTacToe/internal/runner"
	"github.com/Mgrdich/TermTacToe/internal/search"
	"github.com/Mgrdich/TermTacToe/internal/tictactoe"
	"github.com/Mgrdich/TermTacToe/internal/ui"
	"github.com/Mgrdich/TermTacToe/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	gameName := flag.String("game", "ttt", "Game to play: ttt or ultimate")
	p1Kind := flag.String("p1", config.EngineNegamax, "Engine for X: negamax, minimax or mcts")
	p2Kind := flag.String("p2", config.EngineMCTS, "Engine for O: negamax, minimax or mcts")
	rounds := flag.Int("rounds", 0, "Rounds to play (0 = use config)")
	configPath := flag.String("config", "", "Config file (default ~/.termtactoe/config.toml)")
	noTUI := flag.Bool("no-tui", false, "Print results to stdout instead of the TUI")
	flag.Parse()

	if *showVersion {
		fmt.Printf("termtactoe %s\n", version.Version)
		fmt.Printf("Build date: %s\n", version.BuildDate)
		fmt.Printf("Git commit: %s\n", version.GitCommit)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *rounds > 0 {
		cfg.Arena.Rounds = *rounds
	}

	var runErr error
	switch *gameName {
	case "ttt":
		runErr = run[tictactoe.Move](cfg, tictactoe.NewRule(), tictactoe.SimpleEstimate, *p1Kind, *p2Kind, *noTUI)
	case "ultimate":
		runErr = run[metattt.Move](cfg, metattt.NewRule(), metattt.WeightedEstimate(metattt.DefaultScoreWeight), *p1Kind, *p2Kind, *noTUI)
	default:
		runErr = fmt.Errorf("unknown game %q", *gameName)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// run builds the two runners and drives the series, either headless or
// behind the Bubbletea watcher.
func run[M comparable](cfg config.Config, initial game.Rule[M], eval game.Evaluator[M], p1Kind, p2Kind string, noTUI bool) error {
	p1, err := buildRunner(cfg, initial, eval, p1Kind, game.P1)
	if err != nil {
		return err
	}
	p2, err := buildRunner(cfg, initial, eval, p2Kind, game.P2)
	if err != nil {
		return err
	}

	starting := game.P1
	if cfg.Arena.StartingSide == "o" {
		starting = game.P2
	}
	arenaCfg := arena.Config{
		Rounds:       cfg.Arena.Rounds,
		StartingSide: starting,
		Alternate:    cfg.Arena.Alternate,
	}

	if noTUI {
		m, err := arena.NewMatch(initial, p1, p2, arenaCfg, func(r arena.RoundResult) {
			log.Printf("round %d: winner %v in %d moves (%v)", r.Round, r.Winner, r.Moves, r.Duration)
		})
		if err != nil {
			return err
		}
		defer m.Close()
		fmt.Print(m.Run().Summary())
		return nil
	}

	// Buffered so a finishing round never blocks on a TUI that quit.
	roundCh := make(chan arena.RoundResult, cfg.Arena.Rounds)
	doneCh := make(chan *arena.Stats, 1)
	m, err := arena.NewMatch(initial, p1, p2, arenaCfg, func(r arena.RoundResult) {
		roundCh <- r
	})
	if err != nil {
		return err
	}

	matchDone := make(chan struct{})
	go func() {
		stats := m.Run()
		close(roundCh)
		doneCh <- stats
		close(matchDone)
	}()

	model := ui.NewModel(p1.Name(), p2.Name(), cfg.Arena.Rounds, cfg.Display.UseColors,
		roundCh, doneCh, m.Stop)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, uiErr := p.Run()

	m.Stop()
	<-matchDone
	if err := m.Close(); err != nil {
		log.Printf("closing runners: %v", err)
	}
	if uiErr != nil {
		return fmt.Errorf("tui failed: %w", uiErr)
	}
	return nil
}

// buildRunner assembles one engine runner from the configuration.
func buildRunner[M comparable](cfg config.Config, initial game.Rule[M], eval game.Evaluator[M], kind string, side game.Player) (*runner.Runner[M], error) {
	name := fmt.Sprintf("%s-%s", kind, side)

	switch kind {
	case config.EngineNegamax:
		reorder := search.NewShuffle[M]()
		if cfg.Negamax.Reorder == "score" {
			reorder = search.NewReorderByScore(eval)
		}
		engine := search.NewNegamax(initial, eval, reorder)
		return runner.New[M](name, side, runner.NewNegamax(engine, cfg.Negamax.Depth)), nil

	case config.EngineMinimax:
		var policy search.RecursionPolicy = search.MaxVertices(cfg.Minimax.MaxVertices)
		if cfg.Minimax.Recursion == "max_depth" {
			policy = search.MaxDepth(cfg.Minimax.MaxDepth)
		}
		var chooser search.RootChooser[M] = search.First[M]{}
		if cfg.Minimax.Chooser == "epsilon_bucket" {
			chooser = search.NewEpsilonBucket[M](cfg.Minimax.BucketWidth)
		}
		engine := search.NewMinimax(initial, eval, search.NewShuffle[M](), policy)
		return runner.New[M](name, side, runner.NewMinimax(engine, chooser)), nil

	case config.EngineMCTS:
		tree := mcts.New(initial, cfg.MCTS.Exploration)
		return runner.New[M](name, side,
			runner.NewMCTS(tree, cfg.MCTS.Simulations, mcts.MostVisited[M]{})), nil

	default:
		return nil, fmt.Errorf("unknown engine %q", kind)
	}
}
