// Package main provides the fightsim binary: a terminal fighting-game match
// between a human or CPU player and a CPU opponent.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/brawl/internal/config"
	"github.com/cory-johannsen/brawl/internal/frontend/console"
	"github.com/cory-johannsen/brawl/internal/game/ai"
	"github.com/cory-johannsen/brawl/internal/game/archetype"
	"github.com/cory-johannsen/brawl/internal/game/combat"
	"github.com/cory-johannsen/brawl/internal/game/dice"
	"github.com/cory-johannsen/brawl/internal/game/match"
	"github.com/cory-johannsen/brawl/internal/game/roster"
	"github.com/cory-johannsen/brawl/internal/lifecycle"
	"github.com/cory-johannsen/brawl/internal/observability"
	"github.com/cory-johannsen/brawl/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty = defaults and FIGHT_* env only")
	fightersDir := flag.String("fighters", "", "override content.fighters_dir")
	scriptsDir := flag.String("scripts", "", "override content.scripts_dir")
	p1 := flag.String("p1", "", "side A fighter id or name; empty = choose (interactive) or random")
	p2 := flag.String("p2", "", "side B fighter id or name; empty = random")
	interactive := flag.Bool("interactive", false, "read side A moves from stdin")
	seed := flag.Uint64("seed", 0, "override match.seed; 0 keeps the configured seed")
	strategy := flag.String("strategy", "", "override ai.strategy")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *fightersDir != "" {
		cfg.Content.FightersDir = *fightersDir
	}
	if *scriptsDir != "" {
		cfg.Content.ScriptsDir = *scriptsDir
	}
	if *seed != 0 {
		cfg.Match.Seed = *seed
	}
	if *strategy != "" {
		cfg.AI.Strategy = *strategy
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	var base dice.Source
	if cfg.Match.Seed != 0 {
		base = dice.NewSeededSource(cfg.Match.Seed)
	} else {
		base = dice.NewCryptoSource()
	}
	src := dice.NewLoggedSource(base, logger)

	ros, err := roster.Load(cfg.Content.FightersDir)
	if err != nil {
		logger.Fatal("loading fighters", zap.Error(err))
	}
	logger.Info("roster loaded",
		zap.Int("fighters", ros.Len()),
		zap.String("dir", cfg.Content.FightersDir),
	)

	var hooks archetype.HookCaller
	if cfg.Content.ScriptsDir != "" {
		if _, statErr := os.Stat(cfg.Content.ScriptsDir); statErr == nil {
			mgr := scripting.NewManager(cfg.Scripting.InstructionLimit, logger)
			defer mgr.Close()
			keys, err := mgr.LoadDir(cfg.Content.ScriptsDir)
			if err != nil {
				logger.Fatal("loading fighter scripts", zap.Error(err))
			}
			logger.Info("fighter scripts loaded", zap.Strings("scripts", keys))
			hooks = mgr
		} else {
			logger.Warn("scripts dir unavailable; scripted archetypes disabled",
				zap.String("dir", cfg.Content.ScriptsDir),
				zap.Error(statErr),
			)
		}
	}

	renderer := console.Renderer{Color: cfg.Console.Color}
	prompter := console.NewPrompter(os.Stdin, os.Stdout, renderer)
	ctx := context.Background()

	pick := func(query string, choose bool) *roster.Template {
		switch {
		case query != "":
			t, err := ros.Find(query)
			if err != nil {
				logger.Fatal("selecting fighter", zap.Error(err))
			}
			return t
		case choose:
			t, err := prompter.ChooseFighter(ctx, ros)
			if err != nil {
				logger.Fatal("selecting fighter", zap.Error(err))
			}
			return t
		default:
			return ros.Random(src)
		}
	}
	tmplA := pick(*p1, *interactive)
	tmplB := pick(*p2, false)

	fighterA, err := tmplA.NewCombatant(hooks)
	if err != nil {
		logger.Fatal("building fighter", zap.Error(err))
	}
	fighterB, err := tmplB.NewCombatant(hooks)
	if err != nil {
		logger.Fatal("building fighter", zap.Error(err))
	}

	tactics := ai.TacticalConfig{FinisherHealth: cfg.AI.FinisherHealth, CriticalRatio: cfg.AI.CriticalRatio}
	newCPU := func() match.Controller {
		s, err := ai.NewStrategy(cfg.AI.Strategy, src, tactics)
		if err != nil {
			logger.Fatal("building strategy", zap.Error(err))
		}
		return match.CPU{Strategy: s}
	}
	var controllerA match.Controller = prompter
	if !*interactive {
		controllerA = newCPU()
	}

	m, err := match.New(
		match.Corner{Fighter: fighterA, Controller: controllerA, Label: "P1"},
		match.Corner{Fighter: fighterB, Controller: newCPU(), Label: "P2"},
		combat.NewResolver(src, logger),
		match.Config{
			RoundsToWin: cfg.Match.RoundsToWin,
			MaxRounds:   cfg.Match.MaxRounds,
			TurnLimit:   cfg.Match.TurnLimit,
		},
		logger,
	)
	if err != nil {
		logger.Fatal("creating match", zap.Error(err))
	}
	logger.Info("match ready",
		zap.String("match_id", m.ID().String()),
		zap.String("p1", fighterA.Name()),
		zap.String("p2", fighterB.Name()),
		zap.Duration("elapsed", time.Since(start)),
	)

	fmt.Fprintf(os.Stdout, "%s\n%s  vs  %s\n\n", renderer.Status(m), fighterA.Name(), fighterB.Name())

	matchCtx, cancelMatch := context.WithCancel(ctx)
	defer cancelMatch()
	lc := lifecycle.New(logger)
	lc.Add("match", &lifecycle.FuncService{
		StartFn: func() error {
			out, err := m.Run(matchCtx, func(rep *match.TurnReport) {
				fmt.Fprint(os.Stdout, renderer.Turn(m, rep))
				if !rep.MatchOver {
					fmt.Fprintln(os.Stdout, renderer.Status(m))
				}
				if !*interactive && cfg.Console.TurnDelay > 0 {
					time.Sleep(cfg.Console.TurnDelay)
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, renderer.Outcome(m, out))
			return nil
		},
		StopFn: cancelMatch,
	})

	if err := lc.Run(ctx); err != nil {
		if errors.Is(err, console.ErrInputClosed) {
			logger.Info("input closed, match abandoned")
			return
		}
		logger.Fatal("match failed", zap.Error(err))
	}
}
