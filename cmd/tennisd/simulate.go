package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courtpredict/tennis-core/internal/montecarlo"
	"github.com/courtpredict/tennis-core/pkg/config"
	"github.com/courtpredict/tennis-core/pkg/models"
)

// playerFlags collects one side's identity and serve stats. Detailed
// stats win over the single probability; a bare name is resolved against
// the pool.
type playerFlags struct {
	name           string
	firstServeIn   float64
	firstServeWin  float64
	secondServeWin float64
	serveWin       float64
}

func (f playerFlags) profile(pool *config.Pool) (models.ServeProfile, error) {
	if f.name == "" {
		return nil, fmt.Errorf("player name is required")
	}
	if f.firstServeIn > 0 {
		return models.NewPlayer(f.name, f.firstServeIn, f.firstServeWin, f.secondServeWin), nil
	}
	if f.serveWin > 0 {
		return models.PlayerSimple{Name: f.name, ServeWinPct: f.serveWin}, nil
	}
	if pool != nil {
		if rec, ok := pool.Find(f.name); ok {
			return rec.Profile(), nil
		}
	}
	return nil, fmt.Errorf("player %s: no serve stats given and not found in pool", f.name)
}

func registerPlayerFlags(cmd *cobra.Command, prefix string, f *playerFlags) {
	cmd.Flags().StringVar(&f.name, prefix, "", "player name")
	cmd.Flags().Float64Var(&f.firstServeIn, prefix+"-first-serve-in", 0, "first serve in probability")
	cmd.Flags().Float64Var(&f.firstServeWin, prefix+"-first-serve-win", 0, "first serve point win probability")
	cmd.Flags().Float64Var(&f.secondServeWin, prefix+"-second-serve-win", 0, "second serve point win probability")
	cmd.Flags().Float64Var(&f.serveWin, prefix+"-serve-win", 0, "overall serve point win probability")
}

func newSimulateCmd() *cobra.Command {
	var (
		p1, p2          playerFlags
		runs            int
		workers         int
		seed            int64
		setsToWin       int
		randomizeServer bool
		player1Serves   bool
		finalSetTB10    bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a batch of match simulations and print the aggregate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			setupLogger(cfg)

			pool, err := loadPool(cfg)
			if err != nil {
				return err
			}

			prof1, err := p1.profile(pool)
			if err != nil {
				return err
			}
			prof2, err := p2.profile(pool)
			if err != nil {
				return err
			}

			if runs == 0 {
				runs = cfg.Simulation.Runs
			}
			if setsToWin == 0 {
				setsToWin = cfg.Simulation.SetsToWin
			}
			if workers == 0 {
				workers = cfg.Simulation.Workers
			}

			runner := montecarlo.NewRunner(workers)
			runner.SetRandomizeServer(randomizeServer)

			batch, err := runner.Run(context.Background(), models.MatchConfig{
				Player1:              prof1,
				Player2:              prof2,
				SetsToWin:            setsToWin,
				Player1Serves:        player1Serves,
				FinalSetTiebreakTo10: finalSetTB10,
			}, runs, seed)
			if err != nil {
				return err
			}
			return printJSON(batch)
		},
	}

	registerPlayerFlags(cmd, "player1", &p1)
	registerPlayerFlags(cmd, "player2", &p2)
	cmd.Flags().IntVar(&runs, "runs", 0, "number of simulations (default from config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (default: all CPUs)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks a time-based seed)")
	cmd.Flags().IntVar(&setsToWin, "sets-to-win", 0, "sets needed to win the match")
	cmd.Flags().BoolVar(&randomizeServer, "randomize-server", true, "randomize the opening server each simulation")
	cmd.Flags().BoolVar(&player1Serves, "player1-serves", true, "player1 serves first when not randomizing")
	cmd.Flags().BoolVar(&finalSetTB10, "final-set-tiebreak-10", false, "play the deciding set tiebreak to 10 points")
	return cmd
}
