package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courtpredict/tennis-core/internal/roster"
	"github.com/courtpredict/tennis-core/pkg/models"
	"github.com/courtpredict/tennis-core/pkg/utils"
)

func newOptimizeCmd() *cobra.Command {
	var (
		budget        int64
		teamSize      int
		strategyName  string
		seed          int64
		attempts      int
		maxIterations int
		initialTemp   float64
		coolingRate   float64
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Pick the best roster from the pool under a budget",
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
			if pool == nil {
				return fmt.Errorf("a pool file is required (--pool or config)")
			}

			if budget == 0 {
				budget = cfg.Optimizer.Budget
			}
			if teamSize == 0 {
				teamSize = cfg.Optimizer.TeamSize
			}
			if strategyName == "" {
				strategyName = cfg.Optimizer.Strategy
			}

			candidates := make([]models.Candidate, 0, len(pool.Players))
			for _, p := range pool.Players {
				if p.Cost <= 0 {
					continue
				}
				score := p.Score
				if score == 0 && p.Seed > 0 {
					score = roster.SeedScore(p.Seed)
				}
				candidates = append(candidates, models.Candidate{
					Name:  p.Name,
					Cost:  p.Cost,
					Score: score,
					Seed:  p.Seed,
				})
			}

			var strategy roster.Strategy
			switch strategyName {
			case "random":
				strategy = roster.RandomSearch{Attempts: attempts}
			case "hillclimb":
				strategy = roster.HillClimb{MaxIterations: maxIterations, SeedAttempts: attempts}
			case "annealing":
				strategy = roster.Annealing{
					InitialTemp:   initialTemp,
					CoolingRate:   coolingRate,
					MaxIterations: maxIterations,
					SeedAttempts:  attempts,
				}
			default:
				return fmt.Errorf("unknown strategy %q (must be random, hillclimb, or annealing)", strategyName)
			}

			result, err := strategy.Optimize(candidates, roster.Params{
				Budget:   budget,
				TeamSize: teamSize,
			}, utils.NewRandSource(seed))
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"strategy": strategyName,
				"roster":   result,
			})
		},
	}

	cmd.Flags().Int64Var(&budget, "budget", 0, "total cost budget (default from config)")
	cmd.Flags().IntVar(&teamSize, "team-size", 0, "roster size (default from config)")
	cmd.Flags().StringVar(&strategyName, "strategy", "", "random, hillclimb, or annealing (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks a time-based seed)")
	cmd.Flags().IntVar(&attempts, "attempts", 0, "random draws for sampling and seeding")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "iteration cap for hillclimb and annealing")
	cmd.Flags().Float64Var(&initialTemp, "initial-temp", 0, "annealing start temperature")
	cmd.Flags().Float64Var(&coolingRate, "cooling-rate", 0, "annealing geometric cooling factor")
	return cmd
}
