package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/dewansh3255/SPARK/internal/config"
	"github.com/dewansh3255/SPARK/internal/jobstore"
	"github.com/dewansh3255/SPARK/internal/profilestore"
	"github.com/dewansh3255/SPARK/internal/seed"
)

var (
	seedProfiles int
	seedJobs     int
	seedValue    int64
)

// Seeding never touches the model, so it works without an API key.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill both stores with synthetic profiles and job postings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		profiles, err := profilestore.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("opening profile store: %w", err)
		}
		defer profiles.Close()

		jobs, err := jobstore.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("opening job store: %w", err)
		}
		defer jobs.Close()

		rng := rand.New(rand.NewSource(seedValue))
		if err := seed.Run(cmd.Context(), profiles, jobs, seedProfiles, seedJobs, rng); err != nil {
			return err
		}

		printSuccess("Seeded %d profiles and %d job postings", seedProfiles, seedJobs)
		printStatus("Data dir", "%s", cfg.DataDir)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedProfiles, "profiles", 200, "number of profiles to generate")
	seedCmd.Flags().IntVar(&seedJobs, "jobs", 200, "number of job postings to generate")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 1, "random seed for reproducible corpora")
}
