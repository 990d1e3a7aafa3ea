package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dewansh3255/SPARK/internal/config"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one question and print the answer",
	Long: `Ask one question and print the answer.

Examples:
  spark ask "Which jobs is Jane Doe eligible for?"
  spark ask "Find backend engineers in Pune who know Go and Docker"
  spark ask "Can we hire a Data Scientist internally at Innovate Inc.?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.RequireGeminiKey(); err != nil {
			return err
		}

		log, err := newLogger(cfg)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer log.Sync()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		nav, closeStores, err := buildNavigator(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeStores()

		results := nav.ExecuteQuery(ctx, strings.Join(args, " "))
		for i, res := range results {
			if i > 0 {
				fmt.Println()
			}
			printResult(res)
		}
		return nil
	},
}
