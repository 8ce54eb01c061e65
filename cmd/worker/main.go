// Command worker runs the contest scheduler outside the API process.
//
// Usage:
//
//	worker run
//	worker run-once
//	worker settle <match-id>
//	worker score <match-id>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/fantasy-cricket/internal/app"
	"github.com/riskibarqy/fantasy-cricket/internal/config"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

func main() {
	root := &cobra.Command{
		Use:           "worker",
		Short:         "Fantasy cricket background jobs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(runCmd())
	root.AddCommand(runOnceCmd())
	root.AddCommand(settleCmd())
	root.AddCommand(scoreCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the contest scheduler until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(func(ctx context.Context, c *app.Container, logger *logging.Logger) error {
				sched, err := c.NewScheduler()
				if err != nil {
					return fmt.Errorf("build scheduler: %w", err)
				}
				sched.Start()

				<-ctx.Done()
				logger.Info("shutdown signal received")
				return sched.Shutdown()
			})
		},
	}
}

func runOnceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run-once",
		Short: "Stock upcoming contests and settle finished matches once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(func(ctx context.Context, c *app.Container, logger *logging.Logger) error {
				sched, err := c.NewScheduler()
				if err != nil {
					return fmt.Errorf("build scheduler: %w", err)
				}
				defer func() { _ = sched.Shutdown() }()

				start := time.Now()
				if err := sched.RunOnce(ctx); err != nil {
					return err
				}
				logger.Info("run-once finished", "duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}

func settleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settle <match-id>",
		Short: "Score a match and settle every contest on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(func(ctx context.Context, c *app.Container, logger *logging.Logger) error {
				summary, err := c.Results.SettleMatch(ctx, args[0])
				if err != nil {
					return err
				}
				for _, item := range summary.Contests {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tparticipants=%d\twinners=%d\t%s\n",
						item.ContestID, item.Status, item.Participants, item.Winners, item.Message)
				}
				logger.Info("match settled",
					"match_id", summary.MatchID,
					"succeeded", summary.Succeeded,
					"failed", summary.Failed,
				)
				if summary.Failed > 0 {
					return fmt.Errorf("%d contest(s) failed to settle", summary.Failed)
				}
				return nil
			})
		},
	}
}

func scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <match-id>",
		Short: "Recompute player points for a match without settling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(func(ctx context.Context, c *app.Container, logger *logging.Logger) error {
				summary, err := c.Scoring.ScoreMatch(ctx, args[0])
				if err != nil {
					return err
				}
				logger.Info("match scored",
					"match_id", args[0],
					"players", summary.Players,
					"events", summary.Events,
					"unresolved", summary.Unresolved,
					"rules_version", summary.RulesVersion,
				)
				return nil
			})
		},
	}
}

func withContainer(fn func(ctx context.Context, c *app.Container, logger *logging.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rt, err := app.StartRuntime(cfg, "worker")
	if err != nil {
		return err
	}
	logger := rt.Logger.Named("worker")
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = rt.Shutdown(shutdownCtx)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() { _ = c.Close() }()

	return fn(ctx, c, logger)
}
