package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/logger"
	"github.com/feral-file/ff-ownership/internal/store"
)

func (c *cli) newAutoTransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auto-transfer",
		Short: "Reassign long-unclaimed assets to their best claimant",
	}

	var (
		assetID string
		dryRun  bool
		limit   int
	)
	run := &cobra.Command{
		Use:   "run",
		Short: "Run one auto-transfer pass, or resolve a single asset with --asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch {
			case dryRun:
				candidates, err := c.rt.engine.Candidates(ctx, limit)
				if err != nil {
					return err
				}
				return c.print(map[string]any{"candidates": candidates})

			case assetID != "":
				outcome, err := c.rt.engine.ProcessAsset(ctx, assetID)
				if err != nil {
					return err
				}
				return c.print(outcome)

			default:
				summary, err := c.rt.engine.Run(ctx)
				if err != nil {
					return err
				}
				logger.InfoCtx(ctx, "Auto-transfer pass finished", zap.Int("transferred", summary.Transferred))
				return c.print(summary)
			}
		},
	}
	run.Flags().StringVar(&assetID, "asset", "", "Resolve only this asset")
	run.Flags().BoolVar(&dryRun, "dry-run", false, "List the candidates without transferring")
	run.Flags().IntVar(&limit, "limit", 100, "Maximum candidates listed with --dry-run")
	run.MarkFlagsMutuallyExclusive("asset", "dry-run")

	cmd.AddCommand(run)
	return cmd
}

func (c *cli) newOwnershipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ownership",
		Short: "Inspect ownership records",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get ASSET_ID",
		Short: "Show the ownership record of an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := c.rt.services.Ownership.GetOwnership(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(record)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "history ASSET_ID",
		Short: "Show the previous owners of an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := c.rt.services.Ownership.GetOwnershipHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(history)
		},
	})

	return cmd
}

func (c *cli) newContributorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contributors",
		Short: "Inspect contribution scores",
	}

	var limit int
	top := &cobra.Command{
		Use:   "top ASSET_ID",
		Short: "Rank the contributors of an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ranking, err := c.rt.services.Ledger.GetTopContributors(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return c.print(ranking)
		},
	}
	top.Flags().IntVar(&limit, "limit", 10, "Number of contributors to show")

	cmd.AddCommand(top)
	return cmd
}

func (c *cli) newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.rt.db == nil {
				return errors.New("migrate needs a database connection")
			}
			if err := store.Migrate(cmd.Context(), c.rt.db); err != nil {
				return err
			}
			logger.InfoCtx(cmd.Context(), "Schema migrated")
			return c.print(map[string]string{"status": "migrated"})
		},
	}
}
