package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/slotwise/pkg/infrastructure/repositories/profile"
)

func newProfileCommand(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage stored warehouse profiles",
	}
	cmd.PersistentFlags().StringVar(&dir, "profiles-dir", "profiles", "Directory of stored warehouse profiles")

	importCmd := &cobra.Command{
		Use:   "import <profile.yaml>",
		Short: "Validate a profile file and store it under its warehouse id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profile.LoadFile(args[0])
			if err != nil {
				return err
			}
			if p.WarehouseID == "" {
				return fmt.Errorf("profile %s has no warehouse_id", args[0])
			}
			if err := profile.NewFileRepository(dir).SaveProfile(cmd.Context(), p); err != nil {
				return err
			}
			a.logger.Info("profile stored", zap.String("warehouse", p.WarehouseID), zap.String("dir", dir))
			fmt.Fprintf(cmd.OutOrStdout(), "Stored profile %s\n", p.WarehouseID)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored warehouse ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := profile.NewFileRepository(dir).ListWarehouses(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.AddCommand(importCmd, listCmd)
	return cmd
}
