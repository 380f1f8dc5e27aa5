package cmd

import (
	"fmt"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/session"
	"github.com/spf13/cobra"
)

func newWishlistCmd() *cobra.Command {
	wishlistCmd := &cobra.Command{
		Use:   WishlistCmdName,
		Short: WishlistCmdShort,
	}
	wishlistCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print saved cars",
			Args:  cobra.NoArgs,
			RunE:  wishlistListFunc,
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Save a catalog car, or remove it when already saved",
			Args:  cobra.ExactArgs(1),
			RunE:  wishlistToggleFunc,
		},
	)
	return wishlistCmd
}

func wishlistListFunc(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	defer log.Sync()

	wl, err := openWishlist(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer wl.Close()

	renderWishlist(cmd.OutOrStdout(), wl.Items())
	return nil
}

func wishlistToggleFunc(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	loader, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}
	wl, err := openWishlist(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer wl.Close()

	id := dal.CarID(args[0])
	saved, err := session.New(loader, wl, cfg.Page.Size).ToggleWishlist(ctx, id)
	if err != nil {
		return fmt.Errorf("toggle %s: %w", id, err)
	}
	if saved {
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", id)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
	}
	return nil
}
