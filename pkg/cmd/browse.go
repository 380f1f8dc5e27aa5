package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/catalog"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/session"
	"github.com/spf13/cobra"
)

var errQuit = errors.New("quit")

// browseFilters maps browse commands to filter fields.
var browseFilters = map[string]string{
	"search": dal.FieldSearchQuery,
	"brand":  dal.FieldBrand,
	"min":    dal.FieldMinPrice,
	"max":    dal.FieldMaxPrice,
	"fuel":   dal.FieldFuelType,
	"seats":  dal.FieldSeatingCapacity,
	"sort":   dal.FieldSortBy,
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   BrowseCmdName,
		Short: BrowseCmdShort,
		Long:  BrowseCmdLong,
		Args:  cobra.NoArgs,
		RunE:  browseCmdFunc,
	}
}

func browseCmdFunc(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	wl, err := openWishlist(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer wl.Close()

	out := cmd.OutOrStdout()
	loader := catalog.NewLoader(catalog.NewFetcher(cfg.Catalog.URL, cfg.Catalog.Timeout, log), log)
	s := session.New(loader, wl, cfg.Page.Size)

	fmt.Fprintln(out, "Loading cars...")
	s.Load(ctx)
	view := s.View()
	if view.State == catalog.Failed {
		fmt.Fprintf(out, "Error: %s\n", view.Err)
		return fmt.Errorf("%w: %s", dal.ErrCatalogUnavailable, view.Err)
	}
	renderView(out, view)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		err := runBrowseCommand(ctx, s, out, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

// runBrowseCommand applies one input line to the session and prints the
// result.
func runBrowseCommand(ctx context.Context, s *session.Session, out io.Writer, line string) error {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	if field, ok := browseFilters[name]; ok {
		if field == dal.FieldSortBy && arg == "none" {
			arg = ""
		}
		if err := s.SetFilter(field, arg); err != nil {
			return err
		}
		renderView(out, s.View())
		return nil
	}

	switch name {
	case "":
		return nil
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprintln(out, BrowseCmdLong)
	case "clear":
		s.SetFilters(dal.FilterSpec{})
		renderView(out, s.View())
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("page must be an integer: %q", arg)
		}
		s.SetPage(n)
		renderView(out, s.View())
	case "next":
		s.NextPage()
		renderView(out, s.View())
	case "prev":
		s.PrevPage()
		renderView(out, s.View())
	case "save":
		if arg == "" {
			return errors.New("save needs a car id")
		}
		saved, err := s.ToggleWishlist(ctx, dal.CarID(arg))
		if err != nil {
			return err
		}
		if saved {
			fmt.Fprintf(out, "saved %s\n", arg)
		} else {
			fmt.Fprintf(out, "removed %s\n", arg)
		}
	case "wishlist":
		renderWishlist(out, s.View().Wishlist)
	default:
		return fmt.Errorf("unknown command %q, try help", name)
	}
	return nil
}
