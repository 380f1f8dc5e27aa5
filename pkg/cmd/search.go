package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/session"
	"github.com/spf13/cobra"
)

// searchFlags maps flag names to filter fields.
var searchFlags = []struct {
	flag  string
	field string
	usage string
}{
	{"query", dal.FieldSearchQuery, "text matched against brand and model"},
	{"brand", dal.FieldBrand, "exact brand"},
	{"min-price", dal.FieldMinPrice, "minimum price, inclusive"},
	{"max-price", dal.FieldMaxPrice, "maximum price, inclusive"},
	{"fuel", dal.FieldFuelType, "fuel type, e.g. Petrol, Diesel, Electric, Hybrid"},
	{"seats", dal.FieldSeatingCapacity, "exact seating capacity"},
	{"sort", dal.FieldSortBy, "price-low-high or price-high-low"},
}

func newSearchCmd() *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   SearchCmdName,
		Short: SearchCmdShort,
		Args:  cobra.NoArgs,
		RunE:  searchCmdFunc,
	}
	fs := searchCmd.Flags()
	for _, f := range searchFlags {
		fs.String(f.flag, "", f.usage)
	}
	fs.Int("page-number", dal.FirstPage, "page to print")
	fs.Bool("json", false, "print JSON instead of a table")
	return searchCmd
}

func searchCmdFunc(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	defer log.Sync()

	var spec dal.FilterSpec
	for _, f := range searchFlags {
		value, _ := cmd.Flags().GetString(f.flag)
		if err := spec.Set(f.field, value); err != nil {
			return fmt.Errorf("--%s: %w", f.flag, err)
		}
	}
	pageNumber, _ := cmd.Flags().GetInt("page-number")
	asJSON, _ := cmd.Flags().GetBool("json")

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

	s := session.New(loader, wl, cfg.Page.Size)
	s.SetFilters(spec)
	s.SetPage(pageNumber)
	view := s.View()

	out := cmd.OutOrStdout()
	if asJSON {
		resp := dal.CarResponse{
			Cars:       view.Cars,
			Page:       view.Page,
			PageSize:   view.PageSize,
			TotalPages: view.TotalPages,
			TotalCars:  view.TotalCars,
			Wishlisted: []dal.CarID{},
		}
		for _, c := range view.Cars {
			if view.Saved[c.ID] {
				resp.Wishlisted = append(resp.Wishlisted, c.ID)
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	renderView(out, view)
	return nil
}

// renderView prints a page of cars as a table followed by the pager line.
func renderView(out io.Writer, view session.View) {
	if len(view.Cars) == 0 {
		fmt.Fprintln(out, "No cars found matching your criteria")
	} else {
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCAR\tPRICE\tYEAR\tFUEL\tSEATS\tMILEAGE\tSAVED")
		for _, c := range view.Cars {
			saved := ""
			if view.Saved[c.ID] {
				saved = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t$%.0f\t%d\t%s\t%d\t%.0f km\t%s\n",
				c.ID, c.Title(), c.Price, c.Year, c.FuelType, c.SeatingCapacity, c.Mileage, saved)
		}
		tw.Flush()
	}
	fmt.Fprintf(out, "page %d of %d, %d cars\n", view.Page, view.TotalPages, view.TotalCars)
}

func renderWishlist(out io.Writer, cars []dal.Car) {
	fmt.Fprintf(out, "Wishlist (%d)\n", len(cars))
	if len(cars) == 0 {
		fmt.Fprintln(out, "Your wishlist is empty")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, c := range cars {
		fmt.Fprintf(tw, "%s\t%s\t$%.0f\t%s\n", c.ID, c.Title(), c.Price, c.FuelType)
	}
	tw.Flush()
}
