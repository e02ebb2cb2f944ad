package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	apiclient "github.com/jviciana84/prod-sub002/internal/api/client"
)

func competitorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "competitors <vehicle-id>",
		Short: "Show live comparables for a vehicle",
		Long: "Search the market listings for vehicles comparable to a stored one,\n" +
			"using the configuration in force, and show the resulting prices.",
		Example: `  pce competitors 4821`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			resp, err := newClient().Competitors(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			return printCompetitors(os.Stdout, resp)
		},
	}
}

// quoteFlags holds the vehicle description for a quote.
type quoteFlags struct {
	model       string
	brand       string
	plate       string
	registered  string
	km          int
	netPrice    float64
	damage      float64
	newPrice    float64
	regime      string
	marketPrice float64
}

func (f *quoteFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.model, "model", "", "commercial model text (required)")
	fs.StringVar(&f.brand, "brand", "", "brand")
	fs.StringVar(&f.plate, "plate", "", "license plate")
	fs.StringVar(&f.registered, "registered", "", "first registration date (YYYY-MM-DD)")
	fs.IntVar(&f.km, "km", 0, "mileage in km")
	fs.Float64Var(&f.netPrice, "net-price", 0, "net acquisition price")
	fs.Float64Var(&f.damage, "damage", 0, "damage repair cost")
	fs.Float64Var(&f.newPrice, "new-price", 0, "list price when new")
	fs.StringVar(&f.regime, "regime", "", "tax regime (IVA or REBU)")
	fs.Float64Var(&f.marketPrice, "market-price", 0, "price against this market mean instead of live comparables")
}

// request builds the quote body. Numeric flags the user did not set are
// left unknown rather than zero.
func (f *quoteFlags) request(fs *pflag.FlagSet) (*apiclient.QuoteRequest, error) {
	if f.model == "" {
		return nil, errors.New("--model is required")
	}

	req := &apiclient.QuoteRequest{
		Vehicle: apiclient.QuoteVehicle{
			Model:        f.model,
			Brand:        f.brand,
			LicensePlate: f.plate,
			TaxRegime:    f.regime,
		},
	}

	if f.registered != "" {
		t, err := time.Parse(time.DateOnly, f.registered)
		if err != nil {
			return nil, fmt.Errorf("invalid --registered %q: %w", f.registered, err)
		}
		req.Vehicle.RegistrationDate = &t
	}
	if fs.Changed("km") {
		req.Vehicle.Mileage = &f.km
	}
	if fs.Changed("net-price") {
		req.Vehicle.NetSourcePrice = &f.netPrice
	}
	if fs.Changed("damage") {
		req.Vehicle.DamageCost = &f.damage
	}
	if fs.Changed("new-price") {
		req.Vehicle.NewPrice = &f.newPrice
	}
	if fs.Changed("market-price") {
		req.MarketPrice = &f.marketPrice
	}

	return req, nil
}

func quoteCmd() *cobra.Command {
	var flags quoteFlags

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a vehicle that is not in the database",
		Long: "Compute the target sale price, the maximum bid and the profit tag\n" +
			"for a vehicle described on the command line.",
		Example: `  # Against live comparables
  pce quote --model "BMW Serie 3 320d" --registered 2022-06-01 --km 40000 \
    --net-price 20000 --regime IVA

  # Against a known market price
  pce quote --model "BMW 118d" --net-price 15000 --market-price 24000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := flags.request(cmd.Flags())
			if err != nil {
				return err
			}

			q, err := newClient().Quote(context.Background(), req)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(q)
			}
			return printQuote(os.Stdout, q)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}
