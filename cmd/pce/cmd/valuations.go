package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/jviciana84/prod-sub002/internal/api/client"
)

func recomputeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recompute",
		Short: "Run a pricing pass now",
		Long: "Prices every vehicle against fresh comparables and waits for the\n" +
			"results to commit. A pass already running is superseded.",
		Example: `  pce recompute`,
		RunE: func(_ *cobra.Command, _ []string) error {
			resp, err := newClient().Recompute(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			return printPortfolio(os.Stdout, resp)
		},
	}
}

func valuationsCmd() *cobra.Command {
	valuationsRoot := &cobra.Command{
		Use:   "valuations",
		Short: "Browse valuation results",
		Long:  "Browse the per-vehicle results of the last committed pricing pass.",
	}

	valuationsRoot.AddCommand(
		valuationsListCmd(),
		valuationsGetCmd(),
	)

	return valuationsRoot
}

func valuationsListCmd() *cobra.Command {
	var params apiclient.ListValuationsParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List valuations with optional filters",
		Example: `  # Every result
  pce valuations list

  # Profitable vehicles priced below the market
  pce valuations list --tag rentable --position competitivo

  # One model family, paginated
  pce valuations list --model "serie 3" --limit 20 --offset 20`,
		RunE: func(_ *cobra.Command, _ []string) error {
			resp, err := newClient().ListValuations(context.Background(), &params)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Results) == 0 {
				fmt.Println("No valuations found.")
				return nil
			}

			fmt.Printf("Showing %d of %d valuations (pass %s)\n\n", len(resp.Results), resp.Total, resp.PassID)
			return printValuationsTable(os.Stdout, resp.Results)
		},
	}

	cmd.Flags().StringVar(&params.Tag, "tag", "", "profit tag (rentable, no_rentable, no_interesante, sin_datos)")
	cmd.Flags().StringVar(&params.Position, "position", "", "market position (competitivo, justo, alto)")
	cmd.Flags().StringVar(&params.Model, "model", "", "model substring")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "maximum results (default 100)")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "pagination offset")

	return cmd
}

func valuationsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <vehicle-id>",
		Short: "Show one vehicle's valuation",
		Example: `  pce valuations get 4821
  pce valuations get 4821 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			r, err := newClient().GetValuation(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(r)
			}
			return printValuationDetail(os.Stdout, r)
		},
	}
}

func portfolioCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "portfolio",
		Short:   "Show portfolio statistics",
		Example: `  pce portfolio`,
		RunE: func(_ *cobra.Command, _ []string) error {
			resp, err := newClient().Portfolio(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			return printPortfolio(os.Stdout, resp)
		},
	}
}

func opportunitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "opportunities",
		Short: "Show buying opportunities",
		Long: "Show the vehicles worth acquiring, grouped by model: models we have\n" +
			"no stock of, and models we could sell below our current stock price.",
		Example: `  pce opportunities`,
		RunE: func(_ *cobra.Command, _ []string) error {
			resp, err := newClient().Opportunities(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			if len(resp.Board.NotInStock) == 0 && len(resp.Board.InStock) == 0 {
				fmt.Println("No opportunities found.")
				return nil
			}
			return printOpportunityBoard(os.Stdout, &resp.Board)
		},
	}
}
