package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jviciana84/prod-sub002/internal/config"
	"github.com/jviciana84/prod-sub002/internal/engine"
	"github.com/jviciana84/prod-sub002/internal/notify"
	"github.com/jviciana84/prod-sub002/internal/store"
	"github.com/jviciana84/prod-sub002/pkg/logger"
)

type evaluateFlags struct {
	lot    string
	brand  string
	limit  int
	notify bool
	output string
}

func (f *evaluateFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.lot, "lot", "", "only price vehicles from this lot")
	fs.StringVar(&f.brand, "brand", "", "only price vehicles of this brand")
	fs.IntVar(&f.limit, "limit", 0, "maximum vehicles to price (default 1000)")
	fs.BoolVar(&f.notify, "notify", false, "send opportunity notifications")
	fs.StringVarP(&f.output, "output", "o", "table", "output format (table, json)")
}

// vehicleQuery returns the vehicle filter for the pass, or nil when no
// filter flag was given.
func (f *evaluateFlags) vehicleQuery() (*store.VehicleQuery, error) {
	if f.output != "table" && f.output != "json" {
		return nil, fmt.Errorf("unknown output format %q", f.output)
	}
	if f.limit < 0 {
		return nil, errors.New("--limit must not be negative")
	}
	if f.lot == "" && f.brand == "" && f.limit == 0 {
		return nil, nil
	}

	q := &store.VehicleQuery{Limit: f.limit}
	if f.lot != "" {
		q.Lot = &f.lot
	}
	if f.brand != "" {
		q.Brand = &f.brand
	}
	return q, nil
}

func evaluateCommand() *cobra.Command {
	var flags evaluateFlags

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run one pricing pass and print the results",
		Long: "Load the vehicles, retrieve comparables for each, and print the\n" +
			"valuations without starting the server. Notifications are only sent\n" +
			"with --notify.",
		Example: `  pricing-engine evaluate --brand BMW
  pricing-engine evaluate --lot 2024-10 -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := flags.vehicleQuery()
			if err != nil {
				return err
			}
			return runEvaluate(cmd.Context(), cmd.OutOrStdout(), &flags, q)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func init() {
	rootCmd.AddCommand(evaluateCommand())
}

func runEvaluate(ctx context.Context, w io.Writer, flags *evaluateFlags, q *store.VehicleQuery) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Keep stdout clean for the results.
	log := logger.NewWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg, log, appOptions{notify: flags.notify, vehicles: q})
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("closing", "error", err)
		}
	}()

	snap, err := a.engine.Recompute(ctx)
	if err != nil {
		return fmt.Errorf("running pricing pass: %w", err)
	}

	if flags.output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	return printSnapshot(w, snap)
}

func printSnapshot(w io.Writer, snap *engine.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "VEHICLE\tMODEL\tTARGET\tCOMPETITIVE\tMAX BID\tMARGIN\tTAG\tPOSITION\tCOMPS\n")
	for i := range snap.Results {
		r := &snap.Results[i]
		margin := "-"
		if r.MarginPct != nil {
			margin = fmt.Sprintf("%.1f%%", *r.MarginPct)
		}
		position := string(r.Position)
		if position == "" {
			position = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			r.VehicleID, r.Model,
			notify.FormatEUR(r.TargetSalePrice),
			notify.FormatEUR(r.CompetitivePrice),
			notify.FormatEUR(r.MaxBid),
			margin, r.Tag, position, r.CompetitorCount,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := &snap.Stats
	_, err := fmt.Fprintf(w,
		"\n%d vehicles: %d rentable, %d no rentable, %d no interesante, %d sin datos, %d opportunities (pass %s)\n",
		s.Total, s.Rentable, s.NoRentable, s.NoInteresante, s.SinDatos, s.Opportunities, snap.PassID,
	)
	return err
}
