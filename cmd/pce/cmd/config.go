package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	apiclient "github.com/jviciana84/prod-sub002/internal/api/client"
	"github.com/jviciana84/prod-sub002/pkg/pricing"
)

func configCmd() *cobra.Command {
	configRoot := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change the pricing configuration",
		Long: "Inspect and change the cost, margin and tolerance settings the\n" +
			"engine prices vehicles with. Applying a configuration recomputes\n" +
			"every valuation in the background.",
	}

	configRoot.AddCommand(
		configGetCmd(),
		configApplyCmd(),
	)

	return configRoot
}

func configGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the configuration in force",
		Example: `  pce config get
  pce config get --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := newClient().GetConfig(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cfg)
			}
			return printConfig(os.Stdout, cfg)
		},
	}
}

// configFlags holds the values of the apply flags. Only flags the user set
// are copied onto the configuration.
type configFlags struct {
	file                 string
	transport            float64
	structure            float64
	margin               float64
	undercut             float64
	yearWindow           int
	kmWindow             int
	maxKm                int
	competitiveBelow     float64
	highAbove            float64
	opportunityThreshold float64
	exclude              []string
}

func (f *configFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.file, "file", "f", "", "YAML file with the keys to change")
	fs.Float64Var(&f.transport, "transport", 0, "transport cost per vehicle")
	fs.Float64Var(&f.structure, "structure", 0, "structure cost per vehicle")
	fs.Float64Var(&f.margin, "margin", 0, "target margin percentage")
	fs.Float64Var(&f.undercut, "undercut", 0, "percentage below the market mean to price at")
	fs.IntVar(&f.yearWindow, "year-window", 0, "± registration years for comparables")
	fs.IntVar(&f.kmWindow, "km-window", 0, "± kilometres for comparables")
	fs.IntVar(&f.maxKm, "max-km", 0, "mileage above which vehicles are not interesting")
	fs.Float64Var(&f.competitiveBelow, "competitive-below", 0, "percent below market that counts as competitive")
	fs.Float64Var(&f.highAbove, "high-above", 0, "percent above market that counts as high")
	fs.Float64Var(&f.opportunityThreshold, "opportunity-threshold", 0, "minimum saving against our stock price")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "our own advertiser names, left out of the market mean")
}

// overlay returns base with the file contents and then the changed flags
// applied on top.
func (f *configFlags) overlay(base pricing.Config, fs *pflag.FlagSet) (pricing.Config, error) {
	cfg := base
	cfg.ExcludedAdvertisers = append([]string(nil), base.ExcludedAdvertisers...)

	if f.file != "" {
		data, err := os.ReadFile(f.file)
		if err != nil {
			return base, fmt.Errorf("reading %s: %w", f.file, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return base, fmt.Errorf("parsing %s: %w", f.file, err)
		}
	}

	if fs.Changed("transport") {
		cfg.Transport = f.transport
	}
	if fs.Changed("structure") {
		cfg.Structure = f.structure
	}
	if fs.Changed("margin") {
		cfg.MarginPct = f.margin
	}
	if fs.Changed("undercut") {
		cfg.UndercutPct = f.undercut
	}
	if fs.Changed("year-window") {
		cfg.YearWindow = f.yearWindow
	}
	if fs.Changed("km-window") {
		cfg.KmWindow = f.kmWindow
	}
	if fs.Changed("max-km") {
		cfg.MaxMileageKm = f.maxKm
	}
	if fs.Changed("competitive-below") {
		cfg.CompetitiveBelowPct = f.competitiveBelow
	}
	if fs.Changed("high-above") {
		cfg.HighAbovePct = f.highAbove
	}
	if fs.Changed("opportunity-threshold") {
		cfg.OpportunityThreshold = f.opportunityThreshold
	}
	if fs.Changed("exclude") {
		cfg.ExcludedAdvertisers = f.exclude
	}

	return cfg, nil
}

func configApplyCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Change the pricing configuration",
		Long: "Fetch the configuration in force, change the given keys and apply\n" +
			"the result. Keys can come from flags, from a YAML file, or both;\n" +
			"flags win over the file. The server rejects invalid values.",
		Example: `  # Raise the margin and set the fixed costs
  pce config apply --margin 6 --transport 300 --structure 200

  # Apply keys from a file
  pce config apply -f pricing.yaml

  # Replace the list of our own dealer names
  pce config apply --exclude "Quadis,Motor Munich"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			c := newClient()

			current, err := c.GetConfig(ctx)
			if err != nil {
				return err
			}

			next, err := flags.overlay(*current, cmd.Flags())
			if err != nil {
				return err
			}

			resp, err := c.ApplyConfig(ctx, &next)
			if err != nil {
				if apiclient.IsStatus(err, http.StatusUnprocessableEntity) {
					return errors.New("configuration rejected: " + err.Error())
				}
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}
			fmt.Printf("Configuration applied, %s.\n\n", resp.Status)
			return printConfig(os.Stdout, &resp.Config)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}
