package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"house-price-predictor/models"
	"house-price-predictor/services"
)

func newPredictCommand(a *app) *cobra.Command {
	var (
		in      models.RawInput
		details bool
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Estimate the price of one property",
		Example: `  hpp predict --bhk 3 --bathroom 2 --balcony 1 --sqft 1200 \
    --transaction resale --furnishing semi-furnished --location mumbai --ownership freehold`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := in.Validate(); err != nil {
				return err
			}

			store, src, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer src.Close()

			set, err := store.Get()
			if err != nil {
				return err
			}
			p, err := services.NewPipeline(set, a.logger)
			if err != nil {
				return err
			}

			res, err := p.Predict(in)
			if err != nil {
				return fmt.Errorf("prediction failed (%s): %w", services.KindOf(err), err)
			}
			renderResult(cmd.OutOrStdout(), in, res, details)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&in.BHK, "bhk", 3, "bedrooms (1-5)")
	f.IntVar(&in.Bathroom, "bathroom", 2, "bathrooms (1-6)")
	f.IntVar(&in.Balcony, "balcony", 1, "balconies (0-7)")
	f.Float64Var(&in.TotalSqft, "sqft", 1200, "total area in sqft (500-10000)")
	f.StringVar(&in.Transaction, "transaction", "resale", "transaction type")
	f.StringVar(&in.Furnishing, "furnishing", "semi-furnished", "furnishing status")
	f.StringVar(&in.Location, "location", "mumbai", "city")
	f.StringVar(&in.Ownership, "ownership", "freehold", "ownership type")
	f.BoolVar(&details, "details", false, "show the processed feature vector")
	return cmd
}

func renderResult(w io.Writer, in models.RawInput, res *models.PredictionResult, details bool) {
	fmt.Fprintf(w, "Estimated property value: ₹%s\n", humanize.FormatFloat("#,###.##", res.Price))
	fmt.Fprintf(w, "For a %d BHK in %s\n", in.BHK, titleCase(in.Location))

	if !details {
		return
	}
	fmt.Fprintf(w, "\nProcessed input features (artifact version %s):\n", res.ArtifactVersion)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  feature\tvalue\tscaled")
	enc, scaled := res.Diagnostics.Encoded, res.Diagnostics.Scaled
	for i, name := range enc.Names {
		fmt.Fprintf(tw, "  %s\t%g\t%.4f\n", name, enc.Values[i], scaled.Values[i])
	}
	tw.Flush()
	fmt.Fprintf(w, "Log prediction: %.2f\n", res.LogPrice)
}

func titleCase(s string) string {
	return cases.Title(language.Und).String(strings.Join(strings.Fields(s), " "))
}
