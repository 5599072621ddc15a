package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"house-price-predictor/services"
	"house-price-predictor/storage"
)

func newBatchCommand(a *app) *cobra.Command {
	var inPath, outPath string
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Estimate prices for every row of a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inPath == "" || outPath == "" {
				return errors.New("--in and --out are required")
			}

			reader, closer, err := storage.OpenCSVReader(inPath)
			if err != nil {
				return err
			}
			inputs, err := reader.ReadAll()
			closer.Close()
			if err != nil {
				return err
			}
			a.logger.Info("[batch] Read %d rows from %s", len(inputs), inPath)

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

			rows := services.NewBatchScorer(p, a.cfg.BatchConcurrency, a.cfg.BatchRateLimitMs, a.logger).Score(inputs)

			writer, err := storage.NewCSVWriter(outPath, services.KindOf)
			if err != nil {
				return err
			}
			if err := writer.Write(rows); err != nil {
				writer.Close()
				return err
			}
			if err := writer.Close(); err != nil {
				return err
			}
			a.logger.Info("[batch] Predictions saved to %s", outPath)

			summary := services.NewSummaryService(a.logger)
			summary.Print(summary.Generate(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "input CSV (bhk,bathroom,balcony,total_sqft,transaction,furnishing,location,ownership)")
	cmd.Flags().StringVar(&outPath, "out", "./output/predictions.csv", "output CSV")
	return cmd
}
