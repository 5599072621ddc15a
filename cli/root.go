package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"house-price-predictor/config"
	"house-price-predictor/storage"
	"house-price-predictor/utils"
)

// app carries what every command needs.
type app struct {
	cfg    *config.Config
	logger *utils.Logger
}

// NewRootCommand builds the hpp command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "hpp",
		Short:         "House price predictor",
		Long:          "Estimates property sale prices from structured attributes using a pre-trained regression model.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg = config.Load()
			a.logger = utils.NewLogger(a.cfg.LogLevel)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.logger.Sync()
		},
	}

	root.AddCommand(
		newServeCommand(a),
		newPredictCommand(a),
		newBatchCommand(a),
		newPublishCommand(a),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) retry() *utils.RetryConfig {
	return &utils.RetryConfig{MaxAttempts: a.cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: a.logger}
}

func (a *app) openSource(ctx context.Context) (storage.ArtifactSource, error) {
	switch a.cfg.ArtifactSource {
	case "file", "":
		src, err := storage.NewFileSource(a.cfg.ArtifactDir)
		if err != nil {
			return nil, err
		}
		return src, nil
	case "postgres":
		src, err := storage.NewPostgresSource(ctx, a.cfg.DSN(), a.cfg.ArtifactVersion, a.cfg.ArtifactManifest, a.retry())
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown ARTIFACT_SOURCE %q (want file or postgres)", a.cfg.ArtifactSource)
	}
}

// openStore returns a store over the configured source. The caller closes the source.
func (a *app) openStore(ctx context.Context) (*storage.ArtifactStore, storage.ArtifactSource, error) {
	src, err := a.openSource(ctx)
	if err != nil {
		return nil, nil, err
	}
	store := storage.NewArtifactStore(src, storage.StoreOptions{
		ManifestName: a.cfg.ArtifactManifest,
		Timeout:      a.cfg.LoadTimeout(),
		StrictSchema: a.cfg.StrictSchema,
	}, a.logger)
	return store, src, nil
}
