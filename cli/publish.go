package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"house-price-predictor/storage"
)

func newPublishCommand(a *app) *cobra.Command {
	var dir, version string
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload an artifact directory to PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = a.cfg.ArtifactDir
			}
			ctx := cmd.Context()

			// Validate locally first so a broken set never reaches the database.
			local, err := storage.NewFileSource(dir)
			if err != nil {
				return err
			}
			set, err := storage.NewArtifactStore(local, storage.StoreOptions{
				ManifestName: a.cfg.ArtifactManifest,
				StrictSchema: a.cfg.StrictSchema,
			}, a.logger).Get()
			if err != nil {
				return err
			}
			if version == "" {
				version = set.Version()
			}
			if version == "" {
				return errors.New("manifest has no version; pass --version")
			}

			pg, err := storage.NewPostgresSource(ctx, a.cfg.DSN(), version, a.cfg.ArtifactManifest, a.retry())
			if err != nil {
				return err
			}
			defer pg.Close()

			names, err := pg.Publish(ctx, version, dir)
			if err != nil {
				return err
			}
			a.logger.Info("[publish] Version %q: %s", version, strings.Join(names, ", "))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "artifact directory (default ARTIFACT_DIR)")
	cmd.Flags().StringVar(&version, "version", "", "version label (default: manifest version)")
	return cmd
}
