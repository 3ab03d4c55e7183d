package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meltforce/fitrec/internal/app"
	"github.com/meltforce/fitrec/internal/catalog"
	"github.com/meltforce/fitrec/internal/config"
	"github.com/meltforce/fitrec/internal/storage"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Export and import the workout catalog",
	}
	cmd.AddCommand(newCatalogDumpCmd())
	cmd.AddCommand(newCatalogImportCmd())
	return cmd
}

func newCatalogDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the configured catalog as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cat, err := app.LoadCatalog(cmd.Context(), cfg, newLogger(cmd, cfg))
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				return cat.WriteYAML(cmd.OutOrStdout())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := cat.WriteYAML(f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file (stdout when empty)")
	return cmd
}

func newCatalogImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the catalog stored in SQLite or PostgreSQL",
		Long: "Reads a YAML catalog (the embedded one when --file is empty), validates it and replaces " +
			"the stored catalog in a single transaction.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cmd, cfg)

			file, _ := cmd.Flags().GetString("file")
			var src catalog.Source = catalog.EmbeddedSource{}
			if file != "" {
				src = catalog.FileSource{Path: file}
			}
			cat, err := src.LoadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			to, _ := cmd.Flags().GetString("to")
			path, _ := cmd.Flags().GetString("path")
			if path == "" {
				path = cfg.Catalog.Path
			}

			n, err := importCatalog(cmd.Context(), cfg, to, path, cat)
			if err != nil {
				return err
			}
			log.Info("catalog imported", "to", to, "workouts", n)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d workouts into %s\n", n, to)
			return nil
		},
	}
	cmd.Flags().String("file", "", "YAML catalog to import (embedded catalog when empty)")
	cmd.Flags().String("to", config.SourceSQLite, "Target store: sqlite or postgres")
	cmd.Flags().String("path", "", "SQLite database path (catalog.path from config when empty)")
	return cmd
}

func importCatalog(ctx context.Context, cfg *config.Config, to, path string, cat *catalog.Catalog) (int64, error) {
	switch to {
	case config.SourceSQLite:
		if path == "" {
			return 0, fmt.Errorf("--path or catalog.path is required for sqlite")
		}
		db, err := storage.OpenSQLite(path)
		if err != nil {
			return 0, err
		}
		defer db.Close()
		return db.ReplaceCatalog(ctx, cat)
	case config.SourcePostgres:
		dsn := cfg.Database.DSN()
		if err := storage.RunMigrations(dsn); err != nil {
			return 0, fmt.Errorf("migrations: %w", err)
		}
		db, err := storage.New(ctx, dsn)
		if err != nil {
			return 0, err
		}
		defer db.Close()
		return db.ReplaceCatalog(ctx, cat)
	default:
		return 0, fmt.Errorf("unknown target %q (want sqlite or postgres)", to)
	}
}
