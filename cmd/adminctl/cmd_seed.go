package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/alexmorgan-dev/portfolio-api/internal/content"
	mongodb "github.com/alexmorgan-dev/portfolio-api/internal/infrastructure/db/mongo"
	"github.com/alexmorgan-dev/portfolio-api/internal/pkg/config"
)

func newSeedProjectsCmd() *cobra.Command {
	var uri, database string

	cmd := &cobra.Command{
		Use:   "seed-projects",
		Short: "Insert the bundled project list into MongoDB",
		Long: `Insert the bundled project list into the projects collection.

Connection settings default to MONGO_URI and MONGO_DB; flags override them.
Projects are matched by name: names already present are skipped and
existing documents are left untouched, so the command is safe to rerun.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var mc config.MongoConfig
			if err := envconfig.Process(ctx, &mc); err != nil {
				return fmt.Errorf("load mongo config: %w", err)
			}
			if uri != "" {
				mc.URI = uri
			}
			if database != "" {
				mc.Database = database
			}
			if mc.URI == "" {
				return errors.New("MONGO_URI or --uri is required")
			}

			projects, err := content.StaticProjects()
			if err != nil {
				return err
			}

			client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: mc.URI, Database: mc.Database})
			if err != nil {
				return err
			}
			defer client.Disconnect(context.Background())

			repo := mongodb.NewProjectRepository(db)
			if err := repo.EnsureIndexes(ctx); err != nil {
				return err
			}
			n, err := repo.SeedByName(ctx, projects)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d projects into %s.projects (%d already present)\n",
				n, mc.Database, len(projects)-n)
			return nil
		},
	}
	cmd.Flags().StringVar(&uri, "uri", "", "MongoDB connection string (default $MONGO_URI)")
	cmd.Flags().StringVar(&database, "db", "", "database name (default $MONGO_DB)")
	return cmd
}
