// Command blogctl inspects the records written by the record service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hackdb/hackdb/backend/go-services/internal/blog"
	"github.com/hackdb/hackdb/backend/go-services/internal/blog/repository"
	"github.com/hackdb/hackdb/backend/go-services/internal/config"
	"github.com/hackdb/hackdb/backend/go-services/internal/database"
	"github.com/hackdb/hackdb/backend/go-services/pkg/logger"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// opener returns the repository to query and a function releasing it.
type opener func(ctx context.Context) (repository.Repository, func(), error)

func main() {
	if err := newRootCmd(openMongo).Execute(); err != nil {
		os.Exit(1)
	}
}

func openMongo(ctx context.Context) (repository.Repository, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.LogLevel)
	mgr := database.NewManager(cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout)
	if _, err := mgr.Database(ctx); err != nil {
		return nil, nil, fmt.Errorf("connect %s: %w", cfg.MongoDB.Database, err)
	}
	return repository.NewMongoRepo(mgr), func() { _ = mgr.Disconnect(context.Background()) }, nil
}

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:          "blogctl",
		Short:        "Inspect stored blog records",
		SilenceUsage: true,
	}

	var name string
	count := &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored records for a blog value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			n, err := repo.CountByBlog(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("count records: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	count.Flags().StringVar(&name, "blog", blog.DefaultBlog, "blog value to count")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Print one record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := primitive.ObjectIDFromHex(args[0])
			if err != nil {
				return fmt.Errorf("invalid record id %q: %w", args[0], err)
			}
			repo, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			rec, err := repo.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}

	root.AddCommand(count, get)
	return root
}
