package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/zatekoja/clinicdirectory/internal/adapters/database"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
	"github.com/zatekoja/clinicdirectory/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/clinicdirectory/internal/infrastructure/observability"
	"github.com/zatekoja/clinicdirectory/pkg/config"
)

var (
	promoteEmail string
	demoteEmail  string
	skipSchema   bool
	seed         bool
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the clinic directory schema",
	Long: "migrate creates the clinic directory tables when missing and can grant or revoke " +
		"administrator rights, which the API never does on its own.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()
		return run(ctx)
	},
}

func init() {
	rootCmd.Flags().StringVar(&promoteEmail, "promote", "", "grant administrator rights to the user with this email")
	rootCmd.Flags().StringVar(&demoteEmail, "demote", "", "revoke administrator rights from the user with this email")
	rootCmd.Flags().BoolVar(&skipSchema, "skip-schema", false, "only change administrator rights")
	rootCmd.Flags().BoolVar(&seed, "seed", false, "insert demo clinics when the directory is empty")
	rootCmd.MarkFlagsMutuallyExclusive("promote", "demote")
}

func run(ctx context.Context) error {
	dbConfig := config.LoadDatabase()
	if !dbConfig.Configured() {
		return errors.New("database is not configured: set DATABASE_URL or DB_HOST")
	}

	client, err := postgres.NewClient(&dbConfig)
	if err != nil {
		return err
	}
	defer client.Close()

	if !skipSchema {
		if err := client.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		log.Info().Msg("Schema applied")
	}

	store := database.NewStore(client, nil)

	if seed {
		if err := seedDemoClinics(ctx, store); err != nil {
			return fmt.Errorf("failed to seed clinics: %w", err)
		}
	}

	email, isAdmin := strings.TrimSpace(promoteEmail), true
	if email == "" {
		email, isAdmin = strings.TrimSpace(demoteEmail), false
	}
	if email == "" {
		return nil
	}

	var affected int64
	err = store.WithinTx(ctx, func(tx repositories.Tx) error {
		var err error
		affected, err = tx.Users().SetAdmin(ctx, email, isAdmin)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update administrator rights: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no user with email %q", email)
	}

	log.Info().Str("email", email).Bool("is_admin", isAdmin).Msg("Administrator rights updated")
	return nil
}

func main() {
	_ = godotenv.Load()
	observability.InitLogger("clinic-directory-migrate", os.Getenv("APP_ENV"))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
