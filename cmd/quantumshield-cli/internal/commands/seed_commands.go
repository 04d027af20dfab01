package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/app"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/infrastructure/persistence"
)

// SeedCmd mirrors the in-memory algorithm catalog into the configured database
func SeedCmd(cmd *cobra.Command, _ []string) {
	loggerInstance, err := setupLogger()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		loggerInstance.Error("failed to load config: ", err)
		return
	}

	db, err := openDatabase(cfg)
	if err != nil {
		loggerInstance.Error("failed to open database: ", err)
		return
	}
	defer func() {
		if err := persistence.CloseDB(db); err != nil {
			loggerInstance.Warn("failed to close database: ", err)
		}
	}()

	catalog, err := app.NewAlgorithmCatalog(loggerInstance)
	if err != nil {
		loggerInstance.Error("failed to create algorithm catalog: ", err)
		return
	}

	mirror, err := persistence.NewGormAlgorithmMirror(db, loggerInstance)
	if err != nil {
		loggerInstance.Error("failed to create algorithm mirror: ", err)
		return
	}

	if err := mirror.Seed(cmd.Context(), catalog); err != nil {
		loggerInstance.Error("failed to seed algorithm mirror: ", err)
		return
	}

	fmt.Println("Algorithm catalog mirrored to the database")
}

// InitSeedCommands registers the seed command.
func InitSeedCommands(rootCmd *cobra.Command) error {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Migrate the schema and mirror the algorithm catalog into the database",
		Run:   SeedCmd,
	}
	seedCmd.Flags().String("config", "", "Path to the YAML configuration file")

	rootCmd.AddCommand(seedCmd)
	return nil
}
