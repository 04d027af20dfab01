// Package main is the entry point for the quantumshield-cli application.
// It initializes the root command and registers the catalog, seed and user
// sub-commands, then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/LEVISHAWN/QUANTUMSHIELD/cmd/quantumshield-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "quantumshield-cli",
		Short: "Post-quantum cryptography management CLI tool",
		Long: `quantumshield-cli is a command-line companion for the QuantumShield API.
It inspects the post-quantum algorithm catalog, seeds the database mirror,
scores algorithms against requirements and provisions user accounts.

Database-backed commands read the same YAML configuration as the API server;
point them at it with --config or the CONFIG_PATH environment variable.`,
	}

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitAlgorithmCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize algorithm commands: %w", err)
	}

	if err := commands.InitSeedCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize seed commands: %w", err)
	}

	if err := commands.InitUserCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize user commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
