package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/app"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/algorithms"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// AlgorithmCommandHandler encapsulates logic for inspecting the algorithm
// catalog via CLI.
type AlgorithmCommandHandler struct {
	catalog   algorithms.Catalog
	selection algorithms.SelectionService
	logger    logger.Logger
}

// NewAlgorithmCommandHandler initializes a new AlgorithmCommandHandler with
// logging, the seeded catalog and a selection service without persistence.
func NewAlgorithmCommandHandler() (*AlgorithmCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	catalog, err := app.NewAlgorithmCatalog(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create algorithm catalog: %w", err)
	}

	selection, err := app.NewSelectionService(catalog, nil, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create selection service: %w", err)
	}

	return &AlgorithmCommandHandler{
		catalog:   catalog,
		selection: selection,
		logger:    loggerInstance,
	}, nil
}

// ListAlgorithmsCmd prints every cataloged algorithm profile
func (commandHandler *AlgorithmCommandHandler) ListAlgorithmsCmd(cmd *cobra.Command, _ []string) {
	for _, profile := range commandHandler.catalog.List(cmd.Context()) {
		resistant := "classical"
		if profile.QuantumResistant {
			resistant = "quantum-resistant"
		}
		fmt.Printf("%-24s %-12s %-18s key sizes %v  quantum strength %d bits\n",
			profile.Name, profile.Type, resistant, profile.KeySizes, profile.Security.QuantumBitStrength)
	}
}

// RecommendCmd scores the catalog against requirements given as flags
func (commandHandler *AlgorithmCommandHandler) RecommendCmd(cmd *cobra.Command, _ []string) {
	purpose, err := cmd.Flags().GetString("purpose")
	if err != nil {
		commandHandler.logger.Error("invalid purpose flag: ", err)
		return
	}
	quantumResistance, err := cmd.Flags().GetBool("quantum-resistance")
	if err != nil {
		commandHandler.logger.Error("invalid quantum-resistance flag: ", err)
		return
	}
	priority, err := cmd.Flags().GetString("priority")
	if err != nil {
		commandHandler.logger.Error("invalid priority flag: ", err)
		return
	}
	top, err := cmd.Flags().GetInt("top")
	if err != nil {
		commandHandler.logger.Error("invalid top flag: ", err)
		return
	}

	recommendations, err := commandHandler.selection.Recommend(cmd.Context(), &algorithms.Requirements{
		Purpose:             purpose,
		QuantumResistance:   quantumResistance,
		PerformancePriority: algorithms.PerformancePriority(priority),
	})
	if err != nil {
		commandHandler.logger.Error("recommendation failed: ", err)
		return
	}

	if top > 0 && top < len(recommendations) {
		recommendations = recommendations[:top]
	}
	for rank, rec := range recommendations {
		fmt.Printf("%d. %-24s score %.3f\n", rank+1, rec.Profile.Name, rec.OverallScore)
		for _, reason := range rec.Reasoning {
			fmt.Printf("   - %s\n", reason)
		}
	}
}

// InitAlgorithmCommands registers the algorithm command group.
func InitAlgorithmCommands(rootCmd *cobra.Command) error {
	handler, err := NewAlgorithmCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize algorithm command handler: %w", err)
	}

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "Inspect the post-quantum algorithm catalog",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all cataloged algorithms",
		Run:   handler.ListAlgorithmsCmd,
	}

	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank algorithms against requirements",
		Run:   handler.RecommendCmd,
	}
	recommendCmd.Flags().String("purpose", "", "Key purpose: encryption, signing or key-exchange")
	recommendCmd.Flags().Bool("quantum-resistance", true, "Require quantum resistance")
	recommendCmd.Flags().String("priority", "normal", "Performance priority: high, normal or low")
	recommendCmd.Flags().Int("top", 3, "Number of recommendations to print")

	algorithmsCmd.AddCommand(listCmd, recommendCmd)
	rootCmd.AddCommand(algorithmsCmd)
	return nil
}
