package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/app"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/infrastructure/persistence"
)

// CreateUserCmd provisions an account directly against the database
func CreateUserCmd(cmd *cobra.Command, _ []string) {
	loggerInstance, err := setupLogger()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	username, err := cmd.Flags().GetString("username")
	if err != nil {
		loggerInstance.Error("invalid username flag: ", err)
		return
	}
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		loggerInstance.Error("invalid email flag: ", err)
		return
	}
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		loggerInstance.Error("invalid password flag: ", err)
		return
	}
	role, err := cmd.Flags().GetString("role")
	if err != nil {
		loggerInstance.Error("invalid role flag: ", err)
		return
	}
	organizationID, err := cmd.Flags().GetString("organization")
	if err != nil {
		loggerInstance.Error("invalid organization flag: ", err)
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

	userRepo, err := persistence.NewGormUserRepository(db, loggerInstance)
	if err != nil {
		loggerInstance.Error("failed to create user repository: ", err)
		return
	}

	authService, err := app.NewAuthService(userRepo, cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, loggerInstance)
	if err != nil {
		loggerInstance.Error("failed to create auth service: ", err)
		return
	}

	user, err := authService.Register(cmd.Context(), username, email, password, users.Role(role), organizationID)
	if err != nil {
		loggerInstance.Error("failed to create user: ", err)
		return
	}

	fmt.Printf("Created user %s (%s) with role %s and clearance level %d\n",
		user.Username, user.ID, user.Role, user.ClearanceLevel)
}

// InitUserCommands registers the user command group.
func InitUserCommands(rootCmd *cobra.Command) error {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		Run:   CreateUserCmd,
	}
	createCmd.Flags().String("username", "", "Username for the new account")
	createCmd.Flags().String("email", "", "Email address for the new account")
	createCmd.Flags().String("password", "", "Password (12+ characters with letters and digits)")
	createCmd.Flags().String("role", "user", "Role: admin, analyst or user")
	createCmd.Flags().String("organization", "", "Organization ID the account belongs to")
	createCmd.Flags().String("config", "", "Path to the YAML configuration file")
	_ = createCmd.MarkFlagRequired("username")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")

	userCmd.AddCommand(createCmd)
	rootCmd.AddCommand(userCmd)
	return nil
}
