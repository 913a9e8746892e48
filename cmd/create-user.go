package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/jon4hz/notedeck/config"
	"github.com/jon4hz/notedeck/database"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var createUserCmdFlags struct {
	Username string
	Password string
	Roles    []string
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a user account",
	Long:  `Create a user account directly in the database, bypassing the HTTP API. Useful for bootstrapping the first admin account.`,
	Example: `notedeck create-user --username alice --password secret
notedeck create-user --username bob --password secret --roles Employee,Admin`,
	Run: createUser,
}

func init() {
	createUserCmd.Flags().StringVar(&createUserCmdFlags.Username, "username", "", "Username for the new account")
	createUserCmd.Flags().StringVar(&createUserCmdFlags.Password, "password", "", "Password for the new account")
	createUserCmd.Flags().StringSliceVar(&createUserCmdFlags.Roles, "roles", nil, "Roles for the new account (default: Employee)")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(createUserCmd)
}

func createUser(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint:errcheck

	ctx := cmd.Context()

	if _, err := db.GetUserByUsername(ctx, createUserCmdFlags.Username); err == nil {
		log.Fatalf("user %q already exists", createUserCmdFlags.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(createUserCmdFlags.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	roles := createUserCmdFlags.Roles
	if len(roles) == 0 {
		roles = database.DefaultRoles()
	}

	user := &database.User{
		Username: createUserCmdFlags.Username,
		Password: string(hash),
		Roles:    roles,
		Active:   true,
	}
	if err := db.CreateUser(ctx, user); err != nil {
		log.Fatalf("failed to create user: %v", err)
	}

	log.Info("user created", "username", user.Username, "id", user.ID)
}
