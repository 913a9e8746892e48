package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/jon4hz/notedeck/config"
	"github.com/jon4hz/notedeck/database"
	"github.com/spf13/cobra"
)

var resetCmdFlags struct {
	Yes bool
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all users and notes from the database",
	Long:  `This command removes every user and note record. It is intended for development and test environments.`,
	Run:   reset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetCmdFlags.Yes, "yes", false, "Skip the confirmation and reset immediately")

	rootCmd.AddCommand(resetCmd)
}

func reset(cmd *cobra.Command, _ []string) {
	if !resetCmdFlags.Yes {
		log.Fatal("refusing to reset without --yes")
	}

	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint:errcheck

	log.Info("deleting all notes and users...")

	if err := db.DeleteAllNotes(cmd.Context()); err != nil {
		log.Fatalf("failed to delete notes: %v", err)
	}
	if err := db.DeleteAllUsers(cmd.Context()); err != nil {
		log.Fatalf("failed to delete users: %v", err)
	}

	log.Info("database reset complete")
}
