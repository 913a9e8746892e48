package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/notedeck/config"
	"github.com/jon4hz/notedeck/database"
	"github.com/spf13/cobra"
)

var dbStatsCmd = &cobra.Command{
	Use:   "db-stats",
	Short: "Show database statistics",
	Long:  `Display counts of users and notes stored in the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := database.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint:errcheck

		users, err := db.CountUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		notes, err := db.CountNotes(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count notes: %w", err)
		}
		completed, err := db.CountCompletedNotes(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count completed notes: %w", err)
		}

		fmt.Println("Database Statistics:")
		fmt.Printf("Users: %d\n", users)
		fmt.Printf("Notes: %d\n", notes)
		fmt.Printf("Completed Notes: %d\n", completed)
		if notes > 0 {
			fmt.Printf("Completion Rate: %.1f%%\n", float64(completed)/float64(notes)*100)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbStatsCmd)
}
