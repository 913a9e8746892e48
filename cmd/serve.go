package cmd

import (
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the notedeck server",
	Long:  `Start the notedeck server to handle user and note management requests.`,
	Example: `notedeck serve --config config.yml
notedeck serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
