package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "livegallery",
		Short: "Live updating web gallery for a folder of images",
		Long: `Livegallery serves a folder of images over HTTP as a gallery that
refreshes itself, always showing the newest image first.

Point it at a folder a camera, scanner or render job writes into and open
the page in a browser.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newServeCmd())

	return cmd
}
