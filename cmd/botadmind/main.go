package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillhaven/botadmin/internal/cli"
	"github.com/quillhaven/botadmin/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "botadmind",
		Short: "Bot admin daemon and CLI",
		Long:  "Admin panel service for the Discord bot: knowledge ingestion, configuration, memory, and status",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.ConfigCmd())
	rootCmd.AddCommand(admin.MemoryCmd())
	rootCmd.AddCommand(admin.StatusCmd())
	rootCmd.AddCommand(admin.IngestCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
