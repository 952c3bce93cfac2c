package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the fireflies-mcp application
var rootCmd = &cobra.Command{
	Use:   "fireflies-mcp",
	Short: "MCP server for Fireflies.ai meeting transcripts",
	Long: `fireflies-mcp exposes Fireflies.ai meeting transcripts, speakers and
summaries to AI assistants over the Model Context Protocol.

It adapts the Fireflies GraphQL API into a fixed set of tools:
listing transcripts, fetching full transcript details, keyword search
and summary generation.

A Fireflies API key must be provided via the FIREFLIES_API_KEY
environment variable.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "fireflies-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
