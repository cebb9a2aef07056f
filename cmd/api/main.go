// @title Pet Adoption API
// @version 1.0
// @description Swipe de mascotas en adopción, preferencias y matches.
// @BasePath /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

// rootCmd levanta el servidor HTTP; migrate solo aplica el esquema.
var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Pet adoption HTTP API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	Long: `Apply the embedded goose migrations for the configured store.

STORE_DRIVER=sqlite uses STORE_SQLITE_PATH, STORE_DRIVER=postgres uses STORE_DSN.
The memory driver has nothing to migrate.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Optional .env file (default: .env if present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
