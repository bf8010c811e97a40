// Package cmd implements the CLI commands.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	// Version info set by the main package.
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main to record build metadata.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

var rootCmd = &cobra.Command{
	Use:   "stocknews",
	Short: "Búsqueda de noticias financieras por ticker",
	Long: `stocknews busca las noticias financieras más relevantes de una acción
usando la API de búsqueda de Perplexity y las devuelve en un esquema estricto.

Use los subcomandos para operaciones concretas.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(loadDotEnv)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.yaml, then $HOME/.config/stocknews/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
}

// loadDotEnv loads a local .env file when present, mirroring how the
// credential is provided in development. Missing files are fine.
func loadDotEnv() {
	_ = godotenv.Load()
}
