package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"docsearch/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docsearch",
	Short: "Keyword retrieval over a local document corpus",
	Long: `docsearch indexes a local corpus of categorized documents (invoices,
contracts, support tickets, knowledge base) and retrieves the chunks most
relevant to a query, for forwarding to an LLM prompt.

Example usage:
  docsearch index -d ./data               # Load and index the corpus
  docsearch query -q "total due" -c invoices`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level, lerr := zerolog.ParseLevel(cfg.Logging.Level)
		if lerr != nil {
			level = zerolog.InfoLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().Timestamp().Logger()

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docsearch.yaml)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetLogger() zerolog.Logger {
	return logger
}
