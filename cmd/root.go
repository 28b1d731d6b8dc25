package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pursuitql",
	Short: "Natural-language queries over the pursuit database",
	Long: `PursuitQL answers plain-English questions about sales pursuits by
classifying each question into a parameterized SQL query, executing it
against PostgreSQL, and returning the results with summary statistics
and chart hints.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pursuitql.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().String("provider", "", "AI provider override: openai, azure, anthropic, gemini-api")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string (or set DATABASE_URL)")

	// TODO: add error return here
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("ai.provider_override", rootCmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("database.url", rootCmd.PersistentFlags().Lookup("database-url"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A local .env is optional; missing files are fine.
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env file")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pursuitql")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if viper.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// databaseURL resolves the connection string: flag, then config, then env.
func databaseURL() string {
	if url := viper.GetString("database.url"); url != "" {
		return url
	}
	return os.Getenv("DATABASE_URL")
}
