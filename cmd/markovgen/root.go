package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "markovgen",
	Short: "markovgen generates pseudo-random text from a corpus",
	Long: `markovgen trains an order-2 Markov chain on a word corpus and prints
pseudo-random text sampled from it. Run it with a corpus file directly, or
use the generate subcommand.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "markovgen.json", "Path to the JSON config file")
	rootCmd.PersistentFlags().IntP("words", "n", 30, "Maximum number of words to generate")
	rootCmd.PersistentFlags().String("store", "", "Transition store backend (memory, sqlite, redis, leveldb or lru); overrides the config file")
}
