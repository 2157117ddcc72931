package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KokaKiwi/markovgen/pkg/markov"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <corpus-file>",
	Short: "Feed a corpus file and print generated text",
	Long: `Reads the corpus file line by line, feeds every whitespace-delimited
word into the model, and prints one pseudo-random walk over the observed
transitions to stdout. Logs go to stderr so the output stays pipeable.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGenerate(cmd, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runGenerate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	config, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var logLevel slog.Level
	switch strings.ToLower(config.LogLevel) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	storeName, _ := cmd.Flags().GetString("store")
	if storeName == "" {
		storeName = config.Store
	}

	store, cleanup, err := openStore(config, storeName)
	if err != nil {
		return err
	}
	defer cleanup()

	g := markov.New(store, markov.WithLogger(logger))

	ctx := cmd.Context()
	if err := g.FeedFromFile(ctx, args[0]); err != nil {
		return err
	}
	logger.Info("Corpus loaded", "file", args[0], "store", storeName, "corpus_words", g.WordCount())

	length, _ := cmd.Flags().GetInt("words")
	text, err := g.Generate(ctx, length)
	if err != nil {
		return err
	}

	fmt.Println(text)
	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Make running with a bare corpus file equivalent to 'generate'.
	rootCmd.Run = generateCmd.Run
	rootCmd.Args = generateCmd.Args
}
