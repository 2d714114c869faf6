package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiKey       string
	bearerToken  string
	outputFile   string
	settingsPath string
	keywordsPath string
	promptPath   string
	schemaPath   string
	maxPosts     int
	debugMode    bool
)

var rootCmd = &cobra.Command{
	Use:   "controversy-analyzer <username>",
	Short: "Analyze a Twitter/X profile for controversial posts",
	Long: `Fetches a user's recent posts, filters them against a fixed list of
controversial-topic keywords, and asks an AI model to judge each match.
Results are printed to the console and written to a JSON file.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]

		// Get API credentials
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			log.Fatal("API key required: use --api-key flag or ANTHROPIC_API_KEY environment variable")
		}
		if bearerToken == "" {
			bearerToken = os.Getenv("X_BEARER_TOKEN")
		}
		if bearerToken == "" {
			log.Fatal("Bearer token required: use --bearer-token flag or X_BEARER_TOKEN environment variable")
		}

		if debugMode {
			SetDebugMode(true)
		}

		// Build config overrides
		overrides := &ConfigOverrides{}
		if settingsPath != "" {
			overrides.SettingsPath = &settingsPath
		}
		if keywordsPath != "" {
			overrides.KeywordsPath = &keywordsPath
		}
		if promptPath != "" {
			overrides.PromptPath = &promptPath
		}
		if schemaPath != "" {
			overrides.SchemaPath = &schemaPath
		}
		if maxPosts > 0 {
			overrides.MaxPosts = &maxPosts
		}

		analyzer, err := NewProfileAnalyzer(bearerToken, apiKey, overrides)
		if err != nil {
			log.Fatalf("Failed to create analyzer: %v", err)
		}

		report, err := analyzer.Analyze(username)
		if err != nil {
			log.Fatalf("Analysis failed: %v", err)
		}

		PrintReport(os.Stdout, report)

		path := outputFile
		if path == "" {
			path = analyzer.settings.OutputFile
		}
		if err := SaveReport(path, report); err != nil {
			log.Fatalf("Saving report failed: %v", err)
		}
		log.Printf("Results saved to: %s", path)
	},
}

func init() {
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "Anthropic API key")
	rootCmd.Flags().StringVar(&bearerToken, "bearer-token", "", "Twitter/X API bearer token")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output JSON file path")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "Path to custom settings file")
	rootCmd.Flags().StringVar(&keywordsPath, "keywords", "", "Path to custom keywords file")
	rootCmd.Flags().StringVar(&promptPath, "prompt", "", "Path to custom classifier prompt file")
	rootCmd.Flags().StringVar(&schemaPath, "schema", "", "Path to custom classifier output schema file")
	rootCmd.Flags().IntVar(&maxPosts, "max-posts", 0, "Maximum number of posts to fetch (overrides settings)")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
