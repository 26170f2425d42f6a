package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wordwise/internal"
	"codeberg.org/snonux/wordwise/internal/translation"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordwise [text...]",
		Short: "Word by word text translator",
		Long: `wordwise translates text one word at a time.

Every whitespace separated word is looked up separately, at most ten
lookups run at the same time, and the translations are joined with
single spaces in the original order.

Examples:
  wordwise --from en --to it hello world   # Translate the arguments
  echo "good morning" | wordwise --to fr   # Translate piped input
  wordwise --provider openai -t de thank you`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.wordwise.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&flags.LogPretty, "log-pretty", false, "Human readable log output instead of JSON")

	// Local flags
	cmd.Flags().StringVarP(&flags.From, "from", "s", flags.From, "Source language code")
	cmd.Flags().StringVarP(&flags.To, "to", "t", flags.To, "Target language code")
	cmd.Flags().StringVarP(&flags.Provider, "provider", "p", flags.Provider, "Translation provider: mymemory, openai, gemini")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")

	// Scheduling flags
	cmd.Flags().IntVar(&flags.BatchSize, "batch-size", flags.BatchSize, fmt.Sprintf("Concurrent lookups per batch (1 to %d)", translation.MaxBatchSize))
	cmd.Flags().BoolVar(&flags.Pipelined, "pipelined", false, "Start the next lookup as soon as one finishes instead of waiting for the whole batch")
	cmd.Flags().BoolVar(&flags.NoBreaker, "no-breaker", false, "Disable the provider circuit breaker")

	// MyMemory flags
	cmd.Flags().StringVar(&flags.MyMemoryURL, "mymemory-url", flags.MyMemoryURL, "MyMemory lookup endpoint")
	cmd.Flags().StringVar(&flags.Email, "email", "", "Contact email sent to MyMemory for a higher daily quota")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout of a single lookup")
	cmd.Flags().IntVar(&flags.RateLimit, "rate-limit", 0, "Maximum lookups per minute (0 disables the limit)")

	// LLM provider flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model used by the openai provider")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model used by the gemini provider")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translation.from", cmd.Flags().Lookup("from"))
	viper.BindPFlag("translation.to", cmd.Flags().Lookup("to"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("scheduler.batch_size", cmd.Flags().Lookup("batch-size"))
	viper.BindPFlag("scheduler.pipelined", cmd.Flags().Lookup("pipelined"))
	viper.BindPFlag("breaker.disabled", cmd.Flags().Lookup("no-breaker"))
	viper.BindPFlag("mymemory.url", cmd.Flags().Lookup("mymemory-url"))
	viper.BindPFlag("mymemory.email", cmd.Flags().Lookup("email"))
	viper.BindPFlag("mymemory.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("mymemory.rate_limit", cmd.Flags().Lookup("rate-limit"))
	viper.BindPFlag("openai.model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("gemini.model", cmd.Flags().Lookup("gemini-model"))
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.pretty", cmd.PersistentFlags().Lookup("log-pretty"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".wordwise" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wordwise")
	}

	// Environment variables
	viper.SetEnvPrefix("WORDWISE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("gemini.key")
}

// LanguagePair returns the configured source and target languages
func LanguagePair() translation.LanguagePair {
	return translation.LanguagePair{
		Source: viper.GetString("translation.from"),
		Target: viper.GetString("translation.to"),
	}
}

// SchedulerOptions returns the configured scheduling options
func SchedulerOptions() []translation.SchedulerOption {
	return []translation.SchedulerOption{
		translation.WithBatchSize(viper.GetInt("scheduler.batch_size")),
		translation.WithPipelining(viper.GetBool("scheduler.pipelined")),
	}
}

// ProviderConfig builds the provider configuration from flags, config file
// and environment.
func ProviderConfig() *translation.Config {
	config := translation.DefaultProviderConfig()

	if provider := viper.GetString("translation.provider"); provider != "" {
		config.Provider = provider
	}
	if url := viper.GetString("mymemory.url"); url != "" {
		config.MyMemoryURL = url
	}
	if timeout := viper.GetDuration("mymemory.timeout"); timeout > 0 {
		config.Timeout = timeout
	}
	config.MyMemoryEmail = viper.GetString("mymemory.email")
	config.RequestsPerMinute = viper.GetInt("mymemory.rate_limit")

	config.OpenAIKey = GetOpenAIKey()
	config.OpenAIModel = viper.GetString("openai.model")
	config.OpenAIBaseURL = viper.GetString("openai.base_url")

	config.GeminiKey = GetGeminiKey()
	config.GeminiModel = viper.GetString("gemini.model")
	config.GeminiBaseURL = viper.GetString("gemini.base_url")

	config.Breaker = !viper.GetBool("breaker.disabled")
	if n := viper.GetUint32("breaker.failure_threshold"); n > 0 {
		config.BreakerConfig.FailureThreshold = n
	}
	if d := viper.GetDuration("breaker.timeout"); d > 0 {
		config.BreakerConfig.Timeout = d
	}

	return config
}
