package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wordwise/internal/translation"
)

// resetViper restores the global viper instance after the test
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestCreateRootCommand(t *testing.T) {
	resetViper(t)
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "wordwise [text...]" {
		t.Errorf("Expected Use to be 'wordwise [text...]', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "translator") {
		t.Errorf("Expected Short description to mention translator, got %s", cmd.Short)
	}

	// Test that flags are set up
	flagTests := []struct {
		name       string
		persistent bool
	}{
		{"config", true},
		{"log-level", true},
		{"log-pretty", true},
		{"from", false},
		{"to", false},
		{"provider", false},
		{"list-models", false},
		{"batch-size", false},
		{"pipelined", false},
		{"no-breaker", false},
		{"mymemory-url", false},
		{"email", false},
		{"timeout", false},
		{"rate-limit", false},
		{"openai-model", false},
		{"gemini-model", false},
	}

	for _, tt := range flagTests {
		t.Run("flag_"+tt.name, func(t *testing.T) {
			var flag *pflag.Flag
			if tt.persistent {
				flag = cmd.PersistentFlags().Lookup(tt.name)
			} else {
				flag = cmd.Flags().Lookup(tt.name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", tt.name)
			}
		})
	}
}

func TestSetupFlags(t *testing.T) {
	resetViper(t)
	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	defaults := map[string]string{
		"from":       "en",
		"to":         "it",
		"provider":   "mymemory",
		"batch-size": "10",
		"timeout":    "30s",
		"rate-limit": "0",
	}
	for name, want := range defaults {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			t.Fatalf("%s flag not found", name)
		}
		if flag.DefValue != want {
			t.Errorf("Expected default %s to be %s, got %s", name, want, flag.DefValue)
		}
	}

	if cmd.Flags().ShorthandLookup("s") == nil || cmd.Flags().ShorthandLookup("t") == nil {
		t.Error("Expected -s and -t shorthands for the language flags")
	}
}

func TestInitConfig(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		check     func(t *testing.T)
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				cfgPath := filepath.Join(t.TempDir(), "test-config.yaml")
				content := `translation:
  from: de
  to: fr
  provider: openai
openai:
  key: test-key
mymemory:
  email: me@example.org
`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
			check: func(t *testing.T) {
				pair := LanguagePair()
				if pair.Source != "de" || pair.Target != "fr" {
					t.Errorf("Expected de|fr from config, got %s", pair)
				}
				if viper.GetString("translation.provider") != "openai" {
					t.Errorf("Expected provider openai, got %s", viper.GetString("translation.provider"))
				}
			},
		},
		{
			name: "without config file",
			setupFunc: func(t *testing.T) string {
				return ""
			},
			check: func(t *testing.T) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("WORDWISE_TEST_VAR", "test-value")

			InitConfig(tt.setupFunc(t))

			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}
			tt.check(t)
		})
	}
}

func TestGetOpenAIKey(t *testing.T) {
	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{"from environment", "env-test-key", "config-test-key", "env-test-key"},
		{"from config when no env", "", "config-test-key", "config-test-key"},
		{"empty when neither set", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("OPENAI_API_KEY", tt.envKey)

			if tt.configKey != "" {
				viper.Set("openai.key", tt.configKey)
			}

			if got := GetOpenAIKey(); got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetGeminiKey(t *testing.T) {
	resetViper(t)
	t.Setenv("GEMINI_API_KEY", "")
	viper.Set("gemini.key", "config-key")

	if got := GetGeminiKey(); got != "config-key" {
		t.Errorf("GetGeminiKey() = %v, want config-key", got)
	}

	t.Setenv("GEMINI_API_KEY", "env-key")
	if got := GetGeminiKey(); got != "env-key" {
		t.Errorf("GetGeminiKey() = %v, want env-key", got)
	}
}

func TestBindFlagsToViper(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Set some flag values
	cmd.Flags().Set("from", "ru")
	cmd.Flags().Set("to", "es")
	cmd.Flags().Set("batch-size", "4")
	cmd.Flags().Set("pipelined", "true")

	if viper.GetString("translation.from") != "ru" {
		t.Errorf("Expected translation.from to be ru, got %s", viper.GetString("translation.from"))
	}
	if viper.GetString("translation.to") != "es" {
		t.Errorf("Expected translation.to to be es, got %s", viper.GetString("translation.to"))
	}
	if viper.GetInt("scheduler.batch_size") != 4 {
		t.Errorf("Expected scheduler.batch_size to be 4, got %d", viper.GetInt("scheduler.batch_size"))
	}
	if !viper.GetBool("scheduler.pipelined") {
		t.Error("Expected scheduler.pipelined to be true")
	}
	if len(SchedulerOptions()) != 2 {
		t.Error("Expected two scheduler options")
	}
}

func TestProviderConfig(t *testing.T) {
	resetViper(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cmd := &cobra.Command{}
	setupFlags(cmd, NewFlags())

	config := ProviderConfig()
	if config.Provider != "mymemory" {
		t.Errorf("Expected provider mymemory, got %s", config.Provider)
	}
	if config.MyMemoryURL != translation.DefaultMyMemoryURL {
		t.Errorf("Expected default MyMemory URL, got %s", config.MyMemoryURL)
	}
	if !config.Breaker {
		t.Error("Expected breaker to be enabled by default")
	}
	if config.BreakerConfig != translation.DefaultBreakerConfig() {
		t.Errorf("Expected default breaker settings, got %+v", config.BreakerConfig)
	}

	cmd.Flags().Set("provider", "gemini")
	cmd.Flags().Set("no-breaker", "true")
	cmd.Flags().Set("timeout", "5s")
	cmd.Flags().Set("rate-limit", "120")
	viper.Set("gemini.key", "g-key")
	viper.Set("breaker.failure_threshold", 3)
	viper.Set("breaker.timeout", "1m")

	config = ProviderConfig()
	if config.Provider != "gemini" || config.GeminiKey != "g-key" {
		t.Errorf("Expected gemini provider with key, got %s/%s", config.Provider, config.GeminiKey)
	}
	if config.Breaker {
		t.Error("Expected breaker to be disabled")
	}
	if config.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %s", config.Timeout)
	}
	if config.RequestsPerMinute != 120 {
		t.Errorf("Expected rate limit 120, got %d", config.RequestsPerMinute)
	}
	if config.BreakerConfig.FailureThreshold != 3 || config.BreakerConfig.Timeout != time.Minute {
		t.Errorf("Expected breaker overrides, got %+v", config.BreakerConfig)
	}
}
