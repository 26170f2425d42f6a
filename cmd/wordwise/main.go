package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wordwise/internal/cli"
	"codeberg.org/snonux/wordwise/internal/logger"
	"codeberg.org/snonux/wordwise/internal/models"
	"codeberg.org/snonux/wordwise/internal/processor"
	"codeberg.org/snonux/wordwise/internal/translation"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
		logger.Init(viper.GetString("log.level"), viper.GetBool("log.pretty"))
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if kind := translation.KindOf(err); kind != translation.KindUnknown {
			fmt.Fprintf(os.Stderr, "%s: %v\n", kind, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx := log.Logger.WithContext(cmd.Context())

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey(), viper.GetString("openai.base_url"))
		return lister.ListAvailableModels(ctx, cmd.OutOrStdout())
	}

	client, err := translation.NewClient(ctx, cli.ProviderConfig())
	if err != nil {
		return err
	}

	pair := cli.LanguagePair()
	log.Debug().
		Str("provider", client.Name()).
		Str("langpair", pair.String()).
		Msg("Translator ready")

	translator := translation.New(client, pair, cli.SchedulerOptions()...)
	proc := processor.NewProcessor(translator, cmd.OutOrStdout(), processor.LogRecorder{})

	if len(args) > 0 {
		return proc.ProcessText(ctx, strings.Join(args, " "))
	}
	// Never prompt; only read stdin when something is piped in
	if isTerminal(os.Stdin) {
		return errors.New("no text given: pass it as arguments or pipe it to stdin")
	}
	return proc.ProcessReader(ctx, cmd.InOrStdin())
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
