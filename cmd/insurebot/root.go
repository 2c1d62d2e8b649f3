package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Desarso/insurebot"
	"github.com/spf13/cobra"
)

var config = insurebot.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "insurebot",
	Short: "Conversational insurance advisor",
	Long: `InsureBot answers insurance questions in English and French, reads uploaded
policy documents and voice notes, and generates policy recommendations.`,
	PersistentPreRunE: loadRootConfig,
	SilenceUsage:      true,
}

var flagOverrides struct {
	provider string
	store    string
	dsn      string
}

func loadRootConfig(_ *cobra.Command, _ []string) error {
	loaded, err := insurebot.LoadConfig()
	if err != nil {
		return err
	}
	*config = *loaded

	if flagOverrides.provider != "" {
		config.WithProvider(flagOverrides.provider)
	}
	if flagOverrides.store != "" {
		config.StoreType = flagOverrides.store
	}
	if flagOverrides.dsn != "" {
		config.StoreDSN = flagOverrides.dsn
	}
	return config.Validate()
}

func setupContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	// Setup graceful shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		log.Println("Interrupt signal detected, shutting down gracefully...")
		cancel()
		<-interrupt
		log.Fatal("Forcing shutdown")
	}()

	return ctx
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagOverrides.provider, "provider", "", "completion backend: groq or gemini")
	rootCmd.PersistentFlags().StringVar(&flagOverrides.store, "store", "", "conversation store: sqlite or postgres")
	rootCmd.PersistentFlags().StringVar(&flagOverrides.dsn, "dsn", "", "store file path or connection string")
}
