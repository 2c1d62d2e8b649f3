package main

import (
	"github.com/Desarso/insurebot"
	"github.com/Desarso/insurebot/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and WebSocket API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			config.WithListenAddr(serveAddr)
		}
		ctx := setupContext()

		advisor, err := insurebot.NewAdvisor(ctx, config)
		if err != nil {
			return err
		}
		defer advisor.Close()

		return server.New(advisor).Run(ctx, config.ListenAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides LISTEN_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
