package command

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/gateway"
	"github.com/parleychat/parley/internal/logging"
)

// NewChatCmd opens the conversation list screen.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the conversation list",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if token, _ := cmd.Flags().GetString("token"); token != "" {
				cfg.Gateway.Token = token
			}
			if url, _ := cmd.Flags().GetString("gateway"); url != "" {
				cfg.Gateway.URL = url
			}
			if cfg.Gateway.Token == "" {
				return fmt.Errorf("no gateway token configured (set gateway.token or PARLEY_GATEWAY_TOKEN)")
			}

			closer, err := logging.Init(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File})
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			client, err := gateway.Dial(ctx, cfg.Gateway.URL, cfg.Gateway.Token)
			if err != nil {
				return err
			}

			return chat.Run(chat.Options{Client: client, Config: cfg})
		},
	}

	cmd.Flags().String("gateway", "", "gateway websocket URL (overrides config)")
	cmd.Flags().String("token", "", "gateway auth token (overrides config)")
	return cmd
}
