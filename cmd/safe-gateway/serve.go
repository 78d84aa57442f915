package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/cyphera/safe-gateway/internal/config"
	"github.com/cyphera/safe-gateway/internal/logger"
	"github.com/cyphera/safe-gateway/internal/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		defer func() { _ = logger.Sync() }()

		cfg, err := config.Load(ctx, v, secretProvider(ctx))
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		srv, err := server.New(ctx, cfg)
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}

func init() {
	flags := serveCmd.Flags()
	flags.String("port", "8080", "port to listen on")
	flags.String("grace-period-ms", "", "grace period in milliseconds for transactions executed but not yet indexed")
	flags.String("blocklist", "", "comma separated addresses whose signatures are always rejected")
	flags.String("tx-service-urls", "", "comma separated chainId=url overrides of the transaction service deployments")

	bindFlag(config.KeyServerPort, flags.Lookup("port"))
	bindFlag(config.KeyGracePeriodMs, flags.Lookup("grace-period-ms"))
	bindFlag(config.KeyBlocklist, flags.Lookup("blocklist"))
	bindFlag(config.KeyTxServiceURLs, flags.Lookup("tx-service-urls"))
}
