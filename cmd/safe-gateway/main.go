package main

import (
	"context"
	"fmt"
	"os"

	awsclient "github.com/cyphera/safe-gateway/internal/client/aws"
	"github.com/cyphera/safe-gateway/internal/config"
	"github.com/cyphera/safe-gateway/internal/constants"
	"github.com/cyphera/safe-gateway/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var v = config.NewViper()

var rootCmd = &cobra.Command{
	Use:           constants.ServiceName,
	Short:         "Verifying gateway in front of the Safe Transaction Service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		stage := v.GetString(config.KeyStage)
		config.LoadDotEnv(stage)
		logger.InitLogger(stage)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("stage", constants.StageLocal, "deployment stage: local|dev|prod")
	bindFlag(config.KeyStage, rootCmd.PersistentFlags().Lookup("stage"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(contractsCmd)
}

// bindFlag lets a command line flag override the configuration key
func bindFlag(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("failed to bind flag %s: %v", flag.Name, err))
	}
}

// secretProvider returns the Secrets Manager client, or nil to read secrets
// from plain environment variables when AWS is not configured
func secretProvider(ctx context.Context) config.SecretProvider {
	client, err := awsclient.NewSecretsManagerClient(ctx)
	if err != nil {
		logger.Warn("Secrets Manager unavailable, reading secrets from environment", zap.Error(err))
		return nil
	}
	return client
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
