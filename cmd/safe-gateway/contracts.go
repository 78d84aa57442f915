package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cyphera/safe-gateway/internal/config"
	"github.com/cyphera/safe-gateway/internal/db"
	"github.com/cyphera/safe-gateway/internal/repositories"
	"github.com/cyphera/safe-gateway/internal/server"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var contractName string

var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "Manage contracts trusted as delegate call targets",
}

var contractsTrustCmd = &cobra.Command{
	Use:   "trust [chainId] [address]",
	Short: "Allow delegate calls to a contract",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTrust(cmd, args, true)
	},
}

var contractsUntrustCmd = &cobra.Command{
	Use:   "untrust [chainId] [address]",
	Short: "Reject delegate calls to a contract",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTrust(cmd, args, false)
	},
}

var contractsListCmd = &cobra.Command{
	Use:   "list [chainId]",
	Short: "List contracts trusted for delegate calls",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainID, err := parseChainIDArg(args[0])
		if err != nil {
			return err
		}

		return withContractRepository(cmd.Context(), func(repo *repositories.ContractTrustRepository) error {
			contracts, err := repo.ListTrusted(cmd.Context(), chainID)
			if err != nil {
				return err
			}
			for _, contract := range contracts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", contract.Address, contract.Name.String)
			}
			return nil
		})
	},
}

func init() {
	contractsTrustCmd.Flags().StringVar(&contractName, "name", "", "human readable contract name")

	contractsCmd.AddCommand(contractsTrustCmd)
	contractsCmd.AddCommand(contractsUntrustCmd)
	contractsCmd.AddCommand(contractsListCmd)
}

func setTrust(cmd *cobra.Command, args []string, trusted bool) error {
	chainID, err := parseChainIDArg(args[0])
	if err != nil {
		return err
	}
	if !common.IsHexAddress(args[1]) {
		return fmt.Errorf("invalid address %q", args[1])
	}
	address := common.HexToAddress(args[1])

	return withContractRepository(cmd.Context(), func(repo *repositories.ContractTrustRepository) error {
		contract, err := repo.SetTrustedForDelegateCall(cmd.Context(), chainID, address, contractName, trusted)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s on chain %s trusted=%t\n", contract.Address, contract.ChainID, contract.TrustedForDelegateCall)
		return nil
	})
}

func withContractRepository(ctx context.Context, fn func(*repositories.ContractTrustRepository) error) error {
	databaseURL, err := config.LoadDatabaseURL(ctx, secretProvider(ctx))
	if err != nil {
		return err
	}
	pool, err := server.NewPool(ctx, &config.Config{DatabaseURL: databaseURL, DatabaseMaxConns: 2})
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(repositories.NewContractTrustRepository(db.New(pool)))
}

func parseChainIDArg(raw string) (string, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return "", fmt.Errorf("invalid chain id %q", raw)
	}
	return strconv.FormatUint(id, 10), nil
}
