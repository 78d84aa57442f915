package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/cyphera/safe-gateway/internal/db"
	"github.com/cyphera/safe-gateway/internal/interfaces"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ interfaces.ContractTrustRepository = (*ContractTrustRepository)(nil)

// ContractTrustRepository stores which contracts may be delegate called
type ContractTrustRepository struct {
	queries db.Querier
}

// NewContractTrustRepository creates a repository on top of the generated queries
func NewContractTrustRepository(queries db.Querier) *ContractTrustRepository {
	return &ContractTrustRepository{queries: queries}
}

// IsTrustedForDelegateCall reports whether address is flagged as a trusted
// delegate call target on chainID. Unknown contracts are untrusted.
func (r *ContractTrustRepository) IsTrustedForDelegateCall(ctx context.Context, chainID string, address common.Address) (bool, error) {
	contract, err := r.queries.GetContract(ctx, db.GetContractParams{
		ChainID: chainID,
		Address: address.Hex(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get contract %s on chain %s: %w", address.Hex(), chainID, err)
	}
	return contract.TrustedForDelegateCall, nil
}

// SetTrustedForDelegateCall creates or updates the trust flag of a contract
func (r *ContractTrustRepository) SetTrustedForDelegateCall(ctx context.Context, chainID string, address common.Address, name string, trusted bool) (*db.Contract, error) {
	contract, err := r.queries.UpsertContract(ctx, db.UpsertContractParams{
		ChainID:                chainID,
		Address:                address.Hex(),
		Name:                   pgtype.Text{String: name, Valid: name != ""},
		TrustedForDelegateCall: trusted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert contract %s on chain %s: %w", address.Hex(), chainID, err)
	}
	return &contract, nil
}

// ListTrusted returns every trusted delegate call target on chainID
func (r *ContractTrustRepository) ListTrusted(ctx context.Context, chainID string) ([]db.Contract, error) {
	contracts, err := r.queries.ListTrustedContracts(ctx, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trusted contracts on chain %s: %w", chainID, err)
	}
	return contracts, nil
}
