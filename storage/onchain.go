package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/fhelabs/experiment-registry/bindings/datastore"
	"github.com/fhelabs/experiment-registry/interfaces"
	"github.com/fhelabs/experiment-registry/metrics"
)

// Transactor supplies signing credentials for on-chain writes. The wallet
// manager implements it.
type Transactor interface {
	interfaces.AccountSource

	// TransactOpts returns transaction options bound to the current
	// account. The returned opts carry no context; the store attaches
	// the per-call one.
	TransactOpts() (*bind.TransactOpts, error)
}

// OnchainStore implements a BlobStore over the DataStore smart contract.
// Reads are free contract calls; writes are signed transactions that block
// until the transaction is mined, so SetData returning nil means the write
// reached its terminal accepted state.
type OnchainStore struct {
	contract     *datastore.DataStore
	backend      bind.DeployBackend
	transactor   Transactor
	contractAddr common.Address
	log          *slog.Logger
	locationURI  string
}

// NewOnchainStore creates a blob store client for the DataStore contract at
// the given address. The transactor may be nil for a read-only client.
func NewOnchainStore(client bind.ContractBackend, backend bind.DeployBackend, contractAddr common.Address, transactor Transactor, log *slog.Logger) (*OnchainStore, error) {
	contract, err := datastore.NewDataStore(contractAddr, client)
	if err != nil {
		return nil, err
	}

	return &OnchainStore{
		contract:     contract,
		backend:      backend,
		transactor:   transactor,
		contractAddr: contractAddr,
		log:          log,
		locationURI:  fmt.Sprintf("onchain://%s", contractAddr.Hex()),
	}, nil
}

// GetData retrieves the blob stored under key. The contract returns empty
// bytes for unset keys, which reads as ErrNotFound.
func (s *OnchainStore) GetData(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	defer metrics.ObserveStoreCall(s.Name(), "get", start)

	data, err := s.contract.GetData(&bind.CallOpts{Context: ctx}, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from chain: %w", err)
	}
	if len(data) == 0 {
		return nil, interfaces.ErrNotFound
	}

	s.log.Debug("Fetched blob from chain",
		slog.String("key", key),
		slog.Int("size", len(data)))
	return data, nil
}

// SetData stores value under key and waits for the transaction to be mined.
// There is no timeout on the remote call itself beyond ctx: once submitted,
// the write is awaited until its terminal accepted/rejected outcome.
func (s *OnchainStore) SetData(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	defer metrics.ObserveStoreCall(s.Name(), "set", start)

	if s.transactor == nil {
		return interfaces.ErrNoTransactOpts
	}
	opts, err := s.transactor.TransactOpts()
	if err != nil {
		return err
	}
	opts.Context = ctx

	tx, err := s.contract.SetData(opts, key, value)
	if err != nil {
		return fmt.Errorf("failed to submit write: %w", err)
	}

	s.log.Debug("Write submitted, awaiting receipt",
		slog.String("key", key),
		slog.String("txHash", tx.Hash().Hex()))

	receipt, err := bind.WaitMined(ctx, s.backend, tx)
	if err != nil {
		return fmt.Errorf("failed to await write receipt: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("write reverted on chain (tx %s)", tx.Hash().Hex())
	}

	s.log.Debug("Write confirmed",
		slog.String("key", key),
		slog.String("txHash", tx.Hash().Hex()),
		slog.Uint64("block", receipt.BlockNumber.Uint64()))
	return nil
}

// Available probes the contract's isAvailable view function.
func (s *OnchainStore) Available(ctx context.Context) bool {
	available, err := s.contract.IsAvailable(&bind.CallOpts{Context: ctx})
	if err != nil {
		s.log.Debug("Onchain store unavailable", "err", err)
		return false
	}
	return available
}

// Name returns a unique identifier for this store.
func (s *OnchainStore) Name() string {
	return fmt.Sprintf("onchain-%s", s.contractAddr.Hex()[:10])
}

// LocationURI returns the URI that identifies this store.
func (s *OnchainStore) LocationURI() string {
	return s.locationURI
}
