// Package wallet manages the signing account used for on-chain writes.
//
// A Manager holds at most one private key at a time. Consumers that need to
// know who is acting subscribe to account changes; consumers that need to
// sign ask for transaction options. Both work against the current key, so a
// key switch takes effect for every subsequent operation at once.
package wallet

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrNoKey is returned when transaction options are requested while no key
// is loaded.
var ErrNoKey = errors.New("no signing key loaded")

// Manager holds the active signing key and notifies subscribers when it
// changes. The zero account (no key loaded) is a valid state: reads work,
// writes fail with ErrNoKey.
type Manager struct {
	mu        sync.RWMutex
	key       *ecdsa.PrivateKey
	address   common.Address
	chainID   *big.Int
	listeners map[int]func(account string)
	nextID    int
	log       *slog.Logger
}

// NewManager creates a key-less manager for the given chain. Load a key with
// SwitchKey before the first write.
func NewManager(chainID *big.Int, log *slog.Logger) *Manager {
	return &Manager{
		chainID:   chainID,
		listeners: make(map[int]func(string)),
		log:       log,
	}
}

// NewManagerFromHexKey creates a manager with the key already loaded.
// The key is a hex-encoded secp256k1 private key, with or without the 0x
// prefix.
func NewManagerFromHexKey(hexKey string, chainID *big.Int, log *slog.Logger) (*Manager, error) {
	m := NewManager(chainID, log)
	if err := m.SwitchKey(hexKey); err != nil {
		return nil, err
	}
	return m, nil
}

// Current returns the hex address of the active account, or "" when no key
// is loaded.
func (m *Manager) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.key == nil {
		return ""
	}
	return m.address.Hex()
}

// TransactOpts returns signing options bound to the active key.
// Returns ErrNoKey when no key is loaded.
func (m *Manager) TransactOpts() (*bind.TransactOpts, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.key == nil {
		return nil, ErrNoKey
	}
	opts, err := bind.NewKeyedTransactorWithChainID(m.key, m.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	return opts, nil
}

// SwitchKey replaces the active key and notifies subscribers with the new
// account address.
func (m *Manager) SwitchKey(hexKey string) error {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return fmt.Errorf("failed to parse private key: %w", err)
	}
	address := crypto.PubkeyToAddress(key.PublicKey)

	m.mu.Lock()
	m.key = key
	m.address = address
	listeners := make([]func(string), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	m.log.Info("Switched signing account", slog.String("account", address.Hex()))

	for _, fn := range listeners {
		fn(address.Hex())
	}
	return nil
}

// Subscribe registers fn to be called with the new account address whenever
// the key changes. The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(account string)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}
