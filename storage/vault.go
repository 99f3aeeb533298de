package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"

	"github.com/fhelabs/experiment-registry/interfaces"
	"github.com/fhelabs/experiment-registry/metrics"
)

// VaultStore implements a blob store using HashiCorp Vault's KV v2 engine.
// Each blob key maps to a secret path under the configured mount and data
// path, with the blob stored as a string under the "content" field.
type VaultStore struct {
	client      *api.Client
	mountPath   string
	dataPath    string
	log         *slog.Logger
	locationURI string
}

// NewVaultStore creates a new Vault-backed blob store using token
// authentication.
//
// Parameters:
//   - address: Vault server address (e.g. https://vault.example.com:8200)
//   - token: Vault token used to authenticate
//   - mountPath: Vault KV v2 mount path (e.g. "secret")
//   - dataPath: Path within the mount (e.g. "experiments")
//   - log: Structured logger for operational insights
func NewVaultStore(address, token, mountPath, dataPath string, log *slog.Logger) (*VaultStore, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}
	client.SetToken(token)

	mountPath = strings.TrimSuffix(mountPath, "/")
	dataPath = strings.TrimPrefix(dataPath, "/")
	dataPath = strings.TrimSuffix(dataPath, "/")

	return &VaultStore{
		client:      client,
		mountPath:   mountPath,
		dataPath:    dataPath,
		log:         log,
		locationURI: fmt.Sprintf("vault://%s/%s/%s", address, mountPath, dataPath),
	}, nil
}

// GetData retrieves the blob stored under key using the KV v2 API.
// Returns ErrNotFound if no secret exists at the derived path.
func (b *VaultStore) GetData(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	defer metrics.ObserveStoreCall(b.Name(), "get", start)

	path := b.secretPath(key)

	secret, err := b.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		b.log.Error("Failed to read from Vault",
			slog.String("path", path),
			"err", err)
		return nil, fmt.Errorf("%w: %v", interfaces.ErrStoreUnavailable, err)
	}

	if secret == nil || secret.Data == nil {
		b.log.Debug("Blob not found in Vault",
			slog.String("path", path))
		return nil, interfaces.ErrNotFound
	}

	// KV v2 wraps the payload in a "data" field
	data, ok := secret.Data["data"]
	if !ok {
		return nil, fmt.Errorf("invalid data format in Vault response")
	}

	content, ok := data.(map[string]interface{})["content"]
	if !ok {
		return nil, fmt.Errorf("content key not found in Vault data")
	}

	contentStr, ok := content.(string)
	if !ok {
		return nil, fmt.Errorf("invalid content format in Vault data")
	}
	if len(contentStr) == 0 {
		return nil, interfaces.ErrNotFound
	}

	b.log.Debug("Fetched blob from Vault",
		slog.String("key", key),
		slog.Duration("duration", time.Since(start)))

	return []byte(contentStr), nil
}

// SetData stores value under key using the KV v2 API.
func (b *VaultStore) SetData(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	defer metrics.ObserveStoreCall(b.Name(), "set", start)

	path := b.secretPath(key)

	secretData := map[string]interface{}{
		"data": map[string]interface{}{
			"content": string(value),
		},
	}

	_, err := b.client.Logical().WriteWithContext(ctx, path, secretData)
	if err != nil {
		b.log.Error("Failed to write to Vault",
			slog.String("path", path),
			"err", err)
		return fmt.Errorf("%w: %v", interfaces.ErrStoreUnavailable, err)
	}

	b.log.Debug("Stored blob in Vault",
		slog.String("key", key),
		slog.Duration("duration", time.Since(start)))

	return nil
}

// Available checks if the Vault store is accessible.
// It uses the health endpoint to verify that Vault is initialized and unsealed.
func (b *VaultStore) Available(ctx context.Context) bool {
	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health, err := b.client.Sys().HealthWithContext(healthCtx)
	if err != nil {
		b.log.Debug("Vault health check failed", "err", err)
		return false
	}

	if !health.Initialized || health.Sealed {
		b.log.Debug("Vault is not available",
			slog.Bool("initialized", health.Initialized),
			slog.Bool("sealed", health.Sealed))
		return false
	}

	return true
}

// Name returns a unique identifier for this store.
func (b *VaultStore) Name() string {
	return fmt.Sprintf("vault-%s-%s", b.mountPath, b.dataPath)
}

// LocationURI returns the URI that identifies this store.
func (b *VaultStore) LocationURI() string {
	return b.locationURI
}

// secretPath maps a blob key to a KV v2 data path.
func (b *VaultStore) secretPath(key string) string {
	return fmt.Sprintf("%s/data/%s/%s", b.mountPath, b.dataPath, key)
}
