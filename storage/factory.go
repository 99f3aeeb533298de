package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/fhelabs/experiment-registry/interfaces"
)

// ErrInvalidStoreURI is returned when a store location URI cannot be parsed
// or names an unsupported scheme.
var ErrInvalidStoreURI = errors.New("invalid store location URI")

// StoreFactory creates blob stores from URI strings. On-chain stores
// additionally require an Ethereum client, and writes a transactor; both are
// attached via the With... methods before the factory sees an onchain:// URI.
type StoreFactory struct {
	log        *slog.Logger
	ethClient  *ethclient.Client
	transactor Transactor
}

// NewStoreFactory creates a new factory instance that can create blob stores.
func NewStoreFactory(log *slog.Logger) *StoreFactory {
	return &StoreFactory{log: log}
}

// WithEthClient attaches the Ethereum client used for onchain:// stores.
func (sf *StoreFactory) WithEthClient(client *ethclient.Client) *StoreFactory {
	sf.ethClient = client
	return sf
}

// WithTransactor attaches the transactor used to sign on-chain writes.
// Without one, onchain:// stores are read-only.
func (sf *StoreFactory) WithTransactor(transactor Transactor) *StoreFactory {
	sf.transactor = transactor
	return sf
}

// StoreFor creates a blob store from a location URI.
// The URI format is [scheme]://[auth@]host[:port][/path][?params]
//
// Supported schemes:
//   - onchain:// - DataStore smart contract on an Ethereum chain
//   - file:// - Local filesystem storage
//   - memory:// - In-process storage, for tests and local development
//   - s3:// - Amazon S3 or compatible object storage
//   - vault:// - HashiCorp Vault KV v2 engine
//
// Returns an error if the URI is invalid or the scheme is unsupported.
func (sf *StoreFactory) StoreFor(locationURI string) (interfaces.BlobStore, error) {
	u, err := url.Parse(locationURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStoreURI, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "onchain":
		return sf.createOnchainStore(u)
	case "file":
		return sf.createFileStore(u)
	case "memory":
		return NewMemoryStore(), nil
	case "s3":
		return sf.createS3Store(u)
	case "vault":
		return sf.createVaultStore(u)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidStoreURI, u.Scheme)
	}
}

// createOnchainStore creates a contract-backed store.
// URI format: onchain://0x1234567890abcdef1234567890abcdef12345678
// The host part must be a valid Ethereum contract address.
func (sf *StoreFactory) createOnchainStore(u *url.URL) (interfaces.BlobStore, error) {
	sf.log.Debug("Creating onchain store", slog.String("uri", u.String()))

	addrHex := u.Host
	if !common.IsHexAddress(addrHex) {
		return nil, fmt.Errorf("%w: invalid contract address %q", ErrInvalidStoreURI, addrHex)
	}

	if sf.ethClient == nil {
		return nil, fmt.Errorf("ethereum client not configured")
	}

	return NewOnchainStore(sf.ethClient, sf.ethClient, common.HexToAddress(addrHex), sf.transactor, sf.log)
}

// createFileStore creates a filesystem store.
// URI format: file:///absolute/path/ or file://./relative/path/
func (sf *StoreFactory) createFileStore(u *url.URL) (interfaces.BlobStore, error) {
	sf.log.Debug("Creating file store", slog.String("uri", u.String()))

	path := u.Path
	if u.Host != "" {
		path = u.Host + "/" + strings.TrimPrefix(path, "/")
	}
	if path == "" {
		return nil, fmt.Errorf("%w: empty path in file URI %q", ErrInvalidStoreURI, u.String())
	}

	return NewFileStore(path, sf.log)
}

// createS3Store creates an S3 or S3-compatible store.
// URI format: s3://[ACCESS_KEY:SECRET_KEY@]bucket-name/path/?region=us-west-2&endpoint=custom.s3.com
// The store supports both public buckets (read-only) and authenticated access.
func (sf *StoreFactory) createS3Store(u *url.URL) (interfaces.BlobStore, error) {
	sf.log.Debug("Creating S3 store", slog.String("uri", u.String()))

	bucketName := u.Host
	path := strings.TrimPrefix(u.Path, "/")

	query := u.Query()
	region := query.Get("region")
	if region == "" {
		region = "us-east-1"
	}
	endpoint := query.Get("endpoint")

	var accessKey, secretKey string
	if u.User != nil {
		accessKey = u.User.Username()
		secretKey, _ = u.User.Password()
		sf.log.Debug("Using embedded credentials for write access")
	} else {
		sf.log.Debug("No credentials provided, S3 bucket assumed to be public, write operations may fail")
	}

	return NewS3Store(bucketName, path, region, endpoint, accessKey, secretKey, sf.log)
}

// createVaultStore creates a Vault KV v2 store.
// URI format: vault://TOKEN@host:port/mount/data-path?scheme=https
// The first path segment is the KV v2 mount, the rest is the data path.
func (sf *StoreFactory) createVaultStore(u *url.URL) (interfaces.BlobStore, error) {
	sf.log.Debug("Creating vault store", slog.String("uri", u.String()))

	var token string
	if u.User != nil {
		token = u.User.Username()
	}

	serverScheme := u.Query().Get("scheme")
	if serverScheme == "" {
		serverScheme = "https"
	}
	address := fmt.Sprintf("%s://%s", serverScheme, u.Host)

	parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("%w: vault URI requires /mount/data-path, got %q", ErrInvalidStoreURI, u.Path)
	}

	return NewVaultStore(address, token, parts[0], parts[1], sf.log)
}
