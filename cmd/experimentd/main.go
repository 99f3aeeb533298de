// experimentd serves the experiment registry API over a configurable blob
// store.
package main

import (
	"log"
	"math/big"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/urfave/cli/v2"

	"github.com/fhelabs/experiment-registry/cmd/flags"
	"github.com/fhelabs/experiment-registry/httpserver"
	"github.com/fhelabs/experiment-registry/metrics"
	"github.com/fhelabs/experiment-registry/orchestrator"
	"github.com/fhelabs/experiment-registry/registry"
	"github.com/fhelabs/experiment-registry/storage"
	"github.com/fhelabs/experiment-registry/wallet"
)

var serverFlags = append([]cli.Flag{
	&cli.StringFlag{
		Name:  "listen-addr",
		Value: "127.0.0.1:8080",
		Usage: "address to listen on for API",
	},
	flags.StoreURIFlag,
	flags.RpcAddrFlag,
	flags.ChainIDFlag,
	flags.PrivateKeyFlag,
	flags.LogServiceFlagFn("experimentd"),
}, flags.CommonFlags...)

func main() {
	app := &cli.App{
		Name:  "experimentd",
		Usage: "Serve the experiment registry API",
		Flags: serverFlags,
		Action: func(cCtx *cli.Context) error {
			listenAddr := cCtx.String("listen-addr")
			storeURI := cCtx.String("store-uri")
			rpcAddress := cCtx.String("rpc-addr")
			chainID := cCtx.Int64("chain-id")
			privateKey := cCtx.String("private-key")

			logger := flags.SetupLogger(cCtx)
			metrics.Init()

			// Signing account. Optional: without a key the server can
			// list and read but every submission fails.
			walletMgr := wallet.NewManager(big.NewInt(chainID), logger)
			if privateKey != "" {
				if err := walletMgr.SwitchKey(privateKey); err != nil {
					logger.Error("Failed to load private key", "err", err)
					return err
				}
			} else {
				logger.Warn("No private key provided - write operations will fail")
			}

			factory := storage.NewStoreFactory(logger).WithTransactor(walletMgr)

			// An RPC connection is only needed for contract-backed stores.
			if strings.HasPrefix(strings.ToLower(storeURI), "onchain://") {
				logger.Info("Connecting to Ethereum RPC", "address", rpcAddress)
				ethClient, err := ethclient.Dial(rpcAddress)
				if err != nil {
					logger.Error("Failed to dial RPC", "err", err)
					return err
				}
				factory = factory.WithEthClient(ethClient)
			}

			store, err := factory.StoreFor(storeURI)
			if err != nil {
				logger.Error("Failed to create blob store", "err", err)
				return err
			}
			logger.Info("Blob store ready", "store", store.LocationURI())

			reg := registry.New(store, logger)
			notifier := orchestrator.NewNotifier(0, 0)
			orch := orchestrator.New(reg, walletMgr, notifier, logger)

			handler := httpserver.NewHandler(orch, reg, logger)
			cfg := flags.ConfigureServer(cCtx, logger, listenAddr)
			server, err := httpserver.New(cfg, handler)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			logger.Info("Starting server")
			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
