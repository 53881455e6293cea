package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/accuwallet/walletcore/config"
	"github.com/accuwallet/walletcore/internal/core/application"
	dbbadger "github.com/accuwallet/walletcore/internal/infrastructure/storage/db/badger"
	"github.com/accuwallet/walletcore/pkg/ledgerclient"
	boltsecurestore "github.com/accuwallet/walletcore/pkg/securestore/bolt"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "walletcore CLI"
	app.Usage = "Command line interface for the wallet core"
	app.Commands = append(
		app.Commands,
		&newaccount,
		&listaccounts,
		&balance,
		&createidentity,
		&createkeybook,
		&createkeypage,
		&createtokenaccount,
		&createdataaccount,
		&createtoken,
		&issuetokens,
		&burntokens,
		&sendtokens,
		&addcredits,
		&writedata,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

// appServices builds the full application stack from config. The returned
// cleanup closes the stores.
func appServices() (application.WalletService, func(), error) {
	datadir := config.GetDatadir()

	dbManager, err := dbbadger.NewDbManager(
		filepath.Join(datadir, config.DbLocation), log.New(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("opening db: %w", err)
	}

	secureStore, err := boltsecurestore.NewSecureStorage(
		filepath.Join(datadir, config.SecureStoreLocation), "keys.db",
	)
	if err != nil {
		dbManager.Close()
		return nil, nil, fmt.Errorf("opening secure store: %w", err)
	}
	password := []byte(config.GetString(config.SecureStorePasswordKey))
	if err := secureStore.CreateUnlock(&password); err != nil {
		dbManager.Close()
		return nil, nil, fmt.Errorf("unlocking secure store: %w", err)
	}

	client := ledgerclient.NewService(
		config.GetString(config.NetworkEndpointKey), config.GetRequestTimeout(),
	)

	registry := application.NewRegistryService(
		dbbadger.NewIdentityRepositoryImpl(dbManager),
		dbbadger.NewAccountRepositoryImpl(dbManager),
		dbbadger.NewTokenRepositoryImpl(dbManager),
	)
	keyManager := application.NewKeyManager(secureStore)
	submitter := application.NewTxSubmitter(keyManager, client, registry)
	credits := application.NewCreditService(client)

	walletSvc := application.NewWalletService(
		keyManager, registry, submitter, credits, client,
		config.GetString(config.NativeTokenURLKey),
	)

	cleanup := func() {
		secureStore.Close()
		dbManager.Close()
	}
	return walletSvc, cleanup, nil
}

func printRespJSON(resp interface{}) {
	jsonStr, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(string(jsonStr))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[walletcore] %v\n", err)
	os.Exit(1)
}
