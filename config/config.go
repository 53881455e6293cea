package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// NetworkEndpointKey is the JSON-RPC endpoint of the ledger network node
	NetworkEndpointKey = "NETWORK_ENDPOINT"
	// RequestTimeoutKey are the milliseconds to wait for RPC responses before timeouts
	RequestTimeoutKey = "REQUEST_TIMEOUT"
	// DatadirKey is the local data directory to store the wallet's internal state
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NativeTokenURLKey is the chain URL of the network's fungible token
	NativeTokenURLKey = "NATIVE_TOKEN_URL"
	// SecureStorePasswordKey is the password unlocking the encrypted key store
	SecureStorePasswordKey = "SECURE_STORE_PASSWORD"

	DbLocation          = "db"
	SecureStoreLocation = "keystore"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("walletcore", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("WALLETCORE")
	vip.AutomaticEnv()

	vip.SetDefault(NetworkEndpointKey, "https://testnet.accumulatenetwork.io/v2")
	vip.SetDefault(RequestTimeoutKey, 20000)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(NativeTokenURLKey, "acc://ACME")
	vip.SetDefault(DatadirKey, defaultDatadir)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

//GetDatadir ...
func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetRequestTimeout returns the RPC timeout as a duration.
func GetRequestTimeout() time.Duration {
	return time.Duration(GetInt(RequestTimeoutKey)) * time.Millisecond
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	endpoint := GetString(NetworkEndpointKey)
	if _, err := url.Parse(endpoint); err != nil {
		return fmt.Errorf("network endpoint is not a valid url: %s", endpoint)
	}

	timeout := GetInt(RequestTimeoutKey)
	if timeout <= 0 {
		return fmt.Errorf("request timeout must be a positive number of milliseconds")
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(datadir); err != nil {
		return err
	}
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
