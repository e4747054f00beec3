package conf

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config application configuration structure
type Config struct {
	// Network name (mainnet/testnet/local)
	Net string

	// Gateway HTTP service configuration
	Gateway GatewayConfig

	// Profile database configuration
	Database DatabaseConfig

	// Artwork canister configuration
	Canister CanisterConfig

	// Content pinning service configuration
	Pinning PinningConfig

	// Wallet session configuration
	Wallet WalletConfig

	// Local snapshot cache configuration
	Cache CacheConfig
}

// GatewayConfig gateway HTTP service configuration
type GatewayConfig struct {
	Port           string // HTTP listen port
	SwaggerBaseUrl string // Swagger API base URL
	PathPrefix     string // Path prefix for reverse proxy
}

// DatabaseConfig profile database configuration
type DatabaseConfig struct {
	ProfileType  string // Profile database type: mysql, sqlite
	Dsn          string // MySQL DSN
	SqlitePath   string // SQLite file path (local/test runs)
	MaxOpenConns int    // MySQL max open connections
	MaxIdleConns int    // MySQL max idle connections
}

// CanisterConfig artwork canister configuration
type CanisterConfig struct {
	Url            string // Canister RPC endpoint
	RpcUser        string // Basic auth user
	RpcPass        string // Basic auth password
	TimeoutSeconds int    // Per-call timeout in seconds
}

// PinningConfig content pinning service configuration
type PinningConfig struct {
	Endpoint      string // Pinning API endpoint
	ApiKey        string // Pinning API key
	GatewayPrefix string // Asset gateway URL prefix, e.g. "https://gateway.pinning.io/ipfs/"
}

// WalletConfig wallet session configuration
type WalletConfig struct {
	ChallengeTTLSeconds int // Connect challenge validity window
	SessionTTLSeconds   int // Session validity window
}

// CacheConfig local snapshot cache configuration
type CacheConfig struct {
	DataDir string // PebbleDB data directory
}

// Cfg global configuration instance
var Cfg *Config

// InitConfig initialize configuration
func InitConfig() error {
	viper.SetConfigFile(GetYaml())
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("Fatal error config file: %s", err)
	}

	// Create configuration instance
	Cfg = &Config{
		Net: viper.GetString("net"),

		Gateway: GatewayConfig{
			Port:           viper.GetString("gateway.port"),
			SwaggerBaseUrl: viper.GetString("gateway.swagger_base_url"),
			PathPrefix:     viper.GetString("gateway.path_prefix"),
		},

		Database: DatabaseConfig{
			ProfileType:  viper.GetString("database.profile_type"),
			Dsn:          viper.GetString("database.dsn"),
			SqlitePath:   viper.GetString("database.sqlite_path"),
			MaxOpenConns: viper.GetInt("database.max_open_conns"),
			MaxIdleConns: viper.GetInt("database.max_idle_conns"),
		},

		Canister: CanisterConfig{
			Url:            viper.GetString("canister.url"),
			RpcUser:        viper.GetString("canister.rpc_user"),
			RpcPass:        viper.GetString("canister.rpc_pass"),
			TimeoutSeconds: viper.GetInt("canister.timeout_seconds"),
		},

		Pinning: PinningConfig{
			Endpoint:      viper.GetString("pinning.endpoint"),
			ApiKey:        viper.GetString("pinning.api_key"),
			GatewayPrefix: viper.GetString("pinning.gateway_prefix"),
		},

		Wallet: WalletConfig{
			ChallengeTTLSeconds: viper.GetInt("wallet.challenge_ttl_seconds"),
			SessionTTLSeconds:   viper.GetInt("wallet.session_ttl_seconds"),
		},

		Cache: CacheConfig{
			DataDir: viper.GetString("cache.data_dir"),
		},
	}

	// Set default values
	if Cfg.Gateway.Port == "" {
		Cfg.Gateway.Port = "7391"
	}
	if Cfg.Gateway.SwaggerBaseUrl == "" {
		Cfg.Gateway.SwaggerBaseUrl = "localhost:" + Cfg.Gateway.Port
	}
	if Cfg.Database.MaxOpenConns == 0 {
		Cfg.Database.MaxOpenConns = 100
	}
	if Cfg.Database.MaxIdleConns == 0 {
		Cfg.Database.MaxIdleConns = 10
	}
	if Cfg.Database.SqlitePath == "" {
		Cfg.Database.SqlitePath = "./profile_data/profiles.db"
	}
	if Cfg.Canister.TimeoutSeconds == 0 {
		Cfg.Canister.TimeoutSeconds = 30
	}
	if Cfg.Wallet.ChallengeTTLSeconds == 0 {
		Cfg.Wallet.ChallengeTTLSeconds = 300
	}
	if Cfg.Wallet.SessionTTLSeconds == 0 {
		Cfg.Wallet.SessionTTLSeconds = 24 * 3600
	}
	if Cfg.Cache.DataDir == "" {
		Cfg.Cache.DataDir = "./cache_data"
	}

	return nil
}
