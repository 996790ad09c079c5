package config

import (
	"os"
	"strconv"
	"time"

	"go-teachain-ws/internal/ledger/evm"
)

// Config is the process configuration, read from the environment after
// godotenv has loaded .env.
type Config struct {
	Port      string
	LogLevel  int
	LogFormat string
	Ledger    evm.Config
}

// Load reads the environment. Missing ledger settings are allowed: the
// gateway layer reports GatewayUnavailableError when an unset endpoint is
// actually used.
func Load() Config {
	return Config{
		Port:      getEnv("PORT", "3000"),
		LogLevel:  getEnvInt("LOG_LEVEL", 1), // zerolog info
		LogFormat: getEnv("LOG_FORMAT", "console"),
		Ledger: evm.Config{
			RPCURL:          os.Getenv("LEDGER_RPC_URL"),
			ContractAddress: os.Getenv("LEDGER_CONTRACT_ADDRESS"),
			ChainID:         int64(getEnvInt("LEDGER_CHAIN_ID", 1337)),
			PrivateKeyHex:   os.Getenv("LEDGER_SERVICE_KEY"),
			Timeout:         getEnvDuration("LEDGER_TIMEOUT", 90*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
