package main

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nemtech/catapult-sdk-go/client"
	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/dtomapping"
)

const (
	// CfgNodeURL defines the URL of the REST gateway of the node.
	CfgNodeURL = "node.url"
	// CfgNodeWebSocketURL defines the URL of the websocket endpoint (defaults to the node URL with the ws scheme).
	CfgNodeWebSocketURL = "node.websocketURL"
	// CfgNodeTimeout defines the timeout of a single request.
	CfgNodeTimeout = "node.timeout"
	// CfgNodeRetries defines how often a failed request is repeated.
	CfgNodeRetries = "node.retries"
	// CfgNetworkType defines the network type (e.g. TEST_NET). It is requested from the node if empty.
	CfgNetworkType = "network.type"
	// CfgNetworkGenerationHash defines the generation hash seed. It is requested from the node if empty.
	CfgNetworkGenerationHash = "network.generationHash"
	// CfgNetworkEpochAdjustment defines the epoch adjustment as a server duration (e.g. 1615853185s). It is requested
	// from the node if empty.
	CfgNetworkEpochAdjustment = "network.epochAdjustment"
	// CfgStatementsCacheTTL defines how long the receipt statements of a block are cached.
	CfgStatementsCacheTTL = "statements.cacheTTL"
	// CfgClockNTPPools defines the NTP pools the local clock is synchronized with. The local time is used if empty.
	CfgClockNTPPools = "clock.ntpPools"
	// CfgDecodeWorkers defines the amount of workers that decode payloads in parallel.
	CfgDecodeWorkers = "decode.workers"
	// CfgLoggerLevel defines the minimum level of the log output.
	CfgLoggerLevel = "logger.level"
	// CfgMetricsBindAddress defines the address the prometheus metrics are exposed on. They are not exposed if empty.
	CfgMetricsBindAddress = "metrics.bindAddress"
)

var defaults = map[string]interface{}{
	CfgNodeURL:                "http://localhost:3000",
	CfgNodeWebSocketURL:       "",
	CfgNodeTimeout:            10 * time.Second,
	CfgNodeRetries:            2,
	CfgNetworkType:            "",
	CfgNetworkGenerationHash:  "",
	CfgNetworkEpochAdjustment: "",
	CfgStatementsCacheTTL:     10 * time.Minute,
	CfgClockNTPPools:          []string{},
	CfgDecodeWorkers:          8,
	CfgLoggerLevel:            "info",
	CfgMetricsBindAddress:     "",
}

// configFlags holds the flags that locate the config file.
type configFlags struct {
	name       *string
	dirPath    *string
	skipConfig *bool
}

func newConfigFlags(flags *flag.FlagSet) *configFlags {
	return &configFlags{
		name:       flags.StringP("config", "c", "config", "Filename of the config file without the file extension"),
		dirPath:    flags.StringP("config-dir", "d", ".", "Path to the directory containing the config file"),
		skipConfig: flags.Bool("skip-config", false, "Skip config file availability check"),
	}
}

// loadConfig reads a single config file starting with the configured name from the config dir. Every value can be
// overridden by an environment variable with the dots of its key replaced by underscores (e.g. NODE_URL).
func loadConfig(flags *configFlags) (*viper.Viper, error) {
	config := viper.New()
	for key, value := range defaults {
		config.SetDefault(key, value)
	}

	// replace dots with underscores in env
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	config.SetConfigName(*flags.name)
	config.AddConfigPath(*flags.dirPath)
	if err := config.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) || !*flags.skipConfig {
			return nil, errors.Wrapf(err, "failed to read config '%s' in '%s'", *flags.name, *flags.dirPath)
		}
	}

	return config, nil
}

// clientConfig translates the node and network settings into a client.Config.
func clientConfig(config *viper.Viper) (clientConfig client.Config, err error) {
	clientConfig = client.Config{
		URL:            config.GetString(CfgNodeURL),
		WebSocketURL:   config.GetString(CfgNodeWebSocketURL),
		Timeout:        config.GetDuration(CfgNodeTimeout),
		Retries:        config.GetInt(CfgNodeRetries),
		StatementTTL:   config.GetDuration(CfgStatementsCacheTTL),
		GenerationHash: config.GetString(CfgNetworkGenerationHash),
	}

	if name := config.GetString(CfgNetworkType); name != "" {
		networkType, parseErr := catapult.NetworkTypeFromString(name)
		if parseErr != nil {
			return clientConfig, errors.Errorf("invalid %s: %w", CfgNetworkType, parseErr)
		}
		clientConfig.NetworkType = &networkType
	}

	if serverValue := config.GetString(CfgNetworkEpochAdjustment); serverValue != "" {
		epochAdjustment, parseErr := dtomapping.ParseServerDuration(serverValue)
		if parseErr != nil {
			return clientConfig, errors.Errorf("invalid %s: %w", CfgNetworkEpochAdjustment, parseErr)
		}
		clientConfig.EpochAdjustment = &epochAdjustment
	}

	return clientConfig, nil
}
