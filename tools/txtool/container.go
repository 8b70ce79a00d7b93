package main

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/dig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nemtech/catapult-sdk-go/client"
	"github.com/nemtech/catapult-sdk-go/packages/bulkdecode"
	"github.com/nemtech/catapult-sdk-go/packages/clock"
)

// newContainer provides the components of the tool. They are only constructed when a command requests them.
func newContainer(config *viper.Viper) (*dig.Container, error) {
	container := dig.New()

	for _, constructor := range []interface{}{
		func() *viper.Viper { return config },
		newLogger,
		prometheus.NewRegistry,
		newClock,
		newMetrics,
		newClient,
		newDecoder,
	} {
		if err := container.Provide(constructor); err != nil {
			return nil, errors.Wrap(err, "failed to provide dependency")
		}
	}

	return container, nil
}

func newLogger(config *viper.Viper) (*logger.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(config.GetString(CfgLoggerLevel))); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", CfgLoggerLevel)
	}

	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.DisableStacktrace = true

	root, err := zapConfig.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}

	return root.Sugar().Named("txtool"), nil
}

func newClock(config *viper.Viper, log *logger.Logger) *clock.Clock {
	pools := config.GetStringSlice(CfgClockNTPPools)
	localClock := clock.New(pools)
	if len(pools) == 0 {
		return localClock
	}

	if err := localClock.Sync(); err != nil {
		log.Warnw("Failed to synchronize clock, using local time", "pools", pools, "err", err)
		return localClock
	}
	log.Debugw("Synchronized clock", "offset", localClock.Offset())

	return localClock
}

func newMetrics(registry *prometheus.Registry) (*client.Metrics, error) {
	return client.NewMetrics(registry)
}

func newClient(config *viper.Viper, log *logger.Logger, metrics *client.Metrics) (*client.Client, error) {
	clientConfig, err := clientConfig(config)
	if err != nil {
		return nil, err
	}

	return client.New(clientConfig, log.Named("client"), metrics)
}

func newDecoder(config *viper.Viper) (*bulkdecode.Decoder, error) {
	return bulkdecode.New(config.GetInt(CfgDecodeWorkers))
}
