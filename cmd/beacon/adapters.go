package main

import (
	"context"
	"fmt"

	"github.com/Tap30/beacon-go/adapters"
	"github.com/Tap30/beacon-go/internal/config"
)

// newTransport returns the configured transport and the endpoint to pass to
// it. Kafka uses the topic as its endpoint.
func newTransport(cfg *config.Config) (adapters.TransportAdapter, string, error) {
	switch cfg.Client.Transport {
	case "http", "":
		return adapters.NewNetHTTPAdapter(cfg.Client.SendTimeout), cfg.Client.Endpoint, nil
	case "kafka":
		return adapters.NewKafkaTransportAdapter(cfg.Kafka.Brokers...), cfg.Kafka.Topic, nil
	default:
		return nil, "", fmt.Errorf("unknown transport %q", cfg.Client.Transport)
	}
}

func newStorage(ctx context.Context, cfg *config.Config) (adapters.StorageAdapter, error) {
	switch cfg.Storage.Driver {
	case "file", "":
		return adapters.NewFileStorageAdapter(cfg.Storage.FilePath()), nil
	case "sqlite":
		storage, err := adapters.NewSQLiteStorageAdapter(cfg.Storage.FilePath())
		if err != nil {
			return nil, err
		}
		return storage, nil
	case "redis":
		storage, err := adapters.NewRedisStorageAdapter(ctx, adapters.RedisConfig{
			Addr: cfg.Storage.RedisAddr,
			Key:  cfg.Storage.RedisKey,
		})
		if err != nil {
			return nil, err
		}
		return storage, nil
	case "noop":
		return adapters.NewNoOpStorageAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
