// Package store persists whole collections as opaque values under string keys.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Collection keys. Each key holds one full JSON-encoded collection.
const (
	KeyInfluencers        = "influencer-data"
	KeyCampaigns          = "campaigns-data"
	KeyCreatorSubmissions = "submissions-data"
	KeyAgencySubmissions  = "agency-submissions-data"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverBolt     = "bolt"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown store driver")

// Store is a key-value store with whole-value get/set semantics.
// Get returns a nil slice and no error when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Options selects and configures a store backend.
type Options struct {
	Driver      string
	Path        string // bolt and sqlite file path
	DatabaseURL string // postgres
	RedisURL    string // redis
}

// Open creates the store backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverBolt:
		return NewBolt(opts.Path)
	case DriverSQLite:
		return NewSQLite(ctx, opts.Path)
	case DriverPostgres:
		s, err := NewPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := s.RunMigrations(opts.DatabaseURL); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case DriverRedis:
		return NewRedis(opts.RedisURL), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
