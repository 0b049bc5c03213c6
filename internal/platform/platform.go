package platform

import (
	"context"
	"fmt"

	"github.com/agriquote/agriquote-backend/pkg/config"
	"github.com/agriquote/agriquote-backend/pkg/db"
	"github.com/agriquote/agriquote-backend/pkg/db/models"
	"github.com/agriquote/agriquote-backend/pkg/locks"
	"github.com/agriquote/agriquote-backend/pkg/logger"
	"github.com/agriquote/agriquote-backend/pkg/migrate"
	"github.com/agriquote/agriquote-backend/pkg/redis"
	"github.com/agriquote/agriquote-backend/pkg/store"
	"github.com/agriquote/agriquote-backend/pkg/store/gormstore"
	"go.uber.org/multierr"
)

// Platform holds the storage resources shared by every binary.
type Platform struct {
	DB    *db.Client
	Redis *redis.Client

	Users    *store.Collection[models.User]
	Tractors *store.Collection[models.Tractor]
	Requests *store.Collection[models.QuotationRequest]
}

// Open connects the database, Redis when configured, prepares the schema and binds the collections.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*Platform, error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap database: %w", err)
	}
	p := &Platform{DB: dbClient}

	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, multierr.Append(fmt.Errorf("bootstrap redis: %w", err), p.Close())
		}
		p.Redis = redisClient
	}

	backend, err := gormstore.New(dbClient)
	if err != nil {
		return nil, multierr.Append(err, p.Close())
	}

	if cfg.DB.IsSQLite() {
		if err := backend.AutoMigrate(ctx); err != nil {
			return nil, multierr.Append(fmt.Errorf("sqlite automigrate: %w", err), p.Close())
		}
	} else if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
		return nil, multierr.Append(err, p.Close())
	}

	locker, err := p.locker(cfg, logg)
	if err != nil {
		return nil, multierr.Append(err, p.Close())
	}

	if p.Users, err = store.NewCollection[models.User](backend, locker, store.CollectionUsers); err != nil {
		return nil, multierr.Append(err, p.Close())
	}
	if p.Tractors, err = store.NewCollection[models.Tractor](backend, locker, store.CollectionTractors); err != nil {
		return nil, multierr.Append(err, p.Close())
	}
	if p.Requests, err = store.NewCollection[models.QuotationRequest](backend, locker, store.CollectionRequests); err != nil {
		return nil, multierr.Append(err, p.Close())
	}
	return p, nil
}

func (p *Platform) locker(cfg *config.Config, logg *logger.Logger) (locks.Locker, error) {
	if !cfg.Locks.UsesRedis() {
		return locks.NewLocal(), nil
	}
	if p.Redis == nil {
		return nil, fmt.Errorf("redis locks selected without a redis client")
	}
	return locks.NewRedis(p.Redis, cfg.Locks.TTL, cfg.Locks.RetryInterval, logg)
}

// Close releases every opened connection.
func (p *Platform) Close() error {
	var err error
	if p.Redis != nil {
		err = multierr.Append(err, p.Redis.Close())
	}
	if p.DB != nil {
		err = multierr.Append(err, p.DB.Close())
	}
	return err
}
