// Package localstore persists the small set of values the host page keeps on
// the client: the auth token and the remembered user name. Values live as
// plain files under one directory so that out-of-band edits (another process,
// an operator) are possible and observable via Watch.
package localstore

import (
	"context"
	"fmt"
	"os"

	gocache "github.com/patrickmn/go-cache"
	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"github.com/tabrail/tabrail/internal/pkg/config"
)

// Well-known keys. The bottom nav's credential probe reads both.
const (
	KeyAuthToken = "auth_token"
	KeyUserName  = "user_name"
)

const diskCacheSizeMax = 64 * 1024

type Store struct {
	d      *diskv.Diskv
	mem    *gocache.Cache
	logger *zap.Logger
}

// New opens (creating if needed) the store rooted at cfg.Path.
func New(cfg config.StoreConfig, logger *zap.Logger) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("localstore: path must not be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: create %s: %w", cfg.Path, err)
	}

	d := diskv.New(diskv.Options{
		BasePath: cfg.Path,
		// Keys are flat; every value is a file directly under BasePath.
		Transform:    func(string) []string { return nil },
		CacheSizeMax: diskCacheSizeMax,
	})

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}

	return &Store{
		d:      d,
		mem:    gocache.New(ttl, 2*ttl),
		logger: logger,
	}, nil
}

// Set writes value under key and refreshes the memory cache.
func (s *Store) Set(key, value string) error {
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("localstore: write %s: %w", key, err)
	}
	s.mem.Set(key, value, gocache.DefaultExpiration)
	s.logger.Debug("store value written", zap.String("key", key))
	return nil
}

// Get returns the value under key. Reads are served from the memory cache
// when possible and fall through to disk otherwise.
func (s *Store) Get(key string) (string, bool) {
	if v, ok := s.mem.Get(key); ok {
		return v.(string), true
	}
	raw, err := s.d.Read(key)
	if err != nil {
		return "", false
	}
	value := string(raw)
	s.mem.Set(key, value, gocache.DefaultExpiration)
	return value, true
}

// Delete removes key from disk and memory. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	s.mem.Delete(key)
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("localstore: erase %s: %w", key, err)
	}
	s.logger.Debug("store value deleted", zap.String("key", key))
	return nil
}

// Invalidate drops key from the memory cache so the next Get re-reads disk.
// The watcher calls this when a file changes underneath us.
func (s *Store) Invalidate(key string) {
	s.mem.Delete(key)
}

// BasePath is the directory values live under.
func (s *Store) BasePath() string {
	return s.d.BasePath
}

// Token returns the persisted auth token, or "" when none is stored. It
// satisfies the bottom nav's credential source.
func (s *Store) Token(_ context.Context) string {
	v, _ := s.Get(KeyAuthToken)
	return v
}

// UserName returns the persisted user name, or "" when none is stored.
func (s *Store) UserName(_ context.Context) string {
	v, _ := s.Get(KeyUserName)
	return v
}
