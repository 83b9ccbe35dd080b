// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var settingsBucket = []byte("settings")

// boltLockTimeout bounds the wait for another process holding the database.
const boltLockTimeout = time.Second

// Bolt is a Store backed by a bbolt database file.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens or creates the database at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: boltLockTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(settingsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(_ context.Context, key string) (string, error) {
	var (
		value string
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(settingsBucket).Get([]byte(key))
		if v != nil {
			value, found = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", b.wrap(err)
	}
	if !found {
		return "", ErrNotFound
	}
	return value, nil
}

func (b *Bolt) Set(_ context.Context, key, value string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).Put([]byte(key), []byte(value))
	})
	return b.wrap(err)
}

func (b *Bolt) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).Delete([]byte(key))
	})
	return b.wrap(err)
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

func (b *Bolt) wrap(err error) error {
	if err == bolt.ErrDatabaseNotOpen {
		return ErrClosed
	}
	return err
}
