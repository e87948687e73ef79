package main

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

type boltEventJournal struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BoltDB.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BoltDB.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltEventJournal provides an instance of bolt-based activity journal.
func NewBoltEventJournal(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) EventJournal {
	return &boltEventJournal{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based journal.
func (bj *boltEventJournal) Close() error {
	return bj.client.Close()
}

// Append stores the event under the next bucket sequence. Keys are
// big-endian so a cursor walk returns events in append order.
func (bj *boltEventJournal) Append(_ context.Context, event CatalogEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return bj.client.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bj.config.BucketName))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return b.Put(key, eventBytes)
	})
}

// GetAll retrieves all journal entries, oldest first.
func (bj *boltEventJournal) GetAll(_ context.Context) ([]CatalogEvent, error) {
	tx, err := bj.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c := tx.Bucket([]byte(bj.config.BucketName)).Cursor()

	events := []CatalogEvent{}
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var event CatalogEvent
		if err = json.Unmarshal(v, &event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
