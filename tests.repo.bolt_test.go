package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestBoltJournal returns a bolt journal backed by a temporary file.
func newTestBoltJournal() (*boltEventJournal, error) {
	f, err := os.CreateTemp("", "tmp.bolt.db-")
	if err != nil {
		return nil, err
	}
	f.Close()
	testConfig := &Config{
		BoltDB: BoltDBConfig{
			FilePath:   f.Name(),
			Timeout:    5 * time.Second,
			BucketName: "test.activity",
		},
	}

	client, err := GetBoltDBClient(testConfig)
	if err != nil {
		return nil, err
	}

	return &boltEventJournal{
		logger: zap.NewNop(),
		client: client,
		config: &testConfig.BoltDB,
	}, nil
}

// closeTestBoltJournal closes the temporary journal and removes the underlying data file.
func (bj *boltEventJournal) closeTestBoltJournal() error {
	defer os.Remove(bj.config.FilePath)
	return bj.Close()
}

// Ensure an empty journal returns an empty non-nil list.
func TestBoltJournal_GetAll_Empty(t *testing.T) {
	bj, err := newTestBoltJournal()
	require.NoError(t, err, "failed in creating a test bolt journal")
	defer bj.closeTestBoltJournal()

	events, err := bj.GetAll(context.TODO())
	assert.NoError(t, err)
	assert.NotNil(t, events)
	assert.Len(t, events, 0)
}

// Ensure bolt journal returns events in append order.
func TestBoltJournal_Append(t *testing.T) {
	bj, err := newTestBoltJournal()
	require.NoError(t, err, "failed in creating a test bolt journal")
	defer bj.closeTestBoltJournal()

	at := NewMockClocker().Now()
	inputs := []CatalogEvent{
		NewCatalogEvent("e:0", BookAddedEvent, mustBook("Dune", "Frank Herbert"), at),
		NewCatalogEvent("e:1", BookAddedEvent, mustBook("Emma", "Jane Austen"), at.Add(time.Minute)),
		NewCatalogEvent("e:2", BookRemovedEvent, mustBook("Dune", "Frank Herbert"), at.Add(2*time.Minute)),
	}
	// more than 255 entries so single byte keys would break the ordering.
	for i := 0; i < 300; i++ {
		inputs = append(inputs, NewCatalogEvent("e:x", BookAddedEvent, mustBook("T", "A"), at))
	}

	for _, e := range inputs {
		require.NoError(t, bj.Append(context.TODO(), e))
	}

	events, err := bj.GetAll(context.TODO())
	require.NoError(t, err)
	require.Len(t, events, len(inputs))
	for i := 0; i < 3; i++ {
		assert.Equal(t, inputs[i].ID, events[i].ID)
		assert.Equal(t, inputs[i].Kind, events[i].Kind)
		assert.Equal(t, inputs[i].Title, events[i].Title)
		assert.Equal(t, inputs[i].Author, events[i].Author)
		assert.True(t, inputs[i].At.Equal(events[i].At))
	}
	assert.Equal(t, "e:x", events[len(events)-1].ID)
}

// Ensure events survive a journal reopening.
func TestBoltJournal_Reopen(t *testing.T) {
	bj, err := newTestBoltJournal()
	require.NoError(t, err, "failed in creating a test bolt journal")
	path := bj.config.FilePath
	defer os.Remove(path)

	require.NoError(t, bj.Append(context.TODO(), NewCatalogEvent("e:0", BookAddedEvent, mustBook("Dune", "Frank Herbert"), NewMockClocker().Now())))
	require.NoError(t, bj.Close())

	config := &Config{BoltDB: BoltDBConfig{FilePath: path, Timeout: 5 * time.Second, BucketName: "test.activity"}}
	client, err := GetBoltDBClient(config)
	require.NoError(t, err)
	reopened := NewBoltEventJournal(zap.NewNop(), &config.BoltDB, client)
	defer client.Close()

	events, err := reopened.GetAll(context.TODO())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e:0", events[0].ID)
}
