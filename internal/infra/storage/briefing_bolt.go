package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"daily-briefing/internal/domain/entity"
)

var briefingsBucket = []byte("briefings")

// BoltStore keeps every briefing in a single bbolt file, keyed by date.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(dbPath string) (*BoltStore, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(briefingsBucket)
		return createErr
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Get(_ context.Context, date string) (*entity.DailyBriefing, error) {
	if err := entity.ValidateDate(date); err != nil {
		return nil, err
	}
	var b entity.DailyBriefing
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(briefingsBucket).Get([]byte(date))
		if data == nil {
			return entity.ErrNotFound
		}
		return json.Unmarshal(data, &b)
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BoltStore) Put(_ context.Context, b *entity.DailyBriefing) error {
	if b == nil {
		return fmt.Errorf("%w: nil briefing", entity.ErrInvalidInput)
	}
	if err := entity.ValidateDate(b.Date); err != nil {
		return err
	}
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode briefing %s: %w", b.Date, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(briefingsBucket).Put([]byte(b.Date), data)
	})
}

// Dates lists stored briefing dates in ascending order.
func (s *BoltStore) Dates() ([]string, error) {
	var dates []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(briefingsBucket).ForEach(func(k, _ []byte) error {
			dates = append(dates, string(k))
			return nil
		})
	})
	return dates, err
}
