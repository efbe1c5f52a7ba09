package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"

	bolt "go.etcd.io/bbolt"
)

// BoltStore keeps one record per key in a bucket. Keys are big-endian ids, so
// bolt's byte ordering matches insertion order under the max+1 id rule.
type BoltStore[T Entity[T]] struct {
	mu     sync.RWMutex
	db     *bolt.DB
	bucket []byte
}

func NewBoltStore[T Entity[T]](db *bolt.DB, bucket string) (*BoltStore[T], error) {
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		return nil, fmt.Errorf("bolt: create bucket %q: %w", bucket, err)
	}

	return &BoltStore[T]{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

func (s *BoltStore[T]) List() ([]T, error) {
	return s.Filter(func(T) bool { return true })
}

func (s *BoltStore[T]) Filter(pred func(T) bool) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0)
	if err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, v []byte) error {
			var item T
			if err := json.Unmarshal(v, &item); err != nil {
				return err
			}
			if pred(item) {
				out = append(out, item)
			}
			return nil
		})
	}); err != nil {
		return nil, fmt.Errorf("bolt: scan %q: %w", s.bucket, err)
	}
	return out, nil
}

func (s *BoltStore[T]) Get(id int) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var item T
	var found bool
	if err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get(idKey(id))
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &item); err != nil {
			return err
		}
		found = true
		return nil
	}); err != nil {
		return item, false, fmt.Errorf("bolt: get %q/%d: %w", s.bucket, id, err)
	}
	return item, found, nil
}

func (s *BoltStore[T]) Create(t T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		id := 1
		if k, _ := b.Cursor().Last(); k != nil {
			id = keyID(k) + 1
		}
		t = t.WithID(id)
		return put(b, t)
	}); err != nil {
		var zero T
		return zero, fmt.Errorf("bolt: create in %q: %w", s.bucket, err)
	}
	return t, nil
}

func (s *BoltStore[T]) Update(id int, fn func(T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated T
	var fnErr error
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		v := b.Get(idKey(id))
		if v == nil {
			return ErrNotFound
		}
		var current T
		if err := json.Unmarshal(v, &current); err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			fnErr = err
			return err
		}
		updated = next.WithID(id)
		return put(b, updated)
	})
	if fnErr != nil {
		var zero T
		return zero, fnErr
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("bolt: update %q/%d: %w", s.bucket, id, err)
	}
	return updated, nil
}

func (s *BoltStore[T]) Delete(id int) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed T
	if err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		v := b.Get(idKey(id))
		if v == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(v, &removed); err != nil {
			return err
		}
		return b.Delete(idKey(id))
	}); err != nil {
		var zero T
		return zero, fmt.Errorf("bolt: delete %q/%d: %w", s.bucket, id, err)
	}
	return removed, nil
}

func put[T Entity[T]](b *bolt.Bucket, t T) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return b.Put(idKey(t.EntityID()), data)
}

func idKey(id int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(id))
	return k
}

func keyID(k []byte) int {
	return int(binary.BigEndian.Uint64(k))
}
