package store

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/pukulo/ledgerchat/internal/domain"
)

var turnsBucket = []byte("turns")

// History persists chat turns across sessions. Turns are display-only;
// losing them never loses financial data.
type History struct {
	db *bolt.DB
}

// OpenHistory opens (or creates) the history database at path.
func OpenHistory(path string) (*History, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(turnsBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: create bucket: %w", err)
	}
	return &History{db: db}, nil
}

// Append adds one turn at the end of the history.
func (h *History) Append(turn domain.Turn) error {
	return h.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(turnsBucket)

		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("history: next sequence: %w", err)
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		var val bytes.Buffer
		if err := gob.NewEncoder(&val).Encode(turn); err != nil {
			return fmt.Errorf("history: encode turn: %w", err)
		}
		return b.Put(key, val.Bytes())
	})
}

// Turns returns all turns in append order.
func (h *History) Turns() ([]domain.Turn, error) {
	var turns []domain.Turn
	err := h.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(turnsBucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var t domain.Turn
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&t); err != nil {
				return fmt.Errorf("history: decode turn: %w", err)
			}
			turns = append(turns, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return turns, nil
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}
