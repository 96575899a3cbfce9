package run

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/orgball2608/insta-archiver/internal/domain"
	"github.com/orgball2608/insta-archiver/pkg/errors"
	"github.com/orgball2608/insta-archiver/pkg/logger"
)

var (
	runPrefix   = []byte("run:")
	sequenceKey = []byte("seq:run")
)

// Badger stores runs in an embedded BadgerDB, one JSON value per run keyed by its id.
type Badger struct {
	db     *badger.DB
	seq    *badger.Sequence
	logger logger.Logger
}

var _ Repository = (*Badger)(nil)

func NewBadger(path string, log logger.Logger) (*Badger, error) {
	log = log.WithComponent("RunLedger")

	opts := badger.DefaultOptions(path)
	opts.Logger = &badgerLogger{log}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db at %s: %w", path, err)
	}

	seq, err := db.GetSequence(sequenceKey, 16)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open run sequence: %w", err)
	}

	log.Info("Run ledger opened", "path", path)
	return &Badger{db: db, seq: seq, logger: log}, nil
}

func (r *Badger) Close() error {
	if err := r.seq.Release(); err != nil {
		r.logger.Warn("Failed to release run sequence", "error", err)
	}
	return r.db.Close()
}

// runKey keeps keys ordered by id under lexicographic iteration.
func runKey(id int64) []byte {
	key := make([]byte, len(runPrefix)+8)
	copy(key, runPrefix)
	binary.BigEndian.PutUint64(key[len(runPrefix):], uint64(id))
	return key
}

func (r *Badger) Create(ctx context.Context, summary *domain.RunSummary) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	next, err := r.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate run id: %w", err)
	}
	// sequences start at zero
	summary.ID = int64(next) + 1

	value, err := json.Marshal(summary)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal run: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(runKey(summary.ID), value))
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save run %d: %w", summary.ID, err)
	}

	r.logger.Debug("Run recorded", "run_id", summary.ID)
	return summary.ID, nil
}

func (r *Badger) Latest(ctx context.Context) (*domain.RunSummary, error) {
	runs, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, errors.ErrNotFound
	}
	return runs[0], nil
}

func (r *Badger) List(ctx context.Context, limit int) ([]*domain.RunSummary, error) {
	var runs []*domain.RunSummary

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = runPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		// reverse iteration starts from the largest key below the seek key
		seek := append(append([]byte{}, runPrefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(runPrefix); it.Next() {
			if limit > 0 && len(runs) >= limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			item := it.Item()
			var summary domain.RunSummary
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &summary)
			})
			if err != nil {
				return fmt.Errorf("failed to decode run %x: %w", item.Key(), err)
			}
			runs = append(runs, &summary)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return runs, nil
}

// badgerLogger adapts logger.Logger to Badger's logger interface.
type badgerLogger struct {
	logger logger.Logger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(f, v...))
}

func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(f, v...))
}

func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(f, v...))
}

func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(f, v...))
}
