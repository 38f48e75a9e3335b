package graphstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/kgraph/core"
)

// Store wraps a BadgerDB instance holding documents and graph topology.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a BadgerDB database at the specified path.
// Creates the directory if it doesn't exist.
func Open(filePath string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		logger: slog.Default().With("component", "graphstore"),
	}, nil
}

// Close closes the BadgerDB database.
func (s *Store) Close() error {
	return s.db.Close()
}

// IsClosed returns true if the database is closed.
func (s *Store) IsClosed() bool {
	return s.db.IsClosed()
}

// withTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction that is committed
// when fn succeeds.
func (s *Store) withTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	if s.db.IsClosed() {
		return ErrStoreClosed
	}
	tx := s.db.NewTransaction(isWrite)
	defer tx.Discard()
	if err := fn(tx); err != nil {
		return err
	}
	if isWrite {
		return tx.Commit()
	}
	return nil
}

// getJSON reads a key inside tx and unmarshals its value into out.
func getJSON(tx *badger.Txn, key []byte, out any) error {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

// setJSON marshals v and writes it under key inside tx.
func setJSON(tx *badger.Txn, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return tx.Set(key, data)
}

// PutDocument stores a document record, overwriting any previous version.
// Sets InsertedAt if not already set.
func (s *Store) PutDocument(ctx context.Context, doc *core.Document) error {
	if doc.InsertedAt.IsZero() {
		doc.InsertedAt = time.Now().UTC()
	}
	return s.withTx(func(tx *badger.Txn) error {
		return setJSON(tx, makeDocumentKey(doc.Id), doc)
	}, true)
}

// GetDocument retrieves a document by ID.
// Returns ErrNotFound if the document doesn't exist.
func (s *Store) GetDocument(ctx context.Context, id string) (*core.Document, error) {
	var doc core.Document
	err := s.withTx(func(tx *badger.Txn) error {
		return getJSON(tx, makeDocumentKey(id), &doc)
	}, false)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes a document record by ID.
// Returns ErrNotFound if the document doesn't exist.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	return s.withTx(func(tx *badger.Txn) error {
		key := makeDocumentKey(id)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(key)
	}, true)
}

// MergeEntity inserts an entity node or merges it into an existing one with
// the same ID. Descriptions accumulate; a description already present is
// not repeated. Returns the merged entity.
func (s *Store) MergeEntity(ctx context.Context, entity *core.Entity) (*core.Entity, error) {
	if entity.Id == "" {
		entity.Id = core.EntityID(entity.Name)
	}
	now := time.Now().UTC()

	merged := *entity
	err := s.withTx(func(tx *badger.Txn) error {
		var existing core.Entity
		err := getJSON(tx, makeEntityKey(entity.Id), &existing)
		switch {
		case errors.Is(err, ErrNotFound):
			merged.InsertedAt = now
			merged.UpdatedAt = now
		case err != nil:
			return err
		default:
			merged = existing
			merged.Description = mergeDescriptions(existing.Description, entity.Description)
			if merged.Type == "" {
				merged.Type = entity.Type
			}
			merged.UpdatedAt = now
		}
		return setJSON(tx, makeEntityKey(entity.Id), &merged)
	}, true)
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

// GetEntity retrieves an entity by ID.
// Returns ErrNotFound if the entity doesn't exist.
func (s *Store) GetEntity(ctx context.Context, id string) (*core.Entity, error) {
	var entity core.Entity
	err := s.withTx(func(tx *badger.Txn) error {
		return getJSON(tx, makeEntityKey(id), &entity)
	}, false)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// MergeRelation inserts a relation edge or merges it into an existing one
// with the same ID, and maintains the per-entity relation index for both
// endpoints. The merged relation keeps the higher strength. Returns the
// merged relation.
func (s *Store) MergeRelation(ctx context.Context, relation *core.Relation) (*core.Relation, error) {
	if relation.Id == "" {
		relation.Id = core.RelationID(relation.Source, relation.Target)
	}
	now := time.Now().UTC()

	merged := *relation
	err := s.withTx(func(tx *badger.Txn) error {
		var existing core.Relation
		err := getJSON(tx, makeRelationKey(relation.Id), &existing)
		switch {
		case errors.Is(err, ErrNotFound):
			merged.InsertedAt = now
			merged.UpdatedAt = now
		case err != nil:
			return err
		default:
			merged = existing
			merged.Description = mergeDescriptions(existing.Description, relation.Description)
			if relation.Strength > merged.Strength {
				merged.Strength = relation.Strength
			}
			merged.UpdatedAt = now
		}

		if err := setJSON(tx, makeRelationKey(relation.Id), &merged); err != nil {
			return err
		}
		if err := tx.Set(makeRelationIdxKey(merged.Source, merged.Id), nil); err != nil {
			return err
		}
		return tx.Set(makeRelationIdxKey(merged.Target, merged.Id), nil)
	}, true)
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

// RelationsForEntity retrieves all relations touching the named entity,
// in either direction.
func (s *Store) RelationsForEntity(ctx context.Context, entityName string) ([]*core.Relation, error) {
	var relationIDs []string

	err := s.withTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := makePartialRelationIdxKey(entityName)
		opts.Prefix = prefix

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := string(iter.Item().Key())
			relationIDs = append(relationIDs, strings.TrimPrefix(key, string(prefix)))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	relations := make([]*core.Relation, 0, len(relationIDs))
	err = s.withTx(func(tx *badger.Txn) error {
		for _, id := range relationIDs {
			var rel core.Relation
			if err := getJSON(tx, makeRelationKey(id), &rel); err != nil {
				if errors.Is(err, ErrNotFound) {
					continue // dangling index entry
				}
				return err
			}
			relations = append(relations, &rel)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return relations, nil
}

// mergeDescriptions appends the new description to the existing one unless
// it is empty or already contained.
func mergeDescriptions(existing, incoming string) string {
	incoming = strings.TrimSpace(incoming)
	if incoming == "" {
		return existing
	}
	if existing == "" {
		return incoming
	}
	if strings.Contains(existing, incoming) {
		return existing
	}
	return existing + " " + incoming
}
