package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store bundles the per-aggregate repositories over one shared query
// target, so the same repository code runs against the pool or a
// transaction.
type Store struct {
	db *sqlx.DB

	Contents   *ContentRepository
	Places     *PlaceRepository
	Links      *LinkRepository
	Keywords   *KeywordRepository
	Recipients *RecipientRepository
	Interests  *InterestRepository
}

// NewStore creates a store whose repositories run directly on the pool.
func NewStore(db *sqlx.DB) *Store {
	return bindStore(db, db)
}

func bindStore(db *sqlx.DB, q sqlx.ExtContext) *Store {
	return &Store{
		db:         db,
		Contents:   &ContentRepository{q: q},
		Places:     &PlaceRepository{q: q},
		Links:      &LinkRepository{q: q},
		Keywords:   &KeywordRepository{q: q},
		Recipients: &RecipientRepository{q: q},
		Interests:  &InterestRepository{q: q},
	}
}

// InTx runs fn inside a single transaction: every repository on the store
// passed to fn is bound to that transaction. The transaction commits when
// fn returns nil and rolls back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if fnErr := fn(bindStore(s.db, tx)); fnErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", fnErr, rbErr)
		}
		return fnErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("commit tx: %w", commitErr)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
