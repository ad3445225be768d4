package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrPolicyNotFound is returned when no active policy has the requested name
var ErrPolicyNotFound = errors.New("policy not found")

// PolicyStore reads policy documents from PostgreSQL. Documents are YAML
// and are parsed by the policy package.
type PolicyStore struct {
	db *sql.DB
}

// NewPolicyStore initializes a new policy store
func NewPolicyStore(db *sql.DB) *PolicyStore {
	return &PolicyStore{db: db}
}

// ActivePolicy returns the most recently updated active document with the given name
func (r *PolicyStore) ActivePolicy(ctx context.Context, name string) ([]byte, error) {
	query := `
		SELECT document
		FROM finhealth.policies
		WHERE name = $1 AND active
		ORDER BY updated_at DESC
		LIMIT 1`
	var document []byte
	err := r.db.QueryRowContext(ctx, query, name).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPolicyNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load policy %s: %w", name, err)
	}
	return document, nil
}
