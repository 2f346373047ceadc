package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// LocalScope is the prefs scope used for local play.
const LocalScope = "local"

// Prefs is a durable integer key/value store bound to one scope, so every
// SSH user keeps their own story flag, play count and high score.
type Prefs struct {
	store *Store
	scope string
}

// Prefs returns the preference store for scope.
func (s *Store) Prefs(scope string) *Prefs {
	if scope == "" {
		scope = LocalScope
	}
	return &Prefs{store: s, scope: scope}
}

// Int returns the stored value, 0 when the key is absent.
func (p *Prefs) Int(key string) (int, error) {
	var v int
	err := p.store.db.QueryRow(
		"SELECT value FROM prefs WHERE scope = ? AND key = ?",
		p.scope, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read pref %s: %w", key, err)
	}
	return v, nil
}

// SetInt stores a value, replacing any previous one.
func (p *Prefs) SetInt(key string, v int) error {
	_, err := p.store.db.Exec(
		`INSERT INTO prefs (scope, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(scope, key) DO UPDATE SET value = excluded.value`,
		p.scope, key, v,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save pref %s: %w", key, err)
	}
	return nil
}

// Delete removes keys; absent keys are ignored.
func (p *Prefs) Delete(keys ...string) error {
	for _, k := range keys {
		if _, err := p.store.db.Exec("DELETE FROM prefs WHERE scope = ? AND key = ?", p.scope, k); err != nil {
			return fmt.Errorf("storage: cannot delete pref %s: %w", k, err)
		}
	}
	return nil
}

// All returns every key stored in the scope.
func (p *Prefs) All() (map[string]int, error) {
	rows, err := p.store.db.Query("SELECT key, value FROM prefs WHERE scope = ? ORDER BY key", p.scope)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list prefs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			k string
			v int
		)
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("storage: cannot scan pref: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Scope returns the scope name.
func (p *Prefs) Scope() string { return p.scope }
