// Package facts holds the historical fact table keyed by country name.
package facts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned when a fact resource cannot be decoded.
var ErrMalformed = errors.New("malformed fact data")

// Fact is the historical fact shown for a country.
type Fact struct {
	Description string `json:"description"`
}

// Fetcher reads a static resource by location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// Store is a read-only country name to fact table.
type Store struct {
	facts map[string]Fact
}

// NewStore copies facts into a new store.
func NewStore(facts map[string]Fact) *Store {
	m := make(map[string]Fact, len(facts))
	for name, f := range facts {
		m[name] = f
	}
	return &Store{facts: m}
}

// Lookup returns the fact for a country. The second result is false when no
// fact is known, which is a normal outcome.
func (s *Store) Lookup(country string) (Fact, bool) {
	if s == nil {
		return Fact{}, false
	}
	f, ok := s.facts[country]
	return f, ok
}

// Len returns the number of countries with a fact.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.facts)
}

// Decode parses the JSON object form {"Country": {"description": "..."}}.
func Decode(b []byte) (*Store, error) {
	var raw map[string]Fact
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected an object keyed by country name", ErrMalformed)
	}
	return &Store{facts: raw}, nil
}

// Load reads the fact table from location. sqlite:// and redis://
// locations are read from those stores; anything else goes through fetcher.
func Load(ctx context.Context, location string, fetcher Fetcher) (*Store, error) {
	switch {
	case strings.HasPrefix(location, sqliteScheme):
		return LoadSQLite(ctx, location)
	case strings.HasPrefix(location, redisScheme), strings.HasPrefix(location, redissScheme):
		return LoadRedis(ctx, location)
	}

	b, err := fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch facts: %w", err)
	}
	return Decode(b)
}
