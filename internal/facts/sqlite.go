package facts

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"

	_ "modernc.org/sqlite"
)

const (
	sqliteScheme = "sqlite://"
	defaultTable = "facts"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQLite reads facts from a table with country and description columns.
// Location form: sqlite://path/to/facts.db?table=facts
func LoadSQLite(ctx context.Context, location string) (*Store, error) {
	path, table, err := parseSQLiteLocation(location)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, "SELECT country, description FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("query facts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	facts := make(map[string]Fact)
	for rows.Next() {
		var country, description string
		if err := rows.Scan(&country, &description); err != nil {
			return nil, fmt.Errorf("scan fact: %w", err)
		}
		facts[country] = Fact{Description: description}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate facts: %w", err)
	}
	return &Store{facts: facts}, nil
}

func parseSQLiteLocation(location string) (path, table string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid sqlite location: %w", err)
	}
	path = u.Host + u.Path
	if path == "" {
		return "", "", fmt.Errorf("invalid sqlite location %q: missing path", location)
	}
	table = u.Query().Get("table")
	if table == "" {
		table = defaultTable
	}
	if !identifierPattern.MatchString(table) {
		return "", "", fmt.Errorf("invalid sqlite table name %q", table)
	}
	return path, table, nil
}
