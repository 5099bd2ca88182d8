package unitconv

import (
	"database/sql"
	"fmt"
	"sort"

	_ "github.com/mattn/go-sqlite3"
)

// OpenSQLite opens (creating if needed) a SQLite catalog database at path.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func initSchema(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			name TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			kind TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS units (
			category TEXT NOT NULL,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			factor REAL,
			scale TEXT,
			PRIMARY KEY (category, name)
		);`,
		`CREATE TABLE IF NOT EXISTS unit_aliases (
			category TEXT NOT NULL,
			alias TEXT NOT NULL,
			unit TEXT NOT NULL,
			PRIMARY KEY (category, alias)
		);`,
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// ExportSQLite replaces the catalog stored in db with t. The write is a single
// transaction.
func (t *Table) ExportSQLite(db *sql.DB) error {
	if err := initSchema(db); err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := t.persist(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (t *Table) persist(tx *sql.Tx) error {
	for _, table := range []string{"unit_aliases", "units", "categories"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return err
		}
	}
	for ci, c := range t.categories {
		_, err := tx.Exec(`INSERT INTO categories (name, position, kind) VALUES (?, ?, ?)`,
			c.Name, ci, c.Kind.String())
		if err != nil {
			return err
		}
		for ui, u := range c.Units {
			var factor sql.NullFloat64
			var scale sql.NullString
			if c.Kind == AffineTemperature {
				scale = sql.NullString{String: u.Descriptor.Scale.String(), Valid: true}
			} else {
				factor = sql.NullFloat64{Float64: u.Descriptor.Factor, Valid: true}
			}
			_, err := tx.Exec(`INSERT INTO units (category, name, position, factor, scale) VALUES (?, ?, ?, ?, ?)`,
				c.Name, u.Name, ui, factor, scale)
			if err != nil {
				return err
			}
		}
		aliases := make([]string, 0, len(c.aliases))
		for alias := range c.aliases {
			aliases = append(aliases, alias)
		}
		sort.Strings(aliases)
		for _, alias := range aliases {
			_, err := tx.Exec(`INSERT INTO unit_aliases (category, alias, unit) VALUES (?, ?, ?)`,
				c.Name, alias, c.aliases[alias])
			if err != nil {
				return err
			}
		}
	}
	return nil
}

type storedUnit struct {
	name   string
	factor sql.NullFloat64
	scale  sql.NullString
}

// LoadSQLite reads a catalog written by ExportSQLite and validates it into a Table.
func LoadSQLite(db *sql.DB) (*Table, error) {
	type storedCategory struct {
		name string
		kind string
	}
	var categories []storedCategory
	rows, err := db.Query(`SELECT name, kind FROM categories ORDER BY position`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var c storedCategory
		if err := rows.Scan(&c.name, &c.kind); err != nil {
			rows.Close()
			return nil, err
		}
		categories = append(categories, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	units := make(map[string][]storedUnit)
	rows, err = db.Query(`SELECT category, name, factor, scale FROM units ORDER BY category, position`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var category string
		var u storedUnit
		if err := rows.Scan(&category, &u.name, &u.factor, &u.scale); err != nil {
			rows.Close()
			return nil, err
		}
		units[category] = append(units[category], u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// category -> unit -> aliases
	aliases := make(map[string]map[string][]string)
	rows, err = db.Query(`SELECT category, alias, unit FROM unit_aliases ORDER BY category, alias`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var category, alias, unit string
		if err := rows.Scan(&category, &alias, &unit); err != nil {
			rows.Close()
			return nil, err
		}
		if aliases[category] == nil {
			aliases[category] = make(map[string][]string)
		}
		aliases[category][unit] = append(aliases[category][unit], alias)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	built := make([]*Category, 0, len(categories))
	for _, sc := range categories {
		c, err := buildStored(sc.name, sc.kind, units[sc.name], aliases[sc.name])
		if err != nil {
			return nil, err
		}
		built = append(built, c)
	}
	return NewTable(built...)
}

func buildStored(name, kind string, units []storedUnit, aliases map[string][]string) (*Category, error) {
	var b *CategoryBuilder
	switch kind {
	case LinearScale.String():
		b = newBuilder(name, LinearScale)
		for _, u := range units {
			if !u.factor.Valid {
				return nil, fmt.Errorf("%w: %s: unit %q has no factor", ErrInvalidTable, name, u.name)
			}
			b.AddFactor(u.name, u.factor.Float64, aliases[u.name]...)
		}
	case AffineTemperature.String():
		b = newBuilder(name, AffineTemperature)
		for _, u := range units {
			if !u.scale.Valid || len(u.scale.String) != 1 {
				return nil, fmt.Errorf("%w: %s: unit %q has no scale", ErrInvalidTable, name, u.name)
			}
			b.AddScale(u.name, Scale(u.scale.String[0]), aliases[u.name]...)
		}
	default:
		return nil, fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidTable, name, kind)
	}
	return b.Build()
}
