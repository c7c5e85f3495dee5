package dbx

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect captures what differs between the supported SQL engines: the
// database/sql driver, the goose dialect and the positional placeholder form.
type Dialect struct {
	Name         string
	DriverName   string
	GooseDialect string
	placeholder  sq.PlaceholderFormat
}

var (
	// Postgres uses the pgx stdlib driver and $n placeholders.
	Postgres = Dialect{Name: "postgres", DriverName: "pgx", GooseDialect: "postgres", placeholder: sq.Dollar}
	// SQLite uses the pure-Go modernc driver and ? placeholders.
	SQLite = Dialect{Name: "sqlite", DriverName: "sqlite", GooseDialect: "sqlite3", placeholder: sq.Question}
)

// DialectFor resolves a configured driver name ("pgx", "postgres", "sqlite").
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "pgx", "postgres", "postgresql":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Builder returns a squirrel statement builder emitting this dialect's placeholders.
func (d Dialect) Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.placeholderFormat())
}

// Compile rewrites :name placeholders in query to the dialect's positional
// form and returns the arguments in placeholder order. Names without a value
// in named are left untouched. Quoted literals, quoted identifiers and
// "::" casts are copied verbatim.
func (d Dialect) Compile(query string, named map[string]any) (string, []any, error) {
	var (
		b    strings.Builder
		args []any
	)
	b.Grow(len(query))

	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'' || c == '"':
			end := closingQuote(query, i)
			b.WriteString(query[i:end])
			i = end - 1
		case c == ':' && i+1 < len(query) && query[i+1] == ':':
			b.WriteString("::")
			i++
		case c == ':':
			end := i + 1
			for end < len(query) && isNameByte(query[end]) {
				end++
			}
			name := query[i+1 : end]
			v, ok := named[name]
			if name == "" || !ok {
				b.WriteByte(c)
				continue
			}
			b.WriteByte('?')
			args = append(args, v)
			i = end - 1
		default:
			b.WriteByte(c)
		}
	}

	out, err := d.placeholderFormat().ReplacePlaceholders(b.String())
	if err != nil {
		return "", nil, err
	}
	return out, args, nil
}

func (d Dialect) placeholderFormat() sq.PlaceholderFormat {
	if d.placeholder == nil {
		return sq.Question
	}
	return d.placeholder
}

// closingQuote returns the index just past the quote that closes the one at
// start. Doubled quotes are escapes. An unterminated quote runs to the end.
func closingQuote(s string, start int) int {
	q := s[start]
	for i := start + 1; i < len(s); i++ {
		if s[i] != q {
			continue
		}
		if i+1 < len(s) && s[i+1] == q {
			i++
			continue
		}
		return i + 1
	}
	return len(s)
}

func isNameByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
