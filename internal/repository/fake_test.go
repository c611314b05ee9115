package repository

import (
	"context"
	"fmt"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"github.com/deppfellow/social-network/internal/database"
)

// call records one Execute invocation.
type call struct {
	sql    string
	params []any
}

// recordingConn returns canned rows and remembers every statement.
type recordingConn struct {
	calls []call
	rows  []database.Row
	err   error
}

func (c *recordingConn) Execute(_ context.Context, sql string, params ...any) ([]database.Row, error) {
	c.calls = append(c.calls, call{sql: sql, params: params})
	if c.err != nil {
		return nil, c.err
	}
	return c.rows, nil
}

func (c *recordingConn) last() call {
	return c.calls[len(c.calls)-1]
}

var (
	selectAllRe = regexp.MustCompile(`^SELECT id, (.+) FROM (\w+);$`)
	findRe      = regexp.MustCompile(`^SELECT id, (.+) FROM (\w+) WHERE id = \$1;$`)
	insertRe    = regexp.MustCompile(`^INSERT INTO (\w+) \((.+)\) VALUES \((.+)\) RETURNING id;$`)
	updateRe    = regexp.MustCompile(`^UPDATE (\w+) SET (.+) WHERE id = \$(\d+);$`)
	deleteRe    = regexp.MustCompile(`^DELETE FROM (\w+) WHERE id = \$1;$`)
)

type memTable struct {
	rows   []database.Row
	nextID int64
}

// memConn understands exactly the statements Table generates and keeps
// rows in insertion order, like a heap scan on a freshly seeded table.
type memConn struct {
	tables map[string]*memTable
}

func newMemConn() *memConn {
	return &memConn{tables: map[string]*memTable{}}
}

func (c *memConn) table(name string) *memTable {
	t, ok := c.tables[name]
	if !ok {
		t = &memTable{nextID: 1}
		c.tables[name] = t
	}
	return t
}

func (c *memConn) Execute(_ context.Context, sql string, params ...any) ([]database.Row, error) {
	switch {
	case findRe.MatchString(sql):
		m := findRe.FindStringSubmatch(sql)
		t := c.table(m[2])
		for _, row := range t.rows {
			if row["id"] == params[0] {
				return []database.Row{maps.Clone(row)}, nil
			}
		}
		return []database.Row{}, nil

	case selectAllRe.MatchString(sql):
		m := selectAllRe.FindStringSubmatch(sql)
		t := c.table(m[2])
		rows := make([]database.Row, 0, len(t.rows))
		for _, row := range t.rows {
			rows = append(rows, maps.Clone(row))
		}
		return rows, nil

	case insertRe.MatchString(sql):
		m := insertRe.FindStringSubmatch(sql)
		t := c.table(m[1])
		columns := strings.Split(m[2], ", ")
		if len(columns) != len(params) {
			return nil, fmt.Errorf("insert: %d columns, %d params", len(columns), len(params))
		}
		id := t.nextID
		t.nextID++
		row := database.Row{"id": id}
		for i, column := range columns {
			row[column] = params[i]
		}
		t.rows = append(t.rows, row)
		return []database.Row{{"id": id}}, nil

	case updateRe.MatchString(sql):
		m := updateRe.FindStringSubmatch(sql)
		t := c.table(m[1])
		idIndex, _ := strconv.Atoi(m[3])
		id := params[idIndex-1]
		for _, row := range t.rows {
			if row["id"] != id {
				continue
			}
			for _, assignment := range strings.Split(m[2], ", ") {
				column, placeholder, ok := strings.Cut(assignment, " = $")
				n, err := strconv.Atoi(placeholder)
				if !ok || err != nil {
					return nil, fmt.Errorf("update: bad assignment %q", assignment)
				}
				row[column] = params[n-1]
			}
		}
		return []database.Row{}, nil

	case deleteRe.MatchString(sql):
		m := deleteRe.FindStringSubmatch(sql)
		t := c.table(m[1])
		kept := t.rows[:0]
		for _, row := range t.rows {
			if row["id"] != params[0] {
				kept = append(kept, row)
			}
		}
		t.rows = kept
		return []database.Row{}, nil
	}

	return nil, fmt.Errorf("memConn: unsupported statement %q", sql)
}
