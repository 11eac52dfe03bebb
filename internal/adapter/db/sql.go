package db

import (
	"database/sql"
	"strings"
	"time"

	"eisenq/internal/core/domain"
)

// likeEscaper makes every LIKE metacharacter literal under ESCAPE '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// assignments collects the SET clause of a sparse UPDATE.
type assignments struct {
	columns []string
	args    []any
}

func (a *assignments) add(column string, value any) {
	a.columns = append(a.columns, column+" = ?")
	a.args = append(a.args, value)
}

func (a *assignments) clause() string {
	return strings.Join(a.columns, ", ")
}

// setPatch writes a set value, or NULL for a cleared one. Unchanged
// fields are left out of the statement.
func setPatch[T any](a *assignments, column string, patch domain.Patch[T], convert func(T) any) {
	switch {
	case patch.IsCleared():
		a.add(column, nil)
	case patch.IsSet():
		value, _ := patch.Value()
		a.add(column, convert(value))
	}
}

func identity[T any](value T) any { return value }

func toUTC(t time.Time) any { return t.UTC() }

func utcPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func requireAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
