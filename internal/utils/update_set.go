package utils

import (
	"fmt"
	"strings"
)

// UpdateSet collects the column assignments of a partial UPDATE.
// The key arguments passed to NewUpdateSet occupy the first placeholders.
type UpdateSet struct {
	assignments []string
	args        []interface{}
}

func NewUpdateSet(keys ...interface{}) *UpdateSet {
	return &UpdateSet{args: keys}
}

// Set assigns value to column.
func (u *UpdateSet) Set(column string, value interface{}) {
	u.args = append(u.args, value)
	u.assignments = append(u.assignments, fmt.Sprintf("%s = $%d", column, len(u.args)))
}

// Empty reports whether no column was assigned.
func (u *UpdateSet) Empty() bool {
	return len(u.assignments) == 0
}

// Query renders "UPDATE table SET ... WHERE where RETURNING returning".
func (u *UpdateSet) Query(table, where, returning string) (string, []interface{}) {
	query := "UPDATE " + table + " SET " + strings.Join(u.assignments, ", ") + " WHERE " + where
	if returning != "" {
		query += " RETURNING " + returning
	}
	return query, u.args
}
