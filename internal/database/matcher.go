package database

import "strings"

// TextMatcher builds case-insensitive substring conditions. It is chosen once per dialect
// when the store is configured and then passed to the queries that need it.
type TextMatcher struct {
	ilike bool
}

// MatcherFor returns the matcher for a dialect name as reported by gorm.Dialector.Name().
func MatcherFor(dialect string) TextMatcher {
	return TextMatcher{ilike: dialect == DriverPostgres}
}

// Contains returns a SQL condition with one placeholder and the argument to bind to it.
func (m TextMatcher) Contains(column, term string) (string, string) {
	if m.ilike {
		return column + " ILIKE ?", "%" + term + "%"
	}
	return "LOWER(" + column + ") LIKE ?", "%" + strings.ToLower(term) + "%"
}
