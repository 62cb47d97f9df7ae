package database_test

import (
	"testing"

	"cookbook/internal/database"

	"github.com/stretchr/testify/assert"
)

func TestTextMatcher_Contains(t *testing.T) {
	cond, arg := database.MatcherFor("postgres").Contains("title", "Cake")
	assert.Equal(t, "title ILIKE ?", cond)
	assert.Equal(t, "%Cake%", arg)

	cond, arg = database.MatcherFor("sqlite").Contains("title", "Cake")
	assert.Equal(t, "LOWER(title) LIKE ?", cond)
	assert.Equal(t, "%cake%", arg)
}
