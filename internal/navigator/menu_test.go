package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuWrapsBothWays(t *testing.T) {
	m := NewMenu([]string{"a/", "b/"})
	require.Equal(t, []string{"a/", "b/", "Exit"}, m.Labels())
	assert.Equal(t, 0, m.Index())

	m.Up()
	assert.Equal(t, 2, m.Index())
	assert.True(t, m.IsExit())

	m.Down()
	assert.Equal(t, 0, m.Index())
	assert.Equal(t, "a/", m.Selected())

	m.Down()
	m.Down()
	m.Down()
	assert.Equal(t, 0, m.Index())
}

func TestMenuFullCycleReturnsToStart(t *testing.T) {
	m := NewMenu([]string{"a/", "b/", "c/"})
	for range len(m.Labels()) {
		m.Down()
	}
	assert.Equal(t, 0, m.Index())
	for range len(m.Labels()) {
		m.Up()
	}
	assert.Equal(t, 0, m.Index())
}

func TestMenuExitOnly(t *testing.T) {
	m := NewMenu(nil)
	assert.Equal(t, []string{"Exit"}, m.Labels())
	m.Up()
	m.Down()
	assert.True(t, m.IsExit())
}

func TestMenuLiteralExitMovedLast(t *testing.T) {
	m := NewMenu([]string{"Exit", "a/"})
	assert.Equal(t, []string{"a/", "Exit"}, m.Labels())
	assert.False(t, m.IsExit())
}
