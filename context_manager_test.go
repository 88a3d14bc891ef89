package beacon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextManager(t *testing.T) {
	m := NewContextManager()
	assert.True(t, m.IsEmpty())

	m.Set("locale", "en-US")
	m.Set("app", "1.2.0")
	assert.Equal(t, "en-US", m.Get("locale"))

	snap := m.Snapshot()
	snap["locale"] = "fr-FR"
	assert.Equal(t, "en-US", m.Get("locale"), "snapshots must be detached copies")

	m.Delete("app")
	assert.Nil(t, m.Get("app"))

	m.Clear()
	assert.True(t, m.IsEmpty())
	assert.NotNil(t, m.Snapshot())
}

func TestIdentityManager(t *testing.T) {
	m := NewIdentityManager("")
	anon, user := m.Get()
	assert.Len(t, anon, 36)
	assert.Empty(t, user)

	assert.Empty(t, m.SetUserID("u1"))
	assert.Equal(t, "u1", m.SetUserID("u2"))

	m.Reset()
	rotated, user := m.Get()
	assert.NotEqual(t, anon, rotated)
	assert.Empty(t, user)

	seeded := NewIdentityManager("device-1")
	anon, _ = seeded.Get()
	assert.Equal(t, "device-1", anon)
}
