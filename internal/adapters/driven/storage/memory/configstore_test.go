package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(map[string]any{"catalog.path": "/tmp/portal.toml"}, map[string]any{"log.verbose": true})

	assert.Equal(t, "/tmp/portal.toml", store.GetString("catalog.path"))
	assert.True(t, store.GetBool("log.verbose"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("feed.path", "noticias.xml"))
	require.NoError(t, store.Set("feed.path", "feed.xml"))

	val, ok := store.Get("feed.path")
	assert.True(t, ok)
	assert.Equal(t, "feed.xml", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"str":     "value",
		"int":     42,
		"int64":   int64(7),
		"float":   float64(3),
		"bool":    true,
		"notbool": "true",
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("str"), "value"},
		{"string wrong type", store.GetString("int"), ""},
		{"int", store.GetInt("int"), 42},
		{"int64", store.GetInt("int64"), 7},
		{"float64", store.GetInt("float"), 3},
		{"int wrong type", store.GetInt("str"), 0},
		{"bool", store.GetBool("bool"), true},
		{"bool wrong type", store.GetBool("notbool"), false},
		{"bool missing", store.GetBool("missing"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("counter", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("counter")
		}()
	}
	wg.Wait()

	_, ok := store.Get("counter")
	assert.True(t, ok)
}
