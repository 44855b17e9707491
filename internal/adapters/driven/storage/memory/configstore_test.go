package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Empty(t, store.Keys())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("llm.provider", "ollama"))
	require.NoError(t, store.Set("llm.provider", "anthropic"))

	val, ok := store.Get("llm.provider")
	assert.True(t, ok)
	assert.Equal(t, "anthropic", val)

	_, ok = store.Get("llm.model")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("llm.model", "llama3.2")
	_ = store.Set("limiter.max_requests", 15)

	assert.Equal(t, "llama3.2", store.GetString("llm.model"))
	assert.Empty(t, store.GetString("limiter.max_requests"), "wrong type")
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected int
	}{
		{"int", 15, 15},
		{"int64", int64(60000), 60000},
		{"float64", float64(30), 30},
		{"string", "15", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			_ = store.Set("limiter.max_requests", tt.value)
			assert.Equal(t, tt.expected, store.GetInt("limiter.max_requests"))
		})
	}

	assert.Zero(t, NewConfigStore().GetInt("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("ui.tui", true)
	_ = store.Set("ui.color", "yes")

	assert.True(t, store.GetBool("ui.tui"))
	assert.False(t, store.GetBool("ui.color"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("filter.ignore", []string{"*.lock"})
	_ = store.Set("filter.mixed", []any{"docs/", 3, "vendor/"})
	_ = store.Set("filter.bad", 7)

	assert.Equal(t, []string{"*.lock"}, store.GetStringSlice("filter.ignore"))
	assert.Equal(t, []string{"docs/", "vendor/"}, store.GetStringSlice("filter.mixed"))
	assert.Nil(t, store.GetStringSlice("filter.bad"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_Keys_Sorted(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("pipeline.tier", "standard")
	_ = store.Set("llm.provider", "ollama")
	_ = store.Set("github.token", "ghp")

	assert.Equal(t, []string{"github.token", "llm.provider", "pipeline.tier"}, store.Keys())
}

func TestConfigStore_SaveAndLoadNoOp(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("llm.provider", "ollama")

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, "ollama", store.GetString("llm.provider"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("key.%d", n), n)
		}(i)
		go func(n int) {
			defer wg.Done()
			_ = store.GetInt(fmt.Sprintf("key.%d", n))
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 50)
}
