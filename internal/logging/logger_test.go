package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level, cats map[string]bool) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	Use(zap.New(core), cats)
	t.Cleanup(Reset)
	return logs
}

func TestNoopBeforeUse(t *testing.T) {
	Reset()
	assert.False(t, IsCategoryEnabled(CategoryFetch))
	// must not panic
	Fetch("variant %s", "x")
	Get(CategoryGenerate).Error("boom")
	Get(CategoryGenerate).With(zap.String("k", "v")).Info("still quiet")
}

func TestAllCategoriesLog(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel, nil)

	Boot("boot %d", 1)
	Registry("registry %d", 2)
	Generate("generate %d", 3)
	Watch("watch %d", 4)
	Fetch("fetch %d", 5)

	entries := logs.All()
	require.Len(t, entries, 5)
	want := []Category{CategoryBoot, CategoryRegistry, CategoryGenerate, CategoryWatch, CategoryFetch}
	for i, e := range entries {
		assert.Equal(t, string(want[i]), e.ContextMap()["category"])
	}
	assert.Equal(t, "fetch 5", entries[4].Message)
}

func TestCategoryFilter(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel, map[string]bool{"fetch": false, "generate": true})

	Fetch("hidden")
	FetchError("hidden too")
	Generate("shown")
	Watch("shown, not listed")

	assert.Equal(t, 2, logs.Len())
	assert.False(t, IsCategoryEnabled(CategoryFetch))
	assert.True(t, IsCategoryEnabled(CategoryWatch))
}

func TestLevelGate(t *testing.T) {
	logs := observe(t, zapcore.WarnLevel, nil)

	FetchDebug("debug")
	Fetch("info")
	FetchWarn("warn")
	FetchError("error")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[1].Level)
}

func TestWithFields(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel, nil)

	Get(CategoryFetch).With(zap.String("run", "abc")).Info("variant %s", "metro")

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "abc", ctx["run"])
	assert.Equal(t, "fetch", ctx["category"])
}

func TestGetCachesLoggers(t *testing.T) {
	observe(t, zapcore.InfoLevel, nil)
	assert.Same(t, Get(CategoryRegistry), Get(CategoryRegistry))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"info":    zapcore.InfoLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	l, err := Build(Options{Level: "warn", Format: "json"}, false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	l, err = Build(Options{Level: "warn"}, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = Build(Options{Level: "nope"}, false)
	assert.Error(t, err)
}
