package startup

import (
	"context"
	"errors"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

type fakeDependency struct {
	name      string
	dependsOn []string
	failures  int
	order     *[]string
	stopped   *[]string
}

func (d *fakeDependency) GetName() string     { return d.name }
func (d *fakeDependency) DependsOn() []string { return d.dependsOn }

func (d *fakeDependency) Start(ctx context.Context) error {
	if d.failures > 0 {
		d.failures--
		return errors.New("not ready")
	}
	*d.order = append(*d.order, d.name)
	return nil
}

func (d *fakeDependency) Stop(ctx context.Context) error {
	if d.stopped != nil {
		*d.stopped = append(*d.stopped, d.name)
	}
	return nil
}

func indexOf(items []string, name string) int {
	for i, item := range items {
		if item == name {
			return i
		}
	}
	return -1
}

func TestStartup_Start(t *testing.T) {
	t.Run("dependencies start after what they depend on", func(t *testing.T) {
		var order []string
		s := NewStartup[any](noopLogger(), 1)
		s.AddDependency(&fakeDependency{name: "database", order: &order})
		s.AddDependency(&fakeDependency{name: "kafka-producer", order: &order})
		s.AddDependency(&fakeDependency{name: "server", dependsOn: []string{"database", "kafka-producer"}, order: &order})

		require.NoError(t, s.Start(context.Background()))
		require.Len(t, order, 3)
		assert.Greater(t, indexOf(order, "server"), indexOf(order, "database"))
		assert.Greater(t, indexOf(order, "server"), indexOf(order, "kafka-producer"))
	})

	t.Run("a flaky dependency succeeds on retry", func(t *testing.T) {
		var order []string
		s := NewStartup[any](noopLogger(), 2)
		s.AddDependency(&fakeDependency{name: "database", failures: 1, order: &order})

		require.NoError(t, s.Start(context.Background()))
		assert.Equal(t, []string{"database"}, order)
	})

	t.Run("exhausted attempts surface the last error", func(t *testing.T) {
		var order []string
		s := NewStartup[any](noopLogger(), 1)
		s.AddDependency(&fakeDependency{name: "database", failures: 5, order: &order})

		err := s.Start(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "startup failed after 1 attempts")
	})

	t.Run("already started dependencies are not restarted on retry", func(t *testing.T) {
		var order []string
		s := NewStartup[any](noopLogger(), 2)
		s.AddDependency(&fakeDependency{name: "database", order: &order})
		s.AddDependency(&fakeDependency{name: "kafka-producer", failures: 1, order: &order})

		require.NoError(t, s.Start(context.Background()))
		assert.Equal(t, 1, countOf(order, "database"))
	})
}

func countOf(items []string, name string) int {
	count := 0
	for _, item := range items {
		if item == name {
			count++
		}
	}
	return count
}

func TestStartup_Stop(t *testing.T) {
	var order, stopped []string
	s := NewStartup[any](noopLogger(), 1)
	s.AddDependency(&fakeDependency{name: "database", order: &order, stopped: &stopped})
	s.AddDependency(&fakeDependency{name: "kafka-producer", order: &order, stopped: &stopped})

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	assert.ElementsMatch(t, []string{"database", "kafka-producer"}, stopped)
}
