package migration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnsureIndexes(t *testing.T) {
	loc := time.UTC

	t.Run("runs every step in order", func(t *testing.T) {
		var order []string
		steps := []Step{
			{Name: "users_indexes", Run: func(ctx context.Context) error {
				order = append(order, "users_indexes")
				return nil
			}},
			{Name: "todos_indexes", Run: func(ctx context.Context) error {
				order = append(order, "todos_indexes")
				return nil
			}},
		}

		err := EnsureIndexes(context.Background(), loc, "cluster0.example.net", steps)

		assert.NoError(t, err)
		assert.Equal(t, []string{"users_indexes", "todos_indexes"}, order)
	})

	t.Run("stops at the first failing step", func(t *testing.T) {
		var ran []string
		steps := []Step{
			{Name: "first", Run: func(ctx context.Context) error {
				ran = append(ran, "first")
				return errors.New("index conflict")
			}},
			{Name: "second", Run: func(ctx context.Context) error {
				ran = append(ran, "second")
				return nil
			}},
		}

		err := EnsureIndexes(context.Background(), loc, "cluster0.example.net", steps)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "index bootstrap step first failed")
		assert.Equal(t, []string{"first"}, ran)
	})

	t.Run("no steps is a no-op", func(t *testing.T) {
		assert.NoError(t, EnsureIndexes(context.Background(), loc, "cluster0.example.net", nil))
	})
}
