// Package migration bootstraps the database schema at startup. For Mongo
// that means ensuring the indexes each collection's schema requires (unique
// fields, TTL) rather than DDL statements.
package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Step names one index-bootstrap unit, usually one collection.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// EnsureIndexes runs every step, logging one structured line per step.
func EnsureIndexes(ctx context.Context, loc *time.Location, dbHost string, steps []Step) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "index_bootstrap_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		if err := step.Run(ctx); err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "index_bootstrap_failed",
				"status":           "error",
				"bootstrap_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("index bootstrap step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "index_bootstrap_step",
			"status":           "success",
			"bootstrap_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "index_bootstrap_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal bootstrap log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
