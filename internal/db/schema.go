package db

import (
	"embed"
	"fmt"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// schemaFor returns the idempotent DDL for the given driver
func schemaFor(driver string) (string, error) {
	content, err := schemaFS.ReadFile("schema/" + driver + ".sql")
	if err != nil {
		return "", fmt.Errorf("no schema for driver %q: %w", driver, err)
	}
	return string(content), nil
}
