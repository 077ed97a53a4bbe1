//go:build tools

package tools

// This file tracks tool dependencies for reproducible builds.
// Run `go mod tidy` after adding/removing tools here.
//
//   goose:        go run github.com/pressly/goose/v3/cmd/goose -dir internal/adapters/postgres/migrations postgres "$DATABASE_URL" status
//   oapi-codegen: go generate ./internal/api   (renders api/openapi.yaml into internal/api/api.gen.go)

import (
	_ "github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen"
	_ "github.com/pressly/goose/v3/cmd/goose"
)
