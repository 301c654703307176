//go:build tools
// +build tools

// Package tools pins the tools invoked by go generate (mockgen) in go.mod.
package ledger_lab

import (
	_ "go.uber.org/mock/mockgen"
)
