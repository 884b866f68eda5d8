//go:build z3

package cmd

// Registers the "z3" solver backend.
import _ "github.com/konchunas/rellic/internal/solver/z3"
