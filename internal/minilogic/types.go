package minilogic

import (
	"fmt"
	"sort"
	"strings"
)

// Value is a concrete value in the MiniLogic system.
type Value interface {
	isValue()
	String() string
	Equal(other Value) bool
}

// IntValue represents an integer constant.
type IntValue struct {
	Val int64
}

func (IntValue) isValue() {}
func (v IntValue) String() string {
	return fmt.Sprintf("%d", v.Val)
}

func (v IntValue) Equal(other Value) bool {
	if o, ok := other.(IntValue); ok {
		return v.Val == o.Val
	}
	return false
}

// BoolValue represents a truth value.
type BoolValue struct {
	Val bool
}

func (BoolValue) isValue() {}
func (v BoolValue) String() string {
	return fmt.Sprintf("%t", v.Val)
}

func (v BoolValue) Equal(other Value) bool {
	if o, ok := other.(BoolValue); ok {
		return v.Val == o.Val
	}
	return false
}

// UndefValue is the result of an operation without a defined value,
// such as division by zero.
type UndefValue struct{}

func (UndefValue) isValue()       {}
func (UndefValue) String() string { return "undef" }

func (UndefValue) Equal(Value) bool { return false }

// Env maps variable names to values. A satisfying assignment is
// returned as an Env.
type Env struct {
	vars map[string]Value
}

// NewEnv creates a new empty environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]Value)}
}

// Get retrieves the value of a variable, or nil if it is unbound.
func (e *Env) Get(name string) Value {
	if e == nil {
		return nil
	}
	return e.vars[name]
}

// Set binds a variable.
func (e *Env) Set(name string, val Value) {
	e.vars[name] = val
}

// Clone creates a copy of the environment.
func (e *Env) Clone() *Env {
	out := &Env{vars: make(map[string]Value, len(e.vars))}
	for k, v := range e.vars {
		out.vars[k] = v
	}
	return out
}

// Keys returns the bound names in sorted order.
func (e *Env) Keys() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns a deterministic representation of the environment.
func (e *Env) String() string {
	if e == nil {
		return "{}"
	}
	parts := make([]string, 0, len(e.vars))
	for _, k := range e.Keys() {
		parts = append(parts, k+": "+e.vars[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
