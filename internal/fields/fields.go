// Package fields gives record fields the names recorded in debug info.
package fields

import (
	"errors"
	"fmt"

	"github.com/konchunas/rellic/internal/ast"
	"github.com/konchunas/rellic/internal/debuginfo"
	"github.com/konchunas/rellic/internal/pass"
	"go.uber.org/zap"
)

const RenamerName = "field-renamer"

// ErrFieldCountMismatch means a record and its debug info disagree on
// the number of fields. Names cannot be matched positionally then.
var ErrFieldCountMismatch = errors.New("field count mismatch")

// Renamer assigns debug names to the fields of every record that has a
// debug-info composite, matched through the record's provenance.
type Renamer struct {
	pass.Base
	table *debuginfo.Table
}

func NewRenamer(env *pass.Env, table *debuginfo.Table) *Renamer {
	return &Renamer{Base: pass.NewBase(RenamerName, env), table: table}
}

func (r *Renamer) Run(tu *ast.TranslationUnit) (bool, error) {
	return r.Transform(tu, r)
}

func (r *Renamer) VisitRecord(rec *ast.RecordDecl) error {
	origin, ok := r.Env().Provenance.Lookup(rec)
	if !ok || origin.Name == "" {
		return nil
	}
	composite, ok := r.table.Lookup(origin.Name)
	if !ok {
		return nil
	}
	old := make([]string, len(rec.Fields))
	for i, f := range rec.Fields {
		old[i] = f.Name
	}
	names, err := Reconcile(old, composite.Members)
	if err != nil {
		return fmt.Errorf("record %s: %w", rec.Name, err)
	}

	ctx := r.Env().Ctx
	renamed := 0
	for i, f := range rec.Fields {
		if names[i] == f.Name {
			continue
		}
		r.Substitute(f, ctx.NewField(names[i], f.Type))
		renamed++
	}
	if renamed > 0 {
		r.Logger().Debug("renamed fields",
			zap.String("record", rec.Name),
			zap.Int("count", renamed),
			zap.Stringer("origin", origin),
		)
	}
	return nil
}

// Reconcile pairs old field names with debug members by position. A
// debug name already taken within the record becomes debug_old; members
// without a name keep the old one. Both lists must have the same length.
func Reconcile(old []string, members []debuginfo.Member) ([]string, error) {
	if len(old) != len(members) {
		return nil, fmt.Errorf("%w: %d fields, debug info has %d",
			ErrFieldCountMismatch, len(old), len(members))
	}
	names := make([]string, len(old))
	seen := make(map[string]bool, len(old))
	for i, m := range members {
		name := m.Name
		switch {
		case name == "":
			name = old[i]
		case seen[name]:
			name = name + "_" + old[i]
		}
		seen[name] = true
		names[i] = name
	}
	return names, nil
}
