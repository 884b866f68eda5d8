package branch

import "github.com/konchunas/rellic/internal/ast"

// DeviatingFuncs lists calls that never return to the caller.
var DeviatingFuncs = map[string]Kind{
	"exit":          Exit,
	"_exit":         Exit,
	"abort":         Exit,
	"__assert_fail": Exit,
}

// ExprCall gets the called function name of an ExprStmt.
func ExprCall(stmt *ast.ExprStmt) (string, bool) {
	call, ok := ast.Unparen(stmt.X).(*ast.CallExpr)
	if !ok {
		return "", false
	}
	return call.Fun, true
}
