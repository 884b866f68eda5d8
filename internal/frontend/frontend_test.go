package frontend

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/konchunas/rellic/internal/ast"
	"github.com/konchunas/rellic/internal/provenance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnippet(t *testing.T) {
	t.Parallel()
	res, err := ParseSnippet(`
	y := 0
	for {
		if (x == 0) {
			break
		}
		y += 1
		x--
	}
	for x > 0 {
		foo(x, true)
	}
	;
	return
`)
	require.NoError(t, err)
	fn := res.Function(SnippetFunc)
	require.NotNil(t, fn)

	want := `{
  int y = 0;
  while (1) {
    if (x == 0) {
      break;
    }
    y += 1;
    x--;
  }
  while (x > 0) {
    foo(x, 1);
  }
  return;
}`
	assert.Equal(t, want, ast.Print(fn.Body))
}

func TestParseElseChain(t *testing.T) {
	t.Parallel()
	res, err := ParseSnippet(`
	if x > 0 {
		y = 1
	} else if x < 0 {
		y = 2
	} else {
		y = 3
	}
`)
	require.NoError(t, err)
	ifs, ok := res.Function(SnippetFunc).Body.Body[0].(*ast.IfStmt)
	require.True(t, ok)
	_, ok = ifs.Else.(*ast.IfStmt)
	assert.True(t, ok)
}

func TestParseRecords(t *testing.T) {
	t.Parallel()
	src := `package p

type point struct {
	a, b int
	c    string
}
`
	res, err := Parse("point.go", src, Options{})
	require.NoError(t, err)
	rec := res.Record("point")
	require.NotNil(t, rec)
	assert.Equal(t, "struct point {\n  int field0;\n  int field1;\n  string field2;\n};", ast.Print(rec))

	origin, ok := res.Provenance.Lookup(rec)
	require.True(t, ok)
	assert.Equal(t, provenance.KindType, origin.Kind)
	assert.Equal(t, "point", origin.Name)

	res, err = Parse("point.go", src, Options{KeepFieldNames: true})
	require.NoError(t, err)
	assert.Equal(t, "c", res.Record("point").Fields[2].Name)
}

func TestParseProvenance(t *testing.T) {
	t.Parallel()
	res, err := ParseSnippet("if x > 0 {\n\ty = 1\n}")
	require.NoError(t, err)
	ifs := res.Function(SnippetFunc).Body.Body[0]
	origin, ok := res.Provenance.Lookup(ifs)
	require.True(t, ok)
	assert.Equal(t, provenance.KindStmt, origin.Kind)
	assert.Equal(t, 4, origin.Pos.Line)
	assert.Equal(t, "snippet.go", origin.Pos.Filename)
}

func TestParseUnsupported(t *testing.T) {
	t.Parallel()
	_, err := ParseSnippet(`
	for i := 0; i < 3; i++ {
	}
	goto end
end:
	a, b = b, a
`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 3)
}

func TestParseSyntaxError(t *testing.T) {
	t.Parallel()
	_, err := ParseSnippet("if {")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnsupported))
}
