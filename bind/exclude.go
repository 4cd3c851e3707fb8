package bind

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/docmap/debug"
	"github.com/signadot/docmap/typecache"
)

// TypeEnv is the environment of ExcludeExpr expressions.
type TypeEnv struct {
	Name         string
	FullName     string
	FriendlyName string
	Kind         string
	PkgPath      string

	IsScalar     bool
	IsEnum       bool
	IsNullable   bool
	IsList       bool
	IsDictionary bool
	IsGeneric    bool
	IsStruct     bool

	Attributes map[string]string
}

func typeEnv(d *typecache.Descriptor) TypeEnv {
	attrs := map[string]string{}
	d.FindAttribute(func(k, v string) bool {
		attrs[k] = v
		return false
	})
	return TypeEnv{
		Name:         d.Name,
		FullName:     d.FullName,
		FriendlyName: d.FriendlyName,
		Kind:         d.Kind.String(),
		PkgPath:      d.Type.PkgPath(),
		IsScalar:     d.IsScalar,
		IsEnum:       d.IsEnum,
		IsNullable:   d.IsNullable,
		IsList:       d.IsList,
		IsDictionary: d.IsDictionary,
		IsGeneric:    d.IsGeneric,
		IsStruct:     d.IsStruct,
		Attributes:   attrs,
	}
}

// ExcludeExpr compiles src, a boolean expression over TypeEnv such as
//
//	IsDictionary || Attributes["internal"] == "true"
//
// into an exclusion predicate. Results are memoized per type.
func ExcludeExpr(src string) (Option, error) {
	prg, err := expr.Compile(src, expr.Env(TypeEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile exclusion %q: %w", src, err)
	}
	return Exclude(exprPredicate(src, prg)), nil
}

func exprPredicate(src string, prg *vm.Program) func(*typecache.Descriptor) bool {
	var memo sync.Map // *typecache.Descriptor -> bool
	return func(d *typecache.Descriptor) bool {
		if v, ok := memo.Load(d); ok {
			return v.(bool)
		}
		out, err := expr.Run(prg, typeEnv(d))
		if err != nil {
			if debug.Traverse() {
				debug.Logf("exclusion %q on %s: %v", src, d, err)
			}
			return false
		}
		res, _ := out.(bool)
		memo.Store(d, res)
		return res
	}
}
