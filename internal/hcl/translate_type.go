// This file contains the logic for parsing HCL type keywords (e.g. `string`,
// `bool`) used by field blocks into their corresponding cty.Type objects.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// typeExprToCtyType converts a field type expression into its cty.Type
// equivalent. Only the primitive keywords are accepted; fields never hold
// collections.
func typeExprToCtyType(ctx context.Context, expr hcl.Expression) (cty.Type, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		return cty.NilType, fmt.Errorf("field type is required")
	}

	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.NilType, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		rootName := v.Traversal.RootName()
		logger.Debug("Parsing field type keyword.", "keyword", rootName)
		return keywordType(rootName)

	case *hclsyntax.TemplateExpr:
		// Quoted keywords ("bool") are accepted as a convenience.
		val, diags := v.Value(nil)
		if diags.HasErrors() || !val.Type().Equals(cty.String) || val.IsNull() {
			return cty.NilType, fmt.Errorf("unsupported expression for field type: %T", v)
		}
		return keywordType(val.AsString())

	case *hclsyntax.FunctionCallExpr:
		return cty.NilType, fmt.Errorf("collection type %q is not a valid field type", v.Name)

	default:
		return cty.NilType, fmt.Errorf("unsupported expression for field type: %T", v)
	}
}

func keywordType(name string) (cty.Type, error) {
	switch name {
	case "string":
		return cty.String, nil
	case "number":
		return cty.Number, nil
	case "bool":
		return cty.Bool, nil
	default:
		return cty.NilType, fmt.Errorf("unknown field type %q", name)
	}
}
