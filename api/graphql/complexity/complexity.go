package complexity

import (
	"encoding/json"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/canada-ca/tracker-sub010/config"
)

// Analyzer estimates the cost of a query before it is executed. Leaf fields
// cost ScalarCost, object fields ObjectCost plus their selections, and the
// selections of paginated fields are multiplied by `first` or `last`. Other
// list fields multiply by ListFactor.
type Analyzer struct {
	schema *ast.Schema
	cfg    *config.GraphQLConfig
}

func NewAnalyzer(sdl string, cfg *config.GraphQLConfig) (*Analyzer, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: sdl})
	if err != nil {
		return nil, err
	}
	return &Analyzer{schema: schema, cfg: cfg}, nil
}

// Analysis describes the operation a request selects.
type Analysis struct {
	Cost int
	// Operation is query, mutation or subscription, empty when no operation is selected.
	Operation string
}

// Analyze validates query and measures the selected operation. Invalid
// queries return the validation errors and a zero Analysis.
func (a *Analyzer) Analyze(query, operationName string, variables map[string]interface{}) (Analysis, gqlerror.List) {
	doc, errs := gqlparser.LoadQuery(a.schema, query)
	if len(errs) > 0 {
		return Analysis{}, errs
	}

	op := selectOperation(doc, operationName)
	if op == nil {
		return Analysis{}, nil
	}
	return Analysis{
		Cost:      a.selectionCost(op.SelectionSet, variables),
		Operation: string(op.Operation),
	}, nil
}

// Cost returns the cost of the selected operation.
func (a *Analyzer) Cost(query, operationName string, variables map[string]interface{}) (int, gqlerror.List) {
	analysis, errs := a.Analyze(query, operationName, variables)
	return analysis.Cost, errs
}

func selectOperation(doc *ast.QueryDocument, operationName string) *ast.OperationDefinition {
	if operationName == "" {
		if len(doc.Operations) == 1 {
			return doc.Operations[0]
		}
		return nil
	}
	return doc.Operations.ForName(operationName)
}

func (a *Analyzer) selectionCost(set ast.SelectionSet, variables map[string]interface{}) int {
	cost := 0
	for _, selection := range set {
		switch s := selection.(type) {
		case *ast.Field:
			cost += a.fieldCost(s, variables)
		case *ast.InlineFragment:
			cost += a.selectionCost(s.SelectionSet, variables)
		case *ast.FragmentSpread:
			if s.Definition != nil {
				cost += a.selectionCost(s.Definition.SelectionSet, variables)
			}
		}
	}
	return cost
}

func (a *Analyzer) fieldCost(field *ast.Field, variables map[string]interface{}) int {
	if len(field.SelectionSet) == 0 {
		return a.cfg.ScalarCost
	}

	childCost := a.cfg.ObjectCost + a.selectionCost(field.SelectionSet, variables)
	return a.multiplier(field, variables) * childCost
}

func (a *Analyzer) multiplier(field *ast.Field, variables map[string]interface{}) int {
	if field.Definition == nil {
		return 1
	}

	args := field.ArgumentMap(variables)
	for _, name := range []string{"first", "last"} {
		if n, ok := toInt(args[name]); ok {
			return max(n, 1)
		}
	}
	if field.Definition.Type != nil && field.Definition.Type.Elem != nil {
		return max(a.cfg.ListFactor, 1)
	}
	return 1
}

func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
