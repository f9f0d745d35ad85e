package complexity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/api/graphql/schema"
	"github.com/canada-ca/tracker-sub010/config"
)

func newAnalyzer(t *testing.T, listFactor int) *Analyzer {
	t.Helper()
	analyzer, err := NewAnalyzer(schema.SDL, &config.GraphQLConfig{
		ScalarCost: 1,
		ObjectCost: 1,
		ListFactor: listFactor,
	})
	require.NoError(t, err)
	return analyzer
}

func TestCost_Scalars(t *testing.T) {
	analyzer := newAnalyzer(t, 1)

	cost, errs := analyzer.Cost(`{ isUserSuperAdmin }`, "", nil)
	require.Empty(t, errs)
	assert.Equal(t, 1, cost)
}

func TestCost_ConnectionMultipliesByFirst(t *testing.T) {
	analyzer := newAnalyzer(t, 1)

	// node: 1 + 1, edges: 1 + 2, connection: 10 * (1 + 3)
	query := `{ findMyDomains(first: 10) { edges { node { domain } } } }`
	cost, errs := analyzer.Cost(query, "", nil)
	require.Empty(t, errs)
	assert.Equal(t, 40, cost)
}

func TestCost_Variables(t *testing.T) {
	analyzer := newAnalyzer(t, 1)

	query := `query Domains($n: Int) { findMyDomains(last: $n) { edges { node { domain } } } }`
	cost, errs := analyzer.Cost(query, "Domains", map[string]interface{}{"n": float64(5)})
	require.Empty(t, errs)
	assert.Equal(t, 20, cost)
}

func TestCost_ListFactorAndFragments(t *testing.T) {
	analyzer := newAnalyzer(t, 3)

	query := `
		query { mailSummary { ...Summary } }
		fragment Summary on CategorizedSummary { total categories { name count } }
	`
	// categories: 3 * (1 + 2), summary: 1 + 1 + 9
	cost, errs := analyzer.Cost(query, "", nil)
	require.Empty(t, errs)
	assert.Equal(t, 11, cost)
}

func TestCost_InvalidQuery(t *testing.T) {
	analyzer := newAnalyzer(t, 1)

	cost, errs := analyzer.Cost(`{ doesNotExist }`, "", nil)
	assert.NotEmpty(t, errs)
	assert.Zero(t, cost)
}

func TestCost_UnknownOperation(t *testing.T) {
	analyzer := newAnalyzer(t, 1)

	cost, errs := analyzer.Cost(`query A { isUserSuperAdmin }`, "B", nil)
	assert.Empty(t, errs)
	assert.Zero(t, cost)
}

func TestAnalyze_OperationType(t *testing.T) {
	analyzer := newAnalyzer(t, 1)
	query := `query Admin { isUserSuperAdmin } mutation Out { signOut }`

	analysis, errs := analyzer.Analyze(query, "Out", nil)
	require.Empty(t, errs)
	assert.Equal(t, "mutation", analysis.Operation)

	analysis, errs = analyzer.Analyze(query, "Admin", nil)
	require.Empty(t, errs)
	assert.Equal(t, "query", analysis.Operation)

	analysis, errs = analyzer.Analyze(query, "", nil)
	require.Empty(t, errs)
	assert.Empty(t, analysis.Operation)
}
