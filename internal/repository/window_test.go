package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
)

func TestNewSortSpec(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		order    interfaces.Order
		expected sortSpec
	}{
		{
			name:     "known field",
			order:    interfaces.Order{Field: "last-ran", Desc: true},
			expected: sortSpec{Table: "domains", Expr: "domains.last_ran", From: "domains", Desc: true},
		},
		{
			name:     "unknown field falls back to ascending default",
			order:    interfaces.Order{Field: "nope", Desc: true},
			expected: sortSpec{Table: "domains", Expr: "domains.domain", From: "domains"},
		},
		{
			name:     "explicit relation",
			from:     "domains JOIN claims ON claims.domain_id = domains.id",
			order:    interfaces.Order{Field: "domain"},
			expected: sortSpec{Table: "domains", Expr: "domains.domain", From: "domains JOIN claims ON claims.domain_id = domains.id"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, newSortSpec("domains", tt.from, domainOrderColumns, "domain", tt.order))
		})
	}
}

func TestApplyWindow(t *testing.T) {
	const (
		selectDomains = `SELECT * FROM "domains" `
		afterCursor   = `(domains.domain, domains.id) > (SELECT domains.domain, domains.id FROM domains WHERE domains.id = $1)`
	)
	tests := []struct {
		name   string
		desc   bool
		window pagination.Window
		sql    string
		vars   []interface{}
	}{
		{
			name:   "forward",
			window: pagination.Window{Limit: 10},
			sql:    selectDomains + `ORDER BY domains.domain ASC,domains.id ASC LIMIT $1`,
			vars:   []interface{}{11},
		},
		{
			name:   "forward descending",
			desc:   true,
			window: pagination.Window{Limit: 10},
			sql:    selectDomains + `ORDER BY domains.domain DESC,domains.id DESC LIMIT $1`,
			vars:   []interface{}{11},
		},
		{
			name:   "forward after cursor",
			window: pagination.Window{After: "dom_a", Limit: 5},
			sql:    selectDomains + `WHERE ` + afterCursor + ` ORDER BY domains.domain ASC,domains.id ASC LIMIT $2`,
			vars:   []interface{}{"dom_a", 6},
		},
		{
			name:   "forward descending after cursor",
			desc:   true,
			window: pagination.Window{After: "dom_a", Limit: 5},
			sql: selectDomains + `WHERE (domains.domain, domains.id) < (SELECT domains.domain, domains.id FROM domains WHERE domains.id = $1)` +
				` ORDER BY domains.domain DESC,domains.id DESC LIMIT $2`,
			vars: []interface{}{"dom_a", 6},
		},
		{
			name:   "backward",
			window: pagination.Window{Limit: 3, Backward: true},
			sql:    selectDomains + `ORDER BY domains.domain DESC,domains.id DESC LIMIT $1`,
			vars:   []interface{}{4},
		},
		{
			name:   "backward descending before cursor",
			desc:   true,
			window: pagination.Window{Before: "dom_z", Limit: 3, Backward: true},
			sql: selectDomains + `WHERE (domains.domain, domains.id) > (SELECT domains.domain, domains.id FROM domains WHERE domains.id = $1)` +
				` ORDER BY domains.domain ASC,domains.id ASC LIMIT $2`,
			vars: []interface{}{"dom_z", 4},
		},
		{
			name:   "both cursors",
			window: pagination.Window{After: "dom_a", Before: "dom_z", Limit: 2},
			sql: selectDomains + `WHERE ` + afterCursor +
				` AND (domains.domain, domains.id) < (SELECT domains.domain, domains.id FROM domains WHERE domains.id = $2)` +
				` ORDER BY domains.domain ASC,domains.id ASC LIMIT $3`,
			vars: []interface{}{"dom_a", "dom_z", 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _ := newMockDB(t)
			spec := newSortSpec("domains", "", domainOrderColumns, "domain", interfaces.Order{Field: "domain", Desc: tt.desc})

			var domains []*models.Domain
			stmt := applyWindow(db.Session(&gorm.Session{DryRun: true}), spec, tt.window).Find(&domains).Statement

			assert.Equal(t, tt.sql, stmt.SQL.String())
			assert.Equal(t, tt.vars, stmt.Vars)
		})
	}
}

func TestApplyWindow_JoinedRelation(t *testing.T) {
	db, _ := newMockDB(t)
	spec := newSortSpec("affiliations", affiliationFrom, affiliationOrderColumns, "user-username", interfaces.Order{Field: "org-name"})

	var affiliations []*models.Affiliation
	query := db.Session(&gorm.Session{DryRun: true}).Select("affiliations.*")
	stmt := applyWindow(query, spec, pagination.Window{After: "aff_1", Limit: 1}).Find(&affiliations).Statement

	assert.Equal(t,
		`SELECT affiliations.* FROM "affiliations" WHERE (organizations.name, affiliations.id) > (SELECT organizations.name, affiliations.id FROM `+
			affiliationFrom+` WHERE affiliations.id = $1) ORDER BY organizations.name ASC,affiliations.id ASC LIMIT $2`,
		stmt.SQL.String())
	assert.Equal(t, []interface{}{"aff_1", 2}, stmt.Vars)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%canada%`, likePattern(" canada "))
	assert.Equal(t, `%100\%\_off\\%`, likePattern(`100%_off\`))
}
