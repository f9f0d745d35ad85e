package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
)

// sortSpec describes the keyset used to page through a table. Expr is the
// SQL expression of the sort column, From the relation used to look up the
// cursor row.
type sortSpec struct {
	Table string
	Expr  string
	From  string
	Desc  bool
}

func newSortSpec(table, from string, columns map[string]string, defaultField string, order interfaces.Order) sortSpec {
	expr, ok := columns[order.Field]
	if !ok {
		expr = columns[defaultField]
		order.Desc = false
	}
	if from == "" {
		from = table
	}
	return sortSpec{Table: table, Expr: expr, From: from, Desc: order.Desc}
}

// applyWindow adds keyset conditions for the cursors, the ordering and a
// limit one past the window so callers can tell whether more rows exist.
func applyWindow(db *gorm.DB, spec sortSpec, w pagination.Window) *gorm.DB {
	id := spec.Table + ".id"
	cursorRow := fmt.Sprintf("(SELECT %s, %s FROM %s WHERE %s = ?)", spec.Expr, id, spec.From, id)
	key := fmt.Sprintf("(%s, %s)", spec.Expr, id)

	after, before := ">", "<"
	if spec.Desc {
		after, before = "<", ">"
	}
	if w.After != "" {
		db = db.Where(key+" "+after+" "+cursorRow, w.After)
	}
	if w.Before != "" {
		db = db.Where(key+" "+before+" "+cursorRow, w.Before)
	}

	desc := spec.Desc
	if w.Backward {
		desc = !desc
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	return db.Order(spec.Expr + " " + direction).Order(id + " " + direction).Limit(w.Limit + 1)
}

func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.TrimSpace(search)) + "%"
}
