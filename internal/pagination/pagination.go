package pagination

import (
	"context"

	"github.com/canada-ca/tracker-sub010/internal/i18n"
)

const MaxPageSize = 100

// Args are the relay connection arguments as received from GraphQL.
type Args struct {
	First  *int32
	Last   *int32
	After  *string
	Before *string
}

// Window is a validated page request. After/Before hold local ids.
type Window struct {
	After    string
	Before   string
	Limit    int
	Backward bool
}

type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewWindow validates args for the named connection, e.g. "Domain".
func NewWindow(ctx context.Context, connection string, cursorType string, args Args) (Window, error) {
	if args.First == nil && args.Last == nil {
		return Window{}, &Error{Message: i18n.T(ctx, "You must provide a `first` or `last` value to properly paginate the `%s` connection.", connection)}
	}
	if args.First != nil && args.Last != nil {
		return Window{}, &Error{Message: i18n.T(ctx, "Passing both `first` and `last` to paginate the `%s` connection is not supported.", connection)}
	}

	argName := "first"
	size := args.First
	if args.Last != nil {
		argName = "last"
		size = args.Last
	}
	if *size < 0 {
		return Window{}, &Error{Message: i18n.T(ctx, "`%s` on the `%s` connection cannot be less than zero.", argName, connection)}
	}
	if *size > MaxPageSize {
		return Window{}, &Error{Message: i18n.T(ctx, "Requesting `%d` records on the `%s` connection exceeds the `%s` limit of 100 records.", *size, connection, argName)}
	}

	window := Window{Limit: int(*size), Backward: args.Last != nil}

	var err error
	if window.After, err = decodeCursor(ctx, cursorType, args.After); err != nil {
		return Window{}, err
	}
	if window.Before, err = decodeCursor(ctx, cursorType, args.Before); err != nil {
		return Window{}, err
	}
	return window, nil
}

func decodeCursor(ctx context.Context, cursorType string, cursor *string) (string, error) {
	if cursor == nil || *cursor == "" {
		return "", nil
	}
	typeName, id := FromGlobalID(*cursor)
	if typeName != cursorType || id == "" {
		return "", &Error{Message: i18n.T(ctx, "Invalid cursor, please provide a valid cursor.")}
	}
	return id, nil
}

// Page is one window of a connection.
type Page[T any] struct {
	Items           []T
	TotalCount      int64
	HasNextPage     bool
	HasPreviousPage bool
}

// NewPage trims the look-ahead row fetched by repositories (Limit+1 rows)
// and restores natural order for backward windows.
func NewPage[T any](w Window, rows []T, total int64) Page[T] {
	extra := len(rows) > w.Limit
	if extra {
		rows = rows[:w.Limit]
	}
	page := Page[T]{TotalCount: total}
	if w.Backward {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
		page.HasPreviousPage = extra
		page.HasNextPage = w.Before != ""
	} else {
		page.HasNextPage = extra
		page.HasPreviousPage = w.After != ""
	}
	page.Items = rows
	return page
}
