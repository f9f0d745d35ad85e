package resolver

import "github.com/canada-ca/tracker-sub010/internal/pagination"

type pageInfoResolver struct {
	hasNextPage     bool
	hasPreviousPage bool
	startCursor     *string
	endCursor       *string
}

func (p *pageInfoResolver) HasNextPage() bool     { return p.hasNextPage }
func (p *pageInfoResolver) HasPreviousPage() bool { return p.hasPreviousPage }
func (p *pageInfoResolver) StartCursor() *string  { return p.startCursor }
func (p *pageInfoResolver) EndCursor() *string    { return p.endCursor }

type edgeResolver[N any] struct {
	cursor string
	node   N
}

func (e *edgeResolver[N]) Cursor() string { return e.cursor }
func (e *edgeResolver[N]) Node() N        { return e.node }

type connectionResolver[N any] struct {
	edges      []*edgeResolver[N]
	pageInfo   *pageInfoResolver
	totalCount int64
}

func (c *connectionResolver[N]) Edges() *[]*edgeResolver[N]  { return &c.edges }
func (c *connectionResolver[N]) PageInfo() *pageInfoResolver { return c.pageInfo }
func (c *connectionResolver[N]) TotalCount() int32           { return int32(c.totalCount) }

// newConnection wraps a page of rows, encoding cursors as relay ids of
// cursorType.
func newConnection[T any, N any](page pagination.Page[T], cursorType string, id func(T) string, node func(T) N) *connectionResolver[N] {
	conn := &connectionResolver[N]{
		edges: make([]*edgeResolver[N], 0, len(page.Items)),
		pageInfo: &pageInfoResolver{
			hasNextPage:     page.HasNextPage,
			hasPreviousPage: page.HasPreviousPage,
		},
		totalCount: page.TotalCount,
	}
	for _, item := range page.Items {
		conn.edges = append(conn.edges, &edgeResolver[N]{
			cursor: pagination.ToGlobalID(cursorType, id(item)),
			node:   node(item),
		})
	}
	if len(conn.edges) > 0 {
		start := conn.edges[0].cursor
		end := conn.edges[len(conn.edges)-1].cursor
		conn.pageInfo.startCursor = &start
		conn.pageInfo.endCursor = &end
	}
	return conn
}
