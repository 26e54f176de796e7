package searchresult

import (
	"context"

	"github.com/friendsofgo/errors"
)

// Connection is a Relay style connection over one page of a search result,
// matching a schema such as:
//
//	type UrlKeyIssueConnection {
//	  edges: [UrlKeyIssueEdge!]!
//	  nodes: [UrlKeyIssue!]!
//	  pageInfo: PageInfo!
//	}
type Connection[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	Nodes    []T       `json:"nodes"`
	PageInfo PageInfo  `json:"pageInfo"`
}

// Edge pairs a node with its cursor. For collection items the cursor is the
// identity hash.
type Edge[T any] struct {
	Cursor string `json:"cursor"`
	Node   T      `json:"node"`
}

// BuildConnection transforms items into nodes and pairs each node with the
// cursor returned by cursorOf. The first transform error aborts the build.
func BuildConnection[From any, To any](
	items []From,
	pageInfo PageInfo,
	cursorOf func(index int, item From) string,
	transform func(From) (To, error),
) (*Connection[To], error) {
	nodes := make([]To, len(items))
	edges := make([]Edge[To], len(items))

	for i, item := range items {
		node, err := transform(item)
		if err != nil {
			return nil, errors.Wrapf(err, "transform item at index %d", i)
		}
		nodes[i] = node
		edges[i] = Edge[To]{Cursor: cursorOf(i, item), Node: node}
	}

	return &Connection[To]{Edges: edges, Nodes: nodes, PageInfo: pageInfo}, nil
}

// CollectionConnection loads c and builds a Connection over its page, using each
// item's identity hash as the edge cursor.
//
// Example usage:
//
//	conn, err := searchresult.CollectionConnection(ctx, c, func(item *searchresult.Item) (*model.Issue, error) {
//	    return toIssue(item.Data())
//	})
func CollectionConnection[To any](
	ctx context.Context,
	c *Collection,
	transform func(*Item) (To, error),
) (*Connection[To], error) {
	items, err := c.Items(ctx)
	if err != nil {
		return nil, err
	}

	pageInfo, err := c.PageInfo(ctx)
	if err != nil {
		return nil, err
	}

	return BuildConnection(
		items,
		pageInfo,
		func(_ int, item *Item) string { return item.Hash() },
		transform,
	)
}
