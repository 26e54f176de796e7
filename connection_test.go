package searchresult_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/searchresult-go"
)

// UrlKeyIssue is a typical GraphQL model built from a collection item.
type UrlKeyIssue struct {
	ID      string
	Name    string
	Problem string
}

func toUrlKeyIssue(item *searchresult.Item) (*UrlKeyIssue, error) {
	name, ok := item.Data()["name"].(string)
	if !ok {
		return nil, fmt.Errorf("missing name on %s", item.ID())
	}
	problem, _ := item.Data()["problem"].(string)
	return &UrlKeyIssue{ID: item.ID(), Name: name, Problem: problem}, nil
}

var _ = Describe("Connection and Edge", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("BuildConnection", func() {
		It("should build a connection with edges and nodes", func() {
			names := []string{"Shoes", "Bags", "Hats"}

			pageInfo := searchresult.PageInfo{
				HasNextPage:     func() (bool, error) { return true, nil },
				HasPreviousPage: func() (bool, error) { return false, nil },
				StartCursor:     func() (*string, error) { c := "cursor:0"; return &c, nil },
				EndCursor:       func() (*string, error) { c := "cursor:2"; return &c, nil },
				TotalCount:      func() (*int, error) { count := 100; return &count, nil },
			}

			conn, err := searchresult.BuildConnection(names, pageInfo,
				func(i int, name string) string { return fmt.Sprintf("cursor:%d", i) },
				func(name string) (*UrlKeyIssue, error) { return &UrlKeyIssue{Name: name}, nil },
			)

			Expect(err).ToNot(HaveOccurred())
			Expect(conn.Nodes).To(HaveLen(3))
			Expect(conn.Nodes[0].Name).To(Equal("Shoes"))
			Expect(conn.Nodes[2].Name).To(Equal("Hats"))

			Expect(conn.Edges).To(HaveLen(3))
			Expect(conn.Edges[0].Cursor).To(Equal("cursor:0"))
			Expect(conn.Edges[0].Node).To(Equal(conn.Nodes[0]))
			Expect(conn.Edges[2].Cursor).To(Equal("cursor:2"))

			hasNext, _ := conn.PageInfo.HasNextPage()
			totalCount, _ := conn.PageInfo.TotalCount()
			Expect(hasNext).To(BeTrue())
			Expect(*totalCount).To(Equal(100))
		})

		It("should handle empty result set", func() {
			conn, err := searchresult.BuildConnection([]string{}, *searchresult.NewEmptyPageInfo(),
				func(i int, name string) string { return name },
				func(name string) (string, error) { return name, nil },
			)

			Expect(err).ToNot(HaveOccurred())
			Expect(conn.Nodes).To(BeEmpty())
			Expect(conn.Edges).To(BeEmpty())
		})

		It("should propagate transform errors", func() {
			conn, err := searchresult.BuildConnection([]string{"ok", "bad"}, searchresult.PageInfo{},
				func(i int, name string) string { return name },
				func(name string) (string, error) {
					if name == "bad" {
						return "", fmt.Errorf("invalid name: %s", name)
					}
					return name, nil
				},
			)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("transform item at index 1"))
			Expect(err.Error()).To(ContainSubstring("invalid name"))
			Expect(conn).To(BeNil())
		})
	})

	Describe("CollectionConnection", func() {
		var src searchresult.RecordSource

		BeforeEach(func() {
			src = searchresult.RecordSourceFunc(func(ctx context.Context, identifier string) ([]searchresult.Record, error) {
				return []searchresult.Record{
					{"id": 3, "name": "Hats", "problem": "duplicate url key"},
					{"id": 1, "name": "Shoes", "problem": "duplicate url key"},
					{"id": 2, "name": "Bags", "problem": "empty url key"},
				}, nil
			})
		})

		It("should use the item hashes as cursors", func() {
			c := searchresult.NewCategoryURLKeyCollection(src,
				searchresult.WithOrder("id", searchresult.ASC),
				searchresult.WithPageSize(2),
			)

			conn, err := searchresult.CollectionConnection(ctx, c, toUrlKeyIssue)
			Expect(err).ToNot(HaveOccurred())

			Expect(conn.Nodes).To(HaveLen(2))
			Expect(conn.Nodes[0].Name).To(Equal("Shoes"))
			Expect(conn.Nodes[1].Name).To(Equal("Bags"))

			items, _ := c.Items(ctx)
			Expect(conn.Edges[0].Cursor).To(Equal(items[0].Hash()))
			Expect(conn.Edges[1].Cursor).To(Equal(items[1].Hash()))
			Expect(conn.Nodes[0].ID).To(Equal(items[0].Hash()))

			hasNext, _ := conn.PageInfo.HasNextPage()
			Expect(hasNext).To(BeTrue())
			endCursor, _ := conn.PageInfo.EndCursor()
			Expect(*endCursor).To(Equal(conn.Edges[1].Cursor))
		})

		It("should return load errors before transforming", func() {
			boom := fmt.Errorf("storage unavailable")
			failing := searchresult.RecordSourceFunc(func(ctx context.Context, identifier string) ([]searchresult.Record, error) {
				return nil, boom
			})

			transformed := 0
			conn, err := searchresult.CollectionConnection(ctx, searchresult.New(failing, "issues"),
				func(item *searchresult.Item) (string, error) {
					transformed++
					return item.ID(), nil
				},
			)

			Expect(err).To(BeIdenticalTo(boom))
			Expect(conn).To(BeNil())
			Expect(transformed).To(Equal(0))
		})
	})
})
