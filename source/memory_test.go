package source_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/searchresult-go"
	"github.com/nrfta/searchresult-go/source"
)

var _ = Describe("Memory", func() {
	var (
		ctx   context.Context
		store *source.Memory
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = source.NewMemory()
	})

	It("should read an unknown identifier as an empty set", func() {
		records, err := store.Read(ctx, "category-url-key")
		Expect(err).ToNot(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	It("should replace the record set on write", func() {
		Expect(store.Write(ctx, "issues", []searchresult.Record{{"id": 1}, {"id": 2}})).To(Succeed())
		Expect(store.Write(ctx, "issues", []searchresult.Record{{"id": 3}})).To(Succeed())

		records, err := store.Read(ctx, "issues")
		Expect(err).ToNot(HaveOccurred())
		Expect(records).To(Equal([]searchresult.Record{{"id": 3}}))
	})

	It("should not share records with writers or readers", func() {
		written := []searchresult.Record{{"id": 1}}
		Expect(store.Write(ctx, "issues", written)).To(Succeed())
		written[0]["id"] = 99

		read, _ := store.Read(ctx, "issues")
		read[0]["id"] = 42

		again, _ := store.Read(ctx, "issues")
		Expect(again).To(Equal([]searchresult.Record{{"id": 1}}))
	})

	It("should forget deleted identifiers", func() {
		Expect(store.Write(ctx, "issues", []searchresult.Record{{"id": 1}})).To(Succeed())
		store.Delete("issues")

		records, _ := store.Read(ctx, "issues")
		Expect(records).To(BeEmpty())
	})

	It("should reject an empty identifier", func() {
		Expect(store.Write(ctx, "", nil)).To(MatchError(source.ErrEmptyIdentifier))
	})

	It("should honor a cancelled context", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := store.Read(cancelled, "issues")
		Expect(err).To(MatchError(context.Canceled))
	})

	It("should back a collection", func() {
		Expect(store.Write(ctx, searchresult.ProductURLPathIdentifier, []searchresult.Record{
			{"id": 2, "sku": "B"},
			{"id": 1, "sku": "A"},
			{"id": 3, "sku": "C"},
		})).To(Succeed())

		c := searchresult.NewProductURLPathCollection(store,
			searchresult.WithOrder("sku", searchresult.DESC),
			searchresult.WithPageSize(2),
		)

		items, err := c.Items(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(items).To(HaveLen(2))
		Expect(items[0].Data()["sku"]).To(Equal("C"))
		Expect(items[1].Data()["sku"]).To(Equal("B"))

		total, _ := c.TotalCount(ctx)
		Expect(total).To(Equal(3))
	})
})
