package source_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/searchresult-go"
	"github.com/nrfta/searchresult-go/source"
)

var _ = Describe("JSONFile", func() {
	var (
		ctx   context.Context
		dir   string
		store *source.JSONFile
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = filepath.Join(GinkgoT().TempDir(), "records")
		store = source.NewJSONFile(dir)
	})

	It("should read a missing file as an empty set", func() {
		records, err := store.Read(ctx, "category-url-key")
		Expect(err).ToNot(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	It("should round trip records with exact numbers", func() {
		Expect(store.Write(ctx, "issues", []searchresult.Record{
			{"id": 9007199254740993, "name": "Shoes", "active": true, "parent": nil},
		})).To(Succeed())

		Expect(store.Path("issues")).To(BeAnExistingFile())

		records, err := store.Read(ctx, "issues")
		Expect(err).ToNot(HaveOccurred())
		Expect(records).To(HaveLen(1))
		Expect(records[0]["id"]).To(Equal(json.Number("9007199254740993")))
		Expect(records[0]["name"]).To(Equal("Shoes"))
		Expect(records[0]["active"]).To(BeTrue())
		Expect(records[0]).To(HaveKeyWithValue("parent", BeNil()))
	})

	It("should hash read records like the written ones", func() {
		written := searchresult.Record{"id": 7, "name": "Bags"}
		Expect(store.Write(ctx, "issues", []searchresult.Record{written})).To(Succeed())

		records, _ := store.Read(ctx, "issues")
		fromFile, err := searchresult.NewItem(records[0])
		Expect(err).ToNot(HaveOccurred())
		original, err := searchresult.NewItem(written)
		Expect(err).ToNot(HaveOccurred())

		Expect(fromFile.Hash()).To(Equal(original.Hash()))
	})

	It("should leave no temporary files behind", func() {
		Expect(store.Write(ctx, "issues", []searchresult.Record{{"id": 1}})).To(Succeed())
		Expect(store.Write(ctx, "issues", []searchresult.Record{{"id": 2}})).To(Succeed())

		entries, err := os.ReadDir(dir)
		Expect(err).ToNot(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Name()).To(Equal("issues.json"))
	})

	It("should read files written by other producers", func() {
		Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
		Expect(os.WriteFile(store.Path("product-url-path"),
			[]byte(`[{"id": 1, "sku": "A"}, {"id": 2.5, "sku": "B"}]`), 0o644)).To(Succeed())

		records, err := store.Read(ctx, "product-url-path")
		Expect(err).ToNot(HaveOccurred())
		Expect(records).To(HaveLen(2))
		Expect(records[1]["id"]).To(Equal(json.Number("2.5")))
	})

	It("should treat an empty file as an empty set", func() {
		Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
		Expect(os.WriteFile(store.Path("issues"), nil, 0o644)).To(Succeed())

		records, err := store.Read(ctx, "issues")
		Expect(err).ToNot(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	It("should report malformed files", func() {
		Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
		Expect(os.WriteFile(store.Path("issues"), []byte(`{"id": 1}`), 0o644)).To(Succeed())

		_, err := store.Read(ctx, "issues")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("read issues"))
	})

	DescribeTable("should reject identifiers outside the directory",
		func(identifier string) {
			_, err := store.Read(ctx, identifier)
			Expect(err).To(HaveOccurred())
			Expect(store.Write(ctx, identifier, nil)).ToNot(Succeed())
		},
		Entry("empty", ""),
		Entry("parent", ".."),
		Entry("nested", "a/b"),
		Entry("windows separator", `a\b`),
	)
})
