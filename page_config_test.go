package searchresult_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/searchresult-go"
)

var _ = Describe("PageConfig", func() {
	Describe("EffectiveSize", func() {
		It("should default to no limit", func() {
			Expect(searchresult.NewPageConfig().EffectiveSize(0)).To(Equal(0))
			Expect(searchresult.NewPageConfig().EffectiveSize(25)).To(Equal(25))
		})

		It("should use the default size when none is requested", func() {
			cfg := searchresult.NewPageConfig().WithDefaultSize(20)

			Expect(cfg.EffectiveSize(0)).To(Equal(20))
			Expect(cfg.EffectiveSize(-3)).To(Equal(20))
			Expect(cfg.EffectiveSize(5)).To(Equal(5))
		})

		It("should cap oversized and unlimited requests", func() {
			cfg := searchresult.NewPageConfig().WithMaxSize(100)

			Expect(cfg.EffectiveSize(500)).To(Equal(100))
			Expect(cfg.EffectiveSize(0)).To(Equal(100))
			Expect(cfg.EffectiveSize(100)).To(Equal(100))
			Expect(cfg.EffectiveSize(99)).To(Equal(99))
		})

		It("should ignore non-positive With* values", func() {
			cfg := searchresult.NewPageConfig().WithDefaultSize(-1).WithMaxSize(0)

			Expect(cfg.DefaultSize).To(Equal(0))
			Expect(cfg.MaxSize).To(Equal(0))
		})

		It("should handle a nil config", func() {
			var cfg *searchresult.PageConfig
			Expect(cfg.EffectiveSize(7)).To(Equal(7))
		})
	})

	Describe("Validate", func() {
		It("should accept sizes within the limit", func() {
			cfg := searchresult.NewPageConfig().WithMaxSize(100)

			Expect(cfg.Validate(50)).To(Succeed())
			Expect(cfg.Validate(100)).To(Succeed())
		})

		It("should accept anything without a limit", func() {
			Expect(searchresult.NewPageConfig().Validate(999999)).To(Succeed())
		})

		It("should return PageSizeError with correct values", func() {
			cfg := searchresult.NewPageConfig().WithMaxSize(100)

			err := cfg.Validate(150)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("150"))
			Expect(err.Error()).To(ContainSubstring("exceeds maximum"))

			var pageSizeErr *searchresult.PageSizeError
			Expect(err).To(BeAssignableToTypeOf(pageSizeErr))

			pageSizeErr = err.(*searchresult.PageSizeError)
			Expect(pageSizeErr.Requested).To(Equal(150))
			Expect(pageSizeErr.Maximum).To(Equal(100))
		})
	})
})

var _ = Describe("NewEmptyPageInfo", func() {
	It("should describe an empty first page", func() {
		pageInfo := searchresult.NewEmptyPageInfo()

		totalCount, err := pageInfo.TotalCount()
		Expect(err).ToNot(HaveOccurred())
		Expect(*totalCount).To(Equal(0))

		startCursor, err := pageInfo.StartCursor()
		Expect(err).ToNot(HaveOccurred())
		Expect(startCursor).To(BeNil())

		endCursor, err := pageInfo.EndCursor()
		Expect(err).ToNot(HaveOccurred())
		Expect(endCursor).To(BeNil())

		hasNext, err := pageInfo.HasNextPage()
		Expect(err).ToNot(HaveOccurred())
		Expect(hasNext).To(BeFalse())

		hasPrev, err := pageInfo.HasPreviousPage()
		Expect(err).ToNot(HaveOccurred())
		Expect(hasPrev).To(BeFalse())
	})
})
