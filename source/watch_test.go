package source_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/searchresult-go"
	"github.com/nrfta/searchresult-go/source"
)

var _ = Describe("JSONFile watch", func() {
	var (
		ctx     context.Context
		cancel  context.CancelFunc
		dir     string
		store   *source.JSONFile
		done    chan error
		changed chan string
	)

	watch := func(onChange func(string)) {
		go func() {
			done <- store.Watch(ctx, onChange)
		}()
	}

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		dir = filepath.Join(GinkgoT().TempDir(), "records")
		store = source.NewJSONFile(dir)
		done = make(chan error, 1)
		changed = make(chan string, 64)

		DeferCleanup(func() {
			cancel()
			Eventually(done).WithTimeout(5 * time.Second).Should(Receive(BeNil()))
		})
	})

	notify := func(identifier string) {
		select {
		case changed <- identifier:
		default:
		}
	}

	It("should report rewritten record sets", func() {
		watch(notify)

		Eventually(func(g Gomega) {
			g.Expect(store.Write(ctx, "category-url-key", []searchresult.Record{{"id": 1}})).To(Succeed())
			g.Expect(changed).To(Receive(Equal("category-url-key")))
		}).WithTimeout(5 * time.Second).WithPolling(50 * time.Millisecond).Should(Succeed())
	})

	It("should ignore files that are not record sets", func() {
		watch(notify)

		Eventually(func(g Gomega) {
			g.Expect(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)).To(Succeed())
			g.Expect(store.Write(ctx, "issues", nil)).To(Succeed())
			g.Expect(changed).To(Receive(Equal("issues")))
		}).WithTimeout(5 * time.Second).WithPolling(50 * time.Millisecond).Should(Succeed())

		Consistently(changed).WithTimeout(200 * time.Millisecond).ShouldNot(Receive(Equal("notes.txt")))
	})

	It("should keep a cache in step with the directory", func() {
		cached := source.NewCached(store, time.Hour)
		Expect(store.Write(ctx, "issues", []searchresult.Record{{"id": 1}})).To(Succeed())

		records, err := cached.Read(ctx, "issues")
		Expect(err).ToNot(HaveOccurred())
		Expect(records).To(HaveLen(1))

		watch(cached.Invalidate)

		Eventually(func(g Gomega) {
			g.Expect(store.Write(ctx, "issues", []searchresult.Record{{"id": 1}, {"id": 2}})).To(Succeed())
			records, err := cached.Read(ctx, "issues")
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(records).To(HaveLen(2))
		}).WithTimeout(5 * time.Second).WithPolling(50 * time.Millisecond).Should(Succeed())
	})

	It("should stop when the context is done", func() {
		watch(notify)
		cancel()
		Eventually(done).WithTimeout(5 * time.Second).Should(Receive(BeNil()))
		done <- nil
	})
})
