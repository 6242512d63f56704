package driver_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/render"
)

var _ = Describe("Loop", func() {
	var (
		doc  *render.Document
		d    *driver.Driver
		loop *driver.Loop
	)

	BeforeEach(func() {
		var err error
		doc = render.NewDocument(240, 160)
		d, err = driver.Attach(doc, driver.WithSeed(42))
		Expect(err).NotTo(HaveOccurred())
		loop = driver.NewLoop(d, driver.NewRateFrames(240))
		Expect(loop.Start(context.Background())).To(Succeed())
	})

	AfterEach(func() {
		Expect(loop.Stop()).To(Succeed())
	})

	It("keeps rendering until stopped", func() {
		Eventually(func() int {
			frames := make(chan int, 1)
			loop.Do(func(d *driver.Driver) { frames <- d.Frames() })
			return <-frames
		}, time.Second, 5*time.Millisecond).Should(BeNumerically(">=", 5))
	})

	It("replaces grid and paths before the next frame after a resize", func() {
		loop.Do(func(*driver.Driver) { doc.SetSize(480, 160) })
		loop.Resize()

		lines := make(chan [2]int, 1)
		loop.Do(func(d *driver.Driver) {
			lines <- [2]int{d.Grid().Columns(), len(doc.Paths())}
		})

		var got [2]int
		Eventually(lines).Should(Receive(&got))
		Expect(got[0]).To(Equal(74))
		Expect(got[1]).To(Equal(got[0]))
	})

	It("tracks the pointer on the loop goroutine", func() {
		loop.PointerMove(100, 80)

		Eventually(func() float64 {
			x := make(chan float64, 1)
			loop.Do(func(d *driver.Driver) { x <- d.Cursor().SmoothX })
			return <-x
		}, time.Second, 5*time.Millisecond).Should(BeNumerically("~", 100, 0.01))
	})

	It("removes every path on stop", func() {
		Expect(loop.Stop()).To(Succeed())
		Expect(doc.Paths()).To(BeEmpty())
		Expect(d.Tick(0)).To(MatchError(driver.ErrDetached))
	})
})
