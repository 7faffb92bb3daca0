package progress

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springbar/internal/dynamo"
	"github.com/san-kum/springbar/internal/logger"
	"github.com/san-kum/springbar/internal/viz"
)

var _ = Describe("Group", func() {
	var (
		style viz.Style
		group *Group
		log   *logger.BufferLogger
	)

	mustBar := func(opts ...Option) *Bar {
		b, err := New(style, opts...)
		Expect(err).NotTo(HaveOccurred())
		return b
	}

	BeforeEach(func() {
		var err error
		style, err = viz.NewStyle(viz.WithWidth(10))
		Expect(err).NotTo(HaveOccurred())

		log = logger.NewBufferLogger()
		group = NewGroup(WithLogger(log))
	})

	Describe("membership", func() {
		It("keeps insertion order", func() {
			for _, name := range []string{"zeta", "alpha", "mid"} {
				Expect(group.Add(name, mustBar())).To(Succeed())
			}
			Expect(group.Names()).To(Equal([]string{"zeta", "alpha", "mid"}))
			Expect(group.Len()).To(Equal(3))
		})

		It("rejects duplicate names without side effects", func() {
			first := mustBar()
			Expect(group.Add("build", first)).To(Succeed())

			err := group.Add("build", mustBar())
			var dup *dynamo.DuplicateNameError
			Expect(errors.As(err, &dup)).To(BeTrue())
			Expect(dup.Name).To(Equal("build"))
			Expect(err).To(MatchError(dynamo.ErrDuplicateName))

			Expect(group.Len()).To(Equal(1))
			got, ok := group.Get("build")
			Expect(ok).To(BeTrue())
			Expect(got).To(BeIdenticalTo(first))
		})

		It("rejects nil bars", func() {
			Expect(group.Add("x", nil)).To(MatchError(dynamo.ErrInvalidArgument))
		})

		It("removes members", func() {
			Expect(group.Add("a", mustBar())).To(Succeed())
			Expect(group.Add("b", mustBar())).To(Succeed())

			Expect(group.Remove("a")).To(BeTrue())
			Expect(group.Remove("a")).To(BeFalse())
			Expect(group.Names()).To(Equal([]string{"b"}))
			_, ok := group.Get("a")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("with one bar cancelled mid animation", func() {
		var download, extract, verify *Bar

		BeforeEach(func() {
			download, extract, verify = mustBar(), mustBar(), mustBar()
			Expect(group.Add("download", download)).To(Succeed())
			Expect(group.Add("extract", extract)).To(Succeed())
			Expect(group.Add("verify", verify)).To(Succeed())

			group.UpdateAll(1)
			_, err := group.TickAll(frame)
			Expect(err).NotTo(HaveOccurred())
			download.Cancel()
		})

		It("is animating while another member animates", func() {
			Expect(download.State()).To(Equal(Cancelled))
			Expect(group.IsAnyAnimating()).To(BeTrue())
		})

		It("stops animating once the others settle", func() {
			for i := 0; i < 120 && group.IsAnyAnimating(); i++ {
				_, err := group.TickAll(frame)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(group.IsAnyAnimating()).To(BeFalse())
			Expect(extract.IsComplete()).To(BeTrue())
			Expect(verify.IsComplete()).To(BeTrue())
			Expect(group.IsAllComplete()).To(BeFalse())
		})

		It("still renders the cancelled bar", func() {
			frozen := download.Render()
			for i := 0; i < 10; i++ {
				_, err := group.TickAll(frame)
				Expect(err).NotTo(HaveOccurred())
			}

			rendered := group.RenderAll()
			Expect(rendered).To(HaveLen(3))
			Expect(rendered[0].Name).To(Equal("download"))
			Expect(rendered[0].Line).To(Equal(frozen))
			Expect(rendered[1].Name).To(Equal("extract"))
			Expect(rendered[2].Name).To(Equal("verify"))
		})
	})

	Describe("TickAll", func() {
		It("reports every member failing on a bad dt", func() {
			Expect(group.Add("a", mustBar())).To(Succeed())
			Expect(group.Add("b", mustBar())).To(Succeed())

			report, err := group.TickAll(-1)
			Expect(report.Ticked).To(BeEmpty())
			Expect(report.Failed).To(HaveLen(2))

			var tickErr *TickError
			Expect(errors.As(err, &tickErr)).To(BeTrue())
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
			Expect(err.Error()).To(ContainSubstring("2 bar(s) failed"))
			Expect(log.Count("error")).To(Equal(2))
		})

		It("isolates a panicking member", func() {
			boom := mustBar(OnComplete(func() { panic("listener exploded") }))
			steady := mustBar()
			after := mustBar()
			Expect(group.Add("boom", boom)).To(Succeed())
			Expect(group.Add("steady", steady)).To(Succeed())
			Expect(group.Add("after", after)).To(Succeed())

			group.UpdateAll(1)
			var failures int
			for i := 0; i < 120 && group.IsAnyAnimating(); i++ {
				report, err := group.TickAll(frame)
				if err != nil {
					failures++
					Expect(err).To(MatchError(ErrPanic))
					Expect(report.Failed).To(HaveKey("boom"))
					Expect(report.Ticked).To(ConsistOf("steady", "after"))
				}
			}

			Expect(failures).To(Equal(1))
			Expect(steady.IsComplete()).To(BeTrue())
			Expect(after.IsComplete()).To(BeTrue())
			Expect(boom.IsComplete()).To(BeTrue())
			Expect(log.HasLevel("error")).To(BeTrue())
		})

		It("returns a nil error when everything ticks", func() {
			Expect(group.Add("a", mustBar())).To(Succeed())
			report, err := group.TickAll(frame)
			Expect(err).To(BeNil())
			Expect(report.Ticked).To(Equal([]string{"a"}))
			Expect(report.Failed).To(BeEmpty())
		})
	})

	Describe("bulk operations", func() {
		BeforeEach(func() {
			Expect(group.Add("a", mustBar())).To(Succeed())
			Expect(group.Add("b", mustBar())).To(Succeed())
		})

		It("completes, resets and cancels together", func() {
			group.UpdateAll(1)
			for i := 0; i < 120 && group.IsAnyAnimating(); i++ {
				_, _ = group.TickAll(frame)
			}
			Expect(group.IsAllComplete()).To(BeTrue())

			group.ResetAll()
			for _, name := range group.Names() {
				b, _ := group.Get(name)
				Expect(b.State()).To(Equal(Idle))
				Expect(b.Position()).To(BeZero())
			}

			group.CancelAll()
			for _, name := range group.Names() {
				b, _ := group.Get(name)
				Expect(b.IsCancelled()).To(BeTrue())
			}
		})

		It("treats an empty group as complete", func() {
			Expect(NewGroup().IsAllComplete()).To(BeTrue())
		})
	})

	Describe("snapshots", func() {
		It("restores members in order with their state", func() {
			Expect(group.Add("second", mustBar(WithSpring(6, 0.7)))).To(Succeed())
			Expect(group.Add("first", mustBar())).To(Succeed())
			group.UpdateAll(0.5)
			_, _ = group.TickAll(frame)

			saved := group.Save()
			restored, err := RestoreGroup(saved, func(string) viz.Style { return style })
			Expect(err).NotTo(HaveOccurred())

			Expect(restored.Names()).To(Equal([]string{"second", "first"}))
			Expect(restored.Save()).To(Equal(saved))
		})

		It("names the member that failed to restore", func() {
			gs := GroupSnapshot{Bars: []NamedSnapshot{{Name: "broken", Snapshot: Snapshot{Frequency: 0}}}}
			_, err := RestoreGroup(gs, func(string) viz.Style { return style })
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
			Expect(err.Error()).To(ContainSubstring(`"broken"`))
		})

		It("rejects duplicate names in a document", func() {
			snap := Snapshot{Frequency: 18, Damping: 1}
			gs := GroupSnapshot{Bars: []NamedSnapshot{{Name: "x", Snapshot: snap}, {Name: "x", Snapshot: snap}}}
			_, err := RestoreGroup(gs, func(string) viz.Style { return style })
			Expect(err).To(MatchError(dynamo.ErrDuplicateName))
		})
	})
})
