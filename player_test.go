package checkbox_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/kevin-cantwell/checkbox"
)

func testSequence(frames int, duration time.Duration) *checkbox.Sequence {
	seq := &checkbox.Sequence{GridSize: 2}
	for i := 0; i < frames; i++ {
		seq.Frames = append(seq.Frames, checkbox.Frame{
			Grid:     checkbox.NewGrid(2),
			Duration: duration,
		})
	}
	return seq
}

var _ = Describe("Player", func() {
	It("starts playing at the first frame", func() {
		p := checkbox.NewPlayer(testSequence(3, 100*time.Millisecond))
		p.Seek(2)
		p.Play()
		Expect(p.State()).To(Equal(checkbox.Playing))
		Expect(p.Index()).To(Equal(0))
	})

	It("does not advance before the frame duration has elapsed", func() {
		p := checkbox.NewPlayer(testSequence(3, time.Second))
		start := time.Now()
		p.Play()
		Expect(p.Tick(start.Add(500 * time.Millisecond))).To(BeFalse())
		Expect(p.Index()).To(Equal(0))
	})

	It("wraps from the last frame back to the first", func() {
		p := checkbox.NewPlayer(testSequence(3, 100*time.Millisecond))
		p.Play()
		base := time.Now()
		Expect(p.Tick(base.Add(1 * time.Second))).To(BeTrue())
		Expect(p.Index()).To(Equal(1))
		Expect(p.Tick(base.Add(2 * time.Second))).To(BeTrue())
		Expect(p.Index()).To(Equal(2))
		Expect(p.Tick(base.Add(3 * time.Second))).To(BeTrue())
		Expect(p.Index()).To(Equal(0))
	})

	It("halves the wait when the speed doubles", func() {
		p := checkbox.NewPlayer(testSequence(2, time.Second))
		start := time.Now()
		p.Play()
		// 500ms elapsed: too soon at 1x, enough at 2x.
		Expect(p.Tick(start.Add(500 * time.Millisecond))).To(BeFalse())
		p.SetSpeed(2)
		Expect(p.Tick(time.Now().Add(500 * time.Millisecond))).To(BeTrue())
	})

	It("pauses in place and ignores ticks while paused", func() {
		p := checkbox.NewPlayer(testSequence(3, 100*time.Millisecond))
		p.Play()
		p.Tick(time.Now().Add(time.Second))
		Expect(p.Index()).To(Equal(1))
		p.Pause()
		Expect(p.State()).To(Equal(checkbox.Paused))
		Expect(p.Tick(time.Now().Add(time.Hour))).To(BeFalse())
		Expect(p.Index()).To(Equal(1))
	})

	It("resumes from the first frame, not in place", func() {
		p := checkbox.NewPlayer(testSequence(3, 100*time.Millisecond))
		p.Play()
		p.Tick(time.Now().Add(time.Second))
		p.Pause()
		p.Resume()
		Expect(p.State()).To(Equal(checkbox.Playing))
		Expect(p.Index()).To(Equal(0))
	})

	It("stops back to the first frame", func() {
		p := checkbox.NewPlayer(testSequence(3, 100*time.Millisecond))
		p.Play()
		p.Tick(time.Now().Add(time.Second))
		p.Stop()
		Expect(p.State()).To(Equal(checkbox.Stopped))
		Expect(p.Index()).To(Equal(0))
	})

	It("seeks in any state and silently ignores out-of-range indices", func() {
		p := checkbox.NewPlayer(testSequence(5, 100*time.Millisecond))
		p.Seek(3)
		Expect(p.Index()).To(Equal(3))
		p.Seek(-1)
		Expect(p.Index()).To(Equal(3))
		p.Seek(5)
		Expect(p.Index()).To(Equal(3))
	})

	It("ignores non-positive speed multipliers", func() {
		p := checkbox.NewPlayer(testSequence(2, 100*time.Millisecond))
		p.SetSpeed(0)
		Expect(p.Speed()).To(Equal(1.0))
		p.SetSpeed(-2)
		Expect(p.Speed()).To(Equal(1.0))
		p.SetSpeed(0.25)
		Expect(p.Speed()).To(Equal(0.25))
	})

	It("returns from Run when the context is cancelled", func() {
		p := checkbox.NewPlayer(testSequence(2, 100*time.Millisecond))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(p.Run(ctx, nil)).To(Equal(context.Canceled))
	})
})
