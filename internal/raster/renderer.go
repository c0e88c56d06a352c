package raster

import (
	"fmt"
	"log/slog"

	"microraster/internal/atlas"
	"microraster/internal/mathutil"
)

// Stats counts renderer activity since creation.
type Stats struct {
	Commands     int // quads queued
	Flushes      int // non-empty flushes
	EagerFlushes int // flushes forced by a full queue
	Skipped      int // quads dropped for an unknown atlas id
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithQueueCapacity sets the number of quads buffered between flushes.
func WithQueueCapacity(n int) Option {
	return func(r *Renderer) { r.queue = NewQueue(n) }
}

// WithLogger routes renderer diagnostics to l. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithStrictSampling makes contract violations panic: atlas samples outside
// the entry rect, pixel writes outside the clip, unknown atlas ids. Without
// it samples are clamped and unknown ids are skipped with a warning.
func WithStrictSampling(strict bool) Option {
	return func(r *Renderer) { r.strict = strict }
}

// Renderer is the drawing context for one framebuffer. It is not safe for
// concurrent use; drive it from a single render loop.
type Renderer struct {
	fb     *FrameBuffer
	atlas  *atlas.Atlas
	clip   mathutil.Rect
	queue  *Queue
	strict bool
	log    *slog.Logger
	stats  Stats
}

// New binds a renderer to fb and atl, resets the clip to the whole buffer and
// clears it to opaque black. A nil atlas selects atlas.Default().
func New(fb *FrameBuffer, atl *atlas.Atlas, opts ...Option) *Renderer {
	if atl == nil {
		atl = atlas.Default()
	}
	r := &Renderer{
		fb:    fb,
		atlas: atl,
		clip:  fb.Bounds(),
		log:   slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(r)
	}
	if r.queue == nil {
		r.queue = NewQueue(DefaultQueueCapacity)
	}
	r.Clear(Black)
	return r
}

// FrameBuffer returns the render target.
func (r *Renderer) FrameBuffer() *FrameBuffer { return r.fb }

// Atlas returns the coverage atlas in use.
func (r *Renderer) Atlas() *atlas.Atlas { return r.atlas }

// Stats returns a snapshot of the activity counters.
func (r *Renderer) Stats() Stats { return r.stats }

// Pending returns the number of queued quads not yet composited.
func (r *Renderer) Pending() int { return r.queue.Len() }

// ClipRect returns the current clip rect.
func (r *Renderer) ClipRect() mathutil.Rect { return r.clip }

// SetClipRect flushes quads queued under the old clip, then clamps rect to
// the framebuffer and makes it the clip. There is no clip stack.
func (r *Renderer) SetClipRect(rect mathutil.Rect) {
	r.flush()
	r.clip = rect.ClampTo(r.fb.Width, r.fb.Height)
}

// Clear flushes pending quads, then fills the whole buffer with c made
// opaque, ignoring the clip.
func (r *Renderer) Clear(c Color) {
	r.flush()
	v := c.ARGB() | 0xff000000
	pix := r.fb.Pix
	for i := range pix {
		pix[i] = v
	}
}

// Present composites everything still queued. The framebuffer itself is the
// displayable surface; copying it to a screen is the caller's job.
func (r *Renderer) Present() {
	r.flush()
}

// push queues one quad, flushing first when the queue is full.
func (r *Renderer) push(dst mathutil.Rect, id int, c Color) {
	cmd := Command{Atlas: id, Dst: dst, Color: c}
	if !r.queue.TryPush(cmd) {
		r.stats.EagerFlushes++
		r.flush()
		r.queue.TryPush(cmd)
	}
	r.stats.Commands++
}

// contractViolation panics in strict mode and logs otherwise.
func (r *Renderer) contractViolation(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.strict {
		panic("raster: " + msg)
	}
	r.log.Warn("raster: " + msg)
}
