package progress

import (
	"fmt"
	"io"
	"strings"
	"time"
)

var frames = []byte{'|', '/', '-', '\\'}

// Reporter renders an elapsed-time line while a request is in flight. It is
// cosmetic only: a nil *Reporter is a valid no-op, and business logic never
// depends on it.
type Reporter struct {
	out      io.Writer
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func New(out io.Writer, interval time.Duration) *Reporter {
	if interval <= 0 {
		interval = time.Second
	}
	return &Reporter{out: out, interval: interval}
}

// Start begins rendering in the background. Start on a nil or already
// started Reporter does nothing.
func (r *Reporter) Start() {
	if r == nil || r.stop != nil {
		return
	}
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.loop(time.Now())
}

// Stop ends rendering and clears the line. It waits for the render
// goroutine, so after Stop returns no partial frame is left behind.
func (r *Reporter) Stop() {
	if r == nil || r.stop == nil {
		return
	}
	close(r.stop)
	<-r.done
	r.stop = nil
	r.done = nil
}

func (r *Reporter) loop(start time.Time) {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-r.stop:
			fmt.Fprintf(r.out, "\r%s\r", strings.Repeat(" ", 60))
			return
		case <-ticker.C:
			elapsed := int(time.Since(start).Seconds())
			fmt.Fprintf(r.out, "\rWaiting for model response %c (elapsed %02d:%02d)",
				frames[frame%len(frames)], elapsed/60, elapsed%60)
			frame++
		}
	}
}
