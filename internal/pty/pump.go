package pty

// Chunk is one read of child output, delivered to the event loop as a
// PtyOutput event (spec.md §4.11/§4.12).
type Chunk struct {
	Data []byte
}

// Pump reads a Host's output on a dedicated goroutine and forwards chunks
// and the terminal exit signal over channels, mirroring the teacher's
// PipeOutput callback loop but adapted to the event loop's channel fan-in
// (spec.md §4.12 "single-threaded cooperative" dispatch) instead of direct
// callback re-entrancy under a mutex.
type Pump struct {
	host *Host
	out  chan Chunk
	done chan error
}

// NewPump starts the read loop immediately. out is buffered so a slow
// consumer doesn't stall the PTY read (the PTY driver's own buffer, not
// this channel, back-pressures the child).
func NewPump(h *Host) *Pump {
	p := &Pump{host: h, out: make(chan Chunk, 64), done: make(chan error, 1)}
	go p.run()
	return p
}

func (p *Pump) run() {
	buf := make([]byte, 4096)
	for {
		n, err := p.host.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			p.out <- Chunk{Data: chunk}
		}
		if err != nil {
			p.done <- err
			close(p.out)
			return
		}
	}
}

// Output is the channel of decoded PTY output chunks.
func (p *Pump) Output() <-chan Chunk { return p.out }

// Done fires exactly once, with the terminating read error (io.EOF wrapped
// as errs.PtyError on ordinary child exit), after the last chunk has been
// queued on Output and just before Output is closed.
func (p *Pump) Done() <-chan error { return p.done }
