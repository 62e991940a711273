package irc

// fakeStream is an in-memory Stream double used by tests that exercise
// Connection's state machine without opening a real socket.
type fakeStream struct {
	in      []byte
	out     [][]byte
	closed  bool
	readErr error
}

func (f *fakeStream) ReadReady(buf []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	if len(f.in) == 0 {
		return 0, nil
	}
	n := copy(buf, f.in)
	f.in = f.in[n:]
	return n, nil
}

func (f *fakeStream) Enqueue(p []byte) (int, error) {
	cp := append([]byte(nil), p...)
	f.out = append(f.out, cp)
	return len(p), nil
}

func (f *fakeStream) WriteReady() error { return nil }

func (f *fakeStream) Fd() (uintptr, error) { return 0, nil }

func (f *fakeStream) Close() error {
	f.closed = true
	return nil
}

func (f *fakeStream) lastFrame() string {
	if len(f.out) == 0 {
		return ""
	}
	return string(f.out[len(f.out)-1])
}

func (f *fakeStream) allFrames() string {
	var s string
	for _, o := range f.out {
		s += string(o)
	}
	return s
}

// newTestConnection builds a Connection wired to a fakeStream, bypassing
// New/open (which would dial a real socket), for tests that only need to
// drive ReadReady/Tick/registration logic directly.
func newTestConnection(nicks []string) (*Connection, *fakeStream) {
	fs := &fakeStream{}
	c := &Connection{
		cfg: Config{
			Nicks:    nicks,
			Hostname: "myhost",
			Realname: "Real Name",
		},
		poller:   nopPoller{},
		observer: nopObserver{},
		link:     linkState{kind: linkPingPong, ticks: 0, stream: fs},
	}
	return c, fs
}
