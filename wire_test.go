package irc

import "testing"

func TestParseLineNumeric(t *testing.T) {
	msg := parseLine(":adams.freenode.net 002 tiny_test :Your host is adams.freenode.net, running version ircd-seven-1.1.4")
	if msg == nil {
		t.Fatal("expected a parsed message")
	}
	if msg.Num != 2 {
		t.Errorf("expected Num 2, got %d", msg.Num)
	}
	if msg.Command != "002" {
		t.Errorf("expected Command \"002\", got %q", msg.Command)
	}
	if msg.Pfx == nil || msg.Pfx.Raw != "adams.freenode.net" {
		t.Errorf("unexpected prefix: %+v", msg.Pfx)
	}
	if got := msg.Last(); got != "Your host is adams.freenode.net, running version ircd-seven-1.1.4" {
		t.Errorf("unexpected trailing param: %q", got)
	}
}

func TestParseLineUserPrefix(t *testing.T) {
	msg := parseLine(":osa1!~osa@example.com JOIN #haskell")
	if msg == nil {
		t.Fatal("expected a parsed message")
	}
	if msg.Command != "JOIN" {
		t.Errorf("expected JOIN, got %q", msg.Command)
	}
	if !msg.Pfx.IsUser() {
		t.Fatal("expected a user prefix")
	}
	if msg.Pfx.Nick != "osa1" || msg.Pfx.User != "~osa" || msg.Pfx.Host != "example.com" {
		t.Errorf("unexpected prefix: %+v", msg.Pfx)
	}
	if len(msg.Params) != 1 || msg.Params[0] != "#haskell" {
		t.Errorf("unexpected params: %v", msg.Params)
	}
}

func TestParseLineNoPrefix(t *testing.T) {
	msg := parseLine("PING :irc.example.com")
	if msg == nil {
		t.Fatal("expected a parsed message")
	}
	if msg.Pfx != nil {
		t.Errorf("expected no prefix, got %+v", msg.Pfx)
	}
	if msg.Command != "PING" {
		t.Errorf("expected PING, got %q", msg.Command)
	}
	if msg.Last() != "irc.example.com" {
		t.Errorf("unexpected trailing param: %q", msg.Last())
	}
}

func TestParseLineSkipsTags(t *testing.T) {
	msg := parseLine("@time=2024-01-01T00:00:00Z :nick!u@h PRIVMSG #chan :hello")
	if msg == nil {
		t.Fatal("expected a parsed message")
	}
	if msg.Command != "PRIVMSG" {
		t.Errorf("expected PRIVMSG, got %q", msg.Command)
	}
	if msg.Last() != "hello" {
		t.Errorf("unexpected trailing param: %q", msg.Last())
	}
}

func TestReadMsgDrainsBuffer(t *testing.T) {
	buf := []byte("PING :a\r\nPING :b\r\nNOT YET")

	m1, ok := ReadMsg(&buf)
	if !ok || m1.Last() != "a" {
		t.Fatalf("unexpected first message: %+v ok=%v", m1, ok)
	}

	m2, ok := ReadMsg(&buf)
	if !ok || m2.Last() != "b" {
		t.Fatalf("unexpected second message: %+v ok=%v", m2, ok)
	}

	if _, ok := ReadMsg(&buf); ok {
		t.Fatal("expected no complete line left")
	}
	if string(buf) != "NOT YET" {
		t.Errorf("expected leftover bytes preserved, got %q", buf)
	}
}

func TestWireUserFraming(t *testing.T) {
	var buf stringWriter
	if err := wireUser(&buf, "myhost", "My Real Name"); err != nil {
		t.Fatal(err)
	}
	if buf.s != "USER myhost 0 * :My Real Name\r\n" {
		t.Errorf("unexpected frame: %q", buf.s)
	}
}

func TestWireJoinEmptyIsNoop(t *testing.T) {
	var buf stringWriter
	if err := wireJoin(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.s != "" {
		t.Errorf("expected no frame written, got %q", buf.s)
	}
}

// stringWriter is a minimal io.Writer for asserting on exact wire framing.
type stringWriter struct{ s string }

func (w *stringWriter) Write(p []byte) (int, error) {
	w.s += string(p)
	return len(p), nil
}
