package irc

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestIntroducePlainSendsPassNickUser(t *testing.T) {
	c, fs := newTestConnection([]string{"osa1"})
	c.cfg.Pass = "serverpass"

	c.introduce()

	got := fs.allFrames()
	if !strings.Contains(got, "PASS serverpass\r\n") {
		t.Errorf("expected PASS frame, got %q", got)
	}
	if !strings.Contains(got, "NICK osa1\r\n") {
		t.Errorf("expected NICK frame, got %q", got)
	}
	if !strings.Contains(got, "USER myhost 0 * :Real Name\r\n") {
		t.Errorf("expected USER frame, got %q", got)
	}
	if !c.sentRegistration {
		t.Error("expected sentRegistration to be true after introduce")
	}
}

func TestBeginRegistrationWithSASLSendsCapLSFirst(t *testing.T) {
	c, fs := newTestConnection([]string{"osa1"})
	c.cfg.SASLAuth = &SASLAuth{Username: "osa1", Password: "hunter2"}

	c.beginRegistration()

	if fs.lastFrame() != "CAP LS\r\n" {
		t.Fatalf("expected CAP LS, got %q", fs.lastFrame())
	}
	if c.sentRegistration {
		t.Error("expected sentRegistration to stay false until CAP LS reply")
	}
}

func TestHandleCAPLSIntroducesAndRequestsSASL(t *testing.T) {
	c, fs := newTestConnection([]string{"osa1"})
	c.cfg.SASLAuth = &SASLAuth{Username: "osa1", Password: "hunter2"}

	c.handleCAP(&Msg{Command: "CAP", Params: []string{"*", "LS", "sasl multi-prefix"}})

	got := fs.allFrames()
	if !strings.Contains(got, "NICK osa1\r\n") {
		t.Errorf("expected introduce() to have run, got %q", got)
	}
	if !strings.Contains(got, "CAP REQ :sasl\r\n") {
		t.Errorf("expected a CAP REQ for sasl, got %q", got)
	}
}

func TestHandleCAPAckSendsAuthenticate(t *testing.T) {
	c, fs := newTestConnection([]string{"osa1"})

	c.handleCAP(&Msg{Command: "CAP", Params: []string{"*", "ACK", "sasl"}})

	if fs.lastFrame() != "AUTHENTICATE PLAIN\r\n" {
		t.Fatalf("expected AUTHENTICATE PLAIN, got %q", fs.lastFrame())
	}
}

func TestHandleCAPNakEndsNegotiation(t *testing.T) {
	c, fs := newTestConnection([]string{"osa1"})

	c.handleCAP(&Msg{Command: "CAP", Params: []string{"*", "NAK", "sasl"}})

	if fs.lastFrame() != "CAP END\r\n" {
		t.Fatalf("expected CAP END, got %q", fs.lastFrame())
	}
}

func TestHandleAuthenticateSendsBase64Plain(t *testing.T) {
	c, fs := newTestConnection([]string{"osa1"})
	c.cfg.SASLAuth = &SASLAuth{Username: "osa1", Password: "hunter2"}

	c.handleAuthenticate(&Msg{Command: "AUTHENTICATE", Params: []string{"+"}})

	want := base64.StdEncoding.EncodeToString([]byte("osa1\x00osa1\x00hunter2"))
	if fs.lastFrame() != "AUTHENTICATE "+want+"\r\n" {
		t.Fatalf("unexpected frame: %q", fs.lastFrame())
	}
}

func TestNickCollisionEscalation(t *testing.T) {
	// S5: nicks ["a", "b"]; three 433s before any 001.
	c, fs := newTestConnection([]string{"a", "b"})

	c.nextNick() // first 433: advance index to "b", no NICK sent yet
	if c.GetNick() != "b" {
		t.Fatalf("expected nick \"b\" after first collision, got %q", c.GetNick())
	}
	if len(fs.out) != 0 {
		t.Fatalf("expected no NICK frame after first collision, got %v", fs.out)
	}

	c.nextNick() // second 433: append "b_", send NICK b_
	if c.GetNick() != "b_" {
		t.Fatalf("expected nick \"b_\" after second collision, got %q", c.GetNick())
	}
	if fs.lastFrame() != "NICK b_\r\n" {
		t.Fatalf("expected NICK b_, got %q", fs.lastFrame())
	}

	c.nextNick() // third 433: append "b__", send NICK b__
	if c.GetNick() != "b__" {
		t.Fatalf("expected nick \"b__\" after third collision, got %q", c.GetNick())
	}
	if fs.lastFrame() != "NICK b__\r\n" {
		t.Fatalf("expected NICK b__, got %q", fs.lastFrame())
	}
}

func TestSetNickAdoptsExistingOrAppends(t *testing.T) {
	c, _ := newTestConnection([]string{"a", "b"})

	c.setNick("b")
	if c.currentNickIdx != 1 {
		t.Errorf("expected to adopt existing index 1, got %d", c.currentNickIdx)
	}

	c.setNick("c")
	if c.GetNick() != "c" {
		t.Errorf("expected new nick \"c\" to be adopted, got %q", c.GetNick())
	}
}
