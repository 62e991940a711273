package irc

import "testing"

func TestPrivmsgFraming(t *testing.T) {
	c, fs := newTestConnection([]string{"osa1"})
	c.Privmsg("#haskell", "hello there")
	if fs.lastFrame() != "PRIVMSG #haskell :hello there\r\n" {
		t.Fatalf("unexpected frame: %q", fs.lastFrame())
	}
}

func TestCTCPActionFraming(t *testing.T) {
	c, fs := newTestConnection([]string{"osa1"})
	c.CTCPAction("#haskell", "waves")
	if fs.lastFrame() != "PRIVMSG #haskell :\x01ACTION waves\x01\r\n" {
		t.Fatalf("unexpected frame: %q", fs.lastFrame())
	}
}

func TestPartRemovesFromAutoJoinImmediately(t *testing.T) {
	c, fs := newTestConnection([]string{"osa1"})
	c.autoJoin = []string{"#a", "#b"}

	c.Part("#a")

	if fs.lastFrame() != "PART #a\r\n" {
		t.Fatalf("unexpected frame: %q", fs.lastFrame())
	}
	if len(c.autoJoin) != 1 || c.autoJoin[0] != "#b" {
		t.Errorf("expected autoJoin == [\"#b\"], got %v", c.autoJoin)
	}
}

func TestJoinDoesNotTouchAutoJoin(t *testing.T) {
	c, fs := newTestConnection([]string{"osa1"})
	c.autoJoin = []string{"#a"}

	c.Join([]string{"#b"})

	if fs.lastFrame() != "JOIN #b\r\n" {
		t.Fatalf("unexpected frame: %q", fs.lastFrame())
	}
	if len(c.autoJoin) != 1 || c.autoJoin[0] != "#a" {
		t.Errorf("expected autoJoin unchanged, got %v", c.autoJoin)
	}
}

func TestAwaySetAndClear(t *testing.T) {
	c, fs := newTestConnection([]string{"osa1"})

	msg := "lunch"
	c.Away(&msg)
	if fs.lastFrame() != "AWAY :lunch\r\n" {
		t.Fatalf("unexpected frame: %q", fs.lastFrame())
	}
	if c.awayStatus == nil || *c.awayStatus != "lunch" {
		t.Errorf("expected awayStatus to be set, got %v", c.awayStatus)
	}

	c.Away(nil)
	if fs.lastFrame() != "AWAY\r\n" {
		t.Fatalf("unexpected frame: %q", fs.lastFrame())
	}
	if c.awayStatus != nil {
		t.Errorf("expected awayStatus cleared, got %v", c.awayStatus)
	}
}

func TestOutboundNoopsWithoutStream(t *testing.T) {
	c, _ := newTestConnection([]string{"osa1"})
	c.link = linkState{kind: linkDisconnected, ticks: 0}

	// None of these should panic with a nil stream.
	c.Privmsg("#haskell", "hi")
	c.SendNick("newnick")
	c.RawMsg("WHATEVER")
}
