// Copyright (c) 2024 Jerzy Dąbrowski
// Based on original work by Thomas Jager, 2009. All rights reserved.
//
// This project is a fork of the original go-ircevent library created by Thomas Jager.
// Redistribution and use in source and binary forms, with or without modification, are permitted provided
// that the following conditions are met:
//
//    - Redistributions of source code must retain the above copyright notice, this list of conditions,
//      and the following disclaimer.
//    - Redistributions in binary form must reproduce the above copyright notice, this list of conditions,
//      and the following disclaimer in the documentation and/or other materials provided with the distribution.
//    - Neither the name of the original authors nor the names of its contributors may be used to endorse
//      or promote products derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED "AS IS" WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED, INCLUDING BUT NOT
// LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE, AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE COPYRIGHT HOLDERS OR CONTRIBUTORS BE LIABLE FOR ANY CLAIM, DAMAGES, OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT, OR OTHERWISE, ARISING FROM, OUT OF, OR IN CONNECTION WITH THE SOFTWARE
// OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package irc

import (
	"encoding/base64"
	"io"
	"strings"
)

// beginRegistration starts the handshake appropriate for the configured
// auth mode (spec.md §4.2). SASL PLAIN defers PASS/NICK/USER until the CAP
// LS response arrives, using it as a synchronization barrier so a fast
// server can't complete registration before SASL has a chance to run.
func (c *Connection) beginRegistration() {
	c.sentRegistration = false
	if c.cfg.SASLAuth != nil {
		c.send(func(w io.Writer) error { return wireCapLS(w) })
		return
	}
	c.introduce()
}

func (c *Connection) introduce() {
	if c.cfg.Pass != "" {
		c.send(func(w io.Writer) error { return wirePass(w, c.cfg.Pass) })
	}
	c.send(func(w io.Writer) error { return wireNick(w, c.GetNick()) })
	c.send(func(w io.Writer) error { return wireUser(w, c.cfg.Hostname, c.cfg.Realname) })
	c.sentRegistration = true
}

// handleCAP implements the CAP LS/ACK/NAK branches of the registration
// driver (spec.md §4.2).
func (c *Connection) handleCAP(msg *Msg) {
	if len(msg.Params) < 2 {
		return
	}
	sub := strings.ToUpper(msg.Params[1])

	var caps []string
	for _, p := range msg.Params[2:] {
		caps = append(caps, strings.Fields(p)...)
	}

	switch sub {
	case "LS":
		if !c.sentRegistration {
			c.introduce()
		}
		if hasCap(caps, "sasl") {
			c.send(func(w io.Writer) error { return wireCapReq(w, []string{"sasl"}) })
		}
	case "ACK":
		if hasCap(caps, "sasl") {
			c.send(func(w io.Writer) error { return wireAuthenticate(w, "PLAIN") })
		}
	case "NAK":
		c.endCapabilityNegotiation()
	}
}

func hasCap(caps []string, want string) bool {
	for _, cp := range caps {
		if cp == want {
			return true
		}
	}
	return false
}

func (c *Connection) endCapabilityNegotiation() {
	c.send(func(w io.Writer) error { return wireCapEnd(w) })
}

// handleAuthenticate responds to the server's "+" readiness signal with the
// base64(username\0username\0password) PLAIN payload.
func (c *Connection) handleAuthenticate(msg *Msg) {
	if msg.Last() != "+" {
		return
	}
	auth := c.cfg.SASLAuth
	if auth == nil {
		return
	}
	payload := auth.Username + "\x00" + auth.Username + "\x00" + auth.Password
	encoded := base64.StdEncoding.EncodeToString([]byte(payload))
	c.send(func(w io.Writer) error { return wireAuthenticate(w, encoded) })
}

// nextNick advances to the next nick on ERR_NICKNAMEINUSE while the current
// one hasn't been accepted yet (spec.md §4.2).
func (c *Connection) nextNick() {
	if c.currentNickIdx+1 < len(c.cfg.Nicks) {
		c.currentNickIdx++
		return
	}

	newNick := c.cfg.Nicks[len(c.cfg.Nicks)-1] + "_"
	c.cfg.Nicks = append(c.cfg.Nicks, newNick)
	c.currentNickIdx++
	c.send(func(w io.Writer) error { return wireNick(w, newNick) })
}

// setNick adopts nick as current, confirmed by the server (spec.md §4.4).
func (c *Connection) setNick(nick string) {
	for i, n := range c.cfg.Nicks {
		if n == nick {
			c.currentNickIdx = i
			return
		}
	}
	c.cfg.Nicks = append(c.cfg.Nicks, nick)
	c.currentNickIdx = len(c.cfg.Nicks) - 1
}

func (c *Connection) nickservIdentify() {
	if c.cfg.NickservIdent == "" {
		return
	}
	c.send(func(w io.Writer) error {
		return wirePrivmsg(w, "NickServ", "identify "+c.cfg.NickservIdent)
	})
}
