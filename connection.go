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
	"bytes"
	"fmt"
	"io"
)

// New opens a stream to server and returns the registered Connection,
// immediately sending either CAP LS (SASL configured) or the plain
// PASS/NICK/USER introduction (spec.md §3 Lifecycle).
func New(cfg Config, poller Poller) (*Connection, error) {
	if len(cfg.Nicks) == 0 {
		return nil, fmt.Errorf("irc: Config.Nicks must not be empty")
	}
	if poller == nil {
		poller = nopPoller{}
	}
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}

	c := &Connection{
		cfg:      cfg,
		poller:   poller,
		observer: cfg.Observer,
		autoJoin: dedupJoin(nil, cfg.JoinOnConnect),
	}

	if err := c.open(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Connection) addr() string {
	return fmt.Sprintf("%s:%d", c.cfg.ServAddr, c.cfg.ServPort)
}

// open dials a fresh stream, registers it with the poller, and starts
// registration. Shared by New and Reconnect.
func (c *Connection) open() error {
	ns, err := newNetStream(&c.cfg, c.addr())
	if err != nil {
		return err
	}

	c.tok = newToken()
	if err := c.poller.Register(c.tok, ns); err != nil {
		_ = ns.Close()
		return err
	}

	c.link = linkState{kind: linkPingPong, ticks: 0, stream: ns}
	c.nickAccepted = false

	c.beginRegistration()
	return nil
}

// Reconnect drops the current stream (if any), optionally repoints at a new
// server address/port, and reruns registration with currentNickIdx reset to
// 0 (spec.md §4.4).
func (c *Connection) Reconnect(newAddr string, newPort uint16) error {
	c.dropStream()

	if newAddr != "" {
		c.cfg.ServAddr = newAddr
		c.cfg.ServPort = newPort
	}

	c.currentNickIdx = 0
	return c.open()
}

// EnterDisconnectState transitions to Disconnected{0}, releasing the stream
// without destroying the Connection (spec.md §3 Lifecycle, §4.4).
func (c *Connection) EnterDisconnectState() {
	c.dropStream()
}

// dropStream closes and deregisters the current stream (if any) and parks
// the link in Disconnected{0} unconditionally, so that every caller --
// including Reconnect when the subsequent open() fails -- is left with a
// link state that correctly reports hasStream() == false rather than an
// already-closed stream (spec.md §5, §9).
func (c *Connection) dropStream() {
	if c.link.stream != nil {
		_ = c.poller.Deregister(c.tok)
		_ = c.link.stream.Close()
	}
	c.link = linkState{kind: linkDisconnected, ticks: 0}
	c.nickAccepted = false
}

// GetConnToken returns the Token the current stream is registered under, or
// false if there is no live stream.
func (c *Connection) GetConnToken() (Token, bool) {
	if !c.hasStream() {
		return 0, false
	}
	return c.tok, true
}

// GetServerName returns the configured server address (not the servername
// learned from RPL_YOURHOST -- see ServerHostname for that).
func (c *Connection) GetServerName() string { return c.cfg.ServAddr }

// ServerHostname returns the servername learned from RPL_YOURHOST, if any.
func (c *Connection) ServerHostname() (string, bool) {
	if c.servername == nil {
		return "", false
	}
	return *c.servername, true
}

// GetNick returns the nick currently selected from the preference list.
// Invariant: 0 <= currentNickIdx < len(Nicks) always holds.
func (c *Connection) GetNick() string {
	return c.cfg.Nicks[c.currentNickIdx]
}

// IsNickAccepted reports whether RPL_WELCOME has been seen since the last
// (re)connect.
func (c *Connection) IsNickAccepted() bool { return c.nickAccepted }

// AutoJoin returns a copy of the current auto-join channel list.
func (c *Connection) AutoJoin() []string {
	out := make([]string, len(c.autoJoin))
	copy(out, c.autoJoin)
	return out
}

// Usermask returns the server-assigned usermask, if known.
func (c *Connection) Usermask() (string, bool) {
	if c.usermask == nil {
		return "", false
	}
	return *c.usermask, true
}

////////////////////////////////////////////////////////////////////////////
// I/O entry points driven by the caller's event loop.

// ReadReady reads whatever bytes are available, resets the tick clock, and
// drains every complete line accumulated so far, dispatching each as
// described in spec.md §4.3. Would-block is swallowed; any other error is
// surfaced as ConnEv::Err.
func (c *Connection) ReadReady(evs *[]ConnEvent) {
	if !c.hasStream() {
		return
	}

	var tmp [4096]byte
	n, err := c.link.stream.ReadReady(tmp[:])
	if err != nil {
		if !wouldBlock(err) {
			*evs = append(*evs, ConnEvent{Kind: EvErr, Err: err})
			c.observer.OnEvent((*evs)[len(*evs)-1])
		}
		return
	}
	if n == 0 {
		return
	}

	c.resetTicks()
	c.inBuf = append(c.inBuf, tmp[:n]...)
	c.handleMsgs(evs)
}

// WriteReady flushes the stream's pending outgoing bytes.
func (c *Connection) WriteReady(evs *[]ConnEvent) {
	if !c.hasStream() {
		return
	}
	if err := c.link.stream.WriteReady(); err != nil {
		if !wouldBlock(err) {
			*evs = append(*evs, ConnEvent{Kind: EvErr, Err: err})
			c.observer.OnEvent((*evs)[len(*evs)-1])
		}
	}
}

func (c *Connection) handleMsgs(evs *[]ConnEvent) {
	for {
		msg, ok := ReadMsg(&c.inBuf)
		if !ok {
			return
		}
		if c.cfg.Debug {
			c.cfg.logger().Printf("<-- %s %v\n", msg.Command, msg.Params)
		}
		c.handleMsg(msg, evs)
	}
}

// send writes a single wire frame to the stream's outgoing buffer, a no-op
// when disconnected (spec.md §4.4: "Each outbound method is a no-op when
// there is no stream").
func (c *Connection) send(write func(io.Writer) error) {
	if !c.hasStream() {
		return
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return
	}
	if c.cfg.Debug {
		c.cfg.logger().Printf("--> %s\n", string(bytes.TrimSpace(buf.Bytes())))
	}
	_, _ = c.link.stream.Enqueue(buf.Bytes())
}

func dedupJoin(existing []string, add []string) []string {
	seen := make(map[string]bool, len(existing))
	out := make([]string, 0, len(existing)+len(add))
	for _, c := range existing {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, c := range add {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
