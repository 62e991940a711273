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

import "bytes"

// linkKind is the tag of the three-state connection lifecycle (spec.md §4.1).
type linkKind int

const (
	linkPingPong linkKind = iota
	linkWaitPong
	linkDisconnected
)

// linkState is the tagged union carrying the live Stream (when present) and
// the tick counter for whichever state we're in. Stream ownership moves
// between states via sentinel swap (see dropStream / Reconnect),
// never aliased between two states at once.
type linkState struct {
	kind   linkKind
	ticks  uint8
	stream Stream
}

const (
	// PingTicks is how many ticks of silence we tolerate before sending a
	// keepalive PING.
	PingTicks uint8 = 60
	// PongTicks is how many ticks we wait for a PONG before declaring the
	// connection dead.
	PongTicks uint8 = 60
	// ReconnectTicks is how many ticks we wait once disconnected before
	// asking the caller to reconnect.
	ReconnectTicks uint8 = 30
)

// Tick advances the tick-counted PING/PONG/reconnect clock by one step,
// appending any resulting events (spec.md §4.1 transition table).
func (c *Connection) Tick(evs *[]ConnEvent) {
	switch c.link.kind {
	case linkPingPong:
		ticks := c.link.ticks + 1
		if ticks == PingTicks {
			if c.servername != nil {
				var buf bytes.Buffer
				_ = wirePing(&buf, *c.servername)
				_, _ = c.link.stream.Enqueue(buf.Bytes())
			}
			c.link = linkState{kind: linkWaitPong, ticks: 0, stream: c.link.stream}
		} else {
			c.link.ticks = ticks
		}
	case linkWaitPong:
		ticks := c.link.ticks + 1
		if ticks == PongTicks {
			*evs = append(*evs, ConnEvent{Kind: EvDisconnected})
			c.observer.OnEvent((*evs)[len(*evs)-1])
			c.dropStream()
		} else {
			c.link.ticks = ticks
		}
	case linkDisconnected:
		ticks := c.link.ticks + 1
		if ticks == ReconnectTicks {
			*evs = append(*evs, ConnEvent{Kind: EvWantReconnect})
			c.observer.OnEvent((*evs)[len(*evs)-1])
			c.currentNickIdx = 0
		}
		c.link.ticks = ticks
	}

	c.observer.OnTick(c.linkStateName())
}

func (c *Connection) linkStateName() string {
	switch c.link.kind {
	case linkPingPong:
		return "PingPong"
	case linkWaitPong:
		return "WaitPong"
	default:
		return "Disconnected"
	}
}

// resetTicks collapses the current state to PingPong{ticks: 0}. Any inbound
// byte does this regardless of whether a PONG was actually expected --
// connectivity is proven by any traffic (spec.md §4.1).
func (c *Connection) resetTicks() {
	switch c.link.kind {
	case linkPingPong, linkWaitPong:
		c.link = linkState{kind: linkPingPong, ticks: 0, stream: c.link.stream}
	case linkDisconnected:
		// no stream to carry forward
	}
}

func (c *Connection) hasStream() bool {
	return c.link.kind != linkDisconnected && c.link.stream != nil
}
