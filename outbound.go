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

import "io"

// SendNick requests a nick change directly (not part of registration).
func (c *Connection) SendNick(nick string) {
	c.send(func(w io.Writer) error { return wireNick(w, nick) })
}

// Privmsg sends a single PRIVMSG line verbatim. Callers that might exceed
// the 512-byte line limit should split msg with SplitBudget/SplitPrivmsg
// first.
func (c *Connection) Privmsg(target, msg string) {
	c.send(func(w io.Writer) error { return wirePrivmsg(w, target, msg) })
}

// CTCPAction sends a /me-style CTCP ACTION.
func (c *Connection) CTCPAction(target, msg string) {
	c.send(func(w io.Writer) error { return wireCTCPAction(w, target, msg) })
}

// Join sends a JOIN for the given channels. The channels are added to the
// auto-join list only once the server confirms membership with RPL_TOPIC
// (spec.md §4.3, §4.4) -- not here.
func (c *Connection) Join(chans []string) {
	c.send(func(w io.Writer) error { return wireJoin(w, chans) })
}

// Part sends a PART and immediately drops the channel from the auto-join
// list, unlike Join which waits for server confirmation.
func (c *Connection) Part(channel string) {
	c.send(func(w io.Writer) error { return wirePart(w, channel) })
	out := c.autoJoin[:0:0]
	for _, ch := range c.autoJoin {
		if ch != channel {
			out = append(out, ch)
		}
	}
	c.autoJoin = out
}

// Away sets (msg != nil) or clears (msg == nil) away status, remembering it
// so it's reapplied after the next reconnect's RPL_ENDOFMOTD.
func (c *Connection) Away(msg *string) {
	c.awayStatus = msg
	c.send(func(w io.Writer) error { return wireAway(w, msg) })
}

// RawMsg sends s verbatim with a trailing "\r\n" appended.
func (c *Connection) RawMsg(s string) {
	c.send(func(w io.Writer) error { return wireRaw(w, s) })
}
