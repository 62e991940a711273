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
	"fmt"
	"io"
	"strings"
)

// handleMsg runs every inbound message through the independent checks of
// spec.md §4.3, in order, then always reports the raw message last. Each
// check is self-contained: a message can (and often does) match more than
// one, e.g. a NICK reply also carries a Pfx that a later check inspects.
func (c *Connection) handleMsg(msg *Msg, evs *[]ConnEvent) {
	if msg == nil {
		return
	}

	if msg.Command == "CAP" {
		c.handleCAP(msg)
	}

	if msg.Command == "AUTHENTICATE" {
		c.handleAuthenticate(msg)
	}

	if msg.Num == 903 || msg.Num == 904 {
		// 903 RPL_SASLSUCCESS, 904 ERR_SASLFAIL
		c.endCapabilityNegotiation()
	}

	if msg.Command == "PING" {
		server := msg.Last()
		c.send(func(w io.Writer) error { return wirePong(w, server) })
	}

	if msg.Command == "JOIN" && msg.Pfx.IsUser() && msg.Pfx.Nick == c.GetNick() {
		usermask := msg.Pfx.Nick + "!" + msg.Pfx.User
		c.usermask = &usermask
	}

	if msg.Num == 396 && len(msg.Params) == 3 {
		// :hobana.freenode.net 396 osa1 haskell/developer/osa1
		//                          :is now your hidden host (set by services.)
		usermask := fmt.Sprintf("%s!~%s@%s", c.GetNick(), c.cfg.Hostname, msg.Params[1])
		c.usermask = &usermask
	}

	if msg.Num == 302 && len(msg.Params) >= 2 {
		// RPL_USERHOST. /userhost sends a single nick, so there's exactly
		// one reply token to parse: "nick=+ident@host" or "nick=-ident@host".
		param := msg.Params[1]
		if i := findByte([]byte(param), '='); i >= 0 {
			if i+1 < len(param) && (param[i+1] == '+' || param[i+1] == '-') {
				i++
			}
			usermask := strings.TrimSpace(param[i+1:])
			c.usermask = &usermask
		}
	}

	if msg.Num == 1 {
		// RPL_WELCOME: registration succeeded.
		*evs = append(*evs, ConnEvent{Kind: EvConnected})
		c.observer.OnEvent((*evs)[len(*evs)-1])
		*evs = append(*evs, ConnEvent{Kind: EvNickChange, Nick: c.GetNick()})
		c.observer.OnEvent((*evs)[len(*evs)-1])
		c.nickservIdentify()
		c.nickAccepted = true
	}

	if msg.Num == 2 {
		// RPL_YOURHOST: "Your host is <servername>[<ip>/<port>], running version <ver>"
		if servername, ok := parseServername(msg.Params); ok {
			c.servername = &servername
		}
	}

	if msg.Num == 433 {
		// ERR_NICKNAMEINUSE
		if !c.nickAccepted {
			c.nextNick()
		}
	}

	if msg.Command == "NICK" && msg.Pfx.IsUser() && msg.Pfx.Nick == c.GetNick() {
		newNick := msg.Last()
		c.setNick(newNick)
		*evs = append(*evs, ConnEvent{Kind: EvNickChange, Nick: c.GetNick()})
		c.observer.OnEvent((*evs)[len(*evs)-1])
		c.nickservIdentify()
	}

	if msg.Num == 376 {
		// RPL_ENDOFMOTD: join auto-join channels, restore away status.
		if len(c.autoJoin) > 0 {
			chans := append([]string(nil), c.autoJoin...)
			c.send(func(w io.Writer) error { return wireJoin(w, chans) })
		}
		if c.awayStatus != nil {
			reason := *c.awayStatus
			c.send(func(w io.Writer) error { return wireAway(w, &reason) })
		}
	}

	if msg.Num == 332 && (len(msg.Params) == 2 || len(msg.Params) == 3) {
		// RPL_TOPIC: we've successfully joined a channel, remember it for
		// next time we (re)connect.
		chanName := msg.Params[len(msg.Params)-2]
		if !containsStr(c.autoJoin, chanName) {
			c.autoJoin = append(c.autoJoin, chanName)
		}
	}

	*evs = append(*evs, ConnEvent{Kind: EvMsg, Msg: msg})
	c.observer.OnEvent((*evs)[len(*evs)-1])
}

func containsStr(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
