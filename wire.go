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
	"strconv"
	"strings"
)

// Pfx is the optional "nick!user@host" or "servername" prefix on a line.
type Pfx struct {
	Raw  string
	Nick string
	User string
	Host string
}

// IsUser reports whether the prefix identifies a client (nick!user@host)
// rather than a bare server name.
func (p *Pfx) IsUser() bool { return p != nil && p.Nick != "" }

// Msg is a single parsed IRC protocol line.
type Msg struct {
	Pfx     *Pfx
	Command string // e.g. "PING", "JOIN", "CAP", "AUTHENTICATE", or a 3-digit numeric
	Num     int    // parsed numeric reply, 0 if Command is not a numeric reply
	Params  []string
}

// Last returns the trailing parameter, or "" if there are none.
func (m *Msg) Last() string {
	if len(m.Params) == 0 {
		return ""
	}
	return m.Params[len(m.Params)-1]
}

// ReadMsg consumes one complete line from buf (delimited by '\n', with an
// optional trailing '\r' stripped) and returns the parsed Msg, leaving any
// remaining bytes in buf. It returns ok=false when buf has no complete line
// yet -- the caller should stop draining and wait for more bytes.
func ReadMsg(buf *[]byte) (msg *Msg, ok bool) {
	idx := bytes.IndexByte(*buf, '\n')
	if idx < 0 {
		return nil, false
	}

	line := (*buf)[:idx]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	rest := (*buf)[idx+1:]
	next := make([]byte, len(rest))
	copy(next, rest)
	*buf = next

	return parseLine(string(line)), true
}

func parseLine(line string) *Msg {
	if line == "" {
		return nil
	}

	// IRCv3 message tags: not modeled by this core (spec.md §1 scope is the
	// connection state machine, not tag-bearing extensions); skip them.
	if line[0] == '@' {
		if i := strings.IndexByte(line, ' '); i > -1 {
			line = line[i+1:]
		} else {
			return nil
		}
	}

	m := &Msg{}

	if len(line) > 0 && line[0] == ':' {
		i := strings.IndexByte(line, ' ')
		if i < 0 {
			return nil
		}
		raw := line[1:i]
		line = line[i+1:]
		m.Pfx = parsePfx(raw)
	}

	split := strings.SplitN(line, " :", 2)
	fields := strings.Fields(split[0])
	if len(fields) == 0 {
		return nil
	}

	m.Command = strings.ToUpper(fields[0])
	if n, err := strconv.Atoi(m.Command); err == nil && len(m.Command) == 3 {
		m.Num = n
	}

	m.Params = fields[1:]
	if len(split) > 1 {
		m.Params = append(m.Params, split[1])
	}

	return m
}

func parsePfx(raw string) *Pfx {
	p := &Pfx{Raw: raw}
	bang := strings.IndexByte(raw, '!')
	at := strings.IndexByte(raw, '@')
	if bang > -1 && at > -1 && bang < at {
		p.Nick = raw[:bang]
		p.User = raw[bang+1 : at]
		p.Host = raw[at+1:]
	}
	return p
}

// findByte returns the index of the first occurrence of c in s, or -1.
// Mirrors wire::find_byte from the reference implementation.
func findByte(s []byte, c byte) int {
	return bytes.IndexByte(s, c)
}

////////////////////////////////////////////////////////////////////////////
// Writers. Every writer appends "\r\n"; callers share one write buffer via
// the Stream abstraction (see stream.go).

func writeLine(w io.Writer, parts ...string) error {
	_, err := io.WriteString(w, strings.Join(parts, " ")+"\r\n")
	return err
}

func wirePass(w io.Writer, pass string) error {
	return writeLine(w, "PASS", pass)
}

func wireNick(w io.Writer, nick string) error {
	return writeLine(w, "NICK", nick)
}

func wireUser(w io.Writer, hostname, realname string) error {
	return writeLine(w, "USER", hostname, "0", "*", ":"+realname)
}

func wirePing(w io.Writer, server string) error {
	return writeLine(w, "PING", server)
}

func wirePong(w io.Writer, server string) error {
	return writeLine(w, "PONG", server)
}

func wirePrivmsg(w io.Writer, target, msg string) error {
	return writeLine(w, "PRIVMSG", target, ":"+msg)
}

func wireCTCPAction(w io.Writer, target, msg string) error {
	return wirePrivmsg(w, target, "\x01ACTION "+msg+"\x01")
}

func wireJoin(w io.Writer, chans []string) error {
	if len(chans) == 0 {
		return nil
	}
	return writeLine(w, "JOIN", strings.Join(chans, ","))
}

func wirePart(w io.Writer, chans string) error {
	return writeLine(w, "PART", chans)
}

func wireAway(w io.Writer, msg *string) error {
	if msg == nil {
		return writeLine(w, "AWAY")
	}
	return writeLine(w, "AWAY", ":"+*msg)
}

func wireCapLS(w io.Writer) error {
	return writeLine(w, "CAP", "LS")
}

func wireCapReq(w io.Writer, caps []string) error {
	return writeLine(w, "CAP", "REQ", ":"+strings.Join(caps, " "))
}

func wireCapEnd(w io.Writer) error {
	return writeLine(w, "CAP", "END")
}

func wireAuthenticate(w io.Writer, payload string) error {
	return writeLine(w, "AUTHENTICATE", payload)
}

func wireRaw(w io.Writer, line string) error {
	_, err := fmt.Fprintf(w, "%s\r\n", line)
	return err
}
