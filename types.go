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

/*
Package irc implements the per-server IRC client connection core: a
non-blocking, single-threaded state machine that owns one TCP (optionally
TLS) stream, drives registration (optionally with SASL PLAIN), keeps the
session alive via PING/PONG, reconnects on failure, and delivers parsed
protocol messages upward as ConnEvent values.

The package does not provide an event loop. Callers own a Poller and drive
Connection.ReadReady, Connection.WriteReady and Connection.Tick themselves.
*/
package irc

import (
	"crypto/tls"
	"io"
	"log"

	"golang.org/x/text/encoding"
)

// SASLAuth holds PLAIN mechanism credentials.
type SASLAuth struct {
	Username string
	Password string
}

// ProxyConfig configures an optional SOCKS4/SOCKS5/HTTP proxy to dial
// through, reused unmodified across reconnects.
type ProxyConfig struct {
	Type     string // "socks4", "socks5", or "http"
	Address  string
	Username string
	Password string
}

// Config is the immutable-for-session configuration a Connection is built
// from (spec.md §3).
type Config struct {
	ServAddr string
	ServPort uint16
	TLS      bool
	TLSConfig *tls.Config

	Hostname string
	Realname string

	// Pass is the server password sent with PASS, if any.
	Pass string

	// Nicks is the preference order tried during registration. Must not be
	// empty.
	Nicks []string

	// NickservIdent, if set, is sent to NickServ after every successful
	// (re)registration and nick change.
	NickservIdent string

	// JoinOnConnect seeds the auto-join list at construction time, the way
	// the reference implementation takes server.join from its config. Join()
	// calls made later append to this list only once RPL_TOPIC confirms them.
	JoinOnConnect []string

	// SASLAuth, if set, switches registration onto the CAP/SASL PLAIN path.
	SASLAuth *SASLAuth

	// Proxy, if set, is used to dial the server.
	Proxy *ProxyConfig

	// Encoding transcodes the wire bytes for legacy non-UTF-8 servers.
	// Defaults to a no-op passthrough.
	Encoding encoding.Encoding

	// Log receives wire-trace and diagnostic output when Debug is set.
	// Defaults to a discard logger.
	Log   *log.Logger
	Debug bool

	// Observer receives lifecycle notifications for instrumentation. Nil is
	// valid and treated as a no-op (see ircmetrics for a Prometheus-backed
	// implementation).
	Observer Observer
}

func (c *Config) logger() *log.Logger {
	if c.Log != nil {
		return c.Log
	}
	return log.New(io.Discard, "", 0)
}

// Observer receives Connection lifecycle notifications for instrumentation.
// All methods must tolerate being called from Connection's single thread of
// execution only; implementations that need thread-safety (e.g. exporting
// to Prometheus from a scrape goroutine) must synchronize internally.
type Observer interface {
	OnEvent(ev ConnEvent)
	OnTick(state string)
}

type nopObserver struct{}

func (nopObserver) OnEvent(ConnEvent) {}
func (nopObserver) OnTick(string)     {}

// ConnEvKind enumerates the upward event kinds (spec.md §6).
type ConnEvKind int

const (
	EvConnected ConnEvKind = iota
	EvDisconnected
	EvWantReconnect
	EvErr
	EvMsg
	EvNickChange
)

func (k ConnEvKind) String() string {
	switch k {
	case EvConnected:
		return "Connected"
	case EvDisconnected:
		return "Disconnected"
	case EvWantReconnect:
		return "WantReconnect"
	case EvErr:
		return "Err"
	case EvMsg:
		return "Msg"
	case EvNickChange:
		return "NickChange"
	default:
		return "Unknown"
	}
}

// ConnEvent is a single upward event produced by Connection.
type ConnEvent struct {
	Kind Kind
	Err  error
	Msg  *Msg
	Nick string
}

// Kind is an alias so call sites can write irc.ConnEvent{Kind: irc.EvMsg, ...}.
type Kind = ConnEvKind

// Connection is the per-server connection core (spec.md §3).
type Connection struct {
	cfg Config

	// Mutable session state.
	currentNickIdx int
	nickAccepted   bool
	autoJoin       []string
	awayStatus     *string
	servername     *string
	usermask       *string

	inBuf []byte

	link linkState

	poller   Poller
	tok      Token
	observer Observer

	sentRegistration bool
}
