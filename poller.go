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

import "sync/atomic"

var tokenCounter uint64

// newToken returns a fresh, process-wide unique Token. Connection mints one
// each time it opens a stream (new()/reconnect()) so a caller-owned poller
// can tell successive sockets for the same Connection apart.
func newToken() Token {
	return Token(atomic.AddUint64(&tokenCounter, 1))
}

// Token identifies a registered stream to a caller-owned poller. It is
// opaque to Connection; the poller implementation decides what to do with
// it (e.g. map it back to an epoll fd). See ircpoll for a reference
// implementation backed by golang.org/x/sys/unix.
type Token uint64

// Poller is the shared, non-owning collaborator a Connection registers its
// stream with on connect/reconnect and deregisters on disconnect. Driving
// the poller itself (waiting for readiness, calling ReadReady/WriteReady/Tick)
// is the caller's responsibility -- out of scope for this package per
// spec.md §1.
type Poller interface {
	// Register associates tok with the file-descriptor-bearing conn so the
	// poller can report readiness for it.
	Register(tok Token, conn interface{ Fd() (uintptr, error) }) error
	// Deregister removes a previously registered token. Implementations
	// must tolerate a token that was never registered (e.g. a stream that
	// failed to dial).
	Deregister(tok Token) error
}

// nopPoller is used when a Connection is constructed without a poller
// (e.g. in tests that drive ReadReady/Tick manually without a real socket).
type nopPoller struct{}

func (nopPoller) Register(Token, interface{ Fd() (uintptr, error) }) error { return nil }
func (nopPoller) Deregister(Token) error                                   { return nil }
