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
	"errors"
	"os"
)

// StreamErr wraps a transport-level error observed on the stream. Would-block
// conditions never reach the caller as a StreamErr; read_ready/write_ready
// swallow those internally (spec.md §7).
type StreamErr struct {
	Op  string
	Err error
}

func (e *StreamErr) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StreamErr) Unwrap() error { return e.Err }

// wouldBlock reports whether err represents a transient "no data/space yet"
// condition rather than a real transport failure. netStream signals this by
// returning os.ErrDeadlineExceeded from a zero-duration deadline read/write,
// the standard non-blocking-over-net.Conn idiom.
func wouldBlock(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, os.ErrDeadlineExceeded)
}

// ErrSplitBudget is the fatal error asserted by split_privmsg when the
// configured nick/usermask/extra_len leave no room for a single byte of
// message body. Callers must guard against this (spec.md §9, hazard 1).
var ErrSplitBudget = errors.New("irc: split_privmsg budget is non-positive")
