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

import "unicode/utf8"

// SplitBudget computes the maximum byte length of a single PRIVMSG line's
// text, mirroring hexchat's src/common/outbound.c:split_up_text (spec.md
// §4.5). extraLen accounts for any caller-added overhead (e.g. a CTCP ACTION
// wrapper) beyond the bare "PRIVMSG <target> :<text>" framing.
func (c *Connection) SplitBudget(target string, extraLen int) int {
	max := 512 // RFC 2812
	max -= 3   // ":", "!", "@"
	max -= 13  // " PRIVMSG ", " ", ":", "\r", "\n"
	max -= len(c.GetNick())
	max -= len(target)
	max -= extraLen

	if c.usermask != nil {
		max -= len(*c.usermask)
	} else {
		max -= 9  // max username
		max -= 64 // max possible hostname (63) + '@'
	}

	return max
}

// SplitPrivmsg splits msg into chunks that each fit within max bytes,
// preferring to break on whitespace. Panics if max <= 0 -- callers must
// check SplitBudget before calling, matching the reference implementation's
// assertion that a session always has room for at least one character.
func SplitPrivmsg(max int, msg string) []string {
	if max <= 0 {
		panic(ErrSplitBudget)
	}
	if msg == "" {
		return []string{""}
	}

	var out []string
	for len(msg) > max {
		split := 0

		// try to split at a whitespace character, scanning from the end
		for i := max; i >= 0; i-- {
			if i >= len(msg) {
				continue
			}
			r, size := utf8.DecodeRuneInString(msg[i:])
			if !isWhitespace(r) {
				continue
			}
			if i+size <= max {
				split = i + size
			} else {
				split = i
			}
			break
		}

		if split == 0 {
			// couldn't split at whitespace, split at any rune boundary
			for i := 0; i < 4; i++ {
				if utf8.RuneStart(msg[max-i]) {
					split = max - i
					break
				}
			}
		}

		if split == 0 {
			panic(ErrSplitBudget)
		}

		out = append(out, msg[:split])
		msg = msg[split:]
	}

	out = append(out, msg)
	return out
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// parseServername extracts <servername> out of a 002 RPL_YOURHOST reply of
// the form "Your host is <servername>[<ip>/<port>], running version <ver>"
// (spec.md §4.5).
func parseServername(params []string) (string, bool) {
	var msg string
	switch {
	case len(params) > 1:
		msg = params[1]
	case len(params) == 1:
		msg = params[0]
	default:
		return "", false
	}

	const prefixLen = len("Your host is ")
	if len(msg) < prefixLen {
		return "", false
	}
	rest := msg[prefixLen:]

	end := findByte([]byte(rest), '[')
	if end < 0 {
		end = findByte([]byte(rest), ',')
	}
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}
