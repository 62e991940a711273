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
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"time"

	"golang.org/x/net/proxy"
	"golang.org/x/text/encoding"
	"h12.io/socks"
)

// Stream is the non-blocking byte stream collaborator a Connection drives.
// Reads and writes either make progress or report would-block (detected via
// wouldBlock(err)); neither method may block the caller's event loop.
//
// Out of scope per spec.md §1: the poller that decides when to call these.
type Stream interface {
	// ReadReady reads whatever is currently available into buf, returning
	// the number of bytes read. A would-block condition is reported via a
	// zero count and an error satisfying wouldBlock.
	ReadReady(buf []byte) (int, error)
	// Enqueue appends p to the outgoing write buffer. Never blocks.
	Enqueue(p []byte) (int, error)
	// WriteReady attempts to flush the outgoing write buffer. A partial
	// flush is not an error; it is reported via wouldBlock.
	WriteReady() error
	// Fd exposes the underlying descriptor for poller registration.
	Fd() (uintptr, error)
	Close() error
}

// netStream is the TCP/TLS Stream implementation, optionally tunneled
// through a SOCKS4/SOCKS5/HTTP proxy and transcoded through a legacy
// encoding, adapted from the teacher's Connect() dialing logic.
type netStream struct {
	conn net.Conn
	enc  encoding.Encoding
	out  bytes.Buffer
}

func newNetStream(cfg *Config, addr string) (*netStream, error) {
	conn, err := dial(cfg, addr)
	if err != nil {
		return nil, &StreamErr{Op: "dial", Err: err}
	}

	if cfg.TLS {
		tlsConf := cfg.TLSConfig
		if tlsConf == nil {
			host, _, _ := net.SplitHostPort(addr)
			tlsConf = &tls.Config{ServerName: host} //nolint:gosec
		}
		conn = tls.Client(conn, tlsConf)
	}

	enc := cfg.Encoding
	if enc == nil {
		enc = encoding.Nop
	}

	return &netStream{conn: conn, enc: enc}, nil
}

// dial opens the raw TCP connection, optionally through the configured
// proxy. Lifted from the teacher's Connect(), which supports the same three
// proxy kinds via the same two libraries.
func dial(cfg *Config, addr string) (net.Conn, error) {
	if cfg.Proxy == nil {
		d := &net.Dialer{Timeout: 10 * time.Second}
		return d.Dial("tcp", addr)
	}

	switch cfg.Proxy.Type {
	case "socks4":
		dialFunc := socks.Dial(fmt.Sprintf("socks4://%s:%s@%s",
			cfg.Proxy.Username, cfg.Proxy.Password, cfg.Proxy.Address))
		return dialFunc("tcp", addr)
	case "socks5":
		auth := &proxy.Auth{User: cfg.Proxy.Username, Password: cfg.Proxy.Password}
		d, err := proxy.SOCKS5("tcp", cfg.Proxy.Address, auth, proxy.Direct)
		if err != nil {
			return nil, err
		}
		return d.Dial("tcp", addr)
	case "http":
		proxyURL, err := url.Parse(fmt.Sprintf("http://%s:%s@%s",
			cfg.Proxy.Username, cfg.Proxy.Password, cfg.Proxy.Address))
		if err != nil {
			return nil, err
		}
		d, err := proxy.FromURL(proxyURL, proxy.Direct)
		if err != nil {
			return nil, err
		}
		return d.Dial("tcp", addr)
	default:
		return nil, fmt.Errorf("irc: unsupported proxy type %q", cfg.Proxy.Type)
	}
}

func (s *netStream) ReadReady(buf []byte) (int, error) {
	_ = s.conn.SetReadDeadline(time.Now())
	n, err := s.conn.Read(buf)
	var zero time.Time
	_ = s.conn.SetReadDeadline(zero)
	if err != nil {
		if n > 0 {
			return n, nil
		}
		return 0, err
	}

	if s.enc != encoding.Nop && s.enc != nil {
		decoded, derr := s.enc.NewDecoder().Bytes(buf[:n])
		if derr == nil {
			copy(buf, decoded)
			return len(decoded), nil
		}
	}
	return n, nil
}

func (s *netStream) Enqueue(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *netStream) WriteReady() error {
	if s.out.Len() == 0 {
		return nil
	}

	pending := s.out.Bytes()
	if s.enc != nil && s.enc != encoding.Nop {
		if encoded, err := s.enc.NewEncoder().Bytes(pending); err == nil {
			pending = encoded
		}
	}

	_ = s.conn.SetWriteDeadline(time.Now())
	n, err := s.conn.Write(pending)
	var zero time.Time
	_ = s.conn.SetWriteDeadline(zero)

	if n > 0 {
		s.out.Next(n)
	}
	if err != nil {
		if wouldBlock(err) {
			return err
		}
		return &StreamErr{Op: "write", Err: err}
	}
	return nil
}

// Fd exposes the underlying file descriptor so a real poller (see ircpoll)
// can register it with epoll/kqueue. tls.Conn is unwrapped to its underlying
// net.Conn first since it does not itself implement syscall.Conn.
func (s *netStream) Fd() (uintptr, error) {
	conn := s.conn
	if unwrapper, ok := conn.(interface{ NetConn() net.Conn }); ok {
		conn = unwrapper.NetConn()
	}

	sc, ok := conn.(syscall.Conn)
	if !ok {
		return 0, fmt.Errorf("irc: underlying conn does not expose a descriptor")
	}

	raw, err := sc.SyscallConn()
	if err != nil {
		return 0, err
	}

	var fd uintptr
	if err := raw.Control(func(f uintptr) { fd = f }); err != nil {
		return 0, err
	}
	return fd, nil
}

func (s *netStream) Close() error {
	return s.conn.Close()
}
