//go:build linux
// +build linux

// Package ircpoll provides an epoll-backed irc.Poller for Linux, the
// reference implementation of the poller a caller is expected to own and
// drive (irc.Poller is a collaborator interface only -- the event loop
// itself is out of scope for the irc package).
package ircpoll

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/ircbridge/conn"
)

// EpollPoller registers connections with a single epoll instance and reports
// readiness via Wait. Safe for concurrent Register/Deregister calls from one
// goroutine at a time; Wait is meant to be called from the event loop
// goroutine only.
type EpollPoller struct {
	fd int

	mu      sync.Mutex
	byToken map[irc.Token]int // token -> registered fd
	byFd    map[int]irc.Token // fd -> token, for Wait to translate back
}

// NewEpollPoller creates a fresh epoll instance.
func NewEpollPoller() (*EpollPoller, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("ircpoll: epoll_create1: %w", err)
	}
	return &EpollPoller{
		fd:      fd,
		byToken: make(map[irc.Token]int),
		byFd:    make(map[int]irc.Token),
	}, nil
}

// Register implements irc.Poller.
func (p *EpollPoller) Register(tok irc.Token, c interface{ Fd() (uintptr, error) }) error {
	rawFd, err := c.Fd()
	if err != nil {
		return fmt.Errorf("ircpoll: can't obtain fd: %w", err)
	}
	fd := int(rawFd)

	ev := &unix.EpollEvent{
		Events: unix.EPOLLIN | unix.EPOLLOUT,
		Fd:     int32(fd),
	}
	if err := unix.EpollCtl(p.fd, unix.EPOLL_CTL_ADD, fd, ev); err != nil {
		return fmt.Errorf("ircpoll: epoll_ctl add: %w", err)
	}

	p.mu.Lock()
	p.byToken[tok] = fd
	p.byFd[fd] = tok
	p.mu.Unlock()
	return nil
}

// Deregister implements irc.Poller.
func (p *EpollPoller) Deregister(tok irc.Token) error {
	p.mu.Lock()
	fd, ok := p.byToken[tok]
	if ok {
		delete(p.byToken, tok)
		delete(p.byFd, fd)
	}
	p.mu.Unlock()

	if !ok {
		return nil
	}
	if err := unix.EpollCtl(p.fd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return fmt.Errorf("ircpoll: epoll_ctl del: %w", err)
	}
	return nil
}

// Readiness reports whether a registered token is readable and/or writable.
type Readiness struct {
	Token    irc.Token
	Readable bool
	Writable bool
}

// Wait blocks until at least one registered fd is ready or timeoutMillis
// elapses (-1 blocks indefinitely, matching epoll_wait's own convention),
// returning the set of ready tokens.
func (p *EpollPoller) Wait(timeoutMillis int) ([]Readiness, error) {
	var events [64]unix.EpollEvent
	n, err := unix.EpollWait(p.fd, events[:], timeoutMillis)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, fmt.Errorf("ircpoll: epoll_wait: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Readiness, 0, n)
	for i := 0; i < n; i++ {
		ev := events[i]
		tok, ok := p.byFd[int(ev.Fd)]
		if !ok {
			continue
		}
		out = append(out, Readiness{
			Token:    tok,
			Readable: ev.Events&unix.EPOLLIN != 0,
			Writable: ev.Events&unix.EPOLLOUT != 0,
		})
	}
	return out, nil
}

// Close releases the underlying epoll fd.
func (p *EpollPoller) Close() error {
	return unix.Close(p.fd)
}
