// Command ircbridge connects to a single IRC server and logs every inbound
// message to stderr, auto-joining the channel given on the command line.
// It exists to exercise irc.Connection end-to-end against a real server: a
// caller-owned event loop driving ReadReady/WriteReady via an epoll Poller
// and Tick via a fixed-interval timer, with Prometheus counters wired to an
// Observer.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ircbridge/conn"
	"github.com/ircbridge/conn/ircmetrics"
	"github.com/ircbridge/conn/ircpoll"
)

func main() {
	addr := flag.String("server", "irc.libera.chat", "IRC server address")
	port := flag.Uint("port", 6697, "IRC server port")
	useTLS := flag.Bool("tls", true, "connect over TLS")
	nick := flag.String("nick", "ircbridge", "nick to register with")
	channel := flag.String("join", "", "channel to auto-join on connect")
	metricsAddr := flag.String("metrics", ":9090", "address to serve /metrics on")
	flag.Parse()

	logger := log.New(os.Stderr, "ircbridge: ", log.LstdFlags)

	observer, err := ircmetrics.NewObserver(prometheus.DefaultRegisterer, *addr)
	if err != nil {
		logger.Fatalf("metrics: %v", err)
	}
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		logger.Printf("serving metrics on %s", *metricsAddr)
		logger.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	poller, err := ircpoll.NewEpollPoller()
	if err != nil {
		logger.Fatalf("poller: %v", err)
	}
	defer poller.Close()

	var joinOnConnect []string
	if *channel != "" {
		joinOnConnect = []string{*channel}
	}

	cfg := irc.Config{
		ServAddr:      *addr,
		ServPort:      uint16(*port),
		TLS:           *useTLS,
		Hostname:      *nick,
		Realname:      *nick,
		Nicks:         []string{*nick, *nick + "_"},
		JoinOnConnect: joinOnConnect,
		Log:           logger,
		Observer:      observer,
	}

	c, err := irc.New(cfg, poller)
	if err != nil {
		logger.Fatalf("connect: %v", err)
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			var evs []irc.ConnEvent
			c.Tick(&evs)
			logEvents(logger, evs)
		default:
		}

		ready, err := poller.Wait(200)
		if err != nil {
			logger.Fatalf("poll: %v", err)
		}

		var evs []irc.ConnEvent
		for _, r := range ready {
			if r.Readable {
				c.ReadReady(&evs)
			}
			if r.Writable {
				c.WriteReady(&evs)
			}
		}
		logEvents(logger, evs)

		for _, ev := range evs {
			if ev.Kind == irc.EvWantReconnect {
				if err := c.Reconnect("", 0); err != nil {
					logger.Printf("reconnect failed: %v", err)
				}
			}
		}
	}
}

func logEvents(logger *log.Logger, evs []irc.ConnEvent) {
	for _, ev := range evs {
		switch ev.Kind {
		case irc.EvMsg:
			logger.Printf("<- %s %v", ev.Msg.Command, ev.Msg.Params)
		case irc.EvErr:
			logger.Printf("error: %v", ev.Err)
		default:
			logger.Printf("%s", ev.Kind)
		}
	}
}
