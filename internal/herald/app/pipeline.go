// Package app assembles the herald pipeline: subscribe, decode, route,
// dispatch, connected by bounded mailboxes.
package app

import (
	"context"
	"log"
	"sync"

	"github.com/louisbranch/eternum-herald/internal/herald/decode"
	"github.com/louisbranch/eternum-herald/internal/herald/dispatch"
	"github.com/louisbranch/eternum-herald/internal/herald/domain"
	"github.com/louisbranch/eternum-herald/internal/herald/indexer"
	"github.com/louisbranch/eternum-herald/internal/herald/route"
	"github.com/louisbranch/eternum-herald/internal/herald/storage"
)

// MailboxSize bounds each inter-stage mailbox. A full mailbox blocks the
// producing stage, pushing backpressure toward the indexer stream.
const MailboxSize = 100

// Config tunes the pipeline.
type Config struct {
	// ChannelID is the shared Discord channel announcements go to.
	ChannelID string
	// Subscription tunes the indexer reconnect behavior.
	Subscription indexer.ManagerConfig
	// Logf receives diagnostics. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// Pipeline owns the four stages and the mailboxes between them.
type Pipeline struct {
	manager    *indexer.Manager
	decoder    *decode.Decoder
	router     *route.Router
	dispatcher *dispatch.Dispatcher

	records       chan indexer.Record
	events        chan domain.Event
	notifications chan route.Notification
}

// New wires a pipeline from its external collaborators: the indexer
// client, the identity store, and the Discord session.
func New(client indexer.Client, filter indexer.Filter, users storage.UserStore, session dispatch.Session, cfg Config) *Pipeline {
	logf := cfg.Logf
	if logf == nil {
		logf = log.Printf
	}
	subCfg := cfg.Subscription
	if subCfg.Logf == nil {
		subCfg.Logf = logf
	}

	records := make(chan indexer.Record, MailboxSize)
	return &Pipeline{
		manager:       indexer.NewManager(client, filter, records, subCfg),
		decoder:       decode.New(logf),
		router:        route.New(users, cfg.ChannelID, logf),
		dispatcher:    dispatch.New(session, logf),
		records:       records,
		events:        make(chan domain.Event, MailboxSize),
		notifications: make(chan route.Notification, MailboxSize),
	}
}

// Run drives all four stages until the context ends or the subscription
// manager gives up. The manager's error is the pipeline's error; the
// downstream stages drain what is already in flight and stop.
func (p *Pipeline) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var runErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(p.records)
		runErr = p.manager.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(p.events)
		p.decodeStage(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(p.notifications)
		p.routeStage(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		p.dispatcher.Run(ctx, p.notifications)
	}()

	wg.Wait()
	if err := ctx.Err(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func (p *Pipeline) decodeStage(ctx context.Context) {
	for record := range p.records {
		event, ok := p.decoder.Decode(record)
		if !ok {
			continue
		}
		select {
		case p.events <- event:
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pipeline) routeStage(ctx context.Context) {
	for event := range p.events {
		for _, notification := range p.router.Route(ctx, event) {
			select {
			case p.notifications <- notification:
			case <-ctx.Done():
				return
			}
		}
	}
}
