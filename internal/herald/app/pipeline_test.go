package app

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/louisbranch/eternum-herald/internal/herald/decode"
	"github.com/louisbranch/eternum-herald/internal/herald/indexer"
	"github.com/louisbranch/eternum-herald/internal/herald/storage"
)

type scriptedStream struct {
	entities []indexer.Entity
	err      error
	pos      int
}

func (s *scriptedStream) Recv() (indexer.Entity, error) {
	if s.pos < len(s.entities) {
		entity := s.entities[s.pos]
		s.pos++
		return entity, nil
	}
	return indexer.Entity{}, s.err
}

type scriptedClient struct {
	stream     indexer.Stream
	subscribes int
}

func (c *scriptedClient) Subscribe(context.Context, indexer.Filter) (indexer.Stream, error) {
	c.subscribes++
	if c.subscribes == 1 && c.stream != nil {
		return c.stream, nil
	}
	return nil, errors.New("indexer unavailable")
}

type fakeUserStore struct {
	users map[string]storage.User
}

func (f *fakeUserStore) GetUserByAddress(_ context.Context, address string) (storage.User, error) {
	user, ok := f.users[address]
	if !ok {
		return storage.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) UpsertUser(context.Context, storage.User) error {
	return nil
}

type recordedSend struct {
	channelID string
	content   string
}

type fakeSession struct {
	sent []recordedSend
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sent = append(f.sent, recordedSend{channelID: channelID, content: data.Content})
	return &discordgo.Message{}, nil
}

func (f *fakeSession) UserChannelCreate(string, ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return &discordgo.Channel{ID: "dm-1"}, nil
}

// gatedSession holds every delivery until the gate closes, so tests can
// fill the notification mailbox behind a stuck dispatcher.
type gatedSession struct {
	gate   chan struct{}
	titles []string
}

func (s *gatedSession) ChannelMessageSendComplex(_ string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	<-s.gate
	s.titles = append(s.titles, data.Embeds[0].Title)
	return &discordgo.Message{}, nil
}

func (s *gatedSession) UserChannelCreate(string, ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return &discordgo.Channel{ID: "dm-1"}, nil
}

func battleStartRecord() indexer.Record {
	return indexer.Record{
		ModelName: decode.ModelBattleStart,
		Fields: []indexer.Field{
			{Name: "id", Kind: indexer.FieldUint, Uint: 1},
			{Name: "event_id", Kind: indexer.FieldUint, Uint: 2},
			{Name: "battle_entity_id", Kind: indexer.FieldUint, Uint: 3},
			{Name: "attacker", Kind: indexer.FieldFelt, Felt: big.NewInt(0xAAA)},
			{Name: "attacker_name", Kind: indexer.FieldFelt, Felt: new(big.Int).SetBytes([]byte("Warlord"))},
			{Name: "attacker_army_entity_id", Kind: indexer.FieldUint, Uint: 4},
			{Name: "defender_name", Kind: indexer.FieldFelt, Felt: new(big.Int).SetBytes([]byte("Keeper"))},
			{Name: "defender", Kind: indexer.FieldFelt, Felt: big.NewInt(0xDEF)},
			{Name: "defender_army_entity_id", Kind: indexer.FieldUint, Uint: 5},
			{Name: "duration_left", Kind: indexer.FieldUint, Uint: 60},
			{Name: "x", Kind: indexer.FieldUint, Uint: 10},
			{Name: "y", Kind: indexer.FieldUint, Uint: 20},
			{Name: "structure_type", Kind: indexer.FieldUint, Uint: 1},
		},
	}
}

func TestPipelineDeliversChannelAndDirect(t *testing.T) {
	client := &scriptedClient{stream: &scriptedStream{
		entities: []indexer.Entity{{Records: []indexer.Record{battleStartRecord()}}},
		err:      errors.New("stream closed"),
	}}
	users := &fakeUserStore{users: map[string]storage.User{
		"0xdef": {Address: "0xdef", DiscordID: "42"},
	}}
	session := &fakeSession{}

	pipeline := New(client, indexer.Filter{}, users, session, Config{
		ChannelID: "channel-1",
		Subscription: indexer.ManagerConfig{
			InitialBackoff: time.Millisecond,
			MaxTries:       2,
		},
		Logf: func(string, ...any) {},
	})

	err := pipeline.Run(context.Background())
	if !errors.Is(err, indexer.ErrRetryBudgetExhausted) {
		t.Fatalf("expected retry budget exhaustion, got %v", err)
	}

	if len(session.sent) != 2 {
		t.Fatalf("expected channel plus direct delivery, got %d", len(session.sent))
	}
	if session.sent[0].channelID != "channel-1" {
		t.Fatalf("first send = %+v", session.sent[0])
	}
	if session.sent[1].channelID != "dm-1" || !strings.HasPrefix(session.sent[1].content, "<@42> ") {
		t.Fatalf("second send = %+v", session.sent[1])
	}
}

func TestPipelineUnknownModelProducesNothing(t *testing.T) {
	client := &scriptedClient{stream: &scriptedStream{
		entities: []indexer.Entity{{Records: []indexer.Record{
			{ModelName: "eternum-TradeCreatedData"},
		}}},
		err: errors.New("stream closed"),
	}}
	session := &fakeSession{}

	pipeline := New(client, indexer.Filter{}, &fakeUserStore{}, session, Config{
		ChannelID: "channel-1",
		Subscription: indexer.ManagerConfig{
			InitialBackoff: time.Millisecond,
			MaxTries:       2,
		},
		Logf: func(string, ...any) {},
	})

	if err := pipeline.Run(context.Background()); !errors.Is(err, indexer.ErrRetryBudgetExhausted) {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(session.sent) != 0 {
		t.Fatalf("expected no sends, got %+v", session.sent)
	}
}

func gameEndedRecord(winnerName string) indexer.Record {
	return indexer.Record{
		ModelName: decode.ModelGameEnded,
		Fields: []indexer.Field{
			{Name: "id", Kind: indexer.FieldUint, Uint: 1},
			{Name: "event_id", Kind: indexer.FieldUint, Uint: 2},
			{Name: "winner", Kind: indexer.FieldFelt, Felt: big.NewInt(0xAAA)},
			{Name: "winner_name", Kind: indexer.FieldFelt, Felt: new(big.Int).SetBytes([]byte(winnerName))},
			{Name: "timestamp", Kind: indexer.FieldUint, Uint: 3},
		},
	}
}

func TestPipelineBackpressureDeliversAllInOrder(t *testing.T) {
	// More events than the notification mailbox holds, so with delivery
	// stuck the router must suspend on the full mailbox rather than drop.
	const total = MailboxSize + 20

	entities := make([]indexer.Entity, 0, total)
	for i := 0; i < total; i++ {
		name := fmt.Sprintf("Player%03d", i)
		entities = append(entities, indexer.Entity{
			Records: []indexer.Record{gameEndedRecord(name)},
		})
	}
	client := &scriptedClient{stream: &scriptedStream{
		entities: entities,
		err:      errors.New("stream closed"),
	}}
	session := &gatedSession{gate: make(chan struct{})}

	pipeline := New(client, indexer.Filter{}, &fakeUserStore{}, session, Config{
		ChannelID: "channel-1",
		Subscription: indexer.ManagerConfig{
			InitialBackoff: time.Millisecond,
			MaxTries:       2,
		},
		Logf: func(string, ...any) {},
	})

	done := make(chan error, 1)
	go func() {
		done <- pipeline.Run(context.Background())
	}()

	// With the dispatcher stuck nothing may complete: the stages fill up
	// and suspend instead of discarding notifications.
	select {
	case err := <-done:
		t.Fatalf("pipeline finished while delivery was blocked: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(session.gate)
	select {
	case err := <-done:
		if !errors.Is(err, indexer.ErrRetryBudgetExhausted) {
			t.Fatalf("unexpected run error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("pipeline did not drain after delivery unblocked")
	}

	if len(session.titles) != total {
		t.Fatalf("delivered %d of %d notifications", len(session.titles), total)
	}
	for i, title := range session.titles {
		want := fmt.Sprintf("Player%03d has won the season", i)
		if title != want {
			t.Fatalf("notification %d = %q, want %q", i, title, want)
		}
	}
}

func TestPipelineStopsOnContextCancel(t *testing.T) {
	client := &scriptedClient{}
	pipeline := New(client, indexer.Filter{}, &fakeUserStore{}, &fakeSession{}, Config{
		ChannelID: "channel-1",
		Subscription: indexer.ManagerConfig{
			InitialBackoff: 50 * time.Millisecond,
		},
		Logf: func(string, ...any) {},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- pipeline.Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context cancellation, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline did not stop")
	}
}
