package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/louisbranch/eternum-herald/internal/herald/decode"
	"github.com/louisbranch/eternum-herald/internal/herald/indexer"
	"github.com/louisbranch/eternum-herald/internal/herald/storage/sqlite"
	platformgrpc "github.com/louisbranch/eternum-herald/internal/platform/grpc"
	"github.com/louisbranch/eternum-herald/internal/platform/timeouts"
)

// RuntimeConfig carries everything needed to stand the herald up.
type RuntimeConfig struct {
	DiscordToken    string
	ChannelID       string
	ToriiAddr       string
	WorldAddress    string
	DBPath          string
	GRPCDialTimeout time.Duration
}

// Run wires the herald's external collaborators and drives the pipeline
// until the context ends or the indexer reconnect budget runs out.
func Run(ctx context.Context, cfg RuntimeConfig) error {
	if cfg.DiscordToken == "" {
		return fmt.Errorf("discord token is required")
	}
	if cfg.ChannelID == "" {
		return fmt.Errorf("discord channel id is required")
	}
	if cfg.GRPCDialTimeout <= 0 {
		cfg.GRPCDialTimeout = timeouts.GRPCDial
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open identity store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("close identity store: %v", closeErr)
		}
	}()

	conn, err := platformgrpc.Dial(
		ctx,
		nil,
		cfg.ToriiAddr,
		cfg.GRPCDialTimeout,
		platformgrpc.DefaultClientDialOptions()...,
	)
	if err != nil {
		return fmt.Errorf("dial indexer: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			log.Printf("close indexer connection: %v", closeErr)
		}
	}()

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	if err := session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			log.Printf("close discord session: %v", closeErr)
		}
	}()

	filter := indexer.Filter{
		WorldAddress: cfg.WorldAddress,
		Models:       decode.ModelNames(),
	}
	pipeline := New(indexer.NewGRPCClient(conn), filter, store, session, Config{
		ChannelID: cfg.ChannelID,
	})

	log.Printf("herald streaming from %s for world %s", cfg.ToriiAddr, cfg.WorldAddress)
	return pipeline.Run(ctx)
}
