package herald

import (
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("herald", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ToriiAddr != "localhost:8080" {
		t.Fatalf("torii addr = %q", cfg.ToriiAddr)
	}
	if cfg.DBPath != "data/herald.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if cfg.GRPCDialTimeout != 5*time.Second {
		t.Fatalf("dial timeout = %v", cfg.GRPCDialTimeout)
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("HERALD_DISCORD_TOKEN", "token-1")
	t.Setenv("HERALD_CHANNEL_ID", "channel-1")
	t.Setenv("HERALD_TORII_ADDR", "torii:9090")
	t.Setenv("HERALD_WORLD_ADDRESS", "0xworld")
	t.Setenv("HERALD_DIAL_TIMEOUT", "2s")

	fs := flag.NewFlagSet("herald", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DiscordToken != "token-1" || cfg.ChannelID != "channel-1" {
		t.Fatalf("discord settings = %q / %q", cfg.DiscordToken, cfg.ChannelID)
	}
	if cfg.ToriiAddr != "torii:9090" || cfg.WorldAddress != "0xworld" {
		t.Fatalf("indexer settings = %q / %q", cfg.ToriiAddr, cfg.WorldAddress)
	}
	if cfg.GRPCDialTimeout != 2*time.Second {
		t.Fatalf("dial timeout = %v", cfg.GRPCDialTimeout)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("HERALD_TORII_ADDR", "torii:9090")

	fs := flag.NewFlagSet("herald", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-torii-addr", "torii:7070"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ToriiAddr != "torii:7070" {
		t.Fatalf("torii addr = %q", cfg.ToriiAddr)
	}
}
