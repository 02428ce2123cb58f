// Package herald parses herald command flags and launches the
// notification pipeline.
package herald

import (
	"context"
	"flag"
	"time"

	heraldapp "github.com/louisbranch/eternum-herald/internal/herald/app"
	entrypoint "github.com/louisbranch/eternum-herald/internal/platform/cmd"
)

// Config holds herald command configuration.
type Config struct {
	DiscordToken    string        `env:"HERALD_DISCORD_TOKEN"`
	ChannelID       string        `env:"HERALD_CHANNEL_ID"`
	ToriiAddr       string        `env:"HERALD_TORII_ADDR" envDefault:"localhost:8080"`
	WorldAddress    string        `env:"HERALD_WORLD_ADDRESS"`
	DBPath          string        `env:"HERALD_DB_PATH" envDefault:"data/herald.db"`
	GRPCDialTimeout time.Duration `env:"HERALD_DIAL_TIMEOUT" envDefault:"5s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DiscordToken, "discord-token", cfg.DiscordToken, "The Discord bot token")
	fs.StringVar(&cfg.ChannelID, "channel-id", cfg.ChannelID, "The Discord channel announcements go to")
	fs.StringVar(&cfg.ToriiAddr, "torii-addr", cfg.ToriiAddr, "The torii indexer gRPC address")
	fs.StringVar(&cfg.WorldAddress, "world-address", cfg.WorldAddress, "The world contract address to subscribe to")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The identity SQLite database path")
	fs.DurationVar(&cfg.GRPCDialTimeout, "dial-timeout", cfg.GRPCDialTimeout, "gRPC dependency dial timeout")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the herald pipeline.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceHerald, func(ctx context.Context) error {
		return heraldapp.Run(ctx, heraldapp.RuntimeConfig{
			DiscordToken:    cfg.DiscordToken,
			ChannelID:       cfg.ChannelID,
			ToriiAddr:       cfg.ToriiAddr,
			WorldAddress:    cfg.WorldAddress,
			DBPath:          cfg.DBPath,
			GRPCDialTimeout: cfg.GRPCDialTimeout,
		})
	})
}
