// Package main registers a world address against a Discord id in the
// herald's identity database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/louisbranch/eternum-herald/internal/herald/storage"
	"github.com/louisbranch/eternum-herald/internal/herald/storage/sqlite"
	"github.com/louisbranch/eternum-herald/internal/platform/config"
)

func main() {
	dbPath := flag.String("db-path", "data/herald.db", "The identity SQLite database path")
	address := flag.String("address", "", "The player's world address")
	discordID := flag.String("discord-id", "", "The player's Discord id")
	telegramID := flag.String("telegram-id", "", "The player's Telegram id")
	flag.Parse()

	if *address == "" {
		config.Exitf("address is required")
	}
	if *discordID == "" && *telegramID == "" {
		config.Exitf("at least one of discord-id and telegram-id is required")
	}

	store, err := sqlite.Open(*dbPath)
	if err != nil {
		config.Exitf("open identity store: %v", err)
	}
	defer store.Close()

	user := storage.User{
		Address:    *address,
		DiscordID:  *discordID,
		TelegramID: *telegramID,
	}
	if err := store.UpsertUser(context.Background(), user); err != nil {
		config.Exitf("register user: %v", err)
	}
	fmt.Fprintf(os.Stdout, "registered %s\n", *address)
}
