// Package render builds the Discord messages announcing game events.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/louisbranch/eternum-herald/internal/herald/domain"
)

// GameURL appears in every embed footer.
const GameURL = "https://alpha-eternum.realms.world/"

const (
	colorRed     = 0xE74C3C
	colorBlurple = 0x5865F2
)

// unknownName stands in for players whose short-string name decoded empty.
const unknownName = "Unknown User"

// Channel builds the shared-channel announcement for an event.
func Channel(event domain.Event) *discordgo.MessageSend {
	headline, embed := compose(event)
	return &discordgo.MessageSend{
		Content: headline,
		Embeds:  []*discordgo.MessageEmbed{embed},
	}
}

// Direct builds the direct-message announcement for an event, mentioning
// the recipient so the headline pings them.
func Direct(event domain.Event, discordID string) *discordgo.MessageSend {
	headline, embed := compose(event)
	return &discordgo.MessageSend{
		Content: fmt.Sprintf("<@%s> %s", discordID, headline),
		Embeds:  []*discordgo.MessageEmbed{embed},
	}
}

func compose(event domain.Event) (string, *discordgo.MessageEmbed) {
	switch e := event.(type) {
	case domain.SettleRealm:
		x, y := e.Position.Normalized()
		return "A new Realm has been settled!", embed(
			fmt.Sprintf("%s has settled a realm at (%d, %d)", displayName(e.OwnerName), x, y),
			"GLHF",
			colorBlurple,
		)
	case domain.BattleStart:
		x, y := e.Position.Normalized()
		return "BATTLE STARTED!", embed(
			fmt.Sprintf("%s has attacked %s at (%d, %d)", displayName(e.AttackerName), displayName(e.DefenderName), x, y),
			fmt.Sprintf("Battle will end in %s", durationString(e.DurationLeft)),
			colorRed,
		)
	case domain.BattleJoin:
		x, y := e.Position.Normalized()
		return "BATTLE JOINED!", embed(
			fmt.Sprintf("%s has joined the battle at (%d, %d)", displayName(e.JoinerName), x, y),
			fmt.Sprintf("Battle will end in %s", durationString(e.DurationLeft)),
			colorRed,
		)
	case domain.BattleLeave:
		x, y := e.Position.Normalized()
		return "BATTLE LEFT!", embed(
			fmt.Sprintf("%s has left the battle at (%d, %d)", displayName(e.LeaverName), x, y),
			fmt.Sprintf("Battle will end in %s", durationString(e.DurationLeft)),
			colorRed,
		)
	case domain.BattleClaim:
		x, y := e.Position.Normalized()
		return "STRUCTURE CLAIMED!", embed(
			fmt.Sprintf("%s has claimed a structure at (%d, %d)", displayName(e.ClaimerName), x, y),
			fmt.Sprintf("Structure type: %s", domain.StructureName(e.StructureCategory)),
			colorRed,
		)
	case domain.BattlePillage:
		x, y := e.Position.Normalized()
		return "STRUCTURE PILLAGED!", embed(
			fmt.Sprintf("%s has pillaged a structure at (%d, %d)", displayName(e.PillagerName), x, y),
			fmt.Sprintf("Pillaged resources: %s\nStructure type: %s",
				resourceList(e.Resources), domain.StructureName(e.StructureCategory)),
			colorRed,
		)
	case domain.ConstructionStarted:
		x, y := e.Position.Normalized()
		return "HYPERSTRUCTURE STARTED!", embed(
			fmt.Sprintf("%s has started a hyperstructure at (%d, %d)", displayName(e.OwnerName), x, y),
			fmt.Sprintf("Structure type: %s", domain.StructureName(e.StructureCategory)),
			colorBlurple,
		)
	case domain.ConstructionFinished:
		x, y := e.Position.Normalized()
		return "HYPERSTRUCTURE FINISHED!", embed(
			fmt.Sprintf("%s has finished a hyperstructure at (%d, %d)", displayName(e.OwnerName), x, y),
			fmt.Sprintf("Structure type: %s", domain.StructureName(e.StructureCategory)),
			colorBlurple,
		)
	case domain.GameEnded:
		return "THE SEASON HAS ENDED!", embed(
			fmt.Sprintf("%s has won the season", displayName(e.WinnerName)),
			"GG",
			colorBlurple,
		)
	default:
		return "", embed(fmt.Sprintf("Unhandled event: %s", event.Kind()), "", colorBlurple)
	}
}

func embed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: GameURL},
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return unknownName
	}
	return name
}

// durationString formats seconds as HH:MM:SS.
func durationString(seconds uint64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds%60)
}

// resourceList formats pillaged resources as "5 Wood, 1 Gold", converting
// fixed-point amounts to display units.
func resourceList(resources []domain.ResourceAmount) string {
	if len(resources) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(resources))
	for _, r := range resources {
		parts = append(parts, fmt.Sprintf("%d %s", r.DisplayAmount(), domain.ResourceName(r.ID)))
	}
	return strings.Join(parts, ", ")
}
