// Package route resolves decoded game events into the notifications the
// dispatcher should deliver.
package route

import (
	"context"
	"errors"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/louisbranch/eternum-herald/internal/herald/domain"
	"github.com/louisbranch/eternum-herald/internal/herald/render"
	"github.com/louisbranch/eternum-herald/internal/herald/storage"
)

// Notification is one message the dispatcher should deliver. Exactly one
// of ChannelID and UserID is set.
type Notification struct {
	ChannelID string
	UserID    string
	Content   *discordgo.MessageSend
}

// Router fans decoded events out to the shared channel and, when the
// routing subject has a registered Discord identity, to that player
// directly.
type Router struct {
	users     storage.UserStore
	channelID string
	logf      func(format string, args ...any)
}

// New builds a router announcing into channelID and resolving subjects
// through users.
func New(users storage.UserStore, channelID string, logf func(format string, args ...any)) *Router {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Router{users: users, channelID: channelID, logf: logf}
}

// Route resolves one event into zero, one, or two notifications. A
// registered subject gets the channel announcement plus a direct message;
// an unregistered subject gets the channel announcement only when the
// event is worth broadcasting; join and leave events without a recipient
// produce nothing.
func (r *Router) Route(ctx context.Context, event domain.Event) []Notification {
	if r == nil || event == nil {
		return nil
	}

	event = prepare(event)

	discordID, registered := r.resolveRecipient(ctx, event.RoutingSubject())
	if registered {
		return []Notification{
			{ChannelID: r.channelID, Content: render.Channel(event)},
			{UserID: discordID, Content: render.Direct(event, discordID)},
		}
	}
	if event.PublicWorthy() {
		return []Notification{
			{ChannelID: r.channelID, Content: render.Channel(event)},
		}
	}
	return nil
}

// resolveRecipient reports whether the subject address maps to a usable
// Discord identity. Lookup failures count as unregistered so a storage
// hiccup degrades to channel-only delivery instead of dropping the event.
func (r *Router) resolveRecipient(ctx context.Context, subject string) (string, bool) {
	if subject == "" || r.users == nil {
		return "", false
	}
	user, err := r.users.GetUserByAddress(ctx, subject)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.logf("herald: user lookup for %s failed: %v", subject, err)
		}
		return "", false
	}
	if _, err := strconv.ParseUint(user.DiscordID, 10, 64); err != nil {
		return "", false
	}
	return user.DiscordID, true
}

// prepare applies pre-render fixups. The pillage resource list arrives
// with a leading non-resource sentinel pair that must not render.
func prepare(event domain.Event) domain.Event {
	pillage, ok := event.(domain.BattlePillage)
	if !ok {
		return event
	}
	if len(pillage.Resources) > 0 {
		pillage.Resources = pillage.Resources[1:]
	}
	return pillage
}
