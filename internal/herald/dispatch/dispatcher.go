// Package dispatch delivers routed notifications through a Discord
// session, one at a time.
package dispatch

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/louisbranch/eternum-herald/internal/herald/route"
)

// Session is the slice of the Discord API the dispatcher needs.
type Session interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// Dispatcher drains a notification mailbox and sends each message in
// arrival order. Delivery failures are logged and the notification is
// dropped; one bad recipient must not stall the pipeline.
type Dispatcher struct {
	session Session
	logf    func(format string, args ...any)

	// dmChannels caches the DM channel id per recipient so repeat
	// deliveries skip the channel-create round trip.
	dmChannels map[string]string
}

// New builds a dispatcher sending through session.
func New(session Session, logf func(format string, args ...any)) *Dispatcher {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Dispatcher{
		session:    session,
		logf:       logf,
		dmChannels: make(map[string]string),
	}
}

// Run delivers notifications from in until the context is cancelled or
// the mailbox closes.
func (d *Dispatcher) Run(ctx context.Context, in <-chan route.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case notification, ok := <-in:
			if !ok {
				return
			}
			d.deliver(notification)
		}
	}
}

func (d *Dispatcher) deliver(notification route.Notification) {
	if notification.Content == nil {
		return
	}
	if notification.ChannelID != "" {
		if _, err := d.session.ChannelMessageSendComplex(notification.ChannelID, notification.Content); err != nil {
			d.logf("herald: channel send to %s failed: %v", notification.ChannelID, err)
		}
		return
	}

	channelID, err := d.dmChannel(notification.UserID)
	if err != nil {
		d.logf("herald: dm channel for %s failed: %v", notification.UserID, err)
		return
	}
	if _, err := d.session.ChannelMessageSendComplex(channelID, notification.Content); err != nil {
		d.logf("herald: direct send to %s failed: %v", notification.UserID, err)
	}
}

func (d *Dispatcher) dmChannel(userID string) (string, error) {
	if channelID, ok := d.dmChannels[userID]; ok {
		return channelID, nil
	}
	channel, err := d.session.UserChannelCreate(userID)
	if err != nil {
		return "", err
	}
	d.dmChannels[userID] = channel.ID
	return channel.ID, nil
}
