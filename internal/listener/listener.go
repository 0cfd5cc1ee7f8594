// Package listener drives the eventlistener conversation with the
// supervisor: announce readiness, read one event, classify it, deliver a
// notification when warranted, and acknowledge.
package listener

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jukanntenn/crashfeishu/internal/event"
	"github.com/jukanntenn/crashfeishu/internal/notify"
	"github.com/jukanntenn/crashfeishu/internal/protocol"
	"github.com/jukanntenn/crashfeishu/internal/watch"
)

// State names one phase of the conversation.
type State int

const (
	StateAwaitingReady State = iota
	StateReadingHeader
	StateReadingPayload
	StateAcknowledging
)

func (s State) String() string {
	switch s {
	case StateAwaitingReady:
		return "awaiting-ready"
	case StateReadingHeader:
		return "reading-header"
	case StateReadingPayload:
		return "reading-payload"
	case StateAcknowledging:
		return "acknowledging"
	default:
		return "unknown"
	}
}

// Config carries the listener's collaborators and settings.
type Config struct {
	Channel *protocol.Channel
	Watch   watch.Set

	// Notifier delivers crash messages. nil disables delivery while the
	// protocol loop keeps running.
	Notifier notify.Notifier

	// NotifyTimeout bounds one delivery attempt.
	NotifyTimeout time.Duration
}

// Listener is the eventlistener state machine. One instance drives one
// supervisor conversation and is not safe for concurrent use.
type Listener struct {
	channel       *protocol.Channel
	watch         watch.Set
	notifier      notify.Notifier
	notifyTimeout time.Duration

	state    State
	header   protocol.Header
	headerOK bool
}

// New builds a listener in the AwaitingReady state.
func New(cfg Config) *Listener {
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = notify.DefaultTimeout
	}
	return &Listener{
		channel:       cfg.Channel,
		watch:         cfg.Watch,
		notifier:      cfg.Notifier,
		notifyTimeout: cfg.NotifyTimeout,
		state:         StateAwaitingReady,
	}
}

// State reports the phase the listener is currently in.
func (l *Listener) State() State { return l.state }

// Run drives the conversation until the supervisor closes the channel,
// which is the normal end of life for an eventlistener, or until ctx is
// canceled. Cancellation is observed between frames only; a frame whose
// header read has begun always runs to acknowledgement.
func (l *Listener) Run(ctx context.Context) error {
	log.Info().
		Str("watch", l.watch.String()).
		Int("targets", l.watch.Len()).
		Bool("delivery_enabled", l.notifier != nil).
		Dur("notify_timeout", l.notifyTimeout).
		Msg("listener running")
	for {
		if l.state == StateAwaitingReady {
			select {
			case <-ctx.Done():
				log.Info().Msg("shutdown signal received, exiting")
				return nil
			default:
			}
		}
		if err := l.Step(ctx); err != nil {
			if errors.Is(err, protocol.ErrChannelClosed) {
				log.Info().Msg("event channel closed, exiting")
				return nil
			}
			return err
		}
	}
}

// Step executes the action of the current state and advances to the next
// one. It returns an error only when the channel is gone; a malformed
// frame is logged, acknowledged, and survived.
func (l *Listener) Step(ctx context.Context) error {
	switch l.state {
	case StateAwaitingReady:
		if err := protocol.WriteReady(l.channel); err != nil {
			return err
		}
		l.state = StateReadingHeader

	case StateReadingHeader:
		line, err := l.channel.ReadHeaderLine()
		if err != nil {
			return err
		}
		l.header, err = protocol.ParseHeader(line)
		l.headerOK = err == nil
		if err != nil {
			log.Warn().Err(err).Str("line", line).Msg("malformed header, event ignored")
		} else {
			log.Debug().
				Str("eventname", l.header.EventName).
				Int("len", l.header.PayloadLen).
				Interface("tokens", l.header.Tokens).
				Msg("header parsed")
		}
		l.state = StateReadingPayload

	case StateReadingPayload:
		if err := l.consumeEvent(ctx); err != nil {
			return err
		}
		l.state = StateAcknowledging

	case StateAcknowledging:
		if err := protocol.WriteResult(l.channel, protocol.ResultOK); err != nil {
			return err
		}
		l.state = StateAwaitingReady
	}
	return nil
}

// consumeEvent reads the declared payload, classifies a process state
// transition, and delivers the notification when one is warranted. With
// an unusable header there is no declared length to read, so the event
// is acknowledged as-is.
func (l *Listener) consumeEvent(ctx context.Context) error {
	if !l.headerOK {
		return nil
	}
	payload, err := l.channel.ReadExact(l.header.PayloadLen)
	if err != nil {
		return err
	}

	if !event.IsProcessState(l.header.EventName) {
		return nil
	}
	ev, err := event.Decode(l.header.EventName, payload)
	if err != nil {
		log.Warn().Err(err).Str("eventname", l.header.EventName).Msg("malformed payload, event ignored")
		return nil
	}
	log.Debug().
		Str("subtype", ev.Subtype).
		Interface("fields", ev.Fields).
		Msg("event decoded")
	decision := event.Classify(ev, l.watch)
	if decision.Action != event.ActionNotify {
		log.Debug().
			Str("process", ev.ProcessName()).
			Str("group", ev.GroupName()).
			Msg("transition ignored")
		return nil
	}
	l.deliver(ctx, decision.Message)
	return nil
}

// deliver pushes one crash message. Failures are logged and never reach
// the protocol loop; the supervisor gets its acknowledgement either way.
func (l *Listener) deliver(ctx context.Context, message string) {
	log.Info().Str("message", message).Msg("crash detected")
	if l.notifier == nil {
		log.Warn().Msg("notification delivery disabled, message not pushed")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, l.notifyTimeout)
	defer cancel()
	if err := l.notifier.Deliver(ctx, message); err != nil {
		log.Error().Err(err).Msg("failed to deliver crash notification")
	}
}
