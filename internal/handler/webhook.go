package handler

import (
	"context"
	"encoding/xml"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tmarsh/textbus/internal/domain"
)

// welcomeReply greets a number texting in for the first time. The number is
// recorded unapproved; an admin approves it before the bot will answer.
const welcomeReply = "welcome to textbus. we don't recognise you, please contact a maintainer to join the alpha test."

// fallbackReply is sent when command handling fails hard (upstream transport
// failure or a malformed upstream payload).
const fallbackReply = "textbus is having trouble reaching the transit service, please try again later"

// messageResponse is the TwiML-style XML envelope the SMS provider expects.
type messageResponse struct {
	XMLName xml.Name `xml:"Response"`
	Body    string   `xml:"Message>Body"`
}

// GetTwilio handles GET /twilio, the inbound SMS webhook.
// The provider sends the message as query parameters; the reply body in the
// XML response is what it delivers back to the sender.
func (s *Server) GetTwilio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := r.URL.Query()
	from := params.Get("From")
	to := params.Get("To")
	body := params.Get("Body")

	incoming := domain.Message{
		Origin:      from,
		Destination: to,
		Body:        body,
	}
	if sid := params.Get("MessageSid"); sid != "" {
		incoming.MessageSID = &sid
	}

	// A failed insert downgrades correlation to nil; it never blocks the reply.
	var messageID *uuid.UUID
	if saved, err := s.messages.Insert(ctx, incoming); err != nil {
		slog.ErrorContext(ctx, "failed to insert incoming message", "error", err)
	} else {
		messageID = &saved.ID
	}

	reply := "textbus"

	rider, err := s.riders.GetByNumber(ctx, from)
	switch {
	case err == nil && rider.Approved:
		if body != "" {
			reply = s.dispatch(ctx, body, &rider, messageID)
		}
	case err == nil:
		// Known but not yet approved: pretend we don't exist.
		http.Error(w, "not found", http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrNotFound):
		if _, err := s.riders.Create(ctx, from); err != nil {
			slog.ErrorContext(ctx, "failed to insert rider", "number", from, "error", err)
		}
		reply = welcomeReply
	default:
		slog.ErrorContext(ctx, "failed to look up rider", "number", from, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	s.recordOutgoing(ctx, to, from, reply, messageID)

	w.Header().Set("Content-Type", "text/xml")
	if err := xml.NewEncoder(w).Encode(messageResponse{Body: reply}); err != nil {
		slog.ErrorContext(ctx, "failed to encode message response", "error", err)
	}
}

// GetRaw handles GET /raw, a plain-text debugging interface that runs
// commands with no rider attached. Settings cannot be changed here and
// schedule replies use the default clock format.
func (s *Server) GetRaw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body := r.URL.Query().Get("body")

	sid := "repl"
	incoming := domain.Message{
		MessageSID:  &sid,
		Origin:      r.RemoteAddr,
		Destination: "repl",
		Body:        body,
	}

	var messageID *uuid.UUID
	if saved, err := s.messages.Insert(ctx, incoming); err != nil {
		slog.ErrorContext(ctx, "failed to insert incoming message", "error", err)
	} else {
		messageID = &saved.ID
	}

	reply := s.dispatch(ctx, body, nil, messageID)

	s.recordOutgoing(ctx, "repl", r.RemoteAddr, reply, messageID)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(reply)); err != nil {
		slog.ErrorContext(ctx, "failed to write raw response", "error", err)
	}
}

// dispatch runs the command and maps hard failures to the fallback reply.
// Empty-result outcomes come back from the bot as normal reply text.
func (s *Server) dispatch(ctx context.Context, body string, rider *domain.Rider, messageID *uuid.UUID) string {
	reply, err := s.bot.HandleMessage(ctx, body, rider, messageID)
	if err != nil {
		slog.ErrorContext(ctx, "command handling failed", "body", body, "error", err)
		return fallbackReply
	}
	return reply
}

// recordOutgoing persists the reply, linked to the inbound message.
// Best-effort; the reply is already on its way regardless.
func (s *Server) recordOutgoing(ctx context.Context, origin, destination, body string, messageID *uuid.UUID) {
	outgoing := domain.Message{
		Origin:           origin,
		Destination:      destination,
		Body:             body,
		InitialMessageID: messageID,
	}
	if _, err := s.messages.Insert(ctx, outgoing); err != nil {
		slog.ErrorContext(ctx, "failed to insert outgoing message", "error", err)
	}
}
