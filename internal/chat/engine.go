package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/farmfast/platform/internal/buyers"
	"github.com/farmfast/platform/internal/farmers"
	"github.com/farmfast/platform/internal/geocoding"
	"github.com/farmfast/platform/internal/grading"
	"github.com/farmfast/platform/internal/listings"
	"github.com/farmfast/platform/internal/messaging"
	"github.com/farmfast/platform/internal/observability/metrics"
	"github.com/farmfast/platform/internal/offers"
	"github.com/farmfast/platform/pkg/logging"
)

var tracer = otel.Tracer("farmfast.internal.chat")

// Messenger delivers outbound WhatsApp messages.
type Messenger interface {
	Send(ctx context.Context, to, body, mediaURL string) error
}

// MediaFetcher downloads inbound media from the transport.
type MediaFetcher interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// ImageStore persists produce photos and returns a durable URL.
type ImageStore interface {
	Enabled() bool
	StoreListingImage(ctx context.Context, farmerPhone, listingID string, image []byte, contentType string) (string, error)
}

// Inbound is one webhook message after transport parsing and phone
// normalization.
type Inbound struct {
	From     string
	Body     string
	MediaURL string
}

// Deps wires the engine to its collaborators.
type Deps struct {
	Sessions SessionStore
	Farmers  farmers.Repository
	Listings listings.Repository
	Offers   offers.Repository
	Buyers   buyers.Repository
	Grader   grading.Grader
	Geocoder geocoding.Geocoder
	Images   ImageStore
	Media    MediaFetcher
	Sender   Messenger
	Metrics  *metrics.ConversationMetrics
	Logger   *logging.Logger
}

// Options tune engine behavior.
type Options struct {
	StaleAfter   time.Duration
	MinListingKg int
	Now          func() time.Time
}

// Engine runs one conversational turn per inbound message. It holds no
// per-farmer state; everything it needs between messages lives in the
// session store.
type Engine struct {
	deps Deps

	staleAfter   time.Duration
	minListingKg int
	now          func() time.Time

	stateHandlers map[State]handlerFunc
}

type handlerFunc func(ctx context.Context, t *turn) error

// turn bundles everything a handler needs for one inbound message.
type turn struct {
	from      string
	body      string
	lowerBody string
	mediaURL  string
	farmer    *farmers.Farmer
	session   *Session
	now       time.Time
}

func (t *turn) registered() bool { return t.farmer != nil }

func NewEngine(deps Deps, opts Options) *Engine {
	if deps.Logger == nil {
		deps.Logger = logging.Default()
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = 24 * time.Hour
	}
	if opts.MinListingKg <= 0 {
		opts.MinListingKg = 50
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}

	e := &Engine{
		deps:         deps,
		staleAfter:   opts.StaleAfter,
		minListingKg: opts.MinListingKg,
		now:          opts.Now,
	}
	e.stateHandlers = map[State]handlerFunc{
		StateAwaitingName:            e.handleName,
		StateAwaitingFullAddress:     e.handleFullAddress,
		StateAwaitingInitialLocation: e.handleInitialLocation,
		StateAwaitingLocation:        e.handleListingLocation,
		StateAwaitingQuantity:        e.handleQuantity,
		StateReviewingOffers:         e.handleOfferReview,
		StateAwaitingHandover:        e.handleHandover,
	}
	return e
}

// HandleMessage processes one inbound message end to end. Dispatch order:
// platform system messages are dropped, stale sessions are reset and the
// turn ends, unregistered farmers are routed into onboarding, an image
// always goes to listing intake, then the session state picks the handler,
// then global commands, then the default prompt.
func (e *Engine) HandleMessage(ctx context.Context, in Inbound) error {
	ctx, span := tracer.Start(ctx, "chat.handle_message",
		trace.WithAttributes(attribute.Bool("has_media", in.MediaURL != "")))
	defer span.End()

	body := strings.TrimSpace(in.Body)
	if messaging.IsSystemMessage(body) {
		e.deps.Logger.Info("ignoring platform system message", "from", in.From)
		return nil
	}

	t := &turn{
		from:      in.From,
		body:      body,
		lowerBody: strings.ToLower(body),
		mediaURL:  in.MediaURL,
		now:       e.now(),
	}

	farmer, err := e.deps.Farmers.GetByPhone(ctx, t.from)
	if err != nil && !errors.Is(err, farmers.ErrFarmerNotFound) {
		return err
	}
	t.farmer = farmer
	span.SetAttributes(attribute.Bool("registered", t.registered()))

	fresh, err := e.loadSession(ctx, t)
	if err != nil {
		return err
	}
	if fresh {
		// A brand-new unregistered farmer gets the welcome prompt and
		// nothing else this turn.
		if !t.registered() {
			e.send(ctx, t.from, msgWelcome)
			return nil
		}
	}
	span.SetAttributes(attribute.String("state", string(t.session.State)))

	if t.session.Stale(t.now, e.staleAfter) {
		return e.resetStaleSession(ctx, t)
	}

	if !t.registered() && !t.session.State.RegistrationStep() {
		if _, err := e.updateSession(ctx, t, SessionUpdate{State: statePtr(StateAwaitingName)}); err != nil {
			return err
		}
		e.send(ctx, t.from, msgWelcome)
		return nil
	}

	// An image starts or continues a listing no matter where the
	// conversation stands.
	if t.mediaURL != "" {
		return e.handleImage(ctx, t)
	}

	if handler, ok := e.stateHandlers[t.session.State]; ok {
		return handler(ctx, t)
	}

	if handled, err := e.handleGlobalCommand(ctx, t); handled || err != nil {
		return err
	}

	return e.handleDefault(ctx, t)
}

// loadSession fetches or creates the session for this turn. It reports
// whether the session was created fresh.
func (e *Engine) loadSession(ctx context.Context, t *turn) (bool, error) {
	session, err := e.deps.Sessions.Get(ctx, t.from)
	if err == nil {
		t.session = session
		return false, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return false, err
	}

	initial := StateAwaitingName
	if t.registered() {
		initial = StateIdle
	}
	session, err = e.deps.Sessions.Create(ctx, &Session{
		FarmerPhone:   t.from,
		State:         initial,
		LastMessageAt: t.now,
	})
	if err != nil {
		return false, err
	}
	t.session = session
	return true, nil
}

// resetStaleSession returns the farmer to a resting state and ends the turn.
// The farmer must re-send to proceed.
func (e *Engine) resetStaleSession(ctx context.Context, t *turn) error {
	reset := StateAwaitingName
	update := SessionUpdate{State: &reset}
	if t.registered() {
		reset = StateIdle
		// Returning to idle drops the listing pin; the listing itself stays
		// live and keeps collecting offers.
		update.ClearListing = true
	}
	e.deps.Logger.Info("resetting stale session",
		"from", t.from,
		"state", string(t.session.State),
		"last_message_at", t.session.LastMessageAt,
	)
	if _, err := e.updateSession(ctx, t, update); err != nil {
		return err
	}
	if t.registered() {
		e.send(ctx, t.from, msgStaleNotice)
	} else {
		e.send(ctx, t.from, msgWelcome)
	}
	return nil
}

// updateSession applies a partial update stamped with this turn's time and
// refreshes the turn's session copy.
func (e *Engine) updateSession(ctx context.Context, t *turn, update SessionUpdate) (*Session, error) {
	if update.LastMessageAt.IsZero() {
		update.LastMessageAt = t.now
	}
	session, err := e.deps.Sessions.Update(ctx, t.from, update)
	if err != nil {
		return nil, err
	}
	t.session = session
	return session, nil
}

// send delivers an outbound message and swallows delivery failures. The turn
// has already been committed to the database by the time anything is sent;
// a failed notification must not roll the conversation back.
func (e *Engine) send(ctx context.Context, to, body string) {
	if err := e.deps.Sender.Send(ctx, to, body, ""); err != nil {
		e.deps.Logger.Error("outbound message failed", "error", err, "to", to)
	}
}

func statePtr(s State) *State { return &s }
