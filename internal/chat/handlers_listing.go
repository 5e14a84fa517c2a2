package chat

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/farmfast/platform/internal/listings"
)

// handleImage runs the listing-intake flow: ack, download, grade, store the
// photo, create the listing, then ask for quantity (registered) or location
// (unregistered). Grading failure aborts the whole attempt with a retry
// prompt and leaves the session untouched.
func (e *Engine) handleImage(ctx context.Context, t *turn) error {
	ctx, span := tracer.Start(ctx, "chat.image_intake")
	defer span.End()

	// Grading takes several seconds; acknowledge immediately so the farmer
	// isn't left staring at a silent chat.
	e.send(ctx, t.from, msgProcessing)

	image, err := e.deps.Media.Download(ctx, t.mediaURL)
	if err != nil {
		e.deps.Logger.Error("media download failed", "error", err, "from", t.from)
		e.send(ctx, t.from, msgGradingFailed)
		return nil
	}

	result, err := e.deps.Grader.Grade(ctx, image)
	if err != nil {
		e.deps.Logger.Error("grading failed", "error", err, "from", t.from)
		e.deps.Metrics.ObserveGrade("", "error")
		e.send(ctx, t.from, msgGradingFailed)
		return nil
	}
	e.deps.Metrics.ObserveGrade(result.Grade, "ok")
	span.SetAttributes(
		attribute.String("crop_type", result.CropType),
		attribute.String("grade", result.Grade),
	)

	// The Twilio media URL expires; replace it with a durable copy when the
	// store is available, keep the ephemeral URL otherwise.
	imageURL := t.mediaURL
	if e.deps.Images != nil && e.deps.Images.Enabled() {
		url, err := e.deps.Images.StoreListingImage(ctx, t.from, uuid.NewString(), image, "image/jpeg")
		if err != nil {
			e.deps.Logger.Warn("image upload failed, keeping transport URL",
				"error", err, "from", t.from)
		} else {
			imageURL = url
		}
	}

	listing := &listings.Listing{
		FarmerPhone:     t.from,
		CropType:        result.CropType,
		QualityGrade:    result.Grade,
		QuantityKg:      0,
		Location:        "India",
		PriceRangeMin:   result.PriceRangeMin,
		PriceRangeMax:   result.PriceRangeMax,
		ShelfLifeDays:   result.ShelfLifeDays,
		ImageURL:        imageURL,
		HindiSummary:    result.HindiSummary,
		ConfidenceScore: result.Confidence,
		QualityFactors:  result.QualityFactors,
		Status:          listings.StatusActive,
	}
	if t.registered() {
		listing.Location = t.farmer.Location
		listing.FullAddress = t.farmer.FullAddress
		listing.Pincode = t.farmer.Pincode
		listing.Latitude = t.farmer.Latitude
		listing.Longitude = t.farmer.Longitude
	}

	created, err := e.deps.Listings.Create(ctx, listing)
	if err != nil {
		e.deps.Logger.Error("listing create failed", "error", err, "from", t.from)
		e.send(ctx, t.from, msgGradingFailed)
		return err
	}

	next := StateAwaitingLocation
	if t.registered() {
		next = StateAwaitingQuantity
	}
	if _, err := e.updateSession(ctx, t, SessionUpdate{
		State:            &next,
		CurrentListingID: &created.ID,
	}); err != nil {
		return err
	}

	e.send(ctx, t.from, formatGradeResult(result, t.registered()))
	return nil
}

func (e *Engine) handleListingLocation(ctx context.Context, t *turn) error {
	listing, err := e.currentListing(ctx, t)
	if listing == nil {
		return err
	}

	pincode := strings.ReplaceAll(t.body, " ", "")
	if !pincodePattern.MatchString(pincode) {
		e.send(ctx, t.from, msgInvalidPincode)
		return nil
	}

	// Unlike registration, this flow exists to pin the listing's location,
	// so a failed lookup re-prompts instead of falling back.
	loc, err := e.deps.Geocoder.ResolvePincode(ctx, pincode)
	if err != nil {
		e.deps.Logger.Warn("geocoding failed for listing", "error", err, "pincode", pincode)
		e.send(ctx, t.from, msgPincodeNotFound)
		return nil
	}

	if err := e.deps.Listings.SetLocation(ctx, listing.ID, pincode, loc.Lat, loc.Lon, loc.DisplayName); err != nil {
		return err
	}
	if _, err := e.updateSession(ctx, t, SessionUpdate{State: statePtr(StateAwaitingQuantity)}); err != nil {
		return err
	}

	e.send(ctx, t.from, formatLocationSaved(loc.DisplayName))
	return nil
}

func (e *Engine) handleQuantity(ctx context.Context, t *turn) error {
	listing, err := e.currentListing(ctx, t)
	if listing == nil {
		return err
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(t.body))
	if err != nil || quantity <= 0 {
		e.send(ctx, t.from, msgInvalidQuantity)
		return nil
	}
	if quantity < e.minListingKg {
		e.send(ctx, t.from, msgQuantityTooLow)
		return nil
	}

	if err := e.deps.Listings.SetQuantity(ctx, listing.ID, quantity); err != nil {
		return err
	}
	if _, err := e.updateSession(ctx, t, SessionUpdate{State: statePtr(StateListingActive)}); err != nil {
		return err
	}

	buyerCount := 0
	if listing.Latitude != 0 || listing.Longitude != 0 {
		count, err := e.deps.Buyers.CountReachable(ctx, listing.Latitude, listing.Longitude)
		if err != nil {
			e.deps.Logger.Warn("buyer count failed", "error", err, "listing_id", listing.ID)
		} else {
			buyerCount = count
		}
	}

	e.send(ctx, t.from, formatListingLive(quantity, buyerCount))
	return nil
}

// currentListing resolves the session's listing. A session pointing at a
// missing listing is inconsistent state left by a partial failure; recover
// by resetting to idle rather than wedging the conversation.
func (e *Engine) currentListing(ctx context.Context, t *turn) (*listings.Listing, error) {
	if t.session.CurrentListingID != "" {
		listing, err := e.deps.Listings.Get(ctx, t.session.CurrentListingID)
		if err == nil {
			return listing, nil
		}
		e.deps.Logger.Error("session points at missing listing",
			"error", err, "from", t.from, "listing_id", t.session.CurrentListingID)
	} else {
		e.deps.Logger.Error("session in listing state without a listing",
			"from", t.from, "state", string(t.session.State))
	}

	if _, err := e.updateSession(ctx, t, SessionUpdate{
		State:        statePtr(StateIdle),
		ClearListing: true,
	}); err != nil {
		return nil, err
	}
	e.send(ctx, t.from, msgNoActiveListing)
	return nil, nil
}
