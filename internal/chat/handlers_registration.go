package chat

import (
	"context"
	"regexp"
	"strings"

	"github.com/farmfast/platform/internal/farmers"
	"github.com/farmfast/platform/internal/geocoding"
)

const (
	minNameLen    = 2
	minAddressLen = 10
)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

func (e *Engine) handleName(ctx context.Context, t *turn) error {
	name := strings.TrimSpace(t.body)
	if len([]rune(name)) < minNameLen {
		e.send(ctx, t.from, msgNameTooShort)
		return nil
	}

	if _, err := e.updateSession(ctx, t, SessionUpdate{
		State:      statePtr(StateAwaitingFullAddress),
		FarmerName: &name,
	}); err != nil {
		return err
	}

	e.send(ctx, t.from, formatAskAddress(name))
	return nil
}

func (e *Engine) handleFullAddress(ctx context.Context, t *turn) error {
	address := strings.TrimSpace(t.body)
	if len([]rune(address)) < minAddressLen {
		e.send(ctx, t.from, msgAddressTooShort)
		return nil
	}

	if _, err := e.updateSession(ctx, t, SessionUpdate{
		State:           statePtr(StateAwaitingInitialLocation),
		TempFullAddress: &address,
	}); err != nil {
		return err
	}

	e.send(ctx, t.from, msgAddressSaved)
	return nil
}

func (e *Engine) handleInitialLocation(ctx context.Context, t *turn) error {
	pincode := strings.ReplaceAll(t.body, " ", "")
	if !pincodePattern.MatchString(pincode) {
		e.send(ctx, t.from, msgInvalidPincode)
		return nil
	}

	// Registration must never be blocked by the geocoder; fall back to
	// placeholder coordinates and move on.
	loc, err := e.deps.Geocoder.ResolvePincode(ctx, pincode)
	if err != nil {
		e.deps.Logger.Warn("geocoding failed during registration, using placeholder",
			"error", err, "pincode", pincode)
		loc = geocoding.Placeholder()
	}

	name := t.session.FarmerName
	if name == "" {
		name = "Farmer"
	}
	address := t.session.TempFullAddress

	farmer, err := e.deps.Farmers.Upsert(ctx, &farmers.Farmer{
		Phone:       t.from,
		Name:        name,
		FullAddress: address,
		Location:    loc.DisplayName,
		Pincode:     pincode,
		Latitude:    loc.Lat,
		Longitude:   loc.Lon,
	})
	if err != nil {
		e.deps.Logger.Error("farmer upsert failed", "error", err, "from", t.from)
		e.send(ctx, t.from, msgRegistrationFailed)
		return nil
	}
	t.farmer = farmer

	if _, err := e.updateSession(ctx, t, SessionUpdate{
		State:            statePtr(StateIdle),
		ClearTempAddress: true,
	}); err != nil {
		return err
	}

	e.send(ctx, t.from, formatRegistrationComplete(name, address, pincode))
	return nil
}
