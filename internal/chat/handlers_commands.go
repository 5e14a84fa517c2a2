package chat

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/farmfast/platform/internal/farmers"
	"github.com/farmfast/platform/internal/listings"
)

// updateVerbPattern strips everything up to and including the change verb,
// leaving the new value ("नाम बदलो राज कुमार" -> "राज कुमार").
var updateVerbPattern = regexp.MustCompile(`(?i).*?(बदलो|बदल|change)\s*`)

var sixDigitPattern = regexp.MustCompile(`\d{6}`)

// handleGlobalCommand runs the commands available from any resting state.
// It reports whether the message was claimed.
func (e *Engine) handleGlobalCommand(ctx context.Context, t *turn) (bool, error) {
	switch {
	case isMenuCommand(t.lowerBody):
		return true, e.commandMenu(ctx, t)
	case isProfileCommand(t.lowerBody):
		return true, e.commandProfile(ctx, t)
	case isUpdateNameCommand(t.lowerBody):
		return true, e.commandUpdateName(ctx, t)
	case isUpdateAddressCommand(t.lowerBody):
		return true, e.commandUpdateAddress(ctx, t)
	case isUpdatePincodeCommand(t.lowerBody):
		return true, e.commandUpdatePincode(ctx, t)
	case isHelpCommand(t.lowerBody):
		return true, e.commandHelp(ctx, t)
	case isStatusCommand(t.lowerBody):
		return true, e.commandStatus(ctx, t)
	}
	return false, nil
}

func (e *Engine) commandMenu(ctx context.Context, t *turn) error {
	if !t.registered() {
		e.send(ctx, t.from, msgRegisterFirst)
		return nil
	}
	e.send(ctx, t.from, msgMenu)
	return nil
}

func (e *Engine) commandProfile(ctx context.Context, t *turn) error {
	if !t.registered() {
		e.send(ctx, t.from, msgRegisterFirst)
		return nil
	}
	address := t.farmer.FullAddress
	if address == "" {
		address = t.farmer.Location
	}
	e.send(ctx, t.from, formatProfile(t.farmer.Name, address, t.farmer.Pincode, t.farmer.Phone))
	return nil
}

func (e *Engine) commandUpdateName(ctx context.Context, t *turn) error {
	if !t.registered() {
		e.send(ctx, t.from, msgRegisterFirst)
		return nil
	}
	name := strings.TrimSpace(updateVerbPattern.ReplaceAllString(t.body, ""))
	if len([]rune(name)) < minNameLen {
		e.send(ctx, t.from, msgUpdateNamePrompt)
		return nil
	}
	if err := e.deps.Farmers.Update(ctx, t.from, farmers.Update{Name: &name}); err != nil {
		return err
	}
	e.send(ctx, t.from, formatNameUpdated(name))
	return nil
}

func (e *Engine) commandUpdateAddress(ctx context.Context, t *turn) error {
	if !t.registered() {
		e.send(ctx, t.from, msgRegisterFirst)
		return nil
	}
	address := strings.TrimSpace(updateVerbPattern.ReplaceAllString(t.body, ""))
	if len([]rune(address)) < minAddressLen {
		e.send(ctx, t.from, msgUpdateAddressPrompt)
		return nil
	}
	if err := e.deps.Farmers.Update(ctx, t.from, farmers.Update{FullAddress: &address}); err != nil {
		return err
	}
	e.send(ctx, t.from, formatAddressUpdated(address))
	return nil
}

func (e *Engine) commandUpdatePincode(ctx context.Context, t *turn) error {
	if !t.registered() {
		e.send(ctx, t.from, msgRegisterFirst)
		return nil
	}
	pincode := sixDigitPattern.FindString(t.body)
	if pincode == "" {
		e.send(ctx, t.from, msgUpdatePincodePrompt)
		return nil
	}

	loc, err := e.deps.Geocoder.ResolvePincode(ctx, pincode)
	if err != nil {
		e.deps.Logger.Warn("geocoding failed for pincode update", "error", err, "pincode", pincode)
		e.send(ctx, t.from, msgUpdatePincodeNotFound)
		return nil
	}

	location := loc.DisplayName
	if location == "" {
		location = t.farmer.Location
	}
	if err := e.deps.Farmers.Update(ctx, t.from, farmers.Update{
		Pincode:   &pincode,
		Latitude:  &loc.Lat,
		Longitude: &loc.Lon,
		Location:  &location,
	}); err != nil {
		return err
	}
	e.send(ctx, t.from, formatPincodeUpdated(pincode, loc.DisplayName))
	return nil
}

func (e *Engine) commandHelp(ctx context.Context, t *turn) error {
	if t.registered() {
		e.send(ctx, t.from, msgHelpRegistered)
	} else {
		e.send(ctx, t.from, msgHelpUnregistered)
	}
	return nil
}

func (e *Engine) commandStatus(ctx context.Context, t *turn) error {
	if t.session.CurrentListingID != "" {
		listing, err := e.deps.Listings.Get(ctx, t.session.CurrentListingID)
		if err != nil && !errors.Is(err, listings.ErrListingNotFound) {
			return err
		}
		if listing != nil {
			count, err := e.deps.Offers.CountForListing(ctx, listing.ID)
			if err != nil {
				return err
			}
			e.send(ctx, t.from, formatListingStatus(listing, count))
			return nil
		}
	}
	e.send(ctx, t.from, msgNoActiveListing)
	return nil
}

func (e *Engine) handleDefault(ctx context.Context, t *turn) error {
	if t.registered() {
		e.send(ctx, t.from, msgDefaultRegistered)
	} else {
		e.send(ctx, t.from, msgDefaultUnregistered)
	}
	return nil
}
