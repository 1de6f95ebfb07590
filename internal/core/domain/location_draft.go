package domain

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/SscSPs/location_approval_bot/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Requester identifies the chat user driving a dialog or command.
type Requester struct {
	UserID   string
	Username string
}

// LocationDraft holds the raw answers collected by the intake dialog.
type LocationDraft struct {
	MinecraftUsername string
	LocationName      string
	XCoord            string
	ZCoord            string
	Submitter         Requester
}

// NewLocation is a validated draft, ready for insertion.
type NewLocation struct {
	MinecraftUsername string `validate:"required,max=255"`
	LocationName      string `validate:"required,max=255"`
	XCoord            int    `validate:"min=-30000000,max=30000000"`
	ZCoord            int    `validate:"min=-30000000,max=30000000"`
	DiscordUserID     string `validate:"required"`
	DiscordUsername   string `validate:"required"`
}

// Validate trims and parses the draft. Coordinates must be base-10 integers
// and text fields may not contain control characters.
func (d LocationDraft) Validate() (NewLocation, error) {
	x, err := parseCoordinate("X", d.XCoord)
	if err != nil {
		return NewLocation{}, err
	}
	z, err := parseCoordinate("Z", d.ZCoord)
	if err != nil {
		return NewLocation{}, err
	}

	loc := NewLocation{
		MinecraftUsername: strings.TrimSpace(d.MinecraftUsername),
		LocationName:      strings.TrimSpace(d.LocationName),
		XCoord:            x,
		ZCoord:            z,
		DiscordUserID:     d.Submitter.UserID,
		DiscordUsername:   d.Submitter.Username,
	}

	if hasControl(loc.MinecraftUsername) {
		return NewLocation{}, apperrors.NewValidationFailedError("minecraft username contains control characters")
	}
	if hasControl(loc.LocationName) {
		return NewLocation{}, apperrors.NewValidationFailedError("location name contains control characters")
	}

	if err := validate.Struct(loc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return NewLocation{}, apperrors.NewValidationFailedError(describe(verrs[0]))
		}
		return NewLocation{}, apperrors.NewValidationFailedError(err.Error())
	}
	return loc, nil
}

func parseCoordinate(axis, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperrors.NewValidationFailedError(axis + " coordinate must be a whole number")
	}
	return v, nil
}

func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		if fe.Kind().String() == "string" {
			return fe.Field() + " must be at most " + fe.Param() + " characters"
		}
		return fe.Field() + " must be at most " + fe.Param()
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	}
	return fe.Field() + " is invalid"
}
