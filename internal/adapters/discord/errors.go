package discord

import (
	"errors"
	"fmt"
	"net/http"

	"clipbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

// codeAlreadyAcknowledged is the JSON error code Discord returns for a second
// initial response to the same interaction.
const codeAlreadyAcknowledged = 40060

// classify maps REST failures onto the domain's lookup errors. Anything that
// is not a definite "gone" or "forbidden" is returned unchanged.
func classify(err error, what string) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return err
	}

	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeUnknownRole, discordgo.ErrCodeUnknownGuild:
			return fmt.Errorf("%s: %w: %w", what, domain.ErrResourceNotFound, err)
		case discordgo.ErrCodeMissingAccess, discordgo.ErrCodeMissingPermissions:
			return fmt.Errorf("%s: %w: %w", what, domain.ErrResourceAccessDenied, err)
		}
	}

	if restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w: %w", what, domain.ErrResourceNotFound, err)
		case http.StatusForbidden:
			return fmt.Errorf("%s: %w: %w", what, domain.ErrResourceAccessDenied, err)
		}
	}

	return err
}

// isAcknowledged reports whether the platform rejected a response because
// the interaction was already answered.
func isAcknowledged(err error) bool {
	var restErr *discordgo.RESTError
	return errors.As(err, &restErr) && restErr.Message != nil &&
		restErr.Message.Code == codeAlreadyAcknowledged
}
