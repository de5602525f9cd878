package create_reservation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/ForestReservationService/internal/domain"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-() ]+$`)

// normalizeRequest убирает пробелы по краям текстовых полей
func normalizeRequest(req *Request) {
	req.OrganizationName = strings.TrimSpace(req.OrganizationName)
	req.ContactName = strings.TrimSpace(req.ContactName)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if notes == "" {
			req.Notes = nil
		} else {
			req.Notes = &notes
		}
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxParticipants int) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.TimeSlot.IsValid() {
		return fmt.Errorf("%w: invalid timeSlot %q", ErrInvalidInput, req.TimeSlot)
	}

	if err := validateText("organizationName", req.OrganizationName, domain.MaxOrganizationNameLength); err != nil {
		return err
	}

	if err := validateText("contactName", req.ContactName, domain.MaxContactNameLength); err != nil {
		return err
	}

	if err := validateText("phone", req.Phone, domain.MaxPhoneLength); err != nil {
		return err
	}
	if !phonePattern.MatchString(req.Phone) {
		return fmt.Errorf("%w: phone contains invalid characters", ErrInvalidInput)
	}

	if req.Participants < 1 || req.Participants > maxParticipants {
		return fmt.Errorf("%w: participants must be between 1 and %d", ErrInvalidInput, maxParticipants)
	}

	if !req.DesiredActivity.IsValid() {
		return fmt.Errorf("%w: invalid desiredActivity %q", ErrInvalidInput, req.DesiredActivity)
	}

	if !req.ParentParticipation.IsValid() {
		return fmt.Errorf("%w: invalid parentParticipation %q", ErrInvalidInput, req.ParentParticipation)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

func validateText(field, value string, maxLen int) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(value) > maxLen {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, maxLen)
	}
	return nil
}

// validateDate проверяет, что дата посещения не в прошлом
func validateDate(date, today time.Time) error {
	if domain.NormalizeDate(date).Before(today) {
		return ErrInvalidDate
	}
	return nil
}
