package eligibility

import (
	"errors"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrCourtIncompatible        = errors.New("court size does not suit the reservation audience")
	ErrBookingTooSoon           = errors.New("reservations must start at least 6 hours from now")
	ErrModificationWindowClosed = errors.New("reservations can only change more than 24 hours before start")
	ErrCourtCapacityExceeded    = errors.New("head count exceeds the court's max players")
	ErrSlotOverlap              = errors.New("court is already booked for an overlapping slot")
)

const (
	BookingLeadTime    = 6 * time.Hour
	ModificationWindow = 24 * time.Hour
)

// Rules holds the switchable checks. The zero value is the default rule set.
type Rules struct {
	EnforceSlotExclusivity bool
}

type Validator struct {
	Clock clock.Clock
	Rules Rules
}

func NewValidator(clock clock.Clock, rules Rules) *Validator {
	return &Validator{
		Clock: clock,
		Rules: rules,
	}
}

type BookingCheck struct {
	Court    *court.Court
	Start    time.Time
	Adults   int
	Children int
}

// ValidateBooking runs the creation checks in order and returns the resolved
// audience on success.
func (v *Validator) ValidateBooking(req BookingCheck) (reservation.Audience, error) {
	audience, err := reservation.ResolveAudience(req.Adults, req.Children)
	if err != nil {
		return reservation.Audience{}, err
	}
	if err := req.Court.CheckAvailable(); err != nil {
		return reservation.Audience{}, err
	}
	if err := CheckCourtCompatibility(audience.Kind(), req.Court.Size()); err != nil {
		return reservation.Audience{}, err
	}
	if audience.HeadCount() > req.Court.MaxPlayers() {
		return reservation.Audience{}, ErrCourtCapacityExceeded
	}
	if err := v.CheckBookingWindow(req.Start); err != nil {
		return reservation.Audience{}, err
	}
	return audience, nil
}

// CheckCourtCompatibility: child sessions need a child court, family sessions
// a child or 3vs3 court, adult sessions an adult court.
func CheckCourtCompatibility(kind reservation.AudienceKind, size court.Size) error {
	switch kind {
	case reservation.AudienceChild:
		if size == court.SizeChild {
			return nil
		}
	case reservation.AudienceFamily:
		if size == court.SizeChild || size == court.SizeThreeVsThree {
			return nil
		}
	case reservation.AudienceAdult:
		if size == court.SizeAdult {
			return nil
		}
	}
	return ErrCourtIncompatible
}

// CompatibleSizes lists the court sizes an audience kind may book.
func CompatibleSizes(kind reservation.AudienceKind) []court.Size {
	switch kind {
	case reservation.AudienceChild:
		return []court.Size{court.SizeChild}
	case reservation.AudienceFamily:
		return []court.Size{court.SizeChild, court.SizeThreeVsThree}
	case reservation.AudienceAdult:
		return []court.Size{court.SizeAdult}
	default:
		return nil
	}
}

// CheckBookingWindow requires start >= now + 6h.
func (v *Validator) CheckBookingWindow(start time.Time) error {
	if start.Before(v.Clock.Now().Add(BookingLeadTime)) {
		return ErrBookingTooSoon
	}
	return nil
}

// CheckModificationWindow requires the existing start to be strictly later
// than now + 24h.
func (v *Validator) CheckModificationWindow(existingStart time.Time) error {
	if !existingStart.After(v.Clock.Now().Add(ModificationWindow)) {
		return ErrModificationWindowClosed
	}
	return nil
}

func (v *Validator) CheckMaterialAttachment(c *court.Court, m *court.Material, attachedOfType int) error {
	return court.CheckAttachment(c, m, attachedOfType)
}

// CheckSlotExclusivity fails when any reservation other than ignoreID overlaps.
// It is a no-op unless the rule is switched on.
func (v *Validator) CheckSlotExclusivity(overlapping []*reservation.Reservation, ignoreID uuid.UUID) error {
	if !v.Rules.EnforceSlotExclusivity {
		return nil
	}
	for _, r := range overlapping {
		if r.ID() != ignoreID {
			return ErrSlotOverlap
		}
	}
	return nil
}
