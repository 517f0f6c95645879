package queries

import (
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/pack"
	"court-booking/internal/domain/player"
	"court-booking/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Views are filled by copier from the entities' accessor methods; fields whose
// domain type differs from the view type are set explicitly. copier does not
// follow optional ids returned by accessors, so those are copied here too.

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	cp := *id
	return &cp
}

func ToReservationView(r *reservation.Reservation) (*ReservationView, error) {
	var v ReservationView
	if err := copier.Copy(&v, r); err != nil {
		return nil, err
	}
	v.End = r.End()
	v.DurationMinutes = r.Duration().Minutes()
	v.PriceAmount = r.Price().String()
	v.DiscountRate = r.Discount().StringFixed(2)
	v.FundingKind = r.Funding().String()
	v.AudienceKind = r.Audience().Kind().String()
	v.Adults = r.Audience().Adults()
	v.Children = r.Audience().Children()
	v.PackID = cloneID(r.PackID())
	return &v, nil
}

func ToCourtView(c *court.Court) (*CourtView, error) {
	var v CourtView
	if err := copier.Copy(&v, c); err != nil {
		return nil, err
	}
	v.SizeName = c.Size().String()
	return &v, nil
}

func ToMaterialView(m *court.Material) (*MaterialView, error) {
	var v MaterialView
	if err := copier.Copy(&v, m); err != nil {
		return nil, err
	}
	v.MaterialType = m.Type().String()
	v.StatusName = m.Status().String()
	v.CourtID = cloneID(m.CourtID())
	return &v, nil
}

func ToSessionPackView(p *pack.SessionPack, now time.Time) (*SessionPackView, error) {
	var v SessionPackView
	if err := copier.Copy(&v, p); err != nil {
		return nil, err
	}
	v.StateName = p.State(now).String()
	return &v, nil
}

func ToPlayerView(p *player.Player) (*PlayerView, error) {
	var v PlayerView
	if err := copier.Copy(&v, p); err != nil {
		return nil, err
	}
	v.EmailAddress = p.Email().Value()
	v.Active = p.IsActive()
	return &v, nil
}

func toReservationViews(list []*reservation.Reservation) ([]*ReservationView, error) {
	views := make([]*ReservationView, 0, len(list))
	for _, r := range list {
		v, err := ToReservationView(r)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func toCourtViews(list []*court.Court) ([]*CourtView, error) {
	views := make([]*CourtView, 0, len(list))
	for _, c := range list {
		v, err := ToCourtView(c)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func toMaterialViews(list []*court.Material) ([]*MaterialView, error) {
	views := make([]*MaterialView, 0, len(list))
	for _, m := range list {
		v, err := ToMaterialView(m)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
