package room

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidZone    = errors.New("invalid zone")
	ErrInvalidQuality = errors.New("invalid quality")
	ErrInvalidStatus  = errors.New("invalid room status")
	ErrNegativePrice  = errors.New("nightly price cannot be negative")
)

// Zone is the inventory floor classification grouping pods by guest segment.
type Zone string

const (
	ZoneWomenOnly Zone = "women-only"
	ZoneMenOnly   Zone = "men-only"
	ZoneCouples   Zone = "couples"
	ZoneBusiness  Zone = "business"
)

func (z Zone) IsValid() bool {
	switch z {
	case ZoneWomenOnly, ZoneMenOnly, ZoneCouples, ZoneBusiness:
		return true
	default:
		return false
	}
}

func (z Zone) String() string { return string(z) }

// Fallback returns the adjacent zone consulted when the requested zone has no
// availability. Single-gender zones fall back to the mixed business floor;
// couples and business have no fallback.
func (z Zone) Fallback() (Zone, bool) {
	switch z {
	case ZoneWomenOnly, ZoneMenOnly:
		return ZoneBusiness, true
	default:
		return "", false
	}
}

type Quality string

const (
	QualityClassic Quality = "classic"
	QualityDeluxe  Quality = "deluxe"
)

func (q Quality) IsValid() bool {
	switch q {
	case QualityClassic, QualityDeluxe:
		return true
	default:
		return false
	}
}

func (q Quality) String() string { return string(q) }

// Status is the administrative lifecycle override, independent of the
// date-based availability derived from reservations and holds.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
	StatusReserved    Status = "reserved"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance, StatusReserved:
		return true
	default:
		return false
	}
}

func (s Status) String() string { return string(s) }

// Room is the external inventory entity this core consumes. Date-based
// availability is never stored here; it is derived per query.
type Room struct {
	id                uuid.UUID
	number            string
	zone              Zone
	quality           Quality
	status            Status
	nightlyPriceCents int32
}

func NewRoom(id uuid.UUID, number string, zone Zone, quality Quality, status Status, nightlyPriceCents int32) (*Room, error) {
	if !zone.IsValid() {
		return nil, ErrInvalidZone
	}
	if !quality.IsValid() {
		return nil, ErrInvalidQuality
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if nightlyPriceCents < 0 {
		return nil, ErrNegativePrice
	}
	return &Room{
		id:                id,
		number:            number,
		zone:              zone,
		quality:           quality,
		status:            status,
		nightlyPriceCents: nightlyPriceCents,
	}, nil
}

func (r *Room) ID() uuid.UUID            { return r.id }
func (r *Room) Number() string           { return r.number }
func (r *Room) Zone() Zone               { return r.zone }
func (r *Room) Quality() Quality         { return r.quality }
func (r *Room) Status() Status           { return r.status }
func (r *Room) NightlyPriceCents() int32 { return r.nightlyPriceCents }

// Bookable reports whether the administrative status allows new holds at all.
func (r *Room) Bookable() bool {
	return r.status == StatusAvailable
}
