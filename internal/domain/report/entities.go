package report

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("report not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrCorruptLocation: the persisted location column violates the
	// "lat,lon" invariant. A read-side 5xx, never a client error.
	ErrCorruptLocation = errors.New("corrupt location data")
)

// Status values are wire-compatible with the original numbering,
// including the 2→5 gap.
type Status int

const (
	StatusNew        Status = 0
	StatusInProgress Status = 1
	StatusResolved   Status = 2
	StatusHidden     Status = 5
)

type Action string

const (
	// ActionCycle rotates new → in_progress → resolved → new.
	ActionCycle Action = "cycle"
	// ActionHide parks a report in the hidden terminal state.
	ActionHide Action = "hide"
	// ActionRestore brings a hidden report back to new.
	ActionRestore Action = "restore"
)

// transitions is the closed table of allowed (status, action) moves.
// Cycling a hidden report is deliberately absent: the original's
// (status+1)%3 arithmetic silently resurrected hidden reports.
var transitions = map[Status]map[Action]Status{
	StatusNew: {
		ActionCycle: StatusInProgress,
		ActionHide:  StatusHidden,
	},
	StatusInProgress: {
		ActionCycle: StatusResolved,
		ActionHide:  StatusHidden,
	},
	StatusResolved: {
		ActionCycle: StatusNew,
		ActionHide:  StatusHidden,
	},
	StatusHidden: {
		ActionHide:    StatusHidden,
		ActionRestore: StatusNew,
	},
}

// Next resolves a transition or fails with ErrInvalidTransition.
func Next(cur Status, a Action) (Status, error) {
	if next, ok := transitions[cur][a]; ok {
		return next, nil
	}
	return cur, fmt.Errorf("%w: %d + %s", ErrInvalidTransition, cur, a)
}

// ValidStatus reports whether s belongs to the closed status set.
func ValidStatus(s Status) bool {
	_, ok := transitions[s]
	return ok
}

// Location is the parsed form of the "lat,lon" column.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (l Location) Valid() bool {
	return !math.IsNaN(l.Latitude) && !math.IsInf(l.Latitude, 0) &&
		!math.IsNaN(l.Longitude) && !math.IsInf(l.Longitude, 0) &&
		l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

// String renders the at-rest representation. strconv 'g' with -1
// precision keeps the round-trip lossless.
func (l Location) String() string {
	return strconv.FormatFloat(l.Latitude, 'g', -1, 64) + "," +
		strconv.FormatFloat(l.Longitude, 'g', -1, 64)
}

// ParseLocation splits a stored location string back into two floats.
// Anything that does not split into exactly two parseable finite floats
// is corruption, not user error.
func ParseLocation(s string) (Location, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Location{}, fmt.Errorf("%w: %q", ErrCorruptLocation, s)
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return Location{}, fmt.Errorf("%w: %q", ErrCorruptLocation, s)
	}
	loc := Location{Latitude: lat, Longitude: lon}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return Location{}, fmt.Errorf("%w: %q", ErrCorruptLocation, s)
	}
	return loc, nil
}

// Report is one disaster submission. Images holds the at-rest image
// entries comma-joined (base64 text or generated file names; both are
// comma-free, so the join round-trips).
type Report struct {
	ID           uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DisasterType string    `gorm:"size:64;not null;column:disaster_type" json:"disaster_type"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Importance   int       `gorm:"not null" json:"importance"`
	Images       string    `gorm:"type:text" json:"-"`
	Location     string    `gorm:"size:64;not null" json:"-"`
	Status       Status    `gorm:"not null;default:0" json:"status"`
	Comment      *string   `gorm:"type:text" json:"comment"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Report) TableName() string { return "reports" }

// ImageList splits the stored column back into ordered entries.
func (r *Report) ImageList() []string {
	if r.Images == "" {
		return nil
	}
	return strings.Split(r.Images, ",")
}

// SetImageList joins ordered entries into the stored column.
func (r *Report) SetImageList(entries []string) {
	r.Images = strings.Join(entries, ",")
}

// IsImportant is derived only; clients cannot set it.
func (r *Report) IsImportant() bool { return r.Importance > 5 }
