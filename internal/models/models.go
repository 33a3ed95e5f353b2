package models

import (
	"errors"
	"time"
)

var (
	ErrEmptyRange   = errors.New("item start must be before item end")
	ErrUnknownGroup = errors.New("item references an unknown group")
)

// Group represents one horizontal row of the timeline.
type Group struct {
	ID         string  `json:"id" yaml:"id"`
	Title      string  `json:"title" yaml:"title"`
	OrderIndex int     `json:"order_index" yaml:"order_index"`
	HeightPx   float32 `json:"height_px" yaml:"height_px"`
	ColorHex   string  `json:"color_hex" yaml:"color_hex"`
}

// Item is a time-bounded entity placed in exactly one group.
type Item struct {
	ID        string    `json:"id" yaml:"id"`
	GroupID   string    `json:"group_id" yaml:"group_id"`
	Title     string    `json:"title" yaml:"title"`
	Start     time.Time `json:"start" yaml:"start"`
	End       time.Time `json:"end" yaml:"end"`
	Movable   bool      `json:"movable" yaml:"movable"`
	Resizable bool      `json:"resizable" yaml:"resizable"`
	ColorHex  string    `json:"color_hex" yaml:"color_hex"`
}

// Duration returns the item's length on the time axis.
func (i Item) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Validate checks the item against the groups it may be placed in.
func (i Item) Validate(groups []Group) error {
	if !i.Start.Before(i.End) {
		return ErrEmptyRange
	}
	for _, g := range groups {
		if g.ID == i.GroupID {
			return nil
		}
	}
	return ErrUnknownGroup
}

// Schedule is the document the host application owns: a fixed ordered set
// of groups and the items placed in them.
type Schedule struct {
	Title  string    `json:"title" yaml:"title"`
	Start  time.Time `json:"start" yaml:"start"`
	End    time.Time `json:"end" yaml:"end"`
	Groups []Group   `json:"groups" yaml:"groups"`
	Items  []Item    `json:"items" yaml:"items"`
}

// SortedGroups returns the groups ordered by OrderIndex without mutating
// the schedule itself.
func (s *Schedule) SortedGroups() []Group {
	out := make([]Group, len(s.Groups))
	copy(out, s.Groups)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].OrderIndex < out[j-1].OrderIndex; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// ItemByID finds an item, or nil if absent.
func (s *Schedule) ItemByID(id string) *Item {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}

// GroupByID finds a group, or nil if absent.
func (s *Schedule) GroupByID(id string) *Group {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return &s.Groups[i]
		}
	}
	return nil
}
