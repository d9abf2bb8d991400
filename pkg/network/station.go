package network

import (
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type Station struct {
	ID          string   `json:"id" groups:"basic"`
	Code        string   `json:"code" groups:"basic"`
	Name        string   `json:"name" groups:"basic"`
	ChineseName string   `json:"chinese_name" groups:"basic"`
	Lines       []string `json:"lines" groups:"basic"`

	Location      *Location `json:"location,omitempty" groups:"detailed"`
	Accessibility []string  `json:"accessibility" groups:"detailed"`
}

// Location is a GeoJSON style point, coordinates are [longitude, latitude]
type Location struct {
	Type        string    `json:"-" groups:"detailed"`
	Coordinates []float64 `json:"coordinates" groups:"detailed"`
}

func NewLocation(latitude float64, longitude float64) *Location {
	return &Location{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}

func (s *Station) HasAccessibility(flag string) bool {
	for _, f := range s.Accessibility {
		if f == flag {
			return true
		}
	}

	return false
}

func (s *Station) clone() Station {
	var copied Station

	err := copier.CopyWithOption(&copied, s, copier.Option{DeepCopy: true})
	if err != nil {
		log.Error().Err(err).Str("station", s.ID).Msg("Failed to copy station")
		return *s
	}

	return copied
}
