package loader

import (
	"encoding/json"
	"errors"
	"fmt"
)

// RawDocument is one trace file before normalization.
// Either layer may be absent.
type RawDocument struct {
	TripLayer  *RawTripLayer  `json:"trip_layer,omitempty"`
	PointLayer *RawPointLayer `json:"point_layer,omitempty"`
}

// RawTripLayer holds routes and a parallel day label per route.
type RawTripLayer struct {
	Routes [][][]float64 `json:"routes"`
	Day    []string      `json:"day,omitempty"`
}

// RawPointLayer holds N parallel arrays; index i describes event i.
// Coordinates decide N, the other arrays may be shorter.
type RawPointLayer struct {
	Coordinates [][]float64 `json:"coordinates"`
	Time        []string    `json:"time,omitempty"`
	Day         []string    `json:"day,omitempty"`
	Action      []string    `json:"action,omitempty"`
	POIName     []string    `json:"poi_name,omitempty"`
	TravelMode  []string    `json:"travel_mode,omitempty"`
}

var errEmptyDocument = errors.New("empty document")

// DecodeJSON parses a JSON trace file.
func DecodeJSON(data []byte) (*RawDocument, error) {
	if len(data) == 0 {
		return nil, errEmptyDocument
	}
	var doc RawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode trace json: %w", err)
	}
	return &doc, nil
}
