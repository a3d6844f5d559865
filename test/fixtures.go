// Package test holds sample types the gosrc frontend derives bindings from
// in its tests.
package test

import "time"

// Vessel is a plain record exercising primitives, tags and optionality.
type Vessel struct {
	Name       string   `json:"name"`
	Tonnage    int64    `json:"tonnage"`
	Active     bool     `json:"active"`
	CallSign   *string  `json:"call_sign"`
	Flags      []string `json:"flags,omitempty"`
	Home       *Berth   `json:"home"`
	registered bool
	Ignored    string `json:"-"`
}

// Berth and Vessel reference each other through Moorings/AssignedTo.
type Berth struct {
	Number     int       `json:"number"`
	AssignedTo *Vessel   `json:"assigned_to"`
	OccupiedAt time.Time `json:"occupied_at"`
}

// Harbor exercises maps, slices of structs and embedded flattening.
type Harbor struct {
	Location
	Berths  []Berth            `json:"berths"`
	Traffic map[string]int     `json:"traffic"`
	Notes   map[string]string  `json:"notes,omitempty"`
	Extra   map[string]any     `json:"extra"`
	Photo   []byte             `json:"photo"`
	Depths  map[string]float64 `json:"depths"`
}

// Location is embedded into Harbor.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Moorings closes the Vessel/Berth cycle.
type Moorings struct {
	Vessel Vessel  `json:"vessel"`
	Berths []Berth `json:"berths"`
}

// Wrapped pairs a payload with bookkeeping shared by list endpoints.
type Wrapped[T any] struct {
	Value T   `json:"value"`
	Total int `json:"total"`
}

// Shipment exercises instantiated generic fields.
type Shipment struct {
	Cargo Wrapped[string] `json:"cargo"`
	Count Wrapped[int]    `json:"count"`
}

// Tariff is embedded into Dock under a name tag.
type Tariff struct {
	PerDay float64 `json:"per_day"`
}

// Dock exercises embedded pointers and tagged embeds: *Location flattens,
// Tariff stays a regular member under its tag name.
type Dock struct {
	*Location
	Tariff `json:"tariff"`
}
