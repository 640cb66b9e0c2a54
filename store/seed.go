package store

import (
	_ "embed"
	"encoding/json"

	"github.com/2582034744-ui/yisu-hotel-platform/models"
)

//go:embed seed.json
var seedJSON []byte

// Seed returns a fresh copy of the built-in dataset used when no snapshot
// can be loaded. min_price is recomputed from the rooms.
func Seed() Data {
	var data Data
	if err := json.Unmarshal(seedJSON, &data); err != nil {
		panic("store: embedded seed is invalid: " + err.Error())
	}
	for i := range data.Hotels {
		data.Hotels[i].RecomputeMinPrice()
	}
	if data.Bookings == nil {
		data.Bookings = []models.Booking{}
	}
	return data
}
