package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// LoadSeed reads the YAML trip at path and lays it over base: keys present in
// the file replace the matching field, absent keys keep base's value.
// ${VAR} references are expanded from the environment before parsing.
// Unknown keys are an error so typos do not go unnoticed.
func LoadSeed(path string, base domain.Trip) (domain.Trip, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("config.LoadSeed: %w", err)
	}
	return ParseSeed(raw, base)
}

// ParseSeed is LoadSeed over an in-memory document.
func ParseSeed(raw []byte, base domain.Trip) (domain.Trip, error) {
	trip := base.Clone()
	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(raw)))))
	dec.KnownFields(true)
	if err := dec.Decode(&trip); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("config.ParseSeed: %w", err)
	}

	// An explicit null in the file empties a list rather than leaving it nil.
	if trip.Schedule == nil {
		trip.Schedule = []domain.ItineraryDay{}
	}
	if trip.Flights == nil {
		trip.Flights = []domain.Flight{}
	}
	if trip.Shopping == nil {
		trip.Shopping = []domain.ShoppingItem{}
	}
	if trip.Expenses == nil {
		trip.Expenses = []domain.ExpenseEntry{}
	}
	return trip, nil
}
