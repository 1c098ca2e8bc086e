package presenter

import (
	"fmt"
	"math"

	"routesync/internal/models/response_models"
	"routesync/pkg/routedata"
	"routesync/pkg/utils"
)

type ListStatus int

const (
	StatusLoading ListStatus = iota
	StatusLoaded
	StatusFailed
)

func (s ListStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureAuthRequired
	FailureOther
)

// Card is what the list shows for one saved route.
type Card struct {
	ID          string
	Title       string
	Description string
	Start       string
	Goal        string
	Modes       []routedata.Mode
	Time        string // "62 hrs"; empty without a primary path
	Price       string // "$3100"; empty without a primary path
	SavedOn     string
	Deleting    bool
}

type State struct {
	Status  ListStatus
	Failure FailureKind
	// Message is the text shown for a failed load.
	Message   string
	CanSignIn bool
	Cards     []Card
	// Empty is set once a load succeeds with no routes; the view offers
	// to create one.
	Empty            bool
	ConfirmingDelete string
}

type Notification struct {
	Title       string
	Message     string
	Destructive bool
}

func newCard(route response_models.SavedRouteResponse) Card {
	card := Card{
		ID:          route.ID,
		Title:       route.Name,
		Description: fmt.Sprintf("Route from %s to %s", route.Start, route.Goal),
		Start:       route.Start,
		Goal:        route.Goal,
		Modes:       []routedata.Mode{},
		SavedOn:     "Saved on " + utils.FormatDisplayDate(route.CreatedAt),
	}
	if route.Description != nil && *route.Description != "" {
		card.Description = *route.Description
	}

	// A document that no longer parses still gets a card, without badges
	// or totals.
	data, err := routedata.Parse(route.RouteData)
	if err != nil {
		return card
	}
	card.Modes = data.TransportModes()
	if primary := data.PrimaryPath(); primary != nil {
		card.Time = fmt.Sprintf("%d hrs", int64(math.Round(primary.TimeSum)))
		card.Price = fmt.Sprintf("$%d", int64(math.Round(primary.PriceSum)))
	}
	return card
}
