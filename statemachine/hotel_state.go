package statemachine

import (
	"fmt"
	"strings"

	"github.com/2582034744-ui/yisu-hotel-platform/models"
)

// Actor is who triggers a moderation transition.
type Actor string

const (
	ActorMerchant Actor = "merchant"
	ActorAdmin    Actor = "admin"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.HotelStatus `json:"from"`
	To    models.HotelStatus `json:"to"`
	Actor Actor              `json:"actor"`
}

// validTransitions is the authoritative moderation lifecycle. Statuses are
// canonical here; approved is folded into published before lookup.
var validTransitions = []Transition{
	// Merchant submits a draft for review
	{From: models.StatusDraft, To: models.StatusPending, Actor: ActorMerchant},

	// Admin review
	{From: models.StatusPending, To: models.StatusPublished, Actor: ActorAdmin},
	{From: models.StatusPending, To: models.StatusRejected, Actor: ActorAdmin},

	// Online/offline toggle, no re-review needed
	{From: models.StatusPublished, To: models.StatusOffline, Actor: ActorAdmin},
	{From: models.StatusPublished, To: models.StatusOffline, Actor: ActorMerchant},
	{From: models.StatusOffline, To: models.StatusPublished, Actor: ActorAdmin},
	{From: models.StatusOffline, To: models.StatusPublished, Actor: ActorMerchant},

	// Every merchant edit resubmits the listing for review
	{From: models.StatusPending, To: models.StatusPending, Actor: ActorMerchant},
	{From: models.StatusPublished, To: models.StatusPending, Actor: ActorMerchant},
	{From: models.StatusRejected, To: models.StatusPending, Actor: ActorMerchant},
	{From: models.StatusOffline, To: models.StatusPending, Actor: ActorMerchant},
}

type transitionKey struct {
	From  models.HotelStatus
	To    models.HotelStatus
	Actor Actor
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all distinct next states from a given state.
func ValidTransitionsFrom(status models.HotelStatus) []models.HotelStatus {
	status = status.Canonical()
	var nexts []models.HotelStatus
	seen := map[models.HotelStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && t.To != status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks whether actor may move a listing from one state to another.
func CanTransition(from, to models.HotelStatus, actor Actor) error {
	key := transitionKey{From: from.Canonical(), To: to.Canonical(), Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return fmt.Errorf("invalid transition: %s → %s is not allowed for %s; valid transitions from %s are: %s",
		from.Canonical(), to.Canonical(), actor, from.Canonical(), describeValidFrom(from))
}

func describeValidFrom(status models.HotelStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none"
	}
	parts := make([]string, len(nexts))
	for i, s := range nexts {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// Transitions returns the full table, e.g. for documentation endpoints.
func Transitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}
