package booking

import (
	"errors"

	"github.com/google/uuid"
)

type ActorType string

const (
	ActorClient   ActorType = "client"
	ActorProvider ActorType = "provider"
)

var ErrInvalidActorType = errors.New("actor type must be client or provider")

func NewActorType(s string) (ActorType, error) {
	switch ActorType(s) {
	case ActorClient, ActorProvider:
		return ActorType(s), nil
	default:
		return "", ErrInvalidActorType
	}
}

func (t ActorType) String() string {
	return string(t)
}

// Opposite returns the counter-party side: the reviewee of a client review
// is a provider and vice versa.
func (t ActorType) Opposite() ActorType {
	if t == ActorClient {
		return ActorProvider
	}
	return ActorClient
}

// Actor is the authenticated party acting on a booking. Identity comes from
// the auth collaborator; the core never re-derives it from payloads.
//
// The capability set below is the whole role model: which transitions each
// side may trigger.
type Actor struct {
	ID   uuid.UUID
	Type ActorType
}

func (a Actor) CanConfirm() bool    { return a.Type == ActorProvider }
func (a Actor) CanComplete() bool   { return a.Type == ActorProvider }
func (a Actor) CanCancel() bool     { return true }
func (a Actor) CanReschedule() bool { return a.Type == ActorClient }
