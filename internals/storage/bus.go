package storage

import "sync"

// Actions publiées sur le bus de mutations.
const (
	ActionAdded     = "added"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionValidated = "validated"
	ActionJustified = "justified"
)

// Event décrit une mutation du store. Remplace le polling périodique de
// l'ancien front : les vues intéressées s'abonnent au lieu de relire
// toutes les 2 secondes.
type Event struct {
	Collection string `json:"collection"`
	Action     string `json:"action"`
	ID         string `json:"id"`
}

type Bus struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewBus() *Bus {
	return &Bus{subs: map[int]chan Event{}}
}

// Subscribe retourne un canal d'événements et une fonction de
// désabonnement. Le canal est fermé au désabonnement.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan Event, 16)
	b.subs[id] = ch
	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
}

// Publish ne bloque jamais : un abonné saturé perd l'événement, il
// relira le store à sa prochaine requête.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
