package tarot

import (
	"sync"

	"golang.org/x/text/language"

	"github.com/deeklead/midori/internal/locale"
)

// Source provides the deck in a given language.
type Source interface {
	GetCards(tag language.Tag) ([]Card, error)
	GetCard(id string, tag language.Tag) (Card, bool, error)
}

// Repository serves the embedded deck, decoding it at most once per language.
// It is safe for concurrent use.
type Repository struct {
	data []byte

	mu    sync.Mutex
	cache map[string][]Card
}

// NewRepository returns a repository over the embedded deck file.
func NewRepository() *Repository {
	return NewRepositoryFromData(deckData)
}

// NewRepositoryFromData returns a repository over an arbitrary deck file.
func NewRepositoryFromData(data []byte) *Repository {
	return &Repository{data: data, cache: make(map[string][]Card)}
}

// GetCards returns the full deck in file order. The returned slice is a copy.
func (r *Repository) GetCards(tag language.Tag) ([]Card, error) {
	cards, err := r.load(tag)
	if err != nil {
		return nil, err
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out, nil
}

// GetCard looks up a single card. The bool is false when id is unknown.
func (r *Repository) GetCard(id string, tag language.Tag) (Card, bool, error) {
	cards, err := r.load(tag)
	if err != nil {
		return Card{}, false, err
	}
	for _, c := range cards {
		if c.ID == id {
			return c, true, nil
		}
	}
	return Card{}, false, nil
}

func (r *Repository) load(tag language.Tag) ([]Card, error) {
	key := locale.Lang(tag)

	r.mu.Lock()
	defer r.mu.Unlock()

	if cards, ok := r.cache[key]; ok {
		return cards, nil
	}
	cards, err := Decode(r.data, tag)
	if err != nil {
		return nil, err
	}
	r.cache[key] = cards
	return cards, nil
}

// Lookup is like GetCard but reports unknown ids as ErrCardNotFound.
func Lookup(src Source, id string, tag language.Tag) (Card, error) {
	card, ok, err := src.GetCard(id, tag)
	if err != nil {
		return Card{}, err
	}
	if !ok {
		return Card{}, ErrCardNotFound
	}
	return card, nil
}
