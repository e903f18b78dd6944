package notes

import (
	"math/rand"
	"strconv"
	"time"
)

// Store is the ordered, in-memory note list. Order is creation order and
// drives orbit placement. Not safe for concurrent use.
type Store struct {
	notes []Note
	now   func() time.Time
	rng   *rand.Rand
}

// NewStore creates an empty store. Nil arguments select the wall clock and
// a time-seeded random source.
func NewStore(now func() time.Time, rng *rand.Rand) *Store {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Store{now: now, rng: rng}
}

// Replace swaps the whole list, e.g. after loading from disk.
func (s *Store) Replace(notes []Note) {
	s.notes = append([]Note(nil), notes...)
}

// Create appends a blank note and returns it.
func (s *Store) Create() Note {
	now := s.now()
	n := Note{
		ID:        s.uniqueID(now),
		Title:     DefaultTitle,
		Color:     RandomColor(s.rng),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append(s.notes, n)
	return n
}

// Update replaces the note with the same ID. Title, content and colour are
// taken from n; an empty title becomes UntitledTitle.
func (s *Store) Update(n Note) (Note, error) {
	i := s.index(n.ID)
	if i < 0 {
		return Note{}, ErrNotFound
	}
	cur := s.notes[i]
	cur.Title = n.Title
	if cur.Title == "" {
		cur.Title = UntitledTitle
	}
	cur.Content = n.Content
	if n.Color != "" {
		cur.Color = n.Color
	}
	cur.UpdatedAt = s.now()
	s.notes[i] = cur
	return cur, nil
}

// Delete removes the note with id, keeping the order of the rest.
func (s *Store) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	return nil
}

func (s *Store) Get(id string) (Note, bool) {
	i := s.index(id)
	if i < 0 {
		return Note{}, false
	}
	return s.notes[i], true
}

// All returns a copy of every note in order.
func (s *Store) All() []Note {
	return append([]Note(nil), s.notes...)
}

// Filter returns the notes matching query in order. An empty query matches all.
func (s *Store) Filter(query string) []Note {
	if query == "" {
		return s.All()
	}
	var out []Note
	for _, n := range s.notes {
		if n.Matches(query) {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) Len() int {
	return len(s.notes)
}

func (s *Store) index(id string) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// uniqueID uses the creation time in milliseconds, bumped on collision.
func (s *Store) uniqueID(now time.Time) string {
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if s.index(id) < 0 {
			return id
		}
		ms++
	}
}
