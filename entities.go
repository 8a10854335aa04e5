package tmdb

import (
	"net/url"
)

// A Flavor says which structural shape an entity was hydrated from. Search
// endpoints answer with reduced payloads carrying only a core field subset;
// the getInfo endpoints answer with full payloads that additionally carry
// biography/overview, dates, figures and the related-entity collections.
type Flavor int

const (
	FlavorReduced Flavor = iota
	FlavorFull
)

func (f Flavor) String() string {
	if f == FlavorReduced {
		return "reduced"
	}

	return "full"
}

// A Genre names a movie genre, with an optional reference URL on the site.
// Genre identity is the name.
type Genre struct {
	Name string
	URL  *url.URL
}

// A CastInfo is one cast or crew credit on a movie. Two credits are the
// same entry when they agree on person ID, character and job; duplicates
// across repeated hydration are suppressed while keeping first-seen order.
type CastInfo struct {
	ID         int
	Name       string
	Character  string
	Job        string
	Department string
	URL        *url.URL
	Thumb      *url.URL
}

type castKey struct {
	id        int
	character string
	job       string
}

// A castSet is an order-preserving duplicate-free collection of credits.
type castSet struct {
	entries []CastInfo
	seen    map[castKey]struct{}
}

func newCastSet() *castSet {
	return &castSet{seen: map[castKey]struct{}{}}
}

func (cs *castSet) add(entry CastInfo) {
	key := castKey{entry.ID, entry.Character, entry.Job}
	if _, ok := cs.seen[key]; ok {
		return
	}

	cs.seen[key] = struct{}{}
	cs.entries = append(cs.entries, entry)
}

// A FilmographyInfo is one movie credit in a person's filmography. Identity
// follows the same (ID, character, job) rule as CastInfo. Each entry keeps
// the exact JSON text it was built from.
type FilmographyInfo struct {
	ID         int
	Name       string
	Character  string
	Job        string
	Department string
	URL        *url.URL

	rawJSON string
}

// JSONOrigin returns the JSON text this filmography entry was built from.
func (fi FilmographyInfo) JSONOrigin() string {
	return fi.rawJSON
}

type filmographySet struct {
	entries []FilmographyInfo
	seen    map[castKey]struct{}
}

func newFilmographySet() *filmographySet {
	return &filmographySet{seen: map[castKey]struct{}{}}
}

func (fs *filmographySet) add(entry FilmographyInfo) {
	key := castKey{entry.ID, entry.Character, entry.Job}
	if _, ok := fs.seen[key]; ok {
		return
	}

	fs.seen[key] = struct{}{}
	fs.entries = append(fs.entries, entry)
}

// A genreSet keeps genres unique by name in first-seen order.
type genreSet struct {
	entries []Genre
	seen    map[string]struct{}
}

func newGenreSet() *genreSet {
	return &genreSet{seen: map[string]struct{}{}}
}

func (gs *genreSet) add(entry Genre) {
	if _, ok := gs.seen[entry.Name]; ok {
		return
	}

	gs.seen[entry.Name] = struct{}{}
	gs.entries = append(gs.entries, entry)
}

// A stringSet keeps strings unique in first-seen order; used for a
// person's also-known-as names.
type stringSet struct {
	entries []string
	seen    map[string]struct{}
}

func newStringSet() *stringSet {
	return &stringSet{seen: map[string]struct{}{}}
}

func (ss *stringSet) add(entry string) {
	if _, ok := ss.seen[entry]; ok {
		return
	}

	ss.seen[entry] = struct{}{}
	ss.entries = append(ss.entries, entry)
}
