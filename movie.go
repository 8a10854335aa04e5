package tmdb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// A Movie is a hydrated movie entity. Search endpoints produce reduced
// movies; Movie.getInfo produces full ones, which additionally carry the
// tagline, certification, figures, genres and cast. A movie is built once
// from a single payload and not mutated afterwards, except for its image
// registry which accumulates size variants during hydration.
type Movie struct {
	ID              int
	Name            string
	AlternativeName string
	ImdbID          string
	URL             *url.URL
	Overview        string
	Rating          float64
	Released        Date
	Images          *MovieImages

	// Full flavor only.
	Tagline       string
	Certification string
	Runtime       int
	Budget        int
	Revenue       int
	Homepage      *url.URL
	Trailer       *url.URL

	cast   *castSet
	genres *genreSet

	flavor    Flavor
	rawJSON   string
	defaulted []string
}

// Flavor reports whether the movie was hydrated from a reduced or a full
// payload. Full-only fields are never populated on a reduced movie, even
// when the payload happens to carry them.
func (m *Movie) Flavor() Flavor {
	return m.flavor
}

// Cast returns the movie's credits in first-seen order. Only populated on
// full movies.
func (m *Movie) Cast() []CastInfo {
	return m.cast.entries
}

// Genres returns the movie's genres in first-seen order. Only populated on
// full movies.
func (m *Movie) Genres() []Genre {
	return m.genres.entries
}

// JSONOrigin returns the exact JSON text the movie was built from.
func (m *Movie) JSONOrigin() string {
	return m.rawJSON
}

// JSONOriginIndented returns the originating JSON text, pretty printed.
func (m *Movie) JSONOriginIndented() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(m.rawJSON), "", "  "); err != nil {
		return "", wrapErr(ErrMalformedPayload, err)
	}

	return buf.String(), nil
}

// DefaultedFields names the lenient fields whose extraction failed and
// which were left at their defaults during hydration.
func (m *Movie) DefaultedFields() []string {
	return m.defaulted
}

// hydrateMovie builds a Movie from a raw payload, honoring the flavor
// switch. Core fields are strict: the first failure aborts hydration and
// the partially populated movie is returned alongside the error, with the
// fields hydrated so far still set. The extended full-only figures and
// URLs are lenient: failures are recorded on the defaulted-field list and
// hydration continues.
func hydrateMovie(raw []byte, flavor Flavor) (*Movie, error) {
	p, err := newPayload(raw)
	if err != nil {
		return nil, err
	}

	m := &Movie{
		Images:  NewMovieImages(),
		cast:    newCastSet(),
		genres:  newGenreSet(),
		flavor:  flavor,
		rawJSON: string(p.raw),
	}

	if m.Rating, err = p.float("rating"); err != nil {
		return m, err
	}
	if m.AlternativeName, err = p.str("alternative_name"); err != nil {
		return m, err
	}
	if m.Name, err = p.str("name"); err != nil {
		return m, err
	}
	if m.Overview, err = p.str("overview"); err != nil {
		return m, err
	}
	if m.ID, err = p.integer("id"); err != nil {
		return m, err
	}
	if err = hydrateURL(p, "url", &m.URL, &m.defaulted); err != nil {
		return m, err
	}
	if err = hydratePosters(p, m.Images); err != nil {
		return m, err
	}
	if err = hydrateBackdrops(p, m.Images); err != nil {
		return m, err
	}
	if m.ImdbID, err = p.str("imdb_id"); err != nil {
		return m, err
	}

	released, err := p.str("released")
	if err != nil {
		return m, err
	}
	if m.Released, err = parseDate(released); err != nil {
		// Field-local: an unparsable date leaves the date unset.
		m.defaulted = append(m.defaulted, "released")
	}

	if flavor == FlavorReduced {
		return m, nil
	}

	if err = hydrateGenres(p, m.genres); err != nil {
		return m, err
	}
	if m.Tagline, err = p.str("tagline"); err != nil {
		return m, err
	}
	if m.Certification, err = p.str("certification"); err != nil {
		return m, err
	}

	hydrateLenientURL(p, "trailer", &m.Trailer, &m.defaulted)
	hydrateLenientInt(p, "runtime", &m.Runtime, &m.defaulted)
	hydrateLenientURL(p, "homepage", &m.Homepage, &m.defaulted)

	if err = hydrateCast(p, m.cast); err != nil {
		return m, err
	}

	hydrateLenientInt(p, "budget", &m.Budget, &m.defaulted)
	hydrateLenientInt(p, "revenue", &m.Revenue, &m.defaulted)

	return m, nil
}

// hydrateURL reads a strictly-required URL field: a missing field aborts
// hydration, but a string that fails to parse is recovered as an absent
// URL and recorded as defaulted.
func hydrateURL(p payload, key string, dst **url.URL, defaulted *[]string) error {
	parsed, err := p.urlField(key)
	if errors.Is(err, ErrMalformedURL) {
		*defaulted = append(*defaulted, key)
		return nil
	}
	if err != nil {
		return err
	}

	*dst = parsed
	return nil
}

func hydrateLenientURL(p payload, key string, dst **url.URL, defaulted *[]string) {
	parsed, err := p.urlField(key)
	if err != nil {
		*defaulted = append(*defaulted, key)
		return
	}

	*dst = parsed
}

func hydrateLenientInt(p payload, key string, dst *int, defaulted *[]string) {
	parsed, err := p.integer(key)
	if err != nil {
		*defaulted = append(*defaulted, key)
		return
	}

	*dst = parsed
}

// An imageRecord is one entry of a posters/backdrops/profile list: the
// payload nests the actual data under an "image" key.
type imageRecord struct {
	id   string
	size string
	url  *url.URL
}

func parseImageRecord(entry json.RawMessage) (imageRecord, error) {
	wrapper, err := newPayload(entry)
	if err != nil {
		return imageRecord{}, err
	}

	inner, ok := wrapper.fields["image"]
	if !ok {
		return imageRecord{}, wrapErr(ErrMalformedPayload, fmt.Errorf(`image record missing "image"`))
	}

	img, err := newPayload(inner)
	if err != nil {
		return imageRecord{}, err
	}

	record := imageRecord{}
	if record.id, err = img.str("id"); err != nil {
		return imageRecord{}, err
	}
	if record.size, err = img.str("size"); err != nil {
		return imageRecord{}, err
	}

	// The url string must be present, but a malformed one merges as an
	// absent URL.
	if record.url, err = img.urlField("url"); err != nil && !errors.Is(err, ErrMalformedURL) {
		return imageRecord{}, err
	}

	return record, nil
}

func hydratePosters(p payload, images *MovieImages) error {
	entries, err := p.array("posters")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		record, err := parseImageRecord(entry)
		if err != nil {
			return err
		}

		images.mergePoster(record.id, posterSizeOf(record.size), record.url)
	}

	return nil
}

func hydrateBackdrops(p payload, images *MovieImages) error {
	entries, err := p.array("backdrops")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		record, err := parseImageRecord(entry)
		if err != nil {
			return err
		}

		images.mergeBackdrop(record.id, backdropSizeOf(record.size), record.url)
	}

	return nil
}

func hydrateGenres(p payload, genres *genreSet) error {
	entries, err := p.array("genres")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		genre, err := newPayload(entry)
		if err != nil {
			return err
		}

		name, err := genre.str("name")
		if err != nil {
			return err
		}

		genreURL, err := genre.urlField("url")
		if err != nil && !errors.Is(err, ErrMalformedURL) {
			return err
		}

		genres.add(Genre{Name: name, URL: genreURL})
	}

	return nil
}

func hydrateCast(p payload, cast *castSet) error {
	entries, err := p.array("cast")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		member, err := newPayload(entry)
		if err != nil {
			return err
		}

		info := CastInfo{}
		if info.Name, err = member.str("name"); err != nil {
			return err
		}
		if info.Character, err = member.str("character"); err != nil {
			return err
		}
		if info.Job, err = member.str("job"); err != nil {
			return err
		}
		if info.ID, err = member.integer("id"); err != nil {
			return err
		}
		if info.Department, err = member.str("department"); err != nil {
			return err
		}

		if info.Thumb, err = member.urlField("profile"); err != nil && !errors.Is(err, ErrMalformedURL) {
			return err
		}
		if info.URL, err = member.urlField("url"); err != nil && !errors.Is(err, ErrMalformedURL) {
			return err
		}

		cast.add(info)
	}

	return nil
}

// hydrateMovieImages parses only the image lists of a full movie payload,
// as answered by the Movie.getImages endpoint.
func hydrateMovieImages(raw []byte) (*MovieImages, error) {
	p, err := newPayload(raw)
	if err != nil {
		return nil, err
	}

	images := NewMovieImages()
	if err := hydratePosters(p, images); err != nil {
		return nil, err
	}
	if err := hydrateBackdrops(p, images); err != nil {
		return nil, err
	}

	return images, nil
}
