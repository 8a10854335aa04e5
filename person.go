package tmdb

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
)

// A Person is a hydrated person entity. Search endpoints produce reduced
// persons; Person.getInfo produces full ones, which additionally carry the
// biography, birth details, also-known-as names and the filmography.
type Person struct {
	ID         int
	Name       string
	URL        *url.URL
	Popularity int
	Profiles   *ProfileImages

	// Full flavor only.
	Biography   string
	BirthPlace  string
	KnownMovies int
	Birthday    Date

	aka         *stringSet
	filmography *filmographySet

	flavor    Flavor
	rawJSON   string
	defaulted []string
}

// Flavor reports whether the person was hydrated from a reduced or a full
// payload.
func (p *Person) Flavor() Flavor {
	return p.flavor
}

// Profile returns the first-seen profile image group, or nil when the
// payload carried none.
func (p *Person) Profile() *ProfileImage {
	if len(p.Profiles.profiles) == 0 {
		return nil
	}

	return p.Profiles.profiles[0]
}

// Aka returns the person's also-known-as names in first-seen order. Only
// populated on full persons.
func (p *Person) Aka() []string {
	return p.aka.entries
}

// Filmography returns the person's movie credits in first-seen order. Only
// populated on full persons.
func (p *Person) Filmography() []FilmographyInfo {
	return p.filmography.entries
}

// JSONOrigin returns the exact JSON text the person was built from.
func (p *Person) JSONOrigin() string {
	return p.rawJSON
}

// JSONOriginIndented returns the originating JSON text, pretty printed.
func (p *Person) JSONOriginIndented() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(p.rawJSON), "", "  "); err != nil {
		return "", wrapErr(ErrMalformedPayload, err)
	}

	return buf.String(), nil
}

// DefaultedFields names the lenient fields whose extraction failed and
// which were left at their defaults during hydration.
func (p *Person) DefaultedFields() []string {
	return p.defaulted
}

// hydratePerson builds a Person from a raw payload with the same strict
// core / lenient extension split as hydrateMovie.
func hydratePerson(raw []byte, flavor Flavor) (*Person, error) {
	p, err := newPayload(raw)
	if err != nil {
		return nil, err
	}

	person := &Person{
		Profiles:    NewProfileImages(),
		aka:         newStringSet(),
		filmography: newFilmographySet(),
		flavor:      flavor,
		rawJSON:     string(p.raw),
	}

	if person.Popularity, err = p.integer("popularity"); err != nil {
		return person, err
	}
	if person.Name, err = p.str("name"); err != nil {
		return person, err
	}
	if err = hydrateURL(p, "url", &person.URL, &person.defaulted); err != nil {
		return person, err
	}
	if person.ID, err = p.integer("id"); err != nil {
		return person, err
	}
	if err = hydrateProfiles(p, person.Profiles); err != nil {
		return person, err
	}

	if flavor == FlavorReduced {
		return person, nil
	}

	if person.Biography, err = p.str("biography"); err != nil {
		return person, err
	}
	if person.BirthPlace, err = p.str("birthplace"); err != nil {
		return person, err
	}
	if person.KnownMovies, err = p.integer("known_movies"); err != nil {
		return person, err
	}

	birthday, err := p.str("birthday")
	if err != nil {
		return person, err
	}
	if person.Birthday, err = parseDate(birthday); err != nil {
		person.defaulted = append(person.defaulted, "birthday")
	}

	if err = hydrateAka(p, person.aka); err != nil {
		return person, err
	}
	if err = hydrateFilmography(p, person.filmography); err != nil {
		return person, err
	}

	return person, nil
}

func hydrateProfiles(p payload, profiles *ProfileImages) error {
	entries, err := p.array("profile")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		record, err := parseImageRecord(entry)
		if err != nil {
			return err
		}

		profiles.mergeProfile(record.id, profileSizeOf(record.size), record.url)
	}

	return nil
}

func hydrateAka(p payload, aka *stringSet) error {
	entries, err := p.array("known_as")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		alias, err := newPayload(entry)
		if err != nil {
			return err
		}

		name, err := alias.str("name")
		if err != nil {
			return err
		}

		aka.add(name)
	}

	return nil
}

func hydrateFilmography(p payload, filmography *filmographySet) error {
	entries, err := p.array("filmography")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		film, err := newPayload(entry)
		if err != nil {
			return err
		}

		info := FilmographyInfo{rawJSON: string(film.raw)}
		if info.Name, err = film.str("name"); err != nil {
			return err
		}
		if info.Character, err = film.str("character"); err != nil {
			return err
		}
		if info.URL, err = film.urlField("url"); err != nil && !errors.Is(err, ErrMalformedURL) {
			return err
		}
		if info.ID, err = film.integer("id"); err != nil {
			return err
		}
		if info.Job, err = film.str("job"); err != nil {
			return err
		}
		if info.Department, err = film.str("department"); err != nil {
			return err
		}

		filmography.add(info)
	}

	return nil
}
