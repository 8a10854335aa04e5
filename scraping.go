package tmdb

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// The site's home page carries two rotating movie lists with no API
// endpoint: the box office chart and the most popular chart. The page is
// split on a literal marker substring; everything before it belongs to the
// box office section, everything after it to the most popular section.
const listingMarker = "first most-popular"

var movieIDPattern = regexp.MustCompile(`/movie/(\d+)`)

// A ListingSection selects which of the two scraped home page lists to
// read.
type ListingSection int

const (
	BoxOffice ListingSection = iota
	MostPopular
)

func (s ListingSection) String() string {
	if s == BoxOffice {
		return "box office"
	}

	return "most popular"
}

// ExtractListingIDs pulls the movie IDs of one listing section out of the
// home page HTML. Every "/movie/<digits>" occurrence in the selected
// section contributes an ID; digit runs that do not parse are skipped
// silently. The returned IDs are duplicate-free and keep first-seen order.
//
// When the marker substring is absent from the page the box office section
// still reads the whole body, but the most popular section is undefined
// and reported as a malformed payload.
func ExtractListingIDs(html string, section ListingSection) ([]int, error) {
	parts := strings.SplitN(html, listingMarker, 2)
	if section == MostPopular && len(parts) < 2 {
		return nil, wrapErr(ErrMalformedPayload, fmt.Errorf("listing marker %q not found", listingMarker))
	}

	var (
		matches = movieIDPattern.FindAllStringSubmatch(parts[section], -1)
		seen    = map[int]struct{}{}
		ids     = make([]int, 0, len(matches))
	)

	for _, match := range matches {
		id, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids, nil
}

// A ListingEntry is one scraped movie of a listing section: the ID from
// the regex extraction plus the title text of the matching anchor, when
// the page carries one.
type ListingEntry struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func (e ListingEntry) validateScraping() error {
	err := validation.ValidateStruct(
		&e,
		validation.Field(
			&e.ID,
			validation.Required,
			validation.Min(1),
		),
	)
	if err == nil {
		return nil
	}

	return wrapErr(ErrValidationFailure, err)
}

// scrapeListingEntries combines the ID extraction with a title pass over
// the same page: every "/movie/<id>" anchor with non-empty text supplies
// the title for that ID.
func scrapeListingEntries(html string, section ListingSection) ([]ListingEntry, error) {
	ids, err := ExtractListingIDs(html, section)
	if err != nil {
		return nil, err
	}

	titles, err := scrapeListingTitles(html)
	if err != nil {
		return nil, wrapErr(ErrSiteScrapingFailure, err)
	}

	var (
		entries      = make([]ListingEntry, 0, len(ids))
		scrapingErrs = make([]error, 0)
	)

	for _, id := range ids {
		entry := ListingEntry{ID: id, Title: titles[id]}
		if err := entry.validateScraping(); err != nil {
			scrapingErrs = append(scrapingErrs, err)
			continue
		}

		entries = append(entries, entry)
	}

	if err := errors.Join(scrapingErrs...); err != nil {
		return nil, wrapErr(ErrSiteScrapingFailure, err)
	}

	return entries, nil
}

func scrapeListingTitles(html string) (map[int]string, error) {
	document, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	titles := map[int]string{}
	document.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		match := movieIDPattern.FindStringSubmatch(href)
		if match == nil {
			return
		}

		id, err := strconv.Atoi(match[1])
		if err != nil {
			return
		}

		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}

		if _, ok := titles[id]; !ok {
			titles[id] = text
		}
	})

	return titles, nil
}
