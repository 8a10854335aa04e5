package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/moviekit/tmdb21/internal/validate"
)

const (
	DefaultAPIBaseURL = "http://api.themoviedb.org/2.1"
	DefaultSiteURL    = "http://www.themoviedb.org"
	DefaultLanguage   = "en"
)

// Endpoint path segments of the v2.1 API. Every endpoint URL is built as
// {base}/{operation}/{language}/{mode}/{api key}/{parameter}.
const (
	movieSearchPath  = "Movie.search"
	movieInfoPath    = "Movie.getInfo"
	movieImagesPath  = "Movie.getImages"
	personSearchPath = "Person.search"
	personInfoPath   = "Person.getInfo"

	apiModeSegment = "json"
)

const defaultRequestTimeout = time.Minute

// A ClientConfig carries the process configuration a Client reads on every
// call: the API key, the response language and the endpoint bases. The
// client treats it as read-only; there is no global mutable settings
// object.
//
// An empty APIKey is not a configuration error. Operations that need a key
// skip the call and yield absent results instead.
type ClientConfig struct {
	APIBaseURL     string        `validate:"required,url"`
	SiteURL        string        `validate:"required,url"`
	APIKey         string        `validate:"omitempty,alphanum"`
	Language       string        `validate:"required,len=2"`
	RequestTimeout time.Duration `validate:"min=0"`
	Debug          bool          `validate:"boolean"`
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		APIBaseURL:     DefaultAPIBaseURL,
		SiteURL:        DefaultSiteURL,
		APIKey:         "",
		Language:       DefaultLanguage,
		RequestTimeout: defaultRequestTimeout,
		Debug:          false,
	}
}

// A Client issues the blocking HTTP requests of the v2.1 API and hands the
// raw bodies to the entity hydrators and the listing scraper. All methods
// are synchronous; DeepSearchMovies and the full-movie listing methods fan
// out into one additional Movie.getInfo round-trip per ID, sequentially.
type Client struct {
	config    ClientConfig
	netClient *http.Client
	logger    *log.Logger
}

// NewClient returns a client with the default configuration and no API
// key. Set an API key through NewClientWithConfig to enable the JSON
// endpoints.
func NewClient() *Client {
	config := DefaultClientConfig()
	client, _ := NewClientWithConfig(&config)
	return client
}

func NewClientWithConfig(config *ClientConfig) (*Client, error) {
	if err := validate.Struct("ClientConfig", config); err != nil {
		return nil, wrapErr(ErrValidationFailure, err)
	}

	return &Client{
		config:    *config,
		netClient: &http.Client{Timeout: config.RequestTimeout},
		logger:    newLogger(config.Debug),
	}, nil
}

// SearchMovies searches for movies by free-text query and returns reduced
// movies built directly from the search-result array. A missing API key
// or empty query yields a nil slice and nil error. Entities whose
// hydration failed on a required field are still returned with the fields
// hydrated so far; the joined hydration errors accompany them.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]*Movie, error) {
	body, ok, err := c.fetchKeyed(ctx, movieSearchPath, query)
	if err != nil || !ok {
		return nil, err
	}

	if isNothingFound(body) {
		c.logger.Debug("search returned no results", "query", query)
		return []*Movie{}, nil
	}

	elements, err := searchResultArray(body)
	if err != nil {
		return nil, err
	}

	var (
		movies      = make([]*Movie, 0, len(elements))
		hydrateErrs = make([]error, 0)
	)

	for _, element := range elements {
		movie, err := hydrateMovie(element, FlavorReduced)
		if err != nil {
			hydrateErrs = append(hydrateErrs, err)
		}
		if movie != nil {
			movies = append(movies, movie)
		}
	}

	return movies, joinErrs(hydrateErrs)
}

// DeepSearchMovies searches for movies and resolves every search result to
// its full flavor, issuing one Movie.getInfo round-trip per result ID in
// result order. This is the expensive variant: a search with N hits costs
// N+1 requests.
func (c *Client) DeepSearchMovies(ctx context.Context, query string) ([]*Movie, error) {
	ids, ok, err := c.searchResultIDs(ctx, movieSearchPath, query)
	if err != nil || !ok {
		return nil, err
	}

	movies := make([]*Movie, 0, len(ids))
	for _, id := range ids {
		movie, err := c.GetMovieInfo(ctx, id)
		if err != nil {
			return nil, err
		}
		if movie == nil {
			c.logger.Debug("deep search hit vanished", "id", id)
			continue
		}

		movies = append(movies, movie)
	}

	return movies, nil
}

// GetMovieInfo fetches one movie by ID and hydrates its full flavor. A
// missing API key, or an ID the service answers with its nothing-found
// sentinel, yields a nil movie and nil error.
func (c *Client) GetMovieInfo(ctx context.Context, id int) (*Movie, error) {
	body, ok, err := c.fetchKeyed(ctx, movieInfoPath, strconv.Itoa(id))
	if err != nil || !ok {
		return nil, err
	}

	if isNothingFound(body) {
		c.logger.Debug("no movie found", "id", id)
		return nil, nil
	}

	c.logger.Debug("hydrating movie", "id", id)
	return hydrateMovie(body, FlavorFull)
}

// GetMovieImages fetches one movie by ID and parses only the poster and
// backdrop lists of its payload.
func (c *Client) GetMovieImages(ctx context.Context, id int) (*MovieImages, error) {
	body, ok, err := c.fetchKeyed(ctx, movieImagesPath, strconv.Itoa(id))
	if err != nil || !ok {
		return nil, err
	}

	if isNothingFound(body) {
		c.logger.Debug("no movie images found", "id", id)
		return nil, nil
	}

	return hydrateMovieImages(body)
}

// SearchPeople searches for people by free-text query and returns reduced
// persons, with the same contract as SearchMovies.
func (c *Client) SearchPeople(ctx context.Context, query string) ([]*Person, error) {
	body, ok, err := c.fetchKeyed(ctx, personSearchPath, query)
	if err != nil || !ok {
		return nil, err
	}

	if isNothingFound(body) {
		c.logger.Debug("search returned no results", "query", query)
		return []*Person{}, nil
	}

	elements, err := searchResultArray(body)
	if err != nil {
		return nil, err
	}

	var (
		people      = make([]*Person, 0, len(elements))
		hydrateErrs = make([]error, 0)
	)

	for _, element := range elements {
		person, err := hydratePerson(element, FlavorReduced)
		if err != nil {
			hydrateErrs = append(hydrateErrs, err)
		}
		if person != nil {
			people = append(people, person)
		}
	}

	return people, joinErrs(hydrateErrs)
}

// DeepSearchPeople searches for people and resolves every result to its
// full flavor with one Person.getInfo round-trip per result ID.
func (c *Client) DeepSearchPeople(ctx context.Context, query string) ([]*Person, error) {
	ids, ok, err := c.searchResultIDs(ctx, personSearchPath, query)
	if err != nil || !ok {
		return nil, err
	}

	people := make([]*Person, 0, len(ids))
	for _, id := range ids {
		person, err := c.GetPersonInfo(ctx, id)
		if err != nil {
			return nil, err
		}
		if person == nil {
			c.logger.Debug("deep search hit vanished", "id", id)
			continue
		}

		people = append(people, person)
	}

	return people, nil
}

// GetPersonInfo fetches one person by ID and hydrates their full flavor,
// with the same contract as GetMovieInfo.
func (c *Client) GetPersonInfo(ctx context.Context, id int) (*Person, error) {
	body, ok, err := c.fetchKeyed(ctx, personInfoPath, strconv.Itoa(id))
	if err != nil || !ok {
		return nil, err
	}

	if isNothingFound(body) {
		c.logger.Debug("no person found", "id", id)
		return nil, nil
	}

	c.logger.Debug("hydrating person", "id", id)
	return hydratePerson(body, FlavorFull)
}

// BoxOfficeIDs scrapes the site's home page for the movie IDs of the box
// office chart. The listing page needs no API key.
func (c *Client) BoxOfficeIDs(ctx context.Context) ([]int, error) {
	return c.listingIDs(ctx, BoxOffice)
}

// MostPopularIDs scrapes the site's home page for the movie IDs of the
// most popular chart.
func (c *Client) MostPopularIDs(ctx context.Context) ([]int, error) {
	return c.listingIDs(ctx, MostPopular)
}

// BoxOffice resolves the box office chart to full movies, one
// Movie.getInfo round-trip per scraped ID. A missing API key yields a nil
// slice and nil error.
func (c *Client) BoxOffice(ctx context.Context) ([]*Movie, error) {
	return c.listingMovies(ctx, BoxOffice)
}

// MostPopular resolves the most popular chart to full movies, one
// Movie.getInfo round-trip per scraped ID.
func (c *Client) MostPopular(ctx context.Context) ([]*Movie, error) {
	return c.listingMovies(ctx, MostPopular)
}

// BoxOfficeListing scrapes the box office chart into listing entries that
// pair each ID with the anchor title found on the page.
func (c *Client) BoxOfficeListing(ctx context.Context) ([]ListingEntry, error) {
	return c.listingEntries(ctx, BoxOffice)
}

// MostPopularListing scrapes the most popular chart into listing entries.
func (c *Client) MostPopularListing(ctx context.Context) ([]ListingEntry, error) {
	return c.listingEntries(ctx, MostPopular)
}

func (c *Client) listingIDs(ctx context.Context, section ListingSection) ([]int, error) {
	html, err := c.fetchListingPage(ctx)
	if err != nil {
		return nil, err
	}

	return ExtractListingIDs(html, section)
}

func (c *Client) listingEntries(ctx context.Context, section ListingSection) ([]ListingEntry, error) {
	html, err := c.fetchListingPage(ctx)
	if err != nil {
		return nil, err
	}

	return scrapeListingEntries(html, section)
}

func (c *Client) listingMovies(ctx context.Context, section ListingSection) ([]*Movie, error) {
	if c.config.APIKey == "" {
		c.logger.Debug("no api key configured, skipping call", "section", section.String())
		return nil, nil
	}

	ids, err := c.listingIDs(ctx, section)
	if err != nil {
		return nil, err
	}

	movies := make([]*Movie, 0, len(ids))
	for _, id := range ids {
		movie, err := c.GetMovieInfo(ctx, id)
		if err != nil {
			return nil, err
		}
		if movie == nil {
			c.logger.Debug("listing entry vanished", "id", id)
			continue
		}

		movies = append(movies, movie)
	}

	return movies, nil
}

// searchResultIDs runs a search call and reads only the result IDs, for
// the deep search fan-out.
func (c *Client) searchResultIDs(ctx context.Context, path, query string) ([]int, bool, error) {
	body, ok, err := c.fetchKeyed(ctx, path, query)
	if err != nil || !ok {
		return nil, ok, err
	}

	if isNothingFound(body) {
		c.logger.Debug("search returned no results", "query", query)
		return []int{}, true, nil
	}

	elements, err := searchResultArray(body)
	if err != nil {
		return nil, true, err
	}

	ids := make([]int, 0, len(elements))
	for _, element := range elements {
		hit, err := newPayload(element)
		if err != nil {
			return nil, true, err
		}

		id, err := hit.integer("id")
		if err != nil {
			return nil, true, err
		}

		ids = append(ids, id)
	}

	return ids, true, nil
}

// fetchKeyed performs one keyed API call. The boolean reports whether the
// call was made at all: an empty API key or empty parameter is a defined
// skip condition, not an error.
func (c *Client) fetchKeyed(ctx context.Context, path, param string) ([]byte, bool, error) {
	if c.config.APIKey == "" {
		c.logger.Debug("no api key configured, skipping call", "path", path)
		return nil, false, nil
	}

	if param == "" {
		c.logger.Debug("empty parameter, skipping call", "path", path)
		return nil, false, nil
	}

	body, err := c.fetchBody(ctx, c.getEndpointURL(path, param))
	return body, true, err
}

func (c *Client) fetchListingPage(ctx context.Context) (string, error) {
	body, err := c.fetchBody(ctx, c.config.SiteURL+"/")
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// getEndpointURL builds the fully qualified URL of a keyed API call from
// the configured base, language and key, escaping the caller's parameter.
func (c *Client) getEndpointURL(path, param string) string {
	return fmt.Sprintf(
		"%s/%s/%s/%s/%s/%s",
		c.config.APIBaseURL,
		path,
		c.config.Language,
		apiModeSegment,
		c.config.APIKey,
		url.PathEscape(param),
	)
}

// fetchBody performs exactly one blocking GET and reads the whole response
// body into memory. Requests are never retried.
func (c *Client) fetchBody(ctx context.Context, targetURL string) ([]byte, error) {
	c.logger.Debug("fetching", "url", targetURL)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, http.NoBody)
	if err != nil {
		return nil, wrapErr(ErrTransportFailure, err)
	}

	response, err := c.netClient.Do(request)
	if err != nil {
		return nil, wrapErr(ErrTransportFailure, err)
	}

	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, wrapErr(ErrTransportFailure, err)
	}

	return body, nil
}

// searchResultArray parses a search response body into its elements. The
// nothing-found sentinel is checked by the caller first; anything else
// must be a JSON array, including the service's occasional literal "[]",
// which therefore hydrates to an empty result rather than being treated
// as the sentinel.
func searchResultArray(body []byte) ([]json.RawMessage, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(body, &elements); err != nil {
		return nil, wrapErr(ErrMalformedPayload, fmt.Errorf("search response: %w", err))
	}

	return elements, nil
}

func joinErrs(errs []error) error {
	return errors.Join(errs...)
}
