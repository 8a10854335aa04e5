package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "0123456789abcdef"

func testClientFor(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	config := DefaultClientConfig()
	config.APIBaseURL = server.URL
	config.SiteURL = server.URL
	config.APIKey = testAPIKey
	config.RequestTimeout = time.Minute

	client, err := NewClientWithConfig(&config)
	require.NoError(t, err)
	return client
}

func movieInfoBody(id int) string {
	return fmt.Sprintf(`[{
		"rating": 7.0,
		"alternative_name": "",
		"name": "Movie %d",
		"overview": "overview",
		"id": %d,
		"url": "http://www.themoviedb.org/movie/%d",
		"posters": [],
		"backdrops": [],
		"imdb_id": "tt%07d",
		"released": "2008-10-30",
		"genres": [],
		"tagline": "tagline",
		"certification": "R",
		"trailer": "http://example.com/trailer",
		"runtime": 100,
		"homepage": "http://example.com",
		"cast": [],
		"budget": 1,
		"revenue": 2
	}]`, id, id, id, id)
}

func reducedMovieBody(id int) string {
	return fmt.Sprintf(`{
		"rating": 7.0,
		"alternative_name": "",
		"name": "Movie %d",
		"overview": "overview",
		"id": %d,
		"url": "http://www.themoviedb.org/movie/%d",
		"posters": [],
		"backdrops": [],
		"imdb_id": "tt%07d",
		"released": "2008-10-30"
	}`, id, id, id, id)
}

func TestNewClientWithConfig(t *testing.T) {
	t.Run("accepts the default configuration", func(t *testing.T) {
		config := DefaultClientConfig()
		client, err := NewClientWithConfig(&config)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("rejects an invalid language code", func(t *testing.T) {
		config := DefaultClientConfig()
		config.Language = "english"
		_, err := NewClientWithConfig(&config)
		assert.ErrorIs(t, err, ErrValidationFailure)
	})

	t.Run("rejects a non-URL API base", func(t *testing.T) {
		config := DefaultClientConfig()
		config.APIBaseURL = "not a url"
		_, err := NewClientWithConfig(&config)
		assert.ErrorIs(t, err, ErrValidationFailure)
	})
}

func TestGetEndpointURL(t *testing.T) {
	config := DefaultClientConfig()
	config.APIKey = testAPIKey
	client, err := NewClientWithConfig(&config)
	require.NoError(t, err)

	t.Run("concatenates base, operation, language, mode, key and parameter", func(t *testing.T) {
		received := client.getEndpointURL(movieInfoPath, "550")
		expected := fmt.Sprintf("%s/Movie.getInfo/en/json/%s/550", DefaultAPIBaseURL, testAPIKey)
		assert.Equal(t, expected, received)
	})

	t.Run("escapes the free-text parameter", func(t *testing.T) {
		received := client.getEndpointURL(movieSearchPath, "Alien 3")
		assert.True(t, strings.HasSuffix(received, "/Alien%203"))
	})
}

func TestSearchMovies(t *testing.T) {
	t.Run("returns reduced movies built from the result array", func(t *testing.T) {
		serveMux := &http.ServeMux{}
		serveMux.HandleFunc("/Movie.search/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "[%s,%s]", reducedMovieBody(348), reducedMovieBody(679))
		})

		server := httptest.NewServer(serveMux)
		defer server.Close()

		client := testClientFor(t, server)
		movies, err := client.SearchMovies(context.TODO(), "Alien")
		require.NoError(t, err)
		require.Len(t, movies, 2)
		assert.Equal(t, 348, movies[0].ID)
		assert.Equal(t, 679, movies[1].ID)
		assert.Equal(t, FlavorReduced, movies[0].Flavor())
	})

	t.Run("returns an empty result for the nothing-found sentinel", func(t *testing.T) {
		serveMux := &http.ServeMux{}
		serveMux.HandleFunc("/Movie.search/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `["Nothing found."]`)
		})

		server := httptest.NewServer(serveMux)
		defer server.Close()

		client := testClientFor(t, server)
		movies, err := client.SearchMovies(context.TODO(), "Alien")
		require.NoError(t, err)
		assert.NotNil(t, movies)
		assert.Empty(t, movies)
	})

	t.Run("skips the call entirely without an API key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("request issued despite missing API key")
		}))
		defer server.Close()

		config := DefaultClientConfig()
		config.APIBaseURL = server.URL
		config.SiteURL = server.URL
		client, err := NewClientWithConfig(&config)
		require.NoError(t, err)

		movies, err := client.SearchMovies(context.TODO(), "Alien")
		require.NoError(t, err)
		assert.Nil(t, movies)
	})

	t.Run("skips the call for an empty query", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("request issued despite empty query")
		}))
		defer server.Close()

		client := testClientFor(t, server)
		movies, err := client.SearchMovies(context.TODO(), "")
		require.NoError(t, err)
		assert.Nil(t, movies)
	})

	t.Run("returns partial movies alongside hydration errors", func(t *testing.T) {
		serveMux := &http.ServeMux{}
		serveMux.HandleFunc("/Movie.search/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `[%s,{"rating": 5.0}]`, reducedMovieBody(348))
		})

		server := httptest.NewServer(serveMux)
		defer server.Close()

		client := testClientFor(t, server)
		movies, err := client.SearchMovies(context.TODO(), "Alien")
		assert.ErrorIs(t, err, ErrMalformedPayload)
		require.Len(t, movies, 2)
		assert.Equal(t, 348, movies[0].ID)
		assert.Equal(t, 5.0, movies[1].Rating)
		assert.Empty(t, movies[1].Name)
	})

	t.Run("propagates transport failures", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		client := testClientFor(t, server)
		server.Close()

		_, err := client.SearchMovies(context.TODO(), "Alien")
		assert.ErrorIs(t, err, ErrTransportFailure)
	})
}

func TestGetMovieInfo(t *testing.T) {
	t.Run("hydrates the full flavor from the wrapped payload", func(t *testing.T) {
		serveMux := &http.ServeMux{}
		serveMux.HandleFunc("/Movie.getInfo/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, movieInfoBody(550))
		})

		server := httptest.NewServer(serveMux)
		defer server.Close()

		client := testClientFor(t, server)
		movie, err := client.GetMovieInfo(context.TODO(), 550)
		require.NoError(t, err)
		require.NotNil(t, movie)
		assert.Equal(t, 550, movie.ID)
		assert.Equal(t, FlavorFull, movie.Flavor())
		assert.Equal(t, "tagline", movie.Tagline)
	})

	t.Run("returns nil for the nothing-found sentinel", func(t *testing.T) {
		serveMux := &http.ServeMux{}
		serveMux.HandleFunc("/Movie.getInfo/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `["Nothing found."]`)
		})

		server := httptest.NewServer(serveMux)
		defer server.Close()

		client := testClientFor(t, server)
		movie, err := client.GetMovieInfo(context.TODO(), 550)
		require.NoError(t, err)
		assert.Nil(t, movie)
	})

	t.Run("an empty array body is malformed, not empty results", func(t *testing.T) {
		serveMux := &http.ServeMux{}
		serveMux.HandleFunc("/Movie.getInfo/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[]`)
		})

		server := httptest.NewServer(serveMux)
		defer server.Close()

		client := testClientFor(t, server)
		_, err := client.GetMovieInfo(context.TODO(), 550)
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})
}

func TestDeepSearchMovies(t *testing.T) {
	t.Run("issues one getInfo round-trip per search hit, in order", func(t *testing.T) {
		var infoCalls atomic.Int32

		serveMux := &http.ServeMux{}
		serveMux.HandleFunc("/Movie.search/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"id": 348}, {"id": 679}, {"id": 8077}]`)
		})
		serveMux.HandleFunc("/Movie.getInfo/", func(w http.ResponseWriter, r *http.Request) {
			infoCalls.Add(1)
			segments := strings.Split(r.URL.Path, "/")
			fmt.Fprint(w, movieInfoBody(atoiOrFail(t, segments[len(segments)-1])))
		})

		server := httptest.NewServer(serveMux)
		defer server.Close()

		client := testClientFor(t, server)
		movies, err := client.DeepSearchMovies(context.TODO(), "Alien")
		require.NoError(t, err)

		assert.EqualValues(t, 3, infoCalls.Load())
		require.Len(t, movies, 3)
		assert.Equal(t, 348, movies[0].ID)
		assert.Equal(t, 679, movies[1].ID)
		assert.Equal(t, 8077, movies[2].ID)
		assert.Equal(t, FlavorFull, movies[0].Flavor())
	})

	t.Run("drops hits the service no longer knows", func(t *testing.T) {
		serveMux := &http.ServeMux{}
		serveMux.HandleFunc("/Movie.search/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"id": 348}, {"id": 999}]`)
		})
		serveMux.HandleFunc("/Movie.getInfo/", func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/999") {
				fmt.Fprint(w, `["Nothing found."]`)
				return
			}
			fmt.Fprint(w, movieInfoBody(348))
		})

		server := httptest.NewServer(serveMux)
		defer server.Close()

		client := testClientFor(t, server)
		movies, err := client.DeepSearchMovies(context.TODO(), "Alien")
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, 348, movies[0].ID)
	})
}

func TestSearchPeople(t *testing.T) {
	serveMux := &http.ServeMux{}
	serveMux.HandleFunc("/Person.search/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{
			"popularity": 3,
			"name": "Sigourney Weaver",
			"url": "http://www.themoviedb.org/person/10205",
			"id": 10205,
			"profile": []
		}]`)
	})

	server := httptest.NewServer(serveMux)
	defer server.Close()

	client := testClientFor(t, server)
	people, err := client.SearchPeople(context.TODO(), "Sigourney Weaver")
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, 10205, people[0].ID)
	assert.Equal(t, FlavorReduced, people[0].Flavor())
}

func TestGetPersonInfo(t *testing.T) {
	serveMux := &http.ServeMux{}
	serveMux.HandleFunc("/Person.getInfo/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "["+fullPersonJSON+"]")
	})

	server := httptest.NewServer(serveMux)
	defer server.Close()

	client := testClientFor(t, server)
	person, err := client.GetPersonInfo(context.TODO(), 10205)
	require.NoError(t, err)
	require.NotNil(t, person)
	assert.Equal(t, 10205, person.ID)
	assert.Equal(t, FlavorFull, person.Flavor())
	assert.Len(t, person.Filmography(), 2)
}

func TestListings(t *testing.T) {
	newListingServer := func(t *testing.T) *httptest.Server {
		serveMux := &http.ServeMux{}
		serveMux.HandleFunc("/Movie.getInfo/", func(w http.ResponseWriter, r *http.Request) {
			segments := strings.Split(r.URL.Path, "/")
			fmt.Fprint(w, movieInfoBody(atoiOrFail(t, segments[len(segments)-1])))
		})
		serveMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, listingHTML)
		})

		return httptest.NewServer(serveMux)
	}

	t.Run("scrapes box office IDs without an API key", func(t *testing.T) {
		server := newListingServer(t)
		defer server.Close()

		config := DefaultClientConfig()
		config.APIBaseURL = server.URL
		config.SiteURL = server.URL
		client, err := NewClientWithConfig(&config)
		require.NoError(t, err)

		ids, err := client.BoxOfficeIDs(context.TODO())
		require.NoError(t, err)
		assert.Equal(t, []int{123, 456}, ids)
	})

	t.Run("resolves most popular IDs to full movies", func(t *testing.T) {
		server := newListingServer(t)
		defer server.Close()

		client := testClientFor(t, server)
		movies, err := client.MostPopular(context.TODO())
		require.NoError(t, err)
		require.Len(t, movies, 2)
		assert.Equal(t, 789, movies[0].ID)
		assert.Equal(t, 1011, movies[1].ID)
		assert.Equal(t, FlavorFull, movies[0].Flavor())
	})

	t.Run("skips the full-movie resolution without an API key", func(t *testing.T) {
		server := newListingServer(t)
		defer server.Close()

		config := DefaultClientConfig()
		config.APIBaseURL = server.URL
		config.SiteURL = server.URL
		client, err := NewClientWithConfig(&config)
		require.NoError(t, err)

		movies, err := client.BoxOffice(context.TODO())
		require.NoError(t, err)
		assert.Nil(t, movies)
	})

	t.Run("scrapes listing entries with titles", func(t *testing.T) {
		server := newListingServer(t)
		defer server.Close()

		config := DefaultClientConfig()
		config.APIBaseURL = server.URL
		config.SiteURL = server.URL
		client, err := NewClientWithConfig(&config)
		require.NoError(t, err)

		entries, err := client.BoxOfficeListing(context.TODO())
		require.NoError(t, err)
		assert.Equal(t, []ListingEntry{
			{ID: 123, Title: "The Hunger Games"},
			{ID: 456, Title: "John Carter"},
		}, entries)
	})
}

func atoiOrFail(t *testing.T, text string) int {
	t.Helper()
	var id int
	_, err := fmt.Sscanf(text, "%d", &id)
	require.NoError(t, err)
	return id
}
