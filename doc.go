/*
Package tmdb provides a client for the themoviedb.org v2.1 API, as well as
scraping the site's home page for the box office and most popular charts,
for which there are no API endpoints. The heart of the package is the
entity hydration core: the rules that turn the service's inconsistent JSON
shapes into typed Movie and Person entities in one of two flavors, reduced
(search results) and full (getInfo results).

The general workflow for this package involves creating a client instance
like so:

	client := tmdb.NewClient()

The default client has no API key and will skip every keyed endpoint. To
provide one, along with any other configuration, build the client from a
config:

	config := tmdb.DefaultClientConfig()
	config.APIKey = "0123456789abcdef"
	config.Language = "en"
	config.Debug = true
	client, err := tmdb.NewClientWithConfig(&config)

With the *tmdb.Client instantiated you can leverage the client methods in
the following manner.

	movies, err := client.SearchMovies(ctx, "Alien")
	...
	movies, err := client.DeepSearchMovies(ctx, "Alien")
	...
	movie, err := client.GetMovieInfo(ctx, 550)
	...
	images, err := client.GetMovieImages(ctx, 550)
	...
	people, err := client.SearchPeople(ctx, "Sigourney Weaver")
	...
	person, err := client.GetPersonInfo(ctx, 10205)
	...
	ids, err := client.BoxOfficeIDs(ctx)
	...
	movies, err := client.MostPopular(ctx)
	...
	entries, err := client.BoxOfficeListing(ctx)

Search methods return reduced entities built directly from the result
array; the deep search variants resolve every hit with one getInfo
round-trip per ID, so a search with N hits costs N+1 sequential requests.
All calls are blocking and never retried; wrap the context for timeouts
beyond the configured request timeout.

See the accompanying example program for a more detailed tutorial on how
to use this package.
*/
package tmdb
