package main

import (
	"context"
	"errors"
	"log"
	"os"

	tmdb "github.com/moviekit/tmdb21"
)

var client *tmdb.Client

func init() {
	config := tmdb.DefaultClientConfig()
	config.APIKey = os.Getenv("TMDB_API_KEY")
	config.Debug = true

	var err error
	client, err = tmdb.NewClientWithConfig(&config)
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	var methodCallers = []func(context.Context) error{
		searchMovies,
		deepSearchMovies,
		getMovieInfo,
		getMovieImages,
		searchPeople,
		boxOfficeIDs,
		mostPopularListing,
	}

	ctx := context.Background()
	for _, caller := range methodCallers {
		if err := caller(ctx); err != nil {
			log.Fatal(err)
		}
	}
}

func searchMovies(ctx context.Context) error {
	const methodName = "SearchMovies"
	movies, err := client.SearchMovies(ctx, "Alien")
	if err != nil {
		return errors.New(formatMethodReturns(methodName, movies, err))
	}

	logMethodResponse(methodName, movies)
	return nil
}

func deepSearchMovies(ctx context.Context) error {
	const methodName = "DeepSearchMovies"
	movies, err := client.DeepSearchMovies(ctx, "Alien")
	if err != nil {
		return errors.New(formatMethodReturns(methodName, movies, err))
	}

	logMethodResponse(methodName, movies)
	return nil
}

func getMovieInfo(ctx context.Context) error {
	const methodName = "GetMovieInfo"
	const movieID = 550
	movie, err := client.GetMovieInfo(ctx, movieID)
	if err != nil {
		return errors.New(formatMethodReturns(methodName, movie, err))
	}

	logMethodResponse(methodName, movie)
	return nil
}

func getMovieImages(ctx context.Context) error {
	const methodName = "GetMovieImages"
	const movieID = 550
	images, err := client.GetMovieImages(ctx, movieID)
	if err != nil {
		return errors.New(formatMethodReturns(methodName, images, err))
	}

	logMethodResponse(methodName, images)
	return nil
}

func searchPeople(ctx context.Context) error {
	const methodName = "SearchPeople"
	people, err := client.SearchPeople(ctx, "Sigourney Weaver")
	if err != nil {
		return errors.New(formatMethodReturns(methodName, people, err))
	}

	logMethodResponse(methodName, people)
	return nil
}

func boxOfficeIDs(ctx context.Context) error {
	const methodName = "BoxOfficeIDs"
	ids, err := client.BoxOfficeIDs(ctx)
	if err != nil {
		return errors.New(formatMethodReturns(methodName, ids, err))
	}

	logMethodResponse(methodName, ids)
	return nil
}

func mostPopularListing(ctx context.Context) error {
	const methodName = "MostPopularListing"
	entries, err := client.MostPopularListing(ctx)
	if err != nil {
		return errors.New(formatMethodReturns(methodName, entries, err))
	}

	logMethodResponse(methodName, entries)
	return nil
}
