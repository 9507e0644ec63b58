package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/config"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/handler"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/middleware"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/queue"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/repository"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/router"
)

// seedGenres is the fixed genre set created on startup. Genres are not
// managed through the API.
var seedGenres = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime",
	"Documentary", "Drama", "Family", "Fantasy", "History",
	"Horror", "Music", "Mystery", "Romance", "Science Fiction",
	"Thriller", "War", "Western",
}

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	driver, err := database.Open(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPass)
	if err != nil {
		log.Fatalf("neo4j: %v", err)
	}
	defer driver.Close(context.Background())

	if err := seed(driver); err != nil {
		log.Fatalf("seed genres: %v", err)
	}

	// Optional Redis-backed response cache for the public GET endpoints.
	var cacheMW echo.MiddlewareFunc
	cacheCfg := config.LoadCacheConfig()
	if cacheCfg.Enabled {
		if rdb := config.NewRedisClient(); rdb != nil {
			cacheMW = middleware.NewRedisCache(cacheCfg, rdb)
		}
	}

	// The consumer only mirrors broker traffic to a log; losing it must
	// not take the API down.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo()
	movies := repository.NewMovieRepo()

	h := &router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, driver, users),
		Movies:        handler.NewMovieHandler(driver, movies, users),
		Reviews:       handler.NewReviewHandler(driver, repository.NewReviewRepo(), users),
		Relations:     handler.NewRelationHandler(driver, repository.NewRelationRepo(), movies, users),
		Comments:      handler.NewCommentHandler(driver, repository.NewCommentRepo(), users),
		Notifications: handler.NewNotificationHandler(driver, repository.NewNotificationRepo()),
		Actors:        handler.NewActorHandler(driver, repository.NewActorRepo(), users),
		Genres:        handler.NewGenreHandler(driver, repository.NewGenreRepo()),
		Users:         handler.NewUserHandler(driver, users),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, h, cfg.JWTSecret, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// seed merges the fixed genre set so listings can rely on it existing.
func seed(driver neo4j.DriverWithContext) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	genres := repository.NewGenreRepo()
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, genres.Seed(ctx, database.NewTxRunner(tx), seedGenres)
	})
	return err
}
