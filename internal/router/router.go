package router

import (
	"github.com/labstack/echo/v4"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/handler"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/middleware"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/repository"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth          *handler.AuthHandler
	Movies        *handler.MovieHandler
	Reviews       *handler.ReviewHandler
	Relations     *handler.RelationHandler
	Comments      *handler.CommentHandler
	Notifications *handler.NotificationHandler
	Actors        *handler.ActorHandler
	Genres        *handler.GenreHandler
	Users         *handler.UserHandler
}

// relationLists pairs each relation kind with its "my movies" listing
// path. A slice, not a map, so routes register in a stable order.
var relationLists = []struct {
	kind     string
	listPath string
}{
	{repository.RelationWatchlist, "/me/watchlist"},
	{repository.RelationFavourite, "/me/favourites"},
	{repository.RelationIgnores, "/me/ignored"},
}

// Register wires all routes onto the Echo instance.
//
// Public browse endpoints run under OptionalJWT so a valid token
// personalizes the movie listing (watchlist/favourite flags, ignore-list
// exclusion) while anonymous requests still succeed. cacheMW, when not
// nil, wraps only the side-effect-free aggregate endpoints; the movie
// detail route bumps the popularity counter on every fetch, so it must
// reach the store even for anonymous viewers.
func Register(e *echo.Echo, h *Handlers, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	// Registration and login never carry a token.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	var cached []echo.MiddlewareFunc
	if cacheMW != nil {
		cached = append(cached, cacheMW)
	}

	// Public catalog. Personalized when a token is present.
	pub := e.Group("/v1", middleware.OptionalJWT(jwtSecret))
	pub.GET("/movies", h.Movies.List, cached...)
	pub.GET("/movies/most-popular", h.Movies.MostPopular, cached...)
	pub.GET("/movies/:id", h.Movies.Get)
	pub.GET("/actors", h.Actors.List, cached...)
	pub.GET("/actors/:id", h.Actors.Get)
	pub.GET("/genres", h.Genres.List, cached...)

	// Everything below requires a valid access token.
	priv := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleUser, model.RoleAdmin))
	priv.GET("/me", h.Auth.Me)

	priv.POST("/movies/:id/reviews", h.Reviews.Add)
	priv.PUT("/reviews/:id", h.Reviews.Update)
	priv.DELETE("/reviews/:id", h.Reviews.Delete)

	priv.POST("/movies/:id/comments", h.Comments.Post)
	priv.PUT("/comments/:id", h.Comments.Update)
	priv.DELETE("/comments/:id", h.Comments.Delete)

	for _, r := range relationLists {
		priv.POST("/movies/:id/"+r.kind, h.Relations.Add(r.kind))
		priv.DELETE("/movies/:id/"+r.kind, h.Relations.Remove(r.kind))
		priv.GET(r.listPath, h.Relations.ListMine(r.kind))
	}

	priv.GET("/me/notifications", h.Notifications.List)
	priv.PUT("/me/notifications/read", h.Notifications.MarkAllRead)
	priv.PUT("/me/notifications/:id/read", h.Notifications.MarkRead)
	priv.DELETE("/me/notifications", h.Notifications.DeleteAll)
	priv.DELETE("/me/notifications/:id", h.Notifications.Delete)

	// Catalog management is admin-only.
	admin := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
	admin.POST("/movies", h.Movies.Create)
	admin.PUT("/movies/:id", h.Movies.Update)
	admin.PUT("/movies/:id/picture", h.Movies.UpdatePicture)
	admin.DELETE("/movies/:id", h.Movies.Delete)
	admin.POST("/actors", h.Actors.Create)
	admin.PUT("/actors/:id", h.Actors.Update)
	admin.PUT("/actors/:id/picture", h.Actors.UpdatePicture)
	admin.DELETE("/actors/:id", h.Actors.Delete)
	admin.GET("/users/most-active", h.Users.MostActive)
}
