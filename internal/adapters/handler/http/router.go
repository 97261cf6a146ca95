package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lively-votes/api/internal/core/ports"
)

// NewHandler wires the REST surface and the realtime endpoint. Origins
// is the explicit cross-origin allow-list; credentials are enabled so
// the refresh cookie travels.
func NewHandler(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	pollHandler *PollHandler,
	voteHandler *VoteHandler,
	realtimeHandler *RealtimeHandler,
	authService ports.AuthService,
	origins []string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	requireAuth := RequireAuth(authService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/signup", authHandler.SignUp)
			r.Post("/login", authHandler.Login)
			r.Get("/refresh", authHandler.Refresh)
			r.Get("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/getUserData", userHandler.GetUserData)
				r.Get("/getPollsUserHaveVotedIn", userHandler.GetPollsUserHaveVotedIn)
			})
		})

		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.ListPolls)
			r.Get("/countVotes/{pollId}", pollHandler.CountVotes)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", pollHandler.CreatePoll)
				r.Post("/castVote", voteHandler.CastVote)
				r.Get("/whichOptionVoted/{pollId}", voteHandler.WhichOptionVoted)
			})
		})
	})

	r.Get("/ws", realtimeHandler.Stream)

	return r
}
