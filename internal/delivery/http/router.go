package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"shaadicircle/internal/delivery/http/controllers"
	"shaadicircle/internal/delivery/http/middleware"
	"shaadicircle/internal/domain"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth    *controllers.AuthController
	Shaadi  *controllers.ShaadiController
	Invite  *controllers.InviteController
	Post    *controllers.PostController
	Comment *controllers.CommentController
	Media   *controllers.MediaController
}

// NewRouter initializes the HTTP router with all application routes.
// Bearer-protected routes are wrapped with the auth middleware; code-gated
// invite routes (decline, tracking) and the auth endpoints are public.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Users
	mux.HandleFunc("POST /users/register", c.Auth.Register)
	mux.HandleFunc("POST /users/login", c.Auth.Login)
	mux.HandleFunc("POST /users/login-shaadi", c.Auth.LoginShaadi)
	mux.HandleFunc("POST /users/join-shaadi", c.Auth.JoinShaadi)
	mux.HandleFunc("GET /users/me", auth(c.Auth.Me))

	// Shaadi
	mux.HandleFunc("POST /shaadi", auth(c.Shaadi.Create))
	mux.HandleFunc("GET /shaadi/user", auth(c.Shaadi.ListForUser))
	mux.HandleFunc("POST /shaadi/switch", auth(c.Shaadi.Switch))
	mux.HandleFunc("PATCH /shaadi/{shaadiID}/members/{userID}/block", auth(c.Shaadi.SetMemberBlocked))
	mux.HandleFunc("DELETE /shaadi/{shaadiID}", auth(c.Shaadi.Delete))

	// Invites
	mux.HandleFunc("GET /shaadi/{shaadiID}/invites", auth(c.Invite.List))
	mux.HandleFunc("POST /shaadi/{shaadiID}/invites", auth(c.Invite.Create))
	mux.HandleFunc("POST /shaadi/invites/{inviteID}/send", auth(c.Invite.Send))
	mux.HandleFunc("POST /shaadi/invites/{inviteID}/resend", auth(c.Invite.Resend))
	mux.HandleFunc("DELETE /shaadi/invites/{inviteID}", auth(c.Invite.Delete))
	mux.HandleFunc("GET /shaadi/{shaadiID}/members", auth(c.Invite.Members))
	mux.HandleFunc("GET /shaadi/{shaadiID}/guest-stats", auth(c.Invite.GuestStats))
	mux.HandleFunc("POST /invites/decline/{code}", c.Invite.Decline)
	mux.HandleFunc("POST /invites/track/open/{code}", c.Invite.TrackOpen)
	mux.HandleFunc("POST /invites/track/click/{code}", c.Invite.TrackClick)

	// Posts
	mux.HandleFunc("GET /posts", auth(c.Post.List))
	mux.HandleFunc("POST /posts", auth(c.Post.Create))
	mux.HandleFunc("POST /posts/{postID}/like", auth(c.Post.Like))
	mux.HandleFunc("PATCH /posts/{postID}", auth(c.Post.Update))
	mux.HandleFunc("DELETE /posts/{postID}", auth(c.Post.Delete))

	// Comments
	mux.HandleFunc("GET /comments/post/{postID}", auth(c.Comment.ListByPost))
	mux.HandleFunc("POST /comments/post/{postID}", auth(c.Comment.Add))
	mux.HandleFunc("DELETE /comments/{commentID}", auth(c.Comment.Delete))

	// Media
	mux.HandleFunc("POST /media/upload", auth(c.Media.Upload))
	mux.HandleFunc("DELETE /media/{key...}", auth(c.Media.Delete))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
