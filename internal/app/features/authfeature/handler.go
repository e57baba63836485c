// Package authfeature serves registration, login, and the current-user
// endpoint. Token issuance lives in the auth system package; this package is
// the HTTP surface over it.
package authfeature

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/dalemusser/campdir/internal/app/store/users"
	"github.com/dalemusser/campdir/internal/app/system/apierror"
	"github.com/dalemusser/campdir/internal/app/system/apiquery"
	"github.com/dalemusser/campdir/internal/app/system/auth"
	"github.com/dalemusser/campdir/internal/app/system/timeouts"
	"github.com/dalemusser/campdir/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users  *userstore.Store
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{Users: userstore.New(db), Tokens: tokens, Log: logger}
}

type registerBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Register handles POST /auth/register. Self-registration may claim the user
// or publisher role; admin accounts are created only through /auth/users.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var body registerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierror.Write(w, h.Log, apierror.BadRequest("Invalid request body"))
		return
	}

	role := body.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RolePublisher {
		apierror.Write(w, h.Log, apierror.BadRequest("Please add a valid role"))
		return
	}

	user, err := h.Users.Create(ctx, models.User{
		Name:  body.Name,
		Email: body.Email,
		Role:  role,
	}, body.Password)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, "User not found"))
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		apierror.Write(w, h.Log, apierror.Internal(err, "Server Error"))
		return
	}

	apierror.WriteJSON(w, http.StatusOK, tokenResponse{Success: true, Token: token})
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var body loginBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierror.Write(w, h.Log, apierror.BadRequest("Invalid request body"))
		return
	}
	if body.Email == "" || body.Password == "" {
		apierror.Write(w, h.Log, apierror.BadRequest("Please provide an email and password"))
		return
	}

	user, err := h.Users.GetByEmail(ctx, body.Email)
	if err != nil {
		apierror.Write(w, h.Log, apierror.Unauthorized("Invalid credentials"))
		return
	}
	if !h.Users.CheckPassword(user, body.Password) {
		apierror.Write(w, h.Log, apierror.Unauthorized("Invalid credentials"))
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		apierror.Write(w, h.Log, apierror.Internal(err, "Server Error"))
		return
	}

	apierror.WriteJSON(w, http.StatusOK, tokenResponse{Success: true, Token: token})
}

// Me handles GET /auth/me for the signed-in user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	principal, ok := auth.CurrentUser(r)
	if !ok {
		apierror.Write(w, h.Log, apierror.Unauthorized("Not authorized to access this route"))
		return
	}

	user, err := h.Users.GetByID(ctx, principal.ID)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, "User not found with id of "+principal.ID.Hex()))
		return
	}

	apierror.WriteJSON(w, http.StatusOK, apiquery.One(user))
}
