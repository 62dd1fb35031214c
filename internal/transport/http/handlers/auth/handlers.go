package authhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrflow/internal/domain/auth"
	"hrflow/internal/platform/db"
	"hrflow/internal/transport/http/api"
	"hrflow/internal/transport/http/middleware"
	"hrflow/internal/transport/http/shared"
)

type Handler struct {
	Service      *auth.Service
	Activity     shared.ActivityRecorder
	CookieName   string
	CookieSecure bool
	AllowSignup  bool
}

func NewHandler(service *auth.Service, activity shared.ActivityRecorder, cookieName string, cookieSecure, allowSignup bool) *Handler {
	return &Handler{
		Service:      service,
		Activity:     activity,
		CookieName:   cookieName,
		CookieSecure: cookieSecure,
		AllowSignup:  allowSignup,
	}
}

// RegisterPublicRoutes mounts the endpoints reachable without a session.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/signup", h.handleSignup)
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/auth/me", h.handleMe)
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.handleListUsers)
		r.Get("/{id}", h.handleGetUser)
		r.Put("/{id}", h.handleUpdateUser)
		r.With(middleware.RequirePermission(auth.PermUsersManage)).Delete("/{id}", h.handleDeactivateUser)
	})
}

type signupRequest struct {
	Email      string  `json:"email" validate:"required,email,max=254"`
	Password   string  `json:"password" validate:"required,min=8"`
	Name       string  `json:"name" validate:"required,notblank,max=200"`
	Role       string  `json:"role" validate:"omitempty,oneof=recruiter manager employee"`
	Department *string `json:"department" validate:"omitempty,max=200"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
	Active     *bool   `json:"active"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if !h.AllowSignup {
		api.Fail(w, http.StatusForbidden, "signup_disabled", "self signup is disabled", requestID)
		return
	}

	var payload signupRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if len(payload.Password) > auth.MaxPasswordBytes {
		v.Add("password", "must be at most 72 bytes")
	}
	if v.Reject(w, requestID) {
		return
	}

	user, session, err := h.Service.Signup(r.Context(), auth.NewUser{
		Email:      payload.Email,
		Name:       strings.TrimSpace(payload.Name),
		Role:       payload.Role,
		Department: shared.OptionalText(payload.Department),
	}, payload.Password)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			api.Fail(w, http.StatusConflict, "email_taken", "an account with this email already exists", requestID)
			return
		}
		if errors.Is(err, auth.ErrPasswordTooLong) {
			shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "password", Reason: "must be at most 72 bytes"}})
			return
		}
		shared.FailStore(w, r, err, "user")
		return
	}

	h.setSessionCookie(w, session)
	entry := shared.Entry("create_user", "user", user.ID, "User "+user.Email+" signed up")
	entry.UserID = &user.ID
	shared.RecordActivity(r.Context(), h.Activity, entry)
	api.Created(w, user)
}

// handleLogin answers every credential failure with the same 401 body.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	if strings.TrimSpace(payload.Email) == "" || payload.Password == "" {
		api.Unauthorized(w)
		return
	}

	user, session, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			api.Unauthorized(w)
			return
		}
		slog.Error("login failed", "requestId", middleware.GetRequestID(r.Context()), "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", middleware.GetRequestID(r.Context()))
		return
	}

	h.setSessionCookie(w, session)
	api.Success(w, user)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.CookieName); err == nil && cookie.Value != "" {
		if err := h.Service.Logout(r.Context(), cookie.Value); err != nil {
			slog.Warn("logout session delete failed", "requestId", middleware.GetRequestID(r.Context()), "err", err)
		}
	}
	h.clearSessionCookie(w)
	api.NoContent(w)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Unauthorized(w)
		return
	}
	api.Success(w, user)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := auth.UserFilter{
		Role:       shared.QueryEnum(v, r, "role", auth.Roles),
		Department: strings.TrimSpace(r.URL.Query().Get("department")),
		Active:     shared.QueryBool(v, r, "active"),
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	users, err := h.Service.ListUsers(r.Context(), filter)
	if err != nil {
		shared.FailStore(w, r, err, "users")
		return
	}
	api.Success(w, users)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	user, err := h.Service.GetUser(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "user")
		return
	}
	api.Success(w, user)
}

// handleUpdateUser lets users edit their own profile. Editing someone else,
// or changing role or active, requires users.manage.
func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Unauthorized(w)
		return
	}

	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, requestID) {
		return
	}
	var payload updateUserRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	if payload.Name != nil {
		v.Required("name", *payload.Name, "must not be empty")
	}
	v.EnumPtr("role", payload.Role, auth.Roles)
	if v.Reject(w, requestID) {
		return
	}

	manager := auth.HasPermission(actor.Role, auth.PermUsersManage)
	if !manager && (id != actor.ID || payload.Role != nil || payload.Active != nil) {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestID)
		return
	}

	user, err := h.Service.UpdateUser(r.Context(), id, auth.UserPatch{
		Name:       shared.TrimmedPtr(payload.Name),
		Department: shared.TrimmedPtr(payload.Department),
		Role:       payload.Role,
		Active:     payload.Active,
	})
	if err != nil {
		shared.FailStore(w, r, err, "user")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("update_user", "user", user.ID, "Updated user "+user.Email))
	api.Success(w, user)
}

func (h *Handler) handleDeactivateUser(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	id := shared.PathID(v, r, "id")
	if v.Reject(w, requestID) {
		return
	}
	if actor, ok := middleware.GetUser(r.Context()); ok && actor.ID == id {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "you cannot deactivate your own account", requestID)
		return
	}
	user, err := h.Service.DeactivateUser(r.Context(), id)
	if err != nil {
		shared.FailStore(w, r, err, "user")
		return
	}
	shared.RecordActivity(r.Context(), h.Activity, shared.Entry("deactivate_user", "user", user.ID, "Deactivated user "+user.Email))
	api.NoContent(w)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, session auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
