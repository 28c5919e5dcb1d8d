package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"trip-tracker/internal/auth"
	"trip-tracker/internal/models"
	"trip-tracker/internal/storage"

	"github.com/sirupsen/logrus"
)

// Context key type to avoid collisions.
type contextKey string

const (
	// UserContextKey is the context key for the authenticated user.
	UserContextKey contextKey = "user"
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "session"
	// SessionDuration is how long sessions last.
	SessionDuration = 30 * 24 * time.Hour
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db           *storage.DB
	log          *logrus.Logger
	templateDir  string
	secureCookie bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *storage.DB, log *logrus.Logger, templateDir string, secureCookie bool) *Handlers {
	return &Handlers{db: db, log: log, templateDir: templateDir, secureCookie: secureCookie}
}

// GetUserFromContext retrieves the authenticated user from request context.
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserContextKey).(*models.User); ok {
		return user
	}
	return nil
}

// AuthMiddleware wraps handlers to require a valid session. Browser requests
// are redirected to the login page; requests asking for JSON get a 403 body
// instead. It also implements rolling sessions: past the halfway point of
// the session lifetime the session is renewed automatically.
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			h.rejectUnauthenticated(w, r)
			return
		}

		sessionInfo, err := h.db.ValidateSessionWithInfo(cookie.Value)
		if err != nil {
			// Invalid or expired session, clear the cookie
			h.clearSessionCookie(w)
			h.rejectUnauthenticated(w, r)
			return
		}

		now := time.Now()
		if sessionInfo.ExpiresAt.Sub(now) < SessionDuration/2 {
			newExpiresAt := now.Add(SessionDuration)
			if err := h.db.RenewSession(cookie.Value, newExpiresAt); err == nil {
				h.setSessionCookie(w, cookie.Value)
			}
			// If renewal fails, just continue with the current session
		}

		ctx := context.WithValue(r.Context(), UserContextKey, sessionInfo.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handlers) rejectUnauthenticated(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		h.jsonError(w, http.StatusForbidden, "user not authenticated")
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// ContentTypeGuard rejects request bodies that are not form-encoded. Bodiless
// requests pass through untouched.
func ContentTypeGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			ct := r.Header.Get("Content-Type")
			if ct != "" &&
				!strings.HasPrefix(ct, "application/x-www-form-urlencoded") &&
				!strings.HasPrefix(ct, "multipart/form-data") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Unsupported Media Type. Please use form-encoded requests.",
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// LoginViewModel holds data for the login page.
type LoginViewModel struct {
	Error string
}

// SignupViewModel holds data for the signup page.
type SignupViewModel struct {
	Error   string
	Warning string
}

// LoginForm renders the login page.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	// If already logged in, go straight to the trips page
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if _, err := h.db.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
	}
	h.render(w, "login.html", LoginViewModel{})
}

// Login handles the login form submission.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "login.html", LoginViewModel{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.render(w, "login.html", LoginViewModel{Error: "Username and password are required"})
		return
	}

	user, err := h.db.GetUserByUsername(username)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.log.WithError(err).Error("login: user lookup failed")
		h.render(w, "login.html", LoginViewModel{Error: "An error occurred. Please try again."})
		return
	}
	// Unknown user and wrong password get the same message
	if err != nil || !auth.CheckPassword(password, user.PasswordHash) {
		h.render(w, "login.html", LoginViewModel{Error: "Invalid username or password"})
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		h.log.WithError(err).Error("login: failed to generate session token")
		h.render(w, "login.html", LoginViewModel{Error: "An error occurred. Please try again."})
		return
	}

	if err := h.db.CreateSession(token, user.ID, time.Now().Add(SessionDuration)); err != nil {
		h.log.WithError(err).Error("login: failed to create session")
		h.render(w, "login.html", LoginViewModel{Error: "An error occurred. Please try again."})
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

// SignupForm renders the signup page.
func (h *Handlers) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "signup.html", SignupViewModel{})
}

// Signup handles the signup form submission.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "signup.html", SignupViewModel{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.render(w, "signup.html", SignupViewModel{Error: "Username and password are required"})
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		h.log.WithError(err).Error("signup: failed to hash password")
		h.render(w, "signup.html", SignupViewModel{Error: "An error occurred. Please try again."})
		return
	}

	if _, err := h.db.CreateUser(username, hash); err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			h.render(w, "signup.html", SignupViewModel{Warning: "Username already exists. Please choose another."})
			return
		}
		h.log.WithError(err).Error("signup: failed to create user")
		h.render(w, "signup.html", SignupViewModel{Error: "An error occurred. Please try again."})
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

// Logout handles user logout. Destroying an already-destroyed session is
// fine; the redirect is unconditional.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.db.DeleteSession(cookie.Value); err != nil {
			h.log.WithError(err).Error("logout: failed to delete session")
		}
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) jsonError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (h *Handlers) jsonMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

func (h *Handlers) render(w http.ResponseWriter, viewName string, data any) {
	tmpl, err := template.ParseFiles(
		filepath.Join(h.templateDir, "base.html"),
		filepath.Join(h.templateDir, viewName),
	)
	if err != nil {
		h.log.WithError(err).WithField("view", viewName).Error("template parse failed")
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		h.log.WithError(err).WithField("view", viewName).Error("template execution failed")
	}
}
