package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all routes. Protected routes sit behind AuthMiddleware so
// no handler runs before the session check.
func NewRouter(h *Handlers, staticDir string) *mux.Router {
	r := mux.NewRouter()
	r.Use(ContentTypeGuard)

	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// Public routes
	r.HandleFunc("/signup", h.SignupForm).Methods(http.MethodGet)
	r.HandleFunc("/signup", h.Signup).Methods(http.MethodPost)
	r.HandleFunc("/login", h.LoginForm).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)

	// Protected routes
	protected := r.PathPrefix("/").Subrouter()
	protected.Use(h.AuthMiddleware)
	protected.HandleFunc("/", h.TripsPage).Methods(http.MethodGet)
	protected.HandleFunc("/", h.CreateTrip).Methods(http.MethodPost)
	protected.HandleFunc("/trip/{tripID:[0-9]+}", h.TripDetails).Methods(http.MethodGet)
	protected.HandleFunc("/expense/{tripID:[0-9]+}", h.ExpenseSummary).Methods(http.MethodGet)
	protected.HandleFunc("/addexpense/{tripID:[0-9]+}", h.AddExpenseForm).Methods(http.MethodGet)
	protected.HandleFunc("/addexpense/{tripID:[0-9]+}", h.AddExpense).Methods(http.MethodPost)
	protected.HandleFunc("/deleteexpense/{expenseID:[0-9]+}", h.DeleteExpense).Methods(http.MethodPost)
	protected.HandleFunc("/logout", h.Logout).Methods(http.MethodGet)

	return r
}
