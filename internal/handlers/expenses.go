package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"trip-tracker/internal/models"
	"trip-tracker/internal/storage"

	"github.com/gorilla/mux"
)

// Categories offered by the add-expense form. Free-text categories are still
// accepted by the store; these are just the ones with their own bucket.
var expenseCategories = []string{
	models.CategoryGeneral,
	models.CategoryFood,
	models.CategoryTravel,
	models.CategoryNightStay,
}

// TripDetailViewModel is the data passed to the trip detail template.
type TripDetailViewModel struct {
	Trip     *models.Trip
	Expenses []models.Expense
}

// BreakdownViewModel is the data passed to the cost breakdown template.
type BreakdownViewModel struct {
	TripID   int64
	TripName string
	Cost     *models.CategoryBreakdown
}

// ExpenseFormViewModel is the data passed to the add-expense template.
type ExpenseFormViewModel struct {
	TripID     int64
	Categories []string
	Error      string
}

// TripDetails renders one trip with its expenses.
func (h *Handlers) TripDetails(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	tripID := pathID(r, "tripID")

	trip, err := h.db.GetTrip(tripID, user.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Trip not found", http.StatusNotFound)
			return
		}
		h.log.WithError(err).WithField("trip_id", tripID).Error("get trip failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	expenses, err := h.db.ListExpenses(tripID, user.ID)
	if err != nil {
		h.log.WithError(err).WithField("trip_id", tripID).Error("list expenses failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "trip.html", TripDetailViewModel{Trip: trip, Expenses: expenses})
}

// ExpenseSummary renders the category-aggregated cost breakdown for a trip.
// A missing trip yields a zero breakdown rather than an error.
func (h *Handlers) ExpenseSummary(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	tripID := pathID(r, "tripID")

	tripName := "Unknown"
	if trip, err := h.db.GetTrip(tripID, user.ID); err == nil {
		tripName = trip.Name
	}

	cost, err := h.db.AggregateByCategory(tripID, user.ID)
	if err != nil {
		h.log.WithError(err).WithField("trip_id", tripID).Error("aggregate expenses failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "expense_chart.html", BreakdownViewModel{TripID: tripID, TripName: tripName, Cost: cost})
}

// AddExpenseForm renders the form to record a new expense.
func (h *Handlers) AddExpenseForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "expense_create.html", ExpenseFormViewModel{
		TripID:     pathID(r, "tripID"),
		Categories: expenseCategories,
	})
}

// AddExpense handles the add-expense form submission.
func (h *Handlers) AddExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	tripID := pathID(r, "tripID")

	if err := r.ParseForm(); err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid form submission")
		return
	}

	category := strings.TrimSpace(r.FormValue("category"))
	amountStr := strings.TrimSpace(r.FormValue("amount"))
	method := strings.TrimSpace(r.FormValue("method"))
	if category == "" || amountStr == "" || method == "" {
		h.jsonError(w, http.StatusBadRequest, "category, amount and payment method are required")
		return
	}

	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		h.jsonError(w, http.StatusBadRequest, "invalid amount format")
		return
	}
	if amount <= 0 {
		h.jsonError(w, http.StatusBadRequest, "amount must be a positive number")
		return
	}

	description := strings.TrimSpace(r.FormValue("description"))
	if description == "" {
		description = "none"
	}
	location := strings.TrimSpace(r.FormValue("location"))
	if location == "" {
		location = "none"
	}

	_, err = h.db.CreateExpense(&models.Expense{
		UserID:      user.ID,
		TripID:      tripID,
		Category:    category,
		Amount:      amount,
		Description: description,
		Location:    location,
		Method:      method,
	})
	if err != nil {
		h.log.WithError(err).WithField("trip_id", tripID).Error("create expense failed")
		h.jsonError(w, http.StatusInternalServerError, "could not create expense")
		return
	}

	http.Redirect(w, r, "/expense/"+strconv.FormatInt(tripID, 10), http.StatusFound)
}

// DeleteExpense removes one of the caller's expenses. Deleting an expense
// that does not exist, or belongs to someone else, reports not found.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	expenseID := pathID(r, "expenseID")

	if err := h.db.DeleteExpense(expenseID, user.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.jsonError(w, http.StatusNotFound, "expense not found")
			return
		}
		h.log.WithError(err).WithField("expense_id", expenseID).Error("delete expense failed")
		h.jsonError(w, http.StatusInternalServerError, "could not delete expense")
		return
	}

	h.jsonMessage(w, http.StatusOK, "Expense deleted successfully.")
}

// pathID reads an integer path variable. Routes constrain these to digits,
// so a parse failure cannot happen on a matched route.
func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id
}
