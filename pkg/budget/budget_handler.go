package budget

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/budgetviz/budgetviz/internal/rest"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type PurchaseDTO struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	// Enabled is a pointer so records stored before the field existed
	// default to true instead of false.
	Enabled *bool `json:"enabled,omitempty"`
}

type BudgetDTO struct {
	Name                string           `json:"name"`
	InitialValue        *decimal.Decimal `json:"initialValue"`
	MonthlyContribution *decimal.Decimal `json:"monthlyContribution"`
	Purchases           []PurchaseDTO    `json:"purchases"`
}

type BudgetHandler struct {
	budgetService BudgetService
}

func NewBudgetHandler(budgetService BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService}
}

func (handler *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	names, err := handler.budgetService.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}

	response := struct {
		Budgets []string `json:"budgets"`
	}{Budgets: names}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	name := mux.Vars(r)["name"]

	budget, err := handler.budgetService.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: fmt.Sprintf("Budget '%s' not found", name)})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(BudgetToDTO(budget)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) Save(w http.ResponseWriter, r *http.Request) {
	log.Debug("Saving budget")
	w.Header().Set("Content-Type", "application/json")

	var budgetDTO BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&budgetDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid budget data", Details: err.Error()})
		return
	}
	if budgetDTO.Name == "" || budgetDTO.InitialValue == nil || budgetDTO.MonthlyContribution == nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid budget data",
			Details: "name, initialValue and monthlyContribution are required",
		})
		return
	}

	budget, err := DTOToBudget(budgetDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid budget data", Details: err.Error()})
		return
	}

	if err := handler.budgetService.Save(r.Context(), budget); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{Success: true, Message: "Budget saved successfully"}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	name := mux.Vars(r)["name"]

	if err := handler.budgetService.Delete(r.Context(), name); err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: fmt.Sprintf("Budget '%s' not found", name)})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{Success: true, Message: "Budget deleted successfully"}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func BudgetToDTO(budget Budget) BudgetDTO {
	purchases := make([]PurchaseDTO, 0, len(budget.Purchases))
	for _, p := range budget.Purchases {
		enabled := p.Enabled
		purchases = append(purchases, PurchaseDTO{
			Date:        p.Date.Format(dateLayout),
			Amount:      p.Amount,
			Description: p.Description,
			Enabled:     &enabled,
		})
	}
	initialValue := budget.InitialValue
	monthlyContribution := budget.MonthlyContribution
	return BudgetDTO{
		Name:                budget.Name,
		InitialValue:        &initialValue,
		MonthlyContribution: &monthlyContribution,
		Purchases:           purchases,
	}
}

// DTOToBudget converts the wire representation to the domain model. Dates are
// validated here; the projection engine never sees a malformed date.
func DTOToBudget(budgetDTO BudgetDTO) (Budget, error) {
	budget := Budget{Name: budgetDTO.Name}
	if budgetDTO.InitialValue != nil {
		budget.InitialValue = *budgetDTO.InitialValue
	}
	if budgetDTO.MonthlyContribution != nil {
		budget.MonthlyContribution = *budgetDTO.MonthlyContribution
	}

	budget.Purchases = make([]Purchase, 0, len(budgetDTO.Purchases))
	for _, p := range budgetDTO.Purchases {
		date, err := time.Parse(dateLayout, p.Date)
		if err != nil {
			return Budget{}, fmt.Errorf("invalid purchase date %q: must be YYYY-MM-DD", p.Date)
		}
		enabled := true
		if p.Enabled != nil {
			enabled = *p.Enabled
		}
		budget.Purchases = append(budget.Purchases, Purchase{
			Date:        date,
			Amount:      p.Amount,
			Description: p.Description,
			Enabled:     enabled,
		})
	}
	return budget, nil
}
