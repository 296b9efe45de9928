package projection

import (
	"encoding/json"
	"net/http"

	"github.com/budgetviz/budgetviz/internal/rest"
	"github.com/budgetviz/budgetviz/pkg/budget"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type BudgetDataPointDTO struct {
	Date    string          `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

type SuggestedContributionDTO struct {
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
	TotalMonths   int             `json:"totalMonths"`
	FinalBalance  decimal.Decimal `json:"finalBalance"`
}

type BalanceDataDTO struct {
	BalanceData []BudgetDataPointDTO `json:"balanceData"`
}

type Handler struct {
	projectionService Service
	csvRenderer       ProjectionRenderer
}

func NewHandler(projectionService Service, csvRenderer ProjectionRenderer) *Handler {
	return &Handler{projectionService, csvRenderer}
}

// Calculate projects the balance timeline for the budget in the request body
// without persisting it. With "Accept: text/csv" the timeline is returned as
// CSV instead of JSON.
func (handler *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	log.Debug("Calculating balance projection")

	var budgetDTO budget.BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&budgetDTO); err != nil {
		writeBadRequest(w, "Invalid budget data", err.Error())
		return
	}
	if budgetDTO.InitialValue == nil || budgetDTO.MonthlyContribution == nil {
		writeBadRequest(w, "Invalid budget data", "initialValue and monthlyContribution are required")
		return
	}
	b, err := budget.DTOToBudget(budgetDTO)
	if err != nil {
		writeBadRequest(w, "Invalid budget data", err.Error())
		return
	}

	points := handler.projectionService.ProjectBalance(r.Context(), b)

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvRenderer.RenderProjection(points)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	response := BalanceDataDTO{BalanceData: make([]BudgetDataPointDTO, 0, len(points))}
	for _, point := range points {
		response.BalanceData = append(response.BalanceData, BudgetDataPointDTO{
			Date:    point.Date.Format("2006-01-02"),
			Balance: point.Balance,
		})
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Suggest computes the monthly contribution that zeroes the balance by the
// last purchase date of the budget in the request body.
func (handler *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	log.Debug("Calculating suggested contribution")

	var budgetDTO budget.BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&budgetDTO); err != nil {
		writeBadRequest(w, "Invalid budget data", err.Error())
		return
	}
	if budgetDTO.InitialValue == nil || budgetDTO.Purchases == nil {
		writeBadRequest(w, "Invalid budget data", "initialValue and purchases are required")
		return
	}
	b, err := budget.DTOToBudget(budgetDTO)
	if err != nil {
		writeBadRequest(w, "Invalid budget data", err.Error())
		return
	}

	suggestion := handler.projectionService.SuggestContribution(r.Context(), b)

	w.Header().Set("Content-Type", "application/json")
	response := SuggestedContributionDTO{
		MonthlyAmount: suggestion.MonthlyAmount,
		TotalMonths:   suggestion.TotalMonths,
		FinalBalance:  suggestion.FinalBalance,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeBadRequest(w http.ResponseWriter, message string, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
