package app

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Projection engine; registered before the {name} routes so the path
	// segments are not captured as budget names.
	r.HandleFunc("/api/budgets/calculate", deps.ProjectionHandler.Calculate).Methods("POST")
	r.HandleFunc("/api/budgets/suggest", deps.ProjectionHandler.Suggest).Methods("POST")

	// Budget storage
	r.HandleFunc("/api/budgets", deps.BudgetHandler.List).Methods("GET")
	r.HandleFunc("/api/budgets", deps.BudgetHandler.Save).Methods("POST")
	r.HandleFunc("/api/budgets/{name}", deps.BudgetHandler.Get).Methods("GET")
	r.HandleFunc("/api/budgets/{name}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")
}
