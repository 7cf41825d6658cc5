package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"portfoliotracker/pkg/portfolio"
)

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) getHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.core.ListHoldings()
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, holdings)
}

func (h *handler) addHolding(w http.ResponseWriter, r *http.Request) {
	var payload holdingPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := h.core.AddHolding(portfolio.AddHoldingRequest{
		Name:         strOr(payload.Name),
		Ticker:       strOr(payload.Ticker),
		AssetType:    strOr(payload.AssetType),
		Shares:       payload.Shares,
		CostBasis:    payload.CostBasis,
		CurrentValue: payload.CurrentValue,
		PurchaseDate: strOr(payload.PurchaseDate),
		Notes:        strOr(payload.Notes),
	})
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "success": true})
}

func (h *handler) updateHolding(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var payload holdingPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := h.core.UpdateHolding(id, portfolio.UpdateHoldingRequest{
		Name:         payload.Name,
		Ticker:       payload.Ticker,
		AssetType:    payload.AssetType,
		Shares:       payload.Shares,
		CostBasis:    payload.CostBasis,
		CurrentValue: payload.CurrentValue,
		PurchaseDate: payload.PurchaseDate,
		Notes:        payload.Notes,
	})
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *handler) deleteHolding(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.core.DeleteHolding(id); err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *handler) getPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.core.GetPortfolioSummary()
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *handler) getRebalancePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.core.GetRebalancePlan()
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *handler) getRebalanceAdvice(w http.ResponseWriter, r *http.Request) {
	var payload rebalanceAdvicePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.core.GetRebalanceAdvice(r.Context(), portfolio.RebalanceAdviceRequest{
		BaseURL:      payload.BaseURL,
		APIKey:       payload.APIKey,
		Model:        payload.Model,
		RiskProfile:  payload.RiskProfile,
		Horizon:      payload.Horizon,
		CustomPrompt: payload.CustomPrompt,
	})
	if err != nil {
		h.logger.Error("rebalance advice failed", "model", payload.Model, "err", err)
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) getAllocations(w http.ResponseWriter, r *http.Request) {
	targets, err := h.core.GetTargetAllocations()
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, targets)
}

func (h *handler) updateAllocations(w http.ResponseWriter, r *http.Request) {
	var payload []allocationPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries := make([]portfolio.TargetAllocation, 0, len(payload))
	for _, item := range payload {
		entries = append(entries, portfolio.TargetAllocation{
			AssetType:        item.AssetType,
			TargetPercentage: item.TargetPercentage,
		})
	}
	if err := h.core.ReplaceTargetAllocations(entries); err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.core.ExportCSV()
	if err != nil {
		writeCoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *handler) getAuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.core.GetAuditEntries()
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func strOr(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
