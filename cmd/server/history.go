package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/takumikoubou/mitsumori/internal/export"
)

// handleHistoryLoad restores a saved estimate into the worksheet and
// recalculates it, so the operator lands on a fully populated form.
func (s *server) handleHistoryLoad(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	quote, ok := s.history.FindByID(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	s.builder.Restore(quote, s.catalog)
	s.inputs = worksheetInputs{
		ProductName:               quote.ProductName,
		LaborDays:                 quote.LaborDays,
		DailyLaborRate:            quote.DailyLaborRate,
		MaterialProfitRatePercent: quote.MaterialProfitRatePercent,
		ProjectProfitRatePercent:  quote.ProjectProfitRatePercent,
		EstimateNumber:            quote.Number,
	}
	s.computeResult()

	http.Redirect(w, r, "/?success="+url.QueryEscape(fmt.Sprintf("見積もり %s を読み込みました。", quote.Number)), http.StatusSeeOther)
}

func (s *server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.history.Delete(id); err != nil {
		s.log.WithError(err).WithField("id", id).Error("failed to delete estimate")
		http.Error(w, "failed to delete estimate", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleHistoryExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	quote, ok := s.history.FindByID(id)
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	filename := fmt.Sprintf("mitsumori_%s.xlsx", quote.Number)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteEstimate(w, quote); err != nil {
		s.log.WithError(err).WithField("id", id).Error("failed to export estimate")
	}
}
