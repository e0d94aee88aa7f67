package main

import (
	"fmt"
	"net/http"

	"github.com/takumikoubou/mitsumori/internal/estimate"
	"github.com/takumikoubou/mitsumori/internal/pricing"
)

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.renderTemplate(w, "home.html", s.homeView(baseViewData{
		ErrorMessage:   r.URL.Query().Get("error"),
		SuccessMessage: r.URL.Query().Get("success"),
	}))
}

// handleWorksheet is the single endpoint behind the estimate form. Every
// submit carries the full worksheet, so scalar inputs and line edits are
// applied first and the pressed button decides what happens next.
func (s *server) handleWorksheet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.applyWorksheetForm(r)

	switch {
	case r.PostForm.Has("addMaterial"):
		s.addMaterialLine(r.FormValue("addMaterial"), r)
		http.Redirect(w, r, "/", http.StatusSeeOther)

	case r.PostForm.Has("addCustom"):
		s.builder.AddCustom(r.FormValue("addCustom"))
		http.Redirect(w, r, "/", http.StatusSeeOther)

	case r.PostForm.Has("removeLine"):
		s.builder.Remove(r.FormValue("removeLine"))
		http.Redirect(w, r, "/", http.StatusSeeOther)

	case r.FormValue("action") == "reset":
		s.resetWorksheet()
		http.Redirect(w, r, "/", http.StatusSeeOther)

	case r.FormValue("action") == "save":
		s.saveWorksheet(w)

	default:
		s.computeResult()
		s.renderTemplate(w, "home.html", s.homeView(baseViewData{}))
	}
}

// applyWorksheetForm copies the posted scalar inputs and per-line fields
// into the session. Line fields are applied only when present so partial
// posts cannot zero lines the form never carried.
func (s *server) applyWorksheetForm(r *http.Request) {
	s.inputs.ProductName = r.FormValue("productName")
	s.inputs.LaborDays = parseFloatOrZero(r.FormValue("laborDays"))
	s.inputs.DailyLaborRate = parseFloatOrZero(r.FormValue("dailyLaborRate"))
	s.inputs.MaterialProfitRatePercent = parseFloatOrZero(r.FormValue("materialProfitRate"))
	s.inputs.ProjectProfitRatePercent = parseFloatOrZero(r.FormValue("projectProfitRate"))

	for _, line := range s.builder.Lines() {
		if r.PostForm.Has("qty_" + line.ID) {
			s.builder.SetQuantity(line.ID, parseFloatOrZero(r.FormValue("qty_"+line.ID)))
		}
		if line.IsCustom {
			if r.PostForm.Has("name_" + line.ID) {
				s.builder.SetName(line.ID, r.FormValue("name_"+line.ID))
			}
			if r.PostForm.Has("price_" + line.ID) {
				s.builder.SetUnitPrice(line.ID, parseFloatOrZero(r.FormValue("price_"+line.ID)))
			}
		}
	}
}

func (s *server) addMaterialLine(category string, r *http.Request) {
	itemID := r.FormValue("item_" + category)
	if itemID == "" {
		return
	}
	item, ok := s.catalog.Find(category, itemID)
	if !ok {
		return
	}
	s.builder.AddFromCatalog(category, item)
}

func (s *server) resetWorksheet() {
	s.builder.Reset()
	s.result = nil
	s.groups = nil
	s.inputs = worksheetInputs{EstimateNumber: s.history.NextNumber(s.now())}
}

func (s *server) computeResult() {
	items := s.builder.Items()
	result := pricing.Calculate(items, pricing.Input{
		LaborDays:                 s.inputs.LaborDays,
		DailyLaborRate:            s.inputs.DailyLaborRate,
		MaterialProfitRatePercent: s.inputs.MaterialProfitRatePercent,
		ProjectProfitRatePercent:  s.inputs.ProjectProfitRatePercent,
	})
	s.result = &result
	s.groups = pricing.CategoryGroups(items)
}

// saveEstimate recalculates the worksheet, appends it to history and
// stages the next estimate number.
func (s *server) saveEstimate() (estimate.Quote, error) {
	s.computeResult()

	saved, err := s.history.Append(estimate.Quote{
		ProductName:               s.inputs.ProductName,
		LaborDays:                 s.inputs.LaborDays,
		DailyLaborRate:            s.inputs.DailyLaborRate,
		MaterialProfitRatePercent: s.inputs.MaterialProfitRatePercent,
		ProjectProfitRatePercent:  s.inputs.ProjectProfitRatePercent,
		FinalPrice:                s.result.Totals.FinalPrice,
		FinalPriceNoTax:           s.result.Totals.FinalPriceNoTax,
		Materials:                 s.builder.Items(),
	})
	if err != nil {
		return estimate.Quote{}, err
	}

	s.inputs.EstimateNumber = s.history.NextNumber(s.now())
	return saved, nil
}

func (s *server) saveWorksheet(w http.ResponseWriter) {
	saved, err := s.saveEstimate()
	if err != nil {
		s.log.WithError(err).Error("failed to save estimate")
		w.WriteHeader(http.StatusInternalServerError)
		s.renderTemplate(w, "home.html", s.homeView(baseViewData{
			ErrorMessage: "見積もりの保存に失敗しました。",
		}))
		return
	}

	s.renderTemplate(w, "home.html", s.homeView(baseViewData{
		SuccessMessage: fmt.Sprintf("見積もり %s を履歴に保存しました。", saved.Number),
	}))
}
