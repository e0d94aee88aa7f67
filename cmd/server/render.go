package main

import (
	"html/template"
	"math"
	"net/http"
	"strconv"

	"github.com/takumikoubou/mitsumori/internal/catalog"
	"github.com/takumikoubou/mitsumori/internal/estimate"
	"github.com/takumikoubou/mitsumori/internal/pricing"
)

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

type categoryView struct {
	Name  string
	Items []catalog.Item
	Lines []estimate.Line
}

type categoryTotalView struct {
	Category string
	Total    float64
}

type resultViewData struct {
	Breakdown      pricing.Breakdown
	Totals         pricing.Totals
	Groups         []pricing.CategoryGroup
	CategoryTotals []categoryTotalView
}

type homeViewData struct {
	baseViewData
	Inputs     worksheetInputs
	Categories []categoryView
	History    []estimate.Quote
	Result     *resultViewData
}

type adminCategoryView struct {
	Name  string
	Items []catalog.Item
}

type adminMaterialsViewData struct {
	baseViewData
	Categories []adminCategoryView
}

// homeView snapshots the session for rendering. Callers hold s.mu.
func (s *server) homeView(base baseViewData) homeViewData {
	data := homeViewData{
		baseViewData: base,
		Inputs:       s.inputs,
		History:      s.history.NewestFirst(),
	}

	for _, name := range s.catalog.Categories() {
		data.Categories = append(data.Categories, categoryView{
			Name:  name,
			Items: s.catalog.Items(name),
			Lines: s.builder.LinesFor(name),
		})
	}

	if s.result != nil {
		view := resultViewData{
			Breakdown: s.result.Breakdown,
			Totals:    s.result.Totals,
			Groups:    s.groups,
		}
		for _, group := range s.groups {
			view.CategoryTotals = append(view.CategoryTotals, categoryTotalView{
				Category: group.Category,
				Total:    group.Subtotal,
			})
		}
		data.Result = &view
	}
	return data
}

func (s *server) adminMaterialsView(base baseViewData) adminMaterialsViewData {
	data := adminMaterialsViewData{baseViewData: base}
	for _, name := range s.catalog.Categories() {
		data.Categories = append(data.Categories, adminCategoryView{
			Name:  name,
			Items: s.catalog.Items(name),
		})
	}
	return data
}

var templateFuncs = template.FuncMap{
	"jpy": formatJpy,
}

// formatJpy renders an amount the way the shop writes prices: rounded to
// whole yen with thousands separators.
func formatJpy(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	return sign + "¥" + string(out)
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.New("layout.html").Funcs(templateFuncs).ParseFiles(
		"web/templates/layout.html",
		"web/templates/"+page,
	)
	if err != nil {
		s.log.WithError(err).WithField("page", page).Error("failed to parse template")
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		s.log.WithError(err).WithField("page", page).Error("failed to render template")
		http.Error(w, "failed to render template", http.StatusInternalServerError)
	}
}
