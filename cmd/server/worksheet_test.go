package main

import (
	"io"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/takumikoubou/mitsumori/internal/catalog"
	"github.com/takumikoubou/mitsumori/internal/kvstore"
)

func newTestServer(t *testing.T) *server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	fixedNow := func() time.Time {
		return time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)
	}

	srv, err := newServer(kvstore.NewMemory(), catalog.DefaultCategories(), logger, fixedNow)
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}
	return srv
}

func firstCatalogItem(t *testing.T, srv *server, category string) catalog.Item {
	t.Helper()

	items := srv.catalog.Items(category)
	if len(items) == 0 {
		t.Fatalf("no catalog items in %s", category)
	}
	return items[0]
}

func TestNewServerStagesFirstEstimateNumber(t *testing.T) {
	srv := newTestServer(t)

	if srv.inputs.EstimateNumber != "20240510-001" {
		t.Fatalf("expected 20240510-001, got %s", srv.inputs.EstimateNumber)
	}
}

func TestApplyWorksheetFormIsLenientOnNumbers(t *testing.T) {
	srv := newTestServer(t)
	line := srv.builder.AddFromCatalog(catalog.CategoryDecorative, firstCatalogItem(t, srv, catalog.CategoryDecorative))
	custom := srv.builder.AddCustom(catalog.CategoryHardware)
	srv.builder.SetUnitPrice(custom.ID, 500)

	form := url.Values{}
	form.Set("productName", "飾り棚")
	form.Set("laborDays", "2.5")
	form.Set("dailyLaborRate", "abc")
	form.Set("materialProfitRate", "30")
	form.Set("projectProfitRate", "")
	form.Set("qty_"+line.ID, "3")
	form.Set("name_"+custom.ID, "真鍮取手")
	form.Set("price_"+custom.ID, "ええと")

	req := httptest.NewRequest("POST", "/estimate", nil)
	req.PostForm = form
	req.Form = form

	srv.applyWorksheetForm(req)

	if srv.inputs.ProductName != "飾り棚" || srv.inputs.LaborDays != 2.5 {
		t.Fatalf("unexpected inputs: %+v", srv.inputs)
	}
	if srv.inputs.DailyLaborRate != 0 || srv.inputs.ProjectProfitRatePercent != 0 {
		t.Fatalf("expected unparsable numbers to coerce to zero: %+v", srv.inputs)
	}

	lines := srv.builder.Lines()
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %v", lines[0].Quantity)
	}
	if lines[1].Name != "真鍮取手" || lines[1].UnitPrice != 0 {
		t.Fatalf("unexpected custom line: %+v", lines[1])
	}
}

func TestApplyWorksheetFormSkipsAbsentLineFields(t *testing.T) {
	srv := newTestServer(t)
	line := srv.builder.AddFromCatalog(catalog.CategoryDecorative, firstCatalogItem(t, srv, catalog.CategoryDecorative))
	srv.builder.SetQuantity(line.ID, 4)

	form := url.Values{}
	form.Set("productName", "棚")

	req := httptest.NewRequest("POST", "/estimate", nil)
	req.PostForm = form
	req.Form = form

	srv.applyWorksheetForm(req)

	if got := srv.builder.Lines()[0].Quantity; got != 4 {
		t.Fatalf("expected quantity untouched, got %v", got)
	}
}

func TestAddMaterialLineIgnoresBlankAndUnknownSelection(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{}
	form.Set("item_"+catalog.CategoryDecorative, "")
	req := httptest.NewRequest("POST", "/estimate", nil)
	req.PostForm = form
	req.Form = form
	srv.addMaterialLine(catalog.CategoryDecorative, req)

	form.Set("item_"+catalog.CategoryDecorative, "no-such-id")
	srv.addMaterialLine(catalog.CategoryDecorative, req)

	if len(srv.builder.Lines()) != 0 {
		t.Fatalf("expected no lines, got %+v", srv.builder.Lines())
	}

	item := firstCatalogItem(t, srv, catalog.CategoryDecorative)
	form.Set("item_"+catalog.CategoryDecorative, item.ID)
	srv.addMaterialLine(catalog.CategoryDecorative, req)

	lines := srv.builder.Lines()
	if len(lines) != 1 || lines[0].Name != item.Name {
		t.Fatalf("expected snapshot of %s, got %+v", item.Name, lines)
	}
}

func TestSaveEstimateAppendsAndStagesNextNumber(t *testing.T) {
	srv := newTestServer(t)
	srv.builder.AddFromCatalog(catalog.CategoryDecorative, firstCatalogItem(t, srv, catalog.CategoryDecorative))
	srv.inputs.ProductName = "食器棚"
	srv.inputs.LaborDays = 2
	srv.inputs.DailyLaborRate = 15000

	saved, err := srv.saveEstimate()
	if err != nil {
		t.Fatalf("saveEstimate returned error: %v", err)
	}

	if saved.Number != "20240510-001" {
		t.Fatalf("expected number 20240510-001, got %s", saved.Number)
	}
	if saved.FinalPrice != srv.result.Totals.FinalPrice {
		t.Fatalf("saved price %v does not match result %v", saved.FinalPrice, srv.result.Totals.FinalPrice)
	}
	if len(saved.Materials) != 1 {
		t.Fatalf("expected 1 material, got %+v", saved.Materials)
	}
	if srv.inputs.EstimateNumber != "20240510-002" {
		t.Fatalf("expected next number staged, got %s", srv.inputs.EstimateNumber)
	}
}

func TestResetWorksheetKeepsStagedNumber(t *testing.T) {
	srv := newTestServer(t)
	srv.builder.AddCustom(catalog.CategoryOutsourced)
	srv.inputs.ProductName = "椅子"
	srv.computeResult()

	srv.resetWorksheet()

	if len(srv.builder.Lines()) != 0 || srv.result != nil {
		t.Fatalf("expected cleared session")
	}
	if srv.inputs.ProductName != "" {
		t.Fatalf("expected cleared inputs, got %+v", srv.inputs)
	}
	if srv.inputs.EstimateNumber != "20240510-001" {
		t.Fatalf("expected staged number, got %s", srv.inputs.EstimateNumber)
	}
}
