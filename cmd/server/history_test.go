package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/takumikoubou/mitsumori/internal/catalog"
)

func savedEstimate(t *testing.T, srv *server) string {
	t.Helper()

	srv.builder.AddFromCatalog(catalog.CategoryDecorative, firstCatalogItem(t, srv, catalog.CategoryDecorative))
	srv.inputs.ProductName = "座卓"
	srv.inputs.LaborDays = 1
	srv.inputs.DailyLaborRate = 18000

	saved, err := srv.saveEstimate()
	if err != nil {
		t.Fatalf("saveEstimate returned error: %v", err)
	}
	return saved.ID
}

func TestHandleHistoryLoadRestoresWorksheet(t *testing.T) {
	srv := newTestServer(t)
	id := savedEstimate(t, srv)
	srv.resetWorksheet()

	router := newRouter(srv)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/history/"+id+"/load", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if srv.inputs.ProductName != "座卓" || srv.inputs.EstimateNumber != "20240510-001" {
		t.Fatalf("worksheet not restored: %+v", srv.inputs)
	}
	if len(srv.builder.Lines()) != 1 {
		t.Fatalf("expected 1 restored line, got %+v", srv.builder.Lines())
	}
	if srv.result == nil {
		t.Fatalf("expected recalculated result after load")
	}
}

func TestHandleHistoryLoadUnknownIDReturns404(t *testing.T) {
	srv := newTestServer(t)

	router := newRouter(srv)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/history/nope/load", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleHistoryDeleteIsBenignForUnknownID(t *testing.T) {
	srv := newTestServer(t)
	id := savedEstimate(t, srv)

	router := newRouter(srv)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/history/"+id+"/delete", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if len(srv.history.All()) != 0 {
		t.Fatalf("expected empty history, got %+v", srv.history.All())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/history/"+id+"/delete", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected benign redirect for repeated delete, got %d", rec.Code)
	}
}

func TestHandleHistoryExportWritesWorkbook(t *testing.T) {
	srv := newTestServer(t)
	id := savedEstimate(t, srv)

	router := newRouter(srv)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/history/"+id+"/export", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="mitsumori_20240510-001.xlsx"` {
		t.Fatalf("unexpected disposition: %s", got)
	}

	file, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatalf("response is not a readable workbook: %v", err)
	}
	defer file.Close()

	number, err := file.GetCellValue("Sheet1", "B1")
	if err != nil {
		t.Fatalf("failed to read cell: %v", err)
	}
	if number != "20240510-001" {
		t.Fatalf("expected estimate number in B1, got %q", number)
	}
}
