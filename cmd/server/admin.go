package main

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/takumikoubou/mitsumori/internal/catalog"
)

func (s *server) handleAdminMaterialsForm(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.renderTemplate(w, "admin_materials.html", s.adminMaterialsView(baseViewData{
		ErrorMessage:   r.URL.Query().Get("error"),
		SuccessMessage: r.URL.Query().Get("success"),
	}))
}

func (s *server) handleAdminMaterialsCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	category := r.FormValue("category")
	name := strings.TrimSpace(r.FormValue("name"))
	spec := strings.TrimSpace(r.FormValue("spec"))

	price, err := parseNonNegativeFloat(r.FormValue("price"), "単価")
	if err != nil {
		http.Redirect(w, r, "/admin/materials?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	s.mu.Lock()
	_, err = s.catalog.AddItem(category, name, spec, price)
	s.mu.Unlock()
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidItem):
			http.Redirect(w, r, "/admin/materials?error="+url.QueryEscape("材料名と規格を入力してください。"), http.StatusSeeOther)
		case errors.Is(err, catalog.ErrDuplicateItem):
			http.Redirect(w, r, "/admin/materials?error="+url.QueryEscape("同じ材料がすでに登録されています。"), http.StatusSeeOther)
		case errors.Is(err, catalog.ErrUnknownCategory):
			http.Redirect(w, r, "/admin/materials?error="+url.QueryEscape("カテゴリが不正です。"), http.StatusSeeOther)
		default:
			s.log.WithError(err).Error("failed to add material")
			http.Error(w, "failed to add material", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, "/admin/materials?success="+url.QueryEscape("材料を追加しました。"), http.StatusSeeOther)
}

func (s *server) handleAdminMaterialsPrices(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	edits := parsePriceEdits(r.PostForm)

	s.mu.Lock()
	err := s.catalog.UpdatePrices(edits)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, catalog.ErrEditOutOfRange) || errors.Is(err, catalog.ErrUnknownCategory) {
			http.Redirect(w, r, "/admin/materials?error="+url.QueryEscape("価格の更新対象が見つかりませんでした。"), http.StatusSeeOther)
			return
		}
		s.log.WithError(err).Error("failed to update prices")
		http.Error(w, "failed to update prices", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/materials?success="+url.QueryEscape("価格を更新しました。"), http.StatusSeeOther)
}
