package config

import "testing"

func TestLoadDefaultsAndCategoryOverride(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("CATALOG_CATEGORIES", " 化粧材, 金物 ,,")

	cfg := Load()

	if cfg.DBPath != defaultDBPath || cfg.Port != defaultPort {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if !cfg.IsDev() {
		t.Fatal("empty APP_ENV must count as dev")
	}
	if len(cfg.Categories) != 2 || cfg.Categories[0] != "化粧材" || cfg.Categories[1] != "金物" {
		t.Fatalf("unexpected categories: %v", cfg.Categories)
	}
}

func TestIsDevProduction(t *testing.T) {
	cfg := Config{AppEnv: "production"}
	if cfg.IsDev() {
		t.Fatal("production must not be dev")
	}
}
