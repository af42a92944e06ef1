package config

import (
	"testing"
	"time"
)

func TestLoadGameDefaults(t *testing.T) {
	cfg, err := LoadGame()
	if err != nil {
		t.Fatalf("LoadGame() error = %v", err)
	}
	if cfg.MaxRounds != 2 {
		t.Fatalf("MaxRounds = %d, want 2", cfg.MaxRounds)
	}
	if cfg.InitialResource != 10 {
		t.Fatalf("InitialResource = %d, want 10", cfg.InitialResource)
	}
	if cfg.RerollCost != 3 {
		t.Fatalf("RerollCost = %d, want 3", cfg.RerollCost)
	}
}

func TestLoadGameOverrides(t *testing.T) {
	t.Setenv("MAX_ROUNDS", "5")
	t.Setenv("SHOP_SIZE", "7")
	t.Setenv("PREPARATION_SECONDS", "90")

	cfg, err := LoadGame()
	if err != nil {
		t.Fatalf("LoadGame() error = %v", err)
	}
	if cfg.MaxRounds != 5 || cfg.ShopSize != 7 || cfg.PreparationSecs != 90 {
		t.Fatalf("unexpected game config: %+v", cfg)
	}
}

func TestGameConfigRules(t *testing.T) {
	cfg, err := LoadGame()
	if err != nil {
		t.Fatalf("LoadGame() error = %v", err)
	}
	rules := cfg.Rules(30)
	if rules.PreparationBudget != 45*time.Second {
		t.Fatalf("PreparationBudget = %v, want 45s", rules.PreparationBudget)
	}
	if rules.OracleGrace != 30*time.Second {
		t.Fatalf("OracleGrace = %v, want 30s", rules.OracleGrace)
	}
	if rules.FinalBonusPerMaxedCard != 100 {
		t.Fatalf("FinalBonusPerMaxedCard = %d, want 100", rules.FinalBonusPerMaxedCard)
	}
}
