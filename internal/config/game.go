package config

import (
	"time"

	"pitch-arena/internal/game"

	"github.com/caarlos0/env/v11"
)

// GameConfig exposes every match rule as an environment knob so an
// operator can retune the economy without a rebuild.
type GameConfig struct {
	MaxRounds              int `env:"MAX_ROUNDS" envDefault:"2"`
	InitialResource        int `env:"INITIAL_RESOURCE" envDefault:"10"`
	ShopSize               int `env:"SHOP_SIZE" envDefault:"5"`
	MaxFielded             int `env:"MAX_FIELDED" envDefault:"3"`
	RerollCost             int `env:"REROLL_COST" envDefault:"3"`
	MaxProficiencyLevel    int `env:"MAX_PROFICIENCY_LEVEL" envDefault:"5"`
	FinalBonusPerMaxedCard int `env:"FINAL_BONUS_PER_MAXED_CARD" envDefault:"100"`
	PerLevelBonus          int `env:"PER_LEVEL_BONUS" envDefault:"5"`
	ResourceDivisor        int `env:"RESOURCE_DIVISOR" envDefault:"50"`
	ResourceFlatBonus      int `env:"RESOURCE_FLAT_BONUS" envDefault:"5"`
	NeutralFallbackScore   int `env:"NEUTRAL_FALLBACK_SCORE" envDefault:"50"`

	PreparationSecs      int `env:"PREPARATION_SECONDS" envDefault:"45"`
	SubmissionReviewSecs int `env:"SUBMISSION_REVIEW_SECONDS" envDefault:"10"`
	RoundResultSecs      int `env:"ROUND_RESULT_SECONDS" envDefault:"20"`
}

func LoadGame() (GameConfig, error) {
	var cfg GameConfig
	err := env.Parse(&cfg)
	return cfg, err
}

// Rules converts the env view into the engine's rule set. The oracle
// grace lives on ServerConfig because it is a transport timeout, not a
// scoring rule, but the engine carries it for phase accounting.
func (c GameConfig) Rules(oracleTimeoutSecs int) game.Rules {
	r := game.DefaultRules()
	r.MaxRounds = c.MaxRounds
	r.InitialResource = c.InitialResource
	r.ShopSize = c.ShopSize
	r.MaxFielded = c.MaxFielded
	r.RerollCost = c.RerollCost
	r.MaxProficiencyLevel = c.MaxProficiencyLevel
	r.FinalBonusPerMaxedCard = c.FinalBonusPerMaxedCard
	r.PerLevelBonus = c.PerLevelBonus
	r.ResourceDivisor = c.ResourceDivisor
	r.ResourceFlatBonus = c.ResourceFlatBonus
	r.NeutralFallbackScore = c.NeutralFallbackScore
	r.PreparationBudget = time.Duration(c.PreparationSecs) * time.Second
	r.SubmissionReviewBudget = time.Duration(c.SubmissionReviewSecs) * time.Second
	r.RoundResultBudget = time.Duration(c.RoundResultSecs) * time.Second
	if oracleTimeoutSecs > 0 {
		r.OracleGrace = time.Duration(oracleTimeoutSecs) * time.Second
	}
	return r
}
