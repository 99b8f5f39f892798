package voucher

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/voucherkit/pkg/codegen"
)

// Config holds environment-driven settings for bags and their code generator.
//
//	VOUCHER_CODE_PARTS=3
//	VOUCHER_CODE_PART_LENGTH=4
//	VOUCHER_CODE_ALPHABET=ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789
//	VOUCHER_CODE_SEPARATOR=-
//	VOUCHER_FILL_MAX_ATTEMPTS=100
type Config struct {
	Code            codegen.Config `envPrefix:"VOUCHER_CODE_"`
	FillMaxAttempts int            `env:"VOUCHER_FILL_MAX_ATTEMPTS" envDefault:"100"`
}

// LoadConfig loads the given .env files, if any, then parses Config from the
// process environment. Variables already set in the environment win over files.
func LoadConfig(files ...string) (Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Config{}, errors.Join(ErrInvalidConfig, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if cfg.FillMaxAttempts <= 0 {
		return Config{}, errors.Join(ErrInvalidConfig,
			fmt.Errorf("fill max attempts must be positive, got %d", cfg.FillMaxAttempts))
	}
	return cfg, nil
}

// MustLoadConfig is like LoadConfig but panics on failure.
func MustLoadConfig(files ...string) Config {
	cfg, err := LoadConfig(files...)
	if err != nil {
		panic(fmt.Sprintf("failed to load voucher configuration: %v", err))
	}
	return cfg
}

// NewBagFromConfig creates a bag whose code generator follows cfg.Code.
// A generator already attached to the code field of a WithModel model is kept.
func NewBagFromConfig(cfg Config, opts ...Option) (*Bag, error) {
	gen, err := codegen.NewFromConfig(cfg.Code)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	b := NewBag(append([]Option{WithMaxAttempts(cfg.FillMaxAttempts)}, opts...)...)
	if spec, _ := b.model.Spec(CodeField); spec.Generator == nil {
		b.model = b.model.withCodeGenerator(gen)
	}
	return b, nil
}
