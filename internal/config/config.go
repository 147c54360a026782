package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/magefree/mage-casting/internal/game/ai"
	"github.com/magefree/mage-casting/internal/game/payment"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// CASTCORE_AI_CHANCE_TO_COPY_OWN_SPELL_WHILE_ON_STACK.
const EnvPrefix = "CASTCORE"

// Config is the root configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	AI      AIConfig      `mapstructure:"ai"`
	Payment PaymentConfig `mapstructure:"payment"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// AIConfig is the AI profile used by the copy decision.
type AIConfig struct {
	ChanceToCopyOwnSpellWhileOnStack int    `mapstructure:"chance_to_copy_own_spell_while_on_stack"`
	AlwaysCopySpellIfCMCDiff         int    `mapstructure:"always_copy_spell_if_cmc_diff"`
	Seed                             int64  `mapstructure:"seed"` // 0 seeds from the clock
	DenylistPath                     string `mapstructure:"denylist_path"`
}

// PaymentConfig sets the order auto-payment walks sources in, per mode.
type PaymentConfig struct {
	ConvokeOrder   string `mapstructure:"convoke_order"`
	ImproviseOrder string `mapstructure:"improvise_order"`
}

// Load reads path (YAML) on top of the defaults and applies environment
// overrides. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration Load produces with no file and no environment.
func Default() *Config {
	copyCfg := ai.DefaultCopyConfig()
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		AI: AIConfig{
			ChanceToCopyOwnSpellWhileOnStack: copyCfg.ChanceToCopyOwnSpell,
			AlwaysCopySpellIfCMCDiff:         copyCfg.AlwaysCopyIfCMCDiff,
		},
		Payment: PaymentConfig{
			ConvokeOrder:   string(payment.DefaultRankOrder(payment.ModeConvoke)),
			ImproviseOrder: string(payment.DefaultRankOrder(payment.ModeImprovise)),
		},
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("ai.chance_to_copy_own_spell_while_on_stack", def.AI.ChanceToCopyOwnSpellWhileOnStack)
	v.SetDefault("ai.always_copy_spell_if_cmc_diff", def.AI.AlwaysCopySpellIfCMCDiff)
	v.SetDefault("ai.seed", def.AI.Seed)
	v.SetDefault("ai.denylist_path", def.AI.DenylistPath)
	v.SetDefault("payment.convoke_order", def.Payment.ConvokeOrder)
	v.SetDefault("payment.improvise_order", def.Payment.ImproviseOrder)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}
	if p := c.AI.ChanceToCopyOwnSpellWhileOnStack; p < 0 || p > 100 {
		errs = append(errs, fmt.Errorf("ai.chance_to_copy_own_spell_while_on_stack: %d is not a percentage", p))
	}
	if c.AI.AlwaysCopySpellIfCMCDiff < 0 {
		errs = append(errs, fmt.Errorf("ai.always_copy_spell_if_cmc_diff: must not be negative"))
	}
	if _, err := payment.ParseRankOrder(c.Payment.ConvokeOrder); err != nil {
		errs = append(errs, fmt.Errorf("payment.convoke_order: %w", err))
	}
	if _, err := payment.ParseRankOrder(c.Payment.ImproviseOrder); err != nil {
		errs = append(errs, fmt.Errorf("payment.improvise_order: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// CopyConfig returns the AI profile in the form the copy decision takes.
func (c AIConfig) CopyConfig() ai.CopyConfig {
	return ai.CopyConfig{
		ChanceToCopyOwnSpell: c.ChanceToCopyOwnSpellWhileOnStack,
		AlwaysCopyIfCMCDiff:  c.AlwaysCopySpellIfCMCDiff,
	}
}

// RankOrder returns the configured auto-payment order for mode.
func (c PaymentConfig) RankOrder(mode payment.Mode) payment.RankOrder {
	raw := c.ConvokeOrder
	if mode == payment.ModeImprovise {
		raw = c.ImproviseOrder
	}
	order, err := payment.ParseRankOrder(raw)
	if err != nil {
		return payment.DefaultRankOrder(mode)
	}
	return order
}
