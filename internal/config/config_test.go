package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/magefree/mage-casting/internal/game/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 30, cfg.AI.CopyConfig().ChanceToCopyOwnSpell)
	assert.Equal(t, payment.RankDescending, cfg.Payment.RankOrder(payment.ModeConvoke))
	assert.Equal(t, payment.RankAsGiven, cfg.Payment.RankOrder(payment.ModeImprovise))
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
ai:
  chance_to_copy_own_spell_while_on_stack: 75
  always_copy_spell_if_cmc_diff: 3
  seed: 1234
  denylist_path: denylist.yaml
payment:
  convoke_order: ascending
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 75, cfg.AI.ChanceToCopyOwnSpellWhileOnStack)
	assert.Equal(t, 3, cfg.AI.AlwaysCopySpellIfCMCDiff)
	assert.Equal(t, int64(1234), cfg.AI.Seed)
	assert.Equal(t, "denylist.yaml", cfg.AI.DenylistPath)
	assert.Equal(t, payment.RankAscending, cfg.Payment.RankOrder(payment.ModeConvoke))
	assert.Equal(t, payment.RankAsGiven, cfg.Payment.RankOrder(payment.ModeImprovise))
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "ai:\n  chance_to_copy_own_spell_while_on_stack: 75\n")
	t.Setenv("CASTCORE_AI_CHANCE_TO_COPY_OWN_SPELL_WHILE_ON_STACK", "5")
	t.Setenv("CASTCORE_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.AI.ChanceToCopyOwnSpellWhileOnStack)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	tests := map[string]string{
		"chance":   "ai:\n  chance_to_copy_own_spell_while_on_stack: 150\n",
		"cmc diff": "ai:\n  always_copy_spell_if_cmc_diff: -1\n",
		"level":    "logging:\n  level: loud\n",
		"format":   "logging:\n  format: xml\n",
		"order":    "payment:\n  improvise_order: random\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}
