package config

import (
	"os"
	"path/filepath"
	"testing"

	"deluxeblackjack-server/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	a := assert.New(t)

	contents := `
pgDsn: postgres://localhost/blackjack
dealerPlayDelay: 2
table:
  deckCount: 4
  blackjackPayout: 1.2
  minimumBet: 10
  dealerStandsOnSoft17: false
`

	path := filepath.Join(t.TempDir(), "config.yaml")
	a.NoError(os.WriteFile(path, []byte(contents), 0600))

	unset := util.SetEnv("DBJ_CONFIG_FILE", path)
	defer unset()

	a.NoError(Load())
	a.Equal("postgres://localhost/blackjack", config.PGDSN)
	a.Equal(2, config.DealerPlayDelay)
	a.Equal(4, config.Table.DeckCount)
	a.Equal(1.2, config.Table.BlackjackPayout)
	a.Equal(10, config.Table.MinimumBet)
	if a.NotNil(config.Table.DealerStandsOnSoft17) {
		a.False(*config.Table.DealerStandsOnSoft17)
	}
	a.Nil(config.Table.AllowDoubleAfterSplit)
}

func TestLoad_EnvOverride(t *testing.T) {
	a := assert.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	a.NoError(os.WriteFile(path, []byte("pgDsn: from-file\n"), 0600))

	unsetFile := util.SetEnv("DBJ_CONFIG_FILE", path)
	defer unsetFile()

	unsetDSN := util.SetEnv("DBJ_PG_DSN", "from-env")
	defer unsetDSN()

	a.NoError(Load())
	a.Equal("from-env", config.PGDSN)
}

func TestLoad_MissingFile(t *testing.T) {
	a := assert.New(t)

	unset := util.SetEnv("DBJ_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	defer unset()

	a.NoError(Load())
	a.True(config.loaded)
}
