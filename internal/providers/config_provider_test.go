package providers

import (
	"hobbyboard/internal/structures"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
webServer:
  host: 127.0.0.1
  port: 8090
persistence:
  filePath: /tmp/hobbyboard.dat
logger:
  level: info
  mode: 420
  dir: /tmp
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfigProvider_Defaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "HobbyBoard", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, "file", conf.Store.Backend)
	assert.Equal(t, 30*time.Second, conf.Persistence.SaveInterval)
	assert.Equal(t, 50, conf.Attendance.DisplayLimit)
	assert.Equal(t, 12, conf.Gallery.Size)
	assert.Equal(t, time.Minute, conf.Cache.TTL)
	assert.Len(t, conf.Hobbies, 7)
}

func TestNewConfigProvider_FileValues(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
store:
  backend: sqlite
  path: /tmp/hobbyboard.db
  timezone: Asia/Seoul
attendance:
  oncePerDay: true
gallery:
  size: 4
hobbies:
  - name: 바둑
    slug: baduk
    icon: "⚫"
    color: "#333333"
    members: 12
`)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "sqlite", conf.Store.Backend)
	assert.Equal(t, "Asia/Seoul", conf.Store.Timezone)
	assert.True(t, conf.Attendance.OncePerDay)
	assert.Equal(t, 4, conf.Gallery.Size)
	require.Len(t, conf.Hobbies, 1)
	assert.Equal(t, "baduk", conf.Hobbies[0].Slug)
	assert.Equal(t, 12, conf.Hobbies[0].Members)
}

func TestNewConfigProvider_EnvOverrides(t *testing.T) {
	path := writeConfig(t, minimalConfig)
	t.Setenv("HOBBY_STORE_BACKEND", "memory")
	t.Setenv("HOBBY_SAVE_INTERVAL", "5s")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "memory", conf.Store.Backend)
	assert.Equal(t, 5*time.Second, conf.Persistence.SaveInterval)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "none.yml")})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidBackend(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
store:
  backend: redis
`)
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
