package providers

import (
	"hobbyboard/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: structures.StoreConfig{
			Backend: "file",
		},
		Persistence: structures.Persistence{
			FilePath:     "/tmp/hobbyboard.dat",
			SaveInterval: 30 * time.Second,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Gallery: structures.GalleryConfig{
			Size: 12,
		},
		Hobbies: structures.DefaultHobbies(),
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_UnknownBackend(t *testing.T) {
	c := validConfig()
	c.Store.Backend = "redis"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_FileBackendNeedsPath(t *testing.T) {
	c := validConfig()
	c.Persistence.FilePath = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_SQLiteBackendNeedsPath(t *testing.T) {
	c := validConfig()
	c.Store.Backend = "sqlite"
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Store.Path = "/tmp/hobbyboard.db"
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_BadTimezone(t *testing.T) {
	c := validConfig()
	c.Store.Timezone = "Mars/Olympus"
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Store.Timezone = "Asia/Seoul"
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_ZeroGallery(t *testing.T) {
	c := validConfig()
	c.Gallery.Size = 0
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_Hobbies(t *testing.T) {
	c := validConfig()
	c.Hobbies = append(c.Hobbies, structures.HobbyConfig{Name: "요가 2", Slug: "yoga"})
	assert.Error(t, NewCnfValidator(c).Validate(), "duplicate slug")

	c = validConfig()
	c.Hobbies[0].Slug = ""
	assert.Error(t, NewCnfValidator(c).Validate())

	c = validConfig()
	c.Hobbies[0].Members = -1
	assert.Error(t, NewCnfValidator(c).Validate())
}
