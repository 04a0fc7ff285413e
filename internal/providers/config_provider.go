package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"hobbyboard/internal/structures"
	"path/filepath"
	"strings"
	"time"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("store.backend", "file")
	v.SetDefault("persistence.saveInterval", 30*time.Second)
	v.SetDefault("attendance.displayLimit", 50)
	v.SetDefault("gallery.size", 12)
	v.SetDefault("cache.ttl", time.Minute)

	v.BindEnv("logger.level", "HOBBY_LOG_LEVEL")
	v.BindEnv("store.backend", "HOBBY_STORE_BACKEND")
	v.BindEnv("store.path", "HOBBY_STORE_PATH")
	v.BindEnv("store.timezone", "HOBBY_TIMEZONE")
	v.BindEnv("persistence.filePath", "HOBBY_DATA_FILE")
	v.BindEnv("persistence.saveInterval", "HOBBY_SAVE_INTERVAL")
	v.BindEnv("cache.enabled", "HOBBY_CACHE_ENABLED")
	v.BindEnv("cache.size", "HOBBY_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if len(conf.Hobbies) == 0 {
		conf.Hobbies = structures.DefaultHobbies()
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "HobbyBoard"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
