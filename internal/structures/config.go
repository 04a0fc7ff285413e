package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// StoreConfig selects the key-value backend behind the record store.
// Path is only used by the sqlite backend.
type StoreConfig struct {
	Backend  string `yaml:"backend" validate:"required|in:memory,file,sqlite"`
	Path     string `yaml:"path" validate:"unixPath"`
	Timezone string `yaml:"timezone"`
}

type AttendanceConfig struct {
	DisplayLimit int  `yaml:"displayLimit" validate:"min:0"`
	OncePerDay   bool `yaml:"oncePerDay"`
}

type GalleryConfig struct {
	Size int `yaml:"size" validate:"required|min:1"`
}

type HobbyConfig struct {
	Name    string `yaml:"name"`
	Slug    string `yaml:"slug"`
	Icon    string `yaml:"icon"`
	Color   string `yaml:"color"`
	Members int    `yaml:"members"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server           `yaml:"webServer"`
	Store       StoreConfig      `yaml:"store"`
	Persistence Persistence      `yaml:"persistence"`
	Logger      LoggerConfig     `yaml:"logger"`
	Attendance  AttendanceConfig `yaml:"attendance"`
	Gallery     GalleryConfig    `yaml:"gallery"`
	Hobbies     []HobbyConfig    `yaml:"hobbies"`
	Cache       CacheConfig      `yaml:"cache"`
	Metrics     MetricsConfig    `yaml:"metrics"`
}

// DefaultHobbies is the catalog used when the config file lists none.
func DefaultHobbies() []HobbyConfig {
	return []HobbyConfig{
		{Name: "뜨개질", Slug: "knitting", Icon: "🧶", Color: "#FF6B6B", Members: 90},
		{Name: "독서", Slug: "reading", Icon: "📚", Color: "#4ECDC4", Members: 280},
		{Name: "필사", Slug: "transcription", Icon: "✍️", Color: "#45B7D1", Members: 50},
		{Name: "다이어리 꾸미기", Slug: "diary", Icon: "📔", Color: "#FFA07A", Members: 150},
		{Name: "헬스", Slug: "fitness", Icon: "💪", Color: "#98D8C8", Members: 220},
		{Name: "요가", Slug: "yoga", Icon: "🧘", Color: "#F7DC6F", Members: 130},
		{Name: "수영", Slug: "swimming", Icon: "🏊", Color: "#BB8FCE", Members: 80},
	}
}
