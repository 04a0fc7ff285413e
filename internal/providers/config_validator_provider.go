package providers

import (
	"fmt"
	"hobbyboard/internal/structures"
	"time"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	switch cv.conf.Store.Backend {
	case "file":
		if cv.conf.Persistence.FilePath == "" {
			return fmt.Errorf("persistence.filePath is required for the file backend")
		}
	case "sqlite":
		if cv.conf.Store.Path == "" {
			return fmt.Errorf("store.path is required for the sqlite backend")
		}
	}

	if cv.conf.Store.Timezone != "" {
		if _, err := time.LoadLocation(cv.conf.Store.Timezone); err != nil {
			return fmt.Errorf("store.timezone: %w", err)
		}
	}

	return cv.validateHobbies()
}

func (cv *CnfValidator) validateHobbies() error {
	seen := make(map[string]struct{}, len(cv.conf.Hobbies))
	for i, h := range cv.conf.Hobbies {
		if h.Name == "" || h.Slug == "" {
			return fmt.Errorf("hobbies[%d]: name and slug are required", i)
		}
		if h.Members < 0 {
			return fmt.Errorf("hobbies[%d]: members must not be negative", i)
		}
		if _, dup := seen[h.Slug]; dup {
			return fmt.Errorf("hobbies[%d]: duplicate slug %q", i, h.Slug)
		}
		seen[h.Slug] = struct{}{}
	}
	return nil
}
