package controllers

import (
	"errors"
	json "github.com/goccy/go-json"
	"hobbyboard/internal/models"
	"hobbyboard/internal/providers"
	"hobbyboard/internal/services"
	"net/http"
	"sync"

	"go.uber.org/atomic"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.CommunityServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface

	// generation changes on every mutation. A read only fills the cache
	// when it is unchanged since the read started.
	generation atomic.Uint64
	cacheMu    sync.Mutex
}

type visitResponse struct {
	VisitorCount int `json:"visitor_count"`
}

type commentRequest struct {
	Hobby  string `json:"hobby"`
	Image  string `json:"image"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

type checkInRequest struct {
	Name string `json:"name"`
}

type likeRequest struct {
	Image string `json:"image"`
}

func NewApiController(logger providers.Logger, service services.CommunityServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
		metrics: metrics,
	}
}

func writeJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (ac *ApiController) respond(w http.ResponseWriter, status int, result any) {
	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, gson)
}

// fail maps service errors onto status codes. Anything that is not a
// domain error is a store fault and is logged.
func (ac *ApiController) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (ac *ApiController) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		ac.logger.Debugf(providers.TypePost, "Bad payload on %s: %s", r.URL.Path, err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

// mutated drops cached reads after a successful write.
func (ac *ApiController) mutated(kind string) {
	ac.cacheMu.Lock()
	ac.generation.Inc()
	ac.cache.Clear()
	ac.cacheMu.Unlock()
	ac.metrics.IncMutations(kind)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	gen := ac.generation.Load()
	result, err := compute()
	if err != nil {
		ac.fail(w, r, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cacheMu.Lock()
	if ac.generation.Load() == gen {
		ac.cache.Set(cacheKey, gson)
	}
	ac.cacheMu.Unlock()
	writeJSON(w, http.StatusOK, gson)
}

func (ac *ApiController) RecordVisit(w http.ResponseWriter, r *http.Request) {
	count, err := ac.service.RecordVisit()
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.mutated("visit")
	ac.respond(w, http.StatusOK, visitResponse{VisitorCount: count})
}

func (ac *ApiController) GetSummary(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "summary", func() (any, error) {
		return ac.service.Summary(), nil
	})
}

func (ac *ApiController) GetHobbies(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "hobbies", func() (any, error) {
		return ac.service.Hobbies(), nil
	})
}

func (ac *ApiController) GetComments(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("hobby")
	ac.serveFromCacheOrCompute(w, r, "comments:"+slug, func() (any, error) {
		return ac.service.HobbyComments(slug)
	})
}

func (ac *ApiController) AddComment(w http.ResponseWriter, r *http.Request) {
	var payload commentRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	comment, err := ac.service.AddHobbyComment(payload.Hobby, models.CommentInput{
		Author: payload.Author,
		Text:   payload.Text,
	})
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.mutated("comment")
	ac.respond(w, http.StatusCreated, comment)
}

func (ac *ApiController) GetAttendance(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "attendance", func() (any, error) {
		return ac.service.AttendanceBoard(), nil
	})
}

func (ac *ApiController) CheckIn(w http.ResponseWriter, r *http.Request) {
	var payload checkInRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	entry, err := ac.service.CheckIn(models.AttendanceInput{Name: payload.Name})
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.mutated("attendance")
	ac.respond(w, http.StatusCreated, entry)
}

func (ac *ApiController) GetGallery(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "gallery", func() (any, error) {
		return ac.service.GalleryImages(), nil
	})
}

func (ac *ApiController) GetGalleryImage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	ac.serveFromCacheOrCompute(w, r, "image:"+id, func() (any, error) {
		return ac.service.GalleryImage(id)
	})
}

func (ac *ApiController) ToggleLike(w http.ResponseWriter, r *http.Request) {
	var payload likeRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	state, err := ac.service.ToggleLike(payload.Image)
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.mutated("like")
	ac.respond(w, http.StatusOK, state)
}

func (ac *ApiController) AddGalleryComment(w http.ResponseWriter, r *http.Request) {
	var payload commentRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	comment, err := ac.service.AddGalleryComment(payload.Image, models.CommentInput{
		Author: payload.Author,
		Text:   payload.Text,
	})
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.mutated("gallery_comment")
	ac.respond(w, http.StatusCreated, comment)
}
