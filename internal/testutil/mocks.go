package testutil

import (
	"hobbyboard/internal/models"
	"hobbyboard/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

// Has reports whether anything was logged at level.
func (m *MockLogger) Has(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level {
			return true
		}
	}
	return false
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// FailingKV implements kvstore.Store and fails with the configured errors.
// With no errors set it behaves as an always-empty store.
type FailingKV struct {
	GetErr error
	SetErr error
}

func (f *FailingKV) Get(_ string) (string, bool, error) { return "", false, f.GetErr }
func (f *FailingKV) Set(_, _ string) error              { return f.SetErr }
func (f *FailingKV) Remove(_ string) error              { return f.SetErr }
func (f *FailingKV) Keys() ([]string, error)            { return nil, f.GetErr }
func (f *FailingKV) Clear() error                       { return f.SetErr }
func (f *FailingKV) Close() error                       { return nil }

// MockCommunityService implements services.CommunityServiceInterface with
// canned data and injectable errors.
type MockCommunityService struct {
	mu sync.Mutex

	Visitors        int
	HobbyList       []models.Hobby
	Comments        map[string][]models.Comment
	Attendance      models.AttendanceBoard
	Images          []models.GalleryImage
	Like            models.LikeState
	SummaryData     models.Summary
	Err             error
	AddCommentCalls []AddCommentCall
	CheckInCalls    []models.AttendanceInput
	ToggleCalls     []string
}

type AddCommentCall struct {
	Target string
	Input  models.CommentInput
}

func (m *MockCommunityService) RecordVisit() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	m.Visitors++
	return m.Visitors, nil
}

func (m *MockCommunityService) VisitorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Visitors
}

func (m *MockCommunityService) Hobbies() []models.Hobby { return m.HobbyList }

func (m *MockCommunityService) AddHobbyComment(slug string, in models.CommentInput) (models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddCommentCalls = append(m.AddCommentCalls, AddCommentCall{Target: slug, Input: in})
	if m.Err != nil {
		return models.Comment{}, m.Err
	}
	return models.Comment{ID: 1, Author: in.Author, Text: in.Text, Date: time.Unix(0, 0).UTC()}, nil
}

func (m *MockCommunityService) HobbyComments(slug string) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if list, ok := m.Comments[slug]; ok {
		return list, nil
	}
	return []models.Comment{}, nil
}

func (m *MockCommunityService) TotalPosts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, list := range m.Comments {
		total += len(list)
	}
	return total
}

func (m *MockCommunityService) CheckIn(in models.AttendanceInput) (models.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckInCalls = append(m.CheckInCalls, in)
	if m.Err != nil {
		return models.Attendance{}, m.Err
	}
	return models.Attendance{ID: 1, Name: in.Name, Date: time.Unix(0, 0).UTC()}, nil
}

func (m *MockCommunityService) AttendanceBoard() models.AttendanceBoard { return m.Attendance }
func (m *MockCommunityService) TodayAttendance() int                   { return m.Attendance.Today }
func (m *MockCommunityService) TotalAttendance() int                   { return m.Attendance.Total }
func (m *MockCommunityService) GalleryImages() []models.GalleryImage   { return m.Images }

func (m *MockCommunityService) GalleryImage(imageID string) (models.GalleryImage, error) {
	if m.Err != nil {
		return models.GalleryImage{}, m.Err
	}
	for _, img := range m.Images {
		if img.ID == imageID {
			return img, nil
		}
	}
	return models.GalleryImage{ID: imageID}, nil
}

func (m *MockCommunityService) ToggleLike(imageID string) (models.LikeState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ToggleCalls = append(m.ToggleCalls, imageID)
	if m.Err != nil {
		return models.LikeState{}, m.Err
	}
	return m.Like, nil
}

func (m *MockCommunityService) AddGalleryComment(imageID string, in models.CommentInput) (models.GalleryComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddCommentCalls = append(m.AddCommentCalls, AddCommentCall{Target: imageID, Input: in})
	if m.Err != nil {
		return models.GalleryComment{}, m.Err
	}
	return models.GalleryComment{ID: 1, Author: in.Author, Text: in.Text}, nil
}

func (m *MockCommunityService) Summary() models.Summary { return m.SummaryData }

func (m *MockCommunityService) NormalizeHobbyKeys() (int, error) { return 0, m.Err }

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu      sync.Mutex
	Data    map[string][]byte
	Cleared int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
	m.Cleared++
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu                  sync.Mutex
	PersistenceObserved int
	Mutations           map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceObserved++
}

func (m *MockMetrics) IncMutations(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Mutations == nil {
		m.Mutations = make(map[string]int)
	}
	m.Mutations[kind]++
}
