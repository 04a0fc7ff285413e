package persistence

import (
	"github.com/roylee0704/gron"
	"hobbyboard/internal/kvstore"
	"hobbyboard/internal/persistence/interfaces"
	"hobbyboard/internal/providers"
	"hobbyboard/internal/structures"
	"sync"
	"time"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	store       kvstore.Snapshotter
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	if s.fileManager == nil {
		return
	}
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		if err := s.persistIfDirty(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		}
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	if s.fileManager == nil {
		return nil
	}
	return s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
}

// Persist writes the snapshot unconditionally.
func (s *Scheduler) Persist() error {
	if s.fileManager == nil {
		return nil
	}
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting store to file...")
	s.store.TakeDirty()
	if err := s.save(); err != nil {
		s.store.MarkDirty()
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func (s *Scheduler) persistIfDirty() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if !s.store.TakeDirty() {
		return nil
	}
	if err := s.save(); err != nil {
		s.store.MarkDirty()
		return err
	}
	s.logger.Debugf(providers.TypeApp, "Persisted store to file %s", s.config.Persistence.FilePath)
	return nil
}

func (s *Scheduler) save() error {
	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return err
}

// NewScheduler returns a scheduler that snapshots store to the persistence
// file. Stores that persist on their own (nil Snapshotter) get a scheduler
// whose operations are no-ops.
func NewScheduler(config *structures.Config, logger providers.Logger, store kvstore.Snapshotter, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	s := &Scheduler{
		config:  config,
		logger:  logger,
		store:   store,
		metrics: metrics,
	}
	if store != nil && config.Store.Backend == "file" {
		s.fileManager = fileManager
	}
	return s
}
