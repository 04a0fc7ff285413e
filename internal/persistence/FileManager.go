package persistence

import (
	"bytes"
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"hobbyboard/internal/kvstore"
	"hobbyboard/internal/persistence/interfaces"
	"hobbyboard/internal/providers"
	"os"
	"path/filepath"
)

const snapshotVersion = 1

// Snapshot is the on-disk envelope: every key of the store with its raw
// JSON string value.
type Snapshot struct {
	Version int               `json:"version"`
	Keys    map[string]string `json:"keys"`
}

type FileManager struct {
	store      kvstore.Snapshotter
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, store kvstore.Snapshotter, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      store,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := Snapshot{
		Version: snapshotVersion,
		Keys:    f.store.Snapshot(),
	}

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return err
	}
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// LoadFromFile restores the store from fileName. A missing file leaves the
// store untouched. Besides compressed snapshots it accepts plain JSON,
// either a snapshot envelope or a flat key map such as a browser
// localStorage export.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		trimmed := bytes.TrimSpace(data)
		if !errors.Is(err, ErrNotCompressed) || len(trimmed) == 0 || trimmed[0] != '{' {
			return fmt.Errorf("decompress %s: %w", fileName, err)
		}
		f.logger.Warnf(providers.TypeApp, "%s is not compressed, reading it as plain JSON", fileName)
		decompressedData = trimmed
	}

	var snapshot Snapshot
	if err := json.Unmarshal(decompressedData, &snapshot); err == nil && snapshot.Version > 0 && snapshot.Keys != nil {
		f.store.Restore(snapshot.Keys)
		return nil
	}

	// flat key map; values may be strings or already-decoded JSON
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(decompressedData, &flat); err != nil {
		f.logger.Warnf(providers.TypeApp, "Unknown data format in %s", fileName)
		return err
	}
	keys := make(map[string]string, len(flat))
	for k, raw := range flat {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			keys[k] = s
			continue
		}
		keys[k] = string(raw)
	}
	f.logger.Warnf(providers.TypeApp, "Imported %d keys from flat key map %s", len(keys), fileName)
	f.store.Restore(keys)
	// the flat file is rewritten as a snapshot on the next save
	f.store.MarkDirty()
	return nil
}
