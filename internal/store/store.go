package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/highercomve/timegrid/internal/models"
)

const scheduleFile = "schedule.json"

// Storage persists the schedule document as JSON under a base directory.
type Storage struct {
	BaseDir string
	mu      sync.Mutex
}

func NewStorage(baseDir string) *Storage {
	// Ensure base directory exists
	os.MkdirAll(baseDir, 0755)
	return &Storage{BaseDir: baseDir}
}

func (s *Storage) schedulePath() string {
	return filepath.Join(s.BaseDir, scheduleFile)
}

// LoadSchedule reads the stored schedule. A missing file yields an empty
// schedule, not an error.
func (s *Storage) LoadSchedule() (*models.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// SaveSchedule writes the whole document back.
func (s *Storage) SaveSchedule(sched *models.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(sched)
}

func (s *Storage) writeLocked(sched *models.Schedule) error {
	data, err := json.MarshalIndent(sched, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.schedulePath(), data, 0644)
}

func (s *Storage) loadLocked() (*models.Schedule, error) {
	data, err := os.ReadFile(s.schedulePath())
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Schedule{}, nil
		}
		return nil, err
	}
	var sched models.Schedule
	if err := json.Unmarshal(data, &sched); err != nil {
		return nil, err
	}
	return &sched, nil
}

// SaveItem updates or appends a single item and persists the document.
// Load-modify-save keeps the file authoritative; the schedule is small,
// so this stays cheap.
func (s *Storage) SaveItem(item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, err := s.loadLocked()
	if err != nil {
		return err
	}

	found := false
	for i, it := range sched.Items {
		if it.ID == item.ID {
			sched.Items[i] = item
			found = true
			break
		}
	}
	if !found {
		sched.Items = append(sched.Items, item)
	}
	return s.writeLocked(sched)
}

// DeleteItem removes an item from the stored schedule.
func (s *Storage) DeleteItem(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, err := s.loadLocked()
	if err != nil {
		return err
	}

	kept := sched.Items[:0]
	for _, it := range sched.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	sched.Items = kept
	return s.writeLocked(sched)
}

// ImportYAML loads a schedule document from a YAML file, validating every
// item against the declared groups. Items with problems are skipped and
// listed in the returned warnings; a bad item never fails the import.
func (s *Storage) ImportYAML(path string) (*models.Schedule, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var sched models.Schedule
	if err := yaml.Unmarshal(data, &sched); err != nil {
		return nil, nil, fmt.Errorf("failed to parse schedule YAML: %w", err)
	}

	var warnings []string
	valid := sched.Items[:0]
	for _, it := range sched.Items {
		if err := it.Validate(sched.Groups); err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping item %q: %v", it.ID, err))
			continue
		}
		valid = append(valid, it)
	}
	sched.Items = valid

	if err := s.SaveSchedule(&sched); err != nil {
		return nil, warnings, err
	}
	return &sched, warnings, nil
}

// UpdateBaseDir switches the storage to a new folder without moving data.
func (s *Storage) UpdateBaseDir(newDir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	os.MkdirAll(newDir, 0755)
	s.BaseDir = newDir
}

// MoveData relocates the stored schedule into a new folder and switches
// over to it.
func (s *Storage) MoveData(newDir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(newDir, 0755); err != nil {
		return err
	}

	oldPath := s.schedulePath()
	newPath := filepath.Join(newDir, scheduleFile)
	if _, err := os.Stat(oldPath); err == nil {
		data, err := os.ReadFile(oldPath)
		if err != nil {
			return err
		}
		if err := os.WriteFile(newPath, data, 0644); err != nil {
			return err
		}
		// Copy-then-remove survives cross-device moves.
		if err := os.Remove(oldPath); err != nil {
			return err
		}
	}
	s.BaseDir = newDir
	return nil
}

// DeleteAllData erases the stored schedule.
func (s *Storage) DeleteAllData() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.schedulePath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
