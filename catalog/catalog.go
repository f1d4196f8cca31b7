// Package catalog manages the adoptable animal records backed by a JSON file.
package catalog

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Type is the kind of animal.
type Type string

const (
	TypeDog   Type = "dog"
	TypeCat   Type = "cat"
	TypeOther Type = "other"
)

// ParseType converts a raw string into a Type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeDog, TypeCat, TypeOther:
		return Type(s), nil
	}
	return "", errors.Errorf("invalid animal type: %s", s)
}

// Adoption statuses, kept in Portuguese as presented to users.
const (
	StatusAvailable = "Disponível"
	StatusInProcess = "Em processo"
	StatusAdopted   = "Adotado"
)

// Health holds the health record of an animal.
type Health struct {
	Vaccinated   bool   `json:"vaccinated"`
	Dewormed     bool   `json:"dewormed"`
	Castrated    bool   `json:"castrated"`
	SpecialNeeds bool   `json:"special_needs"`
	Notes        string `json:"health_notes"`
}

// Behavior holds the behavioral record of an animal.
type Behavior struct {
	Temperament  string `json:"temperament"`
	EnergyLevel  string `json:"energy_level"`
	GoodWithKids bool   `json:"good_with_kids"`
	Notes        string `json:"behavior_notes"`
}

// Animal is a single catalog entry.
type Animal struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Species  string   `json:"species,omitempty"`
	Breed    string   `json:"breed"`
	AgeYears int      `json:"age"`
	Gender   string   `json:"gender"`
	Size     string   `json:"size"`
	Health   Health   `json:"health"`
	Behavior Behavior `json:"behavior"`
	History  string   `json:"history"`
	Status   string   `json:"adoption_status"`
	Photos   []string `json:"photos"`
}

// FindAnimal narrows ListAnimals results. Nil fields are ignored.
type FindAnimal struct {
	Type         Type
	ID           *int
	Status       *string
	Size         *string
	GoodWithKids *bool
}

type catalogFile struct {
	Dogs   []*Animal `json:"dogs"`
	Cats   []*Animal `json:"cats"`
	Others []*Animal `json:"others"`
}

// Manager provides read/write access to the animal catalog.
type Manager struct {
	mu      sync.RWMutex
	path    string
	animals map[Type][]*Animal
}

// NewManager loads the catalog from path. A missing file is not an error:
// an empty catalog is created and persisted.
func NewManager(path string) (*Manager, error) {
	m := &Manager{
		path:    path,
		animals: map[Type][]*Animal{TypeDog: {}, TypeCat: {}, TypeOther: {}},
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Warn("catalog file not found, creating empty catalog", "path", path)
		if err := m.save(); err != nil {
			return nil, err
		}
		return m, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog file %s", path)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "failed to parse catalog file %s", path)
	}
	if file.Dogs != nil {
		m.animals[TypeDog] = file.Dogs
	}
	if file.Cats != nil {
		m.animals[TypeCat] = file.Cats
	}
	if file.Others != nil {
		m.animals[TypeOther] = file.Others
	}
	return m, nil
}

// save persists the catalog. Caller must hold at least a read lock
// or be the only accessor.
func (m *Manager) save() error {
	file := catalogFile{
		Dogs:   m.animals[TypeDog],
		Cats:   m.animals[TypeCat],
		Others: m.animals[TypeOther],
	}
	data, err := json.MarshalIndent(&file, "", "    ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal catalog")
	}
	if dir := filepath.Dir(m.path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.Wrapf(err, "failed to create catalog directory %s", dir)
		}
	}
	if err := os.WriteFile(m.path, data, 0640); err != nil {
		return errors.Wrapf(err, "failed to write catalog file %s", m.path)
	}
	return nil
}

// GetAnimal returns the animal with the given type and id.
func (m *Manager) GetAnimal(t Type, id int) (*Animal, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, animal := range m.animals[t] {
		if animal.ID == id {
			copied := *animal
			return &copied, true
		}
	}
	return nil, false
}

// ListAvailable returns the animals of the given type still open for adoption.
func (m *Manager) ListAvailable(t Type) []*Animal {
	status := StatusAvailable
	return m.ListAnimals(&FindAnimal{Type: t, Status: &status})
}

// ListAnimals returns the animals matching the find criteria.
func (m *Manager) ListAnimals(find *FindAnimal) []*Animal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*Animal, 0)
	for _, animal := range m.animals[find.Type] {
		if find.ID != nil && animal.ID != *find.ID {
			continue
		}
		if find.Status != nil && animal.Status != *find.Status {
			continue
		}
		if find.Size != nil && animal.Size != *find.Size {
			continue
		}
		if find.GoodWithKids != nil && animal.Behavior.GoodWithKids != *find.GoodWithKids {
			continue
		}
		copied := *animal
		list = append(list, &copied)
	}
	return list
}

// AddAnimal registers a new animal and returns its generated id.
func (m *Manager) AddAnimal(t Type, animal *Animal) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	newID := 1
	for _, existing := range m.animals[t] {
		if existing.ID >= newID {
			newID = existing.ID + 1
		}
	}
	animal.ID = newID
	animal.Status = StatusAvailable
	if animal.Photos == nil {
		animal.Photos = []string{}
	}
	m.animals[t] = append(m.animals[t], animal)

	if err := m.save(); err != nil {
		return 0, err
	}
	return newID, nil
}

// UpdateStatus changes the adoption status of an animal.
func (m *Manager) UpdateStatus(t Type, id int, status string) error {
	if status != StatusAvailable && status != StatusInProcess && status != StatusAdopted {
		return errors.Errorf("invalid adoption status: %s", status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, animal := range m.animals[t] {
		if animal.ID == id {
			animal.Status = status
			return m.save()
		}
	}
	return errors.Errorf("animal %d of type %s not found", id, t)
}

// AddPhoto appends a photo reference to an animal record.
func (m *Manager) AddPhoto(t Type, id int, photoPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, animal := range m.animals[t] {
		if animal.ID == id {
			animal.Photos = append(animal.Photos, photoPath)
			return m.save()
		}
	}
	return errors.Errorf("animal %d of type %s not found", id, t)
}
