package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "animals.json"))
	require.NoError(t, err)
	return m
}

func sampleAnimal(name string) *Animal {
	return &Animal{
		Name:     name,
		Breed:    "SRD",
		AgeYears: 3,
		Gender:   "Fêmea",
		Size:     "Médio",
		Health:   Health{Vaccinated: true, Dewormed: true},
		Behavior: Behavior{Temperament: "Dócil", EnergyLevel: "Alto", GoodWithKids: true},
		History:  "Resgatada da rua.",
	}
}

func TestNewManagerMissingFileCreatesEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animals.json")
	m, err := NewManager(path)
	require.NoError(t, err)

	assert.Empty(t, m.ListAvailable(TypeDog))
	assert.Empty(t, m.ListAvailable(TypeCat))

	// The empty catalog must have been persisted.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestAddAndGetAnimal(t *testing.T) {
	m := newTestManager(t)

	id, err := m.AddAnimal(TypeCat, sampleAnimal("Mia"))
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	id2, err := m.AddAnimal(TypeCat, sampleAnimal("Tom"))
	require.NoError(t, err)
	assert.Equal(t, 2, id2)

	animal, ok := m.GetAnimal(TypeCat, id)
	require.True(t, ok)
	assert.Equal(t, "Mia", animal.Name)
	assert.Equal(t, StatusAvailable, animal.Status)

	_, ok = m.GetAnimal(TypeDog, id)
	assert.False(t, ok)
}

func TestCatalogReloadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animals.json")
	m, err := NewManager(path)
	require.NoError(t, err)

	_, err = m.AddAnimal(TypeDog, sampleAnimal("Rex"))
	require.NoError(t, err)

	reloaded, err := NewManager(path)
	require.NoError(t, err)
	animal, ok := reloaded.GetAnimal(TypeDog, 1)
	require.True(t, ok)
	assert.Equal(t, "Rex", animal.Name)
}

func TestUpdateStatus(t *testing.T) {
	m := newTestManager(t)
	id, err := m.AddAnimal(TypeDog, sampleAnimal("Rex"))
	require.NoError(t, err)

	require.NoError(t, m.UpdateStatus(TypeDog, id, StatusInProcess))
	animal, _ := m.GetAnimal(TypeDog, id)
	assert.Equal(t, StatusInProcess, animal.Status)

	assert.Error(t, m.UpdateStatus(TypeDog, id, "invalid"))
	assert.Error(t, m.UpdateStatus(TypeDog, 999, StatusAdopted))
}

func TestListAvailableExcludesAdopted(t *testing.T) {
	m := newTestManager(t)
	id1, _ := m.AddAnimal(TypeDog, sampleAnimal("Rex"))
	id2, _ := m.AddAnimal(TypeDog, sampleAnimal("Bolt"))
	require.NoError(t, m.UpdateStatus(TypeDog, id1, StatusAdopted))

	available := m.ListAvailable(TypeDog)
	require.Len(t, available, 1)
	assert.Equal(t, id2, available[0].ID)
}

func TestListAnimalsWithCriteria(t *testing.T) {
	m := newTestManager(t)
	small := sampleAnimal("Pipoca")
	small.Size = "Pequeno"
	small.Behavior.GoodWithKids = false
	_, err := m.AddAnimal(TypeDog, small)
	require.NoError(t, err)
	_, err = m.AddAnimal(TypeDog, sampleAnimal("Rex"))
	require.NoError(t, err)

	size := "Pequeno"
	assert.Len(t, m.ListAnimals(&FindAnimal{Type: TypeDog, Size: &size}), 1)

	kids := true
	assert.Len(t, m.ListAnimals(&FindAnimal{Type: TypeDog, GoodWithKids: &kids}), 1)
}

func TestAddPhoto(t *testing.T) {
	m := newTestManager(t)
	id, _ := m.AddAnimal(TypeCat, sampleAnimal("Mia"))

	require.NoError(t, m.AddPhoto(TypeCat, id, "photos/mia_1.jpg"))
	animal, _ := m.GetAnimal(TypeCat, id)
	assert.Equal(t, []string{"photos/mia_1.jpg"}, animal.Photos)

	assert.Error(t, m.AddPhoto(TypeCat, 999, "photos/none.jpg"))
}

func TestParseType(t *testing.T) {
	for _, valid := range []string{"dog", "cat", "other"} {
		_, err := ParseType(valid)
		assert.NoError(t, err)
	}
	_, err := ParseType("fish")
	assert.Error(t, err)
}

func TestCardContainsCoreFields(t *testing.T) {
	animal := sampleAnimal("Mia")
	animal.ID = 1
	animal.Status = StatusAvailable

	card := Card(animal)
	assert.Contains(t, card, "Mia")
	assert.Contains(t, card, "SRD")
	assert.Contains(t, card, "Disponível")
	assert.Contains(t, card, "Bom com crianças: Sim")
}
