package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/adotepet/adotepet/catalog"
)

// AnimalResponse pairs an animal with its formatted presentation card.
type AnimalResponse struct {
	Animal *catalog.Animal `json:"animal"`
	Card   string          `json:"card"`
}

// ListAnimals returns animals of a type, by default only the ones still
// available for adoption.
func (s *APIV1Service) ListAnimals(c echo.Context) error {
	animalType, err := catalog.ParseType(c.QueryParam("type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	find := &catalog.FindAnimal{Type: animalType}
	if status := c.QueryParam("status"); status != "" {
		find.Status = &status
	} else {
		status := catalog.StatusAvailable
		find.Status = &status
	}
	if size := c.QueryParam("size"); size != "" {
		find.Size = &size
	}
	if kidsParam := c.QueryParam("good_with_kids"); kidsParam != "" {
		goodWithKids, err := strconv.ParseBool(kidsParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid good_with_kids")
		}
		find.GoodWithKids = &goodWithKids
	}

	animals := s.Catalog.ListAnimals(find)
	response := make([]*AnimalResponse, 0, len(animals))
	for _, animal := range animals {
		response = append(response, &AnimalResponse{Animal: animal, Card: catalog.Card(animal)})
	}
	return c.JSON(http.StatusOK, response)
}

// GetAnimal returns a single animal by type and ID.
func (s *APIV1Service) GetAnimal(c echo.Context) error {
	animalType, err := catalog.ParseType(c.QueryParam("type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid animal id")
	}

	animal, ok := s.Catalog.GetAnimal(animalType, id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "animal not found")
	}
	return c.JSON(http.StatusOK, &AnimalResponse{Animal: animal, Card: catalog.Card(animal)})
}
