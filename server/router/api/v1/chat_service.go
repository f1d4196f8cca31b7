package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/adotepet/adotepet/internal/profile"
)

// ChatRequest is a free-form pet care question.
type ChatRequest struct {
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

// ChatResponse answers a pet care question, optionally with nearby shelters.
type ChatResponse struct {
	Response string     `json:"response"`
	Shelters []*Shelter `json:"shelters,omitempty"`
}

// Shelter is a nearby adoption shelter suggestion.
type Shelter struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Distance string `json:"distance"`
}

// petCareGuide answers common care questions from a topic knowledge base.
type petCareGuide struct {
	topics map[string]string
}

var defaultPetCareTopics = map[string]string{
	"general_care": "Pets need regular meals, fresh water, exercise and routine vet checkups. Keep vaccinations up to date and give them a safe, comfortable space at home.",
	"feeding":      "Feed your pet high-quality food appropriate for its age and size, at regular times. Always keep fresh water available and avoid table scraps.",
	"vaccination":  "Puppies and kittens need a vaccination series in the first months, followed by yearly boosters. Ask your vet for the recommended schedule.",
	"adaptation":   "Give a newly adopted pet a quiet space and a consistent routine. Introduce family members and other animals gradually over the first weeks.",
}

// loadPetCareGuide reads the topic knowledge base from the data directory,
// falling back to the built-in topics when the file is absent.
func loadPetCareGuide(profile *profile.Profile, logger *slog.Logger) *petCareGuide {
	guide := &petCareGuide{topics: defaultPetCareTopics}

	path := filepath.Join(profile.Data, "pet_care.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read pet care topics", "path", path, "error", err)
		}
		return guide
	}

	topics := map[string]string{}
	if err := json.Unmarshal(data, &topics); err != nil {
		logger.Warn("failed to parse pet care topics", "path", path, "error", err)
		return guide
	}
	guide.topics = topics
	return guide
}

func (g *petCareGuide) info(topic string) string {
	if answer, ok := g.topics[topic]; ok {
		return answer
	}
	return "I'm sorry, I don't have information about that topic yet."
}

func nearbyShelters(location string) []*Shelter {
	return []*Shelter{
		{Name: "Happy Paws Shelter", Address: "123 Pet Street, " + location, Distance: "2.5 miles"},
		{Name: "Furry Friends Rescue", Address: "456 Animal Avenue, " + location, Distance: "3.1 miles"},
		{Name: "Paws and Claws Sanctuary", Address: "789 Rescue Road, " + location, Distance: "4.2 miles"},
	}
}

// Chat answers pet adoption and care questions with simple keyword routing.
func (s *APIV1Service) Chat(c echo.Context) error {
	request := &ChatRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	message := strings.ToLower(request.Message)

	switch {
	case strings.Contains(message, "shelter") || strings.Contains(message, "adopt"):
		return c.JSON(http.StatusOK, &ChatResponse{
			Response: "Here are some nearby shelters:",
			Shelters: nearbyShelters(request.Location),
		})
	case strings.Contains(message, "care") || strings.Contains(message, "feed") || strings.Contains(message, "vaccine"):
		topic := "general_care"
		switch {
		case strings.Contains(message, "feed"):
			topic = "feeding"
		case strings.Contains(message, "vaccine"):
			topic = "vaccination"
		case strings.Contains(message, "adapt") || strings.Contains(message, "new home"):
			topic = "adaptation"
		}
		return c.JSON(http.StatusOK, &ChatResponse{Response: s.petCare.info(topic)})
	default:
		return c.JSON(http.StatusOK, &ChatResponse{
			Response: "I can help you with information about pet adoption, nearby shelters, and pet care. What would you like to know?",
		})
	}
}
