package v1

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adotepet/adotepet/catalog"
	"github.com/adotepet/adotepet/internal/observability"
	"github.com/adotepet/adotepet/interview"
	"github.com/adotepet/adotepet/store"
)

const maxPhotoBytes = 20 << 20

// InterviewEventRequest is an inbound chat event. Event is either "start" or
// "answer".
type InterviewEventRequest struct {
	UserID    string  `json:"user_id"`
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`

	Event      string `json:"event"`
	AnimalType string `json:"animal_type,omitempty"`
	AnimalID   *int   `json:"animal_id,omitempty"`
	Text       string `json:"text,omitempty"`
}

// InterviewEventResponse carries the text the chat transport should say back.
type InterviewEventResponse struct {
	Reply string `json:"reply"`
	Done  bool   `json:"done"`
}

// HandleInterviewEvent routes a start or answer event to the interview core.
func (s *APIV1Service) HandleInterviewEvent(c echo.Context) error {
	metrics := observability.GlobalMetrics()
	start := time.Now()

	request := &InterviewEventRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if request.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	var reply *interview.Reply
	switch request.Event {
	case "start":
		animalType, err := catalog.ParseType(request.AnimalType)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		user := interview.UserSnapshot{
			ID:        request.UserID,
			Username:  request.Username,
			FirstName: request.FirstName,
			LastName:  request.LastName,
		}
		reply = s.Interview.Start(c.Request().Context(), user, animalType, request.AnimalID)
	case "answer":
		reply = s.Interview.HandleAnswer(c.Request().Context(), request.UserID, request.Text)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown event: "+request.Event)
	}

	metrics.RecordEvent(request.Event)
	metrics.RecordDuration(request.Event, time.Since(start))

	return c.JSON(http.StatusOK, &InterviewEventResponse{Reply: reply.Text, Done: reply.Done})
}

// HandleInterviewPhoto accepts a multipart photo upload for the user's active
// interview. The image is compressed before it is stored.
func (s *APIV1Service) HandleInterviewPhoto(c echo.Context) error {
	metrics := observability.GlobalMetrics()
	start := time.Now()

	userID := c.FormValue("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "photo file is required")
	}
	if fileHeader.Size > maxPhotoBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "photo too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		metrics.RecordFailure("photo")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read photo")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		metrics.RecordFailure("photo")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read photo")
	}

	ctx := c.Request().Context()
	if err := s.photoSemaphore.Acquire(ctx, 1); err != nil {
		metrics.RecordFailure("photo")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "server busy")
	}
	data = s.compressor.Compress(data)
	s.photoSemaphore.Release(1)

	reply := s.Interview.HandlePhoto(ctx, userID, data)

	metrics.RecordEvent("photo")
	metrics.RecordDuration("photo", time.Since(start))

	return c.JSON(http.StatusOK, &InterviewEventResponse{Reply: reply.Text, Done: reply.Done})
}

// ListInterviews returns archived interviews, optionally filtered by the
// interviewee's chat user ID.
func (s *APIV1Service) ListInterviews(c echo.Context) error {
	ctx := c.Request().Context()
	find := &store.FindInterview{}

	if userID := c.QueryParam("user_id"); userID != "" {
		interviewee, err := s.Store.GetInterviewee(ctx, &store.FindInterviewee{UserID: &userID})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to look up interviewee")
		}
		if interviewee == nil {
			return c.JSON(http.StatusOK, []*store.Interview{})
		}
		find.IntervieweeID = &interviewee.ID
	}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		find.Limit = &limit
	}

	list, err := s.Store.ListInterviews(ctx, find)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list interviews")
	}
	return c.JSON(http.StatusOK, list)
}
