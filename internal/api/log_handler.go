package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"
	"ironlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Calendar date format accepted by the date and range endpoints.
const dateLayout = "2006-01-02"

// LogHandler holds the log service dependency.
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// --- Handler Methods ---

// CreateLog records a finished workout session. The body is the log itself;
// schema validation happens in the service so the rules live in one place.
func (h *LogHandler) CreateLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var log domain.WorkoutLog
	if err := c.ShouldBindJSON(&log); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	created, err := h.logService.CreateLog(c.Request.Context(), userID, &log)
	if err != nil {
		var valErr *service.LogValidationError
		if errors.As(err, &valErr) {
			abortWithError(c, http.StatusBadRequest, valErr.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save workout log")
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetRecent returns the user's newest workout logs.
func (h *LogHandler) GetRecent(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	logs, err := h.logService.GetRecent(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GetByDate returns the logs of one calendar day.
func (h *LogHandler) GetByDate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	logs, err := h.logService.GetByDate(c.Request.Context(), userID, date)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// QueryLogs returns a paginated, optionally date-filtered log listing.
func (h *LogHandler) QueryLogs(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	filter, err := parseLogFilter(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.logService.Query(c.Request.Context(), userID, filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout logs")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetLog returns one of the user's workout logs by ID.
func (h *LogHandler) GetLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format")
		return
	}

	log, err := h.logService.GetByID(c.Request.Context(), userID, logID)
	if err != nil {
		h.abortLogError(c, err, "Failed to retrieve workout log")
		return
	}
	c.JSON(http.StatusOK, log)
}

// DeleteLog removes one of the user's workout logs.
func (h *LogHandler) DeleteLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format")
		return
	}

	if err := h.logService.DeleteLog(c.Request.Context(), userID, logID); err != nil {
		h.abortLogError(c, err, "Failed to delete workout log")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LogHandler) abortLogError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrLogNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrLogAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// parseLogFilter reads the startDate/endDate/page/limit query parameters.
// Missing values stay zero and the service applies its defaults.
func parseLogFilter(c *gin.Context) (repository.LogFilter, error) {
	var filter repository.LogFilter

	if raw := c.Query("startDate"); raw != "" {
		start, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, errors.New("invalid startDate, expected YYYY-MM-DD")
		}
		filter.Start = start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, errors.New("invalid endDate, expected YYYY-MM-DD")
		}
		// The range is inclusive of the end day.
		filter.End = end.Add(24*time.Hour - time.Millisecond)
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || page < 1 {
			return filter, errors.New("invalid page, expected a positive integer")
		}
		filter.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 1 {
			return filter, errors.New("invalid limit, expected a positive integer")
		}
		filter.Limit = limit
	}
	return filter, nil
}
