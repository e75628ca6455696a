package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ds124wfegd/eventhub/internal/entity"

	"github.com/gin-gonic/gin"
)

// respondError maps domain sentinels onto HTTP statuses. Registration
// failures (full event, duplicate) are bad requests, capacity versus location
// is a conflict, missing ids are not found.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, entity.ErrEventNotFound),
		errors.Is(err, entity.ErrLocationNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrCapacityExceeded):
		status = http.StatusConflict
	case errors.Is(err, entity.ErrEventFull),
		errors.Is(err, entity.ErrAlreadyRegistered),
		errors.Is(err, entity.ErrInvalidDateRange),
		errors.Is(err, entity.ErrInvalidRole),
		errors.Is(err, entity.ErrEmailTaken):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrInvalidCredentials),
		errors.Is(err, entity.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		status = http.StatusForbidden
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return id, true
}
