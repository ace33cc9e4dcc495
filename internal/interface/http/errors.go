package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard/internal/domain/apperror"
	"github.com/oksasatya/jobboard/pkg/response"
	"github.com/oksasatya/jobboard/pkg/validation"
)

func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation, apperror.KindConflict:
		return http.StatusBadRequest
	case apperror.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondError writes err using the apperror taxonomy. Internal causes are
// logged and never reach the client.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var ae *apperror.Error
	if !errors.As(err, &ae) || ae.Kind == apperror.KindInternal {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
			}).Error("request failed")
		}
		response.Error(c, http.StatusInternalServerError, string(apperror.KindInternal), "Server error", nil)
		return
	}
	var details map[string]string
	if len(ae.Violations) > 0 {
		details = make(map[string]string, len(ae.Violations))
		for _, v := range ae.Violations {
			details[v.Field] = v.Message
		}
	}
	response.Error(c, statusFor(ae.Kind), string(ae.Kind), ae.Message, details)
}

// bindError answers a request body that could not be decoded or bound.
func bindError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, string(apperror.KindValidation), "Invalid request payload", validation.ToDetails(err))
}
