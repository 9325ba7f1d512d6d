// internal/app/features/errors/errors.go
//
// Package errors centralizes "log it, then answer the client" for the API
// handlers. Internal detail goes to the structured log; the client only ever
// sees the safe message in a JSON envelope.
package errors

import (
	stderrors "errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/matematikhane/matematikhane/internal/app/courseops"
)

// ErrorLogger logs request failures and writes the matching JSON response.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// LogBadRequest logs a client error and answers 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log(r, logMsg, err)
	Error(w, http.StatusBadRequest, userMsg)
}

// LogForbidden logs a permission failure and answers 403 with userMsg.
func (e *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, logMsg string, userMsg string) {
	e.log(r, logMsg, nil)
	Error(w, http.StatusForbidden, userMsg)
}

// LogNotFound logs a missing-resource lookup and answers 404 with userMsg.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, logMsg string, userMsg string) {
	e.log(r, logMsg, nil)
	Error(w, http.StatusNotFound, userMsg)
}

// LogServerError logs an internal failure and answers 500 with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log(r, logMsg, err)
	Error(w, http.StatusInternalServerError, userMsg)
}

// LogServiceError maps a course-mutation service error to the right status:
// validation failures are 400, authorization failures 403, missing targets
// 404, anything else 500. The validation message is safe to show verbatim.
func (e *ErrorLogger) LogServiceError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	var verr *courseops.ValidationError
	switch {
	case stderrors.As(err, &verr):
		e.LogBadRequest(w, r, logMsg, err, verr.Error())
	case stderrors.Is(err, courseops.ErrUnauthorized):
		e.LogForbidden(w, r, logMsg, "You do not have permission to do that.")
	case stderrors.Is(err, courseops.ErrNotFound), stderrors.Is(err, mongo.ErrNoDocuments):
		e.LogNotFound(w, r, logMsg, "Not found.")
	default:
		e.LogServerError(w, r, logMsg, err, "Something went wrong. Please try again.")
	}
}

func (e *ErrorLogger) log(r *http.Request, msg string, err error) {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
		e.Log.Error(msg, fields...)
		return
	}
	e.Log.Warn(msg, fields...)
}
