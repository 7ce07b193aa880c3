package http

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/asifrahman/go-identity-api/internal/service"
	"github.com/asifrahman/go-identity-api/models"
)

// mapError translates an error into the response envelope. Service errors
// carry their own status and stable code; anything else is an internal error
// whose detail never reaches the client.
func mapError(err error) (int, models.Response) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Status, models.NewErrorResponse(svcErr.Message, svcErr.Code, fieldErrors(svcErr.Fields)...)
	}

	return http.StatusInternalServerError, models.NewErrorResponse("internal server error", service.CodeInternalServerError)
}

// fieldErrors flattens per-field detail into sorted "field: message" strings
// so envelope output is deterministic.
func fieldErrors(fields map[string]string) []string {
	if len(fields) == 0 {
		return nil
	}
	out := make([]string, 0, len(fields))
	for field, message := range fields {
		out = append(out, fmt.Sprintf("%s: %s", field, message))
	}
	sort.Strings(out)
	return out
}
