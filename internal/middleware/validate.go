package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ambulance-backend/internal/models"
	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ValidateJSON checks the raw JSON body before the handler runs. It reports
// the first required field that is absent or null, then the first field that
// is present as an empty string, then an unknown "status" value. The body is
// handed to the handler untouched.
func ValidateJSON(required, optional []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			utils.APIError(c, http.StatusBadRequest, "Could not read request body", err.Error())
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))

		var body map[string]interface{}
		if err := json.Unmarshal(raw, &body); err != nil || body == nil {
			utils.APIError(c, http.StatusBadRequest, "Invalid JSON body", nil)
			return
		}

		if msg := checkFields(body, required, optional); msg != "" {
			utils.APIError(c, http.StatusBadRequest, msg, nil)
			return
		}
		c.Next()
	}
}

func checkFields(body map[string]interface{}, required, optional []string) string {
	for _, field := range required {
		if v, ok := body[field]; !ok || v == nil {
			return fmt.Sprintf("Missing required field: %s", field)
		}
	}
	for _, group := range [][]string{required, optional} {
		for _, field := range group {
			if s, ok := body[field].(string); ok && strings.TrimSpace(s) == "" {
				return fmt.Sprintf("Field '%s' cannot be empty", field)
			}
		}
	}
	if v, ok := body["status"]; ok && v != nil {
		s, isString := v.(string)
		if !isString || !models.IsValidStatus(s) {
			return "Invalid status value"
		}
	}
	return ""
}
