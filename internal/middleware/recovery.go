package middleware

import (
	"fmt"
	"net/http"

	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a panic into a 500 JSON body.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.String("request_id", c.GetString(ContextRequestID)),
			zap.String("panic", fmt.Sprintf("%v", recovered)),
			zap.Stack("stack"),
		)
		utils.APIError(c, http.StatusInternalServerError, "Internal server error", nil)
	})
}
