package handlers

import (
	"errors"
	"net/http"

	"ambulance-backend/internal/payment"
	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler carries the dependencies every route needs. The store handle is
// injected here rather than read from a package global.
type Handler struct {
	DB       *gorm.DB
	Tokens   *utils.TokenManager
	Payments payment.Gateway
	Log      *zap.Logger
}

// New builds a Handler. payments may be nil when no gateway is configured.
func New(db *gorm.DB, tokens *utils.TokenManager, payments payment.Gateway, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{DB: db, Tokens: tokens, Payments: payments, Log: log}
}

// db scopes the store handle to the request context.
func (h *Handler) db(c *gin.Context) *gorm.DB {
	return h.DB.WithContext(c.Request.Context())
}

// dbError logs a persistence failure and reports it with the raw error text.
func (h *Handler) dbError(c *gin.Context, message string, err error) {
	h.Log.Error(message,
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	utils.APIError(c, http.StatusInternalServerError, message, err.Error())
}

// lookupError maps a failed First() to 404 or 500.
func (h *Handler) lookupError(c *gin.Context, entity string, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.APIError(c, http.StatusNotFound, entity+" not found", nil)
		return
	}
	h.dbError(c, "Database error", err)
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.APIError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (uint64, bool) {
	id := utils.StringToUint64(c.Param(param))
	if id == 0 {
		utils.APIError(c, http.StatusBadRequest, "Invalid "+param, nil)
		return 0, false
	}
	return id, true
}

// boolQuery reads an optional boolean filter. ok is false when the value was
// present but unparseable; a 400 has then already been written.
func boolQuery(c *gin.Context, key string) (value *bool, ok bool) {
	raw, present := c.GetQuery(key)
	if !present || raw == "" {
		return nil, true
	}
	v, parsed := utils.ParseBool(raw)
	if !parsed {
		utils.APIError(c, http.StatusBadRequest, "Invalid boolean for "+key, raw)
		return nil, false
	}
	return &v, true
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// likePattern escapes nothing; the frontend only sends plain words.
func likePattern(s string) string {
	return "%" + s + "%"
}

var errHasDependents = errors.New("record has dependents")
