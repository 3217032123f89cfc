package daily

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	limiter "github.com/glkeru/loyalty/daily/internal/limiter"
	models "github.com/glkeru/loyalty/daily/internal/models"
	service "github.com/glkeru/loyalty/daily/internal/services"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const maxBodySize = 4 << 10

type Pinger interface {
	Ping(ctx context.Context) error
}

type DailyHandler struct {
	router *mux.Router
	claims *service.ClaimService
	status *service.StatusService
	db     Pinger
	logger *zap.Logger
}

type ClaimRequest struct {
	UserID      string `json:"userId"`
	Identity    string `json:"identity"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type ClaimResponse struct {
	Success bool `json:"success"`
	models.ClaimResult
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error      string     `json:"error"`
	Message    string     `json:"message"`
	TimeLeft   string     `json:"timeLeft,omitempty"`
	NextClaim  *time.Time `json:"nextClaim,omitempty"`
	Balance    *int64     `json:"balance,omitempty"`
	Remaining  string     `json:"remaining,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	RetryAfter int64      `json:"retryAfter,omitempty"`
}

func NewHandler(claims *service.ClaimService, status *service.StatusService, db Pinger, claimLimit *limiter.Limiter, statusLimit *limiter.Limiter, logger *zap.Logger) *DailyHandler {
	router := mux.NewRouter()
	handler := &DailyHandler{router, claims, status, db, logger}

	router.Use(MiddlewareLog(logger), MiddlewareCORS())
	router.HandleFunc("/api/daily", RateLimit(claimLimit, handler.ClaimHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/status", RateLimit(statusLimit, handler.StatusHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/daily", handler.PreflightHandler).Methods(http.MethodOptions)
	router.HandleFunc("/api/status", handler.PreflightHandler).Methods(http.MethodOptions)
	router.HandleFunc("/healthz", handler.HealthHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	// router.Use не применяется к этим обработчикам
	unmatched := func(h http.HandlerFunc) http.Handler {
		return MiddlewareLog(logger)(MiddlewareCORS()(h))
	}
	router.MethodNotAllowedHandler = unmatched(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	})
	router.NotFoundHandler = unmatched(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	})

	return handler
}

func (h *DailyHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.router.ServeHTTP(w, req)
}

func (h *DailyHandler) Log(msg string, service string, err error) {
	h.logger.Error(msg,
		zap.String("service", service),
		zap.Error(err),
	)
}

// Ежедневное начисление
func (h *DailyHandler) ClaimHandler(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodySize))
	if err != nil {
		h.Log("Get request body", "ClaimHandler", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "BadRequest", Message: "Body is not correct"})
		return
	}
	defer req.Body.Close()

	claim := &ClaimRequest{}
	err = json.Unmarshal(body, claim)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "BadRequest", Message: "Body is not correct"})
		return
	}
	identity := claim.UserID
	if identity == "" {
		identity = claim.Identity
	}
	name := claim.Username
	if name == "" {
		name = claim.DisplayName
	}

	result, err := h.claims.AttemptDailyClaim(req.Context(), identity, name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ClaimResponse{
		Success:     true,
		ClaimResult: result,
		Message:     fmt.Sprintf("+%d points! Discord bot offers more with role bonuses!", result.PointsAwarded),
	})
}

// Статус бота и лидерборд
func (h *DailyHandler) StatusHandler(w http.ResponseWriter, req *http.Request) {
	status := h.status.GetStatus(req.Context())
	w.Header().Set("Cache-Control", "public, max-age=30, s-maxage=30")
	writeJSON(w, http.StatusOK, status)
}

func (h *DailyHandler) PreflightHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Access-Control-Max-Age", "86400")
	w.WriteHeader(http.StatusNoContent)
}

func (h *DailyHandler) HealthHandler(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
	defer cancel()
	err := h.db.Ping(ctx)
	if err != nil {
		h.Log("Ping", "HealthHandler", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ошибка -> HTTP код и тело ответа. Детали внутренних ошибок не отдаются
func writeError(w http.ResponseWriter, err error) {
	var ce *models.ClaimError
	if !errors.As(err, &ce) {
		ce = models.NewClaimError(models.Internal, "Internal error. Try again later.")
	}

	resp := ErrorResponse{Error: string(ce.Kind), Message: ce.Message}
	code := http.StatusInternalServerError
	switch ce.Kind {
	case models.InvalidIdentity, models.InvalidDisplayName:
		code = http.StatusBadRequest
	case models.Blacklisted:
		code = http.StatusForbidden
		if ce.ExpiresAt != nil {
			resp.Remaining = service.FormatTimeLeft(ce.Remaining)
			resp.ExpiresAt = ce.ExpiresAt
		}
	case models.AlreadyClaimed:
		code = http.StatusTooManyRequests
		balance := ce.Balance
		next := ce.NextClaim
		resp.TimeLeft = ce.TimeLeft
		resp.NextClaim = &next
		resp.Balance = &balance
	case models.RateLimited:
		code = http.StatusTooManyRequests
		resp.RetryAfter = int64(math.Ceil(ce.RetryAfter.Seconds()))
	case models.ServiceUnavailable:
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	j, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(j)
}
