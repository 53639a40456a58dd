package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/infrastructure/logging"
	"github.com/bivex/creatorhub/internal/interfaces/http/response"
	"github.com/bivex/creatorhub/internal/worker/tasks"
)

const (
	// SignatureHeader carries "t=<unix>,v1=<hex hmac-sha256 of t.body>"
	SignatureHeader = "X-Creatorhub-Signature"

	signatureTolerance = 5 * time.Minute
	maxWebhookBody     = 1 << 20
)

// TaskEnqueuer is the part of asynq.Client the webhook needs
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// WebhookHandler receives payment provider events and queues them for settlement
type WebhookHandler struct {
	secret   string
	allowed  []*net.IPNet
	enqueuer TaskEnqueuer
	now      func() time.Time
}

// NewWebhookHandler creates a new webhook handler. An empty secret disables
// signature checks and an empty CIDR list accepts every source address.
func NewWebhookHandler(secret string, allowedCIDRs []string, enqueuer TaskEnqueuer) (*WebhookHandler, error) {
	h := &WebhookHandler{secret: secret, enqueuer: enqueuer, now: time.Now}
	for _, cidr := range allowedCIDRs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid webhook CIDR %q: %w", cidr, err)
		}
		h.allowed = append(h.allowed, network)
	}
	return h, nil
}

type paymentEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		PaymentID uuid.UUID       `json:"payment_id"`
		Amount    decimal.Decimal `json:"amount"`
		Reason    string          `json:"reason"`
	} `json:"data"`
}

// PaymentWebhook handles payment provider events
// @Summary Payment provider webhook
// @Tags webhooks
// @Accept json
// @Produce json
// @Router /webhook/payments [post]
func (h *WebhookHandler) PaymentWebhook(c *gin.Context) {
	if !h.verifyIP(c.ClientIP()) {
		response.Unauthorized(c, "IP not allowed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(c, "Failed to read body")
		return
	}

	if h.secret != "" {
		signature := c.GetHeader(SignatureHeader)
		if signature == "" {
			response.Unauthorized(c, "Missing signature")
			return
		}
		if !h.verifyHMAC(body, signature) {
			response.Unauthorized(c, "Invalid signature")
			return
		}
	}

	var event paymentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		response.BadRequest(c, "Invalid event body")
		return
	}

	payload := tasks.SettlePaymentPayload{
		EventID:   event.ID,
		EventType: event.Type,
		PaymentID: event.Data.PaymentID,
		Amount:    event.Data.Amount,
		Reason:    event.Data.Reason,
	}
	if err := payload.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := tasks.NewSettlePaymentTask(payload)
	if err != nil {
		response.InternalError(c, "Failed to build task")
		return
	}

	logger := logging.GetLogger(c)
	if _, err := h.enqueuer.EnqueueContext(c.Request.Context(), task); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			// Provider redelivery of an event already queued
			c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
			return
		}
		logger.Error("Failed to enqueue payment event", zap.String("event_id", event.ID), zap.Error(err))
		response.ServiceUnavailable(c, "Event could not be queued")
		return
	}

	logger.Info("payment event queued",
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type),
		zap.String("payment_id", event.Data.PaymentID.String()),
	)
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// Sign produces a signature header value for body at time ts
func Sign(secret string, body []byte, ts time.Time) string {
	timestamp := strconv.FormatInt(ts.Unix(), 10)
	return "t=" + timestamp + ",v1=" + mac(secret, timestamp, body)
}

func mac(secret, timestamp string, body []byte) string {
	m := hmac.New(sha256.New, []byte(secret))
	m.Write([]byte(timestamp + "."))
	m.Write(body)
	return hex.EncodeToString(m.Sum(nil))
}

func (h *WebhookHandler) verifyHMAC(body []byte, signature string) bool {
	var timestamp, v1 string
	for _, part := range strings.Split(signature, ",") {
		switch {
		case strings.HasPrefix(part, "t="):
			timestamp = strings.TrimPrefix(part, "t=")
		case strings.HasPrefix(part, "v1="):
			v1 = strings.TrimPrefix(part, "v1=")
		}
	}
	if timestamp == "" || v1 == "" {
		return false
	}

	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	age := h.now().Sub(time.Unix(unix, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return false
	}

	return hmac.Equal([]byte(v1), []byte(mac(h.secret, timestamp, body)))
}

func (h *WebhookHandler) verifyIP(clientIP string) bool {
	if len(h.allowed) == 0 {
		return true
	}
	ip := net.ParseIP(clientIP)
	if ip == nil {
		return false
	}
	for _, network := range h.allowed {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
