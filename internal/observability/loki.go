package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// LokiConfig configures the optional Loki push sink.
type LokiConfig struct {
	URL      string
	Username string
	APIKey   string
	App      string
	Instance string
}

// Enabled reports whether enough is set to push.
func (c LokiConfig) Enabled() bool {
	return c.URL != "" && c.Username != "" && c.APIKey != ""
}

type LokiClient struct {
	url        string
	username   string
	apiKey     string
	httpClient *http.Client
	enabled    bool
	appName    string
	instanceID string
	logger     *zap.Logger
}

// Loki Push API format
type lokiPushRequest struct {
	Streams []lokiStream `json:"streams"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

var defaultClient *LokiClient

// Init installs the process-wide Loki sink. With an incomplete config the
// sink is disabled and every Log* call is a no-op.
func Init(cfg LokiConfig, logger *zap.Logger) {
	app := cfg.App
	if app == "" {
		app = "gitmcp"
	}
	instance := cfg.Instance
	if instance == "" {
		instance = "local"
	}

	if !cfg.Enabled() {
		logger.Debug("loki not configured, remote logging disabled")
		defaultClient = &LokiClient{enabled: false, appName: app, instanceID: instance, logger: logger}
		return
	}

	defaultClient = &LokiClient{
		url:        cfg.URL + "/loki/api/v1/push",
		username:   cfg.Username,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		enabled:    true,
		appName:    app,
		instanceID: instance,
		logger:     logger,
	}
	logger.Info("loki client initialized", zap.String("url", cfg.URL))
}

func Push(labels map[string]string, data map[string]any) {
	if defaultClient == nil || !defaultClient.enabled {
		return
	}

	go defaultClient.push(labels, data)
}

func (c *LokiClient) push(labels map[string]string, data map[string]any) {
	if labels == nil {
		labels = make(map[string]string)
	}
	labels["app"] = c.appName
	labels["instance"] = c.instanceID

	body, err := c.encode(labels, data, time.Now())
	if err != nil {
		c.logger.Warn("loki: failed to encode push", zap.Error(err))
		return
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("loki: failed to create request", zap.Error(err))
		return
	}

	httpReq.SetBasicAuth(c.username, c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("loki: failed to send", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("loki: unexpected status code", zap.Int("status", resp.StatusCode))
	}
}

func (c *LokiClient) encode(labels map[string]string, data map[string]any, at time.Time) ([]byte, error) {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	req := lokiPushRequest{
		Streams: []lokiStream{
			{
				Stream: labels,
				Values: [][]string{
					{strconv.FormatInt(at.UnixNano(), 10), string(dataJSON)},
				},
			},
		},
	}
	return json.Marshal(req)
}

// LogToolCall records one tool execution.
func LogToolCall(sessionID, tool string, durationMs int64, status string, errMsg string) {
	level := "info"
	if status == "error" {
		level = "error"
	}
	labels := map[string]string{
		"type":   "tool_call",
		"status": status,
		"level":  level,
	}

	data := map[string]any{
		"session_id":  sessionID,
		"tool":        tool,
		"duration_ms": durationMs,
		"status":      status,
	}
	if errMsg != "" {
		data["error"] = errMsg
	}

	Push(labels, data)
}

// LogSessionEvent records a session lifecycle transition (opened, closed).
func LogSessionEvent(sessionID, event string, details map[string]any) {
	labels := map[string]string{
		"type":  "session",
		"level": "info",
	}

	data := map[string]any{
		"session_id": sessionID,
		"event":      event,
	}
	for k, v := range details {
		data[k] = v
	}

	Push(labels, data)
}

// LogError records an error that was handled without reaching a client.
func LogError(context string, err error) {
	labels := map[string]string{
		"type":  "error",
		"level": "error",
	}

	data := map[string]any{
		"context": context,
		"error":   fmt.Sprintf("%v", err),
	}

	Push(labels, data)
}
