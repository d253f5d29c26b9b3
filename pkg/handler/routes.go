package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/gomcpgo/cloud_ai/pkg/responses"
	"github.com/gomcpgo/cloud_ai/pkg/storage"
	"go.uber.org/zap"
)

// Router builds the HTTP API: one POST route per handler name, plus the
// signed image route when images are kept in a local store.
func (h *CloudAIHandler) Router(local *storage.LocalStore) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(h.logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	for _, name := range Names() {
		fn, _ := h.Handle(name)
		r.POST("/"+name, proxy(fn))
	}

	if local != nil {
		r.GET("/images/*key", serveLocalImage(local))
	}
	return r
}

// proxy adapts a LambdaFunc to a gin handler
func proxy(fn LambdaFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			writeResponse(c, responses.BuildErrorResponse(http.StatusBadRequest, "failed to read request body"))
			return
		}

		headers := make(map[string]string, len(c.Request.Header))
		for k := range c.Request.Header {
			headers[k] = c.Request.Header.Get(k)
		}
		query := make(map[string]string)
		for k := range c.Request.URL.Query() {
			query[k] = c.Query(k)
		}

		req := events.APIGatewayProxyRequest{
			Resource:              c.FullPath(),
			Path:                  c.Request.URL.Path,
			HTTPMethod:            c.Request.Method,
			Headers:               headers,
			QueryStringParameters: query,
			Body:                  string(body),
		}

		resp, err := fn(c.Request.Context(), req)
		if err != nil {
			writeResponse(c, responses.BuildErrorResponse(http.StatusInternalServerError, err.Error()))
			return
		}
		writeResponse(c, resp)
	}
}

func writeResponse(c *gin.Context, resp events.APIGatewayProxyResponse) {
	contentType := "application/json"
	for k, v := range resp.Headers {
		if strings.EqualFold(k, "Content-Type") {
			contentType = v
			continue
		}
		c.Header(k, v)
	}
	c.Data(resp.StatusCode, contentType, []byte(resp.Body))
}

// serveLocalImage serves images from the local store after checking the URL signature
func serveLocalImage(local *storage.LocalStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")

		if err := local.Verify(key, c.Query("expires"), c.Query("signature")); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		data, meta, err := local.ReadImage(key)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidKey) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.Data(http.StatusOK, meta.ContentType, data)
	}
}

// requestLogger logs one line per request with zap
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
