package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tecace-soft/ta-project-data-analyst/internal/insight"
)

// Chat 把调用方的 JSON 载荷原样透传给聊天 webhook。
// 失败按分类映射状态码：超时 408、连接失败 503、
// 上游非 200 原样透传其状态码。
func (h *Handlers) Chat(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil || payload == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No data provided"})
		return
	}
	if _, ok := payload["request"]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing request field"})
		return
	}

	if !h.chat.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "Connection error - chat webhook is not configured",
		})
		return
	}

	text, err := h.chat.Forward(c.Request.Context(), payload)
	if err != nil {
		var perr *insight.ProxyError
		if errors.As(err, &perr) {
			switch perr.Kind {
			case insight.ProxyErrorTimeout:
				c.JSON(http.StatusRequestTimeout, gin.H{
					"success": false,
					"error":   "Request timeout - the AI service is processing your request but it's taking longer than expected (60+ seconds). Please try a simpler question or try again later.",
				})
			case insight.ProxyErrorConnection:
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"success": false,
					"error":   "Connection error - unable to reach the AI service",
				})
			default:
				c.JSON(perr.StatusCode, gin.H{
					"success": false,
					"error":   perr.Error(),
				})
			}
			return
		}
		h.log.Error().Err(err).Msg("unexpected chat proxy failure")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "An unexpected error occurred"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "response": text})
}
