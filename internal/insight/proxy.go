package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tecace-soft/ta-project-data-analyst/internal/logger"
)

// ProxyErrorKind 代理失败分类
type ProxyErrorKind int

const (
	// ProxyErrorTimeout 上游超时
	ProxyErrorTimeout ProxyErrorKind = iota
	// ProxyErrorConnection 无法连接上游
	ProxyErrorConnection
	// ProxyErrorUpstreamStatus 上游返回非 200 状态
	ProxyErrorUpstreamStatus
)

// ProxyError 代理调用失败，按超时/连接/上游状态分类一次，
// 调用方不再各自猜测失败形态。
type ProxyError struct {
	Kind       ProxyErrorKind
	StatusCode int
	Err        error
}

func (e *ProxyError) Error() string {
	switch e.Kind {
	case ProxyErrorTimeout:
		return "webhook request timed out"
	case ProxyErrorConnection:
		return fmt.Sprintf("webhook connection failed: %v", e.Err)
	default:
		return fmt.Sprintf("webhook returned status %d", e.StatusCode)
	}
}

func (e *ProxyError) Unwrap() error {
	return e.Err
}

// Proxy 聊天 webhook 透传代理
type Proxy struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

// NewProxy 创建透传代理，timeout 为整个上游调用的硬超时
func NewProxy(webhookURL string, timeout time.Duration) *Proxy {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Proxy{
		url:    webhookURL,
		client: &http.Client{Timeout: timeout},
		log:    logger.WithComponent("chat-proxy"),
	}
}

// Configured 是否配置了上游地址
func (p *Proxy) Configured() bool {
	return p.url != ""
}

// Forward 透传任意 JSON 负载到上游 webhook，返回提取后的应答文本。
// 失败时返回 *ProxyError，由调用方映射为对应的 HTTP 状态。
func (p *Proxy) Forward(ctx context.Context, payload interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &ProxyError{Kind: ProxyErrorConnection, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", &ProxyError{Kind: ProxyErrorConnection, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			p.log.Warn().Msg("webhook request timed out")
			return "", &ProxyError{Kind: ProxyErrorTimeout, Err: err}
		}
		p.log.Warn().Err(err).Msg("webhook connection failed")
		return "", &ProxyError{Kind: ProxyErrorConnection, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProxyError{Kind: ProxyErrorConnection, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		p.log.Warn().
			Int("status", resp.StatusCode).
			Msg("webhook returned non-200 status")
		return "", &ProxyError{Kind: ProxyErrorUpstreamStatus, StatusCode: resp.StatusCode}
	}

	return extractOutputText(raw), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// extractOutputText 解开上游应答。三种形态在此一次性判定：
// 带字段的对象（output → response）、对象数组（取首个元素）、
// 其余一律按不透明文本处理。
func extractOutputText(raw []byte) string {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}

	switch t := v.(type) {
	case map[string]interface{}:
		return objectText(t, string(raw))
	case []interface{}:
		if len(t) > 0 {
			if obj, ok := t[0].(map[string]interface{}); ok {
				return objectText(obj, stringify(v))
			}
		}
		return stringify(v)
	case string:
		return t
	default:
		return stringify(v)
	}
}

func objectText(obj map[string]interface{}, fallback string) string {
	if s, ok := obj["output"].(string); ok {
		return s
	}
	if s, ok := obj["response"].(string); ok {
		return s
	}
	return fallback
}

func stringify(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
