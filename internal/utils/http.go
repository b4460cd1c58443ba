package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewGatewayClient 构建上游网关客户端，连接/首包超时分离。
// 上游下单调用不做自动重试，失败由调用方落审计后透传。
func NewGatewayClient(connectTimeout, readTimeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
			ResponseHeaderTimeout: readTimeout,
		},
		Timeout: connectTimeout + readTimeout,
	}
}

// HttpPostJson 发送 POST JSON 请求，返回状态码与响应体
func HttpPostJson(client *http.Client, url string, data interface{}) (int, string, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return 0, "", fmt.Errorf("marshal json error: %v", err)
	}

	log.Printf("[GATEWAY] 请求上游URL: %v,请求上游参数: %v", url, string(jsonData))

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return 0, "", fmt.Errorf("new request error: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("http request error: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("read response error: %v", err)
	}

	return resp.StatusCode, string(body), nil
}

func GetClientIP(c *gin.Context) string {
	ip := c.GetHeader("X-Forwarded-For")
	if ip != "" {
		parts := strings.Split(ip, ",")
		return strings.TrimSpace(parts[0])
	}
	return c.ClientIP()
}
