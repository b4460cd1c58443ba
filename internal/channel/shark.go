package channel

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"mall-pay-api/internal/utils"
	"mall-pay-api/internal/utils/timeutil"
)

var sharkDeviceTypes = []string{"ios", "android", "pc"}

// SharkAdapter shark 服务商适配器。
// 下单签名串: mercId + money + notifyUrl + tradeNo + type + secret
// 回调签名串: code + mercId + oid + payMoney + tradeNo + secret
type SharkAdapter struct{}

func init() {
	Register(&SharkAdapter{})
}

func (a *SharkAdapter) Name() string { return "shark" }

func (a *SharkAdapter) BuildInitRequest(orderNo string, amount decimal.Decimal, notifyURL string, cfg Config, returnURL string) map[string]interface{} {
	payType := cfg.DefaultPayType
	if payType == "" {
		payType = "alipay"
	}
	mode := cfg.Mode
	if mode == "" {
		mode = "url"
	}
	// 随机子身份块，服务商风控要求每单独立
	info := map[string]interface{}{
		"playerId":   utils.RandomAlphaNum(12),
		"playerIp":   "0.0.0.0",
		"deviceId":   utils.RandomAlphaNum(20),
		"deviceType": sharkDeviceTypes[rand.Intn(len(sharkDeviceTypes))],
		"name":       "",
		"tel":        utils.RandomDigits(11),
		"payAct":     utils.RandomDigits(11),
	}
	payload := map[string]interface{}{
		"mercId":    cfg.MerchantID,
		"type":      payType,
		"money":     amount.StringFixed(2),
		"tradeNo":   orderNo,
		"notifyUrl": notifyURL,
		"info":      info,
		"time":      strconv.FormatInt(time.Now().UnixMilli(), 10),
		"mode":      mode,
	}
	payload["sign"] = a.signInitRequest(payload, cfg)
	return payload
}

func (a *SharkAdapter) signInitRequest(payload map[string]interface{}, cfg Config) string {
	raw := payload["mercId"].(string) +
		payload["money"].(string) +
		payload["notifyUrl"].(string) +
		payload["tradeNo"].(string) +
		payload["type"].(string) +
		cfg.AppSecret
	return utils.MD5Hex(raw)
}

func (a *SharkAdapter) InitEndpoint(cfg Config) string {
	return "/api/shark/topay"
}

type sharkInitResp struct {
	Code utils.StringOrNumber `json:"code"`
	Msg  struct {
		PayURL string `json:"payUrl"`
		Mode   string `json:"mode"`
		Oid    string `json:"oid"`
		Sign   string `json:"sign"`
	} `json:"msg"`
}

func (a *SharkAdapter) ParseInitResponse(body []byte) InitResult {
	var resp sharkInitResp
	if err := json.Unmarshal(body, &resp); err != nil || string(resp.Code) != "200" {
		return InitResult{Status: StatusFailed}
	}
	return InitResult{
		PayURL:          resp.Msg.PayURL,
		Status:          StatusPending,
		PayMode:         resp.Msg.Mode,
		PlatformOrderNo: resp.Msg.Oid,
		ResponseSign:    resp.Msg.Sign,
	}
}

type sharkCallback struct {
	Code     utils.StringOrNumber `json:"code"`
	MercID   string               `json:"mercId"`
	Oid      string               `json:"oid"`
	PayMoney string               `json:"payMoney"`
	TradeNo  string               `json:"tradeNo"`
	PayTime  string               `json:"payTime"`
	Sign     string               `json:"sign"`
}

func (a *SharkAdapter) VerifyAndParseCallback(raw string, cfg Config) NormalizedCallback {
	var cb sharkCallback
	_ = json.Unmarshal([]byte(raw), &cb)

	code := string(cb.Code)
	verified := false
	// 全字段齐备才重算期望签名，缺字段一律视为验签失败
	if code != "" && cb.MercID != "" && cb.Oid != "" && cb.PayMoney != "" && cb.TradeNo != "" {
		expected := utils.MD5Hex(code + cb.MercID + cb.Oid + cb.PayMoney + cb.TradeNo + cfg.AppSecret)
		verified = cb.Sign == expected
	}

	status := StatusFailed
	if code == "200" && verified {
		status = StatusPaid
	}

	var payTime *time.Time
	if cb.PayTime != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
			if t, err := time.ParseInLocation(layout, cb.PayTime, time.Local); err == nil {
				payTime = &t
				break
			}
		}
		// 部分通道以毫秒时间戳下发
		if payTime == nil {
			if t, err := timeutil.ParseTimestampMs(cb.PayTime); err == nil {
				payTime = &t
			}
		}
	}

	var actualAmount *decimal.Decimal
	if cb.PayMoney != "" {
		if d, err := decimal.NewFromString(cb.PayMoney); err == nil {
			actualAmount = &d
		}
	}

	return NormalizedCallback{
		OrderNo:         cb.TradeNo,
		PlatformOrderNo: cb.Oid,
		Status:          status,
		ActualAmount:    actualAmount,
		PayTime:         payTime,
		Raw:             raw,
		Sign:            cb.Sign,
		Verified:        verified,
		Code:            code,
		MercID:          cb.MercID,
	}
}

func (a *SharkAdapter) SuccessResponseText() string { return "success" }

func (a *SharkAdapter) FailResponseText() string { return "fail" }

func (a *SharkAdapter) ExtractOrderNo(raw string) string {
	var cb sharkCallback
	_ = json.Unmarshal([]byte(raw), &cb)
	return cb.TradeNo
}

func (a *SharkAdapter) ExtractMercID(raw string) string {
	var cb sharkCallback
	_ = json.Unmarshal([]byte(raw), &cb)
	return cb.MercID
}
