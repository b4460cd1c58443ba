package channel

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"mall-pay-api/internal/utils"
)

// TigerAdapter tiger 服务商适配器。
// 与 shark 的定长字段拼接不同，tiger 按 key 字典序拼 k=v&...&key=secret 后取 md5 大写，
// 下单与回调两侧同一套签名规则，空值字段不参与。
type TigerAdapter struct{}

func init() {
	Register(&TigerAdapter{})
}

func (a *TigerAdapter) Name() string { return "tiger" }

func (a *TigerAdapter) BuildInitRequest(orderNo string, amount decimal.Decimal, notifyURL string, cfg Config, returnURL string) map[string]interface{} {
	payType := cfg.DefaultPayType
	if payType == "" {
		payType = "wechat"
	}
	params := map[string]string{
		"merchant_no": cfg.MerchantID,
		"order_no":    orderNo,
		"amount":      amount.StringFixed(2),
		"pay_type":    payType,
		"notify_url":  notifyURL,
		"return_url":  returnURL,
		"timestamp":   strconv.FormatInt(time.Now().Unix(), 10),
	}
	sign := utils.GenerateSign(params, cfg.AppSecret)

	payload := make(map[string]interface{}, len(params)+1)
	for k, v := range params {
		payload[k] = v
	}
	payload["sign"] = sign
	return payload
}

func (a *TigerAdapter) InitEndpoint(cfg Config) string {
	return "/gateway/pay/create"
}

type tigerInitResp struct {
	Code utils.StringOrNumber `json:"code"`
	Data struct {
		PayURL  string `json:"pay_url"`
		TradeNo string `json:"trade_no"`
		Sign    string `json:"sign"`
	} `json:"data"`
}

func (a *TigerAdapter) ParseInitResponse(body []byte) InitResult {
	var resp tigerInitResp
	if err := json.Unmarshal(body, &resp); err != nil || string(resp.Code) != "0" {
		return InitResult{Status: StatusFailed}
	}
	return InitResult{
		PayURL:          resp.Data.PayURL,
		Status:          StatusPending,
		PayMode:         "url",
		PlatformOrderNo: resp.Data.TradeNo,
		ResponseSign:    resp.Data.Sign,
	}
}

type tigerCallback struct {
	MerchantNo string               `json:"merchant_no"`
	OrderNo    string               `json:"order_no"`
	TradeNo    string               `json:"trade_no"`
	Amount     utils.StringOrNumber `json:"amount"`
	Status     string               `json:"status"`
	PayTime    string               `json:"pay_time"`
	Sign       string               `json:"sign"`
}

func (a *TigerAdapter) VerifyAndParseCallback(raw string, cfg Config) NormalizedCallback {
	var cb tigerCallback
	_ = json.Unmarshal([]byte(raw), &cb)

	params := map[string]string{
		"merchant_no": cb.MerchantNo,
		"order_no":    cb.OrderNo,
		"trade_no":    cb.TradeNo,
		"amount":      string(cb.Amount),
		"status":      cb.Status,
		"pay_time":    cb.PayTime,
		"sign":        cb.Sign,
	}
	verified := utils.VerifySign(params, cfg.AppSecret)

	status := StatusFailed
	if cb.Status == "SUCCESS" && verified {
		status = StatusPaid
	}

	var payTime *time.Time
	if cb.PayTime != "" {
		if t, err := time.ParseInLocation("2006-01-02 15:04:05", cb.PayTime, time.Local); err == nil {
			payTime = &t
		}
	}

	var actualAmount *decimal.Decimal
	if cb.Amount != "" {
		if d, err := decimal.NewFromString(string(cb.Amount)); err == nil {
			actualAmount = &d
		}
	}

	return NormalizedCallback{
		OrderNo:         cb.OrderNo,
		PlatformOrderNo: cb.TradeNo,
		Status:          status,
		ActualAmount:    actualAmount,
		PayTime:         payTime,
		Raw:             raw,
		Sign:            cb.Sign,
		Verified:        verified,
		Code:            cb.Status,
		MercID:          cb.MerchantNo,
	}
}

func (a *TigerAdapter) SuccessResponseText() string { return "SUCCESS" }

func (a *TigerAdapter) FailResponseText() string { return "FAIL" }

func (a *TigerAdapter) ExtractOrderNo(raw string) string {
	var cb tigerCallback
	_ = json.Unmarshal([]byte(raw), &cb)
	return cb.OrderNo
}

func (a *TigerAdapter) ExtractMercID(raw string) string {
	var cb tigerCallback
	_ = json.Unmarshal([]byte(raw), &cb)
	return cb.MerchantNo
}
