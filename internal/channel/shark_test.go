package channel

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"mall-pay-api/internal/utils"
)

var sharkCfg = Config{
	MerchantID: "M1001",
	AppSecret:  "s3cret",
}

func sharkCallbackBody(t *testing.T, code, mercID, oid, payMoney, tradeNo, secret string, tamperSign bool) string {
	t.Helper()
	sign := utils.MD5Hex(code + mercID + oid + payMoney + tradeNo + secret)
	if tamperSign {
		sign = utils.MD5Hex(sign)
	}
	b, err := json.Marshal(map[string]string{
		"code":     code,
		"mercId":   mercID,
		"oid":      oid,
		"payMoney": payMoney,
		"tradeNo":  tradeNo,
		"payTime":  "2026-08-27 10:00:00",
		"sign":     sign,
	})
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestSharkBuildInitRequestSign(t *testing.T) {
	a := &SharkAdapter{}
	amount := decimal.NewFromFloat(12.5)
	payload := a.BuildInitRequest("ORD1", amount, "http://cb/api/v1/payments/callback/shark", sharkCfg, "")

	if payload["money"] != "12.50" {
		t.Errorf("money not normalized to two decimals: %v", payload["money"])
	}
	if payload["type"] != "alipay" {
		t.Errorf("default pay type expected alipay, got %v", payload["type"])
	}
	want := utils.MD5Hex("M1001" + "12.50" + "http://cb/api/v1/payments/callback/shark" + "ORD1" + "alipay" + sharkCfg.AppSecret)
	if payload["sign"] != want {
		t.Errorf("init sign mismatch: got %v want %s", payload["sign"], want)
	}
}

func TestSharkParseInitResponse(t *testing.T) {
	a := &SharkAdapter{}

	ok := a.ParseInitResponse([]byte(`{"code":200,"msg":{"payUrl":"https://pay/x","mode":"url","oid":"P9","sign":"ab"}}`))
	if ok.Status != StatusPending || ok.PayURL != "https://pay/x" || ok.PlatformOrderNo != "P9" {
		t.Errorf("unexpected result: %+v", ok)
	}

	// code 既可能是数字也可能是字符串
	okStr := a.ParseInitResponse([]byte(`{"code":"200","msg":{"payUrl":"https://pay/y"}}`))
	if okStr.Status != StatusPending {
		t.Errorf("string code 200 should parse as pending: %+v", okStr)
	}

	bad := a.ParseInitResponse([]byte(`{"code":500,"err":"channel down"}`))
	if bad.Status != StatusFailed || bad.PayURL != "" {
		t.Errorf("non-200 code must map to failed: %+v", bad)
	}

	garbled := a.ParseInitResponse([]byte(`not-json`))
	if garbled.Status != StatusFailed {
		t.Errorf("unparseable body must map to failed: %+v", garbled)
	}
}

func TestSharkCallbackVerified(t *testing.T) {
	a := &SharkAdapter{}
	raw := sharkCallbackBody(t, "200", "M1001", "P9", "12.50", "ORD1", sharkCfg.AppSecret, false)

	n := a.VerifyAndParseCallback(raw, sharkCfg)
	if !n.Verified {
		t.Fatal("expected signature to verify")
	}
	if n.Status != StatusPaid {
		t.Errorf("verified success code must be paid, got %s", n.Status)
	}
	if n.OrderNo != "ORD1" || n.PlatformOrderNo != "P9" {
		t.Errorf("identifiers not extracted: %+v", n)
	}
	if n.ActualAmount == nil || !n.ActualAmount.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("actual amount not parsed: %+v", n.ActualAmount)
	}
	if n.PayTime == nil {
		t.Error("pay time not parsed")
	}
	if n.Raw != raw {
		t.Error("raw payload must be preserved verbatim")
	}
}

func TestSharkCallbackTamperedSign(t *testing.T) {
	a := &SharkAdapter{}
	raw := sharkCallbackBody(t, "200", "M1001", "P9", "12.50", "ORD1", sharkCfg.AppSecret, true)

	n := a.VerifyAndParseCallback(raw, sharkCfg)
	if n.Verified {
		t.Fatal("tampered sign must not verify")
	}
	// 成功码但验签失败，不能判 paid
	if n.Status != StatusFailed {
		t.Errorf("unverified callback must be failed, got %s", n.Status)
	}
}

func TestSharkCallbackWrongSecret(t *testing.T) {
	a := &SharkAdapter{}
	raw := sharkCallbackBody(t, "200", "M1001", "P9", "12.50", "ORD1", "other-secret", false)

	n := a.VerifyAndParseCallback(raw, sharkCfg)
	if n.Verified || n.Status != StatusFailed {
		t.Errorf("sign made with wrong secret must fail: verified=%v status=%s", n.Verified, n.Status)
	}
}

func TestSharkCallbackMissingField(t *testing.T) {
	a := &SharkAdapter{}
	// 缺 payMoney，即使 sign 按剩余字段算对也一律验签失败
	raw := `{"code":"200","mercId":"M1001","oid":"P9","tradeNo":"ORD1","sign":"whatever"}`

	n := a.VerifyAndParseCallback(raw, sharkCfg)
	if n.Verified {
		t.Error("missing signed field must not verify")
	}
	if n.Status != StatusFailed {
		t.Errorf("expected failed, got %s", n.Status)
	}
}

func TestSharkCallbackFailureCodeVerified(t *testing.T) {
	a := &SharkAdapter{}
	raw := sharkCallbackBody(t, "500", "M1001", "P9", "12.50", "ORD1", sharkCfg.AppSecret, false)

	n := a.VerifyAndParseCallback(raw, sharkCfg)
	if !n.Verified {
		t.Fatal("failure notification with valid sign should verify")
	}
	if n.Status != StatusFailed {
		t.Errorf("non-success code must be failed even when verified, got %s", n.Status)
	}
}

func TestSharkCallbackMsTimestampPayTime(t *testing.T) {
	a := &SharkAdapter{}
	sign := utils.MD5Hex("200" + "M1001" + "P9" + "12.50" + "ORD1" + sharkCfg.AppSecret)
	raw := `{"code":"200","mercId":"M1001","oid":"P9","payMoney":"12.50","tradeNo":"ORD1","payTime":"1756260000000","sign":"` + sign + `"}`

	n := a.VerifyAndParseCallback(raw, sharkCfg)
	if n.PayTime == nil {
		t.Fatal("millisecond timestamp pay time not parsed")
	}
	if n.PayTime.UnixMilli() != 1756260000000 {
		t.Errorf("pay time = %d", n.PayTime.UnixMilli())
	}
}

func TestSharkExtractors(t *testing.T) {
	a := &SharkAdapter{}
	raw := `{"tradeNo":"ORD7","mercId":"M2002"}`
	if got := a.ExtractOrderNo(raw); got != "ORD7" {
		t.Errorf("ExtractOrderNo = %s", got)
	}
	if got := a.ExtractMercID(raw); got != "M2002" {
		t.Errorf("ExtractMercID = %s", got)
	}
	if got := a.ExtractOrderNo("broken"); got != "" {
		t.Errorf("broken payload should yield empty order no, got %s", got)
	}
}

func TestRegistry(t *testing.T) {
	if Get("shark") == nil {
		t.Fatal("shark adapter not registered")
	}
	if Get("nonexistent") != nil {
		t.Error("unknown provider must resolve to nil")
	}
}
