package channel

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"mall-pay-api/internal/utils"
)

var tigerCfg = Config{
	MerchantID: "T2001",
	AppSecret:  "t1ger-secret",
}

func tigerCallbackBody(t *testing.T, status, amount, orderNo, secret string, tamperSign bool) string {
	t.Helper()
	params := map[string]string{
		"merchant_no": "T2001",
		"order_no":    orderNo,
		"trade_no":    "TP88",
		"amount":      amount,
		"status":      status,
		"pay_time":    "2026-08-27 12:30:00",
	}
	sign := utils.GenerateSign(params, secret)
	if tamperSign {
		sign = utils.MD5Hex(sign)
	}
	params["sign"] = sign
	b, err := json.Marshal(params)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestTigerBuildInitRequestSign(t *testing.T) {
	a := &TigerAdapter{}
	payload := a.BuildInitRequest("ORD2", decimal.NewFromInt(30), "http://cb/api/v1/payments/callback/tiger", tigerCfg, "")

	if payload["amount"] != "30.00" {
		t.Errorf("amount not normalized: %v", payload["amount"])
	}
	// 空 return_url 不参与签名，回算必须能对上
	params := make(map[string]string, len(payload))
	for k, v := range payload {
		params[k] = v.(string)
	}
	if !utils.VerifySign(params, tigerCfg.AppSecret) {
		t.Error("init payload sign does not verify against its own fields")
	}
	if utils.VerifySign(params, "wrong") {
		t.Error("init payload sign must not verify with wrong secret")
	}
}

func TestTigerParseInitResponse(t *testing.T) {
	a := &TigerAdapter{}

	ok := a.ParseInitResponse([]byte(`{"code":0,"data":{"pay_url":"https://t/pay","trade_no":"TP88","sign":"ab"}}`))
	if ok.Status != StatusPending || ok.PayURL != "https://t/pay" || ok.PlatformOrderNo != "TP88" {
		t.Errorf("unexpected result: %+v", ok)
	}

	bad := a.ParseInitResponse([]byte(`{"code":1001,"msg":"merchant disabled"}`))
	if bad.Status != StatusFailed {
		t.Errorf("non-zero code must map to failed: %+v", bad)
	}
}

func TestTigerCallbackVerified(t *testing.T) {
	a := &TigerAdapter{}
	raw := tigerCallbackBody(t, "SUCCESS", "30.00", "ORD2", tigerCfg.AppSecret, false)

	n := a.VerifyAndParseCallback(raw, tigerCfg)
	if !n.Verified || n.Status != StatusPaid {
		t.Fatalf("expected verified paid, got verified=%v status=%s", n.Verified, n.Status)
	}
	if n.OrderNo != "ORD2" || n.PlatformOrderNo != "TP88" {
		t.Errorf("identifiers not extracted: %+v", n)
	}
	if n.ActualAmount == nil || !n.ActualAmount.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("actual amount not parsed: %+v", n.ActualAmount)
	}
	if n.PayTime == nil {
		t.Error("pay time not parsed")
	}
}

func TestTigerCallbackTamperedSign(t *testing.T) {
	a := &TigerAdapter{}
	raw := tigerCallbackBody(t, "SUCCESS", "30.00", "ORD2", tigerCfg.AppSecret, true)

	n := a.VerifyAndParseCallback(raw, tigerCfg)
	if n.Verified {
		t.Fatal("tampered sign must not verify")
	}
	if n.Status != StatusFailed {
		t.Errorf("unverified callback must be failed, got %s", n.Status)
	}
}

func TestTigerCallbackFailureStatusVerified(t *testing.T) {
	a := &TigerAdapter{}
	raw := tigerCallbackBody(t, "FAIL", "30.00", "ORD2", tigerCfg.AppSecret, false)

	n := a.VerifyAndParseCallback(raw, tigerCfg)
	if !n.Verified {
		t.Fatal("failure notification with valid sign should verify")
	}
	if n.Status != StatusFailed {
		t.Errorf("non-success status must be failed even when verified, got %s", n.Status)
	}
}

func TestTigerExtractorsAndRegistry(t *testing.T) {
	a := &TigerAdapter{}
	raw := `{"order_no":"ORD9","merchant_no":"T9"}`
	if got := a.ExtractOrderNo(raw); got != "ORD9" {
		t.Errorf("ExtractOrderNo = %s", got)
	}
	if got := a.ExtractMercID(raw); got != "T9" {
		t.Errorf("ExtractMercID = %s", got)
	}
	if Get("tiger") == nil {
		t.Fatal("tiger adapter not registered")
	}
}
