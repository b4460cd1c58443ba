package utils

import (
	"strings"
	"testing"
)

func TestMD5Hex(t *testing.T) {
	got := MD5Hex("abc")
	want := "900150983cd24fb0d6963f7d28e17f72"
	if got != want {
		t.Errorf("MD5Hex mismatch: got %s want %s", got, want)
	}
}

func TestGenerateSignOrderAndSkip(t *testing.T) {
	params := map[string]string{
		"b":    "2",
		"a":    "1",
		"sign": "should-be-ignored",
		"c":    "  ",
	}
	// 参与签名的串固定为 a=1&b=2&key=secret，sign 与空白值不参与
	want := strings.ToUpper(MD5Hex("a=1&b=2&key=secret"))
	if got := GenerateSign(params, "secret"); got != want {
		t.Errorf("GenerateSign mismatch: got %s want %s", got, want)
	}
}

func TestVerifySign(t *testing.T) {
	params := map[string]string{"order_no": "123", "amount": "10.00"}
	params["sign"] = GenerateSign(params, "k1")

	if !VerifySign(params, "k1") {
		t.Error("expected sign to verify")
	}
	if VerifySign(params, "k2") {
		t.Error("wrong secret must not verify")
	}

	params["amount"] = "99.00"
	if VerifySign(params, "k1") {
		t.Error("tampered params must not verify")
	}
}

func TestVerifySignMissingSign(t *testing.T) {
	if VerifySign(map[string]string{"a": "1"}, "k") {
		t.Error("missing sign must not verify")
	}
}
