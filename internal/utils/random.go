package utils

import (
	"math/rand"
)

const (
	digitChars    = "0123456789"
	alphaNumChars = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// RandomDigits 生成指定长度的数字串
func RandomDigits(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = digitChars[rand.Intn(len(digitChars))]
	}
	return string(b)
}

// RandomAlphaNum 生成指定长度的小写字母数字串
func RandomAlphaNum(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphaNumChars[rand.Intn(len(alphaNumChars))]
	}
	return string(b)
}
