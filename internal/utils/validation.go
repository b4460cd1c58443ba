package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationMsg 把校验错误翻译成可读提示
func ValidationMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s 不能为空", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s 取值必须是 [%s] 之一", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s 不能小于 %s", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s 必须是合法 URL", fe.Field())
	default:
		return fmt.Sprintf("%s 参数不合法", fe.Field())
	}
}

// BindErrorMsg 取第一条校验错误的提示；非校验类错误退回通用文案
func BindErrorMsg(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return ValidationMsg(errs[0])
	}
	return "请求参数解析失败"
}
