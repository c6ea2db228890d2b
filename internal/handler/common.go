package handler

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerOnce sync.Once

// RegisterValidators 在 gin 的 validator 上註冊自訂規則（notblank），只執行一次。
// 註冊失敗時 panic，讓問題在啟動時出現而不是在第一次 bind 時。
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("handler: gin validator engine is not go-playground/validator")
		}
		if err := registerValidations(v); err != nil {
			panic(err)
		}
	})
}

func registerValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return fmt.Errorf("register notblank validator: %w", err)
	}
	return nil
}

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format", err)
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format", err)
		return err
	}
	return nil
}

// respondError 失敗回應 {message, error?}；release mode（production）不回傳錯誤細節
func respondError(c *gin.Context, status int, message string, err error) {
	body := gin.H{"message": message}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		body["error"] = err.Error()
	}
	c.AbortWithStatusJSON(status, body)
}

// respondOK 成功回應 {message, <key>: data}
func respondOK(c *gin.Context, status int, message string, key string, data interface{}) {
	c.JSON(status, gin.H{
		"message": message,
		key:       data,
	})
}

type uriUUID struct {
	UUID string `uri:"uuid" binding:"required,uuid"`
}
