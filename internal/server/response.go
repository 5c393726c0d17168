// internal/server/response.go
//
// 本檔負責統一 HTTP 回應格式：成功回應為 JSON 物件，錯誤回應一律為 {"error": "..."}。
// bank 錯誤類別與 HTTP 狀態碼的對應集中在 statusFor。
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"coinops/internal/bank"
)

type accountResponse struct {
	UserName string `json:"user_name"`
	Balance  int64  `json:"balance"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// toAccountResponse 只輸出名稱與餘額，不輸出密碼。
func toAccountResponse(a *bank.Account) accountResponse {
	return accountResponse{UserName: a.UserName(), Balance: a.Balance()}
}

// statusFor 將 bank 錯誤類別對應到 HTTP 狀態碼。
// 餘額不足優先判斷，包含被轉帳錯誤包裝的情況。
func statusFor(err error) int {
	switch {
	case errors.Is(err, bank.ErrInsufficientFunds):
		return http.StatusConflict
	case errors.Is(err, bank.ErrInvalidAccountRetrieval):
		return http.StatusUnauthorized
	case errors.Is(err, bank.ErrInvalidAccountCreation),
		errors.Is(err, bank.ErrInvalidTransfer),
		errors.Is(err, bank.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeBankErr(c *gin.Context, err error) {
	writeErr(c, statusFor(err), err)
}

func writeErr(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}
