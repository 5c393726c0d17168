// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 五種錯誤類別皆屬於呼叫端輸入或商業規則違反，由上層（終端機選單或 HTTP handler）
// 轉換為提示訊息或 HTTP 狀態碼。
//
// 每個錯誤實體為 *Error：Error() 只輸出人類可讀的原因，
// errors.Is 比對類別 (Kind)，Unwrap 則回到被包裝的內層錯誤（轉帳失敗時使用）。

package bank

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidAmount 代表金額無法轉為整數，或存入負數。
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds 代表提領金額超過目前餘額。
	// 對應 HTTP 狀態碼 409 Conflict。
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAccountCreation 代表建立帳戶的任一檢核失敗。
	ErrInvalidAccountCreation = errors.New("invalid account creation")

	// ErrInvalidAccountRetrieval 代表使用者名稱不存在或密碼錯誤。
	// 對應 HTTP 狀態碼 401 Unauthorized。
	ErrInvalidAccountRetrieval = errors.New("invalid account retrieval")

	// ErrInvalidTransfer 代表轉帳失敗，可能包裝了內層的 ErrInsufficientFunds 或 ErrInvalidAmount。
	ErrInvalidTransfer = errors.New("invalid transfer")
)

// Error 為帶有原因說明的領域錯誤。
type Error struct {
	Kind   error
	Reason string
	cause  error
}

func (e *Error) Error() string { return e.Reason }

// Is 讓 errors.Is(err, ErrInvalidTransfer) 等判斷依類別成立。
func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.cause }

func newError(kind error, reason string) error {
	return &Error{Kind: kind, Reason: reason}
}

// wrapError 以新類別包裝內層錯誤，原因格式為 "<prefix><內層原因>"。
func wrapError(kind error, prefix string, cause error) error {
	return &Error{Kind: kind, Reason: prefix + cause.Error(), cause: cause}
}

// KindName 回傳錯誤類別的短名稱，供 metrics 標籤使用。
// 非領域錯誤回傳 "internal"；nil 回傳 "ok"。
func KindName(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidTransfer):
		return "invalid_transfer"
	case errors.Is(err, ErrInvalidAccountCreation):
		return "invalid_account_creation"
	case errors.Is(err, ErrInvalidAccountRetrieval):
		return "invalid_account_retrieval"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	default:
		return "internal"
	}
}
