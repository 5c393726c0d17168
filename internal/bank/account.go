// Package bank 定義核心領域模型與業務規則。
// 本檔定義 Account：使用者名稱、密碼與整數餘額，不含任何終端機、HTTP 或儲存細節。

package bank

import (
	"math"
	"sync"
)

// Account represents a bank account.
// 只能透過 AddFunds / RemoveFunds 改變餘額；其餘欄位建立後不可變。
type Account struct {
	mu       sync.RWMutex
	userName string
	password string
	balance  int64
}

func newAccount(userName, password string, balance int64) *Account {
	return &Account{userName: userName, password: password, balance: balance}
}

// UserName 回傳使用者名稱（建立後不可變）。
func (a *Account) UserName() string { return a.userName }

// Password 回傳建立帳戶時設定的密碼（建立後不可變）。
func (a *Account) Password() string { return a.password }

// Balance 回傳目前餘額。
func (a *Account) Balance() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

// AddFunds 存入金額：需可轉為整數且不得為負（0 允許）。
func (a *Account) AddFunds(amount any) error {
	amt, err := toInt(amount)
	if err != nil {
		return newError(ErrInvalidAmount, "Invalid value. Must be integer")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.add(amt)
}

// RemoveFunds 提領金額：需可轉為整數且不得超過餘額。
// 不檢查負數，負數提領等同存入。
func (a *Account) RemoveFunds(amount any) error {
	amt, err := toInt(amount)
	if err != nil {
		return newError(ErrInvalidAmount, "Invalid value. Must be integer")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.remove(amt)
}

// add / remove 需在持有 a.mu 時呼叫。
func (a *Account) add(amt int64) error {
	if amt < 0 {
		return newError(ErrInvalidAmount, "Invalid amount to add. Must be positive integer.")
	}
	if a.balance > math.MaxInt64-amt {
		return newError(ErrInvalidAmount, "Invalid amount to add. Balance would overflow.")
	}
	a.balance += amt
	return nil
}

func (a *Account) remove(amt int64) error {
	if amt > a.balance {
		return newError(ErrInsufficientFunds, "Insufficient funds to complete the transaction.")
	}
	if amt < 0 && a.balance > math.MaxInt64+amt {
		return newError(ErrInvalidAmount, "Invalid amount to remove. Balance would overflow.")
	}
	a.balance -= amt
	return nil
}
