// internal/bank/bank.go

// Package bank 定義核心商業邏輯：帳戶建立、登入取回、存提款與轉帳。
// Ledger 以單一互斥鎖 (sync.Mutex) 保護帳戶索引表並序列化跨帳戶操作；
// 每個 Account 另有自己的鎖保護餘額，讓持有帳戶參考的呼叫端可安全讀取。
// 金額一律為 int64 整數，不處理幣別。
package bank

import (
	"crypto/subtle"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// 操作名稱，作為 Observer 與 metrics 的標籤。
const (
	OpCreateAccount   = "create_account"
	OpRetrieveAccount = "retrieve_account"
	OpTransferFunds   = "transfer_funds"
	OpDeposit         = "deposit"
	OpWithdraw        = "withdraw"
)

// Observer 於每次 Ledger 操作結束後被呼叫；err 為 nil 代表成功。
type Observer func(op string, err error)

// Option 設定 Ledger 的選用相依。
type Option func(*Ledger)

// WithObserver 注入操作觀察者（例如 metrics 記錄器）。
func WithObserver(o Observer) Option {
	return func(l *Ledger) { l.observe = o }
}

// WithLogger 注入日誌器；未設定時丟棄所有日誌。
func WithLogger(logger logrus.FieldLogger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// Ledger 為聚合根 (Aggregate Root)：獨佔持有全部帳戶。
// - mu：保護 accts，並讓轉帳的扣款與入帳在同一臨界區內完成。
// - accts：使用者名稱 → *Account；鍵值恆等於帳戶的 UserName()。
type Ledger struct {
	mu      sync.Mutex
	accts   map[string]*Account
	observe Observer
	logger  logrus.FieldLogger
}

// NewLedger 建立空白帳本（僅 in-memory 狀態）。
func NewLedger(opts ...Option) *Ledger {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	l := &Ledger{
		accts:   make(map[string]*Account),
		observe: func(string, error) {},
		logger:  discard,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Credentials 檢查未定型別的使用者名稱與密碼皆為字串。
// 供 JSON 等動態輸入在呼叫 CreateAccount 前使用。
func Credentials(userName, password any) (string, string, error) {
	u, ok1 := userName.(string)
	p, ok2 := password.(string)
	if !ok1 || !ok2 {
		return "", "", newError(ErrInvalidAccountCreation, "Username and password must be strings.")
	}
	return u, p, nil
}

// CreateAccount 建立新帳戶；startingBalance 為 nil 時視為 0。
// 檢核順序：名稱與密碼非空 → 初始餘額為整數 → 名稱未被使用 → 初始餘額非負。
func (l *Ledger) CreateAccount(userName, password string, startingBalance any) (err error) {
	defer func() { l.observe(OpCreateAccount, err) }()

	if userName == "" || password == "" {
		return newError(ErrInvalidAccountCreation, "Invalid new account information. Must provide a user name and password.")
	}
	if startingBalance == nil {
		startingBalance = 0
	}
	balance, convErr := toInt(startingBalance)
	if convErr != nil {
		return newError(ErrInvalidAccountCreation, "Starting balance must be an integer.")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.accts[userName]; exists {
		return newError(ErrInvalidAccountCreation, "An account already exists with that user name.")
	}
	if balance < 0 {
		return newError(ErrInvalidAccountCreation, "Invalid starting balance.")
	}
	l.accts[userName] = newAccount(userName, password, balance)
	l.logger.WithField("user", userName).Debug("account created")
	return nil
}

// RetrieveAccount 以帳號密碼取回帳戶參考；帳戶仍由 Ledger 持有。
// 兩種失敗皆回傳 ErrInvalidAccountRetrieval，但訊息不同。
func (l *Ledger) RetrieveAccount(userName, password string) (_ *Account, err error) {
	defer func() { l.observe(OpRetrieveAccount, err) }()

	l.mu.Lock()
	a, ok := l.accts[userName]
	l.mu.Unlock()
	if !ok {
		return nil, newError(ErrInvalidAccountRetrieval, "Account with the provided username does not exist.")
	}
	if subtle.ConstantTimeCompare([]byte(a.password), []byte(password)) != 1 {
		return nil, newError(ErrInvalidAccountRetrieval, "The provided password is incorrect for the account.")
	}
	return a, nil
}

// Account 依名稱查詢帳戶（不驗證密碼），供已驗證的工作階段使用。
func (l *Ledger) Account(userName string) (*Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accts[userName]
	return a, ok
}

// Len 回傳已註冊帳戶數。
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.accts)
}

// TransferFunds 轉帳為「單一臨界區內」的操作：
// 1) 金額為正整數 → 2) 依名稱重新解析雙方帳戶 → 3) 扣款 → 4) 入帳。
// source 只取其名稱作為索引鍵，未註冊於此 Ledger 的帳戶物件無法轉出。
// 入帳失敗時回補扣款，任一步驟失敗雙方餘額皆不變。
func (l *Ledger) TransferFunds(source *Account, recipient string, amount any) (err error) {
	defer func() { l.observe(OpTransferFunds, err) }()

	amt, convErr := toInt(amount)
	if convErr != nil {
		return newError(ErrInvalidTransfer, "Invalid value for transfer. Must be integer.")
	}
	if amt <= 0 {
		return newError(ErrInvalidTransfer, "Invalid transfer amount.")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var from *Account
	if source != nil {
		from = l.accts[source.userName]
	}
	to := l.accts[recipient]
	if from == nil || to == nil {
		return newError(ErrInvalidTransfer, "Invalid user accounts for transfer.")
	}

	unlock := lockPair(from, to)
	defer unlock()

	if err := from.remove(amt); err != nil {
		return wrapError(ErrInvalidTransfer, "Transfer Error: ", err)
	}
	if err := to.add(amt); err != nil {
		// 扣款已成功，入帳失敗時必須回補
		from.balance += amt
		l.logger.WithFields(logrus.Fields{
			"from": from.userName, "to": to.userName, "amount": amt,
		}).Warn("transfer credit failed, debit reversed")
		return wrapError(ErrInvalidTransfer, "Transfer Error: ", err)
	}
	l.logger.WithFields(logrus.Fields{
		"from": from.userName, "to": to.userName, "amount": amt,
	}).Debug("transfer completed")
	return nil
}

// Deposit 對指定帳戶存款，規則同 Account.AddFunds。
func (l *Ledger) Deposit(userName string, amount any) (_ *Account, err error) {
	defer func() { l.observe(OpDeposit, err) }()

	a, ok := l.Account(userName)
	if !ok {
		return nil, newError(ErrInvalidAccountRetrieval, "Account with the provided username does not exist.")
	}
	if err := a.AddFunds(amount); err != nil {
		return nil, err
	}
	return a, nil
}

// Withdraw 對指定帳戶提款；與 Account.RemoveFunds 不同，負數金額直接拒絕。
func (l *Ledger) Withdraw(userName string, amount any) (_ *Account, err error) {
	defer func() { l.observe(OpWithdraw, err) }()

	a, ok := l.Account(userName)
	if !ok {
		return nil, newError(ErrInvalidAccountRetrieval, "Account with the provided username does not exist.")
	}
	amt, convErr := toInt(amount)
	if convErr != nil {
		return nil, newError(ErrInvalidAmount, "Invalid value. Must be integer")
	}
	if amt < 0 {
		return nil, newError(ErrInvalidAmount, "Invalid amount to remove. Must be positive integer.")
	}
	if err := a.RemoveFunds(amt); err != nil {
		return nil, err
	}
	return a, nil
}

// lockPair 依使用者名稱順序鎖定兩個帳戶，避免交錯轉帳造成死結；
// 同一帳戶只鎖一次。回傳解鎖函式。
func lockPair(a, b *Account) func() {
	if a == b {
		a.mu.Lock()
		return a.mu.Unlock
	}
	first, second := a, b
	if second.userName < first.userName {
		first, second = second, first
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
