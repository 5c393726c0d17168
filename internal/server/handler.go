// internal/server/handler.go
//
// Package server
// ─────────────────────────────────────────────
// 提供 JSON HTTP 介面，作為 bank 模組的另一個呼叫端（與終端機並列）。
// 每個 handler 僅負責：
//  1. 解析請求
//  2. 呼叫 Ledger 執行商業邏輯
//  3. 依錯誤類別回傳對應狀態碼與 {"error": 原因}
//
// 登入後以 JWT bearer token 代表工作階段，對應終端機「持有帳戶參考」的角色。
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coinops/internal/bank"
)

// Config 為 Server 的相依與參數。
// Metrics 可為 nil；若提供則掛在 /metrics。
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	Metrics   http.Handler
	Logger    logrus.FieldLogger
}

// Server 為 HTTP 層核心結構。
type Server struct {
	Ledger  *bank.Ledger
	tokens  tokenIssuer
	metrics http.Handler
	logger  logrus.FieldLogger
}

// NewServer 建立新的 HTTP 伺服器。
func NewServer(l *bank.Ledger, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{
		Ledger:  l,
		tokens:  tokenIssuer{secret: []byte(cfg.JWTSecret), ttl: cfg.TokenTTL, now: time.Now},
		metrics: cfg.Metrics,
		logger:  logger,
	}
}

type createAccountRequest struct {
	UserName        any `json:"user_name"`
	Password        any `json:"password"`
	StartingBalance any `json:"starting_balance"`
}

type loginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

type amountRequest struct {
	Amount any `json:"amount"`
}

type transferRequest struct {
	To     string `json:"to"`
	Amount any    `json:"amount"`
}

// createAccount 處理 POST /accounts → 201 帳戶資訊。
func (s *Server) createAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, http.StatusBadRequest, err)
		return
	}
	userName, password, err := bank.Credentials(req.UserName, req.Password)
	if err != nil {
		writeBankErr(c, err)
		return
	}
	if err := s.Ledger.CreateAccount(userName, password, req.StartingBalance); err != nil {
		writeBankErr(c, err)
		return
	}
	a, _ := s.Ledger.Account(userName)
	c.JSON(http.StatusCreated, toAccountResponse(a))
}

// login 處理 POST /sessions → 200 {token, expires_at}。
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, http.StatusBadRequest, err)
		return
	}
	a, err := s.Ledger.RetrieveAccount(req.UserName, req.Password)
	if err != nil {
		writeBankErr(c, err)
		return
	}
	token, expires, err := s.tokens.issue(a.UserName())
	if err != nil {
		s.logger.WithError(err).Error("sign session token")
		writeErr(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{Token: token, ExpiresAt: expires})
}

// balance 處理 GET /account。
func (s *Server) balance(c *gin.Context) {
	c.JSON(http.StatusOK, toAccountResponse(sessionAccount(c)))
}

// deposit 處理 POST /account/deposit。
func (s *Server) deposit(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, http.StatusBadRequest, err)
		return
	}
	a, err := s.Ledger.Deposit(sessionAccount(c).UserName(), req.Amount)
	if err != nil {
		writeBankErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(a))
}

// withdraw 處理 POST /account/withdraw。
func (s *Server) withdraw(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, http.StatusBadRequest, err)
		return
	}
	a, err := s.Ledger.Withdraw(sessionAccount(c).UserName(), req.Amount)
	if err != nil {
		writeBankErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(a))
}

// transfer 處理 POST /transfer：從登入帳戶轉出至 to。
// 成功後回傳轉出方最新餘額；不回傳收款方資訊。
func (s *Server) transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, http.StatusBadRequest, err)
		return
	}
	from := sessionAccount(c)
	if err := s.Ledger.TransferFunds(from, req.To, req.Amount); err != nil {
		writeBankErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "transfer success",
		"from":    toAccountResponse(from),
	})
}

// health 提供健康檢查端點：GET /health。
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
