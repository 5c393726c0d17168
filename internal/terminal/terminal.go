// internal/terminal/terminal.go
//
// Package terminal 提供文字選單介面（ATM 終端機），作為 bank 模組的另一個呼叫端。
// 選單以「列舉狀態 + 轉移函式」實作：每一步讀取輸入、呼叫 Ledger、回傳下一個狀態。
// 所有 bank 錯誤皆轉為提示訊息並導回對應頁面，終端機本身不因輸入錯誤而中止。
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"coinops/internal/bank"
)

const (
	banner    = "Welcome to CoinOps Internal ATM service!"
	separator = "==============================="
	goodbye   = "Shutting down the bank's computer system. Goodbye!"
)

type state int

const (
	mainMenu state = iota
	createPage
	createSubmit
	loginPage
	loginSubmit
	userMenu
	checkBalance
	transferPage
	transferSubmit
	exitSystem
)

var stateNames = [...]string{
	"main_menu", "create_page", "create_submit", "login_page", "login_submit",
	"user_menu", "check_balance", "transfer_page", "transfer_submit", "exit",
}

func (s state) String() string { return stateNames[s] }

// form 暫存頁面讀入、待下一步送出的欄位。
type form struct {
	userName  string
	password  string
	balance   string
	recipient string
	amount    string
}

// Terminal 為一次終端機工作階段。session 為登入後持有的帳戶參考（由 Ledger 擁有）。
type Terminal struct {
	ledger  *bank.Ledger
	in      *bufio.Scanner
	out     io.Writer
	logger  logrus.FieldLogger
	session *bank.Account
	form    form
}

// New 建立終端機；logger 可為 nil。
func New(ledger *bank.Ledger, in io.Reader, out io.Writer, logger logrus.FieldLogger) *Terminal {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Terminal{
		ledger: ledger,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run 執行選單直到使用者輸入 exit、輸入結束或 ctx 被取消。
func (t *Terminal) Run(ctx context.Context) error {
	t.println(banner)
	s := mainMenu
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		t.println(separator)
		next, err := t.step(s)
		if errors.Is(err, io.EOF) {
			t.logger.Debug("input closed")
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read input")
		}
		t.logger.WithFields(logrus.Fields{"from": s, "to": next}).Debug("transition")
		if next == exitSystem {
			t.println(goodbye)
			return nil
		}
		s = next
	}
}

// step 執行目前狀態並回傳下一個狀態。只有讀取輸入失敗才回傳錯誤。
func (t *Terminal) step(s state) (state, error) {
	switch s {
	case mainMenu:
		cmd, err := t.prompt("Available commands:\n" +
			"- create: Create a new Account\n" +
			"- login: Go to Login Page\n" +
			"- exit: Exit the terminal\n" +
			"Enter command: ")
		if err != nil {
			return s, err
		}
		switch strings.TrimSpace(cmd) {
		case "create":
			return createPage, nil
		case "login":
			return loginPage, nil
		case "exit":
			return exitSystem, nil
		}
		t.println("Invalid command. Please try again.")
		return mainMenu, nil

	case createPage:
		fields, err := t.prompts("Enter user name: ", "Enter an account password: ", "Enter initial balance (ADMIN MODE): ")
		if err != nil {
			return s, err
		}
		t.form = form{
			userName: strings.TrimSpace(fields[0]),
			password: strings.TrimSpace(fields[1]),
			balance:  fields[2],
		}
		return createSubmit, nil

	case createSubmit:
		f := t.form
		if err := t.ledger.CreateAccount(f.userName, f.password, f.balance); err != nil {
			t.printf("Failed to create account: %v\n", err)
			return mainMenu, nil
		}
		t.printf("Account '%s' created successfully with initial balance %s.\n", f.userName, f.balance)
		return mainMenu, nil

	case loginPage:
		fields, err := t.prompts("Enter user name: ", "Enter an account password: ")
		if err != nil {
			return s, err
		}
		t.form = form{userName: strings.TrimSpace(fields[0]), password: strings.TrimSpace(fields[1])}
		if t.form.userName == "" {
			return mainMenu, nil
		}
		return loginSubmit, nil

	case loginSubmit:
		acct, err := t.ledger.RetrieveAccount(t.form.userName, t.form.password)
		if err != nil {
			t.printf("Failed to fetch the account: %v\n", err)
			return loginPage, nil
		}
		t.session = acct
		t.printf("Account '%s' retrieved.\n", acct.UserName())
		return userMenu, nil

	case userMenu:
		cmd, err := t.prompt("Available commands:\n" +
			"- balance: Check your current balance\n" +
			"- transfer: transfer funds to another account\n" +
			"- main: go to the main menu\n" +
			"Enter command: ")
		if err != nil {
			return s, err
		}
		switch strings.TrimSpace(cmd) {
		case "balance":
			return checkBalance, nil
		case "transfer":
			return transferPage, nil
		case "main":
			t.session = nil
			return mainMenu, nil
		}
		t.println("Invalid command. Please try again.")
		return userMenu, nil

	case checkBalance:
		t.printf("Current Balance: $%d\n", t.session.Balance())
		return userMenu, nil

	case transferPage:
		fields, err := t.prompts("Enter the recipient's account user name: ", "Enter the amount to transfer: ")
		if err != nil {
			return s, err
		}
		t.form = form{recipient: strings.TrimSpace(fields[0]), amount: strings.TrimSpace(fields[1])}
		if t.form.recipient == "" {
			return userMenu, nil
		}
		return transferSubmit, nil

	case transferSubmit:
		f := t.form
		if err := t.ledger.TransferFunds(t.session, f.recipient, f.amount); err != nil {
			t.printf("Failed to transfer funds: %v\n", err)
			return transferPage, nil
		}
		t.printf("Transferred %s from '%s' to '%s'.\n", f.amount, t.session.UserName(), f.recipient)
		return userMenu, nil
	}
	return exitSystem, nil
}

func (t *Terminal) prompt(text string) (string, error) {
	fmt.Fprint(t.out, text)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return t.in.Text(), nil
}

func (t *Terminal) prompts(texts ...string) ([]string, error) {
	out := make([]string, 0, len(texts))
	for _, text := range texts {
		line, err := t.prompt(text)
		if err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, nil
}

func (t *Terminal) println(s string) { fmt.Fprintln(t.out, s) }

func (t *Terminal) printf(format string, args ...any) { fmt.Fprintf(t.out, format, args...) }
