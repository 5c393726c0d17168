package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinops/internal/bank"
)

// run 以逐行腳本驅動終端機，回傳全部輸出。
func run(t *testing.T, l *bank.Ledger, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	term := New(l, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, nil)
	require.NoError(t, term.Run(context.Background()))
	return out.String()
}

func TestCreateLoginTransferFlow(t *testing.T) {
	l := bank.NewLedger()
	require.NoError(t, l.CreateAccount("bob", "pw2", 50))

	out := run(t, l,
		"create", " alice ", " pw1 ", "100",
		"login", "alice", "pw1",
		"balance",
		"transfer", "bob", "30",
		"balance",
		"main",
		"exit",
	)

	assert.True(t, strings.HasPrefix(out, banner+"\n"+separator+"\n"))
	assert.Contains(t, out, "Account 'alice' created successfully with initial balance 100.")
	assert.Contains(t, out, "Account 'alice' retrieved.")
	assert.Contains(t, out, "Current Balance: $100")
	assert.Contains(t, out, "Transferred 30 from 'alice' to 'bob'.")
	assert.Contains(t, out, "Current Balance: $70")
	assert.True(t, strings.HasSuffix(out, goodbye+"\n"))

	bob, _ := l.Account("bob")
	assert.EqualValues(t, 80, bob.Balance())
}

func TestCreateFailureReturnsToMainMenu(t *testing.T) {
	l := bank.NewLedger()
	out := run(t, l,
		"create", "carol", "pw", "lots",
		"create", "", "pw", "5",
		"exit",
	)
	assert.Contains(t, out, "Failed to create account: Starting balance must be an integer.")
	assert.Contains(t, out, "Failed to create account: Invalid new account information. Must provide a user name and password.")
	assert.Equal(t, 0, l.Len())
}

func TestLoginFailureReturnsToLoginPage(t *testing.T) {
	l := bank.NewLedger()
	require.NoError(t, l.CreateAccount("alice", "pw1", 10))

	out := run(t, l,
		"login", "alice", "wrong",
		"ghost", "pw",
		"alice", "pw1",
		"main",
		"exit",
	)
	assert.Contains(t, out, "Failed to fetch the account: The provided password is incorrect for the account.")
	assert.Contains(t, out, "Failed to fetch the account: Account with the provided username does not exist.")
	assert.Contains(t, out, "Account 'alice' retrieved.")
}

func TestTransferFailureReturnsToTransferPage(t *testing.T) {
	l := bank.NewLedger()
	require.NoError(t, l.CreateAccount("alice", "pw1", 10))
	require.NoError(t, l.CreateAccount("eve", "pw3", 0))

	out := run(t, l,
		"login", "alice", "pw1",
		"transfer", "eve", "20",
		"bob", "5",
		"eve", "-3",
		"", "",
		"balance",
		"exit",
	)
	assert.Contains(t, out, "Failed to transfer funds: Transfer Error: Insufficient funds to complete the transaction.")
	assert.Contains(t, out, "Failed to transfer funds: Invalid user accounts for transfer.")
	assert.Contains(t, out, "Failed to transfer funds: Invalid transfer amount.")
	assert.Contains(t, out, "Current Balance: $10")
	// exit 在使用者選單中不是合法指令
	assert.Contains(t, out, "Invalid command. Please try again.")

	eve, _ := l.Account("eve")
	assert.EqualValues(t, 0, eve.Balance())
}

func TestInvalidCommand(t *testing.T) {
	out := run(t, bank.NewLedger(), "withdraw", "exit")
	assert.Contains(t, out, "Invalid command. Please try again.")
	assert.Equal(t, 2, strings.Count(out, separator))
}

func TestEmptyLoginReturnsToMainMenu(t *testing.T) {
	out := run(t, bank.NewLedger(), "login", "", "", "exit")
	assert.NotContains(t, out, "Failed to fetch the account")
	assert.True(t, strings.HasSuffix(out, goodbye+"\n"))
}

func TestEndOfInputStopsWithoutError(t *testing.T) {
	var out bytes.Buffer
	term := New(bank.NewLedger(), strings.NewReader("create\nalice\n"), &out, nil)
	require.NoError(t, term.Run(context.Background()))
	assert.NotContains(t, out.String(), goodbye)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	term := New(bank.NewLedger(), strings.NewReader("exit\n"), &out, nil)
	assert.ErrorIs(t, term.Run(ctx), context.Canceled)
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "main_menu", mainMenu.String())
	assert.Equal(t, "exit", exitSystem.String())
}
