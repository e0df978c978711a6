package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"investpro/chat"
	"investpro/loader"

	"github.com/gookit/color"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.Disable()
	m.Run()
}

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("CHAT_MIN_DELAY", "0s")
	t.Setenv("CHAT_MAX_DELAY", "5ms")
	t.Setenv("LOG_LEVEL", "error")

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMoney(t *testing.T) {
	cases := map[string]string{
		"2500":     "$2,500",
		"189.25":   "$189.25",
		"875.2":    "$875.20",
		"1234567":  "$1,234,567",
		"-1500.5":  "-$1,500.50",
		"0":        "$0",
		"999":      "$999",
		"100000.1": "$100,000.10",
		"999.999":  "$1,000",
		"0.5":      "$0.50",
	}
	for input, want := range cases {
		assert.Equal(t, want, money(decimal.RequireFromString(input)), "input %s", input)
	}
}

func TestSigned(t *testing.T) {
	assert.Equal(t, "+2.45", signed(decimal.RequireFromString("2.45")))
	assert.Equal(t, "-8.75", signed(decimal.RequireFromString("-8.75")))
	assert.Equal(t, "+0.00", signed(decimal.Zero))
}

func TestStocksCommand(t *testing.T) {
	out, err := runCommand(t, "", "stocks", "--sector", "Technology", "--sort", "price")
	require.NoError(t, err)

	nvda := strings.Index(out, "NVDA")
	msft := strings.Index(out, "MSFT")
	aapl := strings.Index(out, "AAPL")
	googl := strings.Index(out, "GOOGL")
	require.True(t, nvda >= 0 && msft >= 0 && aapl >= 0 && googl >= 0, out)
	assert.True(t, nvda < msft && msft < aapl && aapl < googl, out)
	assert.NotContains(t, out, "TSLA")
	assert.Contains(t, out, "$3,500")
}

func TestStocksCommand_BleveEngine(t *testing.T) {
	out, err := runCommand(t, "", "stocks", "--engine", "bleve", "-q", "inc")
	require.NoError(t, err)
	for _, symbol := range []string{"AAPL", "GOOGL", "TSLA", "AMZN", "V", "WMT"} {
		assert.Contains(t, out, symbol)
	}
	assert.NotContains(t, out, "NVDA")
}

func TestStocksCommand_NoMatch(t *testing.T) {
	out, err := runCommand(t, "", "stocks", "-q", "nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "No stocks match.")
	assert.Contains(t, out, "Sectors: All, Technology")
}

func TestStocksCommand_BadSort(t *testing.T) {
	_, err := runCommand(t, "", "stocks", "--sort", "rating")
	assert.Error(t, err)
}

func TestShowCommand(t *testing.T) {
	out, err := runCommand(t, "", "show", "tsla")
	require.NoError(t, err)
	assert.Contains(t, out, "TSLA  Tesla, Inc.")
	assert.Contains(t, out, "Hold")
	assert.Contains(t, out, "3.1/5")
	assert.Contains(t, out, "$789B")

	_, err = runCommand(t, "", "show", "IBM")
	assert.Error(t, err)
}

func TestMarketCommand(t *testing.T) {
	out, err := runCommand(t, "", "market")
	require.NoError(t, err)
	assert.Contains(t, out, "S&P 500")
	assert.Contains(t, out, "24/7")
	assert.Contains(t, out, "cautious optimism")
}

func TestChatCommand(t *testing.T) {
	out, err := runCommand(t, "\n   \nTell me about apple\n/quit\nnever read\n", "chat")
	require.NoError(t, err)

	assert.Contains(t, out, "Hello! I'm your AI investment assistant.")
	assert.Contains(t, out, "What stocks should I buy?")
	assert.Contains(t, out, "Apple (AAPL) is currently showing positive momentum")
	assert.Equal(t, 1, strings.Count(out, "Assistant is typing..."))
}

func TestConverse_EndsOnEOF(t *testing.T) {
	script, err := loader.DefaultChatScript()
	require.NoError(t, err)
	assistant, err := chat.NewAssistant(script)
	require.NoError(t, err)
	a := &app{assistant: assistant, log: zerolog.Nop()}

	session := a.newChatSession()
	defer session.Close()

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("tesla"))

	require.NoError(t, converse(cmd, session))
	assert.Contains(t, out.String(), "Tesla (TSLA)")
	assert.Len(t, session.Transcript(), 3)
}
