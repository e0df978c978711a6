package chat_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"investpro/chat"
	"investpro/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultScript(t *testing.T) chat.Script {
	t.Helper()
	script, err := loader.DefaultChatScript()
	require.NoError(t, err)
	return script
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestMatchReply_ScriptedAnswers(t *testing.T) {
	script := defaultScript(t)
	assistant, err := chat.NewAssistant(script)
	require.NoError(t, err)

	cases := []struct {
		message string
		prefix  string
	}{
		{"Tesla", "Tesla (TSLA)"},
		{"what about TSLA?", "Tesla (TSLA)"},
		{"tElSa", ""},
		{"apple", "Apple (AAPL)"},
		{"Is AAPL a buy", "Apple (AAPL)"},
		{"NVIDIA earnings", "NVIDIA (NVDA)"},
		{"is it safe?", "For low-risk investments"},
		{"tech stocks", "The technology sector"},
		{"how do I diversify", "A well-diversified portfolio"},
		{"I'm a beginner", "Welcome to investing!"},
		// The investment rule is first, so it wins even when it appears later in the text.
		{"apple or tesla investment", "For investment advice"},
		{"tesla and apple", "Apple (AAPL)"},
	}

	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			linear := chat.MatchReply(tc.message, script.Rules, script.Fallbacks, newRand())
			compiled := assistant.Reply(tc.message, newRand())
			assert.Equal(t, linear, compiled)

			if tc.prefix == "" {
				assert.Contains(t, script.Fallbacks, linear)
				return
			}
			assert.True(t, strings.HasPrefix(linear, tc.prefix), "got %q", linear)
		})
	}
}

func TestMatchReply_FallbackIsUniformChoice(t *testing.T) {
	script := defaultScript(t)
	assistant, err := chat.NewAssistant(script)
	require.NoError(t, err)

	rng := newRand()
	seen := make(map[string]int)
	for i := 0; i < 400; i++ {
		reply := assistant.Reply("hello there", rng)
		require.Contains(t, script.Fallbacks, reply)
		seen[reply]++
	}
	assert.Len(t, seen, len(script.Fallbacks))
}

func TestAssistant_AgreesWithLinearScan(t *testing.T) {
	script := defaultScript(t)
	assistant, err := chat.NewAssistant(script)
	require.NoError(t, err)

	words := []string{"apple", "TSLA", "risk", "market", "news", "portfolio", "hello", "nvda", "Investing", "tech", "zzz"}
	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 200; i++ {
		parts := make([]string, 1+rng.IntN(4))
		for j := range parts {
			parts[j] = words[rng.IntN(len(words))]
		}
		message := strings.Join(parts, " ")

		seed := uint64(i)
		want := chat.MatchReply(message, script.Rules, script.Fallbacks, rand.New(rand.NewPCG(seed, seed)))
		got := assistant.Reply(message, rand.New(rand.NewPCG(seed, seed)))
		assert.Equal(t, want, got, "message %q", message)
	}
}

func TestNewAssistant_DuplicateKeywordsKeepFirstRule(t *testing.T) {
	assistant, err := chat.NewAssistant(chat.Script{
		Greeting: "hi",
		Rules: []chat.Rule{
			{Keywords: []string{"Stock", "share"}, Reply: "first"},
			{Keywords: []string{"stock", "bond"}, Reply: "second"},
		},
		Fallbacks: []string{"fallback"},
	})
	require.NoError(t, err)

	assert.Equal(t, "first", assistant.Reply("STOCK tips", newRand()))
	assert.Equal(t, "second", assistant.Reply("bond yields", newRand()))
	assert.Equal(t, "fallback", assistant.Reply("crypto", newRand()))
}

func TestNewAssistant_NoRules(t *testing.T) {
	assistant, err := chat.NewAssistant(chat.Script{Greeting: "hi", Fallbacks: []string{"only"}})
	require.NoError(t, err)
	assert.Equal(t, "only", assistant.Reply("apple", newRand()))
}

func TestScriptValidate(t *testing.T) {
	valid := chat.Script{
		Greeting:  "hi",
		Rules:     []chat.Rule{{Keywords: []string{"a"}, Reply: "b"}},
		Fallbacks: []string{"c"},
	}
	require.NoError(t, valid.Validate())

	noFallbacks := valid
	noFallbacks.Fallbacks = nil
	assert.Error(t, noFallbacks.Validate())

	noKeywords := valid
	noKeywords.Rules = []chat.Rule{{Reply: "b"}}
	assert.Error(t, noKeywords.Validate())

	emptyReply := valid
	emptyReply.Rules = []chat.Rule{{Keywords: []string{"a"}}}
	assert.Error(t, emptyReply.Validate())
}
