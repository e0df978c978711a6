// Package chat implements the investment assistant: a scripted keyword responder and the
// per-visitor chat session that replays its answers after a short typing delay.
package chat

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/go-playground/validator/v10"
)

// Rule maps any of its keywords to a canned reply.
type Rule struct {
	Keywords []string `yaml:"keywords" validate:"required,min=1,dive,required"`
	Reply    string   `yaml:"reply" validate:"required"`
}

// Script is the static configuration of the assistant. Rules are ordered: when a message
// contains keywords of several rules, the earliest rule wins.
type Script struct {
	Greeting       string   `yaml:"greeting" validate:"required"`
	Rules          []Rule   `yaml:"rules" validate:"dive"`
	Fallbacks      []string `yaml:"fallbacks" validate:"required,min=1,dive,required"`
	QuickQuestions []string `yaml:"quick_questions"`
}

var validate = validator.New()

func (s Script) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid chat script: %w", err)
	}
	return nil
}

// Rand is the subset of *math/rand/v2.Rand the assistant needs.
type Rand interface {
	IntN(n int) int
	Int64N(n int64) int64
}

// MatchReply scans rules in order and returns the reply of the first rule with a keyword
// contained in message, ignoring case. Without a match it picks one of fallbacks.
func MatchReply(message string, rules []Rule, fallbacks []string, rng Rand) string {
	lowered := lower(message)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			keyword = lower(strings.TrimSpace(keyword))
			if keyword != "" && strings.Contains(lowered, keyword) {
				return rule.Reply
			}
		}
	}
	return pickFallback(fallbacks, rng)
}

// Assistant answers like MatchReply but scans each message once with an Aho-Corasick
// automaton built over every keyword. It is immutable and safe for concurrent use.
type Assistant struct {
	matcher   *goahocorasick.Machine
	ruleOf    map[string]int // keyword -> index of the first rule that lists it
	rules     []Rule
	fallbacks []string
	greeting  string
	questions []string
}

func NewAssistant(script Script) (*Assistant, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}

	a := &Assistant{
		ruleOf:    make(map[string]int),
		rules:     script.Rules,
		fallbacks: script.Fallbacks,
		greeting:  script.Greeting,
		questions: script.QuickQuestions,
	}
	for i, rule := range script.Rules {
		for _, keyword := range rule.Keywords {
			keyword = lower(strings.TrimSpace(keyword))
			if keyword == "" {
				continue
			}
			if _, seen := a.ruleOf[keyword]; !seen {
				a.ruleOf[keyword] = i
			}
		}
	}
	if len(a.ruleOf) == 0 {
		return a, nil
	}

	// The double-array trie underneath wants unique keys in order.
	keywords := make([]string, 0, len(a.ruleOf))
	for keyword := range a.ruleOf {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)
	patterns := make([][]rune, len(keywords))
	for i, keyword := range keywords {
		patterns[i] = []rune(keyword)
	}

	a.matcher = new(goahocorasick.Machine)
	if err := a.matcher.Build(patterns); err != nil {
		return nil, fmt.Errorf("failed to build keyword automaton: %w", err)
	}
	return a, nil
}

func (a *Assistant) Reply(message string, rng Rand) string {
	if a.matcher == nil {
		return pickFallback(a.fallbacks, rng)
	}

	best := -1
	for _, term := range a.matcher.MultiPatternSearch([]rune(lower(message)), false) {
		i, ok := a.ruleOf[string(term.Word)]
		if ok && (best < 0 || i < best) {
			best = i
		}
	}
	if best < 0 {
		return pickFallback(a.fallbacks, rng)
	}
	return a.rules[best].Reply
}

func (a *Assistant) Greeting() string {
	return a.greeting
}

func (a *Assistant) QuickQuestions() []string {
	return append([]string(nil), a.questions...)
}

func pickFallback(fallbacks []string, rng Rand) string {
	if len(fallbacks) == 0 {
		return ""
	}
	return fallbacks[rng.IntN(len(fallbacks))]
}

// lower maps rune by rune so rune offsets stay aligned with the input.
func lower(s string) string {
	return strings.Map(unicode.ToLower, s)
}
