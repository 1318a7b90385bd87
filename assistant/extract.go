// ABOUTME: Regex-based entity extraction over free-text chat messages
// ABOUTME: Patterns are compiled from a Vocabulary so word lists stay data, not code
package assistant

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Topic is one of the keyword groups a message may mention.
type Topic string

const (
	TopicClient      Topic = "client"
	TopicPolicy      Topic = "policy"
	TopicTask        Topic = "task"
	TopicOpportunity Topic = "opportunity"
)

// Topics lists every topic in a stable order.
var Topics = []Topic{TopicClient, TopicPolicy, TopicTask, TopicOpportunity}

// Vocabulary holds the word lists the extractor patterns are built from.
type Vocabulary struct {
	// NameTriggers precede a capitalised client name ("find", "about", ...).
	NameTriggers []string
	// PolicyTypes are the line-of-business words ("home", "commercial property", ...).
	PolicyTypes []string
	// PolicyNouns must follow a policy type ("insurance", "policy", ...).
	PolicyNouns []string
	// DateTriggers precede a date phrase ("in", "by", ...).
	DateTriggers []string
	// RelativeDates are the literal relative phrases ("today", "next week", ...).
	RelativeDates []string
	// TopicKeywords maps each topic to the words that flag it.
	TopicKeywords map[Topic][]string
}

// DefaultVocabulary returns the vocabulary used by the chat assistant.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		NameTriggers: []string{"find", "about", "for", "from", "to", "with", "client", "customer", "insured"},
		PolicyTypes: []string{
			"home", "auto", "car", "life", "health", "business", "renters", "umbrella",
			"commercial property", "professional liability", "cyber",
		},
		PolicyNouns:   []string{"insurance", "policy", "policies", "coverage"},
		DateTriggers:  []string{"in", "by", "before", "after", "on", "since", "within"},
		RelativeDates: []string{"today", "tomorrow", "yesterday", "next week", "next month", "this week", "this month", "last week", "last month"},
		TopicKeywords: map[Topic][]string{
			TopicClient:      {"client", "clients", "customer", "customers", "insured", "policyholder"},
			TopicPolicy:      {"policy", "policies", "coverage", "insurance", "premium", "premiums", "renewal", "renewals"},
			TopicTask:        {"task", "tasks", "todo", "to-do", "due", "overdue", "follow up", "follow-up", "reminder", "reminders"},
			TopicOpportunity: {"opportunity", "opportunities", "cross-sell", "cross sell", "upsell", "lead", "leads", "pipeline"},
		},
	}
}

// policyTypeAliases maps extracted words that are not policy type constants.
var policyTypeAliases = map[string]string{
	"car": "auto",
}

const (
	weekdays     = `monday|tuesday|wednesday|thursday|friday|saturday|sunday`
	months       = `january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec`
	absoluteDate = `\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{2,4}|(?:` + months + `)\.?\s+\d{1,2}(?:st|nd|rd|th)?`
	countedSpan  = `(?:the\s+next\s+)?\d+\s+(?:days?|weeks?|months?)`
)

// Entities is the structured result of scanning one message.
type Entities struct {
	ClientNames []string
	PolicyTypes []string
	DatePhrases []string
	Topics      map[Topic]bool
}

// Found reports whether any candidate or topic flag was extracted.
func (e Entities) Found() bool {
	if len(e.ClientNames) > 0 || len(e.PolicyTypes) > 0 || len(e.DatePhrases) > 0 {
		return true
	}
	for _, on := range e.Topics {
		if on {
			return true
		}
	}
	return false
}

// Has reports whether the topic flag is set.
func (e Entities) Has(t Topic) bool {
	return e.Topics[t]
}

// Extractor applies compiled vocabulary patterns to messages.
type Extractor struct {
	vocab   Vocabulary
	trigger *regexp.Regexp
	policy  *regexp.Regexp
	date    *regexp.Regexp
	topics  map[Topic]*regexp.Regexp
}

// capitalWord is one capitalised word directly after whitespace.
var capitalWord = regexp.MustCompile(`^\s+([A-Z][a-z]+)`)

// NewExtractor compiles the vocabulary. Errors only on an empty word list.
func NewExtractor(v Vocabulary) (*Extractor, error) {
	if len(v.NameTriggers) == 0 || len(v.PolicyTypes) == 0 || len(v.PolicyNouns) == 0 || len(v.DateTriggers) == 0 {
		return nil, fmt.Errorf("vocabulary is missing required word lists")
	}

	e := &Extractor{vocab: v, topics: make(map[Topic]*regexp.Regexp)}

	// Trigger is case-insensitive; the name after it must be capitalised.
	e.trigger = regexp.MustCompile(`\b(?i:` + alternation(v.NameTriggers) + `)\b`)

	e.policy = regexp.MustCompile(`(?i)\b(` + alternation(v.PolicyTypes) + `)\s+(?:` + alternation(v.PolicyNouns) + `)\b`)

	relative := []string{weekdays, absoluteDate, countedSpan}
	if len(v.RelativeDates) > 0 {
		relative = append([]string{alternation(v.RelativeDates)}, relative...)
	}
	e.date = regexp.MustCompile(`(?i)\b(?:` + alternation(v.DateTriggers) + `)\s+((?:` + strings.Join(relative, "|") + `))\b`)

	for topic, words := range v.TopicKeywords {
		if len(words) == 0 {
			continue
		}
		e.topics[topic] = regexp.MustCompile(`(?i)\b(?:` + alternation(words) + `)\b`)
	}

	return e, nil
}

var defaultExtractor = mustExtractor(DefaultVocabulary())

func mustExtractor(v Vocabulary) *Extractor {
	e, err := NewExtractor(v)
	if err != nil {
		panic(err)
	}
	return e
}

// Extract scans msg with the default vocabulary.
func Extract(msg string) Entities {
	return defaultExtractor.Extract(msg)
}

// Extract scans msg. It never fails; no matches yields empty collections.
func (e *Extractor) Extract(msg string) Entities {
	ent := Entities{Topics: make(map[Topic]bool, len(e.topics))}

	ent.ClientNames = e.names(msg)

	for _, m := range e.policy.FindAllStringSubmatch(msg, -1) {
		pt := strings.Join(strings.Fields(strings.ToLower(m[1])), "_")
		if alias, ok := policyTypeAliases[pt]; ok {
			pt = alias
		}
		ent.PolicyTypes = append(ent.PolicyTypes, pt)
	}

	for _, m := range e.date.FindAllStringSubmatch(msg, -1) {
		ent.DatePhrases = append(ent.DatePhrases, m[1])
	}

	for topic, re := range e.topics {
		ent.Topics[topic] = re.MatchString(msg)
	}

	return ent
}

// names returns the one- or two-word capitalised name after each trigger.
// Capitalised trigger words ("Client", "About") are skipped, so "about
// Client Jamal Haija" yields "Jamal Haija". Duplicates are dropped.
func (e *Extractor) names(msg string) []string {
	var out []string
	for _, loc := range e.trigger.FindAllStringIndex(msg, -1) {
		rest := msg[loc[1]:]
		var words []string
		for len(words) < 2 {
			m := capitalWord.FindStringSubmatchIndex(rest)
			if m == nil {
				break
			}
			word := rest[m[2]:m[3]]
			rest = rest[m[1]:]
			if e.isTrigger(word) {
				if len(words) == 0 {
					continue
				}
				break
			}
			words = append(words, word)
		}
		if len(words) == 0 {
			continue
		}
		name := strings.Join(words, " ")
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

func (e *Extractor) isTrigger(word string) bool {
	for _, t := range e.vocab.NameTriggers {
		if strings.EqualFold(t, word) {
			return true
		}
	}
	return false
}

// alternation joins words into a regex alternation, longest first so
// "commercial property" wins over a shorter prefix. Spaces match any whitespace.
func alternation(words []string) string {
	sorted := append([]string(nil), words...)
	slices.SortStableFunc(sorted, func(a, b string) int { return len(b) - len(a) })

	parts := make([]string, 0, len(sorted))
	for _, w := range sorted {
		fields := strings.Fields(w)
		for i, f := range fields {
			fields[i] = regexp.QuoteMeta(f)
		}
		parts = append(parts, strings.Join(fields, `\s+`))
	}
	return strings.Join(parts, "|")
}
