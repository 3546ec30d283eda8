package mockbackend

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

const (
	disclaimer = "This is general information, not legal advice."

	fallbackDocumentReply = "I understand your question about the document. Based on my analysis, I can help you with legal document interpretation. Could you please rephrase your question?"
	fallbackGeneralReply  = "I'm here to help with legal questions. Could you please provide more details about what you'd like to know?"
)

var stopWords = map[string]struct{}{
	"what": {}, "does": {}, "this": {}, "that": {}, "with": {}, "about": {}, "from": {},
	"have": {}, "there": {}, "which": {}, "when": {}, "where": {}, "will": {}, "would": {},
	"should": {}, "could": {}, "their": {}, "they": {}, "into": {}, "your": {}, "mean": {},
	"tell": {}, "explain": {}, "document": {}, "agreement": {}, "contract": {},
}

var documentKinds = []struct {
	label    string
	keywords []string
}{
	{label: "a rental or lease agreement", keywords: []string{"tenant", "landlord", "lease", "rent"}},
	{label: "an employment agreement", keywords: []string{"employee", "employer", "salary", "probation"}},
	{label: "a non-disclosure agreement", keywords: []string{"confidential", "disclos", "non-disclosure"}},
	{label: "a service agreement", keywords: []string{"service provider", "services", "client"}},
}

var generalTopics = []struct {
	keywords []string
	answer   string
}{
	{
		keywords: []string{"lease", "rent", "tenant", "landlord"},
		answer:   "A lease is a contract in which a landlord grants a tenant the right to occupy property for a set term in exchange for rent. Key terms to check are the rent amount and due date, the security deposit, the length of the term, and how either side may terminate early.",
	},
	{
		keywords: []string{"nda", "non-disclosure", "confidential"},
		answer:   "A non-disclosure agreement obliges the receiving party to keep the disclosing party's confidential information secret. Look at how confidential information is defined, how long the obligation lasts, and what happens to materials when the relationship ends.",
	},
	{
		keywords: []string{"employment", "employee", "employer", "salary", "probation", "non-compete"},
		answer:   "An employment agreement sets out the role, compensation, start date and termination terms between an employer and an employee. Probation periods, confidentiality and non-compete clauses deserve particular attention.",
	},
	{
		keywords: []string{"service", "contractor", "freelance", "invoice"},
		answer:   "A service agreement defines the work a provider delivers, the fee and payment terms, and who owns the results. Clear deliverables and termination notice periods help avoid disputes.",
	},
	{
		keywords: []string{"contract", "clause", "breach", "terminate", "termination"},
		answer:   "A contract is an agreement the law will enforce. It generally needs an offer, acceptance, consideration and parties with capacity. A breach happens when a party fails to perform a term, and the remedy usually depends on how serious the failure is.",
	},
}

// initialMessage introduces an uploaded document.
func initialMessage(doc document) string {
	text := strings.TrimSpace(doc.Text)
	if text == "" {
		return fmt.Sprintf("I've received your document %q. This appears to be a legal document. What would you like to know about it? I can help explain clauses, identify potential issues, or answer specific questions.", doc.FileName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I've analyzed your document %q (%d words).", doc.FileName, len(strings.Fields(text)))
	if kind := classify(text); kind != "" {
		fmt.Fprintf(&b, " It appears to be %s.", kind)
	}
	if headings := clauseHeadings(text, 3); len(headings) > 0 {
		fmt.Fprintf(&b, " Key sections include: %s.", strings.Join(headings, "; "))
	}
	b.WriteString(" What would you like to know about it?")
	return b.String()
}

func classify(text string) string {
	lower := strings.ToLower(text)
	for _, k := range documentKinds {
		for _, kw := range k.keywords {
			if strings.Contains(lower, kw) {
				return k.label
			}
		}
	}
	return ""
}

// clauseHeadings picks lines that look like section titles: numbered or all caps.
func clauseHeadings(text string, limit int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 60 {
			continue
		}
		numbered := unicode.IsDigit(rune(line[0])) && strings.Contains(line, ".")
		caps := strings.ToUpper(line) == line && strings.IndexFunc(line, unicode.IsLetter) >= 0
		if numbered || caps {
			out = append(out, line)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// answerFromDocument quotes the sentences that best match the question. When
// nothing matches, the previous question is used to resolve follow-ups.
func answerFromDocument(doc document, history []exchange, question string) string {
	sentences := splitSentences(doc.Text)
	best := rankSentences(sentences, keywords(question), 2)
	if len(best) == 0 && len(history) > 0 {
		best = rankSentences(sentences, keywords(history[len(history)-1].User), 2)
	}
	if len(best) == 0 {
		return fallbackDocumentReply
	}
	return fmt.Sprintf("Based on %q: %s", doc.FileName, strings.Join(best, " "))
}

func generalAnswer(question string) string {
	lower := strings.ToLower(question)
	for _, topic := range generalTopics {
		for _, kw := range topic.keywords {
			if strings.Contains(lower, kw) {
				return topic.answer + " " + disclaimer
			}
		}
	}
	return fallbackGeneralReply
}

func keywords(text string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len(w) < 4 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func splitSentences(text string) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		start := 0
		for i, r := range para {
			if r == '.' || r == '?' || r == '!' {
				if s := strings.TrimSpace(para[start : i+1]); s != "" {
					out = append(out, s)
				}
				start = i + 1
			}
		}
		if s := strings.TrimSpace(para[start:]); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// rankSentences returns up to limit sentences with the most keyword hits, in
// document order.
func rankSentences(sentences, words []string, limit int) []string {
	if len(words) == 0 {
		return nil
	}
	type scored struct {
		idx   int
		score int
	}
	var hits []scored
	for i, s := range sentences {
		lower := strings.ToLower(s)
		score := 0
		for _, w := range words {
			if strings.Contains(lower, w) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{idx: i, score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].idx < hits[j].idx })

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, sentences[h.idx])
	}
	return out
}
