package mockbackend

import (
	"strings"
	"testing"

	"legalease-client/internal/agreements"
)

func TestClauseHeadings(t *testing.T) {
	got := clauseHeadings(leaseText, 3)
	want := []string{"RESIDENTIAL LEASE", "1. RENT", "2. DEPOSIT"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("clauseHeadings = %v, want %v", got, want)
	}
}

func TestAnswerFromDocumentFallsBack(t *testing.T) {
	doc := document{FileName: "lease.txt", Text: leaseText}
	if got := answerFromDocument(doc, nil, "Who is the arbitrator?"); got != fallbackDocumentReply {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := answerFromDocument(document{FileName: "scan.png"}, nil, "What about pets?"); got != fallbackDocumentReply {
		t.Fatalf("expected fallback for a document without text, got %q", got)
	}
}

func TestGeneralAnswerFallback(t *testing.T) {
	if got := generalAnswer("hello there"); got != fallbackGeneralReply {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := generalAnswer("Can my landlord keep my deposit?"); !strings.HasSuffix(got, disclaimer) {
		t.Fatalf("expected disclaimer, got %q", got)
	}
}

func TestDocumentStoreKeepsLastExchanges(t *testing.T) {
	s := newDocumentStore()
	s.add(document{ID: "d"})
	for i := 0; i < historyLimit+3; i++ {
		s.remember("d", exchange{User: string(rune('a' + i))})
	}
	got := s.recent("d")
	if len(got) != historyLimit {
		t.Fatalf("expected %d exchanges, got %d", historyLimit, len(got))
	}
	if got[0].User != "d" || got[len(got)-1].User != "h" {
		t.Fatalf("unexpected window %v", got)
	}
}

func TestRenderAgreementEveryKind(t *testing.T) {
	for _, kind := range agreements.Kinds {
		data := map[string]string{}
		for _, f := range agreements.Required(kind) {
			data[f] = "VALUE_" + f
		}
		text, err := renderAgreement(kind, data)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		for _, f := range agreements.Required(kind) {
			if !strings.Contains(text, "VALUE_"+f) {
				t.Fatalf("%s: rendered text missing %s", kind, f)
			}
		}
		if strings.Contains(text, "<no value>") {
			t.Fatalf("%s: unfilled placeholder in output", kind)
		}
	}

	text, err := renderAgreement(agreements.KindRental, map[string]string{"tenant_name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(text, "[Security Deposit Amount]") || !strings.Contains(text, notSpecified) {
		t.Fatalf("expected defaults and placeholders:\n%s", text)
	}
	if _, err := renderAgreement("lease", nil); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
