package legalease

import (
	"errors"
	"io"
)

// DocumentStatus is the analysis state reported after an upload.
type DocumentStatus string

const (
	StatusAnalyzing DocumentStatus = "analyzing"
	StatusReady     DocumentStatus = "ready"
)

// File is a document submitted for analysis.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// UploadResult acknowledges an upload. DocumentID correlates later chat calls.
type UploadResult struct {
	DocumentID        string         `json:"document_id"`
	Status            DocumentStatus `json:"status"`
	InitialBotMessage string         `json:"initial_bot_message"`
}

func (r UploadResult) check() error {
	if r.DocumentID == "" {
		return errors.New("missing document_id")
	}
	if r.Status != StatusAnalyzing && r.Status != StatusReady {
		return errors.New("unknown status " + string(r.Status))
	}
	return nil
}

// AgreementResult references a generated artifact.
type AgreementResult struct {
	PDFURL string `json:"pdf_url"`
}

func (r AgreementResult) check() error {
	if r.PDFURL == "" {
		return errors.New("missing pdf_url")
	}
	return nil
}

// Artifact describes a downloaded agreement saved to an object store.
type Artifact struct {
	URL         string
	FileName    string
	StorageKey  string
	ContentType string
	SizeBytes   int64
}

type uploadRequest struct {
	FileContent string `json:"file_content"`
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
}

type documentChatRequest struct {
	DocumentID string `json:"document_id"`
	Message    string `json:"message"`
}

type generalChatRequest struct {
	Message string `json:"message"`
}

type generateRequest struct {
	AgreementType string            `json:"agreement_type"`
	FormData      map[string]string `json:"form_data"`
}

type chatResponse struct {
	BotResponse *string `json:"bot_response"`
}

func (r chatResponse) check() error {
	if r.BotResponse == nil {
		return errors.New("missing bot_response")
	}
	return nil
}
