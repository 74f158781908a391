package dto

type ProcessDocumentRequest struct {
	Content    string `json:"content" validate:"required"`
	Title      string `json:"title"`
	SessionID  string `json:"session_id" validate:"required"`
	DocumentID string `json:"document_id"`
}

type ProcessDocumentResponse struct {
	DocumentID string `json:"document_id"`
	Queued     bool   `json:"queued"`
}

// IngestDocumentMessage is the payload published to the ingestion topic.
type IngestDocumentMessage struct {
	DocumentID string `json:"document_id"`
	SessionID  string `json:"session_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}
