package service

import (
	"context"
	"encoding/json"

	"edu-assist-be/internal/dto"
	"edu-assist-be/internal/pkg/logger"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Process(ctx context.Context, req *dto.ProcessDocumentRequest) (*dto.ProcessDocumentResponse, error)
}

// documentService hands raw documents to the async ingestion pipeline.
// Chunking and embedding happen in the consumer, off the request path.
type documentService struct {
	publisherService IPublisherService
	sysLogger        logger.ILogger
}

func NewDocumentService(publisherService IPublisherService, sysLogger logger.ILogger) IDocumentService {
	return &documentService{
		publisherService: publisherService,
		sysLogger:        sysLogger,
	}
}

func (s *documentService) Process(ctx context.Context, req *dto.ProcessDocumentRequest) (*dto.ProcessDocumentResponse, error) {
	documentID := req.DocumentID
	if documentID == "" {
		documentID = uuid.New().String()
	}

	msgPayload := dto.IngestDocumentMessage{
		DocumentID: documentID,
		SessionID:  req.SessionID,
		Title:      req.Title,
		Content:    req.Content,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}

	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	s.sysLogger.Info("document", "Document queued for ingestion", map[string]interface{}{
		"document_id": documentID,
		"session_id":  req.SessionID,
		"bytes":       len(req.Content),
	})

	return &dto.ProcessDocumentResponse{
		DocumentID: documentID,
		Queued:     true,
	}, nil
}
