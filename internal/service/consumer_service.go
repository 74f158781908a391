package service

import (
	"context"
	"encoding/json"
	"log"

	"edu-assist-be/internal/dto"
	"edu-assist-be/pkg/embedding"
	"edu-assist-be/pkg/utils"
	"edu-assist-be/pkg/vectorstore"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the ingestion topic: it chunks each document,
// embeds the chunks, appends them to the vector index, and snapshots the
// index to disk.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	embeddingProvider embedding.EmbeddingProvider
	index             *vectorstore.VectorIndex

	chunkSize    int
	chunkOverlap int
	indexPath    string
	docsPath     string
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	embeddingProvider embedding.EmbeddingProvider,
	index *vectorstore.VectorIndex,
	chunkSize, chunkOverlap int,
	indexPath, docsPath string,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		embeddingProvider: embeddingProvider,
		index:             index,
		chunkSize:         chunkSize,
		chunkOverlap:      chunkOverlap,
		indexPath:         indexPath,
		docsPath:          docsPath,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingestion message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Ingesting document %s (session %s)", payload.DocumentID, payload.SessionID)

	textChunks := utils.SplitText(payload.Content, cs.chunkSize, cs.chunkOverlap)

	chunks := make([]vectorstore.Chunk, 0, len(textChunks))
	embeddings := make([][]float32, 0, len(textChunks))
	for i, text := range textChunks {
		res, err := cs.embeddingProvider.Generate(text, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of document %s: %v", i, payload.DocumentID, err)
			msg.Nack() // Nack for retriable errors
			return
		}
		chunks = append(chunks, vectorstore.Chunk{
			Content: text,
			Metadata: vectorstore.ChunkMetadata{
				Source:     payload.Title,
				SessionID:  payload.SessionID,
				DocumentID: payload.DocumentID,
				Features:   vectorstore.ComputeFeatures(text),
			},
		})
		embeddings = append(embeddings, res.Embedding.Values)
	}

	cs.index.Add(chunks, embeddings)

	if err := cs.index.Save(cs.indexPath, cs.docsPath); err != nil {
		// The chunks are already searchable in memory; only persistence failed
		log.Printf("[WARN] Failed to snapshot vector index: %v", err)
	}

	log.Printf("[INFO] Indexed %d chunks for document %s (index size %d)", len(chunks), payload.DocumentID, cs.index.Len())
	msg.Ack()
}
