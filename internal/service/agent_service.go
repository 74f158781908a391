package service

import (
	"context"
	"fmt"
	"strings"

	"edu-assist-be/internal/dto"
	"edu-assist-be/pkg/agent"
	"edu-assist-be/pkg/embedding"
	"edu-assist-be/pkg/learner"
	"edu-assist-be/pkg/rag/rank"
	"edu-assist-be/pkg/tools"
	"edu-assist-be/pkg/vectorstore"
)

type IAgentService interface {
	Chat(ctx context.Context, req *dto.AgentChatRequest) (*dto.AgentChatResponse, error)
	ToolCatalog() tools.Catalog
	GetMemory(sessionID string) *dto.AgentMemoryResponse
	ClearMemory(sessionID string)
}

// agentService exposes the reasoning agent directly, with optional
// document grounding and adaptive-learning updates.
type agentService struct {
	reasoningAgent    *agent.Agent
	registry          *tools.Registry
	index             *vectorstore.VectorIndex
	embeddingProvider embedding.EmbeddingProvider
	profiles          *learner.ProfileStore
	topK              int
}

func NewAgentService(
	reasoningAgent *agent.Agent,
	registry *tools.Registry,
	index *vectorstore.VectorIndex,
	embeddingProvider embedding.EmbeddingProvider,
	profiles *learner.ProfileStore,
	topK int,
) IAgentService {
	return &agentService{
		reasoningAgent:    reasoningAgent,
		registry:          registry,
		index:             index,
		embeddingProvider: embeddingProvider,
		profiles:          profiles,
		topK:              topK,
	}
}

func (s *agentService) Chat(ctx context.Context, req *dto.AgentChatRequest) (*dto.AgentChatResponse, error) {
	if req.UseAdaptiveLearning {
		s.profiles.With(req.SessionID, func(p *learner.Profile) {
			p.AnalyzeMessage(req.Message)
		})
	}

	docContext, contextCount, err := s.gatherDocumentContext(req)
	if err != nil {
		return nil, err
	}

	outcome, err := s.reasoningAgent.Run(ctx, agent.Request{
		Question:      req.Message,
		SessionID:     req.SessionID,
		Context:       docContext,
		EnableTools:   req.EnableTools,
		MaxIterations: req.MaxIterations,
	})
	if err != nil {
		return nil, fmt.Errorf("agent run: %w", err)
	}

	chain := make([]dto.ReasoningStep, 0, len(outcome.Steps))
	for _, step := range outcome.Steps {
		chain = append(chain, dto.ReasoningStep{Kind: step.Kind, Content: step.Content})
	}

	return &dto.AgentChatResponse{
		Answer:               outcome.Answer,
		Status:               outcome.Status,
		ReasoningChain:       chain,
		Iterations:           outcome.Iterations,
		ToolsUsed:            outcome.ToolsUsed,
		ToolCalls:            outcome.ToolCalls,
		DocumentContextCount: contextCount,
	}, nil
}

// gatherDocumentContext seeds the agent with the caller's indexed material.
func (s *agentService) gatherDocumentContext(req *dto.AgentChatRequest) (string, int, error) {
	if s.index.Len() == 0 {
		return "", 0, nil
	}

	embRes, err := s.embeddingProvider.Generate(req.Message, "RETRIEVAL_QUERY")
	if err != nil {
		return "", 0, fmt.Errorf("query embedding: %w", err)
	}

	var filter *vectorstore.Filter
	if len(req.DocumentIDs) > 0 {
		filter = &vectorstore.Filter{SessionID: req.SessionID, DocumentIDs: req.DocumentIDs}
	}
	hits := s.index.Search(embRes.Embedding.Values, s.topK, filter)

	var style learner.Style
	if p := s.profiles.Snapshot(req.SessionID); p != nil {
		style = p.Classify()
	}
	ranked := rank.Rank(hits, style, rank.Options{
		SessionID:   req.SessionID,
		DocumentIDs: req.DocumentIDs,
		TopK:        s.topK,
		Strict:      len(req.DocumentIDs) > 0,
	})

	parts := make([]string, 0, len(ranked))
	for _, hit := range ranked {
		parts = append(parts, hit.Chunk.Content)
	}
	return strings.Join(parts, "\n\n"), len(ranked), nil
}

func (s *agentService) ToolCatalog() tools.Catalog {
	return s.registry.Describe()
}

const memoryRecentEntries = 3

func (s *agentService) GetMemory(sessionID string) *dto.AgentMemoryResponse {
	snapshot := s.reasoningAgent.Memories().Get(sessionID).Snapshot()
	return &dto.AgentMemoryResponse{
		ThoughtCount:       len(snapshot.Thoughts),
		ActionCount:        len(snapshot.Actions),
		ObservationCount:   len(snapshot.Observations),
		RecentThoughts:     lastEntries(snapshot.Thoughts, memoryRecentEntries),
		RecentActions:      lastEntries(snapshot.Actions, memoryRecentEntries),
		RecentObservations: lastEntries(snapshot.Observations, memoryRecentEntries),
	}
}

func lastEntries(entries []string, n int) []string {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

func (s *agentService) ClearMemory(sessionID string) {
	s.reasoningAgent.Memories().Clear(sessionID)
}
