package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"edu-assist-be/internal/dto"
	"edu-assist-be/internal/repository/memory"
	"edu-assist-be/pkg/agent"
	"edu-assist-be/pkg/embedding"
	"edu-assist-be/pkg/learner"
	"edu-assist-be/pkg/llm"
	"edu-assist-be/pkg/rag/confidence"
	"edu-assist-be/pkg/rag/prompt"
	"edu-assist-be/pkg/rag/rank"
	"edu-assist-be/pkg/store"
	"edu-assist-be/pkg/vectorstore"
)

const (
	sourceRag            = "rag"
	sourceAgent          = "agent_with_tools"
	snippetLength        = 200
	profileFlushInterval = 5
)

// IRagService is the per-turn coordinator: profile refresh, adaptive
// retrieval, confidence gating, and answer generation or agent escalation.
type IRagService interface {
	ProcessMessage(ctx context.Context, req *dto.ProcessChatRequest) (*dto.ProcessChatResponse, error)
	ContinueResponse(ctx context.Context, sessionID string) (*dto.ContinueChatResponse, error)
	ClearSession(ctx context.Context, sessionID string) error
}

type ragService struct {
	index             *vectorstore.VectorIndex
	embeddingProvider embedding.EmbeddingProvider
	llmProvider       llm.LLMProvider
	profiles          *learner.ProfileStore
	sessionRepo       *memory.SessionRepository
	reasoningAgent    *agent.Agent
	topK              int
	agentIterations   int
	llmLogger         *log.Logger
}

func NewRagService(
	index *vectorstore.VectorIndex,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	profiles *learner.ProfileStore,
	sessionRepo *memory.SessionRepository,
	reasoningAgent *agent.Agent,
	topK int,
	agentIterations int,
) IRagService {
	return &ragService{
		index:             index,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		profiles:          profiles,
		sessionRepo:       sessionRepo,
		reasoningAgent:    reasoningAgent,
		topK:              topK,
		agentIterations:   agentIterations,
		llmLogger:         initLLMLogger(),
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_rag.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (rs *ragService) ProcessMessage(ctx context.Context, req *dto.ProcessChatRequest) (*dto.ProcessChatResponse, error) {
	// 1. Refresh the learner profile from this message
	style, interactionCount := rs.refreshProfile(req.SessionID, req.Message)

	// 2. Adaptive retrieval
	ranked, err := rs.retrieve(req.Message, req.SessionID, req.DocumentIDs)
	if err != nil {
		return nil, err
	}

	// 3. Confidence gating
	score := rs.confidenceOf(ranked)
	rs.llmLogger.Printf("[CONFIDENCE] session=%s hits=%d score=%.3f", req.SessionID, len(ranked), score)

	session := rs.sessionRepo.GetOrCreate(req.SessionID)

	var answer string
	source := sourceRag
	if confidence.ShouldEscalate(score) {
		rs.llmLogger.Printf("[ESCALATE] session=%s confidence below threshold, running agent", req.SessionID)
		outcome, err := rs.reasoningAgent.Run(ctx, agent.Request{
			Question:      req.Message,
			SessionID:     req.SessionID,
			Context:       joinSnippets(ranked),
			EnableTools:   true,
			MaxIterations: rs.agentIterations,
		})
		if err != nil {
			return nil, fmt.Errorf("agent escalation: %w", err)
		}
		answer = outcome.Answer
		source = sourceAgent
	} else {
		promptCtx := splitContext(ranked, req.DocumentIDs)
		instruction := prompt.NewAdaptiveBuilder(style, promptCtx, req.Message).Build()
		messages := append(historyMessages(session), llm.Message{Role: store.RoleUser, Content: instruction})
		rs.llmLogger.Printf("[GENERATE] session=%s history_msgs=%d prompt_chars=%d",
			req.SessionID, len(messages)-1, len(instruction))

		answer, err = rs.llmProvider.Chat(ctx, messages)
		if err != nil {
			// Failed turns are not appended to history
			return nil, fmt.Errorf("llm generation: %w", err)
		}
	}

	incomplete := looksIncomplete(answer)

	// 4. Append to session history, flush the profile periodically
	session.AppendTurn(req.Message, answer, incomplete)
	rs.sessionRepo.Save(session)

	if interactionCount%profileFlushInterval == 0 {
		if err := rs.profiles.Flush(); err != nil {
			rs.llmLogger.Printf("[WARN] Failed to flush learner profiles: %v", err)
		}
	}

	return &dto.ProcessChatResponse{
		Answer:          answer,
		IsIncomplete:    incomplete,
		Context:         toSnippets(ranked),
		ConfidenceScore: score,
		Source:          source,
		LearningStyle:   style.Describe(),
	}, nil
}

func (rs *ragService) ContinueResponse(ctx context.Context, sessionID string) (*dto.ContinueChatResponse, error) {
	session, found := rs.sessionRepo.Get(sessionID)
	if !found || session.LastAnswer == "" {
		return nil, fmt.Errorf("no previous answer to continue for session %s", sessionID)
	}

	var sb strings.Builder
	sb.WriteString("You previously started answering this question:\n\n")
	sb.WriteString(session.LastQuery)
	sb.WriteString("\n\nYour answer so far:\n\n")
	sb.WriteString(session.LastAnswer)
	sb.WriteString("\n\nContinue from exactly where you left off. Do not repeat anything already written.")

	messages := append(historyMessages(session), llm.Message{Role: store.RoleUser, Content: sb.String()})
	delta, err := rs.llmProvider.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("continuation: %w", err)
	}

	full := session.LastAnswer + "\n" + delta
	incomplete := looksIncomplete(full)
	session.LastAnswer = full
	session.IsIncomplete = incomplete
	rs.sessionRepo.Save(session)

	return &dto.ContinueChatResponse{
		Answer:       delta,
		FullAnswer:   full,
		IsIncomplete: incomplete,
	}, nil
}

func (rs *ragService) ClearSession(ctx context.Context, sessionID string) error {
	rs.sessionRepo.Delete(sessionID)
	rs.reasoningAgent.Memories().Clear(sessionID)
	return nil
}

// historyMessages converts the session's trailing window into provider
// messages so the model sees prior turns of the conversation.
func historyMessages(session *store.Session) []llm.Message {
	recent := session.RecentHistory()
	messages := make([]llm.Message, 0, len(recent)+1)
	for _, msg := range recent {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	return messages
}

// refreshProfile analyzes the message into the session's profile and
// returns the classification. The per-session lock covers only the
// in-memory update.
func (rs *ragService) refreshProfile(sessionID, message string) (learner.Style, int) {
	var style learner.Style
	var count int
	rs.profiles.With(sessionID, func(p *learner.Profile) {
		p.AnalyzeMessage(message)
		style = p.Classify()
		count = p.InteractionCount
	})
	return style, count
}

// retrieve embeds the query and runs the adaptive ranking over the index.
// Strict scoping applies only when the caller selected documents.
func (rs *ragService) retrieve(message, sessionID string, documentIDs []string) ([]rank.RankedHit, error) {
	embRes, err := rs.embeddingProvider.Generate(message, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("query embedding: %w", err)
	}

	var filter *vectorstore.Filter
	strict := len(documentIDs) > 0
	if strict {
		filter = &vectorstore.Filter{SessionID: sessionID, DocumentIDs: documentIDs}
	}

	hits := rs.index.Search(embRes.Embedding.Values, rs.topK, filter)
	rs.llmLogger.Printf("[SEARCH] session=%s raw_hits=%d strict=%t", sessionID, len(hits), strict)

	var style learner.Style
	if p := rs.profiles.Snapshot(sessionID); p != nil {
		style = p.Classify()
	}

	return rank.Rank(hits, style, rank.Options{
		SessionID:   sessionID,
		DocumentIDs: documentIDs,
		TopK:        rs.topK,
		Strict:      strict,
	}), nil
}

func (rs *ragService) confidenceOf(ranked []rank.RankedHit) float64 {
	if len(ranked) == 0 {
		return 0
	}
	var sum float64
	var chars int
	for _, hit := range ranked {
		sum += hit.SemanticScore
		chars += len(hit.Chunk.Content)
	}
	return confidence.Score(len(ranked), sum/float64(len(ranked)), chars)
}

// splitContext separates chunks from explicitly selected documents
// (authoritative) from the rest of the retrieval (supplementary).
func splitContext(ranked []rank.RankedHit, documentIDs []string) prompt.Context {
	if len(documentIDs) == 0 {
		return prompt.Context{Primary: joinSnippets(ranked)}
	}

	var primary, secondary []string
	for _, hit := range ranked {
		if hit.PriorityMultiplier == 2.0 {
			primary = append(primary, hit.Chunk.Content)
		} else {
			secondary = append(secondary, hit.Chunk.Content)
		}
	}
	return prompt.Context{
		Primary:   strings.Join(primary, "\n\n"),
		Secondary: strings.Join(secondary, "\n\n"),
	}
}

func joinSnippets(ranked []rank.RankedHit) string {
	parts := make([]string, 0, len(ranked))
	for _, hit := range ranked {
		parts = append(parts, hit.Chunk.Content)
	}
	return strings.Join(parts, "\n\n")
}

func toSnippets(ranked []rank.RankedHit) []dto.ContextSnippet {
	snippets := make([]dto.ContextSnippet, 0, len(ranked))
	for _, hit := range ranked {
		content := hit.Chunk.Content
		if len(content) > snippetLength {
			content = content[:snippetLength] + "..."
		}
		snippets = append(snippets, dto.ContextSnippet{
			ContentSnippet: content,
			Metadata: map[string]interface{}{
				"source":      hit.Chunk.Metadata.Source,
				"session_id":  hit.Chunk.Metadata.SessionID,
				"document_id": hit.Chunk.Metadata.DocumentID,
			},
			Score: hit.FinalScore(),
		})
	}
	return snippets
}

// Dangling words that suggest a response was cut off mid-sentence.
var danglingConnectors = map[string]bool{
	"and": true, "or": true, "but": true, "so": true, "because": true,
	"with": true, "to": true, "the": true, "a": true, "of": true,
	"in": true, "for": true, "as": true, "by": true,
}

// looksIncomplete applies the truncation heuristics: terminal punctuation,
// dangling connector words, an overlong unterminated final clause, or a
// suspiciously short answer. Known to misclassify some well-formed short
// answers; the field is advisory, the caller decides whether to continue.
func looksIncomplete(answer string) bool {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return false
	}
	if len(trimmed) < 20 {
		return true
	}

	last := trimmed[len(trimmed)-1]
	switch last {
	case ',', ':', ';', '-':
		return true
	case '.', '!', '?', '"', '\'', ')', ']', '`':
		return false
	}

	fields := strings.Fields(trimmed)
	lastWord := strings.ToLower(strings.Trim(fields[len(fields)-1], ".,!?\"'"))
	if danglingConnectors[lastWord] {
		return true
	}

	// No terminal punctuation: incomplete if the final clause runs long
	lastClauseStart := strings.LastIndexAny(trimmed, ".!?\n")
	finalClause := trimmed
	if lastClauseStart >= 0 {
		finalClause = trimmed[lastClauseStart+1:]
	}
	return len(strings.TrimSpace(finalClause)) > 100
}
