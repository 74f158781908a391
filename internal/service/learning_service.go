package service

import (
	"context"

	"edu-assist-be/internal/dto"
	"edu-assist-be/internal/pkg/logger"
	"edu-assist-be/pkg/learner"
)

type ILearningService interface {
	SubmitQuestionnaire(ctx context.Context, req *dto.QuestionnaireRequest) (*dto.LearnerProfileResponse, error)
	GetProfile(ctx context.Context, sessionID string) (*dto.LearnerProfileResponse, error)
	ResetProfile(ctx context.Context, sessionID string) error
}

type learningService struct {
	profiles  *learner.ProfileStore
	sysLogger logger.ILogger
}

func NewLearningService(profiles *learner.ProfileStore, sysLogger logger.ILogger) ILearningService {
	return &learningService{
		profiles:  profiles,
		sysLogger: sysLogger,
	}
}

func (s *learningService) SubmitQuestionnaire(ctx context.Context, req *dto.QuestionnaireRequest) (*dto.LearnerProfileResponse, error) {
	s.profiles.With(req.SessionID, func(p *learner.Profile) {
		p.ApplyQuestionnaire(learner.Dimensions{
			ActiveReflective: req.ActiveReflective,
			SensingIntuitive: req.SensingIntuitive,
			VisualVerbal:     req.VisualVerbal,
			SequentialGlobal: req.SequentialGlobal,
		})
	})

	if err := s.profiles.Flush(); err != nil {
		s.sysLogger.Warn("learning", "Failed to persist profiles after questionnaire", map[string]interface{}{
			"session_id": req.SessionID,
			"error":      err.Error(),
		})
	}

	return s.GetProfile(ctx, req.SessionID)
}

func (s *learningService) GetProfile(ctx context.Context, sessionID string) (*dto.LearnerProfileResponse, error) {
	// Touch creates the profile lazily on first reference
	s.profiles.With(sessionID, func(p *learner.Profile) {})

	p := s.profiles.Snapshot(sessionID)
	style := p.Classify()

	return &dto.LearnerProfileResponse{
		SessionID: sessionID,
		Dimensions: map[string]float64{
			"active_reflective": p.Dimensions.ActiveReflective,
			"sensing_intuitive": p.Dimensions.SensingIntuitive,
			"visual_verbal":     p.Dimensions.VisualVerbal,
			"sequential_global": p.Dimensions.SequentialGlobal,
		},
		LearningStyle:        style.Describe(),
		TotalInteractions:    p.InteractionCount,
		QuestionnaireApplied: p.QuestionnaireApplied,
	}, nil
}

func (s *learningService) ResetProfile(ctx context.Context, sessionID string) error {
	s.profiles.Reset(sessionID)
	return s.profiles.Flush()
}
