package service

import (
	"fmt"
	"path/filepath"
	"testing"

	"edu-assist-be/pkg/agent"
	"edu-assist-be/pkg/learner"
	"edu-assist-be/pkg/tools"
	"edu-assist-be/pkg/vectorstore"
)

func TestGetMemoryReturnsSummary(t *testing.T) {
	memories := agent.NewMemoryStore()
	m := memories.Get("s1")
	for i := 0; i < 5; i++ {
		m.AddThought(fmt.Sprintf("t%d", i))
	}
	m.AddAction("wikipedia")
	m.AddObservation("found it")

	registry := tools.NewRegistry()
	reasoningAgent := agent.NewAgent(nil, registry, memories)
	profiles := learner.NewProfileStore(filepath.Join(t.TempDir(), "profiles.json"))
	svc := NewAgentService(reasoningAgent, registry, vectorstore.NewVectorIndex(), fixedEmbedder{}, profiles, 5)

	got := svc.GetMemory("s1")
	if got.ThoughtCount != 5 || got.ActionCount != 1 || got.ObservationCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 5/1/1", got.ThoughtCount, got.ActionCount, got.ObservationCount)
	}
	if len(got.RecentThoughts) != 3 || got.RecentThoughts[0] != "t2" || got.RecentThoughts[2] != "t4" {
		t.Errorf("RecentThoughts = %v, want the last three", got.RecentThoughts)
	}
	if len(got.RecentActions) != 1 || got.RecentActions[0] != "wikipedia" {
		t.Errorf("RecentActions = %v", got.RecentActions)
	}
	if len(got.RecentObservations) != 1 || got.RecentObservations[0] != "found it" {
		t.Errorf("RecentObservations = %v", got.RecentObservations)
	}
}
