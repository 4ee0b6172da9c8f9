package service

import (
	"errors"
	"testing"

	"training_portal_backend/internal/util"
)

const sampleCatalog = `{
  "steps": [
    {
      "id": "step-1",
      "title": "Onboarding",
      "topics": [
        {
          "id": "topic-1",
          "title": "Security Basics",
          "videos": [
            {
              "id": "vid-1",
              "title": "Phishing 101",
              "quiz": {
                "questions": [
                  {"id": "q1", "question": "What is phishing?", "choices": ["a", "b"], "answerIndex": 1}
                ]
              }
            },
            {
              "id": "vid-2",
              "title": "Passwords",
              "quiz": null
            }
          ]
        }
      ]
    }
  ]
}`

func TestContentServiceLoadsCatalog(t *testing.T) {
	svc, err := NewContentServiceFromBytes([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if svc.VideoCount() != 2 {
		t.Fatalf("expected 2 videos, got %d", svc.VideoCount())
	}
	if _, err := svc.FindVideo("vid-2"); err != nil {
		t.Fatalf("expected vid-2 to exist: %v", err)
	}

	questions, err := svc.Questions("vid-1")
	if err != nil {
		t.Fatalf("questions failed: %v", err)
	}
	if len(questions) != 1 || questions[0].AnswerIndex != 1 {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

func TestContentServiceQuizNotFound(t *testing.T) {
	svc, err := NewContentServiceFromBytes([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// 视频不存在
	if _, err := svc.Questions("vid-404"); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
	// 视频存在但没有测验
	if _, err := svc.Questions("vid-2"); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound for quizless video, got %v", err)
	}
}

func TestContentServiceBadJSON(t *testing.T) {
	if _, err := NewContentServiceFromBytes([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed catalog")
	}
}
