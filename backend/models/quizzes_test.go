package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendQuestionType(t *testing.T) {
	assert.Equal(t, BackendQuestionTypeQCM, BackendQuestionType(QuestionTypeSingleChoice))
	assert.Equal(t, BackendQuestionTypeQCM, BackendQuestionType(QuestionTypeMultipleChoice))
	assert.Equal(t, BackendQuestionTypeTexte, BackendQuestionType("FREE_TEXT"))
}

func TestEditorQuestionType(t *testing.T) {
	assert.Equal(t, QuestionTypeSingleChoice, EditorQuestionType(BackendQuestionTypeQCM))
	assert.Equal(t, BackendQuestionTypeTexte, EditorQuestionType(BackendQuestionTypeTexte))
}

// A multiple-choice question collapses to QCM on save and comes back as
// single-choice, so the round trip is lossy on purpose.
func TestQuestionTypeRoundTripIsLossy(t *testing.T) {
	stored := BackendQuestionType(QuestionTypeMultipleChoice)
	assert.Equal(t, QuestionTypeSingleChoice, EditorQuestionType(stored))
}
