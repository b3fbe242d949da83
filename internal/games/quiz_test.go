package games

import (
	"testing"
)

func TestQuizQuestionsWellFormed(t *testing.T) {
	if len(QuizQuestions) == 0 {
		t.Fatal("QuizQuestions is empty")
	}
	for i, q := range QuizQuestions {
		if q.Text == "" {
			t.Errorf("question %d has empty text", i)
		}
		if len(q.Options) < 2 {
			t.Errorf("question %d has %d options, want at least 2", i, len(q.Options))
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			t.Errorf("question %d correct index %d out of range [0, %d)", i, q.Correct, len(q.Options))
		}
	}
}

func TestGradeQuiz(t *testing.T) {
	q := QuizQuestion{
		Text:    "pick b",
		Options: []string{"a", "b", "c"},
		Correct: 1,
	}

	if !GradeQuiz(q, 1) {
		t.Error("GradeQuiz with correct index = false, want true")
	}
	for _, wrong := range []int{0, 2, -1, 3} {
		if GradeQuiz(q, wrong) {
			t.Errorf("GradeQuiz(%d) = true, want false", wrong)
		}
	}
}
