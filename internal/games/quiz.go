package games

// QuizQuestion is one multiple-choice question with exactly one correct
// option index.
type QuizQuestion struct {
	Text    string
	Options []string
	Correct int
}

// QuizQuestions is the fixed, ordered question list. The quiz walks it
// sequentially; the final score is reported against its length.
var QuizQuestions = []QuizQuestion{
	{
		Text:    "Which planet is the largest in the Solar System?",
		Options: []string{"Mars", "Jupiter", "Saturn", "Earth"},
		Correct: 1,
	},
	{
		Text:    "How many continents are there on Earth?",
		Options: []string{"5", "6", "7", "8"},
		Correct: 2,
	},
	{
		Text:    "Which animal is a national symbol of Russia?",
		Options: []string{"Bear", "Eagle", "Wolf", "Tiger"},
		Correct: 0,
	},
}

// GradeQuiz reports whether the answered option index is the correct one.
func GradeQuiz(q QuizQuestion, answer int) bool {
	return answer == q.Correct
}
