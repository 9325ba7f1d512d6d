package models

import "time"

// Question is one multiple-choice quiz question. Options are positional:
// options[0] is answer A, options[1] is B, and so on. CorrectAnswer holds
// the letter, not the text.
type Question struct {
	ID            string   `bson:"id" json:"id"`
	QuestionText  string   `bson:"question_text" json:"questionText"`
	Options       []string `bson:"options" json:"options"`
	CorrectAnswer string   `bson:"correct_answer" json:"correctAnswer"`
}

// Quiz is a generated question set stored independently of the course
// document. Grade and Subject are display-name snapshots taken at publish
// time; renaming a subject later does not rewrite quiz headers.
type Quiz struct {
	ID        string     `bson:"_id" json:"id"`
	Title     string     `bson:"title" json:"title"`
	Grade     string     `bson:"grade" json:"grade"`
	Subject   string     `bson:"subject" json:"subject"`
	Questions []Question `bson:"questions" json:"questions"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
}

// QuizURL returns the in-app link an application resource uses to point at
// a published quiz. The quiz player resolves quiz ids from this exact
// pattern, so it must not change shape.
func QuizURL(quizID string) string {
	return "/quiz/" + quizID
}
