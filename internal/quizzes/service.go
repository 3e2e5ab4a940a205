package quizzes

import (
	"context"
	"fmt"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/shared"
)

// Store abstracts persistence for the service.
type Store interface {
	Create(ctx context.Context, input NewQuiz) (Quiz, error)
	Get(ctx context.Context, id int64) (Quiz, error)
	List(ctx context.Context, access string, accessArgs []any, courseID int64) ([]Quiz, error)
	Update(ctx context.Context, id int64, input UpdateQuiz) (Quiz, error)
	Delete(ctx context.Context, id int64) error
	CreateQuestion(ctx context.Context, courseID int64, input NewQuestion) (Question, error)
	GetQuestion(ctx context.Context, quizID, questionID int64) (Question, error)
	UpdateQuestion(ctx context.Context, quizID, questionID int64, input UpdateQuestion) (Question, error)
	DeleteQuestion(ctx context.Context, quizID, questionID int64) error
	GetOrCreateRelation(ctx context.Context, quizID, creatorID int64) (Relation, error)
	MarkRelationDone(ctx context.Context, quizID, creatorID int64) error
	ListRelations(ctx context.Context, creatorID, quizID int64) ([]Relation, error)
	DeleteRelation(ctx context.Context, quizID, creatorID int64) error
}

// Service wraps quiz business rules, including grading.
type Service struct {
	repo Store
	gate *authz.Gate
}

// NewService constructs a new Service.
func NewService(repo Store, gate *authz.Gate) *Service {
	return &Service{repo: repo, gate: gate}
}

// Create stores a quiz. The caller must instruct both the course and the
// module's course, and the module must belong to the given course.
func (s *Service) Create(ctx context.Context, p *shared.Principal, input NewQuiz) (Quiz, error) {
	if _, err := s.gate.Resolve(ctx, authz.Course, p, input.CourseID, authz.IsCourseInstructor{}); err != nil {
		return Quiz{}, err
	}
	obj, err := s.gate.Resolve(ctx, authz.Module, p, input.ModuleID, authz.IsCourseInstructor{})
	if err != nil {
		return Quiz{}, err
	}
	if obj.CourseID != input.CourseID {
		return Quiz{}, fmt.Errorf("%w: module does not belong to the given course", shared.ErrValidation)
	}
	return s.repo.Create(ctx, input)
}

// Get returns a quiz visible to the principal.
func (s *Service) Get(ctx context.Context, p *shared.Principal, id int64) (Quiz, error) {
	if _, err := s.gate.Resolve(ctx, authz.Quiz, p, id, authz.IsEnrolled{}); err != nil {
		return Quiz{}, err
	}
	return s.repo.Get(ctx, id)
}

// List returns the quizzes of courses the principal can see.
func (s *Service) List(ctx context.Context, p *shared.Principal, courseID int64) ([]Quiz, error) {
	access, args := authz.ListPredicate(authz.Quiz, p, 1, authz.IsEnrolled{})
	return s.repo.List(ctx, access, args, courseID)
}

// Update patches a quiz. Instructors of the owning course only.
func (s *Service) Update(ctx context.Context, p *shared.Principal, id int64, input UpdateQuiz) (Quiz, error) {
	if _, err := s.gate.Resolve(ctx, authz.Quiz, p, id, authz.IsCourseInstructor{}); err != nil {
		return Quiz{}, err
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes a quiz. Instructors of the owning course only.
func (s *Service) Delete(ctx context.Context, p *shared.Principal, id int64) error {
	if _, err := s.gate.Resolve(ctx, authz.Quiz, p, id, authz.IsCourseInstructor{}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// CreateQuestion stores a question on a quiz. Instructors only. The
// correct response must index into the answer list.
func (s *Service) CreateQuestion(ctx context.Context, p *shared.Principal, input NewQuestion) (Question, error) {
	obj, err := s.gate.Resolve(ctx, authz.Quiz, p, input.QuizID, authz.IsCourseInstructor{})
	if err != nil {
		return Question{}, err
	}
	if int(input.CorrectResponse) >= len(input.Answers) {
		return Question{}, fmt.Errorf("%w: invalid response", shared.ErrValidation)
	}
	return s.repo.CreateQuestion(ctx, obj.CourseID, input)
}

// UpdateQuestion patches a question. Instructors only.
func (s *Service) UpdateQuestion(ctx context.Context, p *shared.Principal, quizID, questionID int64, input UpdateQuestion) (Question, error) {
	if _, err := s.gate.Resolve(ctx, authz.Quiz, p, quizID, authz.IsCourseInstructor{}); err != nil {
		return Question{}, err
	}
	if input.Answers != nil && input.CorrectResponse != nil && int(*input.CorrectResponse) >= len(*input.Answers) {
		return Question{}, fmt.Errorf("%w: invalid response", shared.ErrValidation)
	}
	return s.repo.UpdateQuestion(ctx, quizID, questionID, input)
}

// DeleteQuestion removes a question. Instructors only.
func (s *Service) DeleteQuestion(ctx context.Context, p *shared.Principal, quizID, questionID int64) error {
	if _, err := s.gate.Resolve(ctx, authz.Quiz, p, quizID, authz.IsCourseInstructor{}); err != nil {
		return err
	}
	return s.repo.DeleteQuestion(ctx, quizID, questionID)
}

// Check grades a submission against the quiz's questions. The submission
// must answer every question exactly once; a repeat attempt after passing
// conflicts. Passing marks the user's relation done.
func (s *Service) Check(ctx context.Context, p *shared.Principal, quizID int64, responses map[int64]int32) (CheckResult, error) {
	if _, err := s.gate.Resolve(ctx, authz.Quiz, p, quizID, authz.IsEnrolled{}); err != nil {
		return CheckResult{}, err
	}
	quiz, err := s.repo.Get(ctx, quizID)
	if err != nil {
		return CheckResult{}, err
	}
	relation, err := s.repo.GetOrCreateRelation(ctx, quizID, p.ID)
	if err != nil {
		return CheckResult{}, err
	}
	if relation.Done {
		return CheckResult{}, fmt.Errorf("%w: you already completed this quiz", shared.ErrDuplicate)
	}

	invalid := fmt.Errorf("%w: the question data is invalid", shared.ErrValidation)
	if len(quiz.Questions) == 0 {
		return CheckResult{}, invalid
	}
	if len(responses) != len(quiz.Questions) {
		return CheckResult{}, invalid
	}
	byID := make(map[int64]Question, len(quiz.Questions))
	for _, q := range quiz.Questions {
		byID[q.ID] = q
	}

	total := 0
	wrong := []int64{}
	for questionID, responseIndex := range responses {
		question, ok := byID[questionID]
		if !ok {
			return CheckResult{}, invalid
		}
		if question.CorrectResponse == responseIndex {
			total++
		} else {
			wrong = append(wrong, questionID)
		}
	}

	percent := float64(total*100) / float64(len(quiz.Questions))
	passed := percent >= float64(quiz.PassPercent)
	if passed {
		if err := s.repo.MarkRelationDone(ctx, quizID, p.ID); err != nil {
			return CheckResult{}, err
		}
	}
	return CheckResult{Correct: passed, CorrectPercent: percent, WrongQuestions: wrong}, nil
}

// ListRelations returns the caller's quiz relations.
func (s *Service) ListRelations(ctx context.Context, p *shared.Principal, quizID int64) ([]Relation, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	return s.repo.ListRelations(ctx, p.ID, quizID)
}

// DeleteRelation removes the caller's relation for a quiz, resetting its
// completion status.
func (s *Service) DeleteRelation(ctx context.Context, p *shared.Principal, quizID int64) error {
	if err := authz.RequireAuthenticated(p); err != nil {
		return err
	}
	return s.repo.DeleteRelation(ctx, quizID, p.ID)
}
