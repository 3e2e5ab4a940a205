// Package authz implements object-level authorization for protected
// resources. Permission rules compose the SQL used to resolve an object
// (annotating it with membership flags) and validate the resolved row;
// in list mode the same rules filter the collection directly, so bulk
// and single-object enforcement stay equivalent.
package authz

// Resource describes a protected table and how to reach its owning course.
type Resource struct {
	// Name is the short resource name ("course", "lesson", ...).
	Name string
	// Table is the backing table; list queries alias it as "t".
	Table string
	// CourseIDCol is the column holding the owning course id. The course
	// table references itself through its primary key.
	CourseIDCol string
	// CreatorCol is the column holding the creating user id, empty when
	// the table carries no creator.
	CreatorCol string
}

// Protected resources. CourseIDCol is "id" only for the course itself;
// every other resource reaches its course through course_id.
var (
	Course       = Resource{Name: "course", Table: "courses", CourseIDCol: "id"}
	Module       = Resource{Name: "module", Table: "modules", CourseIDCol: "course_id"}
	Lesson       = Resource{Name: "lesson", Table: "lessons", CourseIDCol: "course_id"}
	Rating       = Resource{Name: "rating", Table: "ratings", CourseIDCol: "course_id", CreatorCol: "creator_id"}
	Message      = Resource{Name: "message", Table: "messages", CourseIDCol: "course_id", CreatorCol: "creator_id"}
	Question     = Resource{Name: "question", Table: "questions", CourseIDCol: "course_id", CreatorCol: "creator_id"}
	Note         = Resource{Name: "note", Table: "notes", CourseIDCol: "course_id", CreatorCol: "creator_id"}
	Content      = Resource{Name: "content", Table: "contents", CourseIDCol: "course_id"}
	Quiz         = Resource{Name: "quiz", Table: "quizzes", CourseIDCol: "course_id"}
	QuizQuestion = Resource{Name: "quiz_question", Table: "quiz_questions", CourseIDCol: "course_id"}
	Answer       = Resource{Name: "answer", Table: "answers", CourseIDCol: "course_id", CreatorCol: "creator_id"}
	Action       = Resource{Name: "action", Table: "actions", CourseIDCol: "course_id", CreatorCol: "creator_id"}
)
