package models

// Pre-aggregated metric shapes returned by the analytics endpoints. The
// dashboards only display sums and percentages; nothing heavier is computed.

type PlatformSummary struct {
	TotalCourses     int64   `json:"totalCourses"`
	PublishedCourses int64   `json:"publishedCourses"`
	PendingCourses   int64   `json:"pendingCourses"`
	TotalInstructors int64   `json:"totalInstructors"`
	TotalLearners    int64   `json:"totalLearners"`
	TotalEnrollments int64   `json:"totalEnrollments"`
	PublishedRate    float64 `json:"publishedRate"`  // percent of courses published
	AvgCompletion    float64 `json:"avgCompletion"`  // percent across enrollments
	TotalHoursSpent  float64 `json:"totalHoursSpent"`
}

type CourseLearnerRow struct {
	UserID           uint    `json:"userId"`
	Username         string  `json:"username"`
	LessonsCompleted int     `json:"lessonsCompleted"`
	HoursSpent       float64 `json:"hoursSpent"`
	CompletionRate   float64 `json:"completionRate"`
	LastAccessed     string  `json:"lastAccessed"`
}

type CategoryCount struct {
	CategoryID uint   `json:"categoryId"`
	Title      string `json:"title"`
	Courses    int64  `json:"courses"`
}
