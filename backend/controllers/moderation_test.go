package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/backend/models"
)

func TestApproveCoursePublishes(t *testing.T) {
	app, db, cfg := newTestApp(t)
	admin, token := createUser(t, db, cfg, "root", models.RoleAdmin)
	course := seedCourse(t, db, "Go from scratch", models.CourseStatusInReview, 1, 1)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/moderation/courses/%d/approve", course.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Course
	require.NoError(t, db.First(&stored, course.ID).Error)
	assert.Equal(t, models.CourseStatusPublished, stored.Status)

	// An audit row records who decided what.
	var decision models.ModerationDecision
	require.NoError(t, db.Where("target_type = ? AND target_id = ?", "course", course.ID).First(&decision).Error)
	assert.Equal(t, models.DecisionApproved, decision.Decision)
	assert.Equal(t, admin.ID, decision.DecidedBy)
}

// Rejecting without a reason is a validation failure and must leave the
// course in the moderation queue untouched.
func TestRejectCourseRequiresReason(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "root", models.RoleAdmin)
	course := seedCourse(t, db, "Go from scratch", models.CourseStatusInReview, 1, 1)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/moderation/courses/%d/reject", course.ID), token, map[string]interface{}{})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Details map[string]string `json:"details"`
	}
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Details, "reason")

	var stored models.Course
	require.NoError(t, db.First(&stored, course.ID).Error)
	assert.Equal(t, models.CourseStatusInReview, stored.Status)

	resp = doJSON(t, app, http.MethodGet, "/api/moderation/courses", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pending []models.Course
	decodeData(t, resp, &pending)
	assert.Len(t, pending, 1)
}

func TestRejectCourseWithReason(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "root", models.RoleAdmin)
	course := seedCourse(t, db, "Go from scratch", models.CourseStatusInReview, 1, 1)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/moderation/courses/%d/reject", course.ID), token, map[string]interface{}{
		"reason": "Plagiarized content",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Course
	require.NoError(t, db.First(&stored, course.ID).Error)
	assert.Equal(t, models.CourseStatusRejected, stored.Status)

	var decision models.ModerationDecision
	require.NoError(t, db.Where("target_type = ? AND target_id = ?", "course", course.ID).First(&decision).Error)
	assert.Equal(t, "Plagiarized content", decision.Reason)
}

func TestRequestChangesCourse(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "root", models.RoleAdmin)
	course := seedCourse(t, db, "Go from scratch", models.CourseStatusInReview, 1, 1)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/moderation/courses/%d/request-changes", course.ID), token, map[string]interface{}{
		"reason": "Module two needs sources",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Course
	require.NoError(t, db.First(&stored, course.ID).Error)
	assert.Equal(t, models.CourseStatusChangesRequested, stored.Status)

	// After fixes the author can resubmit.
	_, instructorToken := createUser(t, db, cfg, "ada", models.RoleInstructor)
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/courses/%d/submit", course.ID), instructorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&stored, course.ID).Error)
	assert.Equal(t, models.CourseStatusInReview, stored.Status)
}

func TestDecideCourseNotInReview(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "root", models.RoleAdmin)

	for _, status := range []string{
		models.CourseStatusDraft,
		models.CourseStatusPublished,
		models.CourseStatusRejected,
	} {
		course := seedCourse(t, db, "Course "+status, status, 1, 1)
		resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/moderation/courses/%d/approve", course.ID), token, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode, status)

		var stored models.Course
		require.NoError(t, db.First(&stored, course.ID).Error)
		assert.Equal(t, status, stored.Status)
	}
}

func TestModerationRequiresAdmin(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "ada", models.RoleInstructor)

	resp := doJSON(t, app, http.MethodGet, "/api/moderation/courses", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestApproveApplicationPromotesUser(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, adminToken := createUser(t, db, cfg, "root", models.RoleAdmin)
	applicant, applicantToken := createUser(t, db, cfg, "lea", models.RoleLearner)

	resp := doJSON(t, app, http.MethodPost, "/api/instructor-applications", applicantToken, map[string]interface{}{
		"userId":    applicant.ID,
		"biography": "Ten years of backend work",
		"expertise": "Distributed systems",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var application models.InstructorApplication
	decodeData(t, resp, &application)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/moderation/applications/%d/approve", application.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, db.First(&user, applicant.ID).Error)
	assert.Equal(t, models.RoleInstructor, user.Role)

	var stored models.InstructorApplication
	require.NoError(t, db.First(&stored, application.ID).Error)
	assert.Equal(t, models.ApplicationStatusApproved, stored.Status)

	// A decided application cannot be decided again.
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/moderation/applications/%d/reject", application.ID), adminToken, map[string]interface{}{
		"reason": "changed my mind",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRejectApplicationKeepsRole(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, adminToken := createUser(t, db, cfg, "root", models.RoleAdmin)
	applicant, applicantToken := createUser(t, db, cfg, "lea", models.RoleLearner)

	resp := doJSON(t, app, http.MethodPost, "/api/instructor-applications", applicantToken, map[string]interface{}{
		"userId":    applicant.ID,
		"biography": "Hobbyist",
		"expertise": "Spreadsheets",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var application models.InstructorApplication
	decodeData(t, resp, &application)

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/moderation/applications/%d/reject", application.ID), adminToken, map[string]interface{}{
		"reason": "Not enough teaching experience",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, db.First(&user, applicant.ID).Error)
	assert.Equal(t, models.RoleLearner, user.Role)

	var stored models.InstructorApplication
	require.NoError(t, db.First(&stored, application.ID).Error)
	assert.Equal(t, models.ApplicationStatusRejected, stored.Status)
	assert.Equal(t, "Not enough teaching experience", stored.DecisionReason)
}
