package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/backend/models"
)

func createAnnouncement(t *testing.T, app *fiber.App, token, audience string) models.Announcement {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/announcements", token, map[string]interface{}{
		"title":          "Maintenance window",
		"message":        "The platform goes down Saturday night.",
		"targetAudience": audience,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var announcement models.Announcement
	decodeData(t, resp, &announcement)
	return announcement
}

func TestCreateAnnouncementStartsAsDraft(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "root", models.RoleAdmin)

	announcement := createAnnouncement(t, app, token, models.AudienceAll)
	assert.Equal(t, models.AnnouncementStatusDraft, announcement.Status)
	assert.Nil(t, announcement.SentAt)
}

func TestCreateAnnouncementValidation(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "root", models.RoleAdmin)

	resp := doJSON(t, app, http.MethodPost, "/api/announcements", token, map[string]interface{}{
		"title":          "Oops",
		"message":        "bad audience",
		"targetAudience": "EVERYONE",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Details map[string]string `json:"details"`
	}
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Details, "targetAudience")
}

// Sending fans the announcement out to every active user in the target
// audience and stamps the announcement as sent.
func TestSendAnnouncementFansOutToAudience(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, adminToken := createUser(t, db, cfg, "root", models.RoleAdmin)
	learner1, _ := createUser(t, db, cfg, "lea", models.RoleLearner)
	learner2, _ := createUser(t, db, cfg, "sam", models.RoleLearner)
	createUser(t, db, cfg, "ada", models.RoleInstructor)

	inactive, _ := createUser(t, db, cfg, "gone", models.RoleLearner)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", inactive.ID).Update("active", false).Error)

	announcement := createAnnouncement(t, app, adminToken, models.AudienceLearners)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/announcements/%d/send", announcement.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var notifications []models.Notification
	require.NoError(t, db.Where("announcement_id = ?", announcement.ID).Find(&notifications).Error)
	require.Len(t, notifications, 2)

	recipients := map[uint]bool{}
	for _, n := range notifications {
		recipients[n.UserID] = true
		assert.Equal(t, announcement.Title, n.Title)
		assert.False(t, n.Read)
	}
	assert.True(t, recipients[learner1.ID])
	assert.True(t, recipients[learner2.ID])

	var stored models.Announcement
	require.NoError(t, db.First(&stored, announcement.ID).Error)
	assert.Equal(t, models.AnnouncementStatusSent, stored.Status)
	assert.NotNil(t, stored.SentAt)
}

func TestSendAnnouncementTwiceConflicts(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "root", models.RoleAdmin)
	createUser(t, db, cfg, "lea", models.RoleLearner)

	announcement := createAnnouncement(t, app, token, models.AudienceAll)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/announcements/%d/send", announcement.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/announcements/%d/send", announcement.ID), token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// No duplicate notifications were written.
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("announcement_id = ?", announcement.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count) // admin + learner, AudienceAll
}

func TestUpdateSentAnnouncementConflicts(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "root", models.RoleAdmin)

	announcement := createAnnouncement(t, app, token, models.AudienceAll)
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/announcements/%d/send", announcement.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/announcements/%d", announcement.ID), token, map[string]interface{}{
		"title":          "Too late",
		"message":        "already out",
		"targetAudience": models.AudienceAll,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetAllAnnouncementsSearchAndStatus(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "root", models.RoleAdmin)

	createAnnouncement(t, app, token, models.AudienceAll)
	maintenance := createAnnouncement(t, app, token, models.AudienceAll)
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/announcements/%d/send", maintenance.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var announcements []models.Announcement

	resp = doJSON(t, app, http.MethodGet, "/api/announcements?status=SENT", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, resp, &announcements)
	require.Len(t, announcements, 1)
	assert.Equal(t, maintenance.ID, announcements[0].ID)

	resp = doJSON(t, app, http.MethodGet, "/api/announcements?search=maintenance", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, resp, &announcements)
	assert.Len(t, announcements, 2)
}
