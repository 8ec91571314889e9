package api

import (
	"net/http"
	"testing"
	"time"

	"solo-sparks/internal/db"
	"solo-sparks/internal/progress"
	"solo-sparks/internal/quest"
	"solo-sparks/internal/rewards"
	"solo-sparks/internal/user"
)

func TestProgressHandler_Empty(t *testing.T) {
	setupTestDB(t)
	u := seedUser(t, "sam", user.RoleUser)

	w := doJSON(newUserRouter(u.ID), "GET", "/progress", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var sum progress.Summary
	decode(t, w, &sum)
	if sum.TotalQuests != 0 || sum.CompletedQuests != 0 || sum.CurrentStreak != 0 {
		t.Errorf("expected empty summary, got %+v", sum)
	}
	if len(sum.WeeklyProgress) != 4 {
		t.Errorf("expected 4 weekly buckets, got %d", len(sum.WeeklyProgress))
	}
}

func TestProgressHandler_AfterCompletions(t *testing.T) {
	setupTestDB(t)
	seedCatalog(t)
	u := seedUser(t, "sam", user.RoleUser)
	r := newUserRouter(u.ID)

	day := time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)
	fixClock(t, day)
	doJSON(r, "POST", "/quests/quest_mindful_001/complete", CompleteRequest{
		Reflections: []quest.ReflectionInput{{Type: quest.ReflectionText, Content: "ok"}},
	})
	fixClock(t, day.Add(24*time.Hour))
	doJSON(r, "POST", "/quests/quest_creative_001/complete", CompleteRequest{
		Reflections: []quest.ReflectionInput{{Type: quest.ReflectionAudio, Content: "memo.m4a"}},
	})
	doJSON(r, "POST", "/quests", AssignRequest{QuestID: "quest_selfcare_001", Action: "assign"})

	w := doJSON(r, "GET", "/progress", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var sum progress.Summary
	decode(t, w, &sum)

	if sum.TotalQuests != 3 || sum.CompletedQuests != 2 {
		t.Errorf("expected 3 records with 2 completed, got %d/%d", sum.TotalQuests, sum.CompletedQuests)
	}
	if sum.CurrentStreak != 2 {
		t.Errorf("expected 2-day streak, got %d", sum.CurrentStreak)
	}
	if sum.CategoriesCompleted[quest.CategoryMindfulness] != 1 || sum.CategoriesCompleted[quest.CategoryCreative] != 1 {
		t.Errorf("unexpected category counts: %v", sum.CategoriesCompleted)
	}
	balance, _ := rewards.Total(db.DB, u.ID)
	if sum.TotalPoints != balance {
		t.Errorf("summary points %d do not match ledger %d", sum.TotalPoints, balance)
	}
	if len(sum.CompletedQuestDetails) != 2 || sum.CompletedQuestDetails[0].QuestID != "quest_creative_001" {
		t.Errorf("expected newest completion first, got %+v", sum.CompletedQuestDetails)
	}

	titles := map[string]bool{}
	for _, a := range sum.RecentAchievements {
		titles[a.Title] = true
	}
	if !titles["First Quest Complete"] {
		t.Errorf("expected first-quest achievement, got %+v", sum.RecentAchievements)
	}
	if len(sum.RecentAchievements) > progress.MaxAchievements {
		t.Errorf("too many achievements: %d", len(sum.RecentAchievements))
	}
}

func TestPointsHandler(t *testing.T) {
	setupTestDB(t)
	u := seedUser(t, "sam", user.RoleUser)
	if err := rewards.Award(db.DB, u.ID, 50, rewards.SourceAssessment, ""); err != nil {
		t.Fatalf("award: %v", err)
	}
	if err := rewards.Award(db.DB, u.ID, 15, rewards.SourceQuestCompletion, "quest_mindful_001"); err != nil {
		t.Fatalf("award: %v", err)
	}

	w := doJSON(newUserRouter(u.ID), "GET", "/points", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		SparkPoints []rewards.SparkPoints `json:"sparkPoints"`
		TotalPoints int                   `json:"totalPoints"`
	}
	decode(t, w, &resp)
	if resp.TotalPoints != 65 || len(resp.SparkPoints) != 2 {
		t.Errorf("expected 2 rows totalling 65, got %d rows totalling %d", len(resp.SparkPoints), resp.TotalPoints)
	}
}
