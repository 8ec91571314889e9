package api

import (
	"net/http"
	"testing"

	"solo-sparks/internal/db"
	"solo-sparks/internal/profile"
	"solo-sparks/internal/rewards"
	"solo-sparks/internal/user"
)

func validAssessment() profile.Input {
	return profile.Input{
		Traits: profile.Traits{
			profile.TraitIntroversion: 8,
			profile.TraitOpenness:     6,
		},
		EmotionalNeeds: profile.EmotionalNeeds{profile.NeedMindfulness: true},
		Preferences:    profile.Preferences{profile.PrefOutdoorActivities: true},
	}
}

func TestGetProfileHandler_NoProfile(t *testing.T) {
	setupTestDB(t)
	u := seedUser(t, "sam", user.RoleUser)

	w := doJSON(newUserRouter(u.ID), "GET", "/profile", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	if !contains(w.Body.String(), `"profile":null`) {
		t.Errorf("expected null profile, got: %s", w.Body.String())
	}
}

func TestSaveProfileHandler_AwardsAssessmentPoints(t *testing.T) {
	setupTestDB(t)
	u := seedUser(t, "sam", user.RoleUser)
	r := newUserRouter(u.ID)

	w := doJSON(r, "POST", "/profile", validAssessment())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Profile      profile.Profile `json:"profile"`
		PointsEarned int             `json:"pointsEarned"`
	}
	decode(t, w, &resp)
	if resp.PointsEarned != rewards.AssessmentPoints {
		t.Errorf("expected %d points, got %d", rewards.AssessmentPoints, resp.PointsEarned)
	}
	if got := resp.Profile.Traits.Data()[profile.TraitIntroversion]; got != 8 {
		t.Errorf("expected introversion 8, got %d", got)
	}

	total, err := rewards.Total(db.DB, u.ID)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != rewards.AssessmentPoints {
		t.Errorf("expected balance %d, got %d", rewards.AssessmentPoints, total)
	}

	w = doJSON(r, "GET", "/profile", nil)
	if !contains(w.Body.String(), `"introversion":8`) {
		t.Errorf("expected stored profile, got: %s", w.Body.String())
	}
}

func TestSaveProfileHandler_ReplacesProfile(t *testing.T) {
	setupTestDB(t)
	u := seedUser(t, "sam", user.RoleUser)
	r := newUserRouter(u.ID)

	doJSON(r, "POST", "/profile", validAssessment())
	next := profile.Input{Traits: profile.Traits{profile.TraitIntroversion: 2}}
	w := doJSON(r, "POST", "/profile", next)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	p, err := profile.Get(db.DB, u.ID)
	if err != nil || p == nil {
		t.Fatalf("profile missing: %v", err)
	}
	in := p.Input()
	if in.Traits[profile.TraitIntroversion] != 2 || len(in.EmotionalNeeds) != 0 {
		t.Errorf("expected profile to be replaced wholesale, got %+v", in)
	}
}

func TestSaveProfileHandler_RejectsInvalid(t *testing.T) {
	setupTestDB(t)
	u := seedUser(t, "sam", user.RoleUser)
	r := newUserRouter(u.ID)

	cases := map[string]string{
		"trait out of range": `{"traits":{"introversion":11}}`,
		"unknown trait":      `{"traits":{"charisma":5}}`,
		"unknown need":       `{"emotionalNeeds":{"fame":true}}`,
		"malformed":          `{"traits":`,
	}
	for name, body := range cases {
		w := doJSON(r, "POST", "/profile", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d: %s", name, w.Code, w.Body.String())
		}
	}

	total, _ := rewards.Total(db.DB, u.ID)
	if total != 0 {
		t.Errorf("rejected assessments must not award points, balance %d", total)
	}
}
