package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/kirnik55/building-app/database"
	"github.com/kirnik55/building-app/models"
)

func createProjectHTTP(t *testing.T, app *fiber.App, token, name string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/projects", token, map[string]string{
		"name":     name,
		"customer": "Acme",
	})
	wantStatus(t, resp, http.StatusCreated)
	var body struct {
		ID string `json:"id"`
	}
	decode(t, resp, &body)
	return body.ID
}

func TestDefectRoundTrip(t *testing.T) {
	app := newTestApp(t)
	manager := createUser(t, "manager@example.com", "pass12345", models.RoleManager)
	token := tokenFor(t, manager)
	projectID := createProjectHTTP(t, app, token, "Office")

	resp := doJSON(t, app, http.MethodPost, "/api/defects", token, map[string]string{
		"project":     projectID,
		"title":       "Fogged window",
		"description": "Condensation inside the glazing",
		"priority":    "high",
		"due_date":    "2026-10-01",
	})
	wantStatus(t, resp, http.StatusCreated)

	var created defectBody
	decode(t, resp, &created)
	if created.ID == "" || created.CreatedAt == "" || created.UpdatedAt == "" {
		t.Fatal("server-assigned fields must be populated")
	}
	if created.CreatedAt != created.UpdatedAt {
		t.Errorf("on creation updated_at (%s) must equal created_at (%s)", created.UpdatedAt, created.CreatedAt)
	}
	if created.CreatedBy != manager.ID.String() {
		t.Errorf("created_by = %s, want actor %s", created.CreatedBy, manager.ID)
	}
	if created.Status != "new" {
		t.Errorf("status = %s, want new", created.Status)
	}
	if created.DueDate == nil || *created.DueDate != "2026-10-01" {
		t.Errorf("due_date = %v, want 2026-10-01", created.DueDate)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/defects/"+created.ID, token, nil)
	wantStatus(t, resp, http.StatusOK)
	var fetched defectBody
	decode(t, resp, &fetched)
	if fetched.ID != created.ID || fetched.Title != created.Title ||
		fetched.Description != created.Description || fetched.Priority != created.Priority ||
		fetched.Status != created.Status || fetched.Project != created.Project ||
		fetched.CreatedBy != created.CreatedBy {
		t.Errorf("fetched defect differs from created:\n got %+v\nwant %+v", fetched, created)
	}
	if fetched.DueDate == nil || *fetched.DueDate != *created.DueDate {
		t.Errorf("fetched due_date = %v, want %v", fetched.DueDate, created.DueDate)
	}
}

func TestDefectDefaultsToMediumPriority(t *testing.T) {
	app := newTestApp(t)
	manager := createUser(t, "manager@example.com", "pass12345", models.RoleManager)
	token := tokenFor(t, manager)
	projectID := createProjectHTTP(t, app, token, "Office")

	resp := doJSON(t, app, http.MethodPost, "/api/defects", token, map[string]string{
		"project": projectID,
		"title":   "No priority given",
	})
	wantStatus(t, resp, http.StatusCreated)
	var created defectBody
	decode(t, resp, &created)
	if created.Priority != "medium" {
		t.Errorf("priority = %s, want medium", created.Priority)
	}
}

func TestDefectCreateValidation(t *testing.T) {
	app := newTestApp(t)
	manager := createUser(t, "manager@example.com", "pass12345", models.RoleManager)
	token := tokenFor(t, manager)
	projectID := createProjectHTTP(t, app, token, "Office")

	cases := []map[string]string{
		{"project": projectID},                                                // no title
		{"project": "not-a-uuid", "title": "x"},                               // bad project id
		{"project": projectID, "title": "x", "priority": "urgent"},            // unknown priority
		{"project": projectID, "title": "x", "status": "done"},                // unknown status
		{"project": projectID, "title": "x", "due_date": "01.10.2026"},        // bad date
		{"project": "11111111-1111-1111-1111-111111111111", "title": "x"},     // missing project
	}
	for i, body := range cases {
		resp := doJSON(t, app, http.MethodPost, "/api/defects", token, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, resp.StatusCode)
		}
	}
}

func TestEngineerListScopingHTTP(t *testing.T) {
	app := newTestApp(t)
	manager := createUser(t, "manager@example.com", "pass12345", models.RoleManager)
	eng1 := createUser(t, "eng1@example.com", "pass12345", models.RoleEngineer)
	eng2 := createUser(t, "eng2@example.com", "pass12345", models.RoleEngineer)
	token := tokenFor(t, manager)
	projectID := createProjectHTTP(t, app, token, "Office")

	mineID := createAssignedDefect(t, app, token, projectID, eng1.ID.String())
	otherID := createAssignedDefect(t, app, token, projectID, eng2.ID.String())

	resp := doJSON(t, app, http.MethodGet, "/api/defects", tokenFor(t, eng1), nil)
	wantStatus(t, resp, http.StatusOK)
	var list defectListBody
	decode(t, resp, &list)
	if list.Count != 1 || len(list.Results) != 1 {
		t.Fatalf("engineer list: count = %d, want 1", list.Count)
	}
	if list.Results[0].ID != mineID {
		t.Errorf("engineer sees %s, want %s", list.Results[0].ID, mineID)
	}

	// the other defect is invisible even by direct id
	resp = doJSON(t, app, http.MethodGet, "/api/defects/"+otherID, tokenFor(t, eng1), nil)
	wantStatus(t, resp, http.StatusNotFound)
}

// createAssignedDefect creates a defect over HTTP and assigns it.
func createAssignedDefect(t *testing.T, app *fiber.App, token, projectID, assigneeID string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/defects", token, map[string]string{
		"project": projectID,
		"title":   "defect",
	})
	wantStatus(t, resp, http.StatusCreated)
	var created defectBody
	decode(t, resp, &created)

	resp = doJSON(t, app, http.MethodPatch, "/api/defects/"+created.ID+"/assign", token, map[string]string{
		"assignee": assigneeID,
	})
	wantStatus(t, resp, http.StatusOK)
	return created.ID
}

func TestAssignRules(t *testing.T) {
	app := newTestApp(t)
	manager := createUser(t, "manager@example.com", "pass12345", models.RoleManager)
	lead := createUser(t, "lead@example.com", "pass12345", models.RoleLead)
	eng := createUser(t, "eng@example.com", "pass12345", models.RoleEngineer)
	token := tokenFor(t, manager)
	projectID := createProjectHTTP(t, app, token, "Office")

	resp := doJSON(t, app, http.MethodPost, "/api/defects", token, map[string]string{
		"project": projectID,
		"title":   "defect",
	})
	wantStatus(t, resp, http.StatusCreated)
	var created defectBody
	decode(t, resp, &created)
	assignPath := "/api/defects/" + created.ID + "/assign"

	// engineers never assign, whatever the target
	resp = doJSON(t, app, http.MethodPatch, assignPath, tokenFor(t, eng), map[string]string{
		"assignee": eng.ID.String(),
	})
	wantStatus(t, resp, http.StatusForbidden)

	// the target must be an engineer, not a lead
	resp = doJSON(t, app, http.MethodPatch, assignPath, token, map[string]string{
		"assignee": lead.ID.String(),
	})
	wantStatus(t, resp, http.StatusBadRequest)

	// unknown target user
	resp = doJSON(t, app, http.MethodPatch, assignPath, token, map[string]string{
		"assignee": "22222222-2222-2222-2222-222222222222",
	})
	wantStatus(t, resp, http.StatusBadRequest)

	// managers assign engineers
	resp = doJSON(t, app, http.MethodPatch, assignPath, token, map[string]string{
		"assignee": eng.ID.String(),
	})
	wantStatus(t, resp, http.StatusOK)
	var assigned defectBody
	decode(t, resp, &assigned)
	if assigned.Assignee == nil || *assigned.Assignee != eng.ID.String() {
		t.Fatalf("assignee = %v, want %s", assigned.Assignee, eng.ID)
	}

	// leads may assign too
	resp = doJSON(t, app, http.MethodPatch, assignPath, tokenFor(t, lead), map[string]string{
		"assignee": eng.ID.String(),
	})
	wantStatus(t, resp, http.StatusOK)

	// null clears, repeatably
	for i := 0; i < 2; i++ {
		resp = doJSON(t, app, http.MethodPatch, assignPath, token, map[string]interface{}{
			"assignee": nil,
		})
		wantStatus(t, resp, http.StatusOK)
		var cleared defectBody
		decode(t, resp, &cleared)
		if cleared.Assignee != nil {
			t.Fatalf("round %d: assignee = %v, want null", i+1, cleared.Assignee)
		}
	}

	// missing defect
	resp = doJSON(t, app, http.MethodPatch, "/api/defects/33333333-3333-3333-3333-333333333333/assign", token, map[string]interface{}{
		"assignee": nil,
	})
	wantStatus(t, resp, http.StatusNotFound)
}

func TestUpdateDefectStatusJumps(t *testing.T) {
	app := newTestApp(t)
	manager := createUser(t, "manager@example.com", "pass12345", models.RoleManager)
	token := tokenFor(t, manager)
	projectID := createProjectHTTP(t, app, token, "Office")

	resp := doJSON(t, app, http.MethodPost, "/api/defects", token, map[string]string{
		"project": projectID,
		"title":   "defect",
	})
	wantStatus(t, resp, http.StatusCreated)
	var created defectBody
	decode(t, resp, &created)

	// no transition graph: new -> resolved directly is fine
	resp = doJSON(t, app, http.MethodPatch, "/api/defects/"+created.ID, token, map[string]string{
		"status": "resolved",
	})
	wantStatus(t, resp, http.StatusOK)
	var updated defectBody
	decode(t, resp, &updated)
	if updated.Status != "resolved" {
		t.Errorf("status = %s, want resolved", updated.Status)
	}
	if updated.Title != created.Title {
		t.Error("partial update touched unrelated fields")
	}

	resp = doJSON(t, app, http.MethodPatch, "/api/defects/"+created.ID, token, map[string]string{
		"status": "broken",
	})
	wantStatus(t, resp, http.StatusBadRequest)
}

func TestResolvedView(t *testing.T) {
	app := newTestApp(t)
	manager := createUser(t, "manager@example.com", "pass12345", models.RoleManager)
	token := tokenFor(t, manager)
	projectID := createProjectHTTP(t, app, token, "Office")

	resp := doJSON(t, app, http.MethodPost, "/api/defects", token, map[string]string{
		"project": projectID, "title": "open one",
	})
	wantStatus(t, resp, http.StatusCreated)

	resp = doJSON(t, app, http.MethodPost, "/api/defects", token, map[string]string{
		"project": projectID, "title": "closed one", "status": "resolved",
	})
	wantStatus(t, resp, http.StatusCreated)

	resp = doJSON(t, app, http.MethodGet, "/api/defects/resolved", token, nil)
	wantStatus(t, resp, http.StatusOK)
	var list defectListBody
	decode(t, resp, &list)
	if list.Count != 1 || list.Results[0].Status != "resolved" {
		t.Errorf("resolved view: %+v", list)
	}
}

func TestDeleteDefectHTTP(t *testing.T) {
	app := newTestApp(t)
	manager := createUser(t, "manager@example.com", "pass12345", models.RoleManager)
	token := tokenFor(t, manager)
	projectID := createProjectHTTP(t, app, token, "Office")

	resp := doJSON(t, app, http.MethodPost, "/api/defects", token, map[string]string{
		"project": projectID, "title": "doomed",
	})
	wantStatus(t, resp, http.StatusCreated)
	var created defectBody
	decode(t, resp, &created)

	resp = doJSON(t, app, http.MethodPost, "/api/comments", token, map[string]string{
		"defect": created.ID, "text": "goes with it",
	})
	wantStatus(t, resp, http.StatusCreated)

	resp = doJSON(t, app, http.MethodDelete, "/api/defects/"+created.ID, token, nil)
	wantStatus(t, resp, http.StatusNoContent)

	resp = doJSON(t, app, http.MethodGet, "/api/defects/"+created.ID, token, nil)
	wantStatus(t, resp, http.StatusNotFound)

	comments, err := database.ListComments(nil)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 0 {
		t.Error("comments survived defect deletion")
	}
}
