package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"absenta_backend/internals/configs"
	"absenta_backend/internals/constants"
	"absenta_backend/internals/seeds"
	"absenta_backend/internals/storage"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	configs.JWTSecret = "secret-de-test"

	store, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	seeds.RunAll(store)

	app := fiber.New()
	SetupRoutes(app, store)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, email, password, username string) string {
	t.Helper()
	body := map[string]string{"email": email, "password": password}
	if username != "" {
		body["username"] = username
	}
	status, out := doJSON(t, app, http.MethodPost, "/api/auth/login", "", body)
	require.Equal(t, http.StatusOK, status, "login %s", email)
	data := out["data"].(map[string]any)
	return data["token"].(string)
}

func dataID(t *testing.T, out map[string]any) string {
	t.Helper()
	data, ok := out["data"].(map[string]any)
	require.True(t, ok, "data manquant: %v", out)
	id, ok := data["id"].(string)
	require.True(t, ok)
	return id
}

func TestHealthIsPublic(t *testing.T) {
	app := newTestApp(t)
	status, out := doJSON(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, out["success"])
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@cfm.ofppt.ma", "password": "mauvais",
	})
	require.Equal(t, http.StatusUnauthorized, status)

	// un formateur doit fournir son nom d'utilisateur
	status, out := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "formateur@cfm.ofppt.ma", "password": "Form@6Vz!32Jr#Lc",
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.Contains(t, out["errors"].(map[string]any), "username")

	status, out = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "formateur@cfm.ofppt.ma", "password": "Form@6Vz!32Jr#Lc", "username": "Karim",
	})
	require.Equal(t, http.StatusOK, status)
	data := out["data"].(map[string]any)
	user := data["user"].(map[string]any)
	require.Equal(t, "formateur", user["role"])
	require.Equal(t, "Karim", user["username"])
	require.NotEmpty(t, data["token"])
}

func TestApiRequiresToken(t *testing.T) {
	app := newTestApp(t)
	status, _ := doJSON(t, app, http.MethodGet, "/api/dashboard", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestUnknownRoleTokenRejected(t *testing.T) {
	app := newTestApp(t)

	// token correctement signé mais avec un rôle hors nomenclature
	now := time.Now()
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "intrus@cfm.ofppt.ma",
		"role": "superviseur",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}).SignedString([]byte(configs.JWTSecret))
	require.NoError(t, err)

	status, out := doJSON(t, app, http.MethodGet, "/api/dashboard", forged, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Rôle inconnu", out["message"])
}

func TestRoleGates(t *testing.T) {
	app := newTestApp(t)
	formateur := login(t, app, "formateur@cfm.ofppt.ma", "Form@6Vz!32Jr#Lc", "Karim")
	admin := login(t, app, "admin@cfm.ofppt.ma", "Adm#8rP!29Ws@ZqK", "")

	// le formateur saisit mais n'administre pas
	status, _ := doJSON(t, app, http.MethodGet, "/api/absences/entry/seances", formateur, nil)
	require.Equal(t, http.StatusOK, status)
	status, out := doJSON(t, app, http.MethodGet, "/api/absences/admin/", formateur, nil)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, constants.RoleErrorSupervisor("l'administration des absences"), out["message"])
	status, out = doJSON(t, app, http.MethodGet, "/api/filieres/", formateur, nil)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, constants.RoleErrorSupervisor("la gestion des stagiaires"), out["message"])

	// l'admin administre mais ne saisit pas
	status, _ = doJSON(t, app, http.MethodGet, "/api/absences/admin/", admin, nil)
	require.Equal(t, http.StatusOK, status)
	status, out = doJSON(t, app, http.MethodGet, "/api/absences/entry/seances", admin, nil)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, constants.RoleErrorFormateur("la saisie des absences"), out["message"])

	// les deux voient le tableau de bord
	status, _ = doJSON(t, app, http.MethodGet, "/api/dashboard", formateur, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodGet, "/api/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestMenuFollowsRole(t *testing.T) {
	app := newTestApp(t)
	formateur := login(t, app, "formateur@cfm.ofppt.ma", "Form@6Vz!32Jr#Lc", "Karim")

	status, out := doJSON(t, app, http.MethodGet, "/api/navigation/menu", formateur, nil)
	require.Equal(t, http.StatusOK, status)
	items := out["data"].([]any)
	require.Equal(t, []any{"dashboard", "absence-entry", "about"}, items)
}

func TestEntityCrudAndDeleteGuards(t *testing.T) {
	app := newTestApp(t)
	admin := login(t, app, "admin@cfm.ofppt.ma", "Adm#8rP!29Ws@ZqK", "")

	status, out := doJSON(t, app, http.MethodPost, "/api/filieres/", admin, map[string]string{
		"code": "GE", "nom": "Gestion des Entreprises",
	})
	require.Equal(t, http.StatusCreated, status)
	filiereID := dataID(t, out)

	status, out = doJSON(t, app, http.MethodPost, "/api/classes/", admin, map[string]string{
		"nom": "GE-101", "filiereId": filiereID,
	})
	require.Equal(t, http.StatusCreated, status)
	classeID := dataID(t, out)

	status, out = doJSON(t, app, http.MethodPost, "/api/stagiaires/", admin, map[string]string{
		"nom": "Alami", "prenom": "Yassine", "sexe": "M", "classeId": classeID,
	})
	require.Equal(t, http.StatusCreated, status)
	studentID := dataID(t, out)

	// suppressions bloquées de haut en bas
	status, out = doJSON(t, app, http.MethodDelete, "/api/filieres/"+filiereID, admin, nil)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, storage.MsgFiliereHasClasses, out["message"])

	status, out = doJSON(t, app, http.MethodDelete, "/api/classes/"+classeID, admin, nil)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, storage.MsgClasseHasStudents, out["message"])

	// puis débloquées de bas en haut
	status, _ = doJSON(t, app, http.MethodDelete, "/api/stagiaires/"+studentID, admin, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodDelete, "/api/classes/"+classeID, admin, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodDelete, "/api/filieres/"+filiereID, admin, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestAbsenceLifecycle(t *testing.T) {
	app := newTestApp(t)
	admin := login(t, app, "admin@cfm.ofppt.ma", "Adm#8rP!29Ws@ZqK", "")
	formateur := login(t, app, "formateur@cfm.ofppt.ma", "Form@6Vz!32Jr#Lc", "Karim")
	surveillant := login(t, app, "surveillant@cfm.ofppt.ma", "Surv!4Mn*86Qa&Bv", "")

	_, out := doJSON(t, app, http.MethodPost, "/api/filieres/", admin, map[string]string{
		"code": "GE", "nom": "Gestion",
	})
	filiereID := dataID(t, out)
	_, out = doJSON(t, app, http.MethodPost, "/api/classes/", admin, map[string]string{
		"nom": "GE-101", "filiereId": filiereID,
	})
	classeID := dataID(t, out)
	_, out = doJSON(t, app, http.MethodPost, "/api/stagiaires/", admin, map[string]string{
		"nom": "Alami", "prenom": "Yassine", "sexe": "M", "classeId": classeID,
	})
	absentID := dataID(t, out)
	_, out = doJSON(t, app, http.MethodPost, "/api/stagiaires/", admin, map[string]string{
		"nom": "Bennis", "prenom": "Sara", "sexe": "F", "classeId": classeID,
	})
	lateID := dataID(t, out)

	date := "2026-03-02"
	session := "08:30-11:00"

	// absent ET retard sur la même séance : refusé
	status, _ := doJSON(t, app, http.MethodPost, "/api/absences/entry/", formateur, map[string]any{
		"classeId": classeID, "sessionId": session, "date": date,
		"absentIds": []string{absentID}, "lateIds": []string{absentID},
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)

	status, out = doJSON(t, app, http.MethodPost, "/api/absences/entry/", formateur, map[string]any{
		"classeId": classeID, "sessionId": session, "date": date,
		"absentIds": []string{absentID}, "lateIds": []string{lateID},
	})
	require.Equal(t, http.StatusCreated, status)
	created := out["data"].([]any)
	require.Len(t, created, 2)
	first := created[0].(map[string]any)
	require.Equal(t, "Karim", first["formateur"], "le formateur vient du token, pas du corps")
	absenceID := first["id"].(string)

	// la feuille d'appel reflète la saisie
	sheetPath := fmt.Sprintf("/api/absences/entry/sheet?classe_id=%s&date=%s&session_id=%s", classeID, date, session)
	status, out = doJSON(t, app, http.MethodGet, sheetPath, formateur, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, out["data"].([]any), 2)

	// côté admin : deux enregistrements en attente
	status, out = doJSON(t, app, http.MethodGet, "/api/absences/admin/?filter=pending", surveillant, nil)
	require.Equal(t, http.StatusOK, status)
	adminData := out["data"].(map[string]any)
	require.Len(t, adminData["items"].([]any), 2)
	counts := adminData["counts"].(map[string]any)
	require.Equal(t, float64(2), counts["pending"])
	require.Equal(t, float64(0), counts["validated"])

	// validation, signée du nom affiché du valideur
	status, out = doJSON(t, app, http.MethodPost, "/api/absences/admin/"+absenceID+"/validate", surveillant, nil)
	require.Equal(t, http.StatusOK, status)
	validatedRow := out["data"].(map[string]any)
	require.Equal(t, true, validatedRow["validated"])
	require.Equal(t, "surveillant", validatedRow["validatedBy"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/absences/admin/inconnu/validate", surveillant, nil)
	require.Equal(t, http.StatusNotFound, status)

	// justification vide refusée
	status, _ = doJSON(t, app, http.MethodPost, "/api/absences/admin/"+absenceID+"/justify", surveillant, map[string]string{
		"justification": "",
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)

	status, out = doJSON(t, app, http.MethodPost, "/api/absences/admin/"+absenceID+"/justify", surveillant, map[string]string{
		"justification": "Certificat médical",
	})
	require.Equal(t, http.StatusOK, status)
	data := out["data"].(map[string]any)
	require.Equal(t, true, data["validated"])
	require.Equal(t, "Certificat médical", data["justification"])

	status, out = doJSON(t, app, http.MethodGet, "/api/absences/admin/?filter=pending", surveillant, nil)
	require.Equal(t, http.StatusOK, status)
	adminData = out["data"].(map[string]any)
	require.Len(t, adminData["items"].([]any), 1, "il ne reste qu'un enregistrement en attente")
	counts = adminData["counts"].(map[string]any)
	require.Equal(t, float64(1), counts["pending"])
	require.Equal(t, float64(1), counts["validated"])
	require.Equal(t, float64(2), counts["total"])
}

func TestEntryRejectsWholeBatchOnUnknownStudent(t *testing.T) {
	app := newTestApp(t)
	admin := login(t, app, "admin@cfm.ofppt.ma", "Adm#8rP!29Ws@ZqK", "")
	formateur := login(t, app, "formateur@cfm.ofppt.ma", "Form@6Vz!32Jr#Lc", "Karim")
	surveillant := login(t, app, "surveillant@cfm.ofppt.ma", "Surv!4Mn*86Qa&Bv", "")

	_, out := doJSON(t, app, http.MethodPost, "/api/filieres/", admin, map[string]string{
		"code": "GE", "nom": "Gestion",
	})
	filiereID := dataID(t, out)
	_, out = doJSON(t, app, http.MethodPost, "/api/classes/", admin, map[string]string{
		"nom": "GE-101", "filiereId": filiereID,
	})
	classeID := dataID(t, out)
	_, out = doJSON(t, app, http.MethodPost, "/api/stagiaires/", admin, map[string]string{
		"nom": "Alami", "prenom": "Yassine", "sexe": "M", "classeId": classeID,
	})
	studentID := dataID(t, out)

	// un id valide et un id étranger : tout le lot est refusé
	status, out := doJSON(t, app, http.MethodPost, "/api/absences/entry/", formateur, map[string]any{
		"classeId": classeID, "sessionId": "08:30-11:00", "date": "2026-03-02",
		"absentIds": []string{studentID, uuid.NewString()},
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.Contains(t, out["errors"].(map[string]any), "absentIds")

	// aucun marquage n'a été enregistré, même pour l'id valide
	status, out = doJSON(t, app, http.MethodGet, "/api/absences/admin/", surveillant, nil)
	require.Equal(t, http.StatusOK, status)
	adminData := out["data"].(map[string]any)
	require.Empty(t, adminData["items"].([]any))
	require.Equal(t, float64(0), adminData["counts"].(map[string]any)["total"])
}

func TestEntryAcceptsFreeSessionID(t *testing.T) {
	app := newTestApp(t)
	admin := login(t, app, "admin@cfm.ofppt.ma", "Adm#8rP!29Ws@ZqK", "")
	formateur := login(t, app, "formateur@cfm.ofppt.ma", "Form@6Vz!32Jr#Lc", "Karim")

	_, out := doJSON(t, app, http.MethodPost, "/api/filieres/", admin, map[string]string{
		"code": "GE", "nom": "Gestion",
	})
	filiereID := dataID(t, out)
	_, out = doJSON(t, app, http.MethodPost, "/api/classes/", admin, map[string]string{
		"nom": "GE-101", "filiereId": filiereID,
	})
	classeID := dataID(t, out)
	_, out = doJSON(t, app, http.MethodPost, "/api/stagiaires/", admin, map[string]string{
		"nom": "Alami", "prenom": "Yassine", "sexe": "M", "classeId": classeID,
	})
	studentID := dataID(t, out)

	// séance hors catalogue : acceptée, l'identifiant est libre
	session := "Rattrapage 17:00-18:00"
	status, out := doJSON(t, app, http.MethodPost, "/api/absences/entry/", formateur, map[string]any{
		"classeId": classeID, "sessionId": session, "date": "2026-03-02",
		"absentIds": []string{studentID},
	})
	require.Equal(t, http.StatusCreated, status)
	created := out["data"].([]any)
	require.Len(t, created, 1)
	require.Equal(t, session, created[0].(map[string]any)["sessionId"])

	sheetPath := fmt.Sprintf("/api/absences/entry/sheet?classe_id=%s&date=2026-03-02&session_id=%s",
		classeID, "Rattrapage%2017%3A00-18%3A00")
	status, out = doJSON(t, app, http.MethodGet, sheetPath, formateur, nil)
	require.Equal(t, http.StatusOK, status)
	rows := out["data"].([]any)
	require.Len(t, rows, 1)
	require.Equal(t, "absent", rows[0].(map[string]any)["status"])
}

func TestNavigationStateRoundTrip(t *testing.T) {
	app := newTestApp(t)
	admin := login(t, app, "admin@cfm.ofppt.ma", "Adm#8rP!29Ws@ZqK", "")

	_, out := doJSON(t, app, http.MethodPost, "/api/filieres/", admin, map[string]string{
		"code": "GE", "nom": "Gestion",
	})
	filiereID := dataID(t, out)

	status, out := doJSON(t, app, http.MethodGet, "/api/navigation/state", admin, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "overview", out["data"].(map[string]any)["view"])

	status, out = doJSON(t, app, http.MethodPost, "/api/navigation/view/filiere/"+filiereID, admin, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "filiere", out["data"].(map[string]any)["view"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/navigation/view/filiere/inconnu", admin, nil)
	require.Equal(t, http.StatusNotFound, status)

	status, out = doJSON(t, app, http.MethodPost, "/api/navigation/dialog/open", admin, map[string]string{
		"kind": "classe", "parentId": filiereID,
	})
	require.Equal(t, http.StatusOK, status)
	snap := out["data"].(map[string]any)
	require.Equal(t, "filiere", snap["view"], "le dialogue ne change pas la vue")
	require.Equal(t, "classe", snap["dialog"].(map[string]any)["kind"])

	status, out = doJSON(t, app, http.MethodPost, "/api/navigation/back", admin, nil)
	require.Equal(t, http.StatusOK, status)
	snap = out["data"].(map[string]any)
	require.Equal(t, "overview", snap["view"])
	require.NotNil(t, snap["dialog"], "le retour laisse le dialogue ouvert")

	status, out = doJSON(t, app, http.MethodPost, "/api/navigation/dialog/close", admin, nil)
	require.Equal(t, http.StatusOK, status)
	require.Nil(t, out["data"].(map[string]any)["dialog"])
}
