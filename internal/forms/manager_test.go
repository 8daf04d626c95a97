package forms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mustakbalak/portal/internal/config"
	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/events"
	"github.com/mustakbalak/portal/internal/session"
	"github.com/mustakbalak/portal/internal/upstream"
	apperrors "github.com/mustakbalak/portal/pkg/util"
)

type fixture struct {
	manager    *Manager
	sessions   *session.Store
	dispatcher events.Dispatcher
}

func newFixture(t *testing.T, handler http.Handler) *fixture {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	sessions := session.NewStore(session.NewMemoryStorage(), logger)
	dispatcher := events.NewInMemoryDispatcher()
	client := upstream.New(config.BackendConfig{BaseURL: server.URL}, logger)

	manager := NewManager(Deps{
		Upstream:      client,
		Sessions:      sessions,
		Dispatcher:    dispatcher,
		Logger:        logger,
		NavigateDelay: 10 * time.Millisecond,
	})
	return &fixture{manager: manager, sessions: sessions, dispatcher: dispatcher}
}

func mustSet(t *testing.T, w interface {
	SetField(string, any) error
}, field string, value any) {
	t.Helper()
	if err := w.SetField(field, value); err != nil {
		t.Fatalf("set %s: %v", field, err)
	}
}

// seekerProfileJSON is a fully filled job-seeker profile so every step
// of the completion form validates without edits.
const seekerProfileJSON = `{"user":{
	"id":"u1","username":"amira","fullName":"Amira K","email":"a@b.co","userType":"job_seeker",
	"nationality":"QA","DOB":"1990-04-02T00:00:00Z",
	"education":[{"degree":"BSc","field":"CS","institution":"QU","graduationDate":"2012-06-01T00:00:00Z"}],
	"experience":[{"title":"Developer","company":"Acme","startDate":"2015-01-01T00:00:00Z"}],
	"certificates":[{"name":"Cloud Cert","issuer":"ACME"}],
	"fields":["Engineering"],
	"currentPosition":"Developer","company":"Acme"}}`

func loginSeeker(t *testing.T, f *fixture) {
	t.Helper()
	err := f.sessions.Login(context.Background(), "sid", "tok", domain.User{
		ID: "u1", Username: "amira", UserType: domain.UserTypeJobSeeker,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestSignupWalkAndSubmit(t *testing.T) {
	var (
		mu   sync.Mutex
		body map[string]any
	)
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/signup" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		mu.Lock()
		defer mu.Unlock()
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "User created"})
	}))

	w, err := f.manager.Start(context.Background(), "sid", FormSignup, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Account type defaults to job_seeker.
	if err := w.Next(); err != nil {
		t.Fatalf("next account type: %v", err)
	}

	if err := w.Next(); err == nil {
		t.Fatal("expected personal step to require username and full name")
	}
	mustSet(t, w, "username", "amira")
	mustSet(t, w, "fullName", "Amira K")
	if err := w.Next(); err != nil {
		t.Fatalf("next personal: %v", err)
	}

	mustSet(t, w, "email", "a@b.co")
	mustSet(t, w, "phoneNumber", "50 123 4567")
	if err := w.Next(); err != nil {
		t.Fatalf("next contact: %v", err)
	}

	mustSet(t, w, "addressType", "Villa")
	mustSet(t, w, "streetNumber", "12")
	mustSet(t, w, "streetName", "Corniche Road")
	mustSet(t, w, "district", "West Bay")
	mustSet(t, w, "city", "Doha")
	mustSet(t, w, "postalCode", "12345")
	if err := w.Next(); err != nil {
		t.Fatalf("next address: %v", err)
	}

	mustSet(t, w, "password", "Secret123")
	mustSet(t, w, "confirmPassword", "different")
	if _, err := f.manager.Submit(context.Background(), "sid", FormSignup); err == nil {
		t.Fatal("expected mismatched passwords to be rejected")
	}
	mustSet(t, w, "confirmPassword", "Secret123")

	redirect, err := f.manager.Submit(context.Background(), "sid", FormSignup)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if redirect != "/login" {
		t.Fatalf("expected /login redirect, got %q", redirect)
	}

	mu.Lock()
	defer mu.Unlock()
	if body["phoneNumber"] != "+971501234567" {
		t.Fatalf("expected formatting stripped from phone, got %v", body["phoneNumber"])
	}
	if body["Address"] != "Villa 12 Corniche Road, West Bay, Doha, 12345" {
		t.Fatalf("unexpected assembled address: %v", body["Address"])
	}
	if body["userType"] != "job_seeker" {
		t.Fatalf("unexpected user type: %v", body["userType"])
	}
}

func TestSignupPasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		message  string
	}{
		{"too short", "Ab1", "Password must be at least 8 characters"},
		{"no uppercase", "secret123", "Password must contain uppercase, lowercase and a number"},
		{"no digit", "SecretPass", "Password must contain uppercase, lowercase and a number"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fields := map[string]any{"password": tc.password, "confirmPassword": tc.password}
			err := validatePassword(fields)
			if err == nil {
				t.Fatal("expected password to be rejected")
			}
			if err.Error() != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, err.Error())
			}
		})
	}
	if err := validatePassword(map[string]any{"password": "Secret123", "confirmPassword": "Secret123"}); err != nil {
		t.Fatalf("expected valid password to pass: %v", err)
	}
}

func TestCompleteProfileRequiresLogin(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	_, err := f.manager.Start(context.Background(), "sid", FormCompleteProfile, "")
	if err == nil {
		t.Fatal("expected anonymous start to fail")
	}
	de := apperrors.ToDomainError(err)
	if de.HTTPStatus != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", de.HTTPStatus)
	}
}

func TestCompleteProfileDateGuards(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(seekerProfileJSON))
	}))
	loginSeeker(t, f)

	w, err := f.manager.Start(context.Background(), "sid", FormCompleteProfile, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	err = w.SetField("DOB", time.Now().AddDate(-17, 0, 0).Format("2006-01-02"))
	if err == nil {
		t.Fatal("expected a 17-year-old birth date to be rejected")
	}
	de := apperrors.ToDomainError(err)
	if de.Message != "You must be at least 18 years old to register" {
		t.Fatalf("unexpected message: %q", de.Message)
	}
	if got := w.Fields()["DOB"]; got != "1990-04-02" {
		t.Fatalf("expected seeded DOB kept, got %v", got)
	}

	if err := w.SetEntryField("experience", 0, "endDate", "2014-01-01"); err == nil {
		t.Fatal("expected an end date before the start date to be rejected")
	}
	if err := w.SetEntryField("experience", 0, "endDate", "2018-01-01"); err != nil {
		t.Fatalf("valid end date rejected: %v", err)
	}
	if err := w.SetEntryField("experience", 0, "startDate", "2019-01-01"); err == nil {
		t.Fatal("expected a start date after the end date to be rejected")
	}
}

func TestCompleteProfileDiffOnlySubmission(t *testing.T) {
	var (
		mu        sync.Mutex
		submitted map[string]any
	)
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(seekerProfileJSON))
		case r.Method == http.MethodPost && r.URL.Path == "/api/auth/complete-profile":
			mu.Lock()
			defer mu.Unlock()
			_ = json.NewDecoder(r.Body).Decode(&submitted)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	loginSeeker(t, f)

	w, err := f.manager.Start(context.Background(), "sid", FormCompleteProfile, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// The seeded record satisfies every step gate.
	for i := 0; i < w.StepCount()-1; i++ {
		if err := w.Next(); err != nil {
			t.Fatalf("next step %d: %v", i, err)
		}
	}

	_, err = f.manager.Submit(context.Background(), "sid", FormCompleteProfile)
	if err == nil {
		t.Fatal("expected an unedited profile submission to be rejected")
	}
	de := apperrors.ToDomainError(err)
	if de.Message != "please edit at least one field before saving" {
		t.Fatalf("unexpected message: %q", de.Message)
	}

	mustSet(t, w, "nationality", "AE")
	redirect, err := f.manager.Submit(context.Background(), "sid", FormCompleteProfile)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if redirect != "/profile" {
		t.Fatalf("expected /profile redirect, got %q", redirect)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(submitted) != 1 {
		t.Fatalf("expected only changed fields, got %v", submitted)
	}
	if submitted["nationality"] != "AE" {
		t.Fatalf("expected changed nationality, got %v", submitted)
	}
}

func TestJobEditSendsFullRecord(t *testing.T) {
	jobJSON := `{"job":{
		"id":"j1","title":"Engineer","company":"Acme","location":"Qatar","type":"Full-time",
		"description":"Build things","requirements":["Go"],"responsibilities":["Ship"],
		"benefits":["Insurance"],"skills":["Go"],
		"salary":{"min":40000,"max":90000,"currency":"QAR"},
		"experience":"Mid","education":"Bachelor","status":"Active"}}`

	var (
		mu        sync.Mutex
		submitted map[string]any
	)
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(jobJSON))
		case http.MethodPut:
			mu.Lock()
			defer mu.Unlock()
			_ = json.NewDecoder(r.Body).Decode(&submitted)
			_, _ = w.Write([]byte(jobJSON))
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	loginManager(t, f)

	w, err := f.manager.Start(context.Background(), "sid", FormJobEdit, "j1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	mustSet(t, w, "title", "Senior Engineer")
	for i := 0; i < w.StepCount()-1; i++ {
		if err := w.Next(); err != nil {
			t.Fatalf("next step %d: %v", i, err)
		}
	}
	redirect, err := f.manager.Submit(context.Background(), "sid", FormJobEdit)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if redirect != "/hiring-manager/jobs" {
		t.Fatalf("expected jobs redirect, got %q", redirect)
	}

	mu.Lock()
	defer mu.Unlock()
	// Edit mode sends the whole record, not a diff.
	if submitted["title"] != "Senior Engineer" {
		t.Fatalf("expected updated title, got %v", submitted["title"])
	}
	if submitted["description"] != "Build things" {
		t.Fatalf("expected unchanged fields included, got %v", submitted)
	}
	salary, ok := submitted["salary"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested salary, got %v", submitted["salary"])
	}
	if salary["min"].(float64) != 40000 || salary["max"].(float64) != 90000 {
		t.Fatalf("unexpected salary: %v", salary)
	}
}

func TestJobSalaryValidation(t *testing.T) {
	err := validateSalaryBounds(map[string]any{"salaryMin": "90000", "salaryMax": "40000"})
	if err == nil {
		t.Fatal("expected inverted salary range to be rejected")
	}
	err = validateSalaryBounds(map[string]any{"salaryMin": "forty", "salaryMax": "90000"})
	if err == nil {
		t.Fatal("expected non-numeric salary to be rejected")
	}
	if err := validateSalaryBounds(map[string]any{"salaryMin": "40000", "salaryMax": "90000"}); err != nil {
		t.Fatalf("expected valid range to pass: %v", err)
	}
}

func TestSubmitSchedulesFormSubmittedEvent(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "User created"})
	}))

	fired := make(chan events.Event, 1)
	f.dispatcher.Subscribe(events.EventFormSubmitted, func(_ context.Context, event events.Event) error {
		fired <- event
		return nil
	})

	walkSignup(t, f)
	if _, err := f.manager.Submit(context.Background(), "sid", FormSignup); err != nil {
		t.Fatalf("submit: %v", err)
	}

	select {
	case event := <-fired:
		payload, ok := event.Payload.(events.FormSubmittedPayload)
		if !ok {
			t.Fatalf("unexpected payload %T", event.Payload)
		}
		if payload.Form != FormSignup || payload.Redirect != "/login" {
			t.Fatalf("unexpected payload %+v", payload)
		}
	case <-time.After(time.Second):
		t.Fatal("expected the submitted event after the navigation delay")
	}

	// The form is gone once the delayed redirect fires. The drop runs
	// just after the publish, so give it a moment.
	time.Sleep(20 * time.Millisecond)
	if _, err := f.manager.Get("sid", FormSignup); err == nil {
		t.Fatal("expected the form to be dropped")
	}
}

func TestDiscardCancelsPendingRedirect(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "User created"})
	}))

	fired := make(chan events.Event, 1)
	f.dispatcher.Subscribe(events.EventFormSubmitted, func(_ context.Context, event events.Event) error {
		fired <- event
		return nil
	})

	walkSignup(t, f)
	if _, err := f.manager.Submit(context.Background(), "sid", FormSignup); err != nil {
		t.Fatalf("submit: %v", err)
	}
	f.manager.Discard("sid", FormSignup)

	select {
	case <-fired:
		t.Fatal("expected the discarded form's redirect to never fire")
	case <-time.After(100 * time.Millisecond):
	}
}

func loginManager(t *testing.T, f *fixture) {
	t.Helper()
	err := f.sessions.Login(context.Background(), "sid", "tok", domain.User{
		ID: "m1", Username: "omar", UserType: domain.UserTypeHiringManager,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
}

// walkSignup fills and advances every signup step, stopping on the
// security step ready for submission.
func walkSignup(t *testing.T, f *fixture) {
	t.Helper()
	w, err := f.manager.Start(context.Background(), "sid", FormSignup, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("next account type: %v", err)
	}
	mustSet(t, w, "username", "amira")
	mustSet(t, w, "fullName", "Amira K")
	if err := w.Next(); err != nil {
		t.Fatalf("next personal: %v", err)
	}
	mustSet(t, w, "email", "a@b.co")
	mustSet(t, w, "phoneNumber", "501234567")
	if err := w.Next(); err != nil {
		t.Fatalf("next contact: %v", err)
	}
	mustSet(t, w, "addressType", "Villa")
	mustSet(t, w, "streetNumber", "12")
	mustSet(t, w, "streetName", "Corniche Road")
	mustSet(t, w, "district", "West Bay")
	mustSet(t, w, "city", "Doha")
	mustSet(t, w, "postalCode", "12345")
	if err := w.Next(); err != nil {
		t.Fatalf("next address: %v", err)
	}
	mustSet(t, w, "password", "Secret123")
	mustSet(t, w, "confirmPassword", "Secret123")
}
