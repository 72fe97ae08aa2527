package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// Paths served by FakeAPI, relative to its URL().
const (
	PathAuthenticate = "/TokenAuth/Authenticate"
	PathProjects     = "/services/app/Project/getAll"
	PathQuantities   = "/services/app/Project/GetQuantityProject"
	PathSaveProject  = "/services/app/Project/Save"
	PathCustomers    = "/services/app/Customer/GetAll"
	PathSaveCustomer = "/services/app/Customer/Save"
	PathUsers        = "/services/app/User/GetUserNotPagging"
	PathTasks        = "/services/app/Task/GetAll"
	PathBranches     = "/services/app/Branch/GetAllBranchFilter"
)

// RecordedRequest is one request received by FakeAPI.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// DecodeBody unmarshals the recorded JSON body into v.
func (r RecordedRequest) DecodeBody(t testing.TB, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("decoding %s body: %v", r.Path, err)
	}
}

// FakeAPI is an in-process Timesheet API. Fields may be changed between
// calls; access is guarded by the server's own lock.
type FakeAPI struct {
	server *httptest.Server

	mu          sync.Mutex
	Credentials map[string]string
	Token       string
	AuthUser    string
	Users       []domain.User
	Customers   []domain.Customer
	Tasks       []domain.Task
	Branches    []domain.Branch
	Projects    []domain.Project
	Quantities  []domain.ProjectQuantity

	// OmitCustomerID makes Customer/Save return a null result.
	OmitCustomerID bool

	failures   map[string]int
	rejections map[string]string
	requests   []RecordedRequest
	nextID     int64
}

// NewFakeAPI starts a FakeAPI that accepts "admin"/"secret" and is closed
// when the test ends.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		Credentials: map[string]string{"admin": "secret"},
		Token:       "fake-token",
		AuthUser:    "admin",
		failures:    map[string]int{},
		rejections:  map[string]string{},
		nextID:      1000,
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

// URL is the API base URL, ending in "/api".
func (f *FakeAPI) URL() string { return f.server.URL + "/api" }

// Close stops the server early; later calls fail at the transport level.
func (f *FakeAPI) Close() { f.server.Close() }

// FailWith makes every request to path answer with status.
func (f *FakeAPI) FailWith(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = status
}

// RejectWith makes path answer 200 with success:false and message.
func (f *FakeAPI) RejectWith(path, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejections[path] = message
}

// Reset clears injected failures and rejections.
func (f *FakeAPI) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = map[string]int{}
	f.rejections = map[string]string{}
}

// Requests returns a copy of every request received so far.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// RequestsTo returns the requests received on path.
func (f *FakeAPI) RequestsTo(path string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range f.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// LastRequest returns the most recent request on path.
func (f *FakeAPI) LastRequest(path string) (RecordedRequest, bool) {
	reqs := f.RequestsTo(path)
	if len(reqs) == 0 {
		return RecordedRequest{}, false
	}
	return reqs[len(reqs)-1], true
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, "/api")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, RecordedRequest{
		Method: r.Method,
		Path:   path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})

	if status, ok := f.failures[path]; ok {
		writeJSON(w, status, map[string]any{"success": false, "error": map[string]any{"message": http.StatusText(status)}})
		return
	}
	if strings.HasPrefix(path, "/services/app/") && r.Header.Get("Authorization") != "Bearer "+f.Token {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "unAuthorizedRequest": true, "error": map[string]any{"message": "Current user did not login to the application!"}})
		return
	}
	if msg, ok := f.rejections[path]; ok {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "result": nil, "error": map[string]any{"message": msg}})
		return
	}

	switch path {
	case PathAuthenticate:
		f.authenticate(w, body)
	case PathProjects:
		f.ok(w, f.filterProjects(r.URL.Query()))
	case PathQuantities:
		f.ok(w, f.Quantities)
	case PathSaveProject:
		f.saveProject(w, body)
	case PathCustomers:
		f.ok(w, f.Customers)
	case PathSaveCustomer:
		f.saveCustomer(w, body)
	case PathUsers:
		f.ok(w, wireUsers(f.Users))
	case PathTasks:
		f.ok(w, f.Tasks)
	case PathBranches:
		f.ok(w, f.Branches)
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false})
	}
}

func (f *FakeAPI) ok(w http.ResponseWriter, result any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "result": result, "error": nil})
}

func (f *FakeAPI) authenticate(w http.ResponseWriter, body []byte) {
	var in struct {
		UserNameOrEmailAddress string `json:"userNameOrEmailAddress"`
		Password               string `json:"password"`
	}
	_ = json.Unmarshal(body, &in)
	if want, ok := f.Credentials[in.UserNameOrEmailAddress]; !ok || want != in.Password {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": map[string]any{"message": "Invalid user name or password"}})
		return
	}
	f.ok(w, map[string]any{
		"accessToken":     f.Token,
		"expireInSeconds": 86400,
		"userId":          42,
		"userName":        f.AuthUser,
	})
}

func (f *FakeAPI) filterProjects(q url.Values) []domain.Project {
	search := strings.ToLower(q.Get("search"))
	out := []domain.Project{}
	for _, p := range f.Projects {
		if s := q.Get("status"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || int(p.Status) != n {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Code), search) &&
			!strings.Contains(strings.ToLower(p.CustomerName), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (f *FakeAPI) saveProject(w http.ResponseWriter, body []byte) {
	var in struct {
		Name        string  `json:"name"`
		Code        string  `json:"code"`
		CustomerID  int64   `json:"customerId"`
		StartDate   string  `json:"startDate"`
		EndDate     string  `json:"endDate"`
		ProjectType string  `json:"projectType"`
		UserIDs     []int64 `json:"userIds"`
	}
	if err := json.Unmarshal(body, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false})
		return
	}
	var customer *domain.Customer
	for i := range f.Customers {
		if f.Customers[i].ID == in.CustomerID {
			customer = &f.Customers[i]
		}
	}
	if customer == nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": map[string]any{"message": "Customer not found"}})
		return
	}
	f.nextID++
	p := domain.Project{
		ID:           f.nextID,
		Name:         in.Name,
		Code:         in.Code,
		CustomerName: customer.Name,
		ActiveMember: len(in.UserIDs),
		TimeStart:    in.StartDate,
		TimeEnd:      in.EndDate,
		Status:       domain.ProjectActive,
		ProjectType:  in.ProjectType,
	}
	f.Projects = append(f.Projects, p)
	f.ok(w, map[string]any{"id": p.ID, "name": p.Name, "code": p.Code})
}

func (f *FakeAPI) saveCustomer(w http.ResponseWriter, body []byte) {
	var in domain.Customer
	if err := json.Unmarshal(body, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false})
		return
	}
	f.nextID++
	in.ID = f.nextID
	f.Customers = append(f.Customers, in)
	if f.OmitCustomerID {
		f.ok(w, nil)
		return
	}
	f.ok(w, in)
}

// wireUsers renders users the way the user endpoint does, with the
// emailAddress and branchDisplayName field names.
func wireUsers(users []domain.User) []map[string]any {
	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, map[string]any{
			"id":                u.ID,
			"name":              u.Name,
			"emailAddress":      u.Email,
			"branchDisplayName": u.Branch,
			"type":              int(u.Type),
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
