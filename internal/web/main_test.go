package web_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulldns/subdns-portal/internal/backend"
	"github.com/nulldns/subdns-portal/internal/config"
	"github.com/nulldns/subdns-portal/internal/portal"
	"github.com/nulldns/subdns-portal/internal/web"
)

const testSession = "abc123"

// fakeAPI is a subdns backend answering from canned data.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string
	added []backend.AddRecordRequest

	recordsStatus int
	renewStatus   int
	leaveStatus   int
	records       string
	domains       string
}

func (f *fakeAPI) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
}

func (f *fakeAPI) called(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0

	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}

	return n
}

func authenticated(r *http.Request) bool {
	ck, err := r.Cookie(config.DefaultSessionCookie)
	return err == nil && ck.Value == testSession
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/me", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)

		if !authenticated(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		_, _ = io.WriteString(w, `{"id":"octocat"}`)
	})
	mux.HandleFunc("GET /api/available-domains/{sub}", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)

		_, _ = io.WriteString(w, `{"subDomain":"`+r.PathValue("sub")+`","zones":[`+
			`{"name":"nulldns.top","canAdd":true},{"name":"x.com","canAdd":false}]}`)
	})
	mux.HandleFunc("GET /api/get-records/{full}", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)

		if f.recordsStatus != 0 {
			w.WriteHeader(f.recordsStatus)
			return
		}

		_, _ = io.WriteString(w, f.records)
	})
	mux.HandleFunc("POST /api/add-record", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)

		var req backend.AddRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		f.added = append(f.added, req)
		f.mu.Unlock()

		if req.Content == "refuse" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, "잘못된 레코드 값입니다.")

			return
		}

		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("GET /api/my-domains", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)

		if !authenticated(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		_, _ = io.WriteString(w, f.domains)
	})
	mux.HandleFunc("PATCH /api/update-record/{sub}/{zone}", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		w.WriteHeader(f.renewStatus)
	})
	mux.HandleFunc("DELETE /api/delete-record/{sub}/{zone}", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("DELETE /api/leave", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)

		if f.leaveStatus != 0 {
			w.WriteHeader(f.leaveStatus)
			return
		}

		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/logout", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

func newTestService(t *testing.T, api *fakeAPI) *web.Service {
	t.Helper()

	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Title: "NullDNS",
		Webserver: config.Webserver{
			Port:          8080,
			URL:           "http://localhost:8080",
			CheckAliveURI: "/checkalive",
		},
		Backend: config.Backend{
			URL:           srv.URL,
			Timeout:       2 * time.Second,
			SessionCookie: config.DefaultSessionCookie,
			LoginPath:     config.DefaultLoginPath,
		},
		Portal: config.Portal{NearExpiryDays: 30, LeavePhrase: "회원탈퇴"},
	}

	client, err := backend.New(cfg.Backend)
	require.NoError(t, err)

	return web.New(cfg, client)
}

func do(t *testing.T, s *web.Service, req *http.Request, withSession bool) (*http.Response, string) {
	t.Helper()

	if withSession {
		req.AddCookie(&http.Cookie{Name: config.DefaultSessionCookie, Value: testSession})
	}

	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	_ = resp.Body.Close()

	return resp, string(body)
}

func get(t *testing.T, s *web.Service, target string, withSession bool) (*http.Response, string) {
	t.Helper()

	return do(t, s, httptest.NewRequest(http.MethodGet, target, nil), withSession)
}

func post(t *testing.T, s *web.Service, target string, form url.Values, withSession bool) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return do(t, s, req, withSession)
}

// location splits the redirect target of resp into path and query.
func location(t *testing.T, resp *http.Response) (string, url.Values) {
	t.Helper()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	u, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)

	return u.Path, u.Query()
}

func TestHome(t *testing.T) {
	s := newTestService(t, &fakeAPI{})

	resp, body := get(t, s, "/", false)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `action="/search"`)
	assert.Contains(t, body, `href="/login"`)
}

func TestSearch(t *testing.T) {
	api := &fakeAPI{}
	s := newTestService(t, api)

	resp, body := get(t, s, "/search?q=foo", true)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "foo.nulldns.top")
	assert.Contains(t, body, "[클릭하여 등록 가능]")
	assert.Contains(t, body, `href="/domain/foo/nulldns.top?mode=new"`)
	assert.Contains(t, body, "foo.x.com")
	assert.Contains(t, body, "이미 등록되었거나 제한된 도메인")
	assert.NotContains(t, body, "/domain/foo/x.com")
	assert.Contains(t, body, "octocat님")
}

func TestSearch_Anonymous(t *testing.T) {
	s := newTestService(t, &fakeAPI{})

	_, body := get(t, s, "/search?q=foo", false)

	assert.Contains(t, body, "[로그인 후 등록 가능]")
	assert.NotContains(t, body, "?mode=new")
}

func TestSearch_Empty(t *testing.T) {
	api := &fakeAPI{}
	s := newTestService(t, api)

	resp, body := get(t, s, "/search?q=+++", false)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, portal.ErrEmptySubDomain.Error())
	assert.Zero(t, api.called("GET /api/available-domains"))
}

func TestDetail_EditSelectsType(t *testing.T) {
	api := &fakeAPI{records: `[{"type":"A","content":"1.2.3.4"},{"type":"TXT","content":"v=spf1"}]`}
	s := newTestService(t, api)

	_, body := get(t, s, "/domain/foo/nulldns.top?mode=edit&type=A", true)
	assert.Contains(t, body, `value="1.2.3.4"`)
	assert.Contains(t, body, "수정 저장")
	assert.Equal(t, 1, api.called("GET /api/get-records/foo.nulldns.top"))

	_, body = get(t, s, "/domain/foo/nulldns.top?mode=edit&type=CNAME", true)
	assert.Contains(t, body, `value=""`)
	assert.Contains(t, body, `placeholder="예: example.com"`)
}

func TestDetail_NewMakesNoRecordsCall(t *testing.T) {
	api := &fakeAPI{}
	s := newTestService(t, api)

	resp, body := get(t, s, "/domain/foo/nulldns.top?mode=new", true)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "등록 완료")
	assert.Contains(t, body, `placeholder="예: 192.168.1.1"`)
	assert.Zero(t, api.called("GET /api/get-records"))
}

func TestDetail_EscapesRecordContent(t *testing.T) {
	api := &fakeAPI{records: `[{"type":"TXT","content":"<script>alert(1)</script>"}]`}
	s := newTestService(t, api)

	_, body := get(t, s, "/domain/foo/nulldns.top?mode=edit&type=TXT", true)

	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestDetail_StatusRedirects(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantPath string
		wantNext string
	}{
		{"unauthorized", http.StatusUnauthorized, "/login", "domains"},
		{"forbidden", http.StatusForbidden, "/domains", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, &fakeAPI{recordsStatus: tt.status})

			resp, _ := get(t, s, "/domain/foo/nulldns.top?mode=edit", true)

			path, q := location(t, resp)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantNext, q.Get("next"))
			assert.NotEmpty(t, q.Get("notice"))
		})
	}
}

func TestSubmit(t *testing.T) {
	api := &fakeAPI{}
	s := newTestService(t, api)

	resp, _ := post(t, s, "/domain/foo/nulldns.top", url.Values{
		"type":    {"A"},
		"content": {" 1.2.3.4 "},
	}, true)

	path, q := location(t, resp)
	assert.Equal(t, "/domains", path)
	assert.Equal(t, portal.MsgSubmitOK, q.Get("notice"))

	require.Len(t, api.added, 1)
	assert.Equal(t, backend.AddRecordRequest{
		SubDomain: "foo", Zone: "nulldns.top", Type: "A", Content: "1.2.3.4",
	}, api.added[0])
}

func TestSubmit_MissingContent(t *testing.T) {
	api := &fakeAPI{}
	s := newTestService(t, api)

	resp, body := post(t, s, "/domain/foo/nulldns.top", url.Values{"type": {"A"}, "content": {"  "}}, true)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "A 값을 입력해주세요.")
	assert.Zero(t, api.called("POST /api/add-record"))
}

func TestSubmit_RefusedKeepsValue(t *testing.T) {
	api := &fakeAPI{}
	s := newTestService(t, api)

	resp, body := post(t, s, "/domain/foo/nulldns.top", url.Values{
		"type":    {"TXT"},
		"content": {"refuse"},
		"mode":    {"edit"},
	}, true)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "잘못된 레코드 값입니다.")
	assert.Contains(t, body, `value="refuse"`)
	assert.Equal(t, 1, api.called("POST /api/add-record"))
}

func TestDomains(t *testing.T) {
	soon := time.Now().AddDate(0, 0, 10).Format("2006-01-02")
	api := &fakeAPI{domains: `[{"subDomain":"foo","zone":"nulldns.top","expirationDate":"` + soon + `"},` +
		`{"subDomain":"bar","zone":"nulldns.top","expirationDate":null}]`}
	s := newTestService(t, api)

	resp, body := get(t, s, "/domains", true)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `href="/domain/foo/nulldns.top?mode=edit"`)
	assert.Contains(t, body, "만료일: "+soon+" (10일 남음)")
	assert.Contains(t, body, "near-expiry")
	assert.Contains(t, body, "bar.nulldns.top")
	assert.Contains(t, body, "만료일 없음")
	assert.Contains(t, body, `action="/domains/foo/nulldns.top/renew"`)
}

func TestDomains_LoginPrompt(t *testing.T) {
	s := newTestService(t, &fakeAPI{})

	resp, body := get(t, s, "/domains", false)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, portal.MsgLoginRequired)
	assert.Contains(t, body, "/oauth2/authorization/github")
}

func TestRenew(t *testing.T) {
	tests := []struct {
		status     int
		wantPath   string
		wantNotice string
	}{
		{http.StatusOK, "/domains", portal.MsgRenewOK},
		{http.StatusUnauthorized, "/login", portal.MsgLoginRequired},
		{http.StatusForbidden, "/domains", portal.MsgRenewForbidden},
		{http.StatusNotFound, "/domains", portal.MsgRenewNotFound},
		{http.StatusBadRequest, "/domains", portal.MsgRenewNotYet},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			api := &fakeAPI{renewStatus: tt.status}
			s := newTestService(t, api)

			resp, _ := post(t, s, "/domains/foo/nulldns.top/renew", nil, true)

			path, q := location(t, resp)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantNotice, q.Get("notice"))
			assert.Equal(t, 1, api.called("PATCH /api/update-record/foo/nulldns.top"))
		})
	}
}

func TestDelete(t *testing.T) {
	api := &fakeAPI{}
	s := newTestService(t, api)

	resp, _ := post(t, s, "/domain/foo/nulldns.top/delete", nil, true)

	path, q := location(t, resp)
	assert.Equal(t, "/domains", path)
	assert.Equal(t, portal.MsgDeleteOK, q.Get("notice"))
	assert.Equal(t, 1, api.called("DELETE /api/delete-record/foo/nulldns.top"))
}

func TestLogin(t *testing.T) {
	s := newTestService(t, &fakeAPI{})

	_, body := get(t, s, "/login?next=domains", false)

	assert.Contains(t, body, "/oauth2/authorization/github")
	assert.Contains(t, body, `<a href="http://localhost:8080/domains">이전 화면으로 돌아가기</a>`)
}

func TestLogout(t *testing.T) {
	api := &fakeAPI{}
	s := newTestService(t, api)

	resp, _ := post(t, s, "/logout", nil, true)

	path, _ := location(t, resp)
	assert.Equal(t, "/", path)
	assert.Equal(t, 1, api.called("POST /api/logout"))
	assert.Contains(t, resp.Header.Get("Set-Cookie"), config.DefaultSessionCookie+"=")
}

func TestLeave(t *testing.T) {
	api := &fakeAPI{}
	s := newTestService(t, api)

	resp, _ := post(t, s, "/account/leave", url.Values{"confirm": {"탈퇴"}}, true)

	path, q := location(t, resp)
	assert.Equal(t, "/account", path)
	assert.Equal(t, portal.ErrLeavePhrase.Error(), q.Get("notice"))
	assert.Zero(t, api.called("DELETE /api/leave"))

	resp, _ = post(t, s, "/account/leave", url.Values{"confirm": {"회원탈퇴"}}, true)

	path, q = location(t, resp)
	assert.Equal(t, "/", path)
	assert.Equal(t, portal.MsgLeaveOK, q.Get("notice"))
	assert.Equal(t, 1, api.called("DELETE /api/leave"))
	assert.Contains(t, resp.Header.Get("Set-Cookie"), config.DefaultSessionCookie+"=")
}

func TestLeave_RefusedKeepsSession(t *testing.T) {
	api := &fakeAPI{leaveStatus: http.StatusForbidden}
	s := newTestService(t, api)

	resp, _ := post(t, s, "/account/leave", url.Values{"confirm": {"회원탈퇴"}}, true)

	path, q := location(t, resp)
	assert.Equal(t, "/", path)
	assert.Equal(t, portal.MsgLeaveFailed, q.Get("notice"))
	assert.Equal(t, 1, api.called("DELETE /api/leave"))
	assert.Empty(t, resp.Header.Get("Set-Cookie"))
}

func TestAccount(t *testing.T) {
	s := newTestService(t, &fakeAPI{})

	_, body := get(t, s, "/account", true)
	assert.Contains(t, body, "octocat님, 환영합니다.")
	assert.Contains(t, body, "<strong>회원탈퇴</strong>")

	_, body = get(t, s, "/account", false)
	assert.Contains(t, body, portal.MsgLoginRequired)
}

func TestNoticeFromQuery(t *testing.T) {
	s := newTestService(t, &fakeAPI{})

	_, body := get(t, s, "/?notice="+url.QueryEscape("<b>hi</b>"), false)

	assert.Contains(t, body, "&lt;b&gt;hi&lt;/b&gt;")
}

func TestCheckAliveAndMetrics(t *testing.T) {
	api := &fakeAPI{}
	s := newTestService(t, api)

	resp, body := get(t, s, "/checkalive", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
	assert.True(t, s.Alive())

	resp, body = get(t, s, "/metrics", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "go_goroutines")

	resp, _ = get(t, s, "/static/style.css", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Zero(t, api.called("GET /api/me"))
}
