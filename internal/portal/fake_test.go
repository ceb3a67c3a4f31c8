package portal

import (
	"context"
	"errors"
	"net/http"

	"github.com/nulldns/subdns-portal/internal/backend"
)

var errTransport = errors.New("connection refused")

func result[T any](code int, v T) backend.Result[T] {
	return backend.Result[T]{Status: backend.Classify(code), Code: code, Value: v}
}

func failure(code int, msg string) backend.Result[backend.Empty] {
	return backend.Result[backend.Empty]{Status: backend.Classify(code), Code: code, Message: msg}
}

// fakeBackend answers with canned results and records every call.
type fakeBackend struct {
	calls []string

	me        backend.Result[backend.Identity]
	available backend.Result[backend.Availability]
	records   backend.Result[[]backend.Record]
	add       backend.Result[backend.Empty]
	domains   backend.Result[[]backend.OwnedDomain]
	renew     backend.Result[backend.Empty]
	del       backend.Result[backend.Empty]
	leave     backend.Result[backend.Empty]
	logout    backend.Result[backend.Empty]

	added []backend.AddRecordRequest
	err   error
}

func newFake() *fakeBackend {
	return &fakeBackend{
		me:     result(http.StatusUnauthorized, backend.Identity{}),
		add:    result(http.StatusOK, backend.Empty{}),
		renew:  result(http.StatusOK, backend.Empty{}),
		del:    result(http.StatusOK, backend.Empty{}),
		leave:  result(http.StatusOK, backend.Empty{}),
		logout: result(http.StatusOK, backend.Empty{}),
	}
}

func (f *fakeBackend) Me(context.Context) (backend.Result[backend.Identity], error) {
	f.calls = append(f.calls, "me")
	return f.me, f.err
}

func (f *fakeBackend) AvailableZones(_ context.Context, sub string) (backend.Result[backend.Availability], error) {
	f.calls = append(f.calls, "available:"+sub)
	return f.available, f.err
}

func (f *fakeBackend) Records(_ context.Context, full string) (backend.Result[[]backend.Record], error) {
	f.calls = append(f.calls, "records:"+full)
	return f.records, f.err
}

func (f *fakeBackend) AddRecord(_ context.Context, req backend.AddRecordRequest) (backend.Result[backend.Empty], error) {
	f.calls = append(f.calls, "add")
	f.added = append(f.added, req)

	return f.add, f.err
}

func (f *fakeBackend) MyDomains(context.Context) (backend.Result[[]backend.OwnedDomain], error) {
	f.calls = append(f.calls, "domains")
	return f.domains, f.err
}

func (f *fakeBackend) Renew(_ context.Context, sub, zone string) (backend.Result[backend.Empty], error) {
	f.calls = append(f.calls, "renew:"+sub+"."+zone)
	return f.renew, f.err
}

func (f *fakeBackend) DeleteRecord(_ context.Context, sub, zone string) (backend.Result[backend.Empty], error) {
	f.calls = append(f.calls, "delete:"+sub+"."+zone)
	return f.del, f.err
}

func (f *fakeBackend) Leave(context.Context) (backend.Result[backend.Empty], error) {
	f.calls = append(f.calls, "leave")
	return f.leave, f.err
}

func (f *fakeBackend) Logout(context.Context) (backend.Result[backend.Empty], error) {
	f.calls = append(f.calls, "logout")
	return f.logout, f.err
}
