package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/olympicapp/country-comments/internal/core/domain"
	"github.com/olympicapp/country-comments/internal/core/ports"
)

func TestAdminHandler_ListUsers_OmitsPasswords(t *testing.T) {
	stub := &stubAdminService{
		listFn: func(ctx context.Context, sess ports.Session) ([]*domain.User, error) {
			return []*domain.User{
				{ID: 1, Username: "admin", Password: "pw", Nickname: "Boss", Role: domain.RoleAdmin},
			}, nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newContext(newEcho(), http.MethodGet, "/api/users/admin/users", "", &stubSession{})

	if err := h.ListUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 || got[0]["username"] != "admin" || got[0]["role"] != "ADMIN" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if containsKey(rec.Body.Bytes(), "password") {
		t.Fatal("listing must not expose passwords")
	}
}

func TestAdminHandler_ListUsers_Forbidden(t *testing.T) {
	stub := &stubAdminService{
		listFn: func(ctx context.Context, sess ports.Session) ([]*domain.User, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewAdminHandler(stub)

	c, _ := newContext(newEcho(), http.MethodGet, "/api/users/admin/users", "", &stubSession{})

	if err := h.ListUsers(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAdminHandler_UpdateUser(t *testing.T) {
	stub := &stubAdminService{
		updateFn: func(ctx context.Context, sess ports.Session, id int64, nickname string) error {
			if id != 2 || nickname != "Alice" {
				t.Fatalf("unexpected args: %d %q", id, nickname)
			}
			return nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newContext(newEcho(), http.MethodPut, "/api/users/admin/users/2", `{"nickname":"Alice"}`, &stubSession{})
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := h.UpdateUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "User updated successfully" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAdminHandler_UpdateUser_EmptyNicknameReachesService(t *testing.T) {
	stub := &stubAdminService{
		updateFn: func(ctx context.Context, sess ports.Session, id int64, nickname string) error {
			return domain.ErrEmptyNickname
		},
	}
	h := NewAdminHandler(stub)

	c, _ := newContext(newEcho(), http.MethodPut, "/api/users/admin/users/2", `{"nickname":""}`, &stubSession{})
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := h.UpdateUser(c); !errors.Is(err, domain.ErrEmptyNickname) {
		t.Fatalf("expected ErrEmptyNickname, got %v", err)
	}
}

func TestAdminHandler_UpdateUser_LongNicknameReachesService(t *testing.T) {
	long := strings.Repeat("n", 51)
	stub := &stubAdminService{
		updateFn: func(ctx context.Context, sess ports.Session, id int64, nickname string) error {
			if nickname != long {
				t.Fatalf("unexpected nickname %q", nickname)
			}
			return domain.ErrUserNotFound
		},
	}
	h := NewAdminHandler(stub)

	c, _ := newContext(newEcho(), http.MethodPut, "/api/users/admin/users/999", `{"nickname":"`+long+`"}`, &stubSession{})
	c.SetParamNames("id")
	c.SetParamValues("999")

	if err := h.UpdateUser(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAdminHandler_DeleteUser_Self(t *testing.T) {
	stub := &stubAdminService{
		deleteFn: func(ctx context.Context, sess ports.Session, id int64) error {
			return domain.ErrSelfDeletion
		},
	}
	h := NewAdminHandler(stub)

	c, _ := newContext(newEcho(), http.MethodDelete, "/api/users/admin/users/5", "", &stubSession{})
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.DeleteUser(c); !errors.Is(err, domain.ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}
}

func TestAdminHandler_DeleteUser(t *testing.T) {
	var deleted int64
	stub := &stubAdminService{
		deleteFn: func(ctx context.Context, sess ports.Session, id int64) error {
			deleted = id
			return nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newContext(newEcho(), http.MethodDelete, "/api/users/admin/users/6", "", &stubSession{})
	c.SetParamNames("id")
	c.SetParamValues("6")

	if err := h.DeleteUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != 6 || rec.Code != http.StatusOK {
		t.Fatalf("expected delete of 6 with 200, got %d / %d", deleted, rec.Code)
	}
}
