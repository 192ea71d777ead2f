package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/olympicapp/country-comments/internal/core/domain"
	"github.com/olympicapp/country-comments/internal/core/ports"
	"github.com/olympicapp/country-comments/internal/session"
)

type stubSession struct {
	attrs domain.SessionAttributes
}

func (s *stubSession) Attributes(context.Context) (domain.SessionAttributes, error) {
	return s.attrs, nil
}

func (s *stubSession) Authenticate(_ context.Context, attrs domain.SessionAttributes) error {
	s.attrs = attrs
	return nil
}

func (s *stubSession) Invalidate(context.Context) error {
	s.attrs = domain.SessionAttributes{}
	return nil
}

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, sess ports.Session, username, password string) (*domain.User, error)
	logoutFn   func(ctx context.Context, sess ports.Session) error
	profileFn  func(ctx context.Context, sess ports.Session) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, sess ports.Session, username, password string) (*domain.User, error) {
	return s.loginFn(ctx, sess, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sess ports.Session) error {
	return s.logoutFn(ctx, sess)
}

func (s *stubAuthService) Profile(ctx context.Context, sess ports.Session) (*domain.User, error) {
	return s.profileFn(ctx, sess)
}

type stubCommentService struct {
	listFn   func(ctx context.Context, countryCode string) ([]*domain.Comment, error)
	postFn   func(ctx context.Context, sess ports.Session, countryCode, content string) (*domain.Comment, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubCommentService) ListByCountry(ctx context.Context, countryCode string) ([]*domain.Comment, error) {
	return s.listFn(ctx, countryCode)
}

func (s *stubCommentService) Post(ctx context.Context, sess ports.Session, countryCode, content string) (*domain.Comment, error) {
	return s.postFn(ctx, sess, countryCode, content)
}

func (s *stubCommentService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubAdminService struct {
	listFn   func(ctx context.Context, sess ports.Session) ([]*domain.User, error)
	updateFn func(ctx context.Context, sess ports.Session, id int64, nickname string) error
	deleteFn func(ctx context.Context, sess ports.Session, id int64) error
}

func (s *stubAdminService) ListUsers(ctx context.Context, sess ports.Session) ([]*domain.User, error) {
	return s.listFn(ctx, sess)
}

func (s *stubAdminService) UpdateUser(ctx context.Context, sess ports.Session, id int64, nickname string) error {
	return s.updateFn(ctx, sess, id, nickname)
}

func (s *stubAdminService) DeleteUser(ctx context.Context, sess ports.Session, id int64) error {
	return s.deleteFn(ctx, sess, id)
}

// newContext builds an echo context with a JSON body and the given session
// already injected, as the Session middleware would.
func newContext(e *echo.Echo, method, target, body string, sess ports.Session) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(session.ContextKey, sess)
	}
	return c, rec
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}
