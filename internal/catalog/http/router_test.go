package http_test

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/notify"
	"github.com/aussiebroadwan/aicatalog/pkg/catalogapi"
	"github.com/aussiebroadwan/aicatalog/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenApprove(t *testing.T) {
	ts := newTestServer(t)
	ctx := t.Context()

	elena, u := ts.register(t, "Elena", "frontend")
	require.Equal(t, "pending", u.Status)
	require.Equal(t, "frontend", u.Role)
	require.Equal(t, "employee", u.DisplayRole)

	me, err := elena.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "employee", me.DisplayRole)

	res, err := ts.owner.SetUserStatus(ctx, u.ID, "approved")
	require.NoError(t, err)
	require.Equal(t, "approved", res.User.Status)
	require.Equal(t, "frontend", res.User.DisplayRole)

	// The same session picks up the change on the next request.
	me, err = elena.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "frontend", me.DisplayRole)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	_, err := ts.client().Register(t.Context(), catalogapi.RegisterRequest{
		Name:                 "Sam",
		Email:                "not-an-email",
		Password:             "short",
		PasswordConfirmation: "different",
		Role:                 "owner",
	})
	require.True(t, catalogapi.IsValidation(err), "got %v", err)

	var apiErr *catalogapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, apiErr.FieldErrors, "email")
	require.Contains(t, apiErr.FieldErrors, "password")
	require.Contains(t, apiErr.FieldErrors, "role")
}

func TestEmailTwoFactorLogin(t *testing.T) {
	ts := newTestServer(t)
	ctx := t.Context()

	elena, _ := ts.approvedUser(t, "Elena", "frontend")

	setup, err := elena.SetupTwoFactor(ctx, catalogapi.TwoFactorSetupRequest{Type: "email"})
	require.NoError(t, err)
	require.True(t, setup.CodeSent)
	require.Empty(t, setup.Secret)

	st, err := elena.TwoFactorStatus(ctx)
	require.NoError(t, err)
	require.False(t, st.TwoFactorEnabled)
	require.Equal(t, "email", st.TwoFactorType)

	verified, err := elena.VerifyTwoFactor(ctx, ts.sender.lastCode(t))
	require.NoError(t, err)
	require.True(t, verified.User.TwoFactorEnabled)

	require.NoError(t, elena.Logout(ctx))
	_, err = elena.Me(ctx)
	require.True(t, catalogapi.IsUnauthenticated(err))

	// Password alone is not enough and sets no cookie.
	c := ts.client()
	res, err := c.Login(ctx, catalogapi.LoginRequest{Email: "elena@example.com", Password: testPassword})
	require.NoError(t, err)
	require.True(t, res.RequiresTwoFactor)
	require.Equal(t, "email", res.TwoFactorType)
	require.Nil(t, res.User)

	_, err = c.Me(ctx)
	require.True(t, catalogapi.IsUnauthenticated(err))

	code := ts.sender.lastCode(t)
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	_, err = c.Login(ctx, catalogapi.LoginRequest{Email: "elena@example.com", Password: testPassword, TwoFactorCode: wrong})
	require.True(t, catalogapi.IsTwoFactorRejected(err), "got %v", err)
	var apiErr *catalogapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "email", apiErr.TwoFactorType)

	_, err = c.Login(ctx, catalogapi.LoginRequest{Email: "elena@example.com", Password: "wrong-password", TwoFactorCode: wrong})
	require.True(t, catalogapi.IsUnauthenticated(err))
	require.False(t, catalogapi.IsTwoFactorRejected(err), "a bad password must not look like a bad code")

	res, err = c.Login(ctx, catalogapi.LoginRequest{Email: "elena@example.com", Password: testPassword, TwoFactorCode: code})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.NotNil(t, res.User)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "elena@example.com", me.Email)

	// The code was single use.
	_, err = ts.client().Login(ctx, catalogapi.LoginRequest{Email: "elena@example.com", Password: testPassword, TwoFactorCode: code})
	require.True(t, catalogapi.IsUnauthenticated(err))
}

func TestTwoFactorErrors(t *testing.T) {
	ts := newTestServer(t)
	ctx := t.Context()

	c, _ := ts.register(t, "Quinn", "qa")

	_, err := c.VerifyTwoFactor(ctx, "123456")
	require.Equal(t, http.StatusBadRequest, catalogapi.StatusCode(err), "no channel configured")

	_, err = c.DisableTwoFactor(ctx, "123456")
	require.Equal(t, http.StatusBadRequest, catalogapi.StatusCode(err), "not enabled")

	_, err = c.SetupTwoFactor(ctx, catalogapi.TwoFactorSetupRequest{Type: "sms"})
	require.True(t, catalogapi.IsValidation(err))

	totp, err := c.SetupTwoFactor(ctx, catalogapi.TwoFactorSetupRequest{Type: "google_authenticator"})
	require.NoError(t, err)
	require.NotEmpty(t, totp.Secret)
	require.True(t, strings.HasPrefix(totp.OTPAuthURI, "otpauth://totp/"))

	_, err = c.ResendTwoFactorCode(ctx)
	require.Equal(t, http.StatusBadRequest, catalogapi.StatusCode(err), "resend is not supported for TOTP")

	ts.sender.setFail(&notify.DeliveryError{Channel: "email", Err: errors.New("smtp down")})
	_, err = c.SetupTwoFactor(ctx, catalogapi.TwoFactorSetupRequest{Type: "email"})
	require.Equal(t, http.StatusBadGateway, catalogapi.StatusCode(err))
}

func TestOnlyApprovedOwnersApprove(t *testing.T) {
	ts := newTestServer(t)
	ctx := t.Context()

	_, target := ts.register(t, "Tara", "backend")
	bob, _ := ts.approvedUser(t, "Bob", "pm")
	pending, _ := ts.register(t, "Pat", "designer")

	for name, c := range map[string]*catalogapi.Client{"approved pm": bob, "pending user": pending} {
		_, err := c.SetUserStatus(ctx, target.ID, "approved")
		require.True(t, catalogapi.IsForbidden(err), "%s: got %v", name, err)
	}

	_, err := ts.client().SetUserStatus(ctx, target.ID, "approved")
	require.True(t, catalogapi.IsUnauthenticated(err))

	got, err := ts.owner.GetUser(ctx, target.ID)
	require.NoError(t, err)
	require.Equal(t, "pending", got.Status)
}

func TestAdminUsers(t *testing.T) {
	ts := newTestServer(t)
	ctx := t.Context()

	created, err := ts.owner.CreateUser(ctx, catalogapi.CreateUserRequest{
		Name:  "Dana",
		Email: "dana@example.com",
		Role:  "designer",
	})
	require.NoError(t, err)
	require.Equal(t, "approved", created.User.Status)
	require.NotEmpty(t, created.GeneratedPassword)

	dana := ts.client()
	_, err = dana.Login(ctx, catalogapi.LoginRequest{Email: "dana@example.com", Password: created.GeneratedPassword})
	require.NoError(t, err)

	res, err := ts.owner.SetUserRole(ctx, created.User.ID, "qa")
	require.NoError(t, err)
	require.Equal(t, "qa", res.User.DisplayRole)

	page, err := ts.owner.ListUsers(ctx, catalogapi.UserQuery{Role: "qa"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	require.Equal(t, int64(1), page.Meta.Total)

	_, err = ts.owner.ListUsers(ctx, catalogapi.UserQuery{Status: "banned"})
	require.True(t, catalogapi.IsValidation(err))

	_, err = dana.ListUsers(ctx, catalogapi.UserQuery{})
	require.True(t, catalogapi.IsForbidden(err))

	_, err = ts.owner.GetUser(ctx, "01JNOTAUSER0000000000000000")
	require.True(t, catalogapi.IsNotFound(err))
}

func TestLastOwnerCannotStepDown(t *testing.T) {
	ts := newTestServer(t)
	ctx := t.Context()

	me, err := ts.owner.Me(ctx)
	require.NoError(t, err)

	_, err = ts.owner.SetUserRole(ctx, me.ID, "pm")
	require.True(t, catalogapi.IsConflict(err), "got %v", err)

	_, err = ts.owner.SetUserStatus(ctx, me.ID, "rejected")
	require.True(t, catalogapi.IsConflict(err), "got %v", err)
}

func TestExportUsers(t *testing.T) {
	ts := newTestServer(t)
	ctx := t.Context()

	ts.register(t, "Elena", "frontend")

	csv, err := ts.owner.ExportUsers(ctx)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(csv, []byte("\xEF\xBB\xBFID,Name,Email,Role,Status,CreatedAt,UpdatedAt\n")))

	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[2], "elena@example.com,frontend,pending,")

	erin, _ := ts.approvedUser(t, "Erin", "qa")
	_, err = erin.ExportUsers(ctx)
	require.True(t, catalogapi.IsForbidden(err))
}

func TestCatalogFlow(t *testing.T) {
	ts := newTestServer(t)
	ctx := t.Context()

	cat, err := ts.owner.CreateCategory(ctx, catalogapi.CategoryRequest{Name: "Code Assistants"})
	require.NoError(t, err)
	require.Equal(t, "code-assistants", cat.Slug)

	_, err = ts.owner.CreateCategory(ctx, catalogapi.CategoryRequest{Name: "Code Assistants"})
	require.True(t, catalogapi.IsConflict(err))

	elena, _ := ts.approvedUser(t, "Elena", "frontend")
	_, err = elena.CreateCategory(ctx, catalogapi.CategoryRequest{Name: "Mine"})
	require.True(t, catalogapi.IsForbidden(err))

	tool, err := elena.CreateTool(ctx, catalogapi.ToolRequest{
		Name:        "Pair",
		Description: "Pair programming assistant",
		URL:         "https://pair.example.com",
		CategoryIDs: []string{cat.ID},
	})
	require.NoError(t, err)
	require.Equal(t, "pending_review", tool.Status)

	anon := ts.client()
	_, err = anon.Tool(ctx, tool.ID)
	require.True(t, catalogapi.IsNotFound(err), "pending tools are hidden")

	list, err := anon.Tools(ctx, catalogapi.ToolQuery{})
	require.NoError(t, err)
	require.Empty(t, list.Data)

	status := "active"
	moderated, err := ts.owner.ModerateTool(ctx, tool.ID, catalogapi.ModerationRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, "active", moderated.Status)

	list, err = anon.Tools(ctx, catalogapi.ToolQuery{CategoryID: cat.ID})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)

	review, err := elena.CreateReview(ctx, tool.ID, catalogapi.ReviewRequest{Rating: 4, Comment: "Solid"})
	require.NoError(t, err)
	require.Equal(t, 4, review.Rating)

	_, err = elena.CreateReview(ctx, tool.ID, catalogapi.ReviewRequest{Rating: 5})
	require.True(t, catalogapi.IsConflict(err))

	_, err = elena.CreateReview(ctx, tool.ID, catalogapi.ReviewRequest{Rating: 6})
	require.True(t, catalogapi.IsValidation(err))

	reviews, err := anon.Reviews(ctx, tool.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, reviews.Data, 1)
	require.Equal(t, "Elena", reviews.Data[0].UserName)

	liked, err := elena.Like(ctx, tool.ID)
	require.NoError(t, err)
	require.Equal(t, catalogapi.LikeResponse{Liked: true, LikesCount: 1}, *liked)

	liked, err = elena.Like(ctx, tool.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), liked.LikesCount)

	got, err := elena.Tool(ctx, tool.ID)
	require.NoError(t, err)
	require.True(t, got.LikedByViewer)

	unliked, err := elena.Unlike(ctx, tool.ID)
	require.NoError(t, err)
	require.Equal(t, catalogapi.LikeResponse{Liked: false, LikesCount: 0}, *unliked)

	require.NoError(t, elena.DeleteTool(ctx, tool.ID))
	_, err = ts.owner.Tool(ctx, tool.ID)
	require.True(t, catalogapi.IsNotFound(err))
}

func TestAdminDashboard(t *testing.T) {
	ts := newTestServer(t)
	ctx := t.Context()

	_, u := ts.register(t, "Elena", "frontend")
	_, err := ts.owner.SetUserStatus(ctx, u.ID, "approved")
	require.NoError(t, err)

	acts, err := ts.owner.Activity(ctx, catalogapi.ActivityQuery{SubjectID: u.ID, Action: "approved"})
	require.NoError(t, err)
	require.Len(t, acts.Data, 1)
	require.JSONEq(t, `{"role":"frontend","status":"pending"}`, string(acts.Data[0].Before))
	require.JSONEq(t, `{"role":"frontend","status":"approved"}`, string(acts.Data[0].After))

	stats, err := ts.owner.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.TotalUsers)
	require.Equal(t, int64(2), stats.UsersByStatus["approved"])
}

func TestBadRequests(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/register", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp2, err := http.Get(ts.URL + "/tools?featured=maybe")
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp2.StatusCode)

	// A forged cookie is dropped and the request continues anonymously.
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/me", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: catalogapi.SessionCookieName, Value: "forged"})
	resp3, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp3.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp3.StatusCode)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	ctx := t.Context()

	for _, id := range []string{"not-a-ulid", "01HZ", "01HZZZZZZZZZZZZZZZZZZZZZZZ!"} {
		_, err := ts.client().Tool(ctx, id)
		require.True(t, catalogapi.IsNotFound(err), "%q: got %v", id, err)

		_, err = ts.owner.SetUserRole(ctx, id, "qa")
		require.True(t, catalogapi.IsNotFound(err), "%q: got %v", id, err)
	}

	// Well-formed but unknown still reaches the store.
	_, err := ts.client().Tool(ctx, idx.New().String())
	require.True(t, catalogapi.IsNotFound(err))
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	live, err := ts.client().GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := ts.client().GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.CodeStore)
}
