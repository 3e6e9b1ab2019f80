package domain_test

import (
	"testing"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/stretchr/testify/require"
)

func TestDisplayRole(t *testing.T) {
	for _, role := range domain.Roles() {
		for _, status := range domain.UserStatuses() {
			u := domain.User{Role: role, Status: status}
			want := domain.RoleEmployee
			if status == domain.UserApproved {
				want = role
			}
			require.Equal(t, want, u.DisplayRole(), "role=%s status=%s", role, status)
		}
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		role          domain.Role
		status        domain.UserStatus
		approved      bool
		approvedOwner bool
	}{
		{domain.RoleOwner, domain.UserApproved, true, true},
		{domain.RoleOwner, domain.UserPending, false, false},
		{domain.RoleOwner, domain.UserRejected, false, false},
		{domain.RoleQA, domain.UserApproved, true, false},
		{domain.RoleQA, domain.UserPending, false, false},
	}
	for _, tc := range tests {
		u := domain.User{Role: tc.role, Status: tc.status}
		require.Equal(t, tc.approved, u.IsApproved())
		require.Equal(t, tc.approvedOwner, u.IsApprovedOwner())
	}
}

func TestParseTwoFactorChannel(t *testing.T) {
	for _, s := range []string{"email", "telegram", "google_authenticator"} {
		ch, ok := domain.ParseTwoFactorChannel(s)
		require.True(t, ok, s)
		require.Equal(t, s, string(ch))
	}
	for _, s := range []string{"none", "", "sms", "EMAIL"} {
		_, ok := domain.ParseTwoFactorChannel(s)
		require.False(t, ok, s)
	}
	require.True(t, domain.TwoFactorEmail.ServerIssued())
	require.True(t, domain.TwoFactorTelegram.ServerIssued())
	require.False(t, domain.TwoFactorTOTP.ServerIssued())
}

func TestPageNormalize(t *testing.T) {
	p := domain.Page{Page: 0, PerPage: 1000}.Normalize()
	require.Equal(t, 1, p.Page)
	require.Equal(t, domain.MaxPerPage, p.PerPage)
	require.Equal(t, 0, p.Offset())

	p = domain.Page{Page: 3, PerPage: 0}.Normalize()
	require.Equal(t, domain.DefaultPerPage, p.PerPage)
	require.Equal(t, 40, p.Offset())

	require.Equal(t, 3, domain.Paged[int]{Total: 41, PerPage: 20}.LastPage())
	require.Equal(t, 1, domain.Paged[int]{Total: 0, PerPage: 20}.LastPage())
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "code-assistants", domain.Slugify("  Code Assistants "))
	require.Equal(t, "gpt-4o-tools", domain.Slugify("GPT-4o / Tools!"))
	require.Equal(t, "", domain.Slugify("!!!"))
}
