package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/go-signup-verify/internal/domain"
)

// --- mocks ---

type mockAccountStore struct{ mock.Mock }

func (m *mockAccountStore) Create(ctx context.Context, a *domain.Account) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockAccountStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockCodeVerifier struct{ mock.Mock }

func (m *mockCodeVerifier) Verify(identity, submitted string) error {
	return m.Called(identity, submitted).Error(0)
}

// --- builder ---

var fixedNow = time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

func newService(as *mockAccountStore, cv *mockCodeVerifier) Service {
	return NewService(ServiceDeps{
		AccountRepo: as,
		Codes:       cv,
		Now:         func() time.Time { return fixedNow },
	})
}

func validInput() SignupInput {
	return SignupInput{SignupRequest: domain.SignupRequest{
		Email:            "Ada@Example.com",
		Password:         "Sup3r$ecret",
		Name:             "Ada",
		VerificationCode: "482913",
	}}
}

// --- Signup ---

func TestSignup_WithCode_HappyPath(t *testing.T) {
	as := &mockAccountStore{}
	cv := &mockCodeVerifier{}
	as.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(false, nil)
	cv.On("Verify", "ada@example.com", "482913").Return(nil)
	as.On("Create", mock.Anything, mock.AnythingOfType("*domain.Account")).Return(nil)

	a, err := newService(as, cv).Signup(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "ada@example.com", a.Email)
	assert.True(t, a.EmailVerified)
	assert.Equal(t, fixedNow, a.CreatedAt)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("Sup3r$ecret")))
	as.AssertExpectations(t)
	cv.AssertExpectations(t)
}

func TestSignup_WithReceipt_SkipsCode(t *testing.T) {
	as := &mockAccountStore{}
	cv := &mockCodeVerifier{}
	as.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(false, nil)
	as.On("Create", mock.Anything, mock.AnythingOfType("*domain.Account")).Return(nil)

	in := validInput()
	in.VerificationCode = ""
	in.VerifiedEmail = "ada@example.com"
	_, err := newService(as, cv).Signup(context.Background(), in)

	require.NoError(t, err)
	cv.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestSignup_ReceiptForOtherEmail(t *testing.T) {
	as := &mockAccountStore{}
	as.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(false, nil)

	in := validInput()
	in.VerifiedEmail = "eve@example.com"
	_, err := newService(as, &mockCodeVerifier{}).Signup(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	as.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_NoProof(t *testing.T) {
	as := &mockAccountStore{}
	as.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(false, nil)

	in := validInput()
	in.VerificationCode = ""
	_, err := newService(as, &mockCodeVerifier{}).Signup(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSignup_CodeRejected(t *testing.T) {
	for _, want := range []error{domain.ErrCodeNotFound, domain.ErrCodeExpired, domain.ErrCodeMismatch} {
		as := &mockAccountStore{}
		cv := &mockCodeVerifier{}
		as.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(false, nil)
		cv.On("Verify", "ada@example.com", "482913").Return(want)

		_, err := newService(as, cv).Signup(context.Background(), validInput())

		assert.ErrorIs(t, err, want)
		as.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestSignup_EmailTaken_DoesNotConsumeCode(t *testing.T) {
	as := &mockAccountStore{}
	cv := &mockCodeVerifier{}
	as.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(true, nil)

	_, err := newService(as, cv).Signup(context.Background(), validInput())

	assert.ErrorIs(t, err, domain.ErrConflict)
	cv.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestSignup_WeakPassword(t *testing.T) {
	in := validInput()
	in.Password = "short"
	_, err := newService(&mockAccountStore{}, &mockCodeVerifier{}).Signup(context.Background(), in)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Contains(t, err.Error(), "at least 8 characters")
}

func TestSignup_InvalidForm(t *testing.T) {
	cases := map[string]func(*SignupInput){
		"bad email":        func(in *SignupInput) { in.Email = "nope" },
		"missing name":     func(in *SignupInput) { in.Name = "" },
		"non-numeric code": func(in *SignupInput) { in.VerificationCode = "12ab56" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := newService(&mockAccountStore{}, &mockCodeVerifier{}).Signup(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrBadRequest)
		})
	}
}

func TestSignup_StoreError(t *testing.T) {
	as := &mockAccountStore{}
	boom := errors.New("boom")
	as.On("ExistsByEmail", mock.Anything, "ada@example.com").Return(false, boom)

	_, err := newService(as, &mockCodeVerifier{}).Signup(context.Background(), validInput())
	assert.ErrorIs(t, err, boom)
}
