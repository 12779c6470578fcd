// internal/application/usecase/auth_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	admindom "github.com/MTalha250/Varzan/internal/domain/admin"
	"github.com/MTalha250/Varzan/internal/domain/common"
)

// ==============================
// Ports
// ==============================

// TokenIssuerPort は bearer トークンを発行する（adapters/out/auth.JWTManager）
type TokenIssuerPort interface {
	Issue(subject, role string) (token string, expiresAt time.Time, err error)
}

// TokenVerifierPort は自前発行のトークンを検証する（adapters/out/auth.JWTManager）
type TokenVerifierPort interface {
	Verify(token string) (admindom.Principal, error)
}

// IDTokenVerifierPort は外部 IdP の ID トークンを検証し email を返す
// （adapters/out/auth.FirebaseVerifier、任意）
type IDTokenVerifierPort interface {
	VerifyIDToken(ctx context.Context, idToken string) (email string, err error)
}

// LoginResult は POST /admin/login のレスポンス
type LoginResult struct {
	Admin     admindom.Admin `json:"admin"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// ==============================
// Usecase
// ==============================

type AuthUsecase struct {
	adminRepo  admindom.Repository
	issuer     TokenIssuerPort
	verifier   TokenVerifierPort
	idVerifier IDTokenVerifierPort
}

// NewAuthUsecase: idVerifier は nil 可（Firebase 無効）
func NewAuthUsecase(
	adminRepo admindom.Repository,
	issuer TokenIssuerPort,
	verifier TokenVerifierPort,
	idVerifier IDTokenVerifierPort,
) *AuthUsecase {
	return &AuthUsecase{
		adminRepo:  adminRepo,
		issuer:     issuer,
		verifier:   verifier,
		idVerifier: idVerifier,
	}
}

// Login は username/password を照合してトークンを発行する。
// ユーザー不在とパスワード不一致は区別しない。
func (u *AuthUsecase) Login(ctx context.Context, c admindom.Credentials) (LoginResult, error) {
	if err := c.Validate(); err != nil {
		return LoginResult{}, err
	}
	a, err := u.adminRepo.GetByUsername(ctx, admindom.NormalizeUsername(c.Username))
	if errors.Is(err, common.ErrNotFound) {
		return LoginResult{}, admindom.ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(c.Password)); err != nil {
		return LoginResult{}, admindom.ErrInvalidCredentials
	}

	token, exp, err := u.issuer.Issue(a.ID, admindom.RoleAdmin)
	if err != nil {
		return LoginResult{}, fmt.Errorf("auth: issue token: %w", err)
	}
	return LoginResult{Admin: a, Token: token, ExpiresAt: exp}, nil
}

// Authenticate は bearer トークンから主体を解決する。
// 自前 JWT が無効で Firebase が有効なら ID トークンとして検証し、
// email と一致する username の Admin に対応づける（該当なしは role なしの主体）。
func (u *AuthUsecase) Authenticate(ctx context.Context, token string) (admindom.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return admindom.Principal{}, common.ErrUnauthorized
	}

	p, err := u.verifier.Verify(token)
	if err == nil {
		return p, nil
	}
	if u.idVerifier == nil {
		return admindom.Principal{}, fmt.Errorf("%w: %v", common.ErrUnauthorized, err)
	}

	email, ferr := u.idVerifier.VerifyIDToken(ctx, token)
	if ferr != nil {
		return admindom.Principal{}, fmt.Errorf("%w: %v", common.ErrUnauthorized, ferr)
	}
	a, aerr := u.adminRepo.GetByUsername(ctx, admindom.NormalizeUsername(email))
	if errors.Is(aerr, common.ErrNotFound) {
		return admindom.Principal{Subject: email}, nil
	}
	if aerr != nil {
		return admindom.Principal{}, aerr
	}
	return admindom.Principal{Subject: a.ID, Role: admindom.RoleAdmin}, nil
}

// Me は context の主体に対応する Admin を返す。
func (u *AuthUsecase) Me(ctx context.Context) (admindom.Admin, error) {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return admindom.Admin{}, common.ErrUnauthorized
	}
	return u.adminRepo.GetByID(ctx, p.Subject)
}

// HashPassword は bcrypt ハッシュを作る（cmd/seed_admin 用）
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", common.Required("admin", "password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
