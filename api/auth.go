package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jobdeck/jobdeck/internal/validate"
	"github.com/jobdeck/jobdeck/pkg/apperr"
	"github.com/jobdeck/jobdeck/pkg/models"
	"github.com/jobdeck/jobdeck/pkg/repository"
)

const maxBodyBytes = 1 << 20

type AuthHandler struct {
	accounts      repository.AccountRepo
	validator     *validate.Validator
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ar repository.AccountRepo, v *validate.Validator, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{accounts: ar, validator: v, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type registerRequest struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	Role        models.Role `json:"role"`
	CompanyName string      `json:"companyName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	CompanyName *string     `json:"companyName,omitempty"`
}

type authResponse struct {
	User  userPayload `json:"user"`
	Token string      `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	if err := h.validator.Validate(r.Context(), validate.SchemaRegister, body); err != nil {
		writeError(w, err)
		return
	}

	var req registerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	// admin is never self-assignable; anything but company registers as a
	// plain individual
	if req.Role != models.RoleCompany {
		req.Role = models.RoleIndividual
	}

	ctx := r.Context()

	if existing, err := h.accounts.GetByEmail(ctx, req.Email); err != nil {
		writeError(w, err)
		return
	} else if existing != nil {
		writeError(w, apperr.New(apperr.Conflict, "this email is already in use, please login"))
		return
	}

	account := &models.Account{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}
	if req.Role == models.RoleCompany {
		if req.CompanyName == "" {
			writeError(w, apperr.New(apperr.Validation, "please provide a company name"))
			return
		}
		if existing, err := h.accounts.GetByCompanyName(ctx, req.CompanyName); err != nil {
			writeError(w, err)
			return
		} else if existing != nil {
			writeError(w, apperr.New(apperr.Conflict, "this company name is already in use"))
			return
		}
		account.CompanyName = &req.CompanyName
	}

	if err := account.SetPassword(req.Password); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.accounts.CreateAccount(ctx, account)
	if err != nil {
		writeError(w, err)
		return
	}
	account.ID = id

	h.respondWithToken(w, account, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	if err := h.validator.Validate(r.Context(), validate.SchemaLogin, body); err != nil {
		writeError(w, err)
		return
	}

	var req loginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	account, err := h.accounts.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	// same rejection for unknown email and wrong password
	if account == nil || !account.CheckPassword(req.Password) {
		writeError(w, apperr.New(apperr.Authentication, "email or password is incorrect"))
		return
	}

	h.respondWithToken(w, account, http.StatusOK)
}

// Logout expires the token cookie immediately; the bearer token itself stays
// valid until its exp, which is the stateless-JWT tradeoff.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "logout",
		HttpOnly: true,
		Expires:  time.Now(),
	})
	writeJSON(w, map[string]string{"msg": "user logged out"}, http.StatusOK)
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUser changes profile fields and re-issues a token with the fresh
// claims. The password hash is untouched by this path.
func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.Authentication, "authentication failed"))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	if err := h.validator.Validate(r.Context(), validate.SchemaUpdateUser, body); err != nil {
		writeError(w, err)
		return
	}

	var req updateUserRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	ctx := r.Context()
	account, err := h.accounts.GetByID(ctx, caller.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if account == nil {
		writeError(w, apperr.New(apperr.Authentication, "authentication failed"))
		return
	}

	if req.Email != account.Email {
		if existing, err := h.accounts.GetByEmail(ctx, req.Email); err != nil {
			writeError(w, err)
			return
		} else if existing != nil {
			writeError(w, apperr.New(apperr.Conflict, "this email is already in use"))
			return
		}
	}

	account.Name = req.Name
	account.Email = req.Email
	if err := h.accounts.UpdateAccount(ctx, account); err != nil {
		writeError(w, err)
		return
	}

	h.respondWithToken(w, account, http.StatusOK)
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword is the only path that rewrites the password hash.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.Authentication, "authentication failed"))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	if err := h.validator.Validate(r.Context(), validate.SchemaChangePassword, body); err != nil {
		writeError(w, err)
		return
	}

	var req changePasswordRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	ctx := r.Context()
	account, err := h.accounts.GetByID(ctx, caller.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if account == nil {
		writeError(w, apperr.New(apperr.Authentication, "authentication failed"))
		return
	}
	if !account.CheckPassword(req.OldPassword) {
		writeError(w, apperr.New(apperr.Authentication, "current password is incorrect"))
		return
	}

	if err := account.SetPassword(req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	if err := h.accounts.UpdatePassword(ctx, caller.ID, account.PasswordHash); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]string{"msg": "password updated"}, http.StatusOK)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, account *models.Account, status int) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": account.ID,
		"role":       string(account.Role),
		"name":       account.Name,
		"exp":        time.Now().Add(h.tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, authResponse{
		User: userPayload{
			ID:          account.ID,
			Name:        account.Name,
			Email:       account.Email,
			Role:        account.Role,
			CompanyName: account.CompanyName,
		},
		Token: tokenStr,
	}, status)
}
