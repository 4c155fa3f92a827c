package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fitness-tracker/internal/managers"
	"fitness-tracker/internal/metrics"
	"fitness-tracker/internal/schemas"
	"fitness-tracker/internal/utils"
)

const resetTokenLifetime = time.Hour

type AuthHdl interface {
	RegisterUser(ctx *gin.Context)
	LoginUser(ctx *gin.Context)
	GetCurrentUser(ctx *gin.Context)
	ForgotPassword(ctx *gin.Context)
	ResetPassword(ctx *gin.Context)
}

type AuthHandler struct {
	DatabaseManager managers.DatabaseMgr
	JWTManager      managers.JWTMgr
	MailManager     managers.MailMgr
	Validator       *utils.Validator
	ClientURL       string
	VerifyEmailMX   bool
}

func NewAuthHandler(databaseManager managers.DatabaseMgr, jwtManager managers.JWTMgr, mailManager managers.MailMgr,
	clientURL string, verifyEmailMX bool) AuthHdl {
	return &AuthHandler{
		DatabaseManager: databaseManager,
		JWTManager:      jwtManager,
		MailManager:     mailManager,
		Validator:       utils.GetValidator(),
		ClientURL:       strings.TrimRight(clientURL, "/"),
		VerifyEmailMX:   verifyEmailMX,
	}
}

// RegisterUser creates an account and signs the user in.
func (handler *AuthHandler) RegisterUser(ctx *gin.Context) {
	registrationRequest := utils.GetSanitizedPayload[schemas.RegistrationRequest](ctx)

	if handler.VerifyEmailMX && !handler.Validator.VerifyEmail(registrationRequest.Email) {
		utils.WriteAndLogError(ctx, schemas.EmailUnreachable, http.StatusBadRequest, errors.New("mx lookup failed"))
		return
	}

	hashedPassword, err := hashPassword(registrationRequest.Password)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	userId := uuid.New()
	createdAt := time.Now().UTC()

	queryString := "INSERT INTO users (id, email, password, first_name, last_name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)"
	if _, err = tx.Exec(ctx, queryString, userId, registrationRequest.Email, hashedPassword,
		registrationRequest.FirstName, registrationRequest.LastName, createdAt, createdAt); err != nil {
		if isUniqueViolation(err) {
			metrics.RecordAuthEvent("register", false)
			utils.WriteAndLogError(ctx, schemas.UserExists, http.StatusBadRequest, err)
			return
		}
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	authDto, err := handler.issueToken(userId.String(), registrationRequest.Email)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	metrics.RecordAuthEvent("register", true)
	utils.WriteAndLogResponse(ctx, authDto, http.StatusCreated)
}

// LoginUser checks the credentials and returns a fresh session token.
// Unknown emails and wrong passwords are indistinguishable for the caller.
func (handler *AuthHandler) LoginUser(ctx *gin.Context) {
	loginRequest := utils.GetSanitizedPayload[schemas.LoginRequest](ctx)

	var (
		userId         uuid.UUID
		hashedPassword string
	)
	queryString := "SELECT id, password FROM users WHERE email = $1"
	if err := handler.DatabaseManager.GetPool().QueryRow(ctx, queryString, loginRequest.Email).Scan(&userId, &hashedPassword); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			metrics.RecordAuthEvent("login", false)
			utils.WriteAndLogError(ctx, schemas.InvalidCredentials, http.StatusUnauthorized, err)
			return
		}
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if !passwordMatches(hashedPassword, loginRequest.Password) {
		metrics.RecordAuthEvent("login", false)
		utils.WriteAndLogError(ctx, schemas.InvalidCredentials, http.StatusUnauthorized, errors.New("password mismatch"))
		return
	}

	authDto, err := handler.issueToken(userId.String(), loginRequest.Email)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	metrics.RecordAuthEvent("login", true)
	utils.WriteAndLogResponse(ctx, authDto, http.StatusOK)
}

// GetCurrentUser returns the user resolved from the session token.
func (handler *AuthHandler) GetCurrentUser(ctx *gin.Context) {
	utils.WriteAndLogResponse(ctx, utils.GetAuthenticatedUser(ctx), http.StatusOK)
}

// ForgotPassword stores a reset token and mails the reset link. The answer is the same
// whether or not the email belongs to an account.
func (handler *AuthHandler) ForgotPassword(ctx *gin.Context) {
	forgotRequest := utils.GetSanitizedPayload[schemas.ForgotPasswordRequest](ctx)
	response := &schemas.MessageDTO{Message: genericResetText}

	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	var (
		userId    uuid.UUID
		firstName string
	)
	queryString := "SELECT id, first_name FROM users WHERE email = $1 FOR UPDATE"
	if err := tx.QueryRow(ctx, queryString, forgotRequest.Email).Scan(&userId, &firstName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.LogMessageWithFields(ctx, "info", "Password reset requested for unknown email")
			utils.WriteAndLogResponse(ctx, response, http.StatusOK)
			return
		}
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	token, tokenHash, err := newResetToken()
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	queryString = "UPDATE users SET reset_token_hash = $1, reset_token_expires_at = $2 WHERE id = $3"
	if _, err = tx.Exec(ctx, queryString, tokenHash, time.Now().UTC().Add(resetTokenLifetime), userId); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	resetURL := handler.ClientURL + "/reset-password?token=" + token + "&email=" + url.QueryEscape(forgotRequest.Email)
	if err = handler.MailManager.SendPasswordResetMail(ctx, forgotRequest.Email, firstName, resetURL); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Sending password reset mail failed", err)
	}

	utils.WriteAndLogResponse(ctx, response, http.StatusOK)
}

// ResetPassword sets a new password if the mailed token is valid and clears the token.
func (handler *AuthHandler) ResetPassword(ctx *gin.Context) {
	resetRequest := utils.GetSanitizedPayload[schemas.ResetPasswordRequest](ctx)

	tx := utils.BeginTransaction(ctx, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer utils.RollbackTransaction(ctx, tx)

	var userId uuid.UUID
	queryString := "SELECT id FROM users WHERE email = $1 AND reset_token_hash = $2 AND reset_token_expires_at > $3 FOR UPDATE"
	if err := tx.QueryRow(ctx, queryString, resetRequest.Email, hashResetToken(resetRequest.Token), time.Now().UTC()).Scan(&userId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			metrics.RecordAuthEvent("reset_password", false)
			utils.WriteAndLogError(ctx, schemas.InvalidResetToken, http.StatusBadRequest, err)
			return
		}
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	hashedPassword, err := hashPassword(resetRequest.NewPassword)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	queryString = "UPDATE users SET password = $1, reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = $2 WHERE id = $3"
	if _, err = tx.Exec(ctx, queryString, hashedPassword, time.Now().UTC(), userId); err != nil {
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(ctx, tx); err != nil {
		return
	}

	metrics.RecordAuthEvent("reset_password", true)
	utils.WriteAndLogResponse(ctx, &schemas.MessageDTO{Message: "Password has been reset successfully"}, http.StatusOK)
}

func (handler *AuthHandler) issueToken(userId, email string) (*schemas.AuthDTO, error) {
	token, err := handler.JWTManager.GenerateJWT(handler.JWTManager.GenerateClaims(userId))
	if err != nil {
		return nil, err
	}
	return &schemas.AuthDTO{
		ID:    userId,
		Email: email,
		Token: token,
	}, nil
}
